package keeper

import (
	"fmt"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/paw-chain/sealswap/app/telemetry"
	"github.com/paw-chain/sealswap/x/orders/types"
)

// Keeper owns the order store and drives order finalization
type Keeper struct {
	db          dbm.DB
	logger      log.Logger
	metrics     *OrderMetrics
	instruments *telemetry.Instruments
}

// NewKeeper creates a new orders Keeper instance
func NewKeeper(db dbm.DB, logger log.Logger) *Keeper {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Keeper{
		db:      db,
		logger:  logger,
		metrics: NewOrderMetrics(),
	}
}

// SetInstruments routes finalization and proof timings to OpenTelemetry instruments
func (k *Keeper) SetInstruments(instruments *telemetry.Instruments) {
	k.instruments = instruments
}

// Logger returns a module-specific logger
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}
