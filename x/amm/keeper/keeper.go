package keeper

import (
	"fmt"

	"cosmossdk.io/log"

	"github.com/paw-chain/sealswap/app/telemetry"
	"github.com/paw-chain/sealswap/x/amm/types"
)

// Keeper exposes the quote engine. It holds no pool state: every call takes an
// immutable snapshot and fee configuration, so a single Keeper is safe for
// concurrent use.
type Keeper struct {
	logger      log.Logger
	metrics     *AMMMetrics
	instruments *telemetry.Instruments
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(logger log.Logger) *Keeper {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Keeper{
		logger:  logger,
		metrics: NewAMMMetrics(),
	}
}

// SetInstruments routes quote timings to OpenTelemetry instruments
func (k *Keeper) SetInstruments(instruments *telemetry.Instruments) {
	k.instruments = instruments
}

// Logger returns a module-specific logger
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}
