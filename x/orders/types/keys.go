package types

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

const (
	// ModuleName defines the module name
	ModuleName = "orders"
)

// Store key prefixes
var (
	OrderKeyPrefix           = []byte{0x01}
	OrderByDeadlineKeyPrefix = []byte{0x02}
)

// OrderKey returns the store key of the single order a trader may hold in a pool:
// prefix | mintX | mintY | trader
func OrderKey(trader, tokenMintX, tokenMintY solana.PublicKey) []byte {
	key := make([]byte, 0, len(OrderKeyPrefix)+3*solana.PublicKeyLength)
	key = append(key, OrderKeyPrefix...)
	key = append(key, tokenMintX[:]...)
	key = append(key, tokenMintY[:]...)
	return append(key, trader[:]...)
}

// OrderByDeadlineKey returns the deadline index key of an order:
// prefix | deadline (big-endian) | order key
func OrderByDeadlineKey(deadline uint64, orderKey []byte) []byte {
	key := make([]byte, 0, len(OrderByDeadlineKeyPrefix)+8+len(orderKey))
	key = append(key, OrderByDeadlineKeyPrefix...)
	key = binary.BigEndian.AppendUint64(key, deadline)
	return append(key, orderKey...)
}
