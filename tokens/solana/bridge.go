// Package solana builds, signs and verifies solana transfer transactions.
package solana

import (
	"github.com/anyswap/solana-txcore/params"
	"github.com/anyswap/solana-txcore/tokens"
	"github.com/anyswap/solana-txcore/types"
)

var _ tokens.TxBuilder = &Bridge{}

// Bridge solana bridge
type Bridge struct {
	TxConfig *params.TransactionConfig
}

// NewBridge new bridge, a nil config uses the defaults
func NewBridge(txConfig *params.TransactionConfig) *Bridge {
	if txConfig == nil {
		txConfig = &params.TransactionConfig{}
	}
	return &Bridge{TxConfig: txConfig}
}

// GetMaxRawTxSize get max raw tx size
func (b *Bridge) GetMaxRawTxSize() int {
	return b.TxConfig.GetMaxRawTxSize()
}

// GetFeePayer returns the configured fee payer
func (b *Bridge) GetFeePayer() (types.PublicKey, bool) {
	if b.TxConfig.FeePayer == "" {
		return types.PublicKey{}, false
	}
	feePayer, err := types.PublicKeyFromBase58(b.TxConfig.FeePayer)
	if err != nil {
		return types.PublicKey{}, false
	}
	return feePayer, true
}
