package solana

import (
	"fmt"

	"github.com/anyswap/solana-txcore/common"
	"github.com/anyswap/solana-txcore/types"
)

// IsValidAddress check address
func (b *Bridge) IsValidAddress(address string) bool {
	_, err := types.PublicKeyFromBase58(address)
	return err == nil
}

// PublicKeyToAddress returns the base58 address of a hex ed25519 public key
func (b *Bridge) PublicKeyToAddress(pubKeyHex string) (address string, err error) {
	bz := common.FromHex(pubKeyHex)
	pub, err := types.PublicKeyFromBytes(bz)
	if err != nil {
		return "", fmt.Errorf("wrong public key hex '%v': %w", pubKeyHex, err)
	}
	return pub.String(), nil
}
