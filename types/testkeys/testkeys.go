// Package testkeys builds deterministic keys and signers for tests.
//
// Keys from PublicKey are not derived from any private key. Signer keys are
// derived from public seeds. Neither must be used outside of tests.
package testkeys

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/anyswap/solana-txcore/types"
)

// PublicKey returns the key whose 32 bytes are n in big-endian order,
// left-padded with zero bytes.
func PublicKey(n uint64) types.PublicKey {
	var key types.PublicKey
	binary.BigEndian.PutUint64(key[types.PublicKeyLength-8:], n)
	return key
}

// Keys returns PublicKey(1) .. PublicKey(n).
func Keys(n int) []types.PublicKey {
	keys := make([]types.PublicKey, n)
	for i := range keys {
		keys[i] = PublicKey(uint64(i + 1))
	}
	return keys
}

// Hash returns a blockhash built the same way as PublicKey.
func Hash(n uint64) types.Hash {
	return types.Hash(PublicKey(n))
}

// Signer is a types.Signer over a deterministic ed25519 key.
type Signer struct {
	key ed25519.PrivateKey
}

// NewSigner returns the signer whose seed is n encoded like PublicKey(n).
func NewSigner(n uint64) *Signer {
	seed := PublicKey(n)
	return &Signer{key: ed25519.NewKeyFromSeed(seed[:])}
}

// PublicKey implements types.Signer.
func (s *Signer) PublicKey() types.PublicKey {
	var key types.PublicKey
	copy(key[:], s.key.Public().(ed25519.PublicKey))
	return key
}

// Sign implements types.Signer.
func (s *Signer) Sign(message []byte) (types.Signature, error) {
	var sig types.Signature
	copy(sig[:], ed25519.Sign(s.key, message))
	return sig, nil
}
