package types

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// sizes of the fixed-length wire values
const (
	PublicKeyLength = 32
	HashLength      = 32
	SignatureLength = 64
)

// PublicKey is an account address.
type PublicKey [PublicKeyLength]byte

// Hash is a 32 byte ledger hash, used as the recent blockhash of a message.
type Hash [HashLength]byte

// Signature is an ed25519 signature over the serialized message.
type Signature [SignatureLength]byte

// PublicKeyFromBytes copies exactly 32 bytes into a PublicKey.
func PublicKeyFromBytes(in []byte) (out PublicKey, err error) {
	if len(in) != PublicKeyLength {
		return out, fmt.Errorf("%w: public key has %d bytes, want %d", ErrInvalidLength, len(in), PublicKeyLength)
	}
	copy(out[:], in)
	return out, nil
}

// PublicKeyFromBase58 decodes a base58 address.
func PublicKeyFromBase58(in string) (out PublicKey, err error) {
	raw, err := decodeBase58(in, PublicKeyLength)
	if err != nil {
		return out, fmt.Errorf("public key %q: %w", in, err)
	}
	copy(out[:], raw)
	return out, nil
}

// MustPublicKeyFromBase58 is PublicKeyFromBase58 for constants; it panics on error.
func MustPublicKeyFromBase58(in string) PublicKey {
	out, err := PublicKeyFromBase58(in)
	if err != nil {
		panic(err)
	}
	return out
}

// Bytes returns a copy of the raw key bytes.
func (p PublicKey) Bytes() []byte {
	return append([]byte(nil), p[:]...)
}

func (p PublicKey) String() string {
	return base58.Encode(p[:])
}

// Equals reports byte-wise equality.
func (p PublicKey) Equals(other PublicKey) bool {
	return p == other
}

// IsZero reports whether every byte of the key is zero.
func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

// MarshalText implements encoding.TextMarshaler.
func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PublicKey) UnmarshalText(data []byte) error {
	key, err := PublicKeyFromBase58(string(data))
	if err != nil {
		return err
	}
	*p = key
	return nil
}

// PublicKeySlice is an ordered list of keys.
type PublicKeySlice []PublicKey

// Contains reports whether key is in the slice.
func (slice PublicKeySlice) Contains(key PublicKey) bool {
	return slice.IndexOf(key) >= 0
}

// IndexOf returns the position of key, or -1.
func (slice PublicKeySlice) IndexOf(key PublicKey) int {
	for i, k := range slice {
		if k == key {
			return i
		}
	}
	return -1
}

// UniqueAppend appends key unless it is already present.
func (slice *PublicKeySlice) UniqueAppend(key PublicKey) bool {
	if slice.Contains(key) {
		return false
	}
	*slice = append(*slice, key)
	return true
}

// HashFromBytes copies exactly 32 bytes into a Hash.
func HashFromBytes(in []byte) (out Hash, err error) {
	if len(in) != HashLength {
		return out, fmt.Errorf("%w: hash has %d bytes, want %d", ErrInvalidLength, len(in), HashLength)
	}
	copy(out[:], in)
	return out, nil
}

// HashFromBase58 decodes a base58 blockhash.
func HashFromBase58(in string) (out Hash, err error) {
	raw, err := decodeBase58(in, HashLength)
	if err != nil {
		return out, fmt.Errorf("hash %q: %w", in, err)
	}
	copy(out[:], raw)
	return out, nil
}

// MustHashFromBase58 panics on error.
func MustHashFromBase58(in string) Hash {
	out, err := HashFromBase58(in)
	if err != nil {
		panic(err)
	}
	return out
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

// IsZero reports whether every byte of the hash is zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(data []byte) error {
	hash, err := HashFromBase58(string(data))
	if err != nil {
		return err
	}
	*h = hash
	return nil
}

// SignatureFromBytes copies exactly 64 bytes into a Signature.
func SignatureFromBytes(in []byte) (out Signature, err error) {
	if len(in) != SignatureLength {
		return out, fmt.Errorf("%w: signature has %d bytes, want %d", ErrInvalidLength, len(in), SignatureLength)
	}
	copy(out[:], in)
	return out, nil
}

// SignatureFromBase58 decodes a base58 signature (transaction id).
func SignatureFromBase58(in string) (out Signature, err error) {
	raw, err := decodeBase58(in, SignatureLength)
	if err != nil {
		return out, fmt.Errorf("signature %q: %w", in, err)
	}
	copy(out[:], raw)
	return out, nil
}

func (s Signature) String() string {
	return base58.Encode(s[:])
}

// IsZero reports whether the slot is still unsigned.
func (s Signature) IsZero() bool {
	return s == Signature{}
}

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(data []byte) error {
	sig, err := SignatureFromBase58(string(data))
	if err != nil {
		return err
	}
	*s = sig
	return nil
}

// base58.Decode returns an empty slice for invalid characters, so an empty
// result is only valid for an empty input.
func decodeBase58(in string, size int) ([]byte, error) {
	if in == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidEncoding)
	}
	raw := base58.Decode(in)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: bad character", ErrInvalidEncoding)
	}
	if len(raw) != size {
		return nil, fmt.Errorf("%w: decoded to %d bytes, want %d", ErrInvalidEncoding, len(raw), size)
	}
	if base58.Encode(raw) != in {
		return nil, fmt.Errorf("%w: not canonical", ErrInvalidEncoding)
	}
	return raw, nil
}

