package keystore

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/pborman/uuid"

	"github.com/anyswap/solana-txcore/types"
)

// Key is an ed25519 account key with the id of its key file.
type Key struct {
	ID         uuid.UUID
	PrivateKey ed25519.PrivateKey
}

// NewKey generates a random key.
func NewKey() (*Key, error) {
	return newKey(rand.Reader)
}

func newKey(reader io.Reader) (*Key, error) {
	_, privateKey, err := ed25519.GenerateKey(reader)
	if err != nil {
		return nil, err
	}
	return &Key{ID: uuid.NewRandom(), PrivateKey: privateKey}, nil
}

// NewKeyFromSeed builds the key of a 32 byte ed25519 seed.
func NewKeyFromSeed(seed []byte) (*Key, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed has %d bytes, want %d", types.ErrInvalidLength, len(seed), ed25519.SeedSize)
	}
	return &Key{ID: uuid.NewRandom(), PrivateKey: ed25519.NewKeyFromSeed(seed)}, nil
}

// PublicKey implements types.Signer.
func (k *Key) PublicKey() types.PublicKey {
	var pubKey types.PublicKey
	copy(pubKey[:], k.PrivateKey.Public().(ed25519.PublicKey))
	return pubKey
}

// Address is the base58 public key.
func (k *Key) Address() string {
	return k.PublicKey().String()
}

// Sign implements types.Signer.
func (k *Key) Sign(message []byte) (types.Signature, error) {
	var sig types.Signature
	copy(sig[:], ed25519.Sign(k.PrivateKey, message))
	return sig, nil
}

// keyFileName implements the naming convention for keyfiles:
// UTC--<created_at UTC ISO8601>--<address>
func keyFileName(address string) string {
	ts := time.Now().UTC()
	return fmt.Sprintf("UTC--%s--%s", toISO8601(ts), address)
}

func toISO8601(t time.Time) string {
	var tz string
	name, offset := t.Zone()
	if name == "UTC" {
		tz = "Z"
	} else {
		tz = fmt.Sprintf("%03d00", offset/3600)
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d-%02d-%02d.%09d%s",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), tz)
}
