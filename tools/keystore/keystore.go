// Package keystore stores ed25519 keys in password encrypted json files.
package keystore

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pborman/uuid"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/anyswap/solana-txcore/types"
)

const (
	version = 1

	keyHeaderKDF = "scrypt"
	cipherName   = "nacl-secretbox"

	scryptR     = 8
	scryptDKLen = 32

	// StandardScryptN is the N parameter of Scrypt encryption algorithm, using 256MB
	// memory and taking approximately 1s CPU time on a modern processor.
	StandardScryptN = 1 << 18

	// StandardScryptP is the P parameter of Scrypt encryption algorithm, using 256MB
	// memory and taking approximately 1s CPU time on a modern processor.
	StandardScryptP = 1

	// LightScryptN is the N parameter of Scrypt encryption algorithm, using 4MB
	// memory and taking approximately 100ms CPU time on a modern processor.
	LightScryptN = 1 << 12

	// LightScryptP is the P parameter of Scrypt encryption algorithm, using 4MB
	// memory and taking approximately 100ms CPU time on a modern processor.
	LightScryptP = 6
)

// keystore errors
var (
	ErrDecrypt = errors.New("could not decrypt key with given password")
)

type encryptedKeyJSON struct {
	Address string     `json:"address"`
	Crypto  cryptoJSON `json:"crypto"`
	ID      string     `json:"id"`
	Version int        `json:"version"`
}

type cryptoJSON struct {
	Cipher       string       `json:"cipher"`
	CipherText   string       `json:"ciphertext"`
	CipherParams cipherparams `json:"cipherparams"`
	KDF          string       `json:"kdf"`
	KDFParams    scryptParams `json:"kdfparams"`
}

type cipherparams struct {
	Nonce string `json:"nonce"`
}

type scryptParams struct {
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
	DKLen int    `json:"dklen"`
	Salt  string `json:"salt"`
}

// EncryptKey encrypts the seed of key with a key derived from password.
func EncryptKey(key *Key, password string, scryptN, scryptP int) ([]byte, error) {
	salt := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		panic("reading from crypto/rand failed: " + err.Error())
	}
	derivedKey, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptDKLen)
	if err != nil {
		return nil, err
	}
	var secret [32]byte
	copy(secret[:], derivedKey)

	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		panic("reading from crypto/rand failed: " + err.Error())
	}
	cipherText := secretbox.Seal(nil, key.PrivateKey.Seed(), &nonce, &secret)

	encrypted := encryptedKeyJSON{
		Address: key.Address(),
		Crypto: cryptoJSON{
			Cipher:       cipherName,
			CipherText:   hex.EncodeToString(cipherText),
			CipherParams: cipherparams{Nonce: hex.EncodeToString(nonce[:])},
			KDF:          keyHeaderKDF,
			KDFParams: scryptParams{
				N:     scryptN,
				R:     scryptR,
				P:     scryptP,
				DKLen: scryptDKLen,
				Salt:  hex.EncodeToString(salt),
			},
		},
		ID:      key.ID.String(),
		Version: version,
	}
	return json.Marshal(encrypted)
}

// DecryptKey decrypts a key from a json blob, returning the ed25519 key.
func DecryptKey(keyjson []byte, password string) (*Key, error) {
	var encrypted encryptedKeyJSON
	if err := json.Unmarshal(keyjson, &encrypted); err != nil {
		return nil, err
	}
	if encrypted.Version != version {
		return nil, fmt.Errorf("version not supported: %v", encrypted.Version)
	}
	seed, err := decryptSeed(&encrypted.Crypto, password)
	if err != nil {
		return nil, err
	}
	id := uuid.Parse(encrypted.ID)
	if id == nil {
		return nil, fmt.Errorf("invalid key id %q", encrypted.ID)
	}
	key := &Key{ID: id, PrivateKey: ed25519.NewKeyFromSeed(seed)}
	if key.Address() != encrypted.Address {
		return nil, fmt.Errorf("key content mismatch: have address %v, want %v", key.Address(), encrypted.Address)
	}
	return key, nil
}

func decryptSeed(c *cryptoJSON, password string) ([]byte, error) {
	if c.Cipher != cipherName {
		return nil, fmt.Errorf("cipher not supported: %v", c.Cipher)
	}
	if c.KDF != keyHeaderKDF {
		return nil, fmt.Errorf("kdf not supported: %v", c.KDF)
	}
	params := c.KDFParams
	if params.DKLen != scryptDKLen {
		return nil, fmt.Errorf("unsupported derived key length: %v", params.DKLen)
	}
	salt, err := hex.DecodeString(params.Salt)
	if err != nil {
		return nil, err
	}
	nonceBytes, err := hex.DecodeString(c.CipherParams.Nonce)
	if err != nil {
		return nil, err
	}
	if len(nonceBytes) != 24 {
		return nil, fmt.Errorf("invalid nonce length: %v", len(nonceBytes))
	}
	cipherText, err := hex.DecodeString(c.CipherText)
	if err != nil {
		return nil, err
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, err
	}
	var secret [32]byte
	copy(secret[:], derivedKey)
	var nonce [24]byte
	copy(nonce[:], nonceBytes)

	seed, ok := secretbox.Open(nil, cipherText, &nonce, &secret)
	if !ok {
		return nil, ErrDecrypt
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed has %d bytes", types.ErrInvalidLength, len(seed))
	}
	return seed, nil
}

// StoreKey encrypts key into a new key file under dir and returns its path.
func StoreKey(dir string, key *Key, password string, scryptN, scryptP int) (string, error) {
	keyjson, err := EncryptKey(key, password, scryptN, scryptP)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	path := filepath.Join(dir, keyFileName(key.Address()))
	f, err := ioutil.TempFile(dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(keyjson); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
