package tools

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/anyswap/solana-txcore/tools/keystore"
	"github.com/anyswap/solana-txcore/types"
)

// LoadKeyStore load keystore from keyfile and passfile
func LoadKeyStore(keyfile, passfile string) (*keystore.Key, error) {
	keyjson, err := ioutil.ReadFile(keyfile)
	if err != nil {
		return nil, fmt.Errorf("Read keystore fail %w", err)
	}
	passwd, err := ReadPassword(passfile)
	if err != nil {
		return nil, err
	}
	key, err := keystore.DecryptKey(keyjson, passwd)
	if err != nil {
		return nil, fmt.Errorf("Decrypt key fail %w", err)
	}
	return key, nil
}

// LoadSigners load every keyfile with the password in passfile
func LoadSigners(keyfiles []string, passfile string) ([]types.Signer, error) {
	signers := make([]types.Signer, 0, len(keyfiles))
	for _, keyfile := range keyfiles {
		key, err := LoadKeyStore(keyfile, passfile)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", keyfile, err)
		}
		signers = append(signers, key)
	}
	return signers, nil
}

// ReadPassword reads the trimmed password in passfile
func ReadPassword(passfile string) (string, error) {
	passdata, err := ioutil.ReadFile(passfile)
	if err != nil {
		return "", fmt.Errorf("Read password fail %w", err)
	}
	return strings.TrimSpace(string(passdata)), nil
}
