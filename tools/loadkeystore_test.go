package tools

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/anyswap/solana-txcore/tools/keystore"
	"github.com/stretchr/testify/assert"
)

func TestLoadSigners(t *testing.T) {
	dir := t.TempDir()
	passfile := filepath.Join(dir, "password")
	assert.Nil(t, ioutil.WriteFile(passfile, []byte("secret\n"), 0600))

	var keyfiles []string
	var want []string
	for i := 0; i < 2; i++ {
		key, err := keystore.NewKey()
		assert.Nil(t, err)
		keyfile, err := keystore.StoreKey(dir, key, "secret", keystore.LightScryptN, keystore.LightScryptP)
		assert.Nil(t, err)
		keyfiles = append(keyfiles, keyfile)
		want = append(want, key.Address())
	}

	signers, err := LoadSigners(keyfiles, passfile)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(signers))
	for i, signer := range signers {
		assert.Equal(t, want[i], signer.PublicKey().String())
	}

	assert.Nil(t, ioutil.WriteFile(passfile, []byte("wrong"), 0600))
	_, err = LoadSigners(keyfiles, passfile)
	assert.True(t, errors.Is(err, keystore.ErrDecrypt), "err: %v", err)

	_, err = LoadKeyStore(filepath.Join(dir, "missing"), passfile)
	assert.NotNil(t, err)
}
