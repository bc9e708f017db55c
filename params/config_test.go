package params

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	assert.Nil(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	keystore := writeFile(t, dir, "payer.json", "{}")
	configFile := writeFile(t, dir, "config.toml", `
Identifier = "solana-signer"

[Signer]
KeystoreFiles = ["`+keystore+`"]
PasswordFile = "`+filepath.Join(dir, "password")+`"

[Transaction]
FeePayer = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

[Store]
DataDir = "`+dir+`"

[Watch]
Dir = "`+dir+`"
`)

	config, err := LoadConfigFromFile(configFile)
	assert.Nil(t, err)
	assert.Equal(t, "solana-signer", config.Identifier)
	assert.Equal(t, []string{keystore}, config.Signer.KeystoreFiles)
	assert.Equal(t, DefaultMaxRawTxSize, config.Transaction.GetMaxRawTxSize())
	assert.Equal(t, DefaultStoreCache, config.Store.Cache)
	assert.Equal(t, DefaultStoreHandles, config.Store.Handles)
	assert.Equal(t, DefaultPendingSuffix, config.Watch.PendingSuffix)
	assert.Equal(t, DefaultSignedSuffix, config.Watch.SignedSuffix)

	SetConfig(config)
	assert.Equal(t, dir, GetDataDir())
	assert.Equal(t, config.Watch, GetWatchConfig())
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfigFromFile("")
	assert.NotNil(t, err)

	_, err = LoadConfigFromFile(filepath.Join(dir, "missing.toml"))
	assert.NotNil(t, err)

	configFile := writeFile(t, dir, "bad.toml", "Identifier = ")
	_, err = LoadConfigFromFile(configFile)
	assert.NotNil(t, err)

	configFile = writeFile(t, dir, "nosigner.toml", `Identifier = "x"`)
	_, err = LoadConfigFromFile(configFile)
	assert.EqualError(t, err, "check config failed: must config 'Signer'")
}

func TestCheckConfig(t *testing.T) {
	keystore := writeFile(t, t.TempDir(), "key.json", "{}")
	valid := func() *Config {
		return &Config{
			Identifier:  "test",
			Signer:      &SignerConfig{KeystoreFiles: []string{keystore}, PasswordFile: "password"},
			Transaction: &TransactionConfig{FeePayer: "11111111111111111111111111111112"},
		}
	}
	assert.Nil(t, valid().CheckConfig())

	config := valid()
	config.Transaction.FeePayer = "not-base58-0OIl"
	assert.NotNil(t, config.CheckConfig())

	config = valid()
	config.Transaction.MaxRawTxSize = DefaultMaxRawTxSize + 1
	assert.NotNil(t, config.CheckConfig())

	config = valid()
	config.Signer.KeystoreFiles = []string{keystore + ".missing"}
	assert.NotNil(t, config.CheckConfig())

	config = valid()
	config.Store = &StoreConfig{}
	assert.EqualError(t, config.CheckConfig(), "store must config 'DataDir'")

	config = valid()
	config.Watch = &WatchConfig{Dir: "watch", PendingSuffix: ".tx", SignedSuffix: ".tx"}
	assert.NotNil(t, config.CheckConfig())
}

func TestVersion(t *testing.T) {
	assert.Equal(t, VersionWithMeta, VersionWithCommit("", ""))
	assert.Contains(t, VersionWithCommit("0123456789abcdef", ""), "-01234567")
}

func TestAPIServerAndAdmins(t *testing.T) {
	keystore := writeFile(t, t.TempDir(), "key.json", "{}")
	config := &Config{
		Identifier:  "test",
		Admins:      []string{"11111111111111111111111111111112"},
		Signer:      &SignerConfig{KeystoreFiles: []string{keystore}, PasswordFile: "password"},
		Transaction: &TransactionConfig{FeePayer: "11111111111111111111111111111112"},
		APIServer:   &APIServerConfig{},
	}
	config.setDefaults()
	assert.Nil(t, config.CheckConfig())
	assert.Equal(t, DefaultAPIPort, config.APIServer.Port)
	assert.Equal(t, float64(DefaultAPIRateLimit), config.APIServer.MaxRequestsPerSecond)

	SetConfig(config)
	assert.True(t, HasAdmin())
	assert.True(t, IsAdmin("11111111111111111111111111111112"))
	assert.False(t, IsAdmin("11111111111111111111111111111111"))

	config.APIServer.Port = 70000
	assert.NotNil(t, config.CheckConfig())

	config.APIServer.Port = DefaultAPIPort
	config.Admins = []string{"0x1234"}
	assert.NotNil(t, config.CheckConfig())
}
