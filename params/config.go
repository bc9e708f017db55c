package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/anyswap/solana-txcore/common"
	"github.com/anyswap/solana-txcore/log"
)

// defaults of optional config items
const (
	DefaultMaxRawTxSize  = 1232
	DefaultStoreCache    = 16
	DefaultStoreHandles  = 16
	DefaultSignedSuffix  = ".signed"
	DefaultPendingSuffix = ".tx"
	DefaultAPIPort       = 11556
	DefaultAPIRateLimit  = 10
)

var (
	locDataDir        string
	toolConfig        *Config
	loadConfigStarter sync.Once
)

// Config config items (decode from toml file)
type Config struct {
	Identifier  string
	Admins      []string `toml:",omitempty" json:",omitempty"`
	Signer      *SignerConfig
	Transaction *TransactionConfig
	Store       *StoreConfig     `toml:",omitempty" json:",omitempty"`
	Watch       *WatchConfig     `toml:",omitempty" json:",omitempty"`
	APIServer   *APIServerConfig `toml:",omitempty" json:",omitempty"`
}

// SignerConfig keystores used to sign transactions
type SignerConfig struct {
	KeystoreFiles []string
	PasswordFile  string `json:"-"`
}

// TransactionConfig transaction building config
type TransactionConfig struct {
	FeePayer     string
	MaxRawTxSize int `toml:",omitempty" json:",omitempty"`

	// sign only the slots of configured keys instead of requiring every signer
	AllowPartialSign bool `toml:",omitempty" json:",omitempty"`
}

// StoreConfig signed transaction database config
type StoreConfig struct {
	DataDir string
	Cache   int `toml:",omitempty" json:",omitempty"`
	Handles int `toml:",omitempty" json:",omitempty"`
}

// WatchConfig signing watcher config
type WatchConfig struct {
	Dir           string
	PendingSuffix string `toml:",omitempty" json:",omitempty"`
	SignedSuffix  string `toml:",omitempty" json:",omitempty"`
}

// APIServerConfig api service config
type APIServerConfig struct {
	Port           int
	AllowedOrigins []string
	// requests per second per remote address
	MaxRequestsPerSecond float64 `toml:",omitempty" json:",omitempty"`
}

// GetConfig get config
func GetConfig() *Config {
	return toolConfig
}

// SetConfig set config
func SetConfig(config *Config) {
	toolConfig = config
}

// GetSignerConfig get signer config
func GetSignerConfig() *SignerConfig {
	return GetConfig().Signer
}

// GetTransactionConfig get transaction config
func GetTransactionConfig() *TransactionConfig {
	return GetConfig().Transaction
}

// GetStoreConfig get store config
func GetStoreConfig() *StoreConfig {
	return GetConfig().Store
}

// GetWatchConfig get watch config
func GetWatchConfig() *WatchConfig {
	return GetConfig().Watch
}

// GetAPIServerConfig get api server config
func GetAPIServerConfig() *APIServerConfig {
	return GetConfig().APIServer
}

// HasAdmin has admin
func HasAdmin() bool {
	return len(GetConfig().Admins) != 0
}

// IsAdmin is admin
func IsAdmin(account string) bool {
	for _, admin := range GetConfig().Admins {
		if account == admin {
			return true
		}
	}
	return false
}

// GetMaxRawTxSize get max raw tx size
func (c *TransactionConfig) GetMaxRawTxSize() int {
	if c == nil || c.MaxRawTxSize == 0 {
		return DefaultMaxRawTxSize
	}
	return c.MaxRawTxSize
}

// LoadConfigFromFile decode and check config file
func LoadConfigFromFile(configFile string) (*Config, error) {
	if configFile == "" {
		return nil, errors.New("no config file specified")
	}
	if !common.FileExist(configFile) {
		return nil, fmt.Errorf("config file %v not exist", configFile)
	}
	config := &Config{}
	if _, err := toml.DecodeFile(configFile, &config); err != nil {
		return nil, fmt.Errorf("toml DecodeFile: %w", err)
	}
	config.setDefaults()
	if err := config.CheckConfig(); err != nil {
		return nil, fmt.Errorf("check config failed: %w", err)
	}
	return config, nil
}

// LoadConfig load config
func LoadConfig(configFile string) *Config {
	loadConfigStarter.Do(func() {
		log.Println("Config file is", configFile)
		config, err := LoadConfigFromFile(configFile)
		if err != nil {
			log.Fatalf("LoadConfig error: %v", err)
		}
		SetConfig(config)
		var bs []byte
		if log.JSONFormat {
			bs, _ = json.Marshal(config)
		} else {
			bs, _ = json.MarshalIndent(config, "", "  ")
		}
		log.Println("LoadConfig finished.", string(bs))
		log.Info("Check config success", "configFile", configFile)
	})
	return toolConfig
}

func (c *Config) setDefaults() {
	if c.Store != nil {
		if c.Store.Cache == 0 {
			c.Store.Cache = DefaultStoreCache
		}
		if c.Store.Handles == 0 {
			c.Store.Handles = DefaultStoreHandles
		}
	}
	if c.APIServer != nil {
		if c.APIServer.Port == 0 {
			c.APIServer.Port = DefaultAPIPort
		}
		if c.APIServer.MaxRequestsPerSecond == 0 {
			c.APIServer.MaxRequestsPerSecond = DefaultAPIRateLimit
		}
	}
	if c.Watch != nil {
		if c.Watch.PendingSuffix == "" {
			c.Watch.PendingSuffix = DefaultPendingSuffix
		}
		if c.Watch.SignedSuffix == "" {
			c.Watch.SignedSuffix = DefaultSignedSuffix
		}
	}
}

// SetDataDir set data dir
func SetDataDir(dir string) {
	if dir == "" {
		log.Warn("suggest specify '--datadir' to keep signed transactions")
		return
	}
	currDir, err := common.CurrentDir()
	if err != nil {
		log.Fatal("get current dir failed", "err", err)
	}
	locDataDir = common.AbsolutePath(currDir, dir)
	log.Info("set data dir success", "datadir", locDataDir)
}

// GetDataDir get data dir, the command line flag overrides the config
func GetDataDir() string {
	if locDataDir != "" {
		return locDataDir
	}
	if config := GetConfig(); config != nil && config.Store != nil {
		return config.Store.DataDir
	}
	return ""
}
