package params

import (
	"errors"
	"fmt"

	"github.com/anyswap/solana-txcore/common"
	"github.com/anyswap/solana-txcore/types"
)

// CheckConfig check config
func (c *Config) CheckConfig() (err error) {
	if c.Identifier == "" {
		return errors.New("must config non empty 'Identifier'")
	}
	for _, admin := range c.Admins {
		if _, err = types.PublicKeyFromBase58(admin); err != nil {
			return fmt.Errorf("wrong admin address '%v': %w", admin, err)
		}
	}
	if c.Signer == nil {
		return errors.New("must config 'Signer'")
	}
	if err = c.Signer.CheckConfig(); err != nil {
		return err
	}
	if c.Transaction == nil {
		return errors.New("must config 'Transaction'")
	}
	if err = c.Transaction.CheckConfig(); err != nil {
		return err
	}
	if c.Store != nil {
		if err = c.Store.CheckConfig(); err != nil {
			return err
		}
	}
	if c.Watch != nil {
		if err = c.Watch.CheckConfig(); err != nil {
			return err
		}
	}
	if c.APIServer != nil {
		if err = c.APIServer.CheckConfig(); err != nil {
			return err
		}
	}
	return nil
}

// CheckConfig check signer config
func (c *SignerConfig) CheckConfig() error {
	if len(c.KeystoreFiles) == 0 {
		return errors.New("signer must config 'KeystoreFiles'")
	}
	for _, keystoreFile := range c.KeystoreFiles {
		if !common.FileExist(keystoreFile) {
			return fmt.Errorf("signer keystore file %v not exist", keystoreFile)
		}
	}
	if c.PasswordFile == "" {
		return errors.New("signer must config 'PasswordFile'")
	}
	return nil
}

// CheckConfig check transaction config
func (c *TransactionConfig) CheckConfig() error {
	if c.FeePayer == "" {
		return errors.New("transaction must config 'FeePayer'")
	}
	if _, err := types.PublicKeyFromBase58(c.FeePayer); err != nil {
		return fmt.Errorf("transaction 'FeePayer' is invalid: %w", err)
	}
	if c.MaxRawTxSize < 0 || c.MaxRawTxSize > DefaultMaxRawTxSize {
		return fmt.Errorf("transaction 'MaxRawTxSize' must be in range [0, %v]", DefaultMaxRawTxSize)
	}
	return nil
}

// CheckConfig check store config
func (c *StoreConfig) CheckConfig() error {
	if c.DataDir == "" {
		return errors.New("store must config 'DataDir'")
	}
	if c.Cache < 0 || c.Handles < 0 {
		return errors.New("store 'Cache' and 'Handles' must not be negative")
	}
	return nil
}

// CheckConfig check watch config
func (c *WatchConfig) CheckConfig() error {
	if c.Dir == "" {
		return errors.New("watch must config 'Dir'")
	}
	if c.PendingSuffix == c.SignedSuffix {
		return errors.New("watch 'PendingSuffix' and 'SignedSuffix' must differ")
	}
	return nil
}

// CheckConfig check api server config
func (c *APIServerConfig) CheckConfig() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("api server 'Port' %v out of range", c.Port)
	}
	if c.MaxRequestsPerSecond < 0 {
		return errors.New("api server 'MaxRequestsPerSecond' must not be negative")
	}
	return nil
}
