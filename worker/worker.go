package worker

import (
	"errors"

	"github.com/anyswap/solana-txcore/leveldb"
	"github.com/anyswap/solana-txcore/params"
	"github.com/anyswap/solana-txcore/tokens/solana"
	"github.com/anyswap/solana-txcore/tools"
)

// OpenTxStore opens the tx store under the data dir, or in memory when no
// data dir is configured
func OpenTxStore() (*leveldb.Database, error) {
	dataDir := params.GetDataDir()
	if dataDir == "" {
		return leveldb.NewMemory()
	}
	cache, handles := params.DefaultStoreCache, params.DefaultStoreHandles
	if config := params.GetConfig(); config != nil && config.Store != nil {
		cache, handles = config.Store.Cache, config.Store.Handles
	}
	return leveldb.New(dataDir, cache, handles)
}

// StartWork start sign worker with the loaded config, the returned database
// should be closed after cleanup
func StartWork() (*leveldb.Database, error) {
	config := params.GetConfig()
	if config == nil || config.Watch == nil {
		return nil, errors.New("sign worker must config 'Watch'")
	}
	logWorker("worker", "start sign worker")

	signers, err := tools.LoadSigners(config.Signer.KeystoreFiles, config.Signer.PasswordFile)
	if err != nil {
		return nil, err
	}
	db, err := OpenTxStore()
	if err != nil {
		return nil, err
	}
	bridge := solana.NewBridge(config.Transaction)
	w := NewSignWorker(bridge, signers, leveldb.NewTxStore(db), config.Watch)
	if err = w.StartSignWatcher(config.Watch.Dir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
