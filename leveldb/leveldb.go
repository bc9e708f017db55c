// Package leveldb keeps signed transactions in goleveldb.
package leveldb

import (
	"errors"

	"github.com/anyswap/solana-txcore/common"
	"github.com/anyswap/solana-txcore/log"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// lower bounds of cache megabytes and open file handles
const (
	minCache   = 16
	minHandles = 16
)

var (
	_ KeyValueStore = &Database{}
)

// IsNotFoundErr is err 'ErrNotFound'
func IsNotFoundErr(err error) bool {
	return errors.Is(err, dberrors.ErrNotFound)
}

// Database is a KeyValueStore backed by goleveldb, keys iterate in
// binary-alphabetical order.
type Database struct {
	lvldb *goleveldb.DB
}

// New opens (or creates) the database under dir.
// Corrupted databases are recovered before use.
func New(dir string, cache, handles int) (*Database, error) {
	if cache < minCache {
		cache = minCache
	}
	if handles < minHandles {
		handles = minHandles
	}
	options := defaultOptions()
	options.OpenFilesCacheCapacity = handles
	options.BlockCacheCapacity = cache / 2 * opt.MiB
	options.WriteBuffer = cache / 4 * opt.MiB

	usedCache := options.GetBlockCacheCapacity() + options.GetWriteBuffer()*2
	log.Info("Allocated cache and file handles", "database", dir, "cache", common.StorageSize(usedCache), "handles", handles)

	db, err := goleveldb.OpenFile(dir, options)
	if dberrors.IsCorrupted(err) {
		log.Warn("recover corrupted database", "database", dir, "err", err)
		db, err = goleveldb.RecoverFile(dir, nil)
	}
	if err != nil {
		return nil, err
	}
	return &Database{lvldb: db}, nil
}

// NewMemory returns a database kept in memory, used when no data dir is set.
func NewMemory() (*Database, error) {
	db, err := goleveldb.Open(storage.NewMemStorage(), defaultOptions())
	if err != nil {
		return nil, err
	}
	log.Debug("Opened in-memory database")
	return &Database{lvldb: db}, nil
}

func defaultOptions() *opt.Options {
	return &opt.Options{
		Filter:                 filter.NewBloomFilter(10),
		DisableSeeksCompaction: true,
	}
}

// Close closes the database, pending writes are flushed.
func (db *Database) Close() error {
	return db.lvldb.Close()
}

// Has retrieves if a key is present in the key-value store.
func (db *Database) Has(key []byte) (bool, error) {
	return db.lvldb.Has(key, nil)
}

// Get retrieves the given key if it's present in the key-value store.
func (db *Database) Get(key []byte) ([]byte, error) {
	return db.lvldb.Get(key, nil)
}

// Put inserts the given value into the key-value store.
func (db *Database) Put(key []byte, value []byte) error {
	return db.lvldb.Put(key, value, nil)
}

// Delete removes the key from the key-value store.
func (db *Database) Delete(key []byte) error {
	return db.lvldb.Delete(key, nil)
}

// NewBatch buffers writes until Write is called.
func (db *Database) NewBatch() Batch {
	return &batch{
		db: db.lvldb,
		b:  new(goleveldb.Batch),
	}
}

// NewIterator iterates the keys with prefix, from prefix+start on.
func (db *Database) NewIterator(prefix []byte, start []byte) Iterator {
	r := util.BytesPrefix(prefix)
	r.Start = append(r.Start, start...)
	return db.lvldb.NewIterator(r, nil)
}

// batch is not safe for concurrent use.
type batch struct {
	db   *goleveldb.DB
	b    *goleveldb.Batch
	size int
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	b.size += len(value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	b.size += len(key)
	return nil
}

func (b *batch) ValueSize() int {
	return b.size
}

func (b *batch) Write() error {
	return b.db.Write(b.b, nil)
}

func (b *batch) Reset() {
	b.b.Reset()
	b.size = 0
}

func (b *batch) Replay(w KeyValueWriter) error {
	return b.b.Replay(&replayer{writer: w})
}

// replayer stops at the first failed write
type replayer struct {
	writer  KeyValueWriter
	failure error
}

func (r *replayer) Put(key, value []byte) {
	if r.failure == nil {
		r.failure = r.writer.Put(key, value)
	}
}

func (r *replayer) Delete(key []byte) {
	if r.failure == nil {
		r.failure = r.writer.Delete(key)
	}
}
