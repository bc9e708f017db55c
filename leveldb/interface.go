package leveldb

// KeyValueReader wraps the Has and Get method of a backing data store.
type KeyValueReader interface {
	Has(key []byte) (bool, error)
	Get(key []byte) ([]byte, error)
}

// KeyValueWriter wraps the Put and Delete method of a backing data store.
type KeyValueWriter interface {
	Put(key []byte, value []byte) error
	Delete(key []byte) error
}

// Iterator iterates over a database's key/value pairs in ascending key order.
// It must be released after use.
type Iterator interface {
	Next() bool
	Error() error
	Key() []byte
	Value() []byte
	Release()
}

// Batch is a write-only database that commits changes to its host database
// when Write is called.
type Batch interface {
	KeyValueWriter
	ValueSize() int
	Write() error
	Reset()
	Replay(w KeyValueWriter) error
}

// KeyValueStore contains all the methods required to allow handling different
// key-value data stores backing the signed transaction store.
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter
	NewBatch() Batch
	NewIterator(prefix []byte, start []byte) Iterator
	Close() error
}
