package leveldb

import (
	"errors"
	"fmt"

	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/types"
)

var (
	txPrefix = []byte("tx-")

	// ErrUnsignedTransaction is returned when storing a transaction that misses signatures
	ErrUnsignedTransaction = errors.New("transaction is not fully signed")
	// ErrTxNotFound is returned when no transaction is stored under a signature
	ErrTxNotFound = errors.New("transaction not found")
)

// TxStore keeps fully signed transactions keyed by their first signature.
type TxStore struct {
	db KeyValueStore
}

// NewTxStore new tx store
func NewTxStore(db KeyValueStore) *TxStore {
	return &TxStore{db: db}
}

func txKey(sig types.Signature) []byte {
	key := make([]byte, 0, len(txPrefix)+len(sig))
	key = append(key, txPrefix...)
	return append(key, sig[:]...)
}

// checkSigned requires every signature slot to hold a valid signature
func checkSigned(tx *types.Transaction) (types.Signature, []byte, error) {
	if !tx.IsFullySigned() {
		return types.Signature{}, nil, ErrUnsignedTransaction
	}
	if err := tx.VerifySignatures(); err != nil {
		return types.Signature{}, nil, err
	}
	txid, err := tx.ID()
	if err != nil {
		return types.Signature{}, nil, fmt.Errorf("%w: %v", ErrUnsignedTransaction, err)
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return types.Signature{}, nil, err
	}
	return txid, raw, nil
}

// Put verifies and stores the wire bytes of tx and returns its id
func (s *TxStore) Put(tx *types.Transaction) (types.Signature, error) {
	txid, raw, err := checkSigned(tx)
	if err != nil {
		return types.Signature{}, err
	}
	if err = s.db.Put(txKey(txid), raw); err != nil {
		return types.Signature{}, err
	}
	log.Debug("[txstore] put transaction", "txid", txid, "size", len(raw))
	return txid, nil
}

// PutAll stores transactions in one batch
func (s *TxStore) PutAll(txs []*types.Transaction) ([]types.Signature, error) {
	b := s.db.NewBatch()
	txids := make([]types.Signature, 0, len(txs))
	for i, tx := range txs {
		txid, raw, err := checkSigned(tx)
		if err != nil {
			return nil, fmt.Errorf("index %v: %w", i, err)
		}
		if err = b.Put(txKey(txid), raw); err != nil {
			return nil, err
		}
		txids = append(txids, txid)
	}
	if err := b.Write(); err != nil {
		return nil, err
	}
	log.Debug("[txstore] put transactions", "count", len(txids), "size", b.ValueSize())
	return txids, nil
}

// Has reports whether a transaction is stored under txid
func (s *TxStore) Has(txid types.Signature) (bool, error) {
	return s.db.Has(txKey(txid))
}

// Get loads and decodes the transaction stored under txid
func (s *TxStore) Get(txid types.Signature) (*types.Transaction, error) {
	raw, err := s.db.Get(txKey(txid))
	if err != nil {
		if IsNotFoundErr(err) {
			return nil, fmt.Errorf("%w: %v", ErrTxNotFound, txid)
		}
		return nil, err
	}
	return types.TransactionFromBytes(raw)
}

// Delete removes the transaction stored under txid
func (s *TxStore) Delete(txid types.Signature) error {
	return s.db.Delete(txKey(txid))
}

// List returns the ids of all stored transactions in key order
func (s *TxStore) List() ([]types.Signature, error) {
	it := s.db.NewIterator(txPrefix, nil)
	defer it.Release()

	var txids []types.Signature
	for it.Next() {
		txid, err := types.SignatureFromBytes(it.Key()[len(txPrefix):])
		if err != nil {
			return nil, err
		}
		txids = append(txids, txid)
	}
	return txids, it.Error()
}
