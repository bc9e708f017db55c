package worker

import (
	"errors"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/anyswap/solana-txcore/leveldb"
	"github.com/anyswap/solana-txcore/params"
	"github.com/anyswap/solana-txcore/tokens/solana"
	"github.com/anyswap/solana-txcore/types"
)

const signJob = "sign"

// ErrNotPendingFile is returned when processing a file without the pending suffix
var ErrNotPendingFile = errors.New("not a pending transaction file")

// SignWorker signs the base64 transactions of pending files
type SignWorker struct {
	Bridge  *solana.Bridge
	Signers []types.Signer
	Store   *leveldb.TxStore // keeps fully signed transactions, optional

	PendingSuffix string
	SignedSuffix  string
}

// NewSignWorker new sign worker, a nil watch config uses the default suffixes
func NewSignWorker(bridge *solana.Bridge, signers []types.Signer, store *leveldb.TxStore, watchCfg *params.WatchConfig) *SignWorker {
	w := &SignWorker{
		Bridge:        bridge,
		Signers:       signers,
		Store:         store,
		PendingSuffix: params.DefaultPendingSuffix,
		SignedSuffix:  params.DefaultSignedSuffix,
	}
	if watchCfg != nil {
		if watchCfg.PendingSuffix != "" {
			w.PendingSuffix = watchCfg.PendingSuffix
		}
		if watchCfg.SignedSuffix != "" {
			w.SignedSuffix = watchCfg.SignedSuffix
		}
	}
	return w
}

// SignedFileName returns the output file of a pending file
func (w *SignWorker) SignedFileName(fileName string) string {
	return strings.TrimSuffix(fileName, w.PendingSuffix) + w.SignedSuffix
}

// ProcessFile signs the transaction in fileName and writes it into the
// signed file. Fully signed transactions are also put into the store.
// The returned tx hash is empty while the fee payer has not signed.
func (w *SignWorker) ProcessFile(fileName string) (txHash string, err error) {
	if !strings.HasSuffix(fileName, w.PendingSuffix) {
		return "", fmt.Errorf("%w: %v", ErrNotPendingFile, fileName)
	}
	content, err := ioutil.ReadFile(fileName)
	if err != nil {
		return "", err
	}
	tx, err := types.TransactionFromBase64(strings.TrimSpace(string(content)))
	if err != nil {
		return "", fmt.Errorf("decode transaction failed: %w", err)
	}
	txHash, err = w.Bridge.SignTransaction(tx, w.Signers...)
	if err != nil {
		return "", err
	}
	if w.Store != nil && tx.IsFullySigned() {
		if _, err = w.Store.Put(tx); err != nil {
			return "", fmt.Errorf("store signed transaction failed: %w", err)
		}
	}
	signed, err := tx.ToBase64()
	if err != nil {
		return "", err
	}
	signedFile := w.SignedFileName(fileName)
	if err = ioutil.WriteFile(signedFile, []byte(signed+"\n"), 0600); err != nil {
		return "", err
	}
	logWorker(signJob, "sign pending file success", "file", fileName, "signedFile", signedFile, "txhash", txHash, "fullySigned", tx.IsFullySigned())
	return txHash, nil
}
