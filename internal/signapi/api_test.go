package signapi

import (
	"testing"

	"github.com/anyswap/solana-txcore/leveldb"
	"github.com/anyswap/solana-txcore/tokens/solana"
	"github.com/anyswap/solana-txcore/types"
	"github.com/anyswap/solana-txcore/types/testkeys"
	rpcjson "github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/assert"
)

func initMemoryStore(t *testing.T) *leveldb.Database {
	db, err := leveldb.NewMemory()
	assert.Nil(t, err)
	t.Cleanup(func() { _ = db.Close() })
	Init(solana.NewBridge(nil), []types.Signer{testkeys.NewSigner(1)}, leveldb.NewTxStore(db))
	return db
}

func TestGetSignedTransactionErrors(t *testing.T) {
	db := initMemoryStore(t)

	_, err := GetSignedTransaction("0OIl")
	assert.Equal(t, errInvalidTxID, err)

	missing := types.Signature{1, 2, 3}
	_, err = GetSignedTransaction(missing.String())
	assert.Equal(t, errTxNotFound, err)

	corrupted := types.Signature{4, 5, 6}
	assert.Nil(t, db.Put(append([]byte("tx-"), corrupted[:]...), []byte{1, 2, 3}))
	_, err = GetSignedTransaction(corrupted.String())
	rpcErr, ok := err.(*rpcjson.Error)
	assert.True(t, ok, "err: %v", err)
	assert.Equal(t, rpcjson.ErrorCode(-32000), rpcErr.Code)
}

func TestSignTransactionStoresVerified(t *testing.T) {
	initMemoryStore(t)
	payer := testkeys.NewSigner(1)

	tx := types.NewTransaction().
		SetFeePayer(payer.PublicKey()).
		SetRecentBlockhash(testkeys.Hash(1)).
		AddInstruction(types.NewInstruction(testkeys.PublicKey(5), nil, []byte{1}))
	b64, err := tx.ToBase64()
	assert.Nil(t, err)

	result, err := SignTransaction(b64)
	assert.Nil(t, err)
	assert.True(t, result.FullySigned)

	rawTx, err := GetSignedTransaction(result.TxHash)
	assert.Nil(t, err)
	assert.Equal(t, result.Tx, rawTx)

	txids, err := ListSignedTransactions()
	assert.Nil(t, err)
	assert.Equal(t, []string{result.TxHash}, txids)
}
