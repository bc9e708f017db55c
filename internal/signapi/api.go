// Package signapi implements the api service of the signer.
package signapi

import (
	"errors"

	"github.com/anyswap/solana-txcore/leveldb"
	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/params"
	"github.com/anyswap/solana-txcore/tokens"
	"github.com/anyswap/solana-txcore/tokens/solana"
	"github.com/anyswap/solana-txcore/types"
	rpcjson "github.com/gorilla/rpc/v2/json2"
)

var (
	errNoSigner    = newRPCError(-32096, "no signer is loaded")
	errNoTxStore   = newRPCError(-32095, "no tx store is opened")
	errTxNotFound  = newRPCError(-32094, "tx not found")
	errInvalidTxID = newRPCError(-32093, "invalid txid")

	bridge  = solana.NewBridge(nil)
	signers []types.Signer
	txStore *leveldb.TxStore
)

// Init set the bridge, signers and store serving the api
func Init(b *solana.Bridge, s []types.Signer, store *leveldb.TxStore) {
	bridge = b
	signers = s
	txStore = store
}

func newRPCError(ec rpcjson.ErrorCode, message string) error {
	return &rpcjson.Error{
		Code:    ec,
		Message: message,
	}
}

func newRPCInternalError(err error) error {
	return newRPCError(-32000, "rpcError: "+err.Error())
}

// GetServerInfo api
func GetServerInfo() (*ServerInfo, error) {
	log.Debug("[api] receive GetServerInfo")
	info := &ServerInfo{
		FeePayer:         bridge.TxConfig.FeePayer,
		MaxRawTxSize:     bridge.GetMaxRawTxSize(),
		AllowPartialSign: bridge.TxConfig.AllowPartialSign,
		Version:          params.VersionWithMeta,
	}
	if config := params.GetConfig(); config != nil {
		info.Identifier = config.Identifier
	}
	for _, signer := range signers {
		info.Signers = append(info.Signers, signer.PublicKey().String())
	}
	return info, nil
}

// BuildTransferTx api
func BuildTransferTx(args *tokens.TransferArgs) (*BuildTxResult, error) {
	log.Debug("[api] receive BuildTransferTx", "args", args)
	tx, err := bridge.BuildTransferTransaction(args)
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	return newBuildTxResult(tx)
}

func newBuildTxResult(tx *types.Transaction) (*BuildTxResult, error) {
	msgHash, err := bridge.GetMsgHash(tx)
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	b64, err := tx.ToBase64()
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	return &BuildTxResult{Tx: b64, MsgHash: msgHash}, nil
}

// DecodeTransaction api
func DecodeTransaction(rawTx string) (*TxInfo, error) {
	tx, err := types.TransactionFromBase64(rawTx)
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	info, err := ConvertTransactionToTxInfo(tx)
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	return info, nil
}

// SignTransaction api, fully signed tx is kept in the store
func SignTransaction(rawTx string) (*SignTxResult, error) {
	if len(signers) == 0 {
		return nil, errNoSigner
	}
	tx, err := types.TransactionFromBase64(rawTx)
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	txHash, err := bridge.SignTransaction(tx, signers...)
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	fullySigned := tx.IsFullySigned()
	if fullySigned && txStore != nil {
		if _, err = txStore.Put(tx); err != nil {
			return nil, newRPCInternalError(err)
		}
	}
	b64, err := tx.ToBase64()
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	result := &SignTxResult{
		Tx:          b64,
		TxHash:      txHash,
		FullySigned: fullySigned,
	}
	slots := tx.SignedSlots()
	for i, ok := slots.NextSet(0); ok; i, ok = slots.NextSet(i + 1) {
		result.SignedSlots = append(result.SignedSlots, i)
	}
	return result, nil
}

func parseTxID(txid string) (types.Signature, error) {
	sig, err := types.SignatureFromBase58(txid)
	if err != nil {
		return sig, errInvalidTxID
	}
	return sig, nil
}

// GetSignedTransaction api
func GetSignedTransaction(txid string) (string, error) {
	if txStore == nil {
		return "", errNoTxStore
	}
	sig, err := parseTxID(txid)
	if err != nil {
		return "", err
	}
	tx, err := txStore.Get(sig)
	if errors.Is(err, leveldb.ErrTxNotFound) {
		return "", errTxNotFound
	}
	if err != nil {
		return "", newRPCInternalError(err)
	}
	b64, err := tx.ToBase64()
	if err != nil {
		return "", newRPCInternalError(err)
	}
	return b64, nil
}

// GetSignedTransactionInfo api
func GetSignedTransactionInfo(txid string) (*TxInfo, error) {
	rawTx, err := GetSignedTransaction(txid)
	if err != nil {
		return nil, err
	}
	return DecodeTransaction(rawTx)
}

// ListSignedTransactions api
func ListSignedTransactions() ([]string, error) {
	if txStore == nil {
		return nil, errNoTxStore
	}
	txids, err := txStore.List()
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	result := make([]string, len(txids))
	for i, txid := range txids {
		result[i] = txid.String()
	}
	return result, nil
}

// DeleteSignedTransaction api
func DeleteSignedTransaction(txid string) error {
	if txStore == nil {
		return errNoTxStore
	}
	sig, err := parseTxID(txid)
	if err != nil {
		return err
	}
	has, err := txStore.Has(sig)
	if err != nil {
		return newRPCInternalError(err)
	}
	if !has {
		return errTxNotFound
	}
	if err = txStore.Delete(sig); err != nil {
		return newRPCInternalError(err)
	}
	log.Info("[api] delete signed tx success", "txid", txid)
	return nil
}
