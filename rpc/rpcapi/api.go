// Package rpcapi provides the json rpc service of the signer.
package rpcapi

import (
	"net/http"

	"github.com/anyswap/solana-txcore/internal/signapi"
	"github.com/anyswap/solana-txcore/params"
	"github.com/anyswap/solana-txcore/tokens"
)

// RPCAPI rpc api handler
type RPCAPI struct{}

// RPCNullArgs null args
type RPCNullArgs struct{}

// GetVersionInfo api
func (s *RPCAPI) GetVersionInfo(r *http.Request, args *RPCNullArgs, result *string) error {
	version := params.VersionWithMeta
	*result = version
	return nil
}

// GetServerInfo api
func (s *RPCAPI) GetServerInfo(r *http.Request, args *RPCNullArgs, result *signapi.ServerInfo) error {
	res, err := signapi.GetServerInfo()
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// BuildTransferTx api
func (s *RPCAPI) BuildTransferTx(r *http.Request, args *tokens.TransferArgs, result *signapi.BuildTxResult) error {
	res, err := signapi.BuildTransferTx(args)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// DecodeTransaction api
func (s *RPCAPI) DecodeTransaction(r *http.Request, rawTx *string, result *signapi.TxInfo) error {
	res, err := signapi.DecodeTransaction(*rawTx)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// SignTransaction api
func (s *RPCAPI) SignTransaction(r *http.Request, rawTx *string, result *signapi.SignTxResult) error {
	res, err := signapi.SignTransaction(*rawTx)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// GetSignedTransaction api
func (s *RPCAPI) GetSignedTransaction(r *http.Request, txid, result *string) error {
	res, err := signapi.GetSignedTransaction(*txid)
	if err == nil {
		*result = res
	}
	return err
}

// GetSignedTransactionInfo api
func (s *RPCAPI) GetSignedTransactionInfo(r *http.Request, txid *string, result *signapi.TxInfo) error {
	res, err := signapi.GetSignedTransactionInfo(*txid)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// ListSignedTransactions api
func (s *RPCAPI) ListSignedTransactions(r *http.Request, args *RPCNullArgs, result *[]string) error {
	res, err := signapi.ListSignedTransactions()
	if err == nil {
		*result = res
	}
	return err
}
