// Package restapi provides the restful api service of the signer.
package restapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/anyswap/solana-txcore/internal/signapi"
	"github.com/anyswap/solana-txcore/params"
	"github.com/gorilla/mux"
)

func writeResponse(w http.ResponseWriter, resp interface{}, err error) {
	if err == nil {
		jsonData, _ := json.Marshal(resp)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(jsonData)
	} else {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, err.Error())
	}
}

// VersionInfoHandler handler
func VersionInfoHandler(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, params.VersionWithMeta, nil)
}

// ServerInfoHandler handler
func ServerInfoHandler(w http.ResponseWriter, r *http.Request) {
	res, err := signapi.GetServerInfo()
	writeResponse(w, res, err)
}

// SignedTxHandler handler
func SignedTxHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := signapi.GetSignedTransactionInfo(vars["txid"])
	writeResponse(w, res, err)
}

// RawSignedTxHandler handler
func RawSignedTxHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := signapi.GetSignedTransaction(vars["txid"])
	writeResponse(w, res, err)
}

// SignedTxsHandler handler
func SignedTxsHandler(w http.ResponseWriter, r *http.Request) {
	res, err := signapi.ListSignedTransactions()
	writeResponse(w, res, err)
}
