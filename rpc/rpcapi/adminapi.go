package rpcapi

import (
	"fmt"
	"net/http"

	"github.com/anyswap/solana-txcore/admin"
	"github.com/anyswap/solana-txcore/internal/signapi"
	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/params"
)

const (
	successReuslt = "Success"
)

// AdminCall admin call
func (s *RPCAPI) AdminCall(r *http.Request, rawTx, result *string) (err error) {
	if !params.HasAdmin() {
		return fmt.Errorf("no admin is configed")
	}
	tx, err := admin.DecodeTransaction(*rawTx)
	if err != nil {
		return err
	}
	sender, args, err := admin.VerifyTransaction(tx)
	if err != nil {
		return err
	}
	if !params.IsAdmin(sender.String()) {
		return fmt.Errorf("sender %v is not admin", sender.String())
	}
	log.Info("receive admin call", "sender", sender.String(), "method", args.Method, "params", args.Params)
	return doCall(args, result)
}

func doCall(args *admin.CallArgs, result *string) error {
	switch args.Method {
	case "deletetx":
		return deletetx(args, result)
	default:
		return fmt.Errorf("unknown admin method '%v'", args.Method)
	}
}

func deletetx(args *admin.CallArgs, result *string) (err error) {
	if len(args.Params) == 0 {
		return fmt.Errorf("wrong number of params, have %v want at least 1", len(args.Params))
	}
	for _, txid := range args.Params {
		if err = signapi.DeleteSignedTransaction(txid); err != nil {
			*result = err.Error()
			return err
		}
	}
	*result = successReuslt
	return nil
}
