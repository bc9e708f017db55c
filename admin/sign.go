// Package admin provides methods to sign admin calls and to verify signed
// admin calls. An admin call is a solana transaction paid by the admin with
// one instruction to the admin call program carrying the json call args.
package admin

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/tools"
	"github.com/anyswap/solana-txcore/tools/keystore"
	"github.com/anyswap/solana-txcore/types"
)

var (
	// CallProgramID the program id of admin call instructions, never deployed
	CallProgramID = func() (id types.PublicKey) {
		id[types.PublicKeyLength-1] = 0xcc
		return id
	}()

	keyWrapper *keystore.Key

	// admin tx lifetime
	maxExpireSeconds int64 = 120
	maxFutureSeconds int64 = 30
)

// CallArgs call args
type CallArgs struct {
	Method    string   `json:"method"`
	Params    []string `json:"params"`
	Timestamp int64    `json:"timestamp"`
}

// Sign sign admin call with the loaded keystore
func Sign(method string, params []string) (rawTx string, err error) {
	if keyWrapper == nil {
		return "", errors.New("admin keystore is not loaded")
	}
	return SignWithKey(keyWrapper, method, params)
}

// SignWithKey sign admin call with signer
func SignWithKey(signer types.Signer, method string, params []string) (rawTx string, err error) {
	log.Info("admin Sign", "method", method, "params", params)
	payload, err := encodeCallArgs(method, params)
	if err != nil {
		return "", err
	}
	admin := signer.PublicKey()
	tx := types.NewTransaction().
		SetFeePayer(admin).
		SetRecentBlockhash(types.Hash{}).
		AddInstruction(types.NewInstruction(CallProgramID, types.AccountMetaSlice{
			types.NewAccountMeta(admin, false, true),
		}, payload))
	if err = tx.Sign(signer); err != nil {
		return "", err
	}
	return tx.ToBase64()
}

// LoadKeyStore load keystore
func LoadKeyStore(keyfile, passfile string) error {
	key, err := tools.LoadKeyStore(keyfile, passfile)
	if err != nil {
		return err
	}
	keyWrapper = key
	log.Info("[admin] load keystore success", "address", keyWrapper.Address())
	return nil
}

func encodeCallArgs(method string, params []string) ([]byte, error) {
	args := CallArgs{
		Method:    method,
		Params:    params,
		Timestamp: time.Now().Unix(),
	}
	return json.Marshal(args)
}

func decodeCallArgs(data []byte) (*CallArgs, error) {
	var args CallArgs
	err := json.Unmarshal(data, &args)
	if err != nil {
		return nil, err
	}
	return &args, nil
}

// VerifyTransaction verify signature and timestamp, returns the admin
func VerifyTransaction(tx *types.Transaction) (*types.PublicKey, *CallArgs, error) {
	instructions := tx.Instructions()
	if len(instructions) != 1 || instructions[0].ProgramID != CallProgramID {
		return nil, nil, errors.New("wrong admin tx instruction")
	}
	args, err := decodeCallArgs(instructions[0].Data)
	if err != nil {
		return nil, nil, err
	}
	timestamp := args.Timestamp
	now := time.Now().Unix()
	if now-timestamp > maxExpireSeconds {
		return nil, nil, errors.New("expired admin tx timestamp")
	}
	if now+maxFutureSeconds < timestamp {
		return nil, nil, errors.New("future admin tx timestamp")
	}
	if err = tx.VerifySignatures(); err != nil {
		return nil, nil, err
	}
	sender, ok := tx.FeePayer()
	if !ok {
		return nil, nil, types.ErrMissingFeePayer
	}
	return &sender, args, nil
}

// DecodeTransaction decode tx from base64 string
func DecodeTransaction(rawTx string) (*types.Transaction, error) {
	return types.TransactionFromBase64(rawTx)
}
