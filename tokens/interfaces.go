// Package tokens defines the transaction building interface and its errors.
package tokens

import (
	"github.com/anyswap/solana-txcore/types"
)

// TransferArgs transfer tx building args, keys are in base58
type TransferArgs struct {
	From     string
	To       string
	Amount   uint64
	FeePayer string `json:",omitempty"`

	// Mint selects a token transfer; From and To are token accounts and
	// Owner is the owner of From (defaults to the fee payer).
	Mint     string `json:",omitempty"`
	Owner    string `json:",omitempty"`
	Decimals uint8  `json:",omitempty"`

	RecentBlockhash string
}

// IsTokenTransfer is token transfer
func (args *TransferArgs) IsTokenTransfer() bool {
	return args.Mint != ""
}

// TxBuilder is implemented by chain bridges building transfer transactions
type TxBuilder interface {
	IsValidAddress(address string) bool
	PublicKeyToAddress(pubKeyHex string) (string, error)

	BuildTransferTransaction(args *TransferArgs) (*types.Transaction, error)
	SignTransaction(tx *types.Transaction, signers ...types.Signer) (txHash string, err error)
	VerifyTransactionWithArgs(tx *types.Transaction, args *TransferArgs) error
	VerifyMsgHash(tx *types.Transaction, msgHash []string) error
}
