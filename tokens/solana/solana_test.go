package solana

import (
	"errors"
	"testing"

	"github.com/anyswap/solana-txcore/params"
	"github.com/anyswap/solana-txcore/programs/system"
	"github.com/anyswap/solana-txcore/programs/token"
	"github.com/anyswap/solana-txcore/tokens"
	"github.com/anyswap/solana-txcore/types"
	"github.com/anyswap/solana-txcore/types/testkeys"
	"github.com/stretchr/testify/assert"
)

var (
	payer     = testkeys.NewSigner(1)
	sender    = testkeys.NewSigner(2)
	receiver  = testkeys.PublicKey(3)
	mint      = testkeys.PublicKey(4)
	blockhash = testkeys.Hash(5).String()
)

func transferArgs() *tokens.TransferArgs {
	return &tokens.TransferArgs{
		From:            sender.PublicKey().String(),
		To:              receiver.String(),
		Amount:          1000,
		RecentBlockhash: blockhash,
	}
}

func TestAddress(t *testing.T) {
	b := NewBridge(nil)
	assert.True(t, b.IsValidAddress(system.ProgramID.String()))
	assert.False(t, b.IsValidAddress("0OIl"))
	assert.False(t, b.IsValidAddress(""))

	address, err := b.PublicKeyToAddress("0x0000000000000000000000000000000000000000000000000000000000000003")
	assert.Nil(t, err)
	assert.Equal(t, receiver.String(), address)
	_, err = b.PublicKeyToAddress("0102")
	assert.True(t, errors.Is(err, types.ErrInvalidLength), "err: %v", err)
}

func TestBuildSystemTransfer(t *testing.T) {
	b := NewBridge(nil)
	args := transferArgs()
	tx, err := b.BuildTransferTransaction(args)
	assert.Nil(t, err)

	feePayer, ok := tx.FeePayer()
	assert.True(t, ok)
	assert.Equal(t, sender.PublicKey(), feePayer)
	assert.Len(t, tx.Instructions(), 1)
	transfer, err := system.DecodeTransfer(&tx.Instructions()[0])
	assert.Nil(t, err)
	assert.Equal(t, &system.TransferParams{From: sender.PublicKey(), To: receiver, Lamports: 1000}, transfer)
	assert.Nil(t, b.VerifyTransactionWithArgs(tx, args))

	txHash, err := b.SignTransaction(tx, sender)
	assert.Nil(t, err)
	assert.Equal(t, tx.Signatures[0].String(), txHash)
	assert.Nil(t, tx.VerifySignatures())
}

func TestBuildTokenTransfer(t *testing.T) {
	b := NewBridge(&params.TransactionConfig{FeePayer: payer.PublicKey().String()})
	args := transferArgs()
	args.Mint = mint.String()
	args.Owner = sender.PublicKey().String()
	args.Decimals = 6

	tx, err := b.BuildTransferTransaction(args)
	assert.Nil(t, err)
	feePayer, _ := tx.FeePayer()
	assert.Equal(t, payer.PublicKey(), feePayer)
	ins := tx.Instructions()[0]
	assert.Equal(t, token.ProgramID, ins.ProgramID)
	assert.Nil(t, b.VerifyTransactionWithArgs(tx, args))

	_, err = b.SignTransaction(tx, payer)
	assert.True(t, errors.Is(err, tokens.ErrTxNotFullySigned), "err: %v", err)

	txHash, err := b.SignTransaction(tx, payer, sender)
	assert.Nil(t, err)
	assert.Equal(t, tx.Signatures[0].String(), txHash)
	assert.True(t, tx.IsFullySigned())
}

func TestBuildErrors(t *testing.T) {
	b := NewBridge(nil)

	args := transferArgs()
	args.From = ""
	_, err := b.BuildTransferTransaction(args)
	assert.NotNil(t, err)

	args = transferArgs()
	args.To = "bad-address-0"
	_, err = b.BuildTransferTransaction(args)
	assert.True(t, errors.Is(err, tokens.ErrWrongExtraArgs), "err: %v", err)

	args = transferArgs()
	args.RecentBlockhash = ""
	_, err = b.BuildTransferTransaction(args)
	assert.Equal(t, types.ErrMissingBlockhash, err)
}

func TestVerifyTransactionWithArgs(t *testing.T) {
	b := NewBridge(nil)
	tx, err := b.BuildTransferTransaction(transferArgs())
	assert.Nil(t, err)

	args := transferArgs()
	args.Amount++
	assert.Equal(t, tokens.ErrTxWithWrongValue, b.VerifyTransactionWithArgs(tx, args))

	args = transferArgs()
	args.To = testkeys.PublicKey(9).String()
	assert.Equal(t, tokens.ErrTxWithWrongReceiver, b.VerifyTransactionWithArgs(tx, args))

	args = transferArgs()
	args.FeePayer = payer.PublicKey().String()
	assert.Equal(t, tokens.ErrTxWithWrongFeePayer, b.VerifyTransactionWithArgs(tx, args))

	args = transferArgs()
	args.Mint = mint.String()
	args.Owner = sender.PublicKey().String()
	assert.Equal(t, tokens.ErrTxWithWrongProgram, b.VerifyTransactionWithArgs(tx, args))
	assert.True(t, tokens.IsTxVerifyError(b.VerifyTransactionWithArgs(tx, args)))

	tx.AddInstruction(system.NewTransferInstruction(sender.PublicKey(), receiver, 1))
	err = b.VerifyTransactionWithArgs(tx, transferArgs())
	assert.True(t, errors.Is(err, tokens.ErrTxWithWrongInstruction), "err: %v", err)
}

func TestVerifyMsgHash(t *testing.T) {
	b := NewBridge(nil)
	tx, err := b.BuildTransferTransaction(transferArgs())
	assert.Nil(t, err)
	msgHash, err := b.GetMsgHash(tx)
	assert.Nil(t, err)

	assert.Nil(t, b.VerifyMsgHash(tx, []string{msgHash}))
	assert.Nil(t, b.VerifyMsgHash(tx, []string{"0x" + msgHash}))
	assert.Equal(t, tokens.ErrWrongCountOfMsgHashes, b.VerifyMsgHash(tx, nil))
	assert.Equal(t, tokens.ErrMsgHashMismatch, b.VerifyMsgHash(tx, []string{msgHash + "00"}))
}

func TestPartialSign(t *testing.T) {
	b := NewBridge(&params.TransactionConfig{FeePayer: payer.PublicKey().String(), AllowPartialSign: true})
	tx, err := b.BuildTransferTransaction(transferArgs())
	assert.Nil(t, err)

	stranger := testkeys.NewSigner(77)
	_, err = b.SignTransaction(tx, stranger)
	assert.Equal(t, tokens.ErrNoMatchingSigner, err)

	txHash, err := b.SignTransaction(tx, sender, stranger)
	assert.Nil(t, err)
	assert.Equal(t, "", txHash)
	assert.False(t, tx.IsFullySigned())
	assert.True(t, tx.SignedSlots().Test(1))

	txHash, err = b.SignTransaction(tx, payer)
	assert.Nil(t, err)
	assert.Equal(t, tx.Signatures[0].String(), txHash)
	assert.True(t, tx.IsFullySigned())
	assert.Nil(t, tx.VerifySignatures())
}

func TestCheckTransactionSize(t *testing.T) {
	b := NewBridge(&params.TransactionConfig{MaxRawTxSize: 100})
	_, err := b.BuildTransferTransaction(transferArgs())
	assert.True(t, errors.Is(err, tokens.ErrTransactionTooLarge), "err: %v", err)
}
