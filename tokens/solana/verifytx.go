package solana

import (
	"fmt"
	"strings"

	"github.com/anyswap/solana-txcore/programs/system"
	"github.com/anyswap/solana-txcore/programs/token"
	"github.com/anyswap/solana-txcore/tokens"
	"github.com/anyswap/solana-txcore/types"
)

// VerifyMsgHash verify msg hash
func (b *Bridge) VerifyMsgHash(tx *types.Transaction, msgHash []string) error {
	if len(msgHash) != 1 {
		return tokens.ErrWrongCountOfMsgHashes
	}
	want, err := b.GetMsgHash(tx)
	if err != nil {
		return err
	}
	mh := strings.TrimPrefix(strings.TrimPrefix(msgHash[0], "0x"), "0X")
	if !strings.EqualFold(want, mh) {
		return tokens.ErrMsgHashMismatch
	}
	return nil
}

// VerifyTransactionWithArgs checks tx is the transfer described by args
func (b *Bridge) VerifyTransactionWithArgs(tx *types.Transaction, args *tokens.TransferArgs) error {
	keys, err := b.resolveKeys(args)
	if err != nil {
		return err
	}
	if feePayer, ok := tx.FeePayer(); !ok || feePayer != keys.feePayer {
		return tokens.ErrTxWithWrongFeePayer
	}
	if args.RecentBlockhash != "" {
		if blockhash, ok := tx.RecentBlockhash(); !ok || blockhash.String() != args.RecentBlockhash {
			return fmt.Errorf("%w: recent blockhash mismatch", tokens.ErrWrongRawTx)
		}
	}
	instructions := tx.Instructions()
	if len(instructions) != 1 {
		return fmt.Errorf("%w: have %v instructions", tokens.ErrTxWithWrongInstruction, len(instructions))
	}
	ins := &instructions[0]
	if args.IsTokenTransfer() {
		return verifyTokenTransfer(ins, &keys, args)
	}
	return verifySystemTransfer(ins, &keys, args)
}

func verifySystemTransfer(ins *types.Instruction, keys *transferKeys, args *tokens.TransferArgs) error {
	if ins.ProgramID != system.ProgramID {
		return tokens.ErrTxWithWrongProgram
	}
	transfer, err := system.DecodeTransfer(ins)
	if err != nil {
		return fmt.Errorf("%w: %v", tokens.ErrTxWithWrongInstruction, err)
	}
	switch {
	case transfer.From != keys.from:
		return tokens.ErrTxWithWrongSender
	case transfer.To != keys.to:
		return tokens.ErrTxWithWrongReceiver
	case transfer.Lamports != args.Amount:
		return tokens.ErrTxWithWrongValue
	}
	return nil
}

func verifyTokenTransfer(ins *types.Instruction, keys *transferKeys, args *tokens.TransferArgs) error {
	if ins.ProgramID != token.ProgramID {
		return tokens.ErrTxWithWrongProgram
	}
	transfer, err := token.DecodeTransferChecked(ins)
	if err != nil {
		return fmt.Errorf("%w: %v", tokens.ErrTxWithWrongInstruction, err)
	}
	switch {
	case transfer.Source != keys.from, transfer.Owner != keys.owner:
		return tokens.ErrTxWithWrongSender
	case transfer.Destination != keys.to:
		return tokens.ErrTxWithWrongReceiver
	case transfer.Mint != keys.mint, transfer.Decimals != args.Decimals:
		return tokens.ErrTxWithWrongToken
	case transfer.Amount != args.Amount:
		return tokens.ErrTxWithWrongValue
	}
	return nil
}
