// Package system builds and decodes instructions of the system program.
package system

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"

	"github.com/anyswap/solana-txcore/programs"
	"github.com/anyswap/solana-txcore/types"
)

// ProgramID is the address of the system program.
var ProgramID = types.MustPublicKeyFromBase58("11111111111111111111111111111111")

// instruction types, encoded as little-endian u32
const (
	InstructionCreateAccount uint32 = iota
	InstructionAssign
	InstructionTransfer
	InstructionCreateAccountWithSeed
	InstructionAdvanceNonceAccount
	InstructionWithdrawNonceAccount
	InstructionInitializeNonceAccount
	InstructionAuthorizeNonceAccount
	InstructionAllocate
)

// CreateAccountParams are the arguments of a create account instruction.
type CreateAccountParams struct {
	From       types.PublicKey
	NewAccount types.PublicKey
	Lamports   uint64
	Space      uint64
	Owner      types.PublicKey
}

// TransferParams are the arguments of a transfer instruction.
type TransferParams struct {
	From     types.PublicKey
	To       types.PublicKey
	Lamports uint64
}

func encodeData(write func(encoder *bin.Encoder) error) []byte {
	buf := new(bytes.Buffer)
	if err := write(bin.NewBinEncoder(buf)); err != nil {
		panic("shouldn't fail")
	}
	return buf.Bytes()
}

// NewCreateAccountInstruction creates newAccount funded by from and owned by owner.
func NewCreateAccountInstruction(from, newAccount types.PublicKey, lamports, space uint64, owner types.PublicKey) types.Instruction {
	data := encodeData(func(encoder *bin.Encoder) error {
		if err := encoder.WriteUint32(InstructionCreateAccount, bin.LE); err != nil {
			return err
		}
		if err := encoder.WriteUint64(lamports, bin.LE); err != nil {
			return err
		}
		if err := encoder.WriteUint64(space, bin.LE); err != nil {
			return err
		}
		return encoder.WriteBytes(owner[:], false)
	})
	return types.NewInstruction(ProgramID, types.AccountMetaSlice{
		types.NewAccountMeta(from, true, true),
		types.NewAccountMeta(newAccount, true, true),
	}, data)
}

// NewAssignInstruction assigns account to owner.
func NewAssignInstruction(account, owner types.PublicKey) types.Instruction {
	data := encodeData(func(encoder *bin.Encoder) error {
		if err := encoder.WriteUint32(InstructionAssign, bin.LE); err != nil {
			return err
		}
		return encoder.WriteBytes(owner[:], false)
	})
	return types.NewInstruction(ProgramID, types.AccountMetaSlice{
		types.NewAccountMeta(account, true, true),
	}, data)
}

// NewTransferInstruction moves lamports from a signing account to another account.
func NewTransferInstruction(from, to types.PublicKey, lamports uint64) types.Instruction {
	data := encodeData(func(encoder *bin.Encoder) error {
		if err := encoder.WriteUint32(InstructionTransfer, bin.LE); err != nil {
			return err
		}
		return encoder.WriteUint64(lamports, bin.LE)
	})
	return types.NewInstruction(ProgramID, types.AccountMetaSlice{
		types.NewAccountMeta(from, true, true),
		types.NewAccountMeta(to, true, false),
	}, data)
}

// NewAllocateInstruction allocates space bytes of data for account.
func NewAllocateInstruction(account types.PublicKey, space uint64) types.Instruction {
	data := encodeData(func(encoder *bin.Encoder) error {
		if err := encoder.WriteUint32(InstructionAllocate, bin.LE); err != nil {
			return err
		}
		return encoder.WriteUint64(space, bin.LE)
	})
	return types.NewInstruction(ProgramID, types.AccountMetaSlice{
		types.NewAccountMeta(account, true, true),
	}, data)
}

// DecodeInstructionType reads the instruction type of system program data.
func DecodeInstructionType(data []byte) (uint32, error) {
	instructionType, err := bin.NewBinDecoder(data).ReadUint32(bin.LE)
	if err != nil {
		return 0, programs.InvalidData(err)
	}
	return instructionType, nil
}

// newDecoder checks ins and returns a decoder positioned after its instruction type.
func newDecoder(ins *types.Instruction, want uint32, minAccounts int) (*bin.Decoder, error) {
	if err := programs.CheckInstruction(ins, ProgramID, minAccounts); err != nil {
		return nil, err
	}
	decoder := bin.NewBinDecoder(ins.Data)
	instructionType, err := decoder.ReadUint32(bin.LE)
	if err != nil {
		return nil, programs.InvalidData(err)
	}
	if instructionType != want {
		return nil, fmt.Errorf("%w: have %d, want %d", programs.ErrWrongInstructionType, instructionType, want)
	}
	return decoder, nil
}

func checkFullyRead(decoder *bin.Decoder) error {
	if decoder.Remaining() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", programs.ErrInvalidInstructionData, decoder.Remaining())
	}
	return nil
}

// DecodeTransfer parses a transfer instruction.
func DecodeTransfer(ins *types.Instruction) (*TransferParams, error) {
	decoder, err := newDecoder(ins, InstructionTransfer, 2)
	if err != nil {
		return nil, err
	}
	lamports, err := decoder.ReadUint64(bin.LE)
	if err != nil {
		return nil, programs.InvalidData(err)
	}
	if err = checkFullyRead(decoder); err != nil {
		return nil, err
	}
	return &TransferParams{
		From:     ins.Accounts[0].PublicKey,
		To:       ins.Accounts[1].PublicKey,
		Lamports: lamports,
	}, nil
}

// DecodeCreateAccount parses a create account instruction.
func DecodeCreateAccount(ins *types.Instruction) (*CreateAccountParams, error) {
	decoder, err := newDecoder(ins, InstructionCreateAccount, 2)
	if err != nil {
		return nil, err
	}
	params := &CreateAccountParams{
		From:       ins.Accounts[0].PublicKey,
		NewAccount: ins.Accounts[1].PublicKey,
	}
	if params.Lamports, err = decoder.ReadUint64(bin.LE); err != nil {
		return nil, programs.InvalidData(err)
	}
	if params.Space, err = decoder.ReadUint64(bin.LE); err != nil {
		return nil, programs.InvalidData(err)
	}
	owner, err := decoder.ReadBytes(types.PublicKeyLength)
	if err != nil {
		return nil, programs.InvalidData(err)
	}
	copy(params.Owner[:], owner)
	if err = checkFullyRead(decoder); err != nil {
		return nil, err
	}
	return params, nil
}
