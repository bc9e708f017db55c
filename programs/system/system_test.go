package system

import (
	"errors"
	"testing"

	"github.com/anyswap/solana-txcore/programs"
	"github.com/anyswap/solana-txcore/types"
	"github.com/anyswap/solana-txcore/types/testkeys"
	"github.com/stretchr/testify/assert"
)

func TestTransferInstruction(t *testing.T) {
	from, to := testkeys.PublicKey(1), testkeys.PublicKey(2)
	ins := NewTransferInstruction(from, to, 1000000)

	assert.Equal(t, ProgramID, ins.ProgramID)
	assert.True(t, ProgramID.IsZero())
	assert.Equal(t, []byte{2, 0, 0, 0, 0x40, 0x42, 0x0f, 0, 0, 0, 0, 0}, ins.Data)
	assert.Equal(t, types.AccountMetaSlice{
		{PublicKey: from, IsSigner: true, IsWritable: true},
		{PublicKey: to, IsSigner: false, IsWritable: true},
	}, ins.Accounts)

	params, err := DecodeTransfer(&ins)
	assert.Nil(t, err)
	assert.Equal(t, &TransferParams{From: from, To: to, Lamports: 1000000}, params)

	instructionType, err := DecodeInstructionType(ins.Data)
	assert.Nil(t, err)
	assert.Equal(t, InstructionTransfer, instructionType)
}

func TestCreateAccountInstruction(t *testing.T) {
	from, account, owner := testkeys.PublicKey(1), testkeys.PublicKey(2), testkeys.PublicKey(3)
	ins := NewCreateAccountInstruction(from, account, 2039280, 165, owner)
	assert.Equal(t, 4+8+8+32, len(ins.Data))
	assert.True(t, ins.Accounts[1].IsSigner)

	params, err := DecodeCreateAccount(&ins)
	assert.Nil(t, err)
	assert.Equal(t, &CreateAccountParams{
		From:       from,
		NewAccount: account,
		Lamports:   2039280,
		Space:      165,
		Owner:      owner,
	}, params)
}

func TestAssignAndAllocate(t *testing.T) {
	account := testkeys.PublicKey(4)
	ins := NewAssignInstruction(account, testkeys.PublicKey(5))
	assert.Equal(t, byte(InstructionAssign), ins.Data[0])
	assert.Equal(t, 4+32, len(ins.Data))

	ins = NewAllocateInstruction(account, 10)
	assert.Equal(t, []byte{8, 0, 0, 0, 10, 0, 0, 0, 0, 0, 0, 0}, ins.Data)
}

func TestDecodeErrors(t *testing.T) {
	from, to := testkeys.PublicKey(1), testkeys.PublicKey(2)

	ins := NewTransferInstruction(from, to, 5)
	ins.ProgramID = testkeys.PublicKey(9)
	_, err := DecodeTransfer(&ins)
	assert.True(t, errors.Is(err, programs.ErrWrongProgram), "err: %v", err)

	ins = NewTransferInstruction(from, to, 5)
	ins.Accounts = ins.Accounts[:1]
	_, err = DecodeTransfer(&ins)
	assert.True(t, errors.Is(err, programs.ErrNotEnoughAccounts), "err: %v", err)

	ins = NewTransferInstruction(from, to, 5)
	ins.Data = ins.Data[:6]
	_, err = DecodeTransfer(&ins)
	assert.True(t, errors.Is(err, programs.ErrInvalidInstructionData), "err: %v", err)

	ins = NewTransferInstruction(from, to, 5)
	ins.Data = append(ins.Data, 0)
	_, err = DecodeTransfer(&ins)
	assert.True(t, errors.Is(err, programs.ErrInvalidInstructionData), "err: %v", err)

	ins = NewAllocateInstruction(from, 5)
	ins.Accounts = append(ins.Accounts, types.NewAccountMeta(to, true, false))
	_, err = DecodeTransfer(&ins)
	assert.True(t, errors.Is(err, programs.ErrWrongInstructionType), "err: %v", err)

	_, err = DecodeInstructionType([]byte{1})
	assert.True(t, errors.Is(err, programs.ErrInvalidInstructionData), "err: %v", err)
}
