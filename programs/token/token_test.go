package token

import (
	"errors"
	"testing"

	"github.com/anyswap/solana-txcore/programs"
	"github.com/anyswap/solana-txcore/types"
	"github.com/anyswap/solana-txcore/types/testkeys"
	"github.com/stretchr/testify/assert"
)

var (
	source      = testkeys.PublicKey(1)
	destination = testkeys.PublicKey(2)
	owner       = testkeys.PublicKey(3)
	mint        = testkeys.PublicKey(4)
)

func TestProgramIDs(t *testing.T) {
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", ProgramID.String())
	assert.Equal(t, "SysvarRent111111111111111111111111111111111", SysvarRentPubkey.String())
	assert.Equal(t, "TransferChecked", TransferChecked.String())
	assert.Equal(t, "Unknown", InstructionType(16).String())
}

func TestInstructionTypes(t *testing.T) {
	freeze := testkeys.PublicKey(5)
	tests := []struct {
		ins     types.Instruction
		want    InstructionType
		dataLen int
	}{
		{NewInitializeMintInstruction(InitializeMintParams{Mint: mint, MintAuthority: owner, Decimals: 6}), InitializeMint, 67},
		{NewInitializeAccountInstruction(InitializeAccountParams{Account: source, Mint: mint, Owner: owner}), InitializeAccount, 1},
		{NewInitializeMultisigInstruction(InitializeMultisigParams{Multisig: source, Signers: []types.PublicKey{owner}, M: 1}), InitializeMultisig, 2},
		{NewTransferInstruction(TransferParams{Source: source, Destination: destination, Owner: owner, Amount: 1}), Transfer, 9},
		{NewApproveInstruction(ApproveParams{Source: source, Delegate: destination, Owner: owner, Amount: 1}), Approve, 9},
		{NewRevokeInstruction(RevokeParams{Account: source, Owner: owner}), Revoke, 1},
		{NewSetAuthorityInstruction(SetAuthorityParams{Account: source, CurrentAuthority: owner, AuthorityType: AuthorityCloseAccount, NewAuthority: &freeze}), SetAuthority, 35},
		{NewMintToInstruction(MintToParams{Mint: mint, Destination: destination, Authority: owner, Amount: 1}), MintTo, 9},
		{NewBurnInstruction(BurnParams{Account: source, Mint: mint, Owner: owner, Amount: 1}), Burn, 9},
		{NewCloseAccountInstruction(CloseAccountParams{Account: source, Destination: destination, Owner: owner}), CloseAccount, 1},
		{NewFreezeAccountInstruction(FreezeAccountParams{Account: source, Mint: mint, Authority: freeze}), FreezeAccount, 1},
		{NewThawAccountInstruction(FreezeAccountParams{Account: source, Mint: mint, Authority: freeze}), ThawAccount, 1},
		{NewTransferCheckedInstruction(TransferCheckedParams{Source: source, Mint: mint, Destination: destination, Owner: owner, Amount: 1, Decimals: 6}), TransferChecked, 10},
		{NewApproveCheckedInstruction(ApproveCheckedParams{Source: source, Mint: mint, Delegate: destination, Owner: owner, Amount: 1, Decimals: 6}), ApproveChecked, 10},
		{NewMintToCheckedInstruction(MintToCheckedParams{Mint: mint, Destination: destination, Authority: owner, Amount: 1, Decimals: 6}), MintToChecked, 10},
		{NewBurnCheckedInstruction(BurnCheckedParams{Account: source, Mint: mint, Owner: owner, Amount: 1, Decimals: 6}), BurnChecked, 10},
	}
	for _, test := range tests {
		assert.Equal(t, ProgramID, test.ins.ProgramID, "%v", test.want)
		assert.Equal(t, test.dataLen, len(test.ins.Data), "%v", test.want)
		instructionType, err := DecodeInstructionType(test.ins.Data)
		assert.Nil(t, err)
		assert.Equal(t, test.want, instructionType)
	}
}

func TestTransferSingleOwner(t *testing.T) {
	ins := NewTransferInstruction(TransferParams{
		Source:      source,
		Destination: destination,
		Owner:       owner,
		Amount:      1000,
	})
	assert.Equal(t, []byte{3, 0xe8, 0x03, 0, 0, 0, 0, 0, 0}, ins.Data)
	assert.Equal(t, types.AccountMetaSlice{
		types.NewAccountMeta(source, true, false),
		types.NewAccountMeta(destination, true, false),
		types.NewAccountMeta(owner, false, true),
	}, ins.Accounts)

	params, err := DecodeTransfer(&ins)
	assert.Nil(t, err)
	assert.Equal(t, source, params.Source)
	assert.Equal(t, destination, params.Destination)
	assert.Equal(t, owner, params.Owner)
	assert.Nil(t, params.Signers)
	assert.Equal(t, uint64(1000), params.Amount)
}

func TestTransferMultisigOwner(t *testing.T) {
	signers := []types.PublicKey{testkeys.PublicKey(10), testkeys.PublicKey(11)}
	ins := NewTransferInstruction(TransferParams{
		Source:      source,
		Destination: destination,
		Owner:       owner,
		Signers:     signers,
		Amount:      7,
	})
	assert.Equal(t, types.AccountMetaSlice{
		types.NewAccountMeta(source, true, false),
		types.NewAccountMeta(destination, true, false),
		types.NewAccountMeta(owner, false, false),
		types.NewAccountMeta(signers[0], false, true),
		types.NewAccountMeta(signers[1], false, true),
	}, ins.Accounts)

	params, err := DecodeTransfer(&ins)
	assert.Nil(t, err)
	assert.Equal(t, signers, params.Signers)
}

func TestInitializeMint(t *testing.T) {
	freeze := testkeys.PublicKey(9)
	ins := NewInitializeMintInstruction(InitializeMintParams{
		Mint:            mint,
		MintAuthority:   owner,
		FreezeAuthority: &freeze,
		Decimals:        9,
	})
	assert.Equal(t, SysvarRentPubkey, ins.Accounts[1].PublicKey)
	assert.Equal(t, byte(9), ins.Data[1])
	assert.Equal(t, byte(1), ins.Data[34])

	params, err := DecodeInitializeMint(&ins)
	assert.Nil(t, err)
	assert.Equal(t, &InitializeMintParams{
		Mint:            mint,
		MintAuthority:   owner,
		FreezeAuthority: &freeze,
		Decimals:        9,
	}, params)

	ins = NewInitializeMintInstruction(InitializeMintParams{Mint: mint, MintAuthority: owner})
	params, err = DecodeInitializeMint(&ins)
	assert.Nil(t, err)
	assert.Nil(t, params.FreezeAuthority)
}

func TestInitializeAccountAndMultisig(t *testing.T) {
	ins := NewInitializeAccountInstruction(InitializeAccountParams{Account: source, Mint: mint, Owner: owner})
	account, err := DecodeInitializeAccount(&ins)
	assert.Nil(t, err)
	assert.Equal(t, &InitializeAccountParams{Account: source, Mint: mint, Owner: owner}, account)

	signers := testkeys.Keys(3)
	ins = NewInitializeMultisigInstruction(InitializeMultisigParams{Multisig: source, Signers: signers, M: 2})
	multisig, err := DecodeInitializeMultisig(&ins)
	assert.Nil(t, err)
	assert.Equal(t, &InitializeMultisigParams{Multisig: source, Signers: signers, M: 2}, multisig)

	ins = NewInitializeMultisigInstruction(InitializeMultisigParams{Multisig: source, Signers: signers, M: 4})
	_, err = DecodeInitializeMultisig(&ins)
	assert.True(t, errors.Is(err, programs.ErrNotEnoughAccounts), "err: %v", err)
}

func TestTransferCheckedAndClose(t *testing.T) {
	ins := NewTransferCheckedInstruction(TransferCheckedParams{
		Source:      source,
		Mint:        mint,
		Destination: destination,
		Owner:       owner,
		Amount:      500,
		Decimals:    6,
	})
	transfer, err := DecodeTransferChecked(&ins)
	assert.Nil(t, err)
	assert.Equal(t, mint, transfer.Mint)
	assert.Equal(t, uint64(500), transfer.Amount)
	assert.Equal(t, uint8(6), transfer.Decimals)

	ins = NewCloseAccountInstruction(CloseAccountParams{Account: source, Destination: destination, Owner: owner})
	closed, err := DecodeCloseAccount(&ins)
	assert.Nil(t, err)
	assert.Equal(t, &CloseAccountParams{Account: source, Destination: destination, Owner: owner}, closed)
}

func TestDecodeErrors(t *testing.T) {
	ins := NewTransferInstruction(TransferParams{Source: source, Destination: destination, Owner: owner, Amount: 1})

	wrongType := ins
	_, err := DecodeCloseAccount(&wrongType)
	assert.True(t, errors.Is(err, programs.ErrWrongInstructionType), "err: %v", err)

	short := ins
	short.Data = ins.Data[:5]
	_, err = DecodeTransfer(&short)
	assert.True(t, errors.Is(err, programs.ErrInvalidInstructionData), "err: %v", err)

	long := ins
	long.Data = append(append([]byte{}, ins.Data...), 0)
	_, err = DecodeTransfer(&long)
	assert.True(t, errors.Is(err, programs.ErrInvalidInstructionData), "err: %v", err)

	other := ins
	other.ProgramID = testkeys.PublicKey(99)
	_, err = DecodeTransfer(&other)
	assert.True(t, errors.Is(err, programs.ErrWrongProgram), "err: %v", err)

	few := ins
	few.Accounts = ins.Accounts[:2]
	_, err = DecodeTransfer(&few)
	assert.True(t, errors.Is(err, programs.ErrNotEnoughAccounts), "err: %v", err)

	_, err = DecodeInstructionType([]byte{16})
	assert.True(t, errors.Is(err, programs.ErrInvalidInstructionData), "err: %v", err)
	_, err = DecodeInstructionType(nil)
	assert.True(t, errors.Is(err, programs.ErrInvalidInstructionData), "err: %v", err)
}
