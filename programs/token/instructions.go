// Package token builds and decodes instructions of the SPL token program.
package token

import (
	"bytes"

	bin "github.com/gagliardetto/binary"

	"github.com/anyswap/solana-txcore/types"
)

// program and sysvar addresses
var (
	ProgramID        = types.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	SysvarRentPubkey = types.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
)

// InstructionType is the first data byte of a token instruction.
type InstructionType uint8

// token instruction types
const (
	InitializeMint InstructionType = iota
	InitializeAccount
	InitializeMultisig
	Transfer
	Approve
	Revoke
	SetAuthority
	MintTo
	Burn
	CloseAccount
	FreezeAccount
	ThawAccount
	TransferChecked
	ApproveChecked
	MintToChecked
	BurnChecked
)

var instructionTypeNames = [...]string{
	"InitializeMint",
	"InitializeAccount",
	"InitializeMultisig",
	"Transfer",
	"Approve",
	"Revoke",
	"SetAuthority",
	"MintTo",
	"Burn",
	"CloseAccount",
	"FreezeAccount",
	"ThawAccount",
	"TransferChecked",
	"ApproveChecked",
	"MintToChecked",
	"BurnChecked",
}

func (t InstructionType) String() string {
	if int(t) < len(instructionTypeNames) {
		return instructionTypeNames[t]
	}
	return "Unknown"
}

// AuthorityType selects the authority changed by SetAuthority.
type AuthorityType uint8

// authority types
const (
	AuthorityMintTokens AuthorityType = iota
	AuthorityFreezeAccount
	AuthorityAccountOwner
	AuthorityCloseAccount
)

// InitializeMintParams are the arguments of InitializeMint.
type InitializeMintParams struct {
	Mint            types.PublicKey
	MintAuthority   types.PublicKey
	FreezeAuthority *types.PublicKey
	Decimals        uint8
}

// InitializeAccountParams are the arguments of InitializeAccount.
type InitializeAccountParams struct {
	Account types.PublicKey
	Mint    types.PublicKey
	Owner   types.PublicKey
}

// InitializeMultisigParams are the arguments of InitializeMultisig.
type InitializeMultisigParams struct {
	Multisig types.PublicKey
	Signers  []types.PublicKey
	M        uint8
}

// TransferParams are the arguments of Transfer.
type TransferParams struct {
	Source      types.PublicKey
	Destination types.PublicKey
	Owner       types.PublicKey
	Signers     []types.PublicKey
	Amount      uint64
}

// ApproveParams are the arguments of Approve.
type ApproveParams struct {
	Source   types.PublicKey
	Delegate types.PublicKey
	Owner    types.PublicKey
	Signers  []types.PublicKey
	Amount   uint64
}

// RevokeParams are the arguments of Revoke.
type RevokeParams struct {
	Account types.PublicKey
	Owner   types.PublicKey
	Signers []types.PublicKey
}

// SetAuthorityParams are the arguments of SetAuthority. A nil
// NewAuthority removes the authority.
type SetAuthorityParams struct {
	Account          types.PublicKey
	CurrentAuthority types.PublicKey
	Signers          []types.PublicKey
	AuthorityType    AuthorityType
	NewAuthority     *types.PublicKey
}

// MintToParams are the arguments of MintTo.
type MintToParams struct {
	Mint        types.PublicKey
	Destination types.PublicKey
	Authority   types.PublicKey
	Signers     []types.PublicKey
	Amount      uint64
}

// BurnParams are the arguments of Burn.
type BurnParams struct {
	Account types.PublicKey
	Mint    types.PublicKey
	Owner   types.PublicKey
	Signers []types.PublicKey
	Amount  uint64
}

// CloseAccountParams are the arguments of CloseAccount.
type CloseAccountParams struct {
	Account     types.PublicKey
	Destination types.PublicKey
	Owner       types.PublicKey
	Signers     []types.PublicKey
}

// FreezeAccountParams are the arguments of FreezeAccount and ThawAccount.
type FreezeAccountParams struct {
	Account   types.PublicKey
	Mint      types.PublicKey
	Authority types.PublicKey
	Signers   []types.PublicKey
}

// TransferCheckedParams are the arguments of TransferChecked.
type TransferCheckedParams struct {
	Source      types.PublicKey
	Mint        types.PublicKey
	Destination types.PublicKey
	Owner       types.PublicKey
	Signers     []types.PublicKey
	Amount      uint64
	Decimals    uint8
}

// ApproveCheckedParams are the arguments of ApproveChecked.
type ApproveCheckedParams struct {
	Source   types.PublicKey
	Mint     types.PublicKey
	Delegate types.PublicKey
	Owner    types.PublicKey
	Signers  []types.PublicKey
	Amount   uint64
	Decimals uint8
}

// MintToCheckedParams are the arguments of MintToChecked.
type MintToCheckedParams struct {
	Mint        types.PublicKey
	Destination types.PublicKey
	Authority   types.PublicKey
	Signers     []types.PublicKey
	Amount      uint64
	Decimals    uint8
}

// BurnCheckedParams are the arguments of BurnChecked.
type BurnCheckedParams struct {
	Account  types.PublicKey
	Mint     types.PublicKey
	Owner    types.PublicKey
	Signers  []types.PublicKey
	Amount   uint64
	Decimals uint8
}

// addSigners appends the authority of an instruction. A multisig authority
// is a readonly non-signer followed by its signing members.
func addSigners(keys types.AccountMetaSlice, owner types.PublicKey, signers []types.PublicKey) types.AccountMetaSlice {
	if len(signers) == 0 {
		return append(keys, types.NewAccountMeta(owner, false, true))
	}
	keys = append(keys, types.NewAccountMeta(owner, false, false))
	for _, signer := range signers {
		keys = append(keys, types.NewAccountMeta(signer, false, true))
	}
	return keys
}

type dataWriter struct {
	buf     *bytes.Buffer
	encoder *bin.Encoder
}

func newData(instructionType InstructionType) *dataWriter {
	buf := new(bytes.Buffer)
	w := &dataWriter{buf: buf, encoder: bin.NewBinEncoder(buf)}
	w.uint8(uint8(instructionType))
	return w
}

// writes to a bytes.Buffer only fail when memory is exhausted
func (w *dataWriter) must(err error) *dataWriter {
	if err != nil {
		panic("shouldn't fail")
	}
	return w
}

func (w *dataWriter) uint8(v uint8) *dataWriter {
	return w.must(w.encoder.WriteUint8(v))
}

func (w *dataWriter) uint64(v uint64) *dataWriter {
	return w.must(w.encoder.WriteUint64(v, bin.LE))
}

func (w *dataWriter) key(key types.PublicKey) *dataWriter {
	return w.must(w.encoder.WriteBytes(key[:], false))
}

// optionalKey writes an option flag followed by the key, or by zeros when absent.
func (w *dataWriter) optionalKey(key *types.PublicKey) *dataWriter {
	if key == nil {
		return w.uint8(0).key(types.PublicKey{})
	}
	return w.uint8(1).key(*key)
}

func (w *dataWriter) bytes() []byte {
	return w.buf.Bytes()
}

// NewInitializeMintInstruction initializes a mint.
func NewInitializeMintInstruction(params InitializeMintParams) types.Instruction {
	data := newData(InitializeMint).
		uint8(params.Decimals).
		key(params.MintAuthority).
		optionalKey(params.FreezeAuthority).
		bytes()
	return types.NewInstruction(ProgramID, types.AccountMetaSlice{
		types.NewAccountMeta(params.Mint, true, false),
		types.NewAccountMeta(SysvarRentPubkey, false, false),
	}, data)
}

// NewInitializeAccountInstruction initializes a token account of mint held by owner.
func NewInitializeAccountInstruction(params InitializeAccountParams) types.Instruction {
	return types.NewInstruction(ProgramID, types.AccountMetaSlice{
		types.NewAccountMeta(params.Account, true, false),
		types.NewAccountMeta(params.Mint, false, false),
		types.NewAccountMeta(params.Owner, false, false),
		types.NewAccountMeta(SysvarRentPubkey, false, false),
	}, newData(InitializeAccount).bytes())
}

// NewInitializeMultisigInstruction initializes an M of N multisig account.
func NewInitializeMultisigInstruction(params InitializeMultisigParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Multisig, true, false),
		types.NewAccountMeta(SysvarRentPubkey, false, false),
	}
	for _, signer := range params.Signers {
		keys = append(keys, types.NewAccountMeta(signer, false, false))
	}
	return types.NewInstruction(ProgramID, keys, newData(InitializeMultisig).uint8(params.M).bytes())
}

// NewTransferInstruction transfers tokens between accounts of the same mint.
func NewTransferInstruction(params TransferParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Source, true, false),
		types.NewAccountMeta(params.Destination, true, false),
	}
	keys = addSigners(keys, params.Owner, params.Signers)
	return types.NewInstruction(ProgramID, keys, newData(Transfer).uint64(params.Amount).bytes())
}

// NewApproveInstruction lets delegate transfer up to Amount from Source.
func NewApproveInstruction(params ApproveParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Source, true, false),
		types.NewAccountMeta(params.Delegate, false, false),
	}
	keys = addSigners(keys, params.Owner, params.Signers)
	return types.NewInstruction(ProgramID, keys, newData(Approve).uint64(params.Amount).bytes())
}

// NewRevokeInstruction removes the delegate of an account.
func NewRevokeInstruction(params RevokeParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Account, true, false),
	}
	keys = addSigners(keys, params.Owner, params.Signers)
	return types.NewInstruction(ProgramID, keys, newData(Revoke).bytes())
}

// NewSetAuthorityInstruction replaces an authority of a mint or account.
func NewSetAuthorityInstruction(params SetAuthorityParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Account, true, false),
	}
	keys = addSigners(keys, params.CurrentAuthority, params.Signers)
	data := newData(SetAuthority).
		uint8(uint8(params.AuthorityType)).
		optionalKey(params.NewAuthority).
		bytes()
	return types.NewInstruction(ProgramID, keys, data)
}

// NewMintToInstruction mints new tokens to Destination.
func NewMintToInstruction(params MintToParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Mint, true, false),
		types.NewAccountMeta(params.Destination, true, false),
	}
	keys = addSigners(keys, params.Authority, params.Signers)
	return types.NewInstruction(ProgramID, keys, newData(MintTo).uint64(params.Amount).bytes())
}

// NewBurnInstruction burns tokens of Account.
func NewBurnInstruction(params BurnParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Account, true, false),
		types.NewAccountMeta(params.Mint, true, false),
	}
	keys = addSigners(keys, params.Owner, params.Signers)
	return types.NewInstruction(ProgramID, keys, newData(Burn).uint64(params.Amount).bytes())
}

// NewCloseAccountInstruction closes Account and sends its lamports to Destination.
func NewCloseAccountInstruction(params CloseAccountParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Account, true, false),
		types.NewAccountMeta(params.Destination, true, false),
	}
	keys = addSigners(keys, params.Owner, params.Signers)
	return types.NewInstruction(ProgramID, keys, newData(CloseAccount).bytes())
}

func freezeOrThaw(instructionType InstructionType, params FreezeAccountParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Account, true, false),
		types.NewAccountMeta(params.Mint, false, false),
	}
	keys = addSigners(keys, params.Authority, params.Signers)
	return types.NewInstruction(ProgramID, keys, newData(instructionType).bytes())
}

// NewFreezeAccountInstruction freezes Account with the mint's freeze authority.
func NewFreezeAccountInstruction(params FreezeAccountParams) types.Instruction {
	return freezeOrThaw(FreezeAccount, params)
}

// NewThawAccountInstruction thaws a frozen Account.
func NewThawAccountInstruction(params FreezeAccountParams) types.Instruction {
	return freezeOrThaw(ThawAccount, params)
}

// NewTransferCheckedInstruction transfers tokens and asserts the mint and decimals.
func NewTransferCheckedInstruction(params TransferCheckedParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Source, true, false),
		types.NewAccountMeta(params.Mint, false, false),
		types.NewAccountMeta(params.Destination, true, false),
	}
	keys = addSigners(keys, params.Owner, params.Signers)
	data := newData(TransferChecked).uint64(params.Amount).uint8(params.Decimals).bytes()
	return types.NewInstruction(ProgramID, keys, data)
}

// NewApproveCheckedInstruction is Approve asserting the mint and decimals.
func NewApproveCheckedInstruction(params ApproveCheckedParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Source, true, false),
		types.NewAccountMeta(params.Mint, false, false),
		types.NewAccountMeta(params.Delegate, false, false),
	}
	keys = addSigners(keys, params.Owner, params.Signers)
	data := newData(ApproveChecked).uint64(params.Amount).uint8(params.Decimals).bytes()
	return types.NewInstruction(ProgramID, keys, data)
}

// NewMintToCheckedInstruction is MintTo asserting the decimals.
func NewMintToCheckedInstruction(params MintToCheckedParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Mint, true, false),
		types.NewAccountMeta(params.Destination, true, false),
	}
	keys = addSigners(keys, params.Authority, params.Signers)
	data := newData(MintToChecked).uint64(params.Amount).uint8(params.Decimals).bytes()
	return types.NewInstruction(ProgramID, keys, data)
}

// NewBurnCheckedInstruction is Burn asserting the decimals.
func NewBurnCheckedInstruction(params BurnCheckedParams) types.Instruction {
	keys := types.AccountMetaSlice{
		types.NewAccountMeta(params.Account, true, false),
		types.NewAccountMeta(params.Mint, true, false),
	}
	keys = addSigners(keys, params.Owner, params.Signers)
	data := newData(BurnChecked).uint64(params.Amount).uint8(params.Decimals).bytes()
	return types.NewInstruction(ProgramID, keys, data)
}
