package token

import (
	"fmt"

	bin "github.com/gagliardetto/binary"

	"github.com/anyswap/solana-txcore/programs"
	"github.com/anyswap/solana-txcore/types"
)

// DecodeInstructionType reads the instruction type of token program data.
func DecodeInstructionType(data []byte) (InstructionType, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty data", programs.ErrInvalidInstructionData)
	}
	instructionType := InstructionType(data[0])
	if instructionType > BurnChecked {
		return 0, fmt.Errorf("%w: unknown instruction type %d", programs.ErrInvalidInstructionData, data[0])
	}
	return instructionType, nil
}

type dataReader struct {
	decoder *bin.Decoder
	err     error
}

// newReader checks ins and returns a reader positioned after its instruction type.
func newReader(ins *types.Instruction, want InstructionType, minAccounts int) (*dataReader, error) {
	if err := programs.CheckInstruction(ins, ProgramID, minAccounts); err != nil {
		return nil, err
	}
	instructionType, err := DecodeInstructionType(ins.Data)
	if err != nil {
		return nil, err
	}
	if instructionType != want {
		return nil, fmt.Errorf("%w: have %v, want %v", programs.ErrWrongInstructionType, instructionType, want)
	}
	r := &dataReader{decoder: bin.NewBinDecoder(ins.Data)}
	r.uint8()
	return r, nil
}

func (r *dataReader) uint8() (v uint8) {
	if r.err == nil {
		v, r.err = r.decoder.ReadUint8()
	}
	return v
}

func (r *dataReader) uint64() (v uint64) {
	if r.err == nil {
		v, r.err = r.decoder.ReadUint64(bin.LE)
	}
	return v
}

func (r *dataReader) key() (key types.PublicKey) {
	if r.err == nil {
		var raw []byte
		raw, r.err = r.decoder.ReadBytes(types.PublicKeyLength)
		copy(key[:], raw)
	}
	return key
}

func (r *dataReader) optionalKey() *types.PublicKey {
	option := r.uint8()
	key := r.key()
	if r.err != nil || option == 0 {
		return nil
	}
	return &key
}

// finish reports a read failure or unread trailing data.
func (r *dataReader) finish() error {
	if r.err != nil {
		return programs.InvalidData(r.err)
	}
	if r.decoder.Remaining() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", programs.ErrInvalidInstructionData, r.decoder.Remaining())
	}
	return nil
}

// signerKeys returns the multisig members listed after the authority at index.
func signerKeys(ins *types.Instruction, authorityIndex int) []types.PublicKey {
	var signers []types.PublicKey
	for _, meta := range ins.Accounts[authorityIndex+1:] {
		signers = append(signers, meta.PublicKey)
	}
	return signers
}

// DecodeInitializeMint parses an InitializeMint instruction.
func DecodeInitializeMint(ins *types.Instruction) (*InitializeMintParams, error) {
	r, err := newReader(ins, InitializeMint, 2)
	if err != nil {
		return nil, err
	}
	params := &InitializeMintParams{Mint: ins.Accounts[0].PublicKey}
	params.Decimals = r.uint8()
	params.MintAuthority = r.key()
	params.FreezeAuthority = r.optionalKey()
	if err := r.finish(); err != nil {
		return nil, err
	}
	return params, nil
}

// DecodeInitializeAccount parses an InitializeAccount instruction.
func DecodeInitializeAccount(ins *types.Instruction) (*InitializeAccountParams, error) {
	r, err := newReader(ins, InitializeAccount, 3)
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return &InitializeAccountParams{
		Account: ins.Accounts[0].PublicKey,
		Mint:    ins.Accounts[1].PublicKey,
		Owner:   ins.Accounts[2].PublicKey,
	}, nil
}

// DecodeInitializeMultisig parses an InitializeMultisig instruction.
func DecodeInitializeMultisig(ins *types.Instruction) (*InitializeMultisigParams, error) {
	r, err := newReader(ins, InitializeMultisig, 2)
	if err != nil {
		return nil, err
	}
	m := r.uint8()
	if err := r.finish(); err != nil {
		return nil, err
	}
	params := &InitializeMultisigParams{
		Multisig: ins.Accounts[0].PublicKey,
		Signers:  signerKeys(ins, 1),
		M:        m,
	}
	if int(m) > len(params.Signers) {
		return nil, fmt.Errorf("%w: %d of %d signers", programs.ErrNotEnoughAccounts, m, len(params.Signers))
	}
	return params, nil
}

// DecodeTransfer parses a Transfer instruction.
func DecodeTransfer(ins *types.Instruction) (*TransferParams, error) {
	r, err := newReader(ins, Transfer, 3)
	if err != nil {
		return nil, err
	}
	amount := r.uint64()
	if err := r.finish(); err != nil {
		return nil, err
	}
	return &TransferParams{
		Source:      ins.Accounts[0].PublicKey,
		Destination: ins.Accounts[1].PublicKey,
		Owner:       ins.Accounts[2].PublicKey,
		Signers:     signerKeys(ins, 2),
		Amount:      amount,
	}, nil
}

// DecodeTransferChecked parses a TransferChecked instruction.
func DecodeTransferChecked(ins *types.Instruction) (*TransferCheckedParams, error) {
	r, err := newReader(ins, TransferChecked, 4)
	if err != nil {
		return nil, err
	}
	amount := r.uint64()
	decimals := r.uint8()
	if err := r.finish(); err != nil {
		return nil, err
	}
	return &TransferCheckedParams{
		Source:      ins.Accounts[0].PublicKey,
		Mint:        ins.Accounts[1].PublicKey,
		Destination: ins.Accounts[2].PublicKey,
		Owner:       ins.Accounts[3].PublicKey,
		Signers:     signerKeys(ins, 3),
		Amount:      amount,
		Decimals:    decimals,
	}, nil
}

// DecodeCloseAccount parses a CloseAccount instruction.
func DecodeCloseAccount(ins *types.Instruction) (*CloseAccountParams, error) {
	r, err := newReader(ins, CloseAccount, 3)
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return &CloseAccountParams{
		Account:     ins.Accounts[0].PublicKey,
		Destination: ins.Accounts[1].PublicKey,
		Owner:       ins.Accounts[2].PublicKey,
		Signers:     signerKeys(ins, 2),
	}, nil
}
