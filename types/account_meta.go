package types

import (
	"fmt"
)

// MaxAccountKeys is the largest account list a compiled instruction can index.
const MaxAccountKeys = 255

// AccountMeta is an account reference annotated with the access an instruction needs.
type AccountMeta struct {
	PublicKey  PublicKey `json:"pubkey"`
	IsSigner   bool      `json:"isSigner"`
	IsWritable bool      `json:"isWritable"`
}

// NewAccountMeta builds an AccountMeta.
func NewAccountMeta(pubKey PublicKey, isWritable, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pubKey,
		IsSigner:   isSigner,
		IsWritable: isWritable,
	}
}

// group is the partition index of the meta: writable signers, readonly
// signers, writable non-signers, readonly non-signers.
func (meta AccountMeta) group() int {
	switch {
	case meta.IsSigner && meta.IsWritable:
		return 0
	case meta.IsSigner:
		return 1
	case meta.IsWritable:
		return 2
	default:
		return 3
	}
}

// AccountMetaSlice is an ordered list of account metas.
type AccountMetaSlice []AccountMeta

// GetKeys returns the public keys in order.
func (slice AccountMetaSlice) GetKeys() PublicKeySlice {
	keys := make(PublicKeySlice, len(slice))
	for i, meta := range slice {
		keys[i] = meta.PublicKey
	}
	return keys
}

// GetSigners returns the metas that must sign.
func (slice AccountMetaSlice) GetSigners() AccountMetaSlice {
	var signers AccountMetaSlice
	for _, meta := range slice {
		if meta.IsSigner {
			signers = append(signers, meta)
		}
	}
	return signers
}

// CompileAccountMetas merges every account referenced by the instructions,
// plus their program ids and the fee payer, into the ordered account list of a
// message and the header describing its partition.
//
// Flags of repeated keys are OR-ed. The fee payer is always the first,
// writable signer. The remaining accounts are grouped as writable signers,
// readonly signers, writable non-signers and readonly non-signers; within a
// group keys keep the order in which they were first referenced, with program
// ids considered after all instruction accounts.
func CompileAccountMetas(feePayer PublicKey, instructions []Instruction) (AccountMetaSlice, MessageHeader, error) {
	return compileAccountMetas(feePayer, nil, instructions)
}

// compileAccountMetas merges the hinted metas before any instruction account,
// so hinted keys keep their relative order within each group and stay listed
// even when no instruction references them.
func compileAccountMetas(feePayer PublicKey, hints AccountMetaSlice, instructions []Instruction) (AccountMetaSlice, MessageHeader, error) {
	var header MessageHeader

	order := make(PublicKeySlice, 0, 16)
	merged := make(map[PublicKey]AccountMeta, 16)
	merge := func(meta AccountMeta) {
		prev, seen := merged[meta.PublicKey]
		if !seen {
			order = append(order, meta.PublicKey)
			merged[meta.PublicKey] = meta
			return
		}
		prev.IsSigner = prev.IsSigner || meta.IsSigner
		prev.IsWritable = prev.IsWritable || meta.IsWritable
		merged[meta.PublicKey] = prev
	}

	for _, meta := range hints {
		merge(meta)
	}
	for _, instruction := range instructions {
		for _, meta := range instruction.Accounts {
			merge(meta)
		}
	}
	for _, instruction := range instructions {
		merge(AccountMeta{PublicKey: instruction.ProgramID})
	}

	var groups [4]AccountMetaSlice
	for _, key := range order {
		if key == feePayer {
			continue
		}
		meta := merged[key]
		groups[meta.group()] = append(groups[meta.group()], meta)
	}

	metas := make(AccountMetaSlice, 0, len(order)+1)
	metas = append(metas, AccountMeta{PublicKey: feePayer, IsSigner: true, IsWritable: true})
	for _, group := range groups {
		metas = append(metas, group...)
	}
	if len(metas) > MaxAccountKeys {
		return nil, header, fmt.Errorf("%w: %d accounts, at most %d", ErrTooManyAccounts, len(metas), MaxAccountKeys)
	}

	header.NumRequiredSignatures = uint8(1 + len(groups[0]) + len(groups[1]))
	header.NumReadonlySignedAccounts = uint8(len(groups[1]))
	header.NumReadonlyUnsignedAccounts = uint8(len(groups[3]))
	return metas, header, nil
}
