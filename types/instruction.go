package types

import (
	"bytes"
)

// Instruction is a program invocation that references its accounts by key.
type Instruction struct {
	ProgramID PublicKey        `json:"programId"`
	Accounts  AccountMetaSlice `json:"accounts"`
	Data      []byte           `json:"data"`
}

// NewInstruction builds an Instruction.
func NewInstruction(programID PublicKey, accounts AccountMetaSlice, data []byte) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
	}
}

// Equal compares program id, account metas and data.
func (ins *Instruction) Equal(other *Instruction) bool {
	if ins.ProgramID != other.ProgramID || len(ins.Accounts) != len(other.Accounts) {
		return false
	}
	for i := range ins.Accounts {
		if ins.Accounts[i] != other.Accounts[i] {
			return false
		}
	}
	return bytes.Equal(ins.Data, other.Data)
}

// CompiledInstruction is an instruction whose program and accounts are
// indexes into the account keys of its message.
type CompiledInstruction struct {
	ProgramIDIndex uint8   `json:"programIdIndex"`
	Accounts       []uint8 `json:"accounts"`
	Data           []byte  `json:"data"`
}

// compileInstruction maps the keys of ins to their positions in index.
func compileInstruction(ins *Instruction, index map[PublicKey]uint8) (CompiledInstruction, error) {
	programIndex, ok := index[ins.ProgramID]
	if !ok {
		return CompiledInstruction{}, unknownAccountErr(ins.ProgramID)
	}
	accounts := make([]uint8, len(ins.Accounts))
	for i, meta := range ins.Accounts {
		accountIndex, ok := index[meta.PublicKey]
		if !ok {
			return CompiledInstruction{}, unknownAccountErr(meta.PublicKey)
		}
		accounts[i] = accountIndex
	}
	return CompiledInstruction{
		ProgramIDIndex: programIndex,
		Accounts:       accounts,
		Data:           append([]byte{}, ins.Data...),
	}, nil
}
