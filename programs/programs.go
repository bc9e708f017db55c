// Package programs holds what the on-chain program instruction builders share.
package programs

import (
	"errors"
	"fmt"

	"github.com/anyswap/solana-txcore/types"
)

// instruction decoding errors
var (
	ErrInvalidInstructionData = errors.New("invalid instruction data")
	ErrWrongInstructionType   = errors.New("wrong instruction type")
	ErrNotEnoughAccounts      = errors.New("not enough accounts")
	ErrWrongProgram           = errors.New("instruction is for another program")
)

// CheckInstruction verifies that ins targets programID and lists at least
// minAccounts accounts.
func CheckInstruction(ins *types.Instruction, programID types.PublicKey, minAccounts int) error {
	if ins.ProgramID != programID {
		return fmt.Errorf("%w: %s", ErrWrongProgram, ins.ProgramID)
	}
	if len(ins.Accounts) < minAccounts {
		return fmt.Errorf("%w: have %d, want %d", ErrNotEnoughAccounts, len(ins.Accounts), minAccounts)
	}
	return nil
}

// InvalidData wraps a decoder failure of the instruction data.
func InvalidData(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInstructionData, err)
}
