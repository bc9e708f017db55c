package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

type compiledInstructionJSON struct {
	ProgramIDIndex uint8    `json:"programIdIndex"`
	Accounts       []uint16 `json:"accounts"`
	Data           string   `json:"data"`
}

// MarshalJSON marshals as JSON, with account indexes as numbers and data as base58.
func (ins CompiledInstruction) MarshalJSON() ([]byte, error) {
	enc := compiledInstructionJSON{
		ProgramIDIndex: ins.ProgramIDIndex,
		Accounts:       make([]uint16, len(ins.Accounts)),
		Data:           base58.Encode(ins.Data),
	}
	for i, idx := range ins.Accounts {
		enc.Accounts[i] = uint16(idx)
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON.
func (ins *CompiledInstruction) UnmarshalJSON(input []byte) error {
	var dec compiledInstructionJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	data := base58.Decode(dec.Data)
	if len(data) == 0 && dec.Data != "" {
		return fmt.Errorf("%w: instruction data %q", ErrInvalidEncoding, dec.Data)
	}
	accounts := make([]uint8, len(dec.Accounts))
	for i, idx := range dec.Accounts {
		if idx > 0xff {
			return fmt.Errorf("%w: account index %d", ErrMalformedMessage, idx)
		}
		accounts[i] = uint8(idx)
	}
	*ins = CompiledInstruction{
		ProgramIDIndex: dec.ProgramIDIndex,
		Accounts:       accounts,
		Data:           data,
	}
	return nil
}

type txJSON struct {
	Signatures []Signature `json:"signatures"`
	Message    *Message    `json:"message"`
}

// MarshalJSON marshals the signatures and the compiled message as JSON.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	message, err := tx.CompileMessage()
	if err != nil {
		return nil, err
	}
	signatures, err := tx.signatureSlots(message)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&txJSON{
		Signatures: signatures,
		Message:    message,
	})
}

// UnmarshalJSON unmarshals from JSON.
func (tx *Transaction) UnmarshalJSON(input []byte) error {
	var dec txJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Message == nil {
		return errors.New("missing required field 'message' for transaction")
	}
	populated, err := PopulateTransaction(dec.Message, dec.Signatures)
	if err != nil {
		return err
	}
	*tx = *populated
	return nil
}
