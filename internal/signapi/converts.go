package signapi

import (
	"encoding/hex"

	"github.com/anyswap/solana-txcore/types"
)

// ConvertTransactionToTxInfo convert tx to tx info
func ConvertTransactionToTxInfo(tx *types.Transaction) (*TxInfo, error) {
	message, err := tx.CompileMessage()
	if err != nil {
		return nil, err
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	info := &TxInfo{
		FeePayer:        message.AccountKeys[0].String(),
		RecentBlockhash: message.RecentBlockhash.String(),
		Signatures:      make([]string, len(tx.Signatures)),
		FullySigned:     tx.IsFullySigned(),
		Accounts:        make([]*AccountInfo, len(message.AccountKeys)),
		Size:            len(raw),
	}
	if txid, errf := tx.ID(); errf == nil {
		info.TxID = txid.String()
	}
	for i, sig := range tx.Signatures {
		if !sig.IsZero() {
			info.Signatures[i] = sig.String()
		}
	}
	for i, key := range message.AccountKeys {
		info.Accounts[i] = &AccountInfo{
			Address:  key.String(),
			Signer:   message.IsSigner(key),
			Writable: message.IsWritable(key),
		}
	}
	for _, ins := range tx.Instructions() {
		info.Instructions = append(info.Instructions, ConvertInstructionToInfo(&ins))
	}
	return info, nil
}

// ConvertInstructionToInfo convert instruction to instruction info
func ConvertInstructionToInfo(ins *types.Instruction) *InstructionInfo {
	accounts := make([]string, len(ins.Accounts))
	for i, meta := range ins.Accounts {
		accounts[i] = meta.PublicKey.String()
	}
	return &InstructionInfo{
		ProgramID: ins.ProgramID.String(),
		Accounts:  accounts,
		Data:      hex.EncodeToString(ins.Data),
	}
}
