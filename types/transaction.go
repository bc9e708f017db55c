package types

import (
	"encoding/base64"
	"fmt"

	"github.com/anyswap/solana-txcore/common/shortvec"
)

// MaxRawTxSize is the largest serialized transaction the network accepts.
const MaxRawTxSize = 1232

// Transaction collects instructions, a fee payer and a recent blockhash, and
// carries the signatures of the message compiled from them.
//
// Signatures is parallel to the signer prefix of the compiled message's
// account keys. A zero signature marks a slot that is not signed yet.
//
// A decoded transaction remembers the account keys of its message, so it
// compiles back to the same bytes until instructions or the fee payer change
// the account set.
type Transaction struct {
	Signatures []Signature

	feePayer        *PublicKey
	recentBlockhash *Hash
	instructions    []Instruction
	accountOrder    AccountMetaSlice
}

// NewTransaction returns an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddInstruction appends instructions.
func (tx *Transaction) AddInstruction(instructions ...Instruction) *Transaction {
	tx.instructions = append(tx.instructions, instructions...)
	return tx
}

// SetFeePayer sets the account paying the fees. Changing the fee payer of a
// decoded transaction drops its remembered account order.
func (tx *Transaction) SetFeePayer(feePayer PublicKey) *Transaction {
	if tx.feePayer != nil && *tx.feePayer != feePayer {
		tx.accountOrder = nil
	}
	tx.feePayer = &feePayer
	return tx
}

// SetRecentBlockhash sets the blockhash the message is bound to.
func (tx *Transaction) SetRecentBlockhash(recentBlockhash Hash) *Transaction {
	tx.recentBlockhash = &recentBlockhash
	return tx
}

// FeePayer returns the fee payer and whether it is set.
func (tx *Transaction) FeePayer() (PublicKey, bool) {
	if tx.feePayer == nil {
		return PublicKey{}, false
	}
	return *tx.feePayer, true
}

// RecentBlockhash returns the recent blockhash and whether it is set.
func (tx *Transaction) RecentBlockhash() (Hash, bool) {
	if tx.recentBlockhash == nil {
		return Hash{}, false
	}
	return *tx.recentBlockhash, true
}

// Instructions returns a copy of the instruction list.
func (tx *Transaction) Instructions() []Instruction {
	return append([]Instruction(nil), tx.instructions...)
}

// CompileMessage compiles the current instructions. It does not modify tx.
func (tx *Transaction) CompileMessage() (*Message, error) {
	if tx.feePayer == nil {
		return nil, ErrMissingFeePayer
	}
	if tx.recentBlockhash == nil {
		return nil, ErrMissingBlockhash
	}
	return compileMessage(tx.instructions, *tx.feePayer, *tx.recentBlockhash, tx.accountOrder)
}

// SerializeMessage compiles and encodes the message that signers sign.
func (tx *Transaction) SerializeMessage() ([]byte, error) {
	message, err := tx.CompileMessage()
	if err != nil {
		return nil, err
	}
	return message.MarshalBinary()
}

// PopulateTransaction rebuilds a transaction from a compiled message and the
// signatures of its leading signers. The account keys of message keep their
// order, unreferenced keys included, so an unchanged transaction encodes to
// the same message.
func PopulateTransaction(message *Message, signatures []Signature) (*Transaction, error) {
	if len(signatures) > int(message.Header.NumRequiredSignatures) {
		return nil, fmt.Errorf("%w: %d signatures for %d required signers", ErrSignatureCountMismatch, len(signatures), message.Header.NumRequiredSignatures)
	}
	instructions, err := message.Decompile()
	if err != nil {
		return nil, err
	}
	tx := &Transaction{
		Signatures:   append([]Signature(nil), signatures...),
		instructions: instructions,
	}
	tx.SetRecentBlockhash(message.RecentBlockhash)
	if feePayer, ok := message.FeePayer(); ok {
		tx.SetFeePayer(feePayer)
	}
	tx.accountOrder = message.AccountMetaList()
	return tx, nil
}

// MarshalBinary encodes the signatures, zero-filled up to the number of
// required signers, followed by the compiled message.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	message, err := tx.CompileMessage()
	if err != nil {
		return nil, err
	}
	content, err := message.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode tx message to binary: %w", err)
	}
	signatures, err := tx.signatureSlots(message)
	if err != nil {
		return nil, err
	}

	output := make([]byte, 0, shortvec.EncodedSize(len(signatures))+len(signatures)*SignatureLength+len(content))
	output = shortvec.AppendLength(output, len(signatures))
	for _, sig := range signatures {
		output = append(output, sig[:]...)
	}
	return append(output, content...), nil
}

// signatureSlots returns a copy of the signatures padded to the signer count.
func (tx *Transaction) signatureSlots(message *Message) ([]Signature, error) {
	required := int(message.Header.NumRequiredSignatures)
	if len(tx.Signatures) > required {
		return nil, fmt.Errorf("%w: %d signatures for %d required signers", ErrSignatureCountMismatch, len(tx.Signatures), required)
	}
	slots := make([]Signature, required)
	copy(slots, tx.Signatures)
	return slots, nil
}

// TransactionFromBytes decodes a wire transaction.
func TransactionFromBytes(data []byte) (*Transaction, error) {
	numSignatures, offset, err := shortvec.DecodeLength(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: signatures count: %v", ErrMalformedMessage, err)
	}
	if numSignatures > (len(data)-offset)/SignatureLength {
		return nil, fmt.Errorf("%w: %d signatures exceed remaining %d bytes", ErrMalformedMessage, numSignatures, len(data)-offset)
	}
	signatures := make([]Signature, numSignatures)
	for i := range signatures {
		copy(signatures[i][:], data[offset:offset+SignatureLength])
		offset += SignatureLength
	}
	message, err := MessageFromBytes(data[offset:])
	if err != nil {
		return nil, err
	}
	return PopulateTransaction(message, signatures)
}

// TransactionFromBase64 decodes a base64 wire transaction.
func TransactionFromBase64(b64 string) (*Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	return TransactionFromBytes(data)
}

// ToBase64 encodes the wire transaction as base64.
func (tx *Transaction) ToBase64() (string, error) {
	out, err := tx.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// ID returns the first signature, which identifies the transaction.
func (tx *Transaction) ID() (Signature, error) {
	if len(tx.Signatures) == 0 || tx.Signatures[0].IsZero() {
		return Signature{}, fmt.Errorf("%w: fee payer has not signed", ErrInvalidSignature)
	}
	return tx.Signatures[0], nil
}
