package types

import (
	"crypto/ed25519"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Signer is the signing capability a transaction consumes. Implementations
// sign the serialized message with the private key of PublicKey().
type Signer interface {
	PublicKey() PublicKey
	Sign(message []byte) (Signature, error)
}

// Sign signs the compiled message with every signer and stores each signature
// in the slot of the signer's key within the signer prefix of the account
// keys. Every signer is checked before any slot is written, so on error the
// existing signatures are unchanged.
func (tx *Transaction) Sign(signers ...Signer) error {
	message, err := tx.CompileMessage()
	if err != nil {
		return err
	}
	signerKeys := message.SignerKeys()

	for _, signer := range signers {
		if !signerKeys.Contains(signer.PublicKey()) {
			return fmt.Errorf("%w: %s", ErrUnknownSigner, signer.PublicKey())
		}
	}

	content, err := message.MarshalBinary()
	if err != nil {
		return err
	}
	slots, err := tx.signatureSlots(message)
	if err != nil {
		return err
	}
	for _, signer := range signers {
		key := signer.PublicKey()
		sig, err := signer.Sign(content)
		if err != nil {
			return fmt.Errorf("signer %s: %w", key, err)
		}
		slots[signerKeys.IndexOf(key)] = sig
	}
	tx.Signatures = slots
	return nil
}

// VerifySignatures checks every signature slot against the compiled message.
// An unsigned (zero) slot fails verification.
func (tx *Transaction) VerifySignatures() error {
	message, err := tx.CompileMessage()
	if err != nil {
		return err
	}
	content, err := message.MarshalBinary()
	if err != nil {
		return err
	}
	signerKeys := message.SignerKeys()
	if len(tx.Signatures) != len(signerKeys) {
		return fmt.Errorf("%w: %d signatures for %d signers", ErrSignatureCountMismatch, len(tx.Signatures), len(signerKeys))
	}
	for i, sig := range tx.Signatures {
		if !ed25519.Verify(signerKeys[i][:], content, sig[:]) {
			return fmt.Errorf("%w: signer %d (%s)", ErrInvalidSignature, i, signerKeys[i])
		}
	}
	return nil
}

// SignedSlots returns the set of signature slots holding a non-zero signature.
func (tx *Transaction) SignedSlots() *bitset.BitSet {
	slots := bitset.New(uint(len(tx.Signatures)))
	for i, sig := range tx.Signatures {
		if !sig.IsZero() {
			slots.Set(uint(i))
		}
	}
	return slots
}

// IsFullySigned reports whether every required signer has a signature.
func (tx *Transaction) IsFullySigned() bool {
	message, err := tx.CompileMessage()
	if err != nil {
		return false
	}
	required := uint(message.Header.NumRequiredSignatures)
	return tx.SignedSlots().Count() == required && uint(len(tx.Signatures)) == required
}
