package solana

import (
	"encoding/hex"
	"fmt"

	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/tokens"
	"github.com/anyswap/solana-txcore/types"
)

// SignTransaction signs tx with signers and returns the tx hash (the fee
// payer signature). With AllowPartialSign configured, signers outside the
// signer keys of tx are skipped and missing signatures are allowed; the tx
// hash is empty while the fee payer has not signed.
func (b *Bridge) SignTransaction(tx *types.Transaction, signers ...types.Signer) (txHash string, err error) {
	if b.TxConfig.AllowPartialSign {
		signers, err = matchingSigners(tx, signers)
		if err != nil {
			return "", err
		}
	}
	if err = tx.Sign(signers...); err != nil {
		return "", err
	}
	if err = b.CheckTransactionSize(tx); err != nil {
		return "", err
	}

	fullySigned := tx.IsFullySigned()
	if !fullySigned && !b.TxConfig.AllowPartialSign {
		return "", fmt.Errorf("%w: signed slots %v of %v", tokens.ErrTxNotFullySigned, tx.SignedSlots().String(), len(tx.Signatures))
	}
	if txid, errf := tx.ID(); errf == nil {
		txHash = txid.String()
	}
	log.Info("solana SignTransaction success", "txhash", txHash, "signers", len(signers), "fullySigned", fullySigned)
	return txHash, nil
}

func matchingSigners(tx *types.Transaction, signers []types.Signer) ([]types.Signer, error) {
	message, err := tx.CompileMessage()
	if err != nil {
		return nil, err
	}
	signerKeys := message.SignerKeys()
	matched := make([]types.Signer, 0, len(signers))
	for _, signer := range signers {
		if signerKeys.Contains(signer.PublicKey()) {
			matched = append(matched, signer)
		} else {
			log.Debug("skip signer not required by tx", "signer", signer.PublicKey())
		}
	}
	if len(matched) == 0 {
		return nil, tokens.ErrNoMatchingSigner
	}
	return matched, nil
}

// GetMsgHash returns the hex of the serialized message, which is what the
// signers sign
func (b *Bridge) GetMsgHash(tx *types.Transaction) (string, error) {
	content, err := tx.SerializeMessage()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(content), nil
}
