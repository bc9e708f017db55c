package tokens

import (
	"errors"
)

// common errors
var (
	ErrWrongRawTx             = errors.New("wrong raw tx")
	ErrWrongExtraArgs         = errors.New("wrong extra args")
	ErrMsgHashMismatch        = errors.New("message hash mismatch")
	ErrWrongCountOfMsgHashes  = errors.New("wrong count of msg hashed")
	ErrTransactionTooLarge    = errors.New("transaction too large")
	ErrTxNotFullySigned       = errors.New("tx is not fully signed")
	ErrNoMatchingSigner       = errors.New("no signer matches the signer keys of tx")
	ErrTxWithWrongProgram     = errors.New("tx with wrong program")
	ErrTxWithWrongInstruction = errors.New("tx with wrong instruction")
	ErrTxWithWrongSender      = errors.New("tx with wrong sender")
	ErrTxWithWrongReceiver    = errors.New("tx with wrong receiver")
	ErrTxWithWrongFeePayer    = errors.New("tx with wrong fee payer")
	ErrTxWithWrongToken       = errors.New("tx with wrong token")
	ErrTxWithWrongValue       = errors.New("tx with wrong value")
)

// IsTxVerifyError is err returned when a tx does not match its build args
func IsTxVerifyError(err error) bool {
	switch {
	case errors.Is(err, ErrTxWithWrongProgram):
	case errors.Is(err, ErrTxWithWrongInstruction):
	case errors.Is(err, ErrTxWithWrongSender):
	case errors.Is(err, ErrTxWithWrongReceiver):
	case errors.Is(err, ErrTxWithWrongFeePayer):
	case errors.Is(err, ErrTxWithWrongToken):
	case errors.Is(err, ErrTxWithWrongValue):
	default:
		return false
	}
	return true
}
