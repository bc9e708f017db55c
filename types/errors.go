package types

import (
	"errors"
)

// encoding and compilation errors
var (
	ErrInvalidLength          = errors.New("invalid length")
	ErrInvalidEncoding        = errors.New("invalid base58 encoding")
	ErrMalformedMessage       = errors.New("malformed message")
	ErrTooManyAccounts        = errors.New("too many accounts")
	ErrUnknownAccount         = errors.New("unknown account")
	ErrUnknownSigner          = errors.New("unknown signer")
	ErrMissingFeePayer        = errors.New("missing fee payer")
	ErrMissingBlockhash       = errors.New("missing recent blockhash")
	ErrSignatureCountMismatch = errors.New("signature count mismatch")
	ErrInvalidSignature       = errors.New("invalid signature")
)
