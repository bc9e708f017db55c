// Package shortvec implements the compact length prefix used by every
// variable-length array in the message and transaction wire format.
//
// A length is written as a little-endian sequence of 7-bit groups. The high
// bit of each byte is set when another byte follows.
package shortvec

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedLength is returned when a length prefix is truncated, overflows
// int, or is not in its shortest form.
var ErrMalformedLength = errors.New("malformed length prefix")

const (
	payloadMask  = 0x7f
	continueFlag = 0x80
	groupBits    = 7
)

// EncodeLength returns the shortest encoding of n.
func EncodeLength(n int) []byte {
	return AppendLength(make([]byte, 0, EncodedSize(n)), n)
}

// AppendLength appends the encoding of n to buf and returns the extended buffer.
func AppendLength(buf []byte, n int) []byte {
	if n < 0 {
		panic(fmt.Sprintf("shortvec: negative length %d", n))
	}
	rem := uint64(n)
	for {
		elem := byte(rem & payloadMask)
		rem >>= groupBits
		if rem == 0 {
			return append(buf, elem)
		}
		buf = append(buf, elem|continueFlag)
	}
}

// EncodedSize returns the number of bytes EncodeLength(n) produces.
func EncodedSize(n int) int {
	size := 1
	for rem := uint64(n) >> groupBits; rem != 0; rem >>= groupBits {
		size++
	}
	return size
}

// DecodeLength reads a length prefix from data starting at offset. It returns
// the decoded value and the offset of the first byte after the prefix.
func DecodeLength(data []byte, offset int) (length, newOffset int, err error) {
	if offset < 0 || offset > len(data) {
		return 0, offset, fmt.Errorf("%w: offset %d out of range", ErrMalformedLength, offset)
	}
	var value uint64
	pos := offset
	for shift := uint(0); ; shift += groupBits {
		if pos >= len(data) {
			return 0, offset, fmt.Errorf("%w: unexpected end of input after %d bytes", ErrMalformedLength, pos-offset)
		}
		elem := data[pos]
		pos++

		payload := uint64(elem & payloadMask)
		if shift >= 64 || payload > (math.MaxInt64>>shift) {
			return 0, offset, fmt.Errorf("%w: value overflows int", ErrMalformedLength)
		}
		value |= payload << shift
		if value > math.MaxInt {
			return 0, offset, fmt.Errorf("%w: value overflows int", ErrMalformedLength)
		}

		if elem&continueFlag == 0 {
			if elem == 0 && shift > 0 {
				return 0, offset, fmt.Errorf("%w: non-canonical encoding", ErrMalformedLength)
			}
			return int(value), pos, nil
		}
	}
}
