// Package shortvec implements the compact-u16 length prefix used throughout
// the Solana wire format. Each byte carries seven bits of the value, least
// significant group first, with the high bit marking a continuation.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// maxEncodedLen is the number of bytes needed to encode math.MaxUint16.
const maxEncodedLen = 3

var ErrValueTooLarge = errors.Errorf("value exceeds %d", math.MaxUint16)

// EncodeLen writes length to w, returning the number of bytes written.
func EncodeLen(w io.Writer, length int) (int, error) {
	if length < 0 || length > math.MaxUint16 {
		return 0, ErrValueTooLarge
	}

	var encoded [maxEncodedLen]byte
	size := 0
	for {
		group := byte(length & 0x7f)
		length >>= 7
		if length == 0 {
			encoded[size] = group
			size++
			break
		}

		encoded[size] = group | 0x80
		size++
	}

	return w.Write(encoded[:size])
}

// DecodeLen reads a compact-u16 length from r.
func DecodeLen(r io.Reader) (int, error) {
	var value int
	var single [1]byte

	for i := 0; i < maxEncodedLen; i++ {
		if _, err := io.ReadFull(r, single[:]); err != nil {
			return 0, err
		}

		value |= int(single[0]&0x7f) << (7 * i)
		if single[0]&0x80 == 0 {
			if value > math.MaxUint16 {
				return 0, ErrValueTooLarge
			}
			return value, nil
		}
	}

	return 0, errors.Errorf("encoding exceeds %d bytes", maxEncodedLen)
}
