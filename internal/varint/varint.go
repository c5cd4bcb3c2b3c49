// Package varint implements the length-prefixed variable-integer wire
// primitives used by the framed protocol: var-ints, var-longs, length-
// prefixed UTF-8 strings and length-prefixed bitsets (see spec.md §4.5).
package varint

import (
	"errors"
	"io"

	"golang.org/x/exp/constraints"
)

// MaxVarIntBytes is the maximum number of bytes a 32-bit var-int may occupy.
const MaxVarIntBytes = 5

// MaxVarLongBytes is the maximum number of bytes a 64-bit var-long may occupy.
const MaxVarLongBytes = 10

// ErrVarIntTooLong is returned when a var-int/var-long exceeds its maximum
// encoded length (spec.md §7, MalformedPacket).
var ErrVarIntTooLong = errors.New("varint: value exceeds maximum encoded length")

const (
	continueBit = 0x80
	segmentBits = 0x7F
)

// WriteInt writes v as a 7-bits-per-byte little-endian var-int with
// MSB-as-continuation, at most MaxVarIntBytes bytes.
func WriteInt[T constraints.Signed](w io.Writer, v T) error {
	u := uint32(v)
	var buf [MaxVarIntBytes]byte
	n := 0
	for {
		b := byte(u & segmentBits)
		u >>= 7
		if u != 0 {
			b |= continueBit
		}
		buf[n] = b
		n++
		if u == 0 {
			break
		}
	}
	_, err := w.Write(buf[:n])
	return err
}

// ReadInt reads a var-int from r, returning ErrVarIntTooLong if the encoding
// does not terminate within MaxVarIntBytes bytes.
func ReadInt(r io.Reader) (int32, error) {
	var result uint32
	var shift uint
	var b [1]byte
	for i := 0; i < MaxVarIntBytes; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		result |= uint32(b[0]&segmentBits) << shift
		if b[0]&continueBit == 0 {
			return int32(result), nil
		}
		shift += 7
	}
	return 0, ErrVarIntTooLong
}

// WriteLong writes v as a var-long, at most MaxVarLongBytes bytes.
func WriteLong[T constraints.Signed](w io.Writer, v T) error {
	u := uint64(v)
	var buf [MaxVarLongBytes]byte
	n := 0
	for {
		b := byte(u & segmentBits)
		u >>= 7
		if u != 0 {
			b |= continueBit
		}
		buf[n] = b
		n++
		if u == 0 {
			break
		}
	}
	_, err := w.Write(buf[:n])
	return err
}

// ReadLong reads a var-long from r.
func ReadLong(r io.Reader) (int64, error) {
	var result uint64
	var shift uint
	var b [1]byte
	for i := 0; i < MaxVarLongBytes; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		result |= uint64(b[0]&segmentBits) << shift
		if b[0]&continueBit == 0 {
			return int64(result), nil
		}
		shift += 7
	}
	return 0, ErrVarIntTooLong
}

// Len returns the number of bytes WriteInt would emit for v.
func Len(v int32) int {
	u := uint32(v)
	n := 1
	for u >>= 7; u != 0; u >>= 7 {
		n++
	}
	return n
}

// WriteString writes a var-int length prefix followed by the UTF-8 bytes of s.
func WriteString(w io.Writer, s string) error {
	if err := WriteInt(w, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// ReadString reads a var-int length prefix followed by that many UTF-8
// bytes. maxLen bounds the accepted length to guard against a corrupt or
// hostile length prefix; pass 0 for no bound.
func ReadString(r io.Reader, maxLen int32) (string, error) {
	n, err := ReadInt(r)
	if err != nil {
		return "", err
	}
	if n < 0 || (maxLen > 0 && n > maxLen) {
		return "", errors.New("varint: string length out of range")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteBitSet writes a var-int length followed by the packed longs of a
// bitset with the given number of bits, one bit per index, little-endian
// within each 64-bit word.
func WriteBitSet(w io.Writer, bits []bool) error {
	words := (len(bits) + 63) / 64
	if err := WriteInt(w, int32(words)); err != nil {
		return err
	}
	for i := 0; i < words; i++ {
		var word uint64
		for b := 0; b < 64; b++ {
			idx := i*64 + b
			if idx >= len(bits) {
				break
			}
			if bits[idx] {
				word |= 1 << uint(b)
			}
		}
		if err := WriteUint64(w, word); err != nil {
			return err
		}
	}
	return nil
}

// WriteUint64 writes v as a big-endian u64, matching spec.md §4.3's section
// data longs and §4.3's chunk key prefix.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	_, err := w.Write(buf[:])
	return err
}
