// Package ordmap provides a concurrency-safe, ordered multi-map: each key
// maps to a set of comparable values, with keys compared byte-wise and
// range queries answered by the underlying radix tree in O(log n) instead
// of a linear scan.
package ordmap

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Key is a byte-slice map key. Use the constructors below to build Keys
// from primitive types or normalized strings; comparisons are always
// byte-wise, so constructing Keys consistently across a single map is the
// caller's responsibility.
//
// Integer encoding policy
// -----------------------
// Every integer constructor produces an 8-byte big-endian representation
// with an added offset of 1<<63, so lexicographic (byte-wise) comparison
// of Keys matches numeric order of the original values regardless of
// signedness or source width: FromInt32(x) and FromInt64(x) produce equal
// Keys for the same numeric x.
type Key []byte

// FromBytes returns a copy of b as a Key. A nil b yields an empty
// (zero-length, non-nil) Key.
func FromBytes(b []byte) Key {
	if b == nil {
		return []byte{}
	}
	kb := make([]byte, len(b))
	copy(kb, b)
	return Key(kb)
}

// FromString returns a Key from s normalized to Unicode NFC; the Key holds
// the normalized string's UTF-8 bytes. Case and whitespace are preserved.
func FromString(s string) Key {
	return FromBytes([]byte(norm.NFC.String(s)))
}

const int64Offset = uint64(1) << 63

func encodeInt64(v int64) Key {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v)+int64Offset)
	return FromBytes(b[:])
}

func encodeUint64(v uint64) Key {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v+int64Offset)
	return FromBytes(b[:])
}

// FromInt converts an int to an order-preserving 8-byte Key.
func FromInt(i int) Key { return encodeInt64(int64(i)) }

// FromInt64 converts an int64 to an order-preserving 8-byte Key.
func FromInt64(i int64) Key { return encodeInt64(i) }

// FromInt32 converts an int32 to an order-preserving 8-byte Key.
func FromInt32(i int32) Key { return encodeInt64(int64(i)) }

// FromInt16 converts an int16 to an order-preserving 8-byte Key.
func FromInt16(i int16) Key { return encodeInt64(int64(i)) }

// FromInt8 converts an int8 to an order-preserving 8-byte Key.
func FromInt8(i int8) Key { return encodeInt64(int64(i)) }

// FromUint converts a uint to an order-preserving 8-byte Key.
func FromUint(u uint) Key { return encodeUint64(uint64(u)) }

// FromUint64 converts a uint64 to an order-preserving 8-byte Key.
func FromUint64(u uint64) Key { return encodeUint64(u) }

// FromUint32 converts a uint32 to an order-preserving 8-byte Key.
func FromUint32(u uint32) Key { return encodeUint64(uint64(u)) }

// FromUint16 converts a uint16 to an order-preserving 8-byte Key.
func FromUint16(u uint16) Key { return encodeUint64(uint64(u)) }

// FromUint8 converts a uint8 to an order-preserving 8-byte Key.
func FromUint8(u uint8) Key { return encodeUint64(uint64(u)) }

// FromByte is an alias for FromUint8.
func FromByte(b byte) Key { return FromUint8(b) }

// FromRune converts r to its UTF-8 encoding as a Key.
func FromRune(r rune) Key {
	var buf [4]byte
	n := utf8.EncodeRune(buf[:], r)
	return FromBytes(buf[:n])
}

// Bytes returns a copy of the Key's contents.
func (k Key) Bytes() []byte {
	if k == nil {
		return nil
	}
	b := make([]byte, len(k))
	copy(b, k)
	return b
}

// Clone returns an independent copy of k.
func (k Key) Clone() Key {
	if k == nil {
		return nil
	}
	return append(Key(nil), k...)
}

// String renders k as uppercase hex byte tuples, e.g. "[01,AB,00]".
func (k Key) String() string {
	if len(k) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	const hex = "0123456789ABCDEF"
	for i, b := range k {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(hex[b>>4])
		sb.WriteByte(hex[b&0x0F])
	}
	sb.WriteByte(']')
	return sb.String()
}

// Equal reports whether k and other have identical contents.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// LessThan reports whether k sorts lexicographically before other.
func (k Key) LessThan(other Key) bool {
	n := len(k)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if k[i] != other[i] {
			return k[i] < other[i]
		}
	}
	return len(k) < len(other)
}

// IsEmpty reports whether k is empty or nil.
func (k Key) IsEmpty() bool { return len(k) == 0 }
