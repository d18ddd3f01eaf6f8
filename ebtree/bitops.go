package ebtree

import "math/bits"

// MSBIndex returns the index (0 = least significant) of the most
// significant set bit of x, or -1 if x is zero. Integer KeySpecs use this to
// find the highest differing bit between two keys during descent, the same
// role flsnz/fls_auto plays in the original integer tree macros.
func MSBIndex(x uint64) int {
	if x == 0 {
		return -1
	}
	return bits.Len64(x) - 1
}

// EqualBits returns the number of identical leading bits that a and b share
// starting at bit offset start (0 = first bit of byte 0, MSB-first within
// each byte), not exceeding maxBits total. It stops at the first differing
// bit or at maxBits, whichever comes first — byte-string KeySpecs use this
// to extend a shared-prefix length during descent. A side that has run out
// of bytes reads as zero bits, as in CmpBit; the count also stops once both
// sides have run out.
func EqualBits(a, b []byte, start, maxBits int) int {
	pos := start
	for pos < maxBits {
		byteIdx := pos / 8
		if byteIdx >= len(a) && byteIdx >= len(b) {
			break
		}
		var ca, cb byte
		if byteIdx < len(a) {
			ca = a[byteIdx]
		}
		if byteIdx < len(b) {
			cb = b[byteIdx]
		}
		if ca == cb {
			pos += 8 - pos%8
			continue
		}
		diff := ca ^ cb
		// Walk the differing byte bit by bit, MSB first, from the current
		// sub-byte offset.
		bitInByte := pos % 8
		for bitInByte < 8 && pos < maxBits {
			mask := byte(0x80) >> uint(bitInByte)
			if diff&mask != 0 {
				return pos
			}
			pos++
			bitInByte++
		}
	}
	if pos > maxBits {
		return maxBits
	}
	return pos
}

// StringEqualBits behaves like EqualBits but treats a trailing NUL byte in
// either string as an implicit string terminator: once both sides have
// supplied a NUL at the same position, the strings are considered to match
// through the end, and the shorter side's effective length is reported as
// the total. Used by the null-terminated string KeySpec (ST).
func StringEqualBits(a, b []byte, start int) int {
	pos := start
	byteIdx := pos / 8
	for {
		na := byteIdx >= len(a) || a[byteIdx] == 0
		nb := byteIdx >= len(b) || b[byteIdx] == 0
		if na && nb {
			return byteIdx * 8
		}
		if na != nb {
			// One side terminated, the other didn't: they differ at the
			// first bit of this byte onward. Compare as if the terminated
			// side were all-zero bits from here.
			var ca, cb byte
			if byteIdx < len(a) {
				ca = a[byteIdx]
			}
			if byteIdx < len(b) {
				cb = b[byteIdx]
			}
			diff := ca ^ cb
			for bitInByte := 0; bitInByte < 8; bitInByte++ {
				mask := byte(0x80) >> uint(bitInByte)
				if diff&mask != 0 {
					return byteIdx*8 + bitInByte
				}
			}
			return byteIdx*8 + 8
		}
		if a[byteIdx] != b[byteIdx] {
			diff := a[byteIdx] ^ b[byteIdx]
			for bitInByte := 0; bitInByte < 8; bitInByte++ {
				mask := byte(0x80) >> uint(bitInByte)
				if diff&mask != 0 {
					return byteIdx*8 + bitInByte
				}
			}
		}
		byteIdx++
	}
}

// CmpBit reports whether bit position pos (0 = MSB of byte 0) is set in buf.
// Returns 0 or 1; positions past the end of buf read as 0, matching the
// original's implicit zero-padding of shorter keys during descent.
func CmpBit(buf []byte, pos int) int {
	byteIdx := pos / 8
	if byteIdx >= len(buf) {
		return 0
	}
	mask := byte(0x80) >> uint(pos%8)
	if buf[byteIdx]&mask != 0 {
		return 1
	}
	return 0
}
