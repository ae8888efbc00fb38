package fec

import (
	"fmt"
	"strings"
)

// BitVector is an immutable bit string of fixed length, stored MSB-first.
// Bits past Len() in the last byte are always zero.
type BitVector struct {
	n    int
	data []byte
}

// NewBitVector returns the all-zero vector of length n.
func NewBitVector(n int) BitVector {
	if n < 0 {
		n = 0
	}
	return BitVector{n: n, data: make([]byte, (n+7)/8)}
}

// ParseBits parses a string of '0' and '1' characters.
func ParseBits(s string) (BitVector, error) {
	v := NewBitVector(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			v.data[i>>3] |= 0x80 >> uint(i&7)
		default:
			return BitVector{}, fmt.Errorf("%w: %q at offset %d", ErrInvalidBit, s[i], i)
		}
	}
	return v, nil
}

// BitsFromUint renders the low width bits of x, most significant first.
func BitsFromUint(x uint64, width int) BitVector {
	v := NewBitVector(width)
	for i := 0; i < width; i++ {
		if (x>>uint(width-1-i))&1 == 1 {
			v.data[i>>3] |= 0x80 >> uint(i&7)
		}
	}
	return v
}

// Len returns the number of bits.
func (v BitVector) Len() int { return v.n }

// Bit returns bit i as 0 or 1.
func (v BitVector) Bit(i int) byte {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("fec: bit index %d out of range [0,%d)", i, v.n))
	}
	return (v.data[i>>3] >> uint(7-i&7)) & 1
}

// Uint interprets the vector as an unsigned big-endian integer.
// Only the low 64 bits are kept for longer vectors.
func (v BitVector) Uint() uint64 {
	var x uint64
	for i := 0; i < v.n; i++ {
		x = x<<1 | uint64(v.Bit(i))
	}
	return x
}

// IsZero reports whether every bit is 0.
func (v BitVector) IsZero() bool {
	for _, b := range v.data {
		if b != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether both vectors have the same length and bits.
func (v BitVector) Equal(o BitVector) bool {
	if v.n != o.n {
		return false
	}
	for i := range v.data {
		if v.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Slice returns a copy of bits [from, to).
func (v BitVector) Slice(from, to int) BitVector {
	if from < 0 || to > v.n || from > to {
		panic(fmt.Sprintf("fec: slice [%d:%d] out of range for length %d", from, to, v.n))
	}
	out := NewBitVector(to - from)
	for i := from; i < to; i++ {
		if v.Bit(i) == 1 {
			j := i - from
			out.data[j>>3] |= 0x80 >> uint(j&7)
		}
	}
	return out
}

// Concat joins vectors in order.
func Concat(vs ...BitVector) BitVector {
	n := 0
	for _, v := range vs {
		n += v.n
	}
	out := NewBitVector(n)
	off := 0
	for _, v := range vs {
		for i := 0; i < v.n; i++ {
			if v.Bit(i) == 1 {
				j := off + i
				out.data[j>>3] |= 0x80 >> uint(j&7)
			}
		}
		off += v.n
	}
	return out
}

// Bytes returns a copy of the packed representation. The last byte is
// zero-padded on the right when Len() is not a multiple of 8.
func (v BitVector) Bytes() []byte {
	out := make([]byte, len(v.data))
	copy(out, v.data)
	return out
}

// BitsFromBytes builds a vector of n bits from the packed MSB-first bytes b.
func BitsFromBytes(b []byte, n int) BitVector {
	out := NewBitVector(n)
	copy(out.data, b)
	if r := n & 7; r != 0 && len(out.data) > 0 {
		out.data[len(out.data)-1] &= byte(0xff << uint(8-r))
	}
	return out
}

func (v BitVector) String() string {
	var sb strings.Builder
	sb.Grow(v.n)
	for i := 0; i < v.n; i++ {
		sb.WriteByte('0' + v.Bit(i))
	}
	return sb.String()
}

func (v BitVector) clone() BitVector {
	return BitVector{n: v.n, data: v.Bytes()}
}

// byte-wise XOR helper shared by the XOR schemes
func xorBytes(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
