package fecwire

import (
	"strings"

	"github.com/go-faster/errors"

	"github.com/observe-l/dnafountain/fec"
)

var (
	// ErrOddLength is returned for bit strings that do not pair up.
	ErrOddLength = errors.New("odd number of bits")
	// ErrBadNucleotide is returned for letters outside A, C, G, T.
	ErrBadNucleotide = errors.New("bad nucleotide")
)

// nucleotides[v] is the letter for the bit pair with value v.
const nucleotides = "ACGT"

// ToNucleotides maps each bit pair to a letter: 00=A 01=C 10=G 11=T.
func ToNucleotides(b fec.BitVector) (string, error) {
	if b.Len()%2 != 0 {
		return "", errors.Wrapf(ErrOddLength, "%d bits", b.Len())
	}
	var sb strings.Builder
	sb.Grow(b.Len() / 2)
	for i := 0; i < b.Len(); i += 2 {
		sb.WriteByte(nucleotides[b.Bit(i)<<1|b.Bit(i+1)])
	}
	return sb.String(), nil
}

// FromNucleotides is the inverse of ToNucleotides.
func FromNucleotides(s string) (fec.BitVector, error) {
	pairs := make([]fec.BitVector, len(s))
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(nucleotides, s[i])
		if v < 0 {
			return fec.BitVector{}, errors.Wrapf(ErrBadNucleotide, "%q at offset %d", s[i], i)
		}
		pairs[i] = fec.BitsFromUint(uint64(v), 2)
	}
	return fec.Concat(pairs...), nil
}
