package fecwire

import (
	"math/bits"

	"github.com/go-faster/errors"

	"github.com/observe-l/dnafountain/fec"
)

var (
	// ErrSeedOverflow is returned when a seed does not fit the prefix width.
	ErrSeedOverflow = errors.New("seed does not fit prefix")
	// ErrSymbolLength is returned when a symbol is not prefix+payload bits long.
	ErrSymbolLength = errors.New("bad symbol length")
)

// Symbol is a parsed wire symbol: the seed and the XOR payload.
// The frame positions are not on the wire; the decoder re-derives them.
type Symbol struct {
	Seed    uint64
	Payload fec.BitVector
}

// Codec lays a drop out as
//
//	SEED     SeedWidth bits, most significant first
//	PAYLOAD  FrameSize bits
type Codec struct {
	SeedWidth int
	FrameSize int
}

// SeedWidth returns ceil(log2(seedSpace)), at least 1.
func SeedWidth(seedSpace int) int {
	if seedSpace <= 2 {
		return 1
	}
	return bits.Len(uint(seedSpace - 1))
}

// NewCodec sizes the seed prefix for seeds in [0, seedSpace).
func NewCodec(seedSpace, frameSize int) Codec {
	return Codec{SeedWidth: SeedWidth(seedSpace), FrameSize: frameSize}
}

// SymbolLen is the number of bits per symbol.
func (c Codec) SymbolLen() int { return c.SeedWidth + c.FrameSize }

// Marshal renders d as seed prefix + payload.
func (c Codec) Marshal(d fec.Drop) (fec.BitVector, error) {
	if c.SeedWidth < 64 && d.Seed>>uint(c.SeedWidth) != 0 {
		return fec.BitVector{}, errors.Wrapf(ErrSeedOverflow, "seed %d, width %d", d.Seed, c.SeedWidth)
	}
	if d.Value.Len() != c.FrameSize {
		return fec.BitVector{}, errors.Wrapf(fec.ErrLengthMismatch, "payload of seed %d has %d bits, want %d", d.Seed, d.Value.Len(), c.FrameSize)
	}
	return fec.Concat(fec.BitsFromUint(d.Seed, c.SeedWidth), d.Value), nil
}

// Unmarshal splits b into seed and payload.
func (c Codec) Unmarshal(b fec.BitVector) (Symbol, error) {
	if b.Len() != c.SymbolLen() {
		return Symbol{}, errors.Wrapf(ErrSymbolLength, "got %d bits, want %d", b.Len(), c.SymbolLen())
	}
	return Symbol{
		Seed:    b.Slice(0, c.SeedWidth).Uint(),
		Payload: b.Slice(c.SeedWidth, b.Len()),
	}, nil
}
