package fec

import (
	"fmt"
	"strings"
)

// Packet is a byte-oriented coded symbol identified by its index in the
// codeword (or its block code for rateless codecs).
type Packet struct {
	Index int
	Data  []byte
}

// Baseline is a byte-oriented erasure codec the drop scheme is compared
// against. Encode produces n packets from k equal-length source symbols;
// Decode recovers the k symbols from whatever packets of those n survived.
type Baseline interface {
	Name() string
	Encode(src [][]byte, n int) ([]Packet, error)
	Decode(recv []Packet, n, k, symLen int) ([][]byte, bool)
}

// NewBaseline returns the codec registered under name:
// raptorq, rs or luby. seed only affects luby.
func NewBaseline(name string, seed int64) (Baseline, error) {
	switch strings.ToLower(name) {
	case "raptorq":
		return raptorQBaseline{}, nil
	case "rs":
		return reedSolomonBaseline{}, nil
	case "luby":
		return lubyBaseline{seed: seed}, nil
	default:
		return nil, fmt.Errorf("fec: unknown baseline %q", name)
	}
}

// FrameBytes packs each frame into its own byte slice, padding the last
// byte with zeros.
func FrameBytes(frames []BitVector) [][]byte {
	out := make([][]byte, len(frames))
	for i, f := range frames {
		out[i] = f.Bytes()
	}
	return out
}

func concatSymbols(src [][]byte) ([]byte, int) {
	L := 0
	if len(src) > 0 {
		L = len(src[0])
	}
	data := make([]byte, 0, len(src)*L)
	for _, s := range src {
		data = append(data, s...)
	}
	return data, L
}

func splitSymbols(data []byte, k, symLen int) ([][]byte, bool) {
	if len(data) < k*symLen {
		return nil, false
	}
	out := make([][]byte, k)
	for i := range out {
		out[i] = append([]byte(nil), data[i*symLen:(i+1)*symLen]...)
	}
	return out, true
}
