package fec

import (
	"errors"
	"math/rand"

	fountain "github.com/google/gofountain"
)

// lubyBaseline is a classic LT code with the ideal Soliton distribution,
// as implemented by gofountain. Packet indices are the LT block codes.
type lubyBaseline struct {
	seed int64
}

func (lubyBaseline) Name() string { return "luby" }

func (b lubyBaseline) codec(k int) fountain.Codec {
	return fountain.NewLubyCodec(k, rand.New(rand.NewSource(b.seed)), solitonCDF(k))
}

func (b lubyBaseline) Encode(src [][]byte, n int) ([]Packet, error) {
	data, L := concatSymbols(src)
	if len(src) == 0 || L <= 0 || n <= 0 {
		return nil, errors.New("bad N/K/L")
	}
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i)
	}
	blocks := fountain.EncodeLTBlocks(data, ids, b.codec(len(src)))
	out := make([]Packet, len(blocks))
	for i, blk := range blocks {
		out[i] = Packet{Index: int(blk.BlockCode), Data: blk.Data}
	}
	return out, nil
}

func (b lubyBaseline) Decode(recv []Packet, n, k, symLen int) ([][]byte, bool) {
	if k <= 0 || symLen <= 0 {
		return nil, false
	}
	dec := b.codec(k).NewDecoder(k * symLen)
	blocks := make([]fountain.LTBlock, 0, len(recv))
	for _, p := range recv {
		if p.Index < 0 || p.Index >= n {
			continue
		}
		blocks = append(blocks, fountain.LTBlock{BlockCode: int64(p.Index), Data: p.Data})
	}
	if !dec.AddBlocks(blocks) {
		return nil, false
	}
	data := dec.Decode()
	if data == nil {
		return nil, false
	}
	return splitSymbols(data, k, symLen)
}

// solitonCDF is the cumulative ideal Soliton distribution over degrees 1..k:
// P(1) = 1/k, P(d) = 1/(d(d-1)).
func solitonCDF(k int) []float64 {
	cdf := make([]float64, k)
	sum := 0.0
	for d := 1; d <= k; d++ {
		if d == 1 {
			sum += 1 / float64(k)
		} else {
			sum += 1 / float64(d*(d-1))
		}
		cdf[d-1] = sum
	}
	return cdf
}
