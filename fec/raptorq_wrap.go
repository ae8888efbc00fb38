package fec

import (
	"errors"

	rqq "github.com/xssnick/raptorq"
)

// raptorQBaseline runs systematic RaptorQ over the frames, one frame per
// source symbol. Symbols 0..k-1 are the frames themselves, the rest repair.
type raptorQBaseline struct{}

func (raptorQBaseline) Name() string { return "raptorq" }

// Encode generates n symbols for the generation formed by src.
func (raptorQBaseline) Encode(src [][]byte, n int) ([]Packet, error) {
	data, L := concatSymbols(src)
	if len(src) == 0 || L <= 0 || n < len(src) {
		return nil, errors.New("bad N/K/L")
	}
	rq := rqq.NewRaptorQ(uint32(L))
	enc, err := rq.CreateEncoder(data)
	if err != nil {
		return nil, err
	}
	out := make([]Packet, n)
	for i := 0; i < n; i++ {
		out[i] = Packet{Index: i, Data: enc.GenSymbol(uint32(i))}
	}
	return out, nil
}

// Decode feeds every received symbol and attempts reconstruction once.
// Symbols the library rejects are skipped.
func (raptorQBaseline) Decode(recv []Packet, n, k, symLen int) ([][]byte, bool) {
	if k <= 0 || symLen <= 0 {
		return nil, false
	}
	rq := rqq.NewRaptorQ(uint32(symLen))
	dec, err := rq.CreateDecoder(uint32(k * symLen))
	if err != nil {
		return nil, false
	}
	for _, p := range recv {
		if p.Index < 0 || p.Index >= n {
			continue
		}
		_, _ = dec.AddSymbol(uint32(p.Index), p.Data)
	}
	ok, data, err := dec.Decode()
	if err != nil || !ok {
		return nil, false
	}
	return splitSymbols(data, k, symLen)
}
