package fec

import (
	"errors"

	"github.com/klauspost/reedsolomon"
)

// reedSolomonBaseline is the MDS reference point: any k of the n shards
// recover the frames.
type reedSolomonBaseline struct{}

func (reedSolomonBaseline) Name() string { return "rs" }

func (reedSolomonBaseline) Encode(src [][]byte, n int) ([]Packet, error) {
	k := len(src)
	if k == 0 || n <= k {
		return nil, errors.New("bad K,R")
	}
	enc, err := reedsolomon.New(k, n-k)
	if err != nil {
		return nil, err
	}
	L := len(src[0])
	shards := make([][]byte, n)
	for i := 0; i < k; i++ {
		shards[i] = append([]byte(nil), src[i]...)
	}
	for i := k; i < n; i++ {
		shards[i] = make([]byte, L)
	}
	if err := enc.Encode(shards); err != nil {
		return nil, err
	}
	out := make([]Packet, n)
	for i := range shards {
		out[i] = Packet{Index: i, Data: shards[i]}
	}
	return out, nil
}

func (reedSolomonBaseline) Decode(recv []Packet, n, k, symLen int) ([][]byte, bool) {
	if k <= 0 || n <= k {
		return nil, false
	}
	enc, err := reedsolomon.New(k, n-k)
	if err != nil {
		return nil, false
	}
	shards := make([][]byte, n)
	for _, p := range recv {
		if p.Index < 0 || p.Index >= n || len(p.Data) != symLen {
			continue
		}
		shards[p.Index] = p.Data
	}
	if err := enc.ReconstructData(shards); err != nil {
		return nil, false
	}
	return shards[:k], true
}
