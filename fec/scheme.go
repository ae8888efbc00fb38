package fec

import "fmt"

// Scheme holds the parameters shared by encoder and decoder.
type Scheme struct {
	FrameSize  int // L, bits per frame
	FrameCount int // F, frames per message
	Table      DegreeTable
}

// ReferenceScheme is 8 frames of 4 bits with the reference degree table.
func ReferenceScheme() Scheme {
	return Scheme{FrameSize: 4, FrameCount: 8, Table: ReferenceDegreeTable()}
}

// ReferenceSeeds returns the seeds 0..15 used by the reference encoder.
func ReferenceSeeds() []uint64 {
	return SeedRange(0, 16)
}

// SeedRange returns the seeds from, from+1, ..., to-1.
func SeedRange(from, to uint64) []uint64 {
	if to <= from {
		return nil
	}
	out := make([]uint64, 0, to-from)
	for s := from; s < to; s++ {
		out = append(out, s)
	}
	return out
}

// Validate checks the frame geometry. The table is checked lazily per seed,
// so a table with some oversized entries still works for seeds avoiding them.
func (s Scheme) Validate() error {
	if s.FrameSize <= 0 || s.FrameCount <= 0 {
		return fmt.Errorf("fec: bad frame size %d or frame count %d", s.FrameSize, s.FrameCount)
	}
	if len(s.Table) == 0 {
		return fmt.Errorf("fec: empty degree table")
	}
	return nil
}

// MessageLen returns F*L.
func (s Scheme) MessageLen() int { return s.FrameSize * s.FrameCount }

// Positions derives the frame indices combined into the drop for seed.
func (s Scheme) Positions(seed uint64) ([]int, error) {
	rank := s.Table.Rank(seed)
	if rank < 0 || rank > s.FrameCount {
		return nil, &DegreeError{Seed: seed, Rank: rank, FrameCount: s.FrameCount}
	}
	return Sample(seed, s.FrameCount, rank)
}
