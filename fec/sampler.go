package fec

import (
	"errors"
	"math"
)

// DegreeTable maps a seed to the number of frames combined into its drop.
// Seeds index the table modulo its length.
type DegreeTable []int

// ReferenceDegreeTable returns the 16-entry table of the reference scheme.
func ReferenceDegreeTable() DegreeTable {
	return DegreeTable{2, 2, 1, 1, 2, 4, 2, 1, 6, 1, 1, 2, 7, 2, 1, 4}
}

// Rank returns the degree for seed. An empty table has rank 0 everywhere.
func (t DegreeTable) Rank(seed uint64) int {
	if len(t) == 0 {
		return 0
	}
	return t[seed%uint64(len(t))]
}

// Validate checks that every entry can be drawn from frameCount frames.
func (t DegreeTable) Validate(frameCount int) error {
	if len(t) == 0 {
		return errors.New("fec: empty degree table")
	}
	for i, r := range t {
		if r < 0 || r > frameCount {
			return &DegreeError{Seed: uint64(i), Rank: r, FrameCount: frameCount}
		}
	}
	return nil
}

// Sample draws count distinct elements of {0..universe-1} from a generator
// seeded with seed. The result is in draw order and depends on nothing but
// the three arguments.
func Sample(seed uint64, universe, count int) ([]int, error) {
	if universe < 0 || count < 0 || count > universe {
		return nil, errors.New("fec: sample larger than universe")
	}
	rng := newTwister(seed)
	out := make([]int, count)
	setsize := 21
	if count > 5 {
		setsize += int(math.Pow(4, math.Ceil(math.Log(float64(3*count))/math.Log(4))))
	}
	if universe <= setsize {
		pool := make([]int, universe)
		for i := range pool {
			pool[i] = i
		}
		for i := 0; i < count; i++ {
			j := rng.below(universe - i)
			out[i] = pool[j]
			pool[j] = pool[universe-i-1]
		}
		return out, nil
	}
	selected := make(map[int]struct{}, count)
	for i := 0; i < count; i++ {
		j := rng.below(universe)
		for {
			if _, dup := selected[j]; !dup {
				break
			}
			j = rng.below(universe)
		}
		selected[j] = struct{}{}
		out[i] = j
	}
	return out, nil
}
