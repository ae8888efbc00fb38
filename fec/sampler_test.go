package fec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subsets produced by the reference drop generator for seeds 0..15 over 8 frames
var referencePositions = [][]int{
	{6, 7}, {2, 4}, {0}, {3}, {3, 2}, {4, 5, 2, 7}, {1, 3}, {5},
	{3, 2, 7, 1, 4, 6}, {7}, {0}, {7, 6}, {7, 2, 5, 4, 6, 0, 1}, {4, 2}, {1}, {3, 0, 4, 6},
}

func TestSampleMatchesReferenceSubsets(t *testing.T) {
	s := ReferenceScheme()
	for seed, want := range referencePositions {
		got, err := s.Positions(uint64(seed))
		require.NoError(t, err)
		assert.Equal(t, want, got, "seed %d", seed)
	}
}

func TestSampleWideUniverses(t *testing.T) {
	tests := []struct {
		name     string
		seed     uint64
		universe int
		count    int
		want     []int
	}{
		{
			name: "pool strategy with large count", seed: 12345, universe: 100, count: 30,
			want: []int{53, 93, 1, 38, 47, 24, 34, 72, 55, 20, 95, 15, 91, 33, 71, 80, 22, 78, 70, 23, 45, 11, 67, 52, 74, 64, 21, 18, 26, 9},
		},
		{
			name: "set strategy with two-word seed", seed: 1<<40 + 7, universe: 5000, count: 9,
			want: []int{4672, 3898, 2054, 1038, 4233, 3074, 4270, 2974, 3220},
		},
		{name: "full permutation", seed: 0, universe: 8, count: 8, want: []int{6, 7, 3, 0, 2, 5, 1, 4}},
		{name: "seed with zero low word", seed: 1 << 32, universe: 8, count: 3, want: []int{1, 2, 3}},
		{name: "empty draw", seed: 99, universe: 8, count: 0, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sample(tt.seed, tt.universe, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSampleIsDeterministicAndDistinct(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		a, err := Sample(seed, 40, 12)
		require.NoError(t, err)
		b, err := Sample(seed, 40, 12)
		require.NoError(t, err)
		require.Equal(t, a, b)

		seen := make(map[int]bool)
		for _, p := range a {
			require.True(t, p >= 0 && p < 40)
			require.False(t, seen[p], "seed %d repeats %d", seed, p)
			seen[p] = true
		}
	}
}

func TestSampleRejectsOversizedDraw(t *testing.T) {
	_, err := Sample(1, 4, 5)
	require.Error(t, err)
}

func TestDegreeTableRank(t *testing.T) {
	table := ReferenceDegreeTable()
	assert.Equal(t, 2, table.Rank(0))
	assert.Equal(t, 7, table.Rank(12))
	assert.Equal(t, 7, table.Rank(28), "seeds wrap modulo the table size")
	assert.Equal(t, 0, DegreeTable{}.Rank(3))
	require.NoError(t, table.Validate(8))

	err := table.Validate(6)
	var de *DegreeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, uint64(12), de.Seed)
	assert.Equal(t, 7, de.Rank)
	assert.True(t, errors.Is(err, ErrInvalidDegree))
}

func TestPositionsInvalidAndEmptyDegree(t *testing.T) {
	s := Scheme{FrameSize: 4, FrameCount: 3, Table: DegreeTable{0, 4}}

	got, err := s.Positions(0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.Positions(1)
	require.ErrorIs(t, err, ErrInvalidDegree)
	var de *DegreeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, DegreeError{Seed: 1, Rank: 4, FrameCount: 3}, *de)
}
