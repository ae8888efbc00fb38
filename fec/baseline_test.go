package fec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceFrameBytes(t *testing.T) [][]byte {
	t.Helper()
	frames, err := Split(mustBits(t, referenceMessage), 4)
	require.NoError(t, err)
	return FrameBytes(frames)
}

func TestFrameBytes(t *testing.T) {
	src := referenceFrameBytes(t)
	require.Len(t, src, 8)
	assert.Equal(t, []byte{0x40}, src[0])
	assert.Equal(t, []byte{0xf0}, src[3])
}

func TestBaselinesLossless(t *testing.T) {
	src := referenceFrameBytes(t)
	for _, name := range []string{"raptorq", "rs"} {
		t.Run(name, func(t *testing.T) {
			b, err := NewBaseline(name, 1)
			require.NoError(t, err)
			assert.Equal(t, name, b.Name())

			pkts, err := b.Encode(src, 16)
			require.NoError(t, err)
			require.Len(t, pkts, 16)
			got, ok := b.Decode(pkts, 16, len(src), 1)
			require.True(t, ok)
			assert.Equal(t, src, got)
		})
	}
}

func TestReedSolomonRecoversAnyK(t *testing.T) {
	src := referenceFrameBytes(t)
	b, err := NewBaseline("rs", 0)
	require.NoError(t, err)
	pkts, err := b.Encode(src, 16)
	require.NoError(t, err)

	// keep only the parity shards
	got, ok := b.Decode(pkts[8:], 16, 8, 1)
	require.True(t, ok)
	assert.Equal(t, src, got)

	_, ok = b.Decode(pkts[9:], 16, 8, 1)
	assert.False(t, ok)
}

func TestLubyDecodesWhatItRecovers(t *testing.T) {
	src := referenceFrameBytes(t)
	b, err := NewBaseline("LUBY", 42)
	require.NoError(t, err)
	pkts, err := b.Encode(src, 64)
	require.NoError(t, err)
	if got, ok := b.Decode(pkts, 64, 8, 1); ok {
		assert.Equal(t, src, got)
	}
	_, ok := b.Decode(nil, 64, 8, 1)
	assert.False(t, ok)
}

func TestUnknownBaseline(t *testing.T) {
	_, err := NewBaseline("polar", 0)
	require.Error(t, err)
}

func TestSolveGF2NeedsFullRank(t *testing.T) {
	drops := referenceDrops(t)
	frames, ok := SolveGF2(ReferenceScheme(), drops)
	require.True(t, ok)
	assert.Equal(t, referenceMessage, Concat(frames...).String())

	_, ok = SolveGF2(ReferenceScheme(), drops[:7])
	assert.False(t, ok)
}
