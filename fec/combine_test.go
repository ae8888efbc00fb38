package fec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBits(rng *rand.Rand, n int) BitVector {
	v := NewBitVector(n)
	for i := 0; i < n; i++ {
		if rng.Intn(2) == 1 {
			v.data[i>>3] |= 0x80 >> uint(i&7)
		}
	}
	return v
}

func TestCombine(t *testing.T) {
	a := mustBits(t, "0100")
	b := mustBits(t, "0001")
	c := mustBits(t, "1010")

	zero, err := Combine(4)
	require.NoError(t, err)
	assert.Equal(t, "0000", zero.String())

	one, err := Combine(4, a)
	require.NoError(t, err)
	assert.True(t, one.Equal(a))

	ab, err := Combine(4, a, b)
	require.NoError(t, err)
	assert.Equal(t, "0101", ab.String())

	abc, err := Combine(4, a, b, c)
	require.NoError(t, err)
	cba, err := Combine(4, c, b, a)
	require.NoError(t, err)
	assert.True(t, abc.Equal(cba))

	abb, err := Combine(4, a, b, b)
	require.NoError(t, err)
	assert.True(t, abb.Equal(a))
}

func TestCombineSelfInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 4, 7, 8, 13, 64, 129} {
		a := randomBits(rng, n)
		b := randomBits(rng, n)
		ab, err := Combine(n, a, b)
		require.NoError(t, err)
		back, err := Combine(n, ab, a)
		require.NoError(t, err)
		assert.True(t, back.Equal(b), "n=%d", n)
	}
}

func TestCombineLengthMismatch(t *testing.T) {
	_, err := Combine(4, mustBits(t, "0100"), mustBits(t, "01"))
	require.ErrorIs(t, err, ErrLengthMismatch)
	var le *LengthError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, LengthError{Want: 4, Got: 2}, *le)
}
