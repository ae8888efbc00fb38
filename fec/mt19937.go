package fec

import "math/bits"

// twister is a 32-bit Mersenne Twister (MT19937). Seeding goes through the
// init_by_array key schedule so that integer seeds produce the same stream
// as the reference drop generator.
type twister struct {
	mt  [mtN]uint32
	idx int
}

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// newTwister seeds a generator from an unsigned integer. The key is the
// seed's 32-bit words, least significant first; zero becomes the key [0].
func newTwister(seed uint64) *twister {
	key := make([]uint32, 0, 2)
	for x := seed; x != 0; x >>= 32 {
		key = append(key, uint32(x))
	}
	if len(key) == 0 {
		key = append(key, 0)
	}
	t := &twister{}
	t.initByArray(key)
	return t
}

func (t *twister) initGenrand(s uint32) {
	t.mt[0] = s
	for i := 1; i < mtN; i++ {
		t.mt[i] = 1812433253*(t.mt[i-1]^(t.mt[i-1]>>30)) + uint32(i)
	}
	t.idx = mtN
}

func (t *twister) initByArray(key []uint32) {
	t.initGenrand(19650218)
	i, j := 1, 0
	k := mtN
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		t.mt[i] = (t.mt[i] ^ ((t.mt[i-1] ^ (t.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			t.mt[0] = t.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		t.mt[i] = (t.mt[i] ^ ((t.mt[i-1] ^ (t.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			t.mt[0] = t.mt[mtN-1]
			i = 1
		}
	}
	t.mt[0] = 0x80000000
}

func (t *twister) generate() {
	for k := 0; k < mtN; k++ {
		y := (t.mt[k] & mtUpperMask) | (t.mt[(k+1)%mtN] & mtLowerMask)
		v := t.mt[(k+mtM)%mtN] ^ (y >> 1)
		if y&1 == 1 {
			v ^= mtMatrixA
		}
		t.mt[k] = v
	}
	t.idx = 0
}

// next returns the next tempered output.
func (t *twister) next() uint32 {
	if t.idx >= mtN {
		t.generate()
	}
	y := t.mt[t.idx]
	t.idx++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// bits returns k random bits, 1 <= k <= 64. Up to 32 bits come from the top
// of a single output; wider draws take the low word first.
func (t *twister) bits(k int) uint64 {
	if k <= 32 {
		return uint64(t.next() >> uint(32-k))
	}
	lo := uint64(t.next())
	hi := uint64(t.next() >> uint(64-k))
	return hi<<32 | lo
}

// below returns a uniform integer in [0, n) by rejection sampling on
// bitlen(n) bits. n must be positive.
func (t *twister) below(n int) int {
	k := bits.Len64(uint64(n))
	r := t.bits(k)
	for r >= uint64(n) {
		r = t.bits(k)
	}
	return int(r)
}
