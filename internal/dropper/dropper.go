package dropper

import (
	"math/rand"

	"github.com/observe-l/dnafountain/fec"
)

// Bernoulli erases each drop independently with probability p.
type Bernoulli struct {
	p   float64
	rng *rand.Rand
}

func New(p float64, rng *rand.Rand) *Bernoulli { return &Bernoulli{p: p, rng: rng} }

// Drop reports whether the next symbol is lost.
func (b *Bernoulli) Drop() bool {
	if b.p <= 0 {
		return false
	}
	if b.p >= 1 {
		return true
	}
	return b.rng.Float64() < b.p
}

// Erase returns the drops that survive, in their original order.
func (b *Bernoulli) Erase(drops []fec.Drop) []fec.Drop {
	out := make([]fec.Drop, 0, len(drops))
	for _, d := range drops {
		if !b.Drop() {
			out = append(out, d)
		}
	}
	return out
}

// ErasePackets is Erase for the byte-oriented baselines.
func (b *Bernoulli) ErasePackets(pkts []fec.Packet) []fec.Packet {
	out := make([]fec.Packet, 0, len(pkts))
	for _, p := range pkts {
		if !b.Drop() {
			out = append(out, p)
		}
	}
	return out
}
