package main

import (
	"bytes"
	"context"
	"math/rand"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/observe-l/dnafountain/fec"
	"github.com/observe-l/dnafountain/internal/config"
	"github.com/observe-l/dnafountain/internal/dropper"
	"github.com/observe-l/dnafountain/internal/metrics"
)

const (
	schemePeeling = "peeling"
	schemeGF2     = "gf2"
)

type evalOptions struct {
	Schemes []string
	Losses  []float64
	Trials  int
	Seed    int64
}

// row is the tally for one scheme at one erasure probability.
type row struct {
	Scheme    string
	Loss      float64
	Trials    int
	Successes int
	// Recovered is the mean fraction of frames known after peeling; it is
	// 1 or 0 per trial for the all-or-nothing codecs.
	Recovered  float64
	Iterations float64
	Elapsed    time.Duration
}

func (r row) rate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Trials)
}

type trialFunc func(rng *rand.Rand, loss float64) (ok bool, recovered float64, iterations int)

// evaluate runs every scheme concurrently, each with its own PRNG, and
// returns rows ordered by scheme then loss.
func evaluate(ctx context.Context, cfg *config.Config, opts evalOptions, m *metrics.Collector) ([]row, error) {
	trials := make([]trialFunc, len(opts.Schemes))
	for i, name := range opts.Schemes {
		fn, err := newTrial(name, cfg, opts.Seed, m)
		if err != nil {
			return nil, err
		}
		trials[i] = fn
	}

	results := make([][]row, len(opts.Schemes))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range opts.Schemes {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(opts.Seed + int64(i)))
			for _, loss := range opts.Losses {
				r := row{Scheme: name, Loss: loss, Trials: opts.Trials}
				start := time.Now()
				for t := 0; t < opts.Trials; t++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					ok, recovered, iters := trials[i](rng, loss)
					if ok {
						r.Successes++
					}
					r.Recovered += recovered
					r.Iterations += float64(iters)
					m.ObserveTrial(name, ok)
				}
				r.Elapsed = time.Since(start)
				if opts.Trials > 0 {
					r.Recovered /= float64(opts.Trials)
					r.Iterations /= float64(opts.Trials)
				}
				results[i] = append(results[i], r)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []row
	for _, rs := range results {
		out = append(out, rs...)
	}
	return out, nil
}

func newTrial(name string, cfg *config.Config, seed int64, m *metrics.Collector) (trialFunc, error) {
	scheme := cfg.Scheme()
	seeds := cfg.Seeds
	opts := cfg.DecoderOptions()

	encode := func(rng *rand.Rand) (fec.BitVector, []fec.Drop) {
		msg := randomMessage(rng, scheme.MessageLen())
		drops, err := fec.Encode(scheme, msg, seeds)
		if err != nil {
			// the configuration was validated against every seed
			panic(err)
		}
		m.ObserveEncode(len(drops))
		return msg, drops
	}

	switch name {
	case schemePeeling:
		return func(rng *rand.Rand, loss float64) (bool, float64, int) {
			msg, drops := encode(rng)
			drops = dropper.New(loss, rng).Erase(drops)
			d, err := fec.NewDecoder(scheme, opts...)
			if err != nil {
				return false, 0, 0
			}
			if err := d.AddDrops(drops); err != nil {
				return false, 0, 0
			}
			err = d.Peel()
			m.ObserveDecode(d.Stats(), err)
			recovered := float64(d.Frames().Len()) / float64(scheme.FrameCount)
			if err != nil {
				return false, recovered, d.Stats().Iterations
			}
			got, err := d.Message()
			return err == nil && got.Equal(msg), recovered, d.Stats().Iterations
		}, nil
	case schemeGF2:
		return func(rng *rand.Rand, loss float64) (bool, float64, int) {
			msg, drops := encode(rng)
			drops = dropper.New(loss, rng).Erase(drops)
			frames, ok := fec.SolveGF2(scheme, drops)
			if !ok || !fec.Concat(frames...).Equal(msg) {
				return false, 0, 0
			}
			return true, 1, 0
		}, nil
	}

	b, err := fec.NewBaseline(name, seed)
	if err != nil {
		return nil, errors.Wrap(err, "scheme")
	}
	n, k := len(seeds), scheme.FrameCount
	return func(rng *rand.Rand, loss float64) (bool, float64, int) {
		msg := randomMessage(rng, scheme.MessageLen())
		frames, err := fec.Split(msg, scheme.FrameSize)
		if err != nil {
			return false, 0, 0
		}
		src := fec.FrameBytes(frames)
		pkts, err := b.Encode(src, n)
		if err != nil {
			return false, 0, 0
		}
		recv := dropper.New(loss, rng).ErasePackets(pkts)
		got, ok := b.Decode(recv, n, k, len(src[0]))
		if !ok || len(got) != k {
			return false, 0, 0
		}
		for i := range src {
			if !bytes.Equal(got[i], src[i]) {
				return false, 0, 0
			}
		}
		return true, 1, 0
	}, nil
}

func randomMessage(rng *rand.Rand, n int) fec.BitVector {
	buf := make([]byte, (n+7)/8)
	rng.Read(buf)
	return fec.BitsFromBytes(buf, n)
}
