package fec

import "sort"

// FrameSet holds the frames recovered so far by one decode session.
// Positions are only ever added.
type FrameSet struct {
	count  int
	frames map[int]BitVector
}

func newFrameSet(count int) *FrameSet {
	return &FrameSet{count: count, frames: make(map[int]BitVector, count)}
}

// Get returns the frame at position p if it has been recovered.
func (s *FrameSet) Get(p int) (BitVector, bool) {
	v, ok := s.frames[p]
	return v, ok
}

// Len returns the number of recovered frames.
func (s *FrameSet) Len() int { return len(s.frames) }

// Complete reports whether every position is known.
func (s *FrameSet) Complete() bool { return len(s.frames) == s.count }

// Known returns the recovered positions in ascending order.
func (s *FrameSet) Known() []int {
	out := make([]int, 0, len(s.frames))
	for p := range s.frames {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Missing returns the unrecovered positions in ascending order.
func (s *FrameSet) Missing() []int {
	out := make([]int, 0, s.count-len(s.frames))
	for p := 0; p < s.count; p++ {
		if _, ok := s.frames[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// put records v at p unless p is already known. It returns the previous
// value and whether there was one.
func (s *FrameSet) put(p int, v BitVector) (BitVector, bool) {
	if have, ok := s.frames[p]; ok {
		return have, true
	}
	s.frames[p] = v
	return BitVector{}, false
}

// Stats describes the last call to Peel.
type Stats struct {
	Drops      int // drops held by the decoder
	Seeded     int // frames set directly by degree-1 drops
	Iterations int // peeling sweeps run
	Consumed   int // multi-degree drops whose frames are all known
	// Progress is the number of known frames after the seeding pass and
	// after every sweep.
	Progress []int
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithMaxIterations caps the number of peeling sweeps. Values <= 0 keep the
// default of one sweep per drop.
func WithMaxIterations(n int) DecoderOption {
	return func(d *Decoder) { d.maxIterations = n }
}

// Decoder is a peeling decoder session. It is not safe for concurrent use.
type Decoder struct {
	scheme        Scheme
	drops         []Drop
	frames        *FrameSet
	maxIterations int
	stats         Stats
}

// NewDecoder creates an empty session for scheme.
func NewDecoder(scheme Scheme, opts ...DecoderOption) (*Decoder, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	d := &Decoder{scheme: scheme, frames: newFrameSet(scheme.FrameCount)}
	for _, o := range opts {
		o(d)
	}
	return d, nil
}

// AddDrop registers a received drop. Its positions are re-derived from seed.
func (d *Decoder) AddDrop(seed uint64, value BitVector) error {
	if value.Len() != d.scheme.FrameSize {
		return &LengthError{Want: d.scheme.FrameSize, Got: value.Len()}
	}
	positions, err := d.scheme.Positions(seed)
	if err != nil {
		return err
	}
	d.drops = append(d.drops, Drop{Seed: seed, Positions: positions, Value: value.clone()})
	return nil
}

// AddDrops registers drops in order. Positions carried by the drops are
// ignored in favour of the ones derived from their seeds.
func (d *Decoder) AddDrops(drops []Drop) error {
	for _, drop := range drops {
		if err := d.AddDrop(drop.Seed, drop.Value); err != nil {
			return err
		}
	}
	return nil
}

// Frames exposes the recovered frames.
func (d *Decoder) Frames() *FrameSet { return d.frames }

// Stats returns the counters of the last Peel.
func (d *Decoder) Stats() Stats {
	s := d.stats
	s.Progress = append([]int(nil), d.stats.Progress...)
	return s
}

// Peel runs the seeding pass and then peeling sweeps until every frame is
// known, a sweep recovers nothing, or the sweep cap is reached. It returns
// an *IncompleteError when frames remain unknown. Peel may be called again
// after adding more drops; frames recovered earlier are kept.
func (d *Decoder) Peel() error {
	d.stats = Stats{Drops: len(d.drops)}
	L := d.scheme.FrameSize

	pending := make([]int, 0, len(d.drops))
	for i, drop := range d.drops {
		switch drop.Degree() {
		case 0:
			// carries nothing
		case 1:
			p := drop.Positions[0]
			if have, ok := d.frames.put(p, drop.Value); ok {
				if !have.Equal(drop.Value) {
					return &ConsistencyError{Seed: drop.Seed, Position: p, Have: have, Got: drop.Value}
				}
				continue
			}
			d.stats.Seeded++
		default:
			pending = append(pending, i)
		}
	}
	d.stats.Progress = append(d.stats.Progress, d.frames.Len())

	maxIterations := d.maxIterations
	if maxIterations <= 0 {
		maxIterations = len(d.drops)
	}
	if maxIterations < 1 {
		maxIterations = 1
	}

	for len(pending) > 0 && !d.frames.Complete() && d.stats.Iterations < maxIterations {
		d.stats.Iterations++
		progress := false
		next := pending[:0]
		for _, i := range pending {
			drop := d.drops[i]
			known := make([]BitVector, 0, len(drop.Positions))
			unknown := -1
			nUnknown := 0
			for _, p := range drop.Positions {
				if v, ok := d.frames.Get(p); ok {
					known = append(known, v)
				} else {
					unknown = p
					nUnknown++
				}
			}
			switch nUnknown {
			case 0:
				if err := d.crossCheck(drop); err != nil {
					return err
				}
				d.stats.Consumed++
			case 1:
				v, err := Combine(L, append(known, drop.Value)...)
				if err != nil {
					return err
				}
				d.frames.put(unknown, v)
				d.stats.Consumed++
				progress = true
			default:
				next = append(next, i)
			}
		}
		pending = next
		d.stats.Progress = append(d.stats.Progress, d.frames.Len())
		if !progress {
			break
		}
	}

	if !d.frames.Complete() {
		return &IncompleteError{Missing: d.frames.Missing(), FrameCount: d.scheme.FrameCount}
	}
	// drops skipped by the last sweep are now fully known
	for _, i := range pending {
		if err := d.crossCheck(d.drops[i]); err != nil {
			return err
		}
		d.stats.Consumed++
	}
	return nil
}

// crossCheck verifies a drop whose frames are all known: the frame at its
// first position must equal the drop value XOR the remaining frames.
func (d *Decoder) crossCheck(drop Drop) error {
	first := drop.Positions[0]
	have, _ := d.frames.Get(first)
	others := make([]BitVector, 0, len(drop.Positions))
	others = append(others, drop.Value)
	for _, p := range drop.Positions[1:] {
		v, _ := d.frames.Get(p)
		others = append(others, v)
	}
	implied, err := Combine(d.scheme.FrameSize, others...)
	if err != nil {
		return err
	}
	if !implied.Equal(have) {
		return &ConsistencyError{Seed: drop.Seed, Position: first, Have: have, Got: implied}
	}
	return nil
}

// Message concatenates frames 0..F-1. Unrecovered positions are reported
// as an *IncompleteError, never filled in.
func (d *Decoder) Message() (BitVector, error) {
	if !d.frames.Complete() {
		return BitVector{}, &IncompleteError{Missing: d.frames.Missing(), FrameCount: d.scheme.FrameCount}
	}
	frames := make([]BitVector, d.scheme.FrameCount)
	for p := range frames {
		frames[p], _ = d.frames.Get(p)
	}
	return Concat(frames...), nil
}

// Decode runs a full session over drops and returns the message.
func Decode(scheme Scheme, drops []Drop, opts ...DecoderOption) (BitVector, error) {
	d, err := NewDecoder(scheme, opts...)
	if err != nil {
		return BitVector{}, err
	}
	if err := d.AddDrops(drops); err != nil {
		return BitVector{}, err
	}
	if err := d.Peel(); err != nil {
		return BitVector{}, err
	}
	return d.Message()
}
