package fec

import "fmt"

// Drop is one encoded symbol: the XOR of the frames at Positions, tagged
// with the seed those positions were derived from.
type Drop struct {
	Seed      uint64
	Positions []int
	Value     BitVector
}

// Degree returns the number of frames combined into the drop.
func (d Drop) Degree() int { return len(d.Positions) }

// Split cuts message into consecutive frames of frameSize bits.
func Split(message BitVector, frameSize int) ([]BitVector, error) {
	if frameSize <= 0 || message.Len() == 0 || message.Len()%frameSize != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a positive multiple of frame size %d", ErrInvalidMessageLength, message.Len(), frameSize)
	}
	frames := make([]BitVector, message.Len()/frameSize)
	for i := range frames {
		frames[i] = message.Slice(i*frameSize, (i+1)*frameSize)
	}
	return frames, nil
}

// Encoder produces drops from a fixed message.
type Encoder struct {
	scheme Scheme
	frames []BitVector
}

// NewEncoder splits message into the scheme's frames. The message must be
// exactly FrameCount*FrameSize bits long.
func NewEncoder(scheme Scheme, message BitVector) (*Encoder, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	frames, err := Split(message, scheme.FrameSize)
	if err != nil {
		return nil, err
	}
	if len(frames) != scheme.FrameCount {
		return nil, fmt.Errorf("%w: %d bits make %d frames, scheme has %d", ErrInvalidMessageLength, message.Len(), len(frames), scheme.FrameCount)
	}
	return &Encoder{scheme: scheme, frames: frames}, nil
}

// Frames returns a copy of the source frames.
func (e *Encoder) Frames() []BitVector {
	out := make([]BitVector, len(e.frames))
	for i, f := range e.frames {
		out[i] = f.clone()
	}
	return out
}

// CreateDrop combines the frames selected by seed.
func (e *Encoder) CreateDrop(seed uint64) (Drop, error) {
	positions, err := e.scheme.Positions(seed)
	if err != nil {
		return Drop{}, err
	}
	selected := make([]BitVector, len(positions))
	for i, p := range positions {
		selected[i] = e.frames[p]
	}
	value, err := Combine(e.scheme.FrameSize, selected...)
	if err != nil {
		return Drop{}, err
	}
	return Drop{Seed: seed, Positions: positions, Value: value}, nil
}

// EncodeAll creates one drop per seed, in order.
func (e *Encoder) EncodeAll(seeds []uint64) ([]Drop, error) {
	drops := make([]Drop, 0, len(seeds))
	for _, seed := range seeds {
		d, err := e.CreateDrop(seed)
		if err != nil {
			return nil, err
		}
		drops = append(drops, d)
	}
	return drops, nil
}

// Encode is a shorthand for NewEncoder followed by EncodeAll.
func Encode(scheme Scheme, message BitVector, seeds []uint64) ([]Drop, error) {
	enc, err := NewEncoder(scheme, message)
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(seeds)
}
