package fec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMessageLength is returned when a message cannot be split into
	// whole frames of the configured size.
	ErrInvalidMessageLength = errors.New("fec: invalid message length")
	// ErrInvalidDegree is returned when a seed's rank exceeds the frame count.
	ErrInvalidDegree = errors.New("fec: invalid degree")
	// ErrLengthMismatch is returned when bit-vectors of different lengths meet.
	ErrLengthMismatch = errors.New("fec: length mismatch")
	// ErrInconsistent is returned when two drops disagree on a frame.
	ErrInconsistent = errors.New("fec: inconsistent drops")
	// ErrIncomplete is returned when peeling stalls before every frame is known.
	ErrIncomplete = errors.New("fec: decoding incomplete")
	// ErrInvalidBit is returned when a message contains something other than 0 or 1.
	ErrInvalidBit = errors.New("fec: invalid bit")
)

// DegreeError reports a seed whose rank cannot be drawn from the frames.
type DegreeError struct {
	Seed       uint64
	Rank       int
	FrameCount int
}

func (e *DegreeError) Error() string {
	return fmt.Sprintf("fec: seed %d has rank %d, want 0..%d", e.Seed, e.Rank, e.FrameCount)
}

func (e *DegreeError) Unwrap() error { return ErrInvalidDegree }

// LengthError reports a bit-vector of the wrong length.
type LengthError struct {
	Want, Got int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("fec: bit-vector length %d, want %d", e.Got, e.Want)
}

func (e *LengthError) Unwrap() error { return ErrLengthMismatch }

// ConsistencyError reports a drop contradicting an already recovered frame.
// Have is the value already recorded for Position, Got the value implied by
// the drop with the given seed.
type ConsistencyError struct {
	Seed     uint64
	Position int
	Have     BitVector
	Got      BitVector
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("fec: drop with seed %d implies frame %d = %s, already have %s", e.Seed, e.Position, e.Got, e.Have)
}

func (e *ConsistencyError) Unwrap() error { return ErrInconsistent }

// IncompleteError lists the frame positions peeling could not resolve.
type IncompleteError struct {
	Missing    []int
	FrameCount int
}

func (e *IncompleteError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, p := range e.Missing {
		parts[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("fec: %d of %d frames unresolved: [%s]", len(e.Missing), e.FrameCount, strings.Join(parts, " "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }
