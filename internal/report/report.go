// Package report renders decode summaries as JSON.
package report

import (
	"encoding/hex"
	"io"

	"github.com/francoispqt/gojay"
	"golang.org/x/crypto/blake2b"

	"github.com/observe-l/dnafountain/fec"
	"github.com/observe-l/dnafountain/internal/metrics"
)

// DecodeReport summarises one decoding session.
type DecodeReport struct {
	Outcome    string
	Error      string
	FrameSize  int
	FrameCount int
	Drops      int
	Seeded     int
	Iterations int
	Consumed   int
	Progress   []int
	Missing    []int
	Message    string
	Digest     string
}

// New builds a report from the decoder state after Peel returned err.
func New(d *fec.Decoder, scheme fec.Scheme, err error) *DecodeReport {
	st := d.Stats()
	r := &DecodeReport{
		Outcome:    metrics.Outcome(err),
		FrameSize:  scheme.FrameSize,
		FrameCount: scheme.FrameCount,
		Drops:      st.Drops,
		Seeded:     st.Seeded,
		Iterations: st.Iterations,
		Consumed:   st.Consumed,
		Progress:   st.Progress,
		Missing:    d.Frames().Missing(),
	}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	if msg, merr := d.Message(); merr == nil {
		r.Message = msg.String()
		r.Digest = Digest(msg)
	}
	return r
}

// Digest is the hex BLAKE2b-256 of the packed message bits.
func Digest(msg fec.BitVector) string {
	sum := blake2b.Sum256(msg.Bytes())
	return hex.EncodeToString(sum[:])
}

// MarshalJSONObject implements gojay.MarshalerJSONObject.
func (r *DecodeReport) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("outcome", r.Outcome)
	enc.StringKeyOmitEmpty("error", r.Error)
	enc.IntKey("frame_size", r.FrameSize)
	enc.IntKey("frame_count", r.FrameCount)
	enc.IntKey("drops", r.Drops)
	enc.IntKey("seeded", r.Seeded)
	enc.IntKey("iterations", r.Iterations)
	enc.IntKey("consumed", r.Consumed)
	enc.ArrayKey("progress", intList(r.Progress))
	enc.ArrayKey("missing", intList(r.Missing))
	enc.StringKeyOmitEmpty("message", r.Message)
	enc.StringKeyOmitEmpty("blake2b", r.Digest)
}

// IsNil implements gojay.MarshalerJSONObject.
func (r *DecodeReport) IsNil() bool { return r == nil }

type intList []int

func (l intList) MarshalJSONArray(enc *gojay.Encoder) {
	for _, v := range l {
		enc.Int(v)
	}
}

func (l intList) IsNil() bool { return false }

// Write encodes r as a single JSON object followed by a newline.
func Write(w io.Writer, r *DecodeReport) error {
	enc := gojay.BorrowEncoder(w)
	defer enc.Release()
	if err := enc.EncodeObject(r); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
