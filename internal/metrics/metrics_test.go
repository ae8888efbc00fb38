package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observe-l/dnafountain/fec"
)

func TestObserveDecode(t *testing.T) {
	c := New()
	c.ObserveEncode(16)
	c.ObserveDecode(fec.Stats{Iterations: 1}, nil)
	c.ObserveDecode(fec.Stats{Iterations: 2}, &fec.IncompleteError{Missing: []int{0, 4}, FrameCount: 8})
	c.ObserveDecode(fec.Stats{}, &fec.ConsistencyError{Seed: 1})

	assert.Equal(t, 16.0, testutil.ToFloat64(c.dropsEncoded))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sessions.WithLabelValues("complete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sessions.WithLabelValues("incomplete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sessions.WithLabelValues("inconsistent")))
	assert.Equal(t, 3, testutil.CollectAndCount(c.sessions))
	assert.Equal(t, 1, testutil.CollectAndCount(c.iterations))
}

func TestObserveTrialAndTextfile(t *testing.T) {
	c := New()
	c.ObserveTrial("peeling", true)
	c.ObserveTrial("peeling", false)
	c.ObserveTrial("rs", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.trials.WithLabelValues("peeling", "fail")))

	path := filepath.Join(t.TempDir(), "eval.prom")
	require.NoError(t, c.WriteTextfile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `dnafountain_eval_trials_total{result="ok",scheme="rs"} 1`)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "complete", Outcome(nil))
	assert.Equal(t, "error", Outcome(fec.ErrLengthMismatch))
}
