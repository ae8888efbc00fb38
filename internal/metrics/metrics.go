package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/observe-l/dnafountain/fec"
)

const namespace = "dnafountain"

// Collector groups the counters the tools export. All methods are safe for
// concurrent use.
type Collector struct {
	registry *prometheus.Registry

	dropsEncoded prometheus.Counter
	sessions     *prometheus.CounterVec
	iterations   prometheus.Histogram
	unresolved   prometheus.Histogram
	trials       *prometheus.CounterVec
}

// New creates a collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		dropsEncoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drops_encoded_total",
			Help:      "Drops produced by the encoder.",
		}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_sessions_total",
			Help:      "Peeling sessions by outcome.",
		}, []string{"outcome"}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "peeling_iterations",
			Help:      "Peeling sweeps per session.",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
		unresolved: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unresolved_frames",
			Help:      "Frames left unknown by incomplete sessions.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "eval_trials_total",
			Help:      "Evaluation trials by scheme and result.",
		}, []string{"scheme", "result"}),
	}
	c.registry.MustRegister(c.dropsEncoded, c.sessions, c.iterations, c.unresolved, c.trials)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveEncode counts n encoded drops.
func (c *Collector) ObserveEncode(n int) { c.dropsEncoded.Add(float64(n)) }

// ObserveDecode records one peeling session and its result.
func (c *Collector) ObserveDecode(st fec.Stats, err error) {
	c.iterations.Observe(float64(st.Iterations))
	c.sessions.WithLabelValues(Outcome(err)).Inc()
	var ie *fec.IncompleteError
	if errors.As(err, &ie) {
		c.unresolved.Observe(float64(len(ie.Missing)))
	}
}

// ObserveTrial records one evaluation trial.
func (c *Collector) ObserveTrial(scheme string, ok bool) {
	result := "fail"
	if ok {
		result = "ok"
	}
	c.trials.WithLabelValues(scheme, result).Inc()
}

// WriteTextfile dumps every metric in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// Outcome classifies a decode error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "complete"
	case errors.Is(err, fec.ErrIncomplete):
		return "incomplete"
	case errors.Is(err, fec.ErrInconsistent):
		return "inconsistent"
	default:
		return "error"
	}
}
