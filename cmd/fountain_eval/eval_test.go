package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observe-l/dnafountain/internal/config"
	"github.com/observe-l/dnafountain/internal/metrics"
)

func referenceConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestEvaluateLosslessAndTotalLoss(t *testing.T) {
	cfg := referenceConfig(t)
	opts := evalOptions{
		Schemes: []string{schemePeeling, schemeGF2, "rs"},
		Losses:  []float64{0, 1},
		Trials:  20,
		Seed:    7,
	}
	m := metrics.New()
	rows, err := evaluate(context.Background(), cfg, opts, m)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	for _, r := range rows {
		switch r.Loss {
		case 0:
			assert.Equal(t, 20, r.Successes, r.Scheme)
			assert.Equal(t, 1.0, r.Recovered, r.Scheme)
		case 1:
			assert.Equal(t, 0, r.Successes, r.Scheme)
		}
	}
	// the reference seeds need exactly one sweep after seeding
	assert.Equal(t, schemePeeling, rows[0].Scheme)
	assert.Equal(t, 1.0, rows[0].Iterations)

	var md bytes.Buffer
	writeMarkdown(&md, cfg, opts, rows)
	assert.Contains(t, md.String(), "| peeling | 0.000 | 1.0000 |")

	path := filepath.Join(t.TempDir(), "eval.csv")
	require.NoError(t, writeCSV(path, cfg, opts, rows))
	require.NoError(t, writeCSV(path, cfg, opts, rows))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1+2*len(rows), bytes.Count(b, []byte("\n")), "header written once")
}

func TestEvaluateUnknownScheme(t *testing.T) {
	_, err := evaluate(context.Background(), referenceConfig(t), evalOptions{Schemes: []string{"turbo"}, Losses: []float64{0}, Trials: 1}, metrics.New())
	require.Error(t, err)
}

func TestParseLosses(t *testing.T) {
	got, err := parseLosses("0, 0.1,0.5")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.1, 0.5}, got)

	_, err = parseLosses("0.1,1.5")
	assert.Error(t, err)
	_, err = parseLosses("x")
	assert.Error(t, err)
}
