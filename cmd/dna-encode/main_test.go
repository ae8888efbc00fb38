package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observe-l/dnafountain/fec"
	"github.com/observe-l/dnafountain/internal/config"
	"github.com/observe-l/dnafountain/internal/fecwire"
)

const referenceMessage = "01000001101011110000010110100101"

const referenceFile = `AATT
ACGG
AGCA
ATTT
CACC
CCGG
CGTG
CTCC
GAGT
GCCC
GGCA
GTTT
TACC
TCGG
TGAC
TTAC
`

func cliFlags(t *testing.T, args ...string) *config.Flags {
	t.Helper()
	fs := flag.NewFlagSet("dna-encode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := config.BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return f
}

func TestRunWritesReferenceFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "symbols.txt")
	metricsPath := filepath.Join(dir, "encode.prom")

	require.NoError(t, run(cliFlags(t), referenceMessage, out, metricsPath))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, referenceFile, string(b))

	b, err = os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "dnafountain_drops_encoded_total 16")
}

func TestRunRejectsInvalidMessage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "symbols.txt")
	err := run(cliFlags(t), "0102", out, "")
	require.ErrorIs(t, err, fec.ErrInvalidBit)
	assert.NoFileExists(t, out)
}

func TestRunRejectsSeedOutsideSeedSpace(t *testing.T) {
	out := filepath.Join(t.TempDir(), "symbols.txt")
	require.NoError(t, os.WriteFile(out, []byte("keep\n"), 0o644))

	err := run(cliFlags(t, "-seeds", "0..15", "-seed-space", "8"), referenceMessage, out, "")
	require.ErrorIs(t, err, fecwire.ErrSeedOverflow)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(b), "existing output left untouched")
}

func TestRunRejectsOddSymbolLength(t *testing.T) {
	err := run(cliFlags(t, "-frame-size", "3", "-frame-count", "8"), "010000011010111100000101", "", "")
	require.ErrorIs(t, err, fecwire.ErrOddLength)
}
