// dna-encode turns a binary message into a file of nucleotide symbols, one
// LT drop per line.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/observe-l/dnafountain/fec"
	"github.com/observe-l/dnafountain/internal/config"
	"github.com/observe-l/dnafountain/internal/fecwire"
	"github.com/observe-l/dnafountain/internal/logger"
	"github.com/observe-l/dnafountain/internal/metrics"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	message := flag.String("message", "", "message as a string of 0 and 1 (read from stdin when empty)")
	outPath := flag.String("out", "", "symbol file to write (stdout when empty)")
	metricsPath := flag.String("metrics", "", "optional Prometheus text file")
	flag.Parse()

	if err := run(flags, *message, *outPath, *metricsPath); err != nil {
		logger.Console().WithError(err).Error("encode failed")
		os.Exit(1)
	}
}

func run(flags *config.Flags, message, outPath, metricsPath string) error {
	cfg, err := flags.Load()
	if err != nil {
		return err
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	log := logger.Console()

	if message == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "read message")
		}
		message = string(b)
	}
	msg, err := fec.ParseBits(strings.TrimSpace(message))
	if err != nil {
		return errors.Wrap(err, "parse message")
	}

	enc, err := fec.NewEncoder(cfg.Scheme(), msg)
	if err != nil {
		return err
	}
	drops, err := enc.EncodeAll(cfg.Seeds)
	if err != nil {
		return err
	}
	for _, d := range drops {
		log.WithFields(logrus.Fields{
			"seed":      d.Seed,
			"positions": d.Positions,
			"value":     d.Value.String(),
		}).Debug("drop")
	}

	codec := cfg.Codec()
	var symbols bytes.Buffer
	if err := fecwire.WriteSymbols(&symbols, codec, drops); err != nil {
		return err
	}
	if err := writeOutput(outPath, symbols.Bytes()); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"drops":      len(drops),
		"seed_width": codec.SeedWidth,
		"frames":     cfg.FrameCount,
	}).Info("encoded")

	if metricsPath != "" {
		m := metrics.New()
		m.ObserveEncode(len(drops))
		if err := m.WriteTextfile(metricsPath); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "wrote %d symbols to %s\n", len(drops), outPath)
	}
	return nil
}

// writeOutput writes the rendered symbols to path, or stdout when path is
// empty. The file is only touched once every symbol has been rendered.
func writeOutput(path string, b []byte) error {
	if path == "" {
		if _, err := os.Stdout.Write(b); err != nil {
			return errors.Wrap(err, "write output")
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "write output")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close output")
	}
	return nil
}
