// dna-decode recovers a message from a file of nucleotide symbols by
// peeling. Exit status is 0 when every frame is recovered, 2 when some
// frames remain unresolved and 1 on any other failure.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/observe-l/dnafountain/fec"
	"github.com/observe-l/dnafountain/internal/config"
	"github.com/observe-l/dnafountain/internal/fecwire"
	"github.com/observe-l/dnafountain/internal/logger"
	"github.com/observe-l/dnafountain/internal/metrics"
	"github.com/observe-l/dnafountain/internal/report"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitIncomplete = 2
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	inPath := flag.String("in", "", "symbol file to read (stdin when empty)")
	reportPath := flag.String("report", "", "optional JSON decode report")
	metricsPath := flag.String("metrics", "", "optional Prometheus text file")
	flag.Parse()

	os.Exit(run(flags, *inPath, *reportPath, *metricsPath, os.Stdout))
}

func run(flags *config.Flags, inPath, reportPath, metricsPath string, stdout io.Writer) int {
	log := logger.Console()
	cfg, err := flags.Load()
	if err != nil {
		log.WithError(err).Error("config")
		return exitFailure
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.WithError(err).Error("log level")
		return exitFailure
	}

	drops, err := readDrops(inPath, cfg.Codec())
	if err != nil {
		log.WithError(err).Error("read symbols")
		return exitFailure
	}

	scheme := cfg.Scheme()
	d, err := fec.NewDecoder(scheme, cfg.DecoderOptions()...)
	if err != nil {
		log.WithError(err).Error("decoder")
		return exitFailure
	}
	if err := d.AddDrops(drops); err != nil {
		log.WithError(err).Error("add drops")
		return exitFailure
	}
	peelErr := d.Peel()

	st := d.Stats()
	log.WithFields(logrus.Fields{
		"drops":      st.Drops,
		"seeded":     st.Seeded,
		"iterations": st.Iterations,
		"progress":   st.Progress,
	}).Debug("peeling finished")

	if metricsPath != "" {
		m := metrics.New()
		m.ObserveDecode(st, peelErr)
		if err := m.WriteTextfile(metricsPath); err != nil {
			log.WithError(err).Error("write metrics")
			return exitFailure
		}
	}
	if reportPath != "" {
		if err := writeReport(reportPath, report.New(d, scheme, peelErr)); err != nil {
			log.WithError(err).Error("write report")
			return exitFailure
		}
	}

	var ie *fec.IncompleteError
	switch {
	case peelErr == nil:
	case errors.As(peelErr, &ie):
		log.WithFields(logrus.Fields{
			"known":   d.Frames().Len(),
			"missing": ie.Missing,
		}).Warn("decode incomplete")
		fmt.Fprintf(stdout, "unresolved positions: %v\n", ie.Missing)
		return exitIncomplete
	default:
		log.WithError(peelErr).Error("decode failed")
		return exitFailure
	}

	msg, err := d.Message()
	if err != nil {
		log.WithError(err).Error("assemble message")
		return exitFailure
	}
	fmt.Fprintln(stdout, msg.String())
	log.WithField("bits", msg.Len()).Info("decoded")
	return exitOK
}

func readDrops(path string, codec fecwire.Codec) ([]fec.Drop, error) {
	in := io.Reader(os.Stdin)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		defer f.Close()
		in = f
	}
	symbols, err := fecwire.ReadSymbols(in, codec)
	if err != nil {
		return nil, err
	}
	return fecwire.Drops(symbols), nil
}

func writeReport(path string, r *report.DecodeReport) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create report")
	}
	if err := report.Write(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
