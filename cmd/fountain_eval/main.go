// fountain_eval measures how often the peeling decoder recovers a message
// under random symbol erasure and compares it with elimination over GF(2)
// and with the RaptorQ, Reed-Solomon and Luby codecs at the same rate.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/observe-l/dnafountain/internal/config"
	"github.com/observe-l/dnafountain/internal/logger"
	"github.com/observe-l/dnafountain/internal/metrics"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	schemes := flag.String("schemes", "peeling,gf2,raptorq,rs,luby", "comma-separated list of schemes to run")
	pList := flag.String("p", "0,0.05,0.1,0.2,0.3,0.4", "comma-separated erasure probabilities")
	trials := flag.Int("trials", 2000, "trials per scheme and probability")
	seed := flag.Int64("seed", 1337, "PRNG seed for messages and erasures")
	csvPath := flag.String("csv", "", "optional CSV output path")
	mdPath := flag.String("md", "", "markdown report path (stdout when empty)")
	metricsPath := flag.String("metrics", "", "optional Prometheus text file")
	flag.Parse()

	log := logger.Console()
	cfg, err := flags.Load()
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.WithError(err).Fatal("log level")
	}
	losses, err := parseLosses(*pList)
	if err != nil {
		log.WithError(err).Fatal("flag -p")
	}
	opts := evalOptions{
		Schemes: splitList(*schemes),
		Losses:  losses,
		Trials:  *trials,
		Seed:    *seed,
	}

	m := metrics.New()
	rows, err := evaluate(context.Background(), cfg, opts, m)
	if err != nil {
		log.WithError(err).Fatal("evaluate")
	}
	for _, r := range rows {
		log.WithFields(logrus.Fields{
			"scheme": r.Scheme,
			"p":      r.Loss,
			"ok":     r.rate(),
		}).Debug("result")
	}

	out := io.Writer(os.Stdout)
	if *mdPath != "" {
		f, err := os.Create(*mdPath)
		if err != nil {
			log.WithError(err).Fatal("create markdown")
		}
		defer f.Close()
		out = f
	}
	writeMarkdown(out, cfg, opts, rows)

	if *csvPath != "" {
		if err := writeCSV(*csvPath, cfg, opts, rows); err != nil {
			log.WithError(err).Fatal("csv")
		}
	}
	if *metricsPath != "" {
		if err := m.WriteTextfile(*metricsPath); err != nil {
			log.WithError(err).Fatal("metrics")
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

func parseLosses(s string) ([]float64, error) {
	var out []float64
	for _, p := range splitList(s) {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad probability %q", p)
		}
		if v < 0 || v > 1 {
			return nil, errors.Errorf("probability %v outside [0,1]", v)
		}
		out = append(out, v)
	}
	return out, nil
}

func writeMarkdown(w io.Writer, cfg *config.Config, opts evalOptions, rows []row) {
	fmt.Fprintf(w, "# Erasure evaluation\n\n")
	fmt.Fprintf(w, "frames=%d frame_size=%d symbols=%d trials=%d seed=%d\n\n",
		cfg.FrameCount, cfg.FrameSize, len(cfg.Seeds), opts.Trials, opts.Seed)
	fmt.Fprintln(w, "| scheme | p | ok rate | frames recovered | sweeps | time |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|")
	for _, r := range rows {
		fmt.Fprintf(w, "| %s | %.3f | %.4f | %.3f | %.2f | %v |\n",
			r.Scheme, r.Loss, r.rate(), r.Recovered, r.Iterations, r.Elapsed.Round(time.Microsecond))
	}
}

func writeCSV(path string, cfg *config.Config, opts evalOptions, rows []row) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "open csv")
	}
	defer f.Close()
	w := csv.NewWriter(f)
	// header if file empty
	if fi, err := f.Stat(); err == nil && fi.Size() == 0 {
		_ = w.Write([]string{"scheme", "p", "trials", "ok_rate", "recovered", "iterations", "elapsed_ms", "frames", "frame_size", "symbols", "seed"})
	}
	for _, r := range rows {
		_ = w.Write([]string{
			r.Scheme,
			fmt.Sprintf("%.6f", r.Loss),
			strconv.Itoa(r.Trials),
			fmt.Sprintf("%.6f", r.rate()),
			fmt.Sprintf("%.6f", r.Recovered),
			fmt.Sprintf("%.4f", r.Iterations),
			fmt.Sprintf("%.3f", float64(r.Elapsed.Microseconds())/1000.0),
			strconv.Itoa(cfg.FrameCount),
			strconv.Itoa(cfg.FrameSize),
			strconv.Itoa(len(cfg.Seeds)),
			strconv.FormatInt(opts.Seed, 10),
		})
	}
	w.Flush()
	return w.Error()
}
