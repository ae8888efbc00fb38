package config

import (
	"flag"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// Flags holds command-line overrides. Only flags that were set on the
// command line are applied.
type Flags struct {
	fs *flag.FlagSet

	Path          string
	FrameSize     int
	FrameCount    int
	DegreeTable   string
	Seeds         string
	SeedSpace     int
	MaxIterations int
	LogLevel      string
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Path, "config", "", "optional config file (yaml, json or toml)")
	fs.IntVar(&f.FrameSize, "frame-size", 0, "bits per frame")
	fs.IntVar(&f.FrameCount, "frame-count", 0, "frames per message")
	fs.StringVar(&f.DegreeTable, "degree-table", "", "comma-separated degree per seed, indexed modulo its length")
	fs.StringVar(&f.Seeds, "seeds", "", "seed list, e.g. 0..15 or 0,3,7..9")
	fs.IntVar(&f.SeedSpace, "seed-space", 0, "seeds the symbol prefix can hold; sets the prefix width, so a decoder needs the value the file was encoded with (default: largest seed + 1, at least the degree table size)")
	fs.IntVar(&f.MaxIterations, "max-iterations", 0, "cap on peeling sweeps (0 = number of drops)")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	return f
}

// Load reads the config file named by -config and applies the flags that
// were set.
func (f *Flags) Load() (*Config, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies the set flags into cfg and revalidates it.
func (f *Flags) Apply(cfg *Config) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "frame-size":
			cfg.FrameSize = f.FrameSize
		case "frame-count":
			cfg.FrameCount = f.FrameCount
		case "degree-table":
			cfg.DegreeTable, err = ParseInts(f.DegreeTable)
		case "seeds":
			cfg.Seeds, err = ParseSeeds(f.Seeds)
		case "seed-space":
			cfg.SeedSpace = f.SeedSpace
		case "max-iterations":
			cfg.MaxIterations = f.MaxIterations
		case "log-level":
			cfg.LogLevel = f.LogLevel
		}
		if err != nil {
			err = errors.Wrapf(err, "flag -%s", fl.Name)
		}
	})
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// ParseInts parses a comma-separated list of non-negative integers.
func ParseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", part)
		}
		if v < 0 {
			return nil, errors.Errorf("negative value %d", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("empty list")
	}
	return out, nil
}

// ParseSeeds parses a comma-separated list of seeds and inclusive ranges
// written lo..hi.
func ParseSeeds(s string) ([]uint64, error) {
	var out []uint64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "..")
		from, err := strconv.ParseUint(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse seed %q", part)
		}
		to := from
		if isRange {
			if to, err = strconv.ParseUint(strings.TrimSpace(hi), 10, 64); err != nil {
				return nil, errors.Wrapf(err, "parse seed %q", part)
			}
			if to < from {
				return nil, errors.Errorf("empty seed range %q", part)
			}
		}
		for v := from; ; v++ {
			out = append(out, v)
			if v == to {
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no seeds")
	}
	return out, nil
}
