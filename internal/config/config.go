package config

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/viper"

	"github.com/observe-l/dnafountain/fec"
	"github.com/observe-l/dnafountain/internal/fecwire"
)

// EnvPrefix prefixes environment overrides, e.g. DNAFOUNTAIN_FRAME_SIZE.
const EnvPrefix = "DNAFOUNTAIN"

// Config is the coding scheme plus tool settings. Zero SeedSpace means
// "derive from the degree table and seeds".
type Config struct {
	FrameSize     int
	FrameCount    int
	DegreeTable   []int
	Seeds         []uint64
	SeedSpace     int
	MaxIterations int
	LogLevel      string
}

func setDefaults(v *viper.Viper) {
	ref := fec.ReferenceScheme()
	v.SetDefault("frame_size", ref.FrameSize)
	v.SetDefault("frame_count", ref.FrameCount)
	v.SetDefault("degree_table", []int(ref.Table))
	v.SetDefault("seed_count", len(fec.ReferenceSeeds()))
	v.SetDefault("seeds", []int{})
	v.SetDefault("seed_space", 0)
	v.SetDefault("max_iterations", 0)
	v.SetDefault("log_level", "info")
}

// Load reads defaults, then the optional file at path, then environment
// variables. Later sources win.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	cfg := &Config{
		FrameSize:     v.GetInt("frame_size"),
		FrameCount:    v.GetInt("frame_count"),
		DegreeTable:   v.GetIntSlice("degree_table"),
		SeedSpace:     v.GetInt("seed_space"),
		MaxIterations: v.GetInt("max_iterations"),
		LogLevel:      v.GetString("log_level"),
	}
	seeds := v.GetIntSlice("seeds")
	if len(seeds) == 0 {
		n := v.GetInt("seed_count")
		if n < 0 {
			return nil, errors.Errorf("seed_count %d is negative", n)
		}
		cfg.Seeds = fec.SeedRange(0, uint64(n))
	} else {
		for _, s := range seeds {
			if s < 0 {
				return nil, errors.Errorf("negative seed %d", s)
			}
			cfg.Seeds = append(cfg.Seeds, uint64(s))
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the scheme and that every configured seed has a usable degree.
func (c *Config) Validate() error {
	s := c.Scheme()
	if err := s.Validate(); err != nil {
		return errors.Wrap(err, "config")
	}
	for _, seed := range c.Seeds {
		if _, err := s.Positions(seed); err != nil {
			return errors.Wrap(err, "config")
		}
	}
	if c.SeedSpace < 0 {
		return errors.Errorf("seed_space %d is negative", c.SeedSpace)
	}
	if c.SeedSpace > 0 {
		for _, seed := range c.Seeds {
			if seed >= uint64(c.SeedSpace) {
				return errors.Wrapf(fecwire.ErrSeedOverflow, "seed %d outside seed_space %d", seed, c.SeedSpace)
			}
		}
	}
	// symbols are written two bits per nucleotide
	if n := c.Codec().SymbolLen(); n%2 != 0 {
		return errors.Wrapf(fecwire.ErrOddLength, "symbol of %d bits (seed prefix %d + frame %d)", n, c.Codec().SeedWidth, c.FrameSize)
	}
	return nil
}

// Scheme returns the coding scheme.
func (c *Config) Scheme() fec.Scheme {
	return fec.Scheme{FrameSize: c.FrameSize, FrameCount: c.FrameCount, Table: fec.DegreeTable(c.DegreeTable)}
}

// EffectiveSeedSpace is SeedSpace if set, otherwise the larger of the
// table size and one past the largest seed.
func (c *Config) EffectiveSeedSpace() int {
	if c.SeedSpace > 0 {
		return c.SeedSpace
	}
	space := len(c.DegreeTable)
	for _, s := range c.Seeds {
		if int(s)+1 > space {
			space = int(s) + 1
		}
	}
	return space
}

// Codec returns the symbol layout for this configuration.
func (c *Config) Codec() fecwire.Codec {
	return fecwire.NewCodec(c.EffectiveSeedSpace(), c.FrameSize)
}

// DecoderOptions translates tool settings into decoder options.
func (c *Config) DecoderOptions() []fec.DecoderOption {
	if c.MaxIterations > 0 {
		return []fec.DecoderOption{fec.WithMaxIterations(c.MaxIterations)}
	}
	return nil
}
