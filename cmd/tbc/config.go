package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/luxfi/log"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/hexaflex/tbc/search"
)

// Flag names.
const (
	ConfigKey      = "config"
	MaxCyclesKey   = "max-cycles"
	TrialCyclesKey = "trial-cycles"
	TraceKey       = "trace"
	VerboseKey     = "verbose"
)

// DefaultMaxCycles limits a full program run unless configured otherwise.
const DefaultMaxCycles = 10_000_000

// Config defines program configuration.
type Config struct {
	MaxCycles   int  `toml:"max-cycles"`   // Cycle limit for full runs; <= 0 means no limit.
	TrialCycles int  `toml:"trial-cycles"` // Cycle limit per search trial.
	Trace       bool `toml:"trace"`        // Print instruction trace data to stderr.
	Verbose     bool `toml:"verbose"`      // Log search progress.
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		MaxCycles:   DefaultMaxCycles,
		TrialCycles: search.DefaultTrialCycles,
	}
}

// AddFlags registers all configuration flags.
func AddFlags(flags *pflag.FlagSet) {
	flags.String(ConfigKey, "", "TOML configuration file")
	flags.Int(MaxCyclesKey, DefaultMaxCycles, "Cycle limit for a full program run; 0 means no limit")
	flags.Int(TrialCyclesKey, search.DefaultTrialCycles, "Cycle limit for each search trial")
	flags.Bool(TraceKey, false, "Print instruction trace data to stderr")
	flags.BoolP(VerboseKey, "v", false, "Log search progress")
}

// ParseFlags builds the configuration. Values from the configuration file,
// if one is given, are overridden by explicitly set flags.
func ParseFlags(flags *pflag.FlagSet) (*Config, error) {
	c := NewConfig()

	path, err := flags.GetString(ConfigKey)
	if err != nil {
		return nil, err
	}

	if path != "" {
		if err := c.Load(path); err != nil {
			return nil, err
		}
	}

	if flags.Changed(MaxCyclesKey) {
		if c.MaxCycles, err = flags.GetInt(MaxCyclesKey); err != nil {
			return nil, err
		}
	}

	if flags.Changed(TrialCyclesKey) {
		if c.TrialCycles, err = flags.GetInt(TrialCyclesKey); err != nil {
			return nil, err
		}
	}

	if flags.Changed(TraceKey) {
		if c.Trace, err = flags.GetBool(TraceKey); err != nil {
			return nil, err
		}
	}

	if flags.Changed(VerboseKey) {
		if c.Verbose, err = flags.GetBool(VerboseKey); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Load reads configuration values from the given TOML file.
// Keys missing from the file keep their current value.
func (c *Config) Load(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrapf(err, "config %s", path)
	}

	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return errors.Errorf("config %s: unknown keys: %s", path, strings.Join(names, ", "))
	}

	return nil
}

// Logger returns the logger for search progress.
func (c *Config) Logger() log.Logger {
	if c.Verbose {
		return log.NewLogger(AppName)
	}
	return log.NewNoOpLogger()
}
