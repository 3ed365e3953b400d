// Package config loads rankgrid settings from an optional YAML file, an
// optional .env file and RANKGRID_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/tsawler/rankgrid/srk"
	"github.com/tsawler/rankgrid/tables"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "RANKGRID_"

// Contest holds the contest metadata written into ranklists
type Contest struct {
	Title         string `yaml:"title"`
	StartAt       string `yaml:"start_at"`
	DurationHours int    `yaml:"duration_hours"`
	FrozenHours   int    `yaml:"frozen_hours"`
}

// Server holds HTTP service settings
type Server struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes"`
}

// Config is the complete application configuration
type Config struct {
	Env string `yaml:"env"`

	ProblemCount    int      `yaml:"problems"`
	RulingColors    []string `yaml:"ruling_colors"`
	YTolerance      float64  `yaml:"y_tolerance"`
	BaselineDivisor float64  `yaml:"baseline_divisor"`

	Output    string `yaml:"output"`
	HTML      string `yaml:"html"`
	Debug     bool   `yaml:"debug"`
	DebugDir  string `yaml:"debug_dir"`
	DebugPage int    `yaml:"debug_page"`
	SourcePDF string `yaml:"source_pdf"`

	Contest Contest `yaml:"contest"`
	Server  Server  `yaml:"server"`
}

// Default returns the built-in configuration
func Default() *Config {
	engine := tables.DefaultConfig(0)
	contest := srk.DefaultContest()
	return &Config{
		Env:             "development",
		RulingColors:    engine.RulingColors,
		BaselineDivisor: engine.BaselineDivisor,
		Output:          "out.srk.json",
		DebugDir:        "debug",
		DebugPage:       -1,
		Contest: Contest{
			Title:         contest.Title.Fallback(),
			StartAt:       contest.StartAt,
			DurationHours: 5,
			FrozenHours:   1,
		},
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   32 << 20,
		},
	}
}

// Load builds the configuration. path may be empty; a missing .env file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from RANKGRID_* variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}
	float := func(name string, dst *float64) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = f
		return nil
	}

	str("ENV", &c.Env)
	str("OUTPUT", &c.Output)
	str("HTML", &c.HTML)
	str("DEBUG_DIR", &c.DebugDir)
	str("SOURCE_PDF", &c.SourcePDF)
	str("CONTEST_TITLE", &c.Contest.Title)
	str("CONTEST_START_AT", &c.Contest.StartAt)
	str("ADDR", &c.Server.Addr)

	if v, ok := lookup(EnvPrefix + "DEBUG"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sDEBUG: %w", EnvPrefix, err)
		}
		c.Debug = b
	}
	if v, ok := lookup(EnvPrefix + "RULING_COLORS"); ok {
		c.RulingColors = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = splitList(v)
	}

	for _, err := range []error{
		num("PROBLEMS", &c.ProblemCount),
		num("DEBUG_PAGE", &c.DebugPage),
		num("CONTEST_DURATION_HOURS", &c.Contest.DurationHours),
		num("CONTEST_FROZEN_HOURS", &c.Contest.FrozenHours),
		float("Y_TOLERANCE", &c.YTolerance),
		float("BASELINE_DIVISOR", &c.BaselineDivisor),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the settings needed to run an extraction
func (c *Config) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return err
	}
	if c.Contest.DurationHours < 0 || c.Contest.FrozenHours < 0 {
		return errors.New("contest durations must not be negative")
	}
	return nil
}

// Engine returns the tables engine configuration
func (c *Config) Engine() tables.Config {
	cfg := tables.DefaultConfig(c.ProblemCount)
	if len(c.RulingColors) > 0 {
		cfg.RulingColors = append([]string(nil), c.RulingColors...)
	}
	cfg.YTolerance = c.YTolerance
	if c.BaselineDivisor > 0 {
		cfg.BaselineDivisor = c.BaselineDivisor
	}
	return cfg
}

// SrkContest returns the contest metadata for ranklists
func (c *Config) SrkContest() srk.Contest {
	contest := srk.DefaultContest()
	if c.Contest.Title != "" {
		contest.Title = srk.NewText(c.Contest.Title)
	}
	if c.Contest.StartAt != "" {
		contest.StartAt = c.Contest.StartAt
	}
	contest.Duration = srk.Hours(c.Contest.DurationHours)
	frozen := srk.Hours(c.Contest.FrozenHours)
	contest.FrozenDuration = &frozen
	return contest
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
