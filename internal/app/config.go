package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"pot-ca/internal/core"
	"pot-ca/internal/logs"
	"pot-ca/internal/sims/pots"
)

// Config represents the command-line parameters for the application. Every
// field can also come from a YAML file; explicit flags win over the file.
type Config struct {
	ShortGenerations  int64  `yaml:"short_generations"`
	TargetGenerations int64  `yaml:"target_generations"`
	MaxSearch         int64  `yaml:"max_search"`
	LogLevel          string `yaml:"log_level"`
	LogFormat         string `yaml:"log_format"`
	LogFile           string `yaml:"log_file"`
	MetricsFile       string `yaml:"metrics_file"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	engine := pots.DefaultConfig()
	return &Config{
		ShortGenerations:  engine.ShortGenerations,
		TargetGenerations: engine.TargetGenerations,
		MaxSearch:         engine.MaxSearch,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.Int64Var(&c.ShortGenerations, "short", c.ShortGenerations, "generations for the directly simulated result")
	fs.Int64Var(&c.TargetGenerations, "target", c.TargetGenerations, "generations for the extrapolated result")
	fs.Int64Var(&c.MaxSearch, "max-search", c.MaxSearch, "generations to simulate while looking for a cycle")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "terminal log format: text or json")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "also append JSON logs to this file")
	fs.StringVar(&c.MetricsFile, "metrics-file", c.MetricsFile, "write Prometheus metrics to this file on exit")
}

// LoadFile reads a YAML config file. Keys missing from the file keep their
// defaults.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	c := NewConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// MergeFile copies every setting from file whose flag was not set
// explicitly on fs.
func (c *Config) MergeFile(file *Config, fs *pflag.FlagSet) {
	changed := func(name string) bool { return fs != nil && fs.Changed(name) }
	if !changed("short") {
		c.ShortGenerations = file.ShortGenerations
	}
	if !changed("target") {
		c.TargetGenerations = file.TargetGenerations
	}
	if !changed("max-search") {
		c.MaxSearch = file.MaxSearch
	}
	if !changed("log-level") {
		c.LogLevel = file.LogLevel
	}
	if !changed("log-format") {
		c.LogFormat = file.LogFormat
	}
	if !changed("log-file") {
		c.LogFile = file.LogFile
	}
	if !changed("metrics-file") {
		c.MetricsFile = file.MetricsFile
	}
}

// Validate rejects settings no run can use.
func (c *Config) Validate() error {
	if c.ShortGenerations < 0 {
		return fmt.Errorf("short generations %d: %w", c.ShortGenerations, pots.ErrNegativeGenerations)
	}
	if c.TargetGenerations < 0 {
		return fmt.Errorf("target generations %d: %w", c.TargetGenerations, pots.ErrNegativeGenerations)
	}
	if c.MaxSearch <= 0 {
		return fmt.Errorf("max search must be positive, got %d", c.MaxSearch)
	}
	if _, err := logs.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Engine returns the engine-level part of the configuration.
func (c *Config) Engine() pots.Config {
	return pots.Config{
		ShortGenerations:  c.ShortGenerations,
		TargetGenerations: c.TargetGenerations,
		MaxSearch:         c.MaxSearch,
	}
}

// LogOptions returns the logger settings.
func (c *Config) LogOptions() logs.Options {
	return logs.Options{Level: c.LogLevel, Format: c.LogFormat, File: c.LogFile}
}

// Parameters describes the effective configuration for startup logging.
func (c *Config) Parameters() core.ParameterSnapshot {
	output := core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "output",
		Params: []core.Parameter{
			{Key: "log_level", Type: core.ParamTypeString, Value: c.LogLevel},
			{Key: "log_file", Type: core.ParamTypeString, Value: c.LogFile},
			{Key: "metrics_file", Type: core.ParamTypeString, Value: c.MetricsFile},
			{Key: "metrics", Type: core.ParamTypeBool, Value: strconv.FormatBool(c.MetricsFile != "")},
		},
	}}}
	return c.Engine().Parameters().Merge(output)
}
