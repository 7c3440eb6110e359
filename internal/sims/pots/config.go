package pots

import (
	"strconv"

	"pot-ca/internal/core"
)

// Config holds the generation counts for the two computations.
type Config struct {
	ShortGenerations  int64
	TargetGenerations int64
	MaxSearch         int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ShortGenerations:  20,
		TargetGenerations: 50_000_000_000,
		MaxSearch:         DefaultMaxSearch,
	}
}

// FromMap populates a Config from a string map. Unparsable or negative
// values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["short"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed >= 0 {
			c.ShortGenerations = parsed
		}
	}
	if v, ok := cfg["target"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed >= 0 {
			c.TargetGenerations = parsed
		}
	}
	if v, ok := cfg["max_search"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			c.MaxSearch = parsed
		}
	}
	return c
}

// Parameters describes the configuration for startup logging.
func (c Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "engine",
		Params: []core.Parameter{
			int64Param("short", c.ShortGenerations),
			int64Param("target", c.TargetGenerations),
			int64Param("max_search", c.MaxSearch),
		},
	}}}
}

func int64Param(key string, v int64) core.Parameter {
	return core.Parameter{Key: key, Type: core.ParamTypeInt, Value: strconv.FormatInt(v, 10)}
}
