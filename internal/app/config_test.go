package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pot-ca/internal/sims/pots"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, int64(20), c.ShortGenerations)
	assert.Equal(t, int64(50_000_000_000), c.TargetGenerations)
	assert.Equal(t, pots.DefaultMaxSearch, c.MaxSearch)
	assert.NoError(t, c.Validate())
}

func TestBindParsesFlags(t *testing.T) {
	c := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.Bind(fs)
	require.NoError(t, fs.Parse([]string{"--short", "7", "--target=1000", "--log-level", "debug"}))

	assert.Equal(t, int64(7), c.ShortGenerations)
	assert.Equal(t, int64(1000), c.TargetGenerations)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadFileAndMergeKeepsExplicitFlags(t *testing.T) {
	path := writeFile(t, "pots.yaml", "short_generations: 5\ntarget_generations: 99\nlog_format: json\n")

	c := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.Bind(fs)
	require.NoError(t, fs.Parse([]string{"--target", "1234"}))

	file, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pots.DefaultMaxSearch, file.MaxSearch, "missing keys keep defaults")

	c.MergeFile(file, fs)
	assert.Equal(t, int64(5), c.ShortGenerations)
	assert.Equal(t, int64(1234), c.TargetGenerations)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	_, err := LoadFile(writeFile(t, "pots.yaml", "generations: 5\n"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := NewConfig()
	c.ShortGenerations = -1
	assert.ErrorIs(t, c.Validate(), pots.ErrNegativeGenerations)

	c = NewConfig()
	c.TargetGenerations = -1
	assert.ErrorIs(t, c.Validate(), pots.ErrNegativeGenerations)

	c = NewConfig()
	c.MaxSearch = 0
	assert.Error(t, c.Validate())

	c = NewConfig()
	c.LogLevel = "chatty"
	assert.Error(t, c.Validate())
}

func TestParametersIncludeEngineAndOutput(t *testing.T) {
	c := NewConfig()
	c.MetricsFile = "/tmp/pots.prom"
	snap := c.Parameters()
	require.Len(t, snap.Groups, 2)
	assert.Equal(t, "engine", snap.Groups[0].Name)
	assert.Equal(t, "output", snap.Groups[1].Name)
	assert.Equal(t, "true", snap.Groups[1].Params[3].Value)
}
