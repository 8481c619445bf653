package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getidkit/idkit/internal/id"
	"github.com/getidkit/idkit/pkg/config"
)

func TestRunGenerate_DefaultSettings(t *testing.T) {
	var buf bytes.Buffer
	err := runGenerate(&buf, &generateFlags{
		count:       1,
		length:      id.DefaultLength,
		alphabet:    id.DefaultAlphabet,
		maxAttempts: id.DefaultMaxAttempts,
	})
	require.NoError(t, err)

	lines := strings.Fields(buf.String())
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], id.DefaultLength)
}

func TestRunGenerate_CountAndUniqueness(t *testing.T) {
	var buf bytes.Buffer
	err := runGenerate(&buf, &generateFlags{
		count:       50,
		length:      6,
		alphabet:    id.DefaultAlphabet,
		maxAttempts: id.DefaultMaxAttempts,
	})
	require.NoError(t, err)

	lines := strings.Fields(buf.String())
	require.Len(t, lines, 50)
	seen := make(map[string]bool)
	for _, line := range lines {
		assert.Len(t, line, 6)
		assert.False(t, seen[line], "duplicate identifier printed: %s", line)
		seen[line] = true
	}
}

func TestRunGenerate_SaturationFailsWithPartialOutput(t *testing.T) {
	// Two possible identifiers; asking for three must fail after printing two.
	var buf bytes.Buffer
	err := runGenerate(&buf, &generateFlags{
		count:       3,
		length:      1,
		alphabet:    "AB",
		maxAttempts: 100,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, id.ErrSaturated)
	assert.Len(t, strings.Fields(buf.String()), 2)
}

func TestRunGenerate_InvalidFlags(t *testing.T) {
	var buf bytes.Buffer

	err := runGenerate(&buf, &generateFlags{count: 0, length: 8, alphabet: "AB", maxAttempts: 10})
	assert.Error(t, err)

	err = runGenerate(&buf, &generateFlags{count: 1, length: 8, alphabet: "", maxAttempts: 10})
	assert.Error(t, err)
}

func TestLoadServeConfig_FlagOverrides(t *testing.T) {
	cfg, err := loadServeConfig(&serveFlags{port: 3210, logLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, 3210, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, id.DefaultAlphabet, cfg.Generator.Alphabet)
}

func TestLoadServeConfig_Defaults(t *testing.T) {
	cfg, err := loadServeConfig(&serveFlags{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
}

func TestLoadServeConfig_MissingFile(t *testing.T) {
	_, err := loadServeConfig(&serveFlags{configPath: "/nonexistent/idkit.yaml"})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrFileNotFound)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, buf.String(), "idkit")
	assert.Contains(t, buf.String(), "commit:")
}
