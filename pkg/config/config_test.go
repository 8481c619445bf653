package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getidkit/idkit/internal/id"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, id.DefaultAlphabet, cfg.Generator.Alphabet)
	assert.Equal(t, id.DefaultLength, cfg.Generator.Length)
	assert.Equal(t, id.DefaultMaxAttempts, cfg.Generator.MaxAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeTemp(t, "idkit.yaml", `
server:
  host: 127.0.0.1
  port: 9999
generator:
  alphabet: "ABC123"
  length: 6
  maxAttempts: 50
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "ABC123", cfg.Generator.Alphabet)
	assert.Equal(t, 6, cfg.Generator.Length)
	assert.Equal(t, 50, cfg.Generator.MaxAttempts)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_JSON(t *testing.T) {
	path := writeTemp(t, "idkit.json", `{"server":{"port":8088},"generator":{"length":12}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Generator.Length)
	// Unset fields pick up defaults.
	assert.Equal(t, id.DefaultAlphabet, cfg.Generator.Alphabet)
	assert.Equal(t, id.DefaultMaxAttempts, cfg.Generator.MaxAttempts)
}

func TestLoad_PartialYAMLGetsDefaults(t *testing.T) {
	path := writeTemp(t, "partial.yml", `generator: {length: 4}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Generator.Length)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Load(writeTemp(t, "empty.yaml", ""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeTemp(t, "bad.yaml", "server: [unclosed"))
		assert.ErrorIs(t, err, ErrInvalidYAML)
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := Load(writeTemp(t, "bad.json", "{not json"))
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})
}

func TestValidate(t *testing.T) {
	t.Run("port out of range", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("duplicate alphabet symbols", func(t *testing.T) {
		_, err := Load(writeTemp(t, "dup.yaml", `generator: {alphabet: "AAB"}`))
		assert.Error(t, err)
	})

	t.Run("negative length", func(t *testing.T) {
		_, err := Load(writeTemp(t, "neg.yaml", `generator: {length: -2}`))
		assert.Error(t, err)
	})
}

func TestNewGenerator_FromConfig(t *testing.T) {
	cfg := Default()
	cfg.Generator.Alphabet = "XY"
	cfg.Generator.Length = 2

	gen, err := cfg.NewGenerator()
	require.NoError(t, err)
	assert.Equal(t, "XY", gen.Alphabet())
	assert.Equal(t, 2, gen.Length())

	got, err := gen.Generate()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
