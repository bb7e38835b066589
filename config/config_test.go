package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	s, err := Decode(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "a2ml", s.Parser)
	assert.Equal(t, "cpp", s.Generator)
	assert.Equal(t, DefaultWatchDebounceMS, s.Watch.DebounceMS)
	assert.Empty(t, s.Inputs)
	assert.False(t, s.NoOutput)
	assert.Equal(t, Defaults(), s)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
generator = "markdown"
message_version = "4.0"
inputs = ["interfaces", "/abs/defs"]
dependencies = ["git::https://example.com/common.git"]
output = "build/gen"

[watch]
debounce_ms = 50
`)

	v := NewViper()
	used, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	s, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "a2ml", s.Parser, "defaults still apply")
	assert.Equal(t, "markdown", s.Generator)
	assert.Equal(t, "4.0", s.MessageVersion)
	assert.Equal(t, []string{filepath.Join(dir, "interfaces"), "/abs/defs"}, s.Inputs)
	assert.Equal(t, []string{"git::https://example.com/common.git"}, s.Dependencies)
	assert.Equal(t, filepath.Join(dir, "build/gen"), s.Output)
	assert.Equal(t, 50, s.Watch.DebounceMS)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `message_version = "4.0"`)
	t.Setenv("A2ML_MESSAGE_VERSION", "4.1")
	t.Setenv("A2ML_GENERATOR", "markdown")
	t.Setenv("A2ML_WATCH_DEBOUNCE_MS", "10")

	v := NewViper()
	_, err := Load(v, path)
	require.NoError(t, err)

	s, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "4.1", s.MessageVersion)
	assert.Equal(t, "markdown", s.Generator)
	assert.Equal(t, 10, s.Watch.DebounceMS)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "parser = [")
	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Empty(t, findConfigFrom(nested))

	path := writeConfig(t, root, `parser = "a2ml"`)
	assert.Equal(t, path, findConfigFrom(nested))

	t.Chdir(nested)
	assert.Equal(t, path, FindProjectConfig())

	// a directory named like the config file is skipped
	require.NoError(t, os.Mkdir(filepath.Join(root, "a", FileName), 0755))
	assert.Equal(t, path, findConfigFrom(nested))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr string
	}{
		{"defaults", func(*Settings) {}, ""},
		{"empty parser", func(s *Settings) { s.Parser = "" }, "parser cannot be empty"},
		{"empty generator", func(s *Settings) { s.Generator = "" }, "generator cannot be empty"},
		{"empty input", func(s *Settings) { s.Inputs = []string{"a", ""} }, "inputs[1] cannot be empty"},
		{"empty dependency", func(s *Settings) { s.Dependencies = []string{""} }, "dependencies[0] cannot be empty"},
		{"negative debounce", func(s *Settings) { s.Watch.DebounceMS = -1 }, "watch.debounce_ms must be >= 0"},
		{"zero debounce", func(s *Settings) { s.Watch.DebounceMS = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.modify(s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	s := Defaults()
	s.MessageVersion = "4.0"
	s.Inputs = []string{"/defs/interfaces"}
	s.Output = "/build/gen"
	require.NoError(t, Save(path, s, false))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	t.Run("refuses to overwrite", func(t *testing.T) {
		err := Save(path, Defaults(), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force keeps a backup", func(t *testing.T) {
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		require.NoError(t, Save(path, Defaults(), true))

		backup, err := os.ReadFile(path + ".back")
		require.NoError(t, err)
		assert.Equal(t, before, backup)

		loaded, err := LoadFile(path)
		require.NoError(t, err)
		assert.Empty(t, loaded.MessageVersion)
	})
}
