package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
)

func TestResolveSourceLocal(t *testing.T) {
	dir := t.TempDir()
	log := logger.ComponentLogger("test")

	s, err := ResolveSource(context.Background(), dir, log)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir)
	assert.False(t, s.Remote)

	s.Cleanup()
	_, err = os.Stat(dir)
	assert.NoError(t, err, "local sources are never removed")
}

func TestResolveSourceRelative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "defs"), 0755))
	t.Chdir(dir)

	s, err := ResolveSource(context.Background(), "defs", logger.ComponentLogger("test"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(s.Dir))
	assert.Equal(t, "defs", filepath.Base(s.Dir))
}

func TestResolveSourceErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	for _, input := range []string{"", "  ", file, filepath.Join(t.TempDir(), "missing")} {
		_, err := ResolveSource(context.Background(), input, logger.ComponentLogger("test"))
		require.Error(t, err, input)
		assert.True(t, errors.IsKind(err, errors.InvalidInput), input)
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("git::https://example.com/interfaces.git"))
	assert.True(t, IsRemote("github.com/example/interfaces"))
	assert.False(t, IsRemote(t.TempDir()))
	assert.False(t, IsRemote("./relative"))
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"git::https://example.com/org/interfaces.git", "interfaces"},
		{"https://example.com/defs.tar.gz?ref=v4", "defs.tar.gz"},
		{"git@github.com:org/repo.git", "repo"},
		{"", "source"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sourceName(tt.input), tt.input)
	}
}

func TestPublish(t *testing.T) {
	staging := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(staging, "a", "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "a", "b", "x.h"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "top.md"), []byte("top"), 0644))

	output := filepath.Join(t.TempDir(), "out")
	published, err := Publish(staging, output)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b/x.h", "top.md"}, published)

	data, err := os.ReadFile(filepath.Join(output, "a", "b", "x.h"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestPublishFailure(t *testing.T) {
	staging := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(staging, "a"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "a", "x.h"), []byte("x"), 0644))

	output := t.TempDir()
	// a regular file where a directory is needed
	require.NoError(t, os.WriteFile(filepath.Join(output, "a"), []byte("blocker"), 0644))

	_, err := Publish(staging, output)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.PublishFailed))
}
