package typegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	a2mltest "github.com/teranos/a2ml/internal/testing"
)

func TestCompareDirectories(t *testing.T) {
	generated := a2mltest.WriteTxtar(t, `
-- include/A.h --
same
-- include/B.h --
new content
-- src/C.cpp --
only generated
`)
	existing := a2mltest.WriteTxtar(t, `
-- include/A.h --
same
-- include/B.h --
old content
-- include/Extra.h --
not ours
`)

	result, err := CompareDirectories(generated, existing)
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Equal(t, []string{"include/B.h"}, result.Changed)
	assert.Equal(t, []string{"src/C.cpp"}, result.Missing)
}

func TestCompareDirectoriesUpToDate(t *testing.T) {
	archive := `
-- include/A.h --
same
`
	result, err := CompareDirectories(a2mltest.WriteTxtar(t, archive), a2mltest.WriteTxtar(t, archive))
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
	assert.Empty(t, result.Changed)
	assert.Empty(t, result.Missing)
}

func TestOutputWritesSortedFiles(t *testing.T) {
	dir := t.TempDir()
	out := NewOutput(dir)

	require.NoError(t, out.Write("src/b/B.cpp", []byte("b")))
	require.NoError(t, out.Write("include/a/A.h", []byte("a")))

	assert.Equal(t, []string{"include/a/A.h", "src/b/B.cpp"}, out.Files())
	assert.Equal(t, map[string]string{
		"include/a/A.h": "a",
		"src/b/B.cpp":   "b",
	}, a2mltest.ReadTree(t, dir))
}
