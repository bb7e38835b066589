package typegen

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/teranos/a2ml/errors"
)

// CheckResult holds the result of comparing freshly generated files with an
// existing output tree.
type CheckResult struct {
	UpToDate bool
	Changed  []string // files whose content differs
	Missing  []string // generated files absent from the existing tree
}

// CompareDirectories compares every file under generatedDir with the file at the
// same relative path under existingDir. Files only present in existingDir are
// ignored, since an output tree may be shared with other content.
func CompareDirectories(generatedDir, existingDir string) (*CheckResult, error) {
	result := &CheckResult{}

	err := filepath.WalkDir(generatedDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		relPath, err := filepath.Rel(generatedDir, path)
		if err != nil {
			return err
		}
		existingPath := filepath.Join(existingDir, relPath)
		relPath = filepath.ToSlash(relPath)

		if _, err := os.Stat(existingPath); os.IsNotExist(err) {
			result.Missing = append(result.Missing, relPath)
			return nil
		}

		different, err := filesAreDifferent(path, existingPath)
		if err != nil {
			return err
		}
		if different {
			result.Changed = append(result.Changed, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "compare %s with %s", generatedDir, existingDir)
	}

	sort.Strings(result.Changed)
	sort.Strings(result.Missing)
	result.UpToDate = len(result.Changed) == 0 && len(result.Missing) == 0
	return result, nil
}

// filesAreDifferent compares two files byte for byte.
func filesAreDifferent(file1, file2 string) (bool, error) {
	content1, err := os.ReadFile(file1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file1)
	}

	content2, err := os.ReadFile(file2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file2)
	}

	return !bytes.Equal(content1, content2), nil
}
