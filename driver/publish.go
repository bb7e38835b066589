package driver

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/teranos/a2ml/errors"
)

// Publish copies every file under staging into output, preserving the relative
// layout and creating directories as needed. It stops at the first failure;
// files already copied stay in place. The returned paths are slash-separated and
// relative to output.
func Publish(staging, output string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(staging, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(staging, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, errors.WrapKind(err, errors.PublishFailed, "cannot read staging directory %s", staging)
	}
	sort.Strings(files)

	published := make([]string, 0, len(files))
	for _, rel := range files {
		dst := filepath.Join(output, rel)
		if err := copyFile(filepath.Join(staging, rel), dst); err != nil {
			return published, errors.WrapKind(err, errors.PublishFailed, "cannot publish %s", rel).InFile(dst)
		}
		published = append(published, filepath.ToSlash(rel))
	}
	return published, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
