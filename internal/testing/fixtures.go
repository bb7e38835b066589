package testing

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"
)

// WriteTxtar extracts a txtar archive into a fresh temp directory and returns its path.
// File names in the archive are slash-separated paths relative to that directory.
// The directory is removed automatically via t.TempDir().
func WriteTxtar(t *testing.T, archive string) string {
	t.Helper()

	dir := t.TempDir()
	ar := txtar.Parse([]byte(archive))
	if len(ar.Files) == 0 {
		t.Fatalf("txtar archive has no files")
	}

	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create fixture directory: %v", err)
		}
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", f.Name, err)
		}
	}

	return dir
}

// TxtarFile returns the content of one file of a txtar archive.
func TxtarFile(t *testing.T, archive, name string) string {
	t.Helper()

	for _, f := range txtar.Parse([]byte(archive)).Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("txtar archive has no file %s", name)
	return ""
}

// ReadTree returns every regular file under dir keyed by slash-separated relative path.
func ReadTree(t *testing.T, dir string) map[string]string {
	t.Helper()

	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to read tree %s: %v", dir, err)
	}
	return files
}
