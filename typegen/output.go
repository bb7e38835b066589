package typegen

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/teranos/a2ml/errors"
)

// Templates is a parsed set of embedded templates for one backend.
type Templates struct {
	tmpl *template.Template
}

// ParseTemplates parses every file matching pattern in fsys. Templates are
// referenced by base file name.
func ParseTemplates(fsys fs.FS, pattern string, funcs template.FuncMap) (*Templates, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(fsys, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "parse templates %s", pattern)
	}
	return &Templates{tmpl: tmpl}, nil
}

// MustParseTemplates is ParseTemplates for templates embedded in the binary.
func MustParseTemplates(fsys fs.FS, pattern string, funcs template.FuncMap) *Templates {
	t, err := ParseTemplates(fsys, pattern, funcs)
	if err != nil {
		panic(err)
	}
	return t
}

// Render executes the named template with data.
func (t *Templates) Render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, errors.Wrapf(err, "render %s", name)
	}
	return buf.Bytes(), nil
}

// Output writes generated files under a root directory and remembers them.
type Output struct {
	root  string
	files []string
}

// NewOutput creates an Output rooted at dir.
func NewOutput(dir string) *Output {
	return &Output{root: dir}
}

// Write writes data to rel (slash-separated, relative to the root), creating
// parent directories as needed.
func (o *Output) Write(rel string, data []byte) error {
	path := filepath.Join(o.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "create directory for %s", rel)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", rel)
	}
	o.files = append(o.files, rel)
	return nil
}

// Files returns the written paths, relative to the root, sorted.
func (o *Output) Files() []string {
	files := append([]string(nil), o.files...)
	sort.Strings(files)
	return files
}
