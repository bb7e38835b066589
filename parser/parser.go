// Package parser reads interface definition documents into a model.
//
// Every backend decodes a file into the same generic tree (mappings, sequences
// and scalars) and hands it to Load, which validates it and builds the typed
// model immediately. Nothing downstream sees the raw tree.
package parser

import (
	"os"
	"time"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
	"github.com/teranos/a2ml/model"
	"github.com/teranos/a2ml/plugin"
	"go.uber.org/zap"
)

// Parser reads every definition document under a directory into a model.
type Parser interface {
	plugin.Plugin

	// Extensions returns the file extensions (without dot) this parser reads.
	Extensions() []string

	// Parse scans dir recursively and adds one Interface per document to m.
	// Interfaces are marked exported as given.
	Parse(dir string, exported bool, m *model.Model) error
}

// DecodeFunc turns raw file content into a generic tree.
// A nil tree with a nil error means the document was empty.
type DecodeFunc func(data []byte) (map[string]any, error)

// fileParser is a Parser built from a list of extensions and a decoder.
type fileParser struct {
	metadata   plugin.Metadata
	extensions []string
	decode     DecodeFunc
}

// New creates a Parser that reads files with the given extensions using decode.
func New(metadata plugin.Metadata, extensions []string, decode DecodeFunc) Parser {
	return &fileParser{
		metadata:   metadata,
		extensions: extensions,
		decode:     decode,
	}
}

// Registry returns a registry holding the built-in parsers.
func Registry() *plugin.Registry[Parser] {
	r := plugin.NewRegistry[Parser]("parser")
	r.MustRegister(NewA2ML())
	r.MustRegister(NewTOML())
	return r
}

func (p *fileParser) Metadata() plugin.Metadata { return p.metadata }

func (p *fileParser) Extensions() []string { return p.extensions }

func (p *fileParser) Parse(dir string, exported bool, m *model.Model) error {
	log := logger.ComponentLogger("parser").With(
		logger.FieldParser, p.metadata.Name,
		logger.FieldDir, dir,
		logger.FieldExported, exported,
	)
	start := time.Now()

	files, err := FindFiles(dir, p.extensions)
	if err != nil {
		return errors.WrapKind(err, errors.InvalidInput, "cannot scan directory %s", dir)
	}

	for _, path := range files {
		if err := p.parseFile(path, exported, m, log); err != nil {
			return err
		}
	}

	log.Debugw("Parsed directory",
		logger.FieldCount, len(files),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *fileParser) parseFile(path string, exported bool, m *model.Model, log *zap.SugaredLogger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapKind(err, errors.MalformedDocument, "cannot read definition document").InFile(path)
	}

	tree, err := p.decode(data)
	if err != nil {
		return errors.WrapKind(err, errors.MalformedDocument, "cannot decode %s document", p.metadata.Name).InFile(path)
	}
	if len(tree) == 0 {
		return errors.NewKind(errors.MalformedDocument, "document is empty").InFile(path)
	}

	iface, err := Load(tree, path, exported, m)
	if err != nil {
		return inFile(err, path)
	}

	log.Debugw("Loaded interface",
		logger.FieldFile, path,
		logger.FieldInterface, iface.Key(),
		"messages", len(iface.MessageSymbols()),
		"types", len(iface.TypeSymbols()),
	)
	return nil
}

// inFile attaches path to a CompileError that does not name a file yet.
func inFile(err error, path string) error {
	var ce *errors.CompileError
	if errors.As(err, &ce) && ce.File == "" {
		ce.File = path
	}
	return err
}
