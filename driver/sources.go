package driver

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
)

// Source is an input or dependency location resolved to a local directory.
type Source struct {
	// Input is the location as given on the command line.
	Input string
	// Dir is the local directory to parse.
	Dir string
	// Remote is true when Dir was fetched into a temporary directory.
	Remote bool

	cleanup func()
}

// Cleanup removes fetched content. Local sources are left untouched.
func (s *Source) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// ResolveSource resolves a location to a local directory using go-getter detection.
// Supports:
//   - Local paths: /path/to/defs, ./relative, ~/home/path
//   - Git sources: git::https://host/repo//interfaces?ref=v4.0
//   - Archives: https://example.com/interfaces.tar.gz (auto-extracted)
//
// Remote sources are fetched into a temporary directory that Cleanup removes.
func ResolveSource(ctx context.Context, input string, log *zap.SugaredLogger) (*Source, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.NewKind(errors.InvalidInput, "empty directory path")
	}

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	path, err := expandHome(input)
	if err != nil {
		return nil, errors.WrapKind(err, errors.InvalidInput, "cannot expand %s", input)
	}

	detected, err := getter.Detect(path, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.WrapKind(err, errors.InvalidInput, "cannot detect source type of %s", input)
	}

	u, err := url.Parse(detected)
	if err != nil {
		return nil, errors.WrapKind(err, errors.InvalidInput, "cannot parse source %s", detected)
	}

	if u.Scheme == "file" || u.Scheme == "" {
		dir := path
		if u.Scheme == "file" {
			dir = u.Path
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(pwd, dir)
		}
		if err := checkDir(dir); err != nil {
			return nil, err
		}
		return &Source{Input: input, Dir: dir}, nil
	}

	return fetchSource(ctx, input, detected, log)
}

// IsRemote reports whether input names a location go-getter would fetch.
func IsRemote(input string) bool {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}
	path, err := expandHome(input)
	if err != nil {
		return false
	}
	detected, err := getter.Detect(path, pwd, getter.Detectors)
	if err != nil {
		return false
	}
	u, err := url.Parse(detected)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Scheme != "file"
}

func fetchSource(ctx context.Context, input, detected string, log *zap.SugaredLogger) (*Source, error) {
	tempDir, err := os.MkdirTemp("", fmt.Sprintf("a2ml-src-%s-*", sourceName(input)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}

	log.Infow("Fetching source",
		logger.FieldSource, input,
		"detected", detected,
		logger.FieldDir, tempDir,
	)

	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     tempDir,
		Mode:    getter.ClientModeDir,
		Getters: getter.Getters,
	}
	if err := client.Get(); err != nil {
		os.RemoveAll(tempDir)
		return nil, errors.WrapKind(err, errors.InvalidInput, "cannot fetch %s", input)
	}

	return &Source{
		Input:  input,
		Dir:    tempDir,
		Remote: true,
		cleanup: func() {
			log.Debugw("Removing fetched source", logger.FieldDir, tempDir)
			os.RemoveAll(tempDir)
		},
	}, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewKind(errors.InvalidInput, "directory does not exist: %s", dir)
		}
		return errors.WrapKind(err, errors.InvalidInput, "cannot access %s", dir)
	}
	if !info.IsDir() {
		return errors.NewKind(errors.InvalidInput, "not a directory: %s", dir)
	}
	return nil
}

// sourceName extracts a short name from a location for temp directory naming.
func sourceName(input string) string {
	input = strings.TrimSuffix(input, "/")
	if i := strings.Index(input, "?"); i >= 0 {
		input = input[:i]
	}
	input = strings.TrimSuffix(input, ".git")

	parts := strings.FieldsFunc(input, func(r rune) bool { return r == '/' })
	name := "source"
	if len(parts) > 0 {
		name = parts[len(parts)-1]
	}

	name = strings.NewReplacer(":", "-", "@", "-", " ", "-", "*", "-").Replace(name)
	if len(name) > 40 {
		name = name[:40]
	}
	return name
}
