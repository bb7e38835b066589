package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/a2ml/errors"
	a2mltest "github.com/teranos/a2ml/internal/testing"
	"github.com/teranos/a2ml/plugin"
	"github.com/teranos/a2ml/typegen"
	"github.com/teranos/a2ml/typegen/markdown"
)

const speakerArchive = `
-- alexa/speaker.yaml --
topic: Alexa.Speaker
namespace: aasb.alexa.speaker
path: Alexa/Speaker
messages:
  - action: SetVolume
    direction: incoming
    payload:
      - name: volume
        type: int
      - name: origin
        type: aasb.common.Point
`

const commonArchive = `
-- common.yaml --
topic: Common
namespace: aasb.common
path: Common
types:
  - name: Point
    type: struct
    values:
      - name: x
        type: int
`

type fixture struct {
	input  string
	deps   string
	output string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return fixture{
		input:  a2mltest.WriteTxtar(t, speakerArchive),
		deps:   a2mltest.WriteTxtar(t, commonArchive),
		output: filepath.Join(t.TempDir(), "out"),
	}
}

func (f fixture) config() Config {
	return Config{
		Parser:         DefaultParser,
		Generator:      DefaultGenerator,
		Inputs:         []string{f.input},
		Dependencies:   []string{f.deps},
		MessageVersion: "4.0",
		Output:         f.output,
	}
}

func runWithStates(t *testing.T, cfg Config) (*Result, []State, error) {
	t.Helper()
	var states []State
	d := New(WithObserver(func(s State) { states = append(states, s) }))
	res, err := d.Run(context.Background(), cfg)
	return res, states, err
}

func TestRunPublishes(t *testing.T) {
	f := newFixture(t)

	res, states, err := runWithStates(t, f.config())
	require.NoError(t, err)

	assert.Equal(t, []State{Configuring, Parsing, Generating, Publishing, Done}, states)
	assert.Equal(t, Done, res.State)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 2, res.Stats.Interfaces)
	assert.Equal(t, 1, res.Stats.Exported)

	want := []string{
		"include/AASB/Message/Alexa/Speaker/SetVolumeMessage.h",
		"src/AASB/Message/Alexa/Speaker/SetVolumeMessage.cpp",
	}
	assert.Equal(t, want, res.Files)
	assert.Equal(t, want, res.Published)

	tree := a2mltest.ReadTree(t, f.output)
	assert.Len(t, tree, 2)
	assert.Contains(t, tree[want[0]], "aasb::message::common::Point origin;")

	_, err = os.Stat(res.Staging)
	assert.True(t, os.IsNotExist(err), "staging directory is removed")
}

func TestRunNoOutput(t *testing.T) {
	f := newFixture(t)
	cfg := f.config()
	cfg.NoOutput = true
	cfg.Output = ""

	res, states, err := runWithStates(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, Done, states[len(states)-1])
	assert.Len(t, res.Files, 2)
	assert.Empty(t, res.Published)

	_, err = os.Stat(f.output)
	assert.True(t, os.IsNotExist(err))
}

func TestRunMarkdown(t *testing.T) {
	f := newFixture(t)
	cfg := f.config()
	cfg.Generator = markdown.Name

	res, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alexa.Speaker.md", markdown.IndexFile}, res.Published)
}

func TestRunConfigurationErrors(t *testing.T) {
	f := newFixture(t)
	file := filepath.Join(t.TempDir(), "file.yaml")
	require.NoError(t, os.WriteFile(file, []byte("topic: x"), 0644))

	tests := []struct {
		name   string
		modify func(*Config)
		kind   errors.Kind
	}{
		{"no inputs", func(c *Config) { c.Inputs = nil }, errors.InvalidInput},
		{"missing input", func(c *Config) { c.Inputs = []string{filepath.Join(f.input, "nope")} }, errors.InvalidInput},
		{"input is a file", func(c *Config) { c.Inputs = []string{file} }, errors.InvalidInput},
		{"missing dependency", func(c *Config) { c.Dependencies = []string{"/does/not/exist"} }, errors.InvalidInput},
		{"unknown parser", func(c *Config) { c.Parser = "xml" }, errors.UnknownBackend},
		{"unknown generator", func(c *Config) { c.Generator = "java" }, errors.UnknownBackend},
		{"bare major version", func(c *Config) { c.MessageVersion = "4" }, errors.InvalidVersion},
		{"prefixed version", func(c *Config) { c.MessageVersion = "v4.0" }, errors.InvalidVersion},
		{"four part version", func(c *Config) { c.MessageVersion = "4.0.0.0" }, errors.InvalidVersion},
		{"empty version", func(c *Config) { c.MessageVersion = "" }, errors.InvalidVersion},
		{"no output", func(c *Config) { c.Output = "" }, errors.InvalidOutput},
		{"output parent missing", func(c *Config) { c.Output = filepath.Join(f.output, "a", "b") }, errors.InvalidOutput},
		{"output is a file", func(c *Config) { c.Output = file }, errors.InvalidOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := f.config()
			tt.modify(&cfg)

			res, states, err := runWithStates(t, cfg)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err), err.Error())
			assert.Equal(t, []State{Configuring, Failed}, states)
			assert.Equal(t, Failed, res.State)
		})
	}
}

func TestRunAcceptsVersionShapes(t *testing.T) {
	for _, v := range []string{"4.0", "4.0.1", "4.0-beta", "4.1.2-rc.1", "2.0", "1.0.0", "4.0-rc_1"} {
		t.Run(v, func(t *testing.T) {
			input := a2mltest.WriteTxtar(t, `
-- a.yaml --
topic: A
namespace: a
path: A
`)
			cfg := Config{
				Parser:         DefaultParser,
				Generator:      DefaultGenerator,
				Inputs:         []string{input},
				MessageVersion: v,
				NoOutput:       true,
			}
			_, err := New().Run(context.Background(), cfg)
			assert.NoError(t, err)
		})
	}
}

// pinnedGenerator is the markdown backend restricted to 4.x messages.
type pinnedGenerator struct {
	*markdown.Generator
}

func (g pinnedGenerator) Metadata() plugin.Metadata {
	md := g.Generator.Metadata()
	md.Name = "pinned"
	md.MessageVersion = ">=4.0, <5.0"
	return md
}

func TestRunBackendVersionConstraint(t *testing.T) {
	generators := plugin.NewRegistry[typegen.Generator]("generator")
	generators.MustRegister(pinnedGenerator{markdown.NewGenerator()})
	d := New(WithGenerators(generators))

	f := newFixture(t)
	cfg := f.config()
	cfg.Generator = "pinned"
	cfg.NoOutput = true

	_, err := d.Run(context.Background(), cfg)
	require.NoError(t, err)

	cfg.MessageVersion = "5.0-rc_1"
	_, err = d.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidVersion, errors.KindOf(err))
}

func TestRunParseFailurePublishesNothing(t *testing.T) {
	f := newFixture(t)
	other := a2mltest.WriteTxtar(t, strings.Replace(speakerArchive, "alexa/speaker.yaml", "copy.yaml", 1))

	cfg := f.config()
	cfg.Inputs = append(cfg.Inputs, other)

	res, states, err := runWithStates(t, cfg)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.DuplicateInterface))
	assert.Equal(t, []State{Configuring, Parsing, Failed}, states)
	assert.Empty(t, res.Published)

	_, err = os.Stat(f.output)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(res.Staging)
	assert.True(t, os.IsNotExist(err))
}

func TestRunVersionMismatchKeepsExistingOutput(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.output, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.output, "keep.txt"), []byte("old"), 0644))

	cfg := f.config()
	cfg.Inputs = []string{a2mltest.WriteTxtar(t, strings.Replace(speakerArchive, "path: Alexa/Speaker", "path: Alexa/Speaker\nversion: \"3.0\"", 1))}

	_, states, err := runWithStates(t, cfg)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.VersionMismatch))
	assert.Equal(t, []State{Configuring, Parsing, Generating, Failed}, states)
	assert.Equal(t, map[string]string{"keep.txt": "old"}, a2mltest.ReadTree(t, f.output))
}

func TestRunUnresolvedDependency(t *testing.T) {
	f := newFixture(t)
	cfg := f.config()
	cfg.Dependencies = nil

	_, err := New().Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.UnknownTypeReference))
}

func TestCheck(t *testing.T) {
	f := newFixture(t)
	d := New()

	_, err := d.Run(context.Background(), f.config())
	require.NoError(t, err)

	check, res, err := d.Check(context.Background(), f.config(), f.output)
	require.NoError(t, err)
	assert.True(t, check.UpToDate)
	assert.Empty(t, res.Published)

	header := filepath.Join(f.output, "include/AASB/Message/Alexa/Speaker/SetVolumeMessage.h")
	require.NoError(t, os.WriteFile(header, []byte("edited"), 0644))
	require.NoError(t, os.Remove(filepath.Join(f.output, "src/AASB/Message/Alexa/Speaker/SetVolumeMessage.cpp")))

	check, _, err = d.Check(context.Background(), f.config(), f.output)
	require.NoError(t, err)
	assert.False(t, check.UpToDate)
	assert.Equal(t, []string{"include/AASB/Message/Alexa/Speaker/SetVolumeMessage.h"}, check.Changed)
	assert.Equal(t, []string{"src/AASB/Message/Alexa/Speaker/SetVolumeMessage.cpp"}, check.Missing)
	assert.Equal(t, "edited", a2mltest.ReadTree(t, f.output)["include/AASB/Message/Alexa/Speaker/SetVolumeMessage.h"])
}

func TestModel(t *testing.T) {
	f := newFixture(t)
	cfg := f.config()
	cfg.Generator = ""

	m, err := New().Model(context.Background(), cfg)
	require.NoError(t, err)
	_, ok := m.FindType("aasb.common.Point")
	assert.True(t, ok)
	assert.Len(t, m.ExportedInterfaces(), 1)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "configuring", Configuring.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.True(t, Done.Terminal())
	assert.False(t, Publishing.Terminal())
}
