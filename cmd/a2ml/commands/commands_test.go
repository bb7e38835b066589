package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/a2ml/config"
	"github.com/teranos/a2ml/errors"
	a2mltest "github.com/teranos/a2ml/internal/testing"
	"github.com/teranos/a2ml/logger"
)

const definitions = `
-- speaker.yaml --
topic: Alexa.Speaker
namespace: aasb.alexa.speaker
path: Alexa/Speaker
messages:
  - action: SetVolume
    direction: incoming
    payload:
      - name: volume
        type: int
      - name: names
        type: Names
        default: []
types:
  - name: Names
    type: alias
    alias: list:string
  - name: Channel
    type: enum
    values:
      - name: MAIN
        value: main
`

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// isolate runs the test from an empty directory so no a2ml.toml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestGenerate(t *testing.T) {
	dir := isolate(t)
	input := a2mltest.WriteTxtar(t, definitions)
	output := filepath.Join(dir, "out")

	out, err := execute(t, "--input", input, "--message-version", "4.0", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "1 interfaces (1 exported), 4 files written to "+output)

	tree := a2mltest.ReadTree(t, output)
	assert.Contains(t, tree, "include/AASB/Message/Alexa/Speaker/SetVolumeMessage.h")
	assert.Contains(t, tree, "src/AASB/Message/Alexa/Speaker/Channel.cpp")
}

func TestGenerateVerbose(t *testing.T) {
	isolate(t)
	input := a2mltest.WriteTxtar(t, definitions)

	out, err := execute(t, "-v", "--generator", "markdown", "--input", input, "--message-version", "4.0", "--no-output")
	require.NoError(t, err)
	assert.Contains(t, out, "Alexa.Speaker.md")
	assert.Contains(t, out, "generating")
	assert.Contains(t, out, "validated, nothing published")
}

func TestGenerateErrors(t *testing.T) {
	isolate(t)
	input := a2mltest.WriteTxtar(t, definitions)

	tests := []struct {
		name string
		args []string
		kind errors.Kind
	}{
		{"missing version", []string{"--input", input, "--no-output"}, errors.InvalidVersion},
		{"missing input", []string{"--message-version", "4.0", "--no-output"}, errors.InvalidInput},
		{"unknown generator", []string{"--input", input, "--message-version", "4.0", "--no-output", "--generator", "java"}, errors.UnknownBackend},
		{"missing output", []string{"--input", input, "--message-version", "4.0"}, errors.InvalidOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
			assert.Equal(t, 1, ExitCode(err))
		})
	}
}

func TestGenerateFromProjectConfig(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "defs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defs", "speaker.yaml"), []byte(a2mltest.TxtarFile(t, definitions, "speaker.yaml")), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(`
generator = "markdown"
message_version = "4.0"
inputs = ["defs"]
output = "docs"
`), 0644))

	nested := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(nested, 0755))
	t.Chdir(nested)

	_, err := execute(t)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "docs", "Alexa.Speaker.md"))

	// flags win over the file
	_, err = execute(t, "--message-version", "4")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.InvalidVersion))
}

func TestCheck(t *testing.T) {
	dir := isolate(t)
	input := a2mltest.WriteTxtar(t, definitions)
	output := filepath.Join(dir, "out")
	args := []string{"--input", input, "--message-version", "4.0", "--output", output}

	_, err := execute(t, args...)
	require.NoError(t, err)

	out, err := execute(t, append([]string{"check"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "is up to date (4 files)")

	header := filepath.Join(output, "include/AASB/Message/Alexa/Speaker/Channel.h")
	require.NoError(t, os.WriteFile(header, []byte("stale"), 0644))

	out, err = execute(t, append([]string{"check"}, args...)...)
	require.Error(t, err)
	assert.Equal(t, ExitDrift, ExitCode(err))
	assert.Contains(t, out, "changed: include/AASB/Message/Alexa/Speaker/Channel.h")

	var buf bytes.Buffer
	PrintError(&buf, err)
	assert.Empty(t, buf.String(), "drift is already reported")
}

func TestCheckRequiresOutput(t *testing.T) {
	isolate(t)
	input := a2mltest.WriteTxtar(t, definitions)

	_, err := execute(t, "check", "--input", input, "--message-version", "4.0")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.InvalidOutput))
}

func TestDescribe(t *testing.T) {
	isolate(t)
	input := a2mltest.WriteTxtar(t, definitions)
	base := []string{"--input", input, "--message-version", "4.0"}

	out, err := execute(t, append([]string{"describe", "aasb.alexa.speaker.SetVolumeMessage"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "message aasb.alexa.speaker.SetVolumeMessage")
	assert.Contains(t, out, "volume int -> int")
	assert.Contains(t, out, "names Names -> std::vector<std::string> (default [])")

	out, err = execute(t, append([]string{"describe", "aasb.alexa.speaker.Names"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "c++:       std::vector<std::string>")

	out, err = execute(t, append([]string{"describe", "aasb.alexa.speaker.Channel"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `MAIN = "main"`)

	_, err = execute(t, append([]string{"describe", "aasb.alexa.speaker.NopeMessage"}, base...)...)
	assert.True(t, errors.IsKind(err, errors.UnknownMessageReference))

	_, err = execute(t, append([]string{"describe", "aasb.alexa.speaker.Nope"}, base...)...)
	assert.True(t, errors.IsKind(err, errors.UnknownTypeReference))
}

func TestInit(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "init", "--message-version", "4.0", "--input", "defs")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+config.FileName)

	s, err := config.LoadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "4.0", s.MessageVersion)
	assert.Equal(t, []string{filepath.Join(dir, "defs")}, s.Inputs)
	assert.Equal(t, "cpp", s.Generator)

	_, err = execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "init", "--force", "--generator", "markdown")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.FileName+".back"))
}

func TestBackends(t *testing.T) {
	isolate(t)
	out, err := execute(t, "backends")
	require.NoError(t, err)
	for _, want := range []string{"a2ml", "toml", "cpp", "markdown", "any"} {
		assert.Contains(t, out, want)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"go_version"`)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "a2ml ")
}

func TestPrintError(t *testing.T) {
	err := errors.WithHint(errors.NewKind(errors.InvalidVersion, "invalid message version %q", "4"), "expected MAJOR.MINOR")

	var buf bytes.Buffer
	PrintError(&buf, err)
	assert.Equal(t, "error[InvalidVersion]: invalid message version \"4\"\n  hint: expected MAJOR.MINOR\n", buf.String())

	buf.Reset()
	PrintError(&buf, errors.New("plain failure"))
	assert.Equal(t, "error: plain failure\n", buf.String())
}

func TestPrintErrorLogsAtErrorLevel(t *testing.T) {
	var logs bytes.Buffer
	restore := logger.SetOutput(&logs)
	t.Cleanup(func() {
		restore()
		require.NoError(t, logger.Initialize(0, false))
	})
	require.NoError(t, logger.Initialize(0, true))

	PrintError(&bytes.Buffer{}, errors.NewKind(errors.DuplicateInterface, "interface already defined: A:4.0"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(logs.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "DuplicateInterface", entry[logger.FieldErrorKind])
	assert.Equal(t, "interface already defined: A:4.0", entry[logger.FieldError])

	logs.Reset()
	PrintError(&bytes.Buffer{}, &exitError{code: ExitDrift, msg: "stale"})
	assert.Empty(t, logs.String(), "drift is not a failure to log")
}

func TestWatchDirsExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.Mkdir(filepath.Join(home, "defs"), 0755))

	dirs, err := watchDirs(context.Background(), []string{"~/defs", "git::https://example.com/defs.git"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(home, "defs")}, dirs)

	_, err = watchDirs(context.Background(), []string{"~/missing"})
	assert.True(t, errors.IsKind(err, errors.InvalidInput))

	_, err = watchDirs(context.Background(), []string{"git::https://example.com/defs.git"})
	assert.True(t, errors.IsKind(err, errors.InvalidInput))
}
