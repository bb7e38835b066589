package errors

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "try this fix")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsKind(nil, MissingField))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestCompileErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *CompileError
		want string
	}{
		{
			name: "message only",
			err:  NewKind(InvalidVersion, "invalid message version %q", "x"),
			want: `invalid message version "x"`,
		},
		{
			name: "field and file",
			err:  NewKind(MissingField, "missing required field").ForField("topic").InFile("a/b.yaml"),
			want: "missing required field (field=topic, file=a/b.yaml)",
		},
		{
			name: "symbol",
			err:  NewKind(DuplicateMessage, "message already defined").ForSymbol("aasb.x.FooMessage"),
			want: "message already defined (symbol=aasb.x.FooMessage)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := NewKind(DuplicateInterface, "interface already defined: %s", "Alexa.Speaker:4.0")
	err := Wrap(base, "failed to parse inputs")
	err = WithHint(err, "topics must be unique per message version")

	assert.True(t, IsKind(err, DuplicateInterface))
	assert.False(t, IsKind(err, DuplicateType))
	assert.Equal(t, DuplicateInterface, KindOf(err))
	assert.Contains(t, err.Error(), "failed to parse inputs")
	assert.Contains(t, GetAllHints(err), "topics must be unique per message version")
}

func TestWrapKindKeepsCause(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here")
	require.Error(t, statErr)

	err := WrapKind(statErr, PublishFailed, "failed to copy staged output")
	assert.True(t, Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to copy staged output: ")

	detailed := fmt.Sprintf("%+v", Wrap(err, "publish"))
	assert.Contains(t, detailed, "errors_test.go")
}

func TestKindStage(t *testing.T) {
	assert.Equal(t, StageConfiguration, UnknownBackend.Stage())
	assert.Equal(t, StageParse, DuplicateType.Stage())
	assert.Equal(t, StageResolution, AliasCycle.Stage())
	assert.Equal(t, StageResolution, VersionMismatch.Stage())
	assert.Equal(t, StagePublish, PublishFailed.Stage())
	assert.Equal(t, Stage(""), Kind("Bogus").Stage())
}

func ExampleNewKind() {
	err := NewKind(MissingField, "missing required field").ForField("namespace").InFile("speaker.yaml")
	fmt.Println(KindOf(err), err)
	// Output: MissingField missing required field (field=namespace, file=speaker.yaml)
}
