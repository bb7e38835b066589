package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
)

// ExitDrift is the exit code of `a2ml check` when the output tree is stale.
const ExitDrift = 2

// exitError carries a non-default exit code. Its message has already been shown.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// ExitCode returns the process exit code for an error returned by a command.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// PrintError writes err as a single "error[Kind]: message" line followed by its
// hints, and logs it at error level. Stack traces are only shown at -vv and above.
func PrintError(w io.Writer, err error) {
	var ee *exitError
	if errors.As(err, &ee) {
		return
	}

	kind := errors.KindOf(err)
	logger.Errorw("Command failed",
		logger.FieldErrorKind, string(kind),
		logger.FieldError, err.Error(),
	)

	label := "error"
	if kind != "" {
		label = fmt.Sprintf("error[%s]", kind)
	}
	fmt.Fprintf(w, "%s %s\n", pterm.Red(label+":"), err.Error())

	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  %s %s\n", pterm.Green("hint:"), hint)
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputStackTraces) {
		fmt.Fprintf(w, "\n%+v\n", err)
	}
}
