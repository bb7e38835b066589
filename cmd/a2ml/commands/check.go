package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/a2ml/driver"
	"github.com/teranos/a2ml/errors"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that an output tree is up to date",
		Long: `Generate into a staging directory and compare the result with the
existing output directory, publishing nothing. Files in the output directory
that a2ml does not generate are ignored.

Exit codes:
  0 - Output is up to date
  1 - Error during generation
  2 - Output is out of date (stale and missing files listed)

Examples:
  a2ml check --input interfaces --message-version 4.0 --output build/aasb
  a2ml check                       # everything from a2ml.toml`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
	addRunFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if s.Output == "" {
		err := errors.NewKind(errors.InvalidOutput, "check needs the output directory to compare with")
		return errors.WithHint(err, "pass --output DIR or set output in a2ml.toml")
	}

	result, res, err := driver.New().Check(cmd.Context(), driverConfig(s), s.Output)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if result.UpToDate {
		fmt.Fprintf(w, "%s %s is up to date (%d files)\n", pterm.Green("✓"), s.Output, len(res.Files))
		return nil
	}

	fmt.Fprintf(w, "%s %s is out of date\n", pterm.Red("✗"), s.Output)
	for _, f := range result.Changed {
		fmt.Fprintf(w, "  %s %s\n", pterm.Yellow("changed:"), f)
	}
	for _, f := range result.Missing {
		fmt.Fprintf(w, "  %s %s\n", pterm.Yellow("missing:"), f)
	}
	return &exitError{
		code: ExitDrift,
		msg:  fmt.Sprintf("%d changed, %d missing", len(result.Changed), len(result.Missing)),
	}
}
