package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/a2ml/driver"
	"github.com/teranos/a2ml/logger"
	"github.com/teranos/a2ml/model"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	res, err := driver.New().Run(cmd.Context(), driverConfig(s))
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), res, s.Output, verbosity(cmd))
	return nil
}

// printResult reports a successful run, with per-file and timing detail at -v
// and a model dump at -vvv.
func printResult(w io.Writer, res *driver.Result, output string, verbosity int) {
	if logger.ShouldOutput(verbosity, logger.OutputModelDump) && res.Model != nil {
		dumpModel(w, res.Model)
	}

	if logger.ShouldOutput(verbosity, logger.OutputGeneratedFiles) {
		files := res.Published
		if len(files) == 0 {
			files = res.Files
		}
		for _, f := range files {
			fmt.Fprintf(w, "  %s %s\n", pterm.Gray("→"), f)
		}
	}

	if logger.ShouldOutput(verbosity, logger.OutputTiming) {
		for _, state := range []driver.State{driver.Configuring, driver.Parsing, driver.Generating, driver.Publishing} {
			fmt.Fprintf(w, "  %s %s\n", pterm.LightCyan(fmt.Sprintf("%-11s", state)), res.StateTimes[state].Round(time.Microsecond))
		}
	}

	summary := fmt.Sprintf("%d interfaces (%d exported), %d files", res.Stats.Interfaces, res.Stats.Exported, len(res.Files))
	if len(res.Published) > 0 {
		summary += " written to " + output
	} else {
		summary += " validated, nothing published"
	}
	fmt.Fprintf(w, "%s %s in %s\n", pterm.Green("✓"), summary, res.Elapsed.Round(time.Millisecond))
}

// dumpModel prints every interface with its messages and types.
func dumpModel(w io.Writer, m *model.Model) {
	for _, iface := range m.Interfaces() {
		role := "dependency"
		if iface.Exported {
			role = "exported"
		}
		fmt.Fprintf(w, "%s %s (%s, %s)\n", pterm.LightMagenta(iface.Key()), iface.Namespace, role, iface.SourceFile)
		for _, msg := range iface.Messages() {
			fmt.Fprintf(w, "  message %s %s/%s\n", msg.Symbol(), msg.Direction, msg.Kind)
		}
		for _, t := range iface.Types() {
			detail := strings.Join(t.ValueNames(), ", ")
			if t.IsAlias() {
				detail = "= " + t.AliasTarget
			}
			fmt.Fprintf(w, "  %-7s %s %s\n", t.Kind, t.Symbol(), detail)
		}
	}
}
