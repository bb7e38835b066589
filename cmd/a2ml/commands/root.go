// Package commands implements the a2ml command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
)

// NewRootCmd builds the a2ml command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "a2ml",
		Short: "a2ml - interface definition compiler",
		Long: `a2ml compiles interface definition documents into C++ message bindings
or Markdown documentation.

Definition documents from --input directories are generated; documents from
--dependencies directories are parsed only so their types can be referenced.
Generation happens in a staging directory that is copied to --output only
after every step succeeded.

Settings are read from a2ml.toml (searched upward from the working directory),
A2ML_* environment variables and flags, flags taking precedence.

Examples:
  a2ml --input interfaces --message-version 4.0 --output build/aasb
  a2ml --generator markdown --input interfaces --message-version 4.0 -o docs
  a2ml --input interfaces --dependencies git::https://example.com/common.git//defs \
       --message-version 4.0 --no-output
  a2ml check --output build/aasb      # fail if build/aasb is stale
  a2ml watch -o build/aasb            # rebuild on change`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			jsonLogs, _ := cmd.Flags().GetBool("json-logs")
			if err := logger.Initialize(verbosity, jsonLogs); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			logger.Debugw("logger initialized", "verbosity", logger.LevelName(verbosity), "json", jsonLogs)
			return nil
		},
		RunE: runGenerate,
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	root.PersistentFlags().String("config", "", "Path to a2ml.toml (default: searched upward from the working directory)")
	addRunFlags(root)

	root.AddCommand(
		newCheckCmd(),
		newWatchCmd(),
		newDescribeCmd(),
		newInitCmd(),
		newBackendsCmd(),
		newVersionCmd(),
	)
	return root
}

func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}
