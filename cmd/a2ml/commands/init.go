package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/a2ml/config"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter a2ml.toml",
		Long: `Write a2ml.toml in the working directory (or at --config) from the defaults
and any run flags given. An existing file is kept unless --force is set, in
which case it is copied to a2ml.toml.back first.

Examples:
  a2ml init --input interfaces --message-version 4.0 --output build/aasb`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	addRunFlags(cmd)
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.FileName
	}
	force, _ := cmd.Flags().GetBool("force")

	s := config.Defaults()
	f := cmd.Flags()
	if f.Changed("parser") {
		s.Parser, _ = f.GetString("parser")
	}
	if f.Changed("generator") {
		s.Generator, _ = f.GetString("generator")
	}
	if f.Changed("input") {
		s.Inputs, _ = f.GetStringSlice("input")
	}
	if f.Changed("dependencies") {
		s.Dependencies, _ = f.GetStringSlice("dependencies")
	}
	if f.Changed("message-version") {
		s.MessageVersion, _ = f.GetString("message-version")
	}
	if f.Changed("output") {
		s.Output, _ = f.GetString("output")
	}
	if f.Changed("no-output") {
		s.NoOutput, _ = f.GetBool("no-output")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	if err := config.Save(path, s, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", pterm.Green("✓"), path)
	return nil
}
