package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/a2ml/driver"
	"github.com/teranos/a2ml/plugin"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List parser and generator backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := driver.New()

			data := pterm.TableData{{"Kind", "Name", "Version", "Message version", "Description"}}
			for _, p := range d.ParserRegistry().All() {
				md := p.Metadata()
				desc := md.Description + " (." + strings.Join(p.Extensions(), ", .") + ")"
				data = append(data, backendRow("parser", md, desc))
			}
			for _, g := range d.GeneratorRegistry().All() {
				md := g.Metadata()
				data = append(data, backendRow("generator", md, md.Description))
			}

			return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
		},
	}
}

func backendRow(kind string, md plugin.Metadata, desc string) []string {
	constraint := md.MessageVersion
	if constraint == "" {
		constraint = "any"
	}
	return []string{kind, md.Name, md.Version, constraint, desc}
}
