package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/a2ml/driver"
	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/model"
	"github.com/teranos/a2ml/typegen"
	"github.com/teranos/a2ml/typegen/cpp"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe SYMBOL",
		Short: "Show a message or type and how it resolves",
		Long: `Parse the configured directories and describe one message or type by its
qualified symbol, including the C++ type every value resolves to.

Examples:
  a2ml describe aasb.alexa.speaker.SetVolumeMessage --input interfaces --message-version 4.0
  a2ml describe aasb.alexa.speaker.Channel`,
		Args: cobra.ExactArgs(1),
		RunE: runDescribe,
	}
	addRunFlags(cmd)
	return cmd
}

func runDescribe(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	m, err := driver.New().Model(cmd.Context(), driverConfig(s))
	if err != nil {
		return err
	}
	return describe(cmd.OutOrStdout(), m, args[0])
}

// describe prints the message or type named by symbol.
func describe(w io.Writer, m *model.Model, symbol string) error {
	r := typegen.NewResolver(m, cpp.Mapping())

	for _, iface := range m.Interfaces() {
		if msg, ok := iface.Message(symbol); ok {
			return describeMessage(w, r, msg)
		}
	}
	if t, ok := m.FindType(symbol); ok {
		return describeType(w, r, t)
	}

	if strings.HasSuffix(symbol, "Message") {
		return errors.NewKind(errors.UnknownMessageReference, "unknown message %q", symbol).ForSymbol(symbol)
	}
	return errors.NewKind(errors.UnknownTypeReference, "unknown type %q", symbol).ForSymbol(symbol)
}

func describeMessage(w io.Writer, r *typegen.Resolver, msg *model.Message) error {
	iface := msg.Interface()
	fmt.Fprintf(w, "%s %s\n", pterm.LightMagenta("message"), msg.Symbol())
	fmt.Fprintf(w, "  interface: %s (%s)\n", iface.Key(), iface.SourceFile)
	fmt.Fprintf(w, "  action:    %s, %s, %s\n", msg.Action, msg.Direction, msg.Kind)
	if msg.Description != "" {
		fmt.Fprintf(w, "  desc:      %s\n", msg.Description)
	}

	if err := describeValues(w, r, "payload", msg.Payload); err != nil {
		return err
	}
	if !msg.IsReply() {
		return describeValues(w, r, "reply", msg.Reply)
	}
	return nil
}

func describeType(w io.Writer, r *typegen.Resolver, t *model.Type) error {
	iface := t.Interface()
	fmt.Fprintf(w, "%s %s\n", pterm.LightMagenta(string(t.Kind)), t.Symbol())
	fmt.Fprintf(w, "  interface: %s (%s)\n", iface.Key(), iface.SourceFile)
	if t.Description != "" {
		fmt.Fprintf(w, "  desc:      %s\n", t.Description)
	}

	switch t.Kind {
	case model.KindAlias:
		res, err := r.ResolveAlias(t, iface)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  alias of:  %s\n", t.AliasTarget)
		fmt.Fprintf(w, "  c++:       %s\n", res.Native)
	case model.KindEnum:
		fmt.Fprintln(w, "  members:")
		for _, v := range t.Values {
			wire := v.Name
			if v.Fixed != nil {
				wire = fmt.Sprint(v.Fixed)
			}
			fmt.Fprintf(w, "    %s = %q\n", v.Name, wire)
		}
	default:
		return describeValues(w, r, "fields", t.Values)
	}
	return nil
}

func describeValues(w io.Writer, r *typegen.Resolver, title string, values []*model.Value) error {
	if len(values) == 0 {
		return nil
	}
	fmt.Fprintf(w, "  %s:\n", title)
	for _, v := range values {
		res, err := r.ResolveValue(v)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("    %s %s -> %s", v.Name, v.TypeRef, res.Native)
		if v.Optional() {
			line += fmt.Sprintf(" (default %v)", v.Default)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
