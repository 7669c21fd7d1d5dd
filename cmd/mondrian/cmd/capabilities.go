package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/robustcoffee/mondrian/dialect"
)

func newCapabilitiesCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "capabilities",
		Aliases: []string{"caps"},
		Short:   "Show what the dialect supports",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := g.resolveDialect(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return renderCapabilitiesJSON(cmd, d)
			case "table", "":
				renderCapabilitiesTable(cmd, d)
				return nil
			}
			return fmt.Errorf("unknown format %q (use table or json)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format (table|json)")
	return cmd
}

func renderCapabilitiesTable(cmd *cobra.Command, d *dialect.Dialect) {
	caps := d.Capabilities()

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.SetTitle(d.String())

	t.AppendHeader(table.Row{"Capability", "Value"})
	t.AppendRow(table.Row{"product", d.Product().String()})
	t.AppendRow(table.Row{"productVersion", d.ProductVersion()})
	t.AppendRow(table.Row{"identifierQuote", d.IdentifierQuote()})
	t.AppendRow(table.Row{"nullCollation", caps.NullCollation.String()})
	t.AppendRow(table.Row{"nullOrdering", d.NullOrdering().String()})
	t.AppendRow(table.Row{"maxColumnNameLength", caps.MaxColumnNameLength})
	t.AppendSeparator()
	for _, f := range caps.Flags() {
		t.AppendRow(table.Row{f.Name, flagValue(f.Value)})
	}
	t.Render()
}

func renderCapabilitiesJSON(cmd *cobra.Command, d *dialect.Dialect) error {
	caps := d.Capabilities()

	out := map[string]any{
		"product":             d.Product().String(),
		"productVersion":      d.ProductVersion(),
		"identifierQuote":     d.IdentifierQuote(),
		"nullCollation":       caps.NullCollation.String(),
		"nullOrdering":        d.NullOrdering().String(),
		"maxColumnNameLength": caps.MaxColumnNameLength,
	}
	for _, f := range caps.Flags() {
		out[f.Name] = f.Value
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
