package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robustcoffee/mondrian/dialect"
)

func newQuoteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "quote <name>...",
		Short: "Quote an identifier",
		Long: `Quotes the given name parts and joins them with dots.
A single argument containing one dot is split into qualifier and name.`,
		Example: `  mondrian quote -p ads sales fact
  mondrian quote -p sqlserver dbo.orders`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := g.resolveDialect(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			var out string
			if len(args) == 1 {
				out = d.QuoteIdentifier(args[0])
			} else {
				var buf strings.Builder
				d.QuoteIdentifierTo(&buf, args...)
				out = buf.String()
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newLiteralCmd(g *globalFlags) *cobra.Command {
	var null bool

	cmd := &cobra.Command{
		Use:   "literal <type> [value]",
		Short: "Render a typed SQL literal",
		Long: `Renders value as a literal of the given type: String, Numeric, Integer,
Boolean, Date, Time or Timestamp. With --null the value is omitted and
NULL is written.`,
		Example: `  mondrian literal -p ads Date "2024-03-01 10:15:00"
  mondrian literal -p mysql String "it's"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := dialect.ParseDatatype(args[0])
			if err != nil {
				return err
			}

			var value *string
			switch {
			case null:
			case len(args) == 2:
				value = &args[1]
			default:
				return fmt.Errorf("a value is required unless --null is set")
			}

			d, err := g.resolveDialect(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			var buf strings.Builder
			if err := d.Quote(&buf, value, dt); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), buf.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&null, "null", false, "Render NULL")
	return cmd
}
