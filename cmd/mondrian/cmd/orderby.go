package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOrderByCmd(g *globalFlags) *cobra.Command {
	var (
		desc     bool
		nulls    string
		nullable bool
	)

	cmd := &cobra.Command{
		Use:   "orderby <expr>",
		Short: "Render an ORDER BY item with explicit NULL placement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var nullsLast bool
			switch nulls {
			case "last":
				nullsLast = true
			case "first":
			default:
				return fmt.Errorf("--nulls must be first or last, got %q", nulls)
			}

			d, err := g.resolveDialect(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.GenerateOrderItem(args[0], nullable, !desc, nullsLast))
			return nil
		},
	}
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().StringVar(&nulls, "nulls", "last", "NULL placement (first|last)")
	cmd.Flags().BoolVar(&nullable, "nullable", true, "Expression may be NULL")
	return cmd
}
