package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newInlineCmd(g *globalFlags) *cobra.Command {
	var (
		columns   []string
		types     []string
		nullToken string
		separator string
	)

	cmd := &cobra.Command{
		Use:   "inline <row>...",
		Short: "Render literal rows as a SELECT ... UNION ALL query",
		Long: `Each argument is one row, its values separated by --sep. A value equal
to --null-token is rendered as NULL.`,
		Example: `  mondrian inline -p oracle --columns id,label --types Integer,String '1,a' '2,\N'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]*string, len(args))
			for i, arg := range args {
				for _, v := range strings.Split(arg, separator) {
					if v == nullToken {
						rows[i] = append(rows[i], nil)
						continue
					}
					rows[i] = append(rows[i], &v)
				}
			}

			d, err := g.resolveDialect(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			sql, err := d.GenerateInline(columns, types, rows)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Column names")
	cmd.Flags().StringSliceVar(&types, "types", nil, "Column datatypes (String, Numeric, Integer, Boolean, Date, Time, Timestamp)")
	cmd.Flags().StringVar(&nullToken, "null-token", `\N`, "Value rendered as NULL")
	cmd.Flags().StringVar(&separator, "sep", ",", "Value separator within a row")
	_ = cmd.MarkFlagRequired("columns")
	_ = cmd.MarkFlagRequired("types")
	return cmd
}
