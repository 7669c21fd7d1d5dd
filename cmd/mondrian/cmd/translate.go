package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robustcoffee/mondrian/internal/errors"
)

func newTranslateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "translate <source> <pattern>",
		Short: "Translate a regular expression match into a SQL predicate",
		Long: `Translates an RE2 pattern, optionally led by an inline flag group such
as (?i) or (?c) for case-sensitive, into the dialect's regular expression
predicate over the source expression. \Q...\E spans are matched literally.
Lookaround, backreferences and possessive quantifiers are not accepted.
Exits with an error when the dialect cannot express the pattern.`,
		Example: `  mondrian translate -p ads col '(?i)^foo.*'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := g.resolveDialect(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			pred, ok := d.GenerateRegularExpression(args[0], args[1])
			if !ok {
				return errors.NewUnsupportedFeatureError(d.String(), "regular expression "+args[1])
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), pred)
			return nil
		},
	}
}
