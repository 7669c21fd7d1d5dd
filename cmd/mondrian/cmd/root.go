package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/robustcoffee/mondrian"
	"github.com/robustcoffee/mondrian/dialect"
	"github.com/robustcoffee/mondrian/internal/config"
	"github.com/robustcoffee/mondrian/internal/logger"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configFile     string
	dialectName    string
	product        string
	productVersion string
	quote          string
	logLevels      []string
	logFile        string
}

// NewRootCmd creates the mondrian command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mondrian",
		Short: "SQL dialect capabilities and translation",
		Long: `mondrian reports what a database engine's SQL dialect supports and
generates the engine specific fragments an OLAP query planner needs:
quoted identifiers, typed literals, regular expression predicates,
NULL ordering and inline tables.

The dialect comes from --product, or from a [dialects.<name>] table in
mondrian.toml, probed over a live connection when it names a driver.`,
		Version: mondrian.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindEnv(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			if g.logFile != "" {
				l, err := logger.FileLogger(g.logFile, g.levels())
				if err != nil {
					return err
				}
				logger.SetDefaultLogger(l)
			} else if cmd.Flags().Changed("log") {
				logger.SetDefaultLogger(logger.NewLogger(g.logLevels, cmd.ErrOrStderr()))
			} else {
				logger.SetLogWriter(cmd.ErrOrStderr())
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&g.configFile, "config", "c", "", "config file (default: nearest "+config.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVarP(&g.dialectName, "dialect", "d", "", "Configured dialect to use (default: the config's default)")
	rootCmd.PersistentFlags().StringVarP(&g.product, "product", "p", "", "Build a dialect for this product without a config file")
	rootCmd.PersistentFlags().StringVar(&g.productVersion, "product-version", "", "Product version used with --product")
	rootCmd.PersistentFlags().StringVar(&g.quote, "quote", "", "Identifier quote used with --product")
	rootCmd.PersistentFlags().StringSliceVar(&g.logLevels, "log", nil, "Log levels (debug,info,warn,error)")
	rootCmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "Append logs to this file instead of stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("product", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, p := range dialect.Products() {
			names = append(names, p.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newCapabilitiesCmd(g))
	rootCmd.AddCommand(newQuoteCmd(g))
	rootCmd.AddCommand(newLiteralCmd(g))
	rootCmd.AddCommand(newTranslateCmd(g))
	rootCmd.AddCommand(newOrderByCmd(g))
	rootCmd.AddCommand(newInlineCmd(g))
	rootCmd.AddCommand(newProbeCmd(g))
	rootCmd.AddCommand(newWatchCmd(g))

	return rootCmd
}

// bindEnv sets every unset flag from MONDRIAN_<FLAG>, dashes written as
// underscores: MONDRIAN_DIALECT, MONDRIAN_PRODUCT_VERSION, ...
func bindEnv(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}
		name := "MONDRIAN_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if v, ok := os.LookupEnv(name); ok {
			if setErr := flags.Set(f.Name, v); setErr != nil {
				err = fmt.Errorf("%s: %w", name, setErr)
			}
		}
	})
	return err
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", Warning("Error:"), err)
		return err
	}
	return nil
}

// loadConfig loads the configuration and applies its log levels unless
// --log or --log-file was given.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(g.configFile)
	if err != nil {
		return nil, err
	}
	if g.logFile == "" && !cmd.Flags().Changed("log") {
		logger.SetDefaultLogger(logger.NewLogger(cfg.Log, cmd.ErrOrStderr()))
	}
	return cfg, nil
}

func (g *globalFlags) levels() []string {
	if len(g.logLevels) == 0 {
		return []string{"info", "warn", "error"}
	}
	return g.logLevels
}

// resolveDialect builds the dialect selected by --product or --dialect.
func (g *globalFlags) resolveDialect(ctx context.Context, cmd *cobra.Command) (*dialect.Dialect, error) {
	if g.product != "" {
		p, err := dialect.ParseProduct(g.product)
		if err != nil {
			return nil, err
		}
		return dialect.New(dialect.Metadata{
			ProductName:     p.String(),
			ProductVersion:  g.productVersion,
			IdentifierQuote: g.quote,
		}, dialect.WithProduct(p))
	}

	cfg, err := g.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return config.BuildDialect(ctx, cfg, g.dialectName, logger.GetDefaultLogger())
}
