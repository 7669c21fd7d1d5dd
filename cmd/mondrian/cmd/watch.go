package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/robustcoffee/mondrian/dialect"
	"github.com/robustcoffee/mondrian/internal/config"
	"github.com/robustcoffee/mondrian/internal/logger"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the configured dialects whenever the config file changes",
		Long: `Builds every configured dialect, then rebuilds them each time the
config file is saved. A version that fails to parse leaves the previous
dialects in place. Stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.Locate(g.configFile)
			if err != nil {
				return err
			}
			g.configFile = path

			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := dialect.NewRegistry()
			apply := func(cfg *config.Config) {
				if err := config.Apply(ctx, cfg, reg, logger.GetDefaultLogger()); err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", Warning("!"), err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Success("dialects:"), strings.Join(describe(reg), ", "))
			}

			apply(cfg)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Info("Watching "+path+" (Ctrl+C to stop)"))
			return config.Watch(ctx, path, apply)
		},
	}
}

func describe(reg *dialect.Registry) []string {
	var out []string
	for _, name := range reg.Names() {
		d, _ := reg.Get(name)
		out = append(out, name+"="+Prompt(d.String()))
	}
	return out
}
