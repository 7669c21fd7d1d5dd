package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/robustcoffee/mondrian/dialect"
	"github.com/robustcoffee/mondrian/internal/driver"
	"github.com/robustcoffee/mondrian/internal/errors"
	"github.com/robustcoffee/mondrian/internal/logger"
)

func newProbeCmd(g *globalFlags) *cobra.Command {
	var (
		driverName string
		url        string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Read dialect metadata from live datasources",
		Long: `Connects to datasources and reports the metadata their dialects are
built from. With --driver and --url a single datasource is probed,
otherwise the configured entries that name a driver are: the one chosen
by --dialect (or the default), or every one of them with --all.`,
		Example: `  mondrian probe --driver pgx --url "$DATABASE_URL"
  mondrian probe --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sources []driver.Source
			if driverName != "" || url != "" {
				if driverName == "" || url == "" {
					return fmt.Errorf("--driver and --url must be given together")
				}
				sources = append(sources, driver.Source{Name: driverName, Driver: driverName, DSN: url})
			} else {
				cfg, err := g.loadConfig(cmd)
				if err != nil {
					return err
				}
				names := cfg.Names()
				if !all {
					name := g.dialectName
					if name == "" {
						name = cfg.Default
					}
					dc, err := cfg.Dialect(name)
					if err != nil {
						return err
					}
					if dc.Driver == "" {
						return fmt.Errorf("dialect %q has no driver to probe", name)
					}
					names = []string{name}
				}
				for _, name := range names {
					dc := cfg.Dialects[name]
					if dc.Driver == "" {
						continue
					}
					sources = append(sources, driver.Source{Name: name, Driver: dc.Driver, DSN: dc.URL})
				}
			}

			results := driver.ProbeAll(cmd.Context(), sources)
			renderProbeResults(cmd, results)

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d datasources failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&driverName, "driver", "", "database/sql driver name (pgx, postgres, mysql, sqlite3, sqlite, sqlserver)")
	cmd.Flags().StringVar(&url, "url", "", "Datasource URL or DSN")
	cmd.Flags().BoolVar(&all, "all", false, "Probe every configured dialect with a driver")
	return cmd
}

func renderProbeResults(cmd *cobra.Command, results []driver.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Target", "Product", "Version", "Quote", "Max Name", "Status"})

	for _, res := range results {
		target := driver.RedactDSN(res.Source.Driver, res.Source.DSN)
		if res.Err != nil {
			logger.Warn("probe failed", "name", res.Source.Name, "error", res.Err)
			t.AppendRow(table.Row{res.Source.Name, target, "", "", "", "", Warning(errors.SanitizeError(res.Err).Error())})
			continue
		}
		md := res.Metadata
		product := dialect.DetectProduct(md.ProductName, md.ProductVersion)
		t.AppendRow(table.Row{
			res.Source.Name,
			target,
			product.String(),
			md.ProductVersion,
			md.IdentifierQuote,
			md.MaxColumnNameLength,
			Success("ok"),
		})
	}
	t.Render()
}
