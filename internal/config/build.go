package config

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/robustcoffee/mondrian/dialect"
	"github.com/robustcoffee/mondrian/internal/driver"
	"github.com/robustcoffee/mondrian/internal/logger"
)

// Metadata returns the metadata of an entry built without a probe.
func (dc *DialectConfig) Metadata() dialect.Metadata {
	md := dialect.Metadata{
		ProductVersion:      dc.ProductVersion,
		MaxColumnNameLength: dc.MaxColumnNameLength,
	}
	if dc.Product != "" {
		p, _ := dialect.ParseProduct(dc.Product)
		md.ProductName = p.String()
	}
	if dc.SQLMode != "" {
		driver.ApplySQLMode(&md, dc.SQLMode)
	}
	if dc.IdentifierQuote != "" {
		md.IdentifierQuote = dc.IdentifierQuote
	}
	return md
}

// Options returns the dialect options an entry configures.
func (dc *DialectConfig) Options(log *logger.Logger) []dialect.Option {
	opts := []dialect.Option{
		dialect.WithLogger(log),
		dialect.WithCastInlineStrings(dc.CastInlineStrings),
	}
	if dc.Product != "" {
		p, _ := dialect.ParseProduct(dc.Product)
		opts = append(opts, dialect.WithProduct(p))
	}
	if dc.NullOrdering != "" {
		n, _ := dialect.ParseNullOrdering(dc.NullOrdering)
		opts = append(opts, dialect.WithNullOrdering(n))
	}
	return opts
}

// overlay replaces probed values with the ones set explicitly in the entry.
func (dc *DialectConfig) overlay(md dialect.Metadata) dialect.Metadata {
	if dc.ProductVersion != "" {
		md.ProductVersion = dc.ProductVersion
	}
	if dc.IdentifierQuote != "" {
		md.IdentifierQuote = dc.IdentifierQuote
	}
	if dc.MaxColumnNameLength > 0 {
		md.MaxColumnNameLength = dc.MaxColumnNameLength
	}
	if dc.SQLMode != "" {
		driver.ApplySQLMode(&md, dc.SQLMode)
	}
	return md
}

// BuildDialect creates the named dialect, probing its datasource when the
// entry has a driver. An empty name selects the default entry.
func BuildDialect(ctx context.Context, cfg *Config, name string, log *logger.Logger) (*dialect.Dialect, error) {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	if name == "" {
		name = cfg.Default
	}
	dc, err := cfg.Dialect(name)
	if err != nil {
		return nil, err
	}

	md := dc.Metadata()
	if dc.Driver != "" {
		res := driver.ProbeAll(ctx, []driver.Source{{Name: name, Driver: dc.Driver, DSN: dc.URL}})[0]
		if res.Err != nil {
			return nil, res.Err
		}
		md = dc.overlay(res.Metadata)
	}
	return dialect.New(md, dc.Options(log.With("name", name))...)
}

// Build creates every configured dialect. Entries with a driver are probed
// concurrently, the others are built from their static settings. Failing
// entries are left out of the map and their errors joined.
func Build(ctx context.Context, cfg *Config, log *logger.Logger) (map[string]*dialect.Dialect, error) {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	metadata := make(map[string]dialect.Metadata, len(cfg.Dialects))
	var sources []driver.Source
	for _, name := range cfg.Names() {
		dc := cfg.Dialects[name]
		if dc.Driver == "" {
			metadata[name] = dc.Metadata()
			continue
		}
		sources = append(sources, driver.Source{Name: name, Driver: dc.Driver, DSN: dc.URL})
	}

	var errs []error
	for _, res := range driver.ProbeAll(ctx, sources) {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("dialect %s: %w", res.Source.Name, res.Err))
			continue
		}
		metadata[res.Source.Name] = cfg.Dialects[res.Source.Name].overlay(res.Metadata)
	}

	built := make(map[string]*dialect.Dialect, len(metadata))
	for name, md := range metadata {
		d, err := dialect.New(md, cfg.Dialects[name].Options(log.With("name", name))...)
		if err != nil {
			errs = append(errs, fmt.Errorf("dialect %s: %w", name, err))
			continue
		}
		built[name] = d
	}
	return built, stderrors.Join(errs...)
}

// Apply builds the configured dialects and swaps them into reg. The
// registry keeps its previous content when no dialect could be built.
func Apply(ctx context.Context, cfg *Config, reg *dialect.Registry, log *logger.Logger) error {
	built, err := Build(ctx, cfg, log)
	if len(built) == 0 {
		if err == nil {
			err = fmt.Errorf("no dialect built")
		}
		return err
	}
	reg.Replace(built)
	return err
}
