// Package dialect describes how SQL differs between database engines and
// generates engine-specific fragments: quoted identifiers and literals,
// inline virtual tables, ORDER BY items with NULL placement, and regular
// expression predicates translated from a portable syntax.
//
// A Dialect is built once from driver metadata and its behaviour never changes
// afterwards, so a single value can be shared by any number of goroutines.
package dialect

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/robustcoffee/mondrian/internal/cache"
	"github.com/robustcoffee/mondrian/internal/errors"
	"github.com/robustcoffee/mondrian/internal/limits"
	"github.com/robustcoffee/mondrian/internal/logger"
)

// Errors callers are expected to test for with errors.Is.
var (
	ErrMalformedLiteral   = errors.ErrMalformedLiteral
	ErrInvalidInput       = errors.ErrInvalidInput
	ErrUnsupportedFeature = errors.ErrUnsupportedFeature
)

// Metadata is what a driver reports about the connected engine.
// Zero values mean "not reported".
type Metadata struct {
	ProductName         string
	ProductVersion      string
	IdentifierQuote     string
	MaxColumnNameLength int

	// MySQL sql_mode switches.
	ANSIQuotes         bool
	NoBackslashEscapes bool
	OnlyFullGroupBy    bool
}

// Dialect generates SQL for one engine.
type Dialect struct {
	id      uuid.UUID
	product DatabaseProduct
	version string

	caps              Capabilities
	quote             quoteStyle
	quoteString       StringQuoter
	temporal          temporalQuoter
	regex             *RegexTranslator
	nullOrdering      NullOrdering
	inlineFrom        string
	booleanAsInt      bool
	castInlineStrings bool

	translations *cache.TranslationCache
	log          *logger.Logger
}

type options struct {
	log               *logger.Logger
	product           *DatabaseProduct
	nullOrdering      *NullOrdering
	castInlineStrings bool
}

// Option customises New.
type Option func(*options)

// WithLogger sets the logger used during construction and translation.
// Defaults to the package default logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithProduct skips detection and uses p.
func WithProduct(p DatabaseProduct) Option {
	return func(o *options) { o.product = &p }
}

// WithNullOrdering overrides the product's null ordering strategy.
func WithNullOrdering(n NullOrdering) Option {
	return func(o *options) { o.nullOrdering = &n }
}

// WithCastInlineStrings makes GenerateInline wrap string values in
// CAST(... AS VARCHAR(n)).
func WithCastInlineStrings(enabled bool) Option {
	return func(o *options) { o.castInlineStrings = enabled }
}

// New builds the dialect for the engine md describes. Engines that are not
// recognised get generic behaviour.
func New(md Metadata, opts ...Option) (*Dialect, error) {
	o := options{log: logger.GetDefaultLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	if md.MaxColumnNameLength < 0 {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("negative max column name length %d", md.MaxColumnNameLength))
	}

	product := DetectProduct(md.ProductName, md.ProductVersion)
	if o.product != nil {
		product = *o.product
	}
	pr := profileFor(product)

	d := &Dialect{
		id:                uuid.New(),
		product:           product,
		version:           md.ProductVersion,
		caps:              pr.capabilities(md),
		quoteString:       pr.stringQuoter(md),
		temporal:          pr.temporal,
		regex:             pr.regex(md),
		nullOrdering:      pr.nullOrdering,
		inlineFrom:        pr.inlineFrom,
		booleanAsInt:      pr.booleanAsInt,
		castInlineStrings: o.castInlineStrings,
		translations:      cache.NewTranslationCache(limits.MaxCachedTranslations),
	}
	d.log = o.log.With("dialect", product.String(), "dialect_id", d.id.String())

	d.caps.MaxColumnNameLength = md.MaxColumnNameLength
	if d.regex == nil {
		d.caps.AllowsRegularExpressionInWhereClause = false
	}

	if d.nullOrdering == NullOrderingEmulate && d.caps.SupportsNullsOrdering {
		d.nullOrdering = NullOrderingANSI
	}
	if o.nullOrdering != nil {
		d.nullOrdering = *o.nullOrdering
	}

	resolver := QuoteResolver{Fallback: pr.quoteFallback(md)}
	token := resolver.Resolve(md.IdentifierQuote)
	if strings.TrimSpace(md.IdentifierQuote) == "" {
		d.log.Warn("driver reported no identifier quote, using fallback", "quote", token)
	}
	d.quote = newQuoteStyle(token)

	d.log.Debug("dialect built",
		"product_name", md.ProductName,
		"version", md.ProductVersion,
		"quote", d.quote.String(),
		"null_ordering", d.nullOrdering.String())
	return d, nil
}

// ID identifies this instance in logs.
func (d *Dialect) ID() uuid.UUID { return d.id }

func (d *Dialect) Product() DatabaseProduct { return d.product }

func (d *Dialect) ProductVersion() string { return d.version }

// IdentifierQuote returns the resolved quote token, never empty.
func (d *Dialect) IdentifierQuote() string { return d.quote.String() }

func (d *Dialect) NullOrdering() NullOrdering { return d.nullOrdering }

// Capabilities returns a copy of the capability flags.
func (d *Dialect) Capabilities() Capabilities { return d.caps }

func (d *Dialect) AllowsAs() bool                  { return d.caps.AllowsAs }
func (d *Dialect) AllowsFromQuery() bool           { return d.caps.AllowsFromQuery }
func (d *Dialect) AllowsJoinOn() bool              { return d.caps.AllowsJoinOn }
func (d *Dialect) RequiresAliasForFromQuery() bool { return d.caps.RequiresAliasForFromQuery }
func (d *Dialect) RequiresGroupByAlias() bool      { return d.caps.RequiresGroupByAlias }
func (d *Dialect) RequiresOrderByAlias() bool      { return d.caps.RequiresOrderByAlias }
func (d *Dialect) RequiresHavingAlias() bool       { return d.caps.RequiresHavingAlias }
func (d *Dialect) AllowsOrderByAlias() bool        { return d.caps.AllowsOrderByAlias }
func (d *Dialect) SupportsGroupingSets() bool      { return d.caps.SupportsGroupingSets }
func (d *Dialect) AllowsCountDistinct() bool       { return d.caps.AllowsCountDistinct }
func (d *Dialect) AllowsSelectNotInGroupBy() bool  { return d.caps.AllowsSelectNotInGroupBy }

func (d *Dialect) AllowsRegularExpressionInWhereClause() bool {
	return d.caps.AllowsRegularExpressionInWhereClause
}

func (d *Dialect) AllowsCompoundCountDistinct() bool {
	return d.caps.AllowsCompoundCountDistinct
}

func (d *Dialect) AllowsMultipleCountDistinct() bool {
	return d.caps.AllowsMultipleCountDistinct
}

func (d *Dialect) RequiresUnionOrderByOrdinal() bool {
	return d.caps.RequiresUnionOrderByOrdinal
}

func (d *Dialect) SupportsMultiValueInExpr() bool { return d.caps.SupportsMultiValueInExpr }

// QuoteIdentifier quotes a single identifier, or a qualifier.name pair.
func (d *Dialect) QuoteIdentifier(name string) string {
	var buf strings.Builder
	d.quote.writeIdentifier(&buf, name)
	return buf.String()
}

// QuoteIdentifierTo appends the non-empty names, quoted and joined with dots.
func (d *Dialect) QuoteIdentifierTo(buf *strings.Builder, names ...string) {
	n := 0
	for _, name := range names {
		if name == "" {
			continue
		}
		if n > 0 {
			buf.WriteByte('.')
		}
		d.quote.writeIdentifier(buf, name)
		n++
	}
}

// GenerateRegularExpression returns a predicate matching source against a
// pattern in the portable syntax. It returns false when the engine has no
// regex support or the pattern is invalid.
func (d *Dialect) GenerateRegularExpression(source, pattern string) (string, bool) {
	if !d.caps.AllowsRegularExpressionInWhereClause {
		return "", false
	}
	if len(pattern) > limits.MaxPatternLength {
		d.log.Debug("pattern rejected", "error", "pattern too long", "length", len(pattern))
		return "", false
	}

	key := source + "\x00" + pattern
	if sql, ok, found := d.translations.Get(key); found {
		return sql, ok
	}
	sql, ok := d.regex.Translate(d.quoteString, source, pattern)
	if !ok {
		d.log.Debug("pattern rejected", "error", errors.ErrInvalidPattern.Message, "pattern", pattern)
	}
	d.translations.Put(key, sql, ok)
	return sql, ok
}

// CaseWhenElse renders a single-branch CASE expression.
func (d *Dialect) CaseWhenElse(cond, then, els string) string {
	return "CASE WHEN " + cond + " THEN " + then + " ELSE " + els + " END"
}

func (d *Dialect) ToUpper(expr string) string {
	return "UPPER(" + expr + ")"
}

func (d *Dialect) String() string {
	if d.version == "" {
		return d.product.String()
	}
	return d.product.String() + " " + d.version
}
