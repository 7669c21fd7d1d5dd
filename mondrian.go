// Package mondrian describes how SQL must be written for a given database
// engine and generates the engine specific fragments a query planner needs.
//
// The dialect package holds the capability model and the generators:
//
//	d, err := dialect.New(dialect.Metadata{
//	    ProductName:     "ADS",
//	    IdentifierQuote: `"`,
//	})
//	if err != nil {
//	    return err
//	}
//
//	d.QuoteIdentifier("sales.fact")                  // "sales"."fact"
//	d.GenerateRegularExpression("name", "(?i)^foo.*") // REGEXP_LIKE(name, '^foo.*', 'i'), true
//	d.GenerateOrderByNulls("amount", true, true)      // CASE WHEN amount IS NULL THEN 1 ELSE 0 END, amount ASC
//
// Metadata can be probed from a live connection (internal/driver) or taken
// from a mondrian.toml file (internal/config). The mondrian command exposes
// both from the shell.
package mondrian

// Version is the release of the module and of the mondrian command.
const Version = "0.3.0"
