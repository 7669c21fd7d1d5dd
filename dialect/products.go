package dialect

import "regexp"

// profile is the strategy table entry for one product. Functions receive the
// metadata so version- or mode-dependent behaviour is decided once, at
// construction.
type profile struct {
	capabilities  func(md Metadata) Capabilities
	quoteFallback func(md Metadata) string
	stringQuoter  func(md Metadata) StringQuoter
	temporal      temporalQuoter
	regex         func(md Metadata) *RegexTranslator
	nullOrdering  NullOrdering
	inlineFrom    string
	booleanAsInt  bool
}

func constQuote(q string) func(Metadata) string {
	return func(Metadata) string { return q }
}

func constStrings(q StringQuoter) func(Metadata) StringQuoter {
	return func(Metadata) StringQuoter { return q }
}

func constRegex(t *RegexTranslator) func(Metadata) *RegexTranslator {
	return func(Metadata) *RegexTranslator { return t }
}

var (
	adsRegex = &RegexTranslator{
		flags:   []flagMapping{{'i', 'i'}, {'c', 'c'}, {'m', 'm'}},
		literal: literalVerbatim,
		emit:    emitRegexpLikeWithFlags,
	}
	oracleRegex = &RegexTranslator{
		flags:   []flagMapping{{'i', 'i'}, {'c', 'c'}, {'s', 'n'}, {'m', 'm'}},
		literal: regexp.QuoteMeta,
		emit:    emitRegexpLike,
	}
	mysqlRegex = &RegexTranslator{
		flags:   []flagMapping{{'i', 'i'}, {'c', 'c'}, {'m', 'm'}, {'s', 'n'}},
		literal: regexp.QuoteMeta,
		emit:    emitRegexpLike,
	}
	mariadbRegex = &RegexTranslator{
		flags:   []flagMapping{{'i', 'i'}, {'c', 'c'}, {'m', 'm'}, {'s', 's'}},
		literal: regexp.QuoteMeta,
		emit:    emitMariaDBRegexp,
	}
	postgresRegex = &RegexTranslator{
		flags:   []flagMapping{{'i', 'i'}, {'c', 'c'}, {'m', 'w'}},
		literal: regexp.QuoteMeta,
		emit:    emitPostgresMatch,
	}
)

var profiles = map[DatabaseProduct]profile{
	ProductADS: {
		capabilities: func(Metadata) Capabilities {
			c := defaultCapabilities()
			c.AllowsAs = false
			c.AllowsFromQuery = false
			c.AllowsJoinOn = true
			c.RequiresGroupByAlias = true
			c.RequiresOrderByAlias = true
			c.RequiresHavingAlias = true
			c.AllowsOrderByAlias = c.RequiresOrderByAlias
			c.AllowsRegularExpressionInWhereClause = true
			c.SupportsGroupingSets = true
			c.NullCollation = NullsSortLow
			return c
		},
		quoteFallback: constQuote("'"),
		stringQuoter:  constStrings(quoteStandardString),
		temporal:      temporalKeyword,
		regex:         constRegex(adsRegex),
		nullOrdering:  NullOrderingEmulate,
		inlineFrom:    " from dual",
	},

	ProductOracle: {
		capabilities: func(Metadata) Capabilities {
			c := defaultCapabilities()
			c.AllowsAs = false
			c.AllowsJoinOn = true
			c.AllowsRegularExpressionInWhereClause = true
			c.SupportsGroupingSets = true
			c.SupportsMultiValueInExpr = true
			c.SupportsNullsOrdering = true
			c.NullCollation = NullsSortHigh
			return c
		},
		quoteFallback: constQuote(`"`),
		stringQuoter:  constStrings(quoteStandardString),
		temporal:      temporalKeyword,
		regex:         constRegex(oracleRegex),
		nullOrdering:  NullOrderingANSI,
		inlineFrom:    " from dual",
		booleanAsInt:  true,
	},

	ProductPostgreSQL: {
		capabilities: func(md Metadata) Capabilities {
			c := defaultCapabilities()
			c.AllowsJoinOn = true
			c.RequiresAliasForFromQuery = true
			c.AllowsOrderByAlias = true
			c.AllowsRegularExpressionInWhereClause = true
			c.SupportsMultiValueInExpr = true
			c.SupportsNullsOrdering = true
			c.NullCollation = NullsSortHigh
			v := parseVersion(md.ProductVersion)
			c.SupportsGroupingSets = !v.known() || v.atLeast(9, 5, 0)
			return c
		},
		quoteFallback: constQuote(`"`),
		stringQuoter:  constStrings(quotePostgresString),
		temporal:      temporalKeyword,
		regex:         constRegex(postgresRegex),
		nullOrdering:  NullOrderingANSI,
	},

	ProductMySQL: {
		capabilities: mysqlCapabilities,
		quoteFallback: func(md Metadata) string {
			if md.ANSIQuotes {
				return `"`
			}
			return "`"
		},
		stringQuoter: mysqlStrings,
		temporal:     temporalKeyword,
		regex: func(md Metadata) *RegexTranslator {
			v := parseVersion(md.ProductVersion)
			if v.known() && !v.atLeast(8, 0, 0) {
				return nil
			}
			return mysqlRegex
		},
		nullOrdering: NullOrderingEmulate,
	},

	ProductMariaDB: {
		capabilities: mysqlCapabilities,
		quoteFallback: func(md Metadata) string {
			if md.ANSIQuotes {
				return `"`
			}
			return "`"
		},
		stringQuoter: mysqlStrings,
		temporal:     temporalKeyword,
		regex:        constRegex(mariadbRegex),
		nullOrdering: NullOrderingEmulate,
	},

	ProductSQLite: {
		capabilities: func(md Metadata) Capabilities {
			c := defaultCapabilities()
			c.AllowsJoinOn = true
			c.AllowsOrderByAlias = true
			c.AllowsCompoundCountDistinct = false
			c.AllowsMultipleCountDistinct = false
			c.NullCollation = NullsSortLow
			v := parseVersion(md.ProductVersion)
			c.SupportsNullsOrdering = v.atLeast(3, 30, 0)
			return c
		},
		quoteFallback: constQuote(`"`),
		stringQuoter:  constStrings(quoteStandardString),
		temporal:      temporalBareString,
		regex:         constRegex(nil),
		nullOrdering:  NullOrderingEmulate,
		booleanAsInt:  true,
	},

	ProductSQLServer: {
		capabilities: func(Metadata) Capabilities {
			c := defaultCapabilities()
			c.AllowsJoinOn = true
			c.RequiresAliasForFromQuery = true
			c.AllowsOrderByAlias = true
			c.SupportsGroupingSets = true
			c.NullCollation = NullsSortLow
			return c
		},
		quoteFallback: constQuote("[]"),
		stringQuoter:  constStrings(quoteStandardString),
		temporal:      temporalConvert,
		regex:         constRegex(nil),
		nullOrdering:  NullOrderingEmulate,
		booleanAsInt:  true,
	},

	ProductUnknown: {
		capabilities:  func(Metadata) Capabilities { return defaultCapabilities() },
		quoteFallback: constQuote(`"`),
		stringQuoter:  constStrings(quoteStandardString),
		temporal:      temporalKeyword,
		regex:         constRegex(nil),
		nullOrdering:  NullOrderingEmulate,
	},
}

func mysqlCapabilities(md Metadata) Capabilities {
	c := defaultCapabilities()
	c.AllowsJoinOn = true
	c.RequiresAliasForFromQuery = true
	c.AllowsOrderByAlias = true
	c.AllowsCompoundCountDistinct = true
	c.AllowsSelectNotInGroupBy = !md.OnlyFullGroupBy
	c.SupportsMultiValueInExpr = true
	c.NullCollation = NullsSortLow
	c.AllowsRegularExpressionInWhereClause = true
	return c
}

func mysqlStrings(md Metadata) StringQuoter {
	if md.NoBackslashEscapes {
		return quoteStandardString
	}
	return quoteBackslashString
}

func profileFor(p DatabaseProduct) profile {
	if pr, ok := profiles[p]; ok {
		return pr
	}
	return profiles[ProductUnknown]
}
