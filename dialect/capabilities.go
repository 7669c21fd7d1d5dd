package dialect

// NullCollation describes where an engine places NULLs in ascending order
// when the query does not say.
type NullCollation int

const (
	NullsSortUnknown NullCollation = iota
	NullsSortLow                   // NULLs first in ASC, last in DESC
	NullsSortHigh                  // NULLs last in ASC, first in DESC
)

func (c NullCollation) String() string {
	switch c {
	case NullsSortLow:
		return "low"
	case NullsSortHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Capabilities describes the SQL features a dialect instance supports.
// Values are fixed per product (plus whatever the driver metadata revealed)
// and never change after the dialect is built.
type Capabilities struct {
	AllowsAs                             bool // "expr AS alias" in select lists
	AllowsFromQuery                      bool // subqueries in FROM
	AllowsJoinOn                         bool // JOIN ... ON
	RequiresAliasForFromQuery            bool
	RequiresGroupByAlias                 bool
	RequiresOrderByAlias                 bool
	RequiresHavingAlias                  bool
	AllowsOrderByAlias                   bool
	AllowsRegularExpressionInWhereClause bool
	SupportsGroupingSets                 bool
	AllowsCountDistinct                  bool
	AllowsCompoundCountDistinct          bool // COUNT(DISTINCT a, b)
	AllowsMultipleCountDistinct          bool
	AllowsSelectNotInGroupBy             bool
	RequiresUnionOrderByOrdinal          bool
	SupportsMultiValueInExpr             bool // (a, b) IN ((1, 2), (3, 4))
	SupportsNullsOrdering                bool // NULLS FIRST / NULLS LAST
	NullCollation                        NullCollation
	MaxColumnNameLength                  int // 0 when unknown
}

// defaultCapabilities are the conservative settings used for engines without
// a dedicated profile.
func defaultCapabilities() Capabilities {
	return Capabilities{
		AllowsAs:                    true,
		AllowsFromQuery:             true,
		AllowsCountDistinct:         true,
		AllowsMultipleCountDistinct: true,
		RequiresUnionOrderByOrdinal: true,
	}
}

// Flag is a named boolean capability, used for tabular listings.
type Flag struct {
	Name  string
	Value bool
}

// Flags returns the boolean capabilities in a stable order.
func (c Capabilities) Flags() []Flag {
	return []Flag{
		{"allowsAs", c.AllowsAs},
		{"allowsFromQuery", c.AllowsFromQuery},
		{"allowsJoinOn", c.AllowsJoinOn},
		{"requiresAliasForFromQuery", c.RequiresAliasForFromQuery},
		{"requiresGroupByAlias", c.RequiresGroupByAlias},
		{"requiresOrderByAlias", c.RequiresOrderByAlias},
		{"requiresHavingAlias", c.RequiresHavingAlias},
		{"allowsOrderByAlias", c.AllowsOrderByAlias},
		{"allowsRegularExpressionInWhereClause", c.AllowsRegularExpressionInWhereClause},
		{"supportsGroupingSets", c.SupportsGroupingSets},
		{"allowsCountDistinct", c.AllowsCountDistinct},
		{"allowsCompoundCountDistinct", c.AllowsCompoundCountDistinct},
		{"allowsMultipleCountDistinct", c.AllowsMultipleCountDistinct},
		{"allowsSelectNotInGroupBy", c.AllowsSelectNotInGroupBy},
		{"requiresUnionOrderByOrdinal", c.RequiresUnionOrderByOrdinal},
		{"supportsMultiValueInExpr", c.SupportsMultiValueInExpr},
		{"supportsNullsOrdering", c.SupportsNullsOrdering},
	}
}
