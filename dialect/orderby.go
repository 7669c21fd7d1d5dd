package dialect

import (
	"fmt"
	"strings"

	"github.com/robustcoffee/mondrian/internal/errors"
)

// NullOrdering selects how ORDER BY items that must place NULLs are written.
type NullOrdering int

const (
	// NullOrderingEmulate writes a plain direction when the engine already
	// puts NULLs where requested, and a CASE sort key otherwise.
	NullOrderingEmulate NullOrdering = iota
	// NullOrderingANSI writes NULLS FIRST / NULLS LAST.
	NullOrderingANSI
	// NullOrderingPlain ignores the requested placement.
	NullOrderingPlain
)

func (n NullOrdering) String() string {
	switch n {
	case NullOrderingANSI:
		return "ansi"
	case NullOrderingPlain:
		return "plain"
	default:
		return "emulate"
	}
}

func ParseNullOrdering(name string) (NullOrdering, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "emulate":
		return NullOrderingEmulate, nil
	case "ansi":
		return NullOrderingANSI, nil
	case "plain":
		return NullOrderingPlain, nil
	}
	return NullOrderingEmulate, errors.NewInvalidInputError(fmt.Sprintf("unknown null ordering %q", name))
}

func direction(ascending bool) string {
	if ascending {
		return " ASC"
	}
	return " DESC"
}

// GenerateOrderByNulls renders expr as an ORDER BY item with NULLs placed
// first or last.
func (d *Dialect) GenerateOrderByNulls(expr string, ascending, nullsLast bool) string {
	switch d.nullOrdering {
	case NullOrderingANSI:
		if nullsLast {
			return expr + direction(ascending) + " NULLS LAST"
		}
		return expr + direction(ascending) + " NULLS FIRST"
	case NullOrderingPlain:
		return expr + direction(ascending)
	}

	if d.caps.NullCollation != NullsSortUnknown {
		nullsFirstByDefault := (d.caps.NullCollation == NullsSortLow) == ascending
		if nullsLast != nullsFirstByDefault {
			return expr + direction(ascending)
		}
	}

	var buf strings.Builder
	buf.WriteString("CASE WHEN ")
	buf.WriteString(expr)
	if nullsLast {
		buf.WriteString(" IS NULL THEN 1 ELSE 0 END, ")
	} else {
		buf.WriteString(" IS NULL THEN 0 ELSE 1 END, ")
	}
	buf.WriteString(expr)
	buf.WriteString(direction(ascending))
	return buf.String()
}

// GenerateOrderItem renders an ORDER BY item. Only nullable expressions pay
// for null placement.
func (d *Dialect) GenerateOrderItem(expr string, nullable, ascending, nullsLast bool) string {
	if !nullable {
		return expr + direction(ascending)
	}
	return d.GenerateOrderByNulls(expr, ascending, nullsLast)
}
