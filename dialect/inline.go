package dialect

import (
	"fmt"
	"strings"

	"github.com/robustcoffee/mondrian/internal/errors"
	"github.com/robustcoffee/mondrian/internal/limits"
)

// GenerateInline renders rows as a virtual table:
//
//	select 1 as "a", 'x' as "b" from dual union all select ...
//
// columnTypes holds datatype names (String, Numeric, ...). A nil cell is NULL.
func (d *Dialect) GenerateInline(columnNames, columnTypes []string, rows [][]*string) (string, error) {
	if len(columnNames) == 0 {
		return "", errors.NewInvalidInputError("inline table needs at least one column")
	}
	if len(columnNames) != len(columnTypes) {
		return "", errors.NewInvalidInputError(fmt.Sprintf("%d column names but %d column types", len(columnNames), len(columnTypes)))
	}
	if len(rows) == 0 {
		return "", errors.NewInvalidInputError("inline table needs at least one row")
	}
	if len(columnNames) > limits.MaxInlineColumns || len(rows) > limits.MaxInlineRows {
		return "", errors.NewInvalidInputError(fmt.Sprintf("inline table of %d rows by %d columns exceeds %d by %d",
			len(rows), len(columnNames), limits.MaxInlineRows, limits.MaxInlineColumns))
	}

	types := make([]Datatype, len(columnTypes))
	for i, name := range columnTypes {
		dt, err := ParseDatatype(name)
		if err != nil {
			return "", err
		}
		types[i] = dt
	}

	var maxLen []int
	if d.castInlineStrings {
		maxLen = make([]int, len(columnNames))
		for _, row := range rows {
			for i, v := range row {
				if i < len(maxLen) && v != nil && len(*v) > maxLen[i] {
					maxLen[i] = len(*v)
				}
			}
		}
	}

	var buf strings.Builder
	for r, row := range rows {
		if len(row) != len(columnNames) {
			return "", errors.NewInvalidInputError(fmt.Sprintf("row %d has %d values, want %d", r, len(row), len(columnNames)))
		}
		if r > 0 {
			buf.WriteString(" union all ")
		}
		buf.WriteString("select ")
		for i, v := range row {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := d.writeInlineValue(&buf, v, types[i], maxLen, i); err != nil {
				return "", err
			}
			if d.caps.AllowsAs {
				buf.WriteString(" as ")
			} else {
				buf.WriteByte(' ')
			}
			d.quote.writeIdentifier(&buf, columnNames[i])
		}
		buf.WriteString(d.inlineFrom)
	}
	return buf.String(), nil
}

func (d *Dialect) writeInlineValue(buf *strings.Builder, v *string, dt Datatype, maxLen []int, col int) error {
	if maxLen == nil || dt != DatatypeString || v == nil {
		return d.Quote(buf, v, dt)
	}
	buf.WriteString("CAST(")
	d.QuoteStringLiteral(buf, *v)
	fmt.Fprintf(buf, " AS VARCHAR(%d))", max(maxLen[col], 1))
	return nil
}
