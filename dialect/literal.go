package dialect

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/robustcoffee/mondrian/internal/errors"
)

// Datatype is the logical type of a literal value.
type Datatype int

const (
	DatatypeString Datatype = iota
	DatatypeNumeric
	DatatypeInteger
	DatatypeBoolean
	DatatypeDate
	DatatypeTime
	DatatypeTimestamp
)

var datatypeNames = []string{"String", "Numeric", "Integer", "Boolean", "Date", "Time", "Timestamp"}

func (t Datatype) String() string {
	if int(t) >= 0 && int(t) < len(datatypeNames) {
		return datatypeNames[t]
	}
	return fmt.Sprintf("Datatype(%d)", int(t))
}

// ParseDatatype maps a datatype name, case-insensitively, to a Datatype.
func ParseDatatype(name string) (Datatype, error) {
	for i, n := range datatypeNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Datatype(i), nil
		}
	}
	return DatatypeString, errors.NewInvalidInputError(fmt.Sprintf("unknown datatype %q", name))
}

// StringQuoter appends value to buf as a quoted SQL string literal.
type StringQuoter func(buf *strings.Builder, value string)

func quoteStandardString(buf *strings.Builder, value string) {
	buf.WriteByte('\'')
	buf.WriteString(strings.ReplaceAll(value, "'", "''"))
	buf.WriteByte('\'')
}

// quoteBackslashString is for engines that treat backslash as an escape
// character inside string literals.
func quoteBackslashString(buf *strings.Builder, value string) {
	value = strings.ReplaceAll(value, `\`, `\\`)
	buf.WriteByte('\'')
	buf.WriteString(strings.ReplaceAll(value, "'", "''"))
	buf.WriteByte('\'')
}

func quotePostgresString(buf *strings.Builder, value string) {
	buf.WriteString(strings.TrimPrefix(pq.QuoteLiteral(value), " "))
}

// temporalQuoter writes an already validated date, time or timestamp text.
// kind is DATE, TIME or TIMESTAMP.
type temporalQuoter func(buf *strings.Builder, quote StringQuoter, kind, text string)

func temporalKeyword(buf *strings.Builder, quote StringQuoter, kind, text string) {
	buf.WriteString(kind)
	buf.WriteByte(' ')
	quote(buf, text)
}

func temporalBareString(buf *strings.Builder, quote StringQuoter, _, text string) {
	quote(buf, text)
}

func temporalConvert(buf *strings.Builder, quote StringQuoter, kind, text string) {
	if kind == "TIMESTAMP" {
		kind = "DATETIME2"
	}
	buf.WriteString("CONVERT(")
	buf.WriteString(kind)
	buf.WriteString(", ")
	quote(buf, text)
	buf.WriteByte(')')
}

var (
	dateLayouts      = []string{"2006-1-2"}
	timestampLayouts = []string{"2006-1-2 15:04:05", "2006-1-2T15:04:05", time.RFC3339Nano}
	timeLayouts      = []string{"15:04:05", "15:04"}
)

func parseAny(layouts []string, value string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDate accepts a date, or failing that a timestamp whose time part is
// dropped. The order matters: a bare date never reaches the timestamp layouts.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if t, ok := parseAny(dateLayouts, value); ok {
		return t, true
	}
	if t, ok := parseAny(timestampLayouts, value); ok {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// QuoteStringLiteral appends value as a string literal using the product's
// escaping rules.
func (d *Dialect) QuoteStringLiteral(buf *strings.Builder, value string) {
	d.quoteString(buf, value)
}

// QuoteDateLiteral appends value as a date literal such as DATE '2024-03-01'.
// A timestamp is accepted and truncated to its date.
func (d *Dialect) QuoteDateLiteral(buf *strings.Builder, value string) error {
	t, ok := parseDate(value)
	if !ok {
		return errors.NewMalformedLiteralError("DATE", value)
	}
	d.temporal(buf, d.quoteString, "DATE", t.Format("2006-01-02"))
	return nil
}

func (d *Dialect) QuoteTimestampLiteral(buf *strings.Builder, value string) error {
	t, ok := parseAny(timestampLayouts, strings.TrimSpace(value))
	if !ok {
		return errors.NewMalformedLiteralError("TIMESTAMP", value)
	}
	d.temporal(buf, d.quoteString, "TIMESTAMP", t.Format("2006-01-02 15:04:05.999999999"))
	return nil
}

func (d *Dialect) QuoteTimeLiteral(buf *strings.Builder, value string) error {
	t, ok := parseAny(timeLayouts, strings.TrimSpace(value))
	if !ok {
		return errors.NewMalformedLiteralError("TIME", value)
	}
	d.temporal(buf, d.quoteString, "TIME", t.Format("15:04:05.999999999"))
	return nil
}

// QuoteNumericLiteral appends value in canonical decimal form.
func (d *Dialect) QuoteNumericLiteral(buf *strings.Builder, value string) error {
	n, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return errors.NewMalformedLiteralError("NUMERIC", value)
	}
	buf.WriteString(n.String())
	return nil
}

func (d *Dialect) quoteIntegerLiteral(buf *strings.Builder, value string) error {
	n, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || !n.IsInteger() {
		return errors.NewMalformedLiteralError("INTEGER", value)
	}
	buf.WriteString(n.String())
	return nil
}

// QuoteBooleanLiteral accepts TRUE or FALSE in any case. Engines without a
// boolean literal get 1 or 0.
func (d *Dialect) QuoteBooleanLiteral(buf *strings.Builder, value string) error {
	var b bool
	switch {
	case strings.EqualFold(strings.TrimSpace(value), "true"):
		b = true
	case strings.EqualFold(strings.TrimSpace(value), "false"):
	default:
		return errors.NewMalformedLiteralError("BOOLEAN", value)
	}

	switch {
	case d.booleanAsInt && b:
		buf.WriteByte('1')
	case d.booleanAsInt:
		buf.WriteByte('0')
	case b:
		buf.WriteString("TRUE")
	default:
		buf.WriteString("FALSE")
	}
	return nil
}

// Quote appends value as a literal of type dt. A nil value is written as NULL.
func (d *Dialect) Quote(buf *strings.Builder, value *string, dt Datatype) error {
	if value == nil {
		buf.WriteString("NULL")
		return nil
	}

	switch dt {
	case DatatypeString:
		d.QuoteStringLiteral(buf, *value)
		return nil
	case DatatypeNumeric:
		return d.QuoteNumericLiteral(buf, *value)
	case DatatypeInteger:
		return d.quoteIntegerLiteral(buf, *value)
	case DatatypeBoolean:
		return d.QuoteBooleanLiteral(buf, *value)
	case DatatypeDate:
		return d.QuoteDateLiteral(buf, *value)
	case DatatypeTime:
		return d.QuoteTimeLiteral(buf, *value)
	case DatatypeTimestamp:
		return d.QuoteTimestampLiteral(buf, *value)
	}
	return errors.NewInvalidInputError(fmt.Sprintf("unknown datatype %v", dt))
}
