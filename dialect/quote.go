package dialect

import "strings"

// QuoteResolver picks the identifier quote a dialect uses. Drivers for some
// engines report an empty quote string even though the engine requires one,
// so every product carries a fallback.
type QuoteResolver struct {
	Fallback string
}

// Resolve returns the trimmed reported quote, or the fallback when nothing
// usable was reported.
func (r QuoteResolver) Resolve(reported string) string {
	if q := strings.TrimSpace(reported); q != "" {
		return q
	}
	return r.Fallback
}

// quoteStyle is a resolved quote token split into its opening and closing
// halves. "[]" is the only paired token in use; any other token quotes both
// ends with itself.
type quoteStyle struct {
	open, close string
}

func newQuoteStyle(token string) quoteStyle {
	if len(token) == 2 && token[0] == '[' && token[1] == ']' {
		return quoteStyle{open: "[", close: "]"}
	}
	return quoteStyle{open: token, close: token}
}

func (q quoteStyle) String() string {
	if q.open == q.close {
		return q.open
	}
	return q.open + q.close
}

// writeIdentifier appends val quoted. A value that is already quoted is
// written as is, and a single "schema.table" dot is quoted part by part.
func (q quoteStyle) writeIdentifier(buf *strings.Builder, val string) {
	if strings.HasPrefix(val, q.open) && strings.HasSuffix(val, q.close) && len(val) >= len(q.open)+len(q.close) {
		buf.WriteString(val)
		return
	}

	if k := strings.IndexByte(val, '.'); k > 0 && k < len(val)-1 && strings.Count(val, ".") == 1 {
		q.writePart(buf, val[:k])
		buf.WriteByte('.')
		q.writePart(buf, val[k+1:])
		return
	}

	q.writePart(buf, val)
}

func (q quoteStyle) writePart(buf *strings.Builder, part string) {
	buf.WriteString(q.open)
	buf.WriteString(strings.ReplaceAll(part, q.close, q.close+q.close))
	buf.WriteString(q.close)
}
