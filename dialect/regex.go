package dialect

import (
	"regexp"
	"regexp/syntax"
	"strings"
)

// Patterns are written in the portable reference syntax: RE2 with an
// optional leading flag group such as (?i) and optional \Q...\E literal
// spans. The flag group also accepts c, meaning case-sensitive.
var flagGroupPattern = regexp.MustCompile(`^(\(\?([a-zA-Z]+)\))`)

// referenceFlags are the flag letters the reference syntax understands.
// c has no RE2 equivalent and is stripped before validation.
const referenceFlags = "imsUc"

// flagMapping maps one reference flag letter to the letter a target engine
// expects. Order in a table is the order letters are emitted.
type flagMapping struct {
	reference byte
	target    byte
}

// regexEmitter writes the final predicate. pattern and flags are already
// translated; literals go through quote.
type regexEmitter func(buf *strings.Builder, quote StringQuoter, source, pattern, flags string)

// RegexTranslator converts a reference pattern into an engine predicate.
// It holds no mutable state and is safe for concurrent use.
type RegexTranslator struct {
	flags   []flagMapping
	literal func(string) string
	emit    regexEmitter
}

// Translate returns the engine predicate matching source against pattern, or
// false when the pattern is not valid in the reference syntax.
func (t *RegexTranslator) Translate(quote StringQuoter, source, pattern string) (string, bool) {
	if t == nil || !validReferencePattern(pattern) {
		return "", false
	}

	var flags strings.Builder
	if m := flagGroupPattern.FindStringSubmatch(pattern); m != nil {
		letters := m[2]
		for _, f := range t.flags {
			if strings.IndexByte(letters, f.reference) >= 0 && strings.IndexByte(flags.String(), f.target) < 0 {
				flags.WriteByte(f.target)
			}
		}
		pattern = pattern[len(m[1]):]
	}

	pattern = t.rewriteEscapeSpans(pattern)

	var buf strings.Builder
	t.emit(&buf, quote, source, pattern, flags.String())
	return buf.String(), true
}

// rewriteEscapeSpans replaces every \Q...\E span with its contents as
// rewritten by the literal strategy. Escaped pairs outside a span are copied
// as they are, so \\Q is a backslash followed by Q and opens nothing. A span
// without \E runs to the end of the pattern.
func (t *RegexTranslator) rewriteEscapeSpans(pattern string) string {
	if !strings.Contains(pattern, `\Q`) {
		return pattern
	}

	var buf strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] != '\\' || i+1 == len(pattern) {
			buf.WriteByte(pattern[i])
			i++
			continue
		}
		if pattern[i+1] != 'Q' {
			buf.WriteString(pattern[i : i+2])
			i += 2
			continue
		}

		body := pattern[i+2:]
		end := strings.Index(body, `\E`)
		if end < 0 {
			buf.WriteString(t.literal(body))
			break
		}
		buf.WriteString(t.literal(body[:end]))
		i += 2 + end + 2
	}
	return buf.String()
}

func validReferencePattern(pattern string) bool {
	body := pattern
	if m := flagGroupPattern.FindStringSubmatch(pattern); m != nil {
		var re2 strings.Builder
		for i := 0; i < len(m[2]); i++ {
			c := m[2][i]
			if strings.IndexByte(referenceFlags, c) < 0 {
				return false
			}
			if c != 'c' {
				re2.WriteByte(c)
			}
		}
		body = pattern[len(m[1]):]
		if re2.Len() > 0 {
			body = "(?" + re2.String() + ")" + body
		}
	}
	_, err := syntax.Parse(body, syntax.Perl)
	return err == nil
}

func literalVerbatim(s string) string { return s }

// REGEXP_LIKE(source, 'pattern', 'flags'), always with the flags argument.
func emitRegexpLikeWithFlags(buf *strings.Builder, quote StringQuoter, source, pattern, flags string) {
	buf.WriteString("REGEXP_LIKE(")
	buf.WriteString(source)
	buf.WriteString(", ")
	quote(buf, pattern)
	buf.WriteString(", ")
	quote(buf, flags)
	buf.WriteByte(')')
}

// REGEXP_LIKE with the flags argument only when there are flags. On Oracle
// an empty string is NULL.
func emitRegexpLike(buf *strings.Builder, quote StringQuoter, source, pattern, flags string) {
	buf.WriteString("REGEXP_LIKE(")
	buf.WriteString(source)
	buf.WriteString(", ")
	quote(buf, pattern)
	if flags != "" {
		buf.WriteString(", ")
		quote(buf, flags)
	}
	buf.WriteByte(')')
}

func emitPostgresMatch(buf *strings.Builder, quote StringQuoter, source, pattern, flags string) {
	op := " ~ "
	if strings.IndexByte(flags, 'i') >= 0 && strings.IndexByte(flags, 'c') < 0 {
		op = " ~* "
	}
	// w: ^ and $ match at newlines, the ARE spelling of multi-line mode
	if strings.IndexByte(flags, 'w') >= 0 {
		pattern = "(?w)" + pattern
	}
	buf.WriteString("CAST(")
	buf.WriteString(source)
	buf.WriteString(" AS TEXT)")
	buf.WriteString(op)
	quote(buf, pattern)
}

// MariaDB has no REGEXP_LIKE; PCRE inline flags carry the options.
func emitMariaDBRegexp(buf *strings.Builder, quote StringQuoter, source, pattern, flags string) {
	var inline strings.Builder
	for i := 0; i < len(flags); i++ {
		if flags[i] != 'c' {
			inline.WriteByte(flags[i])
		}
	}
	switch {
	case inline.Len() > 0:
		pattern = "(?" + inline.String() + ")" + pattern
	case strings.IndexByte(flags, 'c') >= 0:
		pattern = "(?-i)" + pattern
	}
	buf.WriteString(source)
	buf.WriteString(" REGEXP ")
	quote(buf, pattern)
}
