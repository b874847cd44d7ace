package turtle

import (
	"strings"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/vocab/xsd"
)

// lexer is a rune-position scanner over an entire Turtle document held
// in memory. Turtle statements are not line-oriented (literals and
// property lists can span lines), so this does not read line-by-line;
// it tracks a single rune cursor instead.
type lexer struct {
	s   string
	pos int
}

func newLexer(s string) *lexer { return &lexer{s: s} }

func (l *lexer) atEOF() bool { return l.pos >= len(l.s) }

func (l *lexer) peek() rune {
	if l.atEOF() {
		return 0
	}
	return rune(l.s[l.pos])
}

func (l *lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.s) {
		return 0
	}
	return rune(l.s[l.pos+off])
}

// skipInsignificant consumes whitespace and "#" line comments.
func (l *lexer) skipInsignificant() {
	for !l.atEOF() {
		switch l.s[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		case '#':
			for !l.atEOF() && l.s[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) consume(r rune) bool {
	if l.peek() == r {
		l.pos++
		return true
	}
	return false
}

func (l *lexer) mustConsume(r rune) { l.pos++ }

// peekKeyword reports whether the upcoming bytes case-sensitively match
// kw (used for "@prefix"/"PREFIX" directives, which do not share a
// delimiter rune to dispatch on).
func (l *lexer) peekKeyword(kw string) bool {
	return strings.HasPrefix(l.s[l.pos:], kw)
}

func (l *lexer) skipKeyword() {
	for !l.atEOF() && !isWS(rune(l.s[l.pos])) {
		l.pos++
	}
}

// consumeKeywordRune consumes a single bare keyword token like Turtle's
// "a" shorthand for rdf:type, requiring it be followed by whitespace or
// EOF so it is not mistaken for a prefixed name starting with "a".
func (l *lexer) consumeKeywordRune(r rune) bool {
	if l.peek() != r {
		return false
	}
	next := l.peekAt(1)
	if next != 0 && !isWS(next) {
		return false
	}
	l.pos++
	return true
}

func isWS(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

// readIRIREF reads "<...>", unescaping \uXXXX/\UXXXXXXXX sequences.
func (l *lexer) readIRIREF() (string, error) {
	if !l.consume('<') {
		return "", errs.New(errs.InputError, "turtle: expected '<'")
	}
	start := l.pos
	for !l.atEOF() && l.s[l.pos] != '>' {
		l.pos++
	}
	if l.atEOF() {
		return "", errs.New(errs.InputError, "turtle: unterminated IRI reference")
	}
	raw := l.s[start:l.pos]
	l.pos++ // consume '>'
	return unescapeUnicode(raw), nil
}

// readPNameNS reads a prefix namespace label up to and including ':',
// e.g. "rdf:" or ":" for the default prefix.
func (l *lexer) readPNameNS() (string, error) {
	start := l.pos
	for !l.atEOF() && l.s[l.pos] != ':' && !isWS(rune(l.s[l.pos])) {
		l.pos++
	}
	if l.atEOF() || l.s[l.pos] != ':' {
		return "", errs.New(errs.InputError, "turtle: expected ':' in prefix name")
	}
	l.pos++
	return l.s[start:l.pos], nil
}

// readPName reads a prefixed name "ns:local".
func (l *lexer) readPName() (string, error) {
	start := l.pos
	for !l.atEOF() && !isWS(rune(l.s[l.pos])) && l.s[l.pos] != ';' && l.s[l.pos] != ',' && l.s[l.pos] != '.' {
		l.pos++
	}
	tok := l.s[start:l.pos]
	if !strings.Contains(tok, ":") {
		return "", errs.Newf(errs.InputError, "turtle: expected prefixed name, got %q", tok)
	}
	return tok, nil
}

// readBlankLabel reads "_:label".
func (l *lexer) readBlankLabel() (string, error) {
	if !l.consume('_') {
		return "", errs.New(errs.InputError, "turtle: expected blank node label")
	}
	if !l.consume(':') {
		return "", errs.New(errs.InputError, "turtle: expected ':' after '_'")
	}
	start := l.pos
	for !l.atEOF() && !isWS(rune(l.s[l.pos])) && l.s[l.pos] != ';' && l.s[l.pos] != ',' && l.s[l.pos] != '.' {
		l.pos++
	}
	return l.s[start:l.pos], nil
}

// readQuoted reads a single- or triple-quoted string literal, returning
// its unescaped content.
func (l *lexer) readQuoted() (string, error) {
	q := l.peek()
	triple := l.peekAt(1) == q && l.peekAt(2) == q
	if triple {
		l.pos += 3
	} else {
		l.pos++
	}
	delim := string(q)
	if triple {
		delim = strings.Repeat(string(q), 3)
	}
	end := strings.Index(l.s[l.pos:], delim)
	if end < 0 {
		return "", errs.New(errs.InputError, "turtle: unterminated string literal")
	}
	raw := l.s[l.pos : l.pos+end]
	l.pos += end + len(delim)
	return unescapeString(raw), nil
}

// readLangTag reads a BCP47-ish language tag following "@".
func (l *lexer) readLangTag() string {
	start := l.pos
	for !l.atEOF() && (isAlnum(rune(l.s[l.pos])) || l.s[l.pos] == '-') {
		l.pos++
	}
	return l.s[start:l.pos]
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// readNumber reads an integer, decimal, or double numeric literal and
// returns its lexical form with the matching xsd datatype, per Turtle's
// numeric literal shorthand.
func (l *lexer) readNumber() (lexical, datatype string) {
	start := l.pos
	if l.peek() == '+' || l.peek() == '-' {
		l.pos++
	}
	for !l.atEOF() && isDigit(rune(l.s[l.pos])) {
		l.pos++
	}
	isDouble := false
	isDecimal := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isDecimal = true
		l.pos++
		for !l.atEOF() && isDigit(rune(l.s[l.pos])) {
			l.pos++
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isDouble = true
		l.pos++
		if l.peek() == '+' || l.peek() == '-' {
			l.pos++
		}
		for !l.atEOF() && isDigit(rune(l.s[l.pos])) {
			l.pos++
		}
	}
	lexical = l.s[start:l.pos]
	switch {
	case isDouble:
		datatype = xsd.Double
	case isDecimal:
		datatype = xsd.Decimal
	default:
		datatype = xsd.Integer
	}
	return lexical, datatype
}

func unescapeString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func unescapeUnicode(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == 'u' || s[i+1] == 'U') {
			width := 4
			if s[i+1] == 'U' {
				width = 8
			}
			if i+2+width <= len(s) {
				var r rune
				for _, c := range s[i+2 : i+2+width] {
					r = r*16 + rune(hexVal(c))
				}
				b.WriteRune(r)
				i += 1 + width
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func hexVal(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}
