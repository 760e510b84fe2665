package ednutils

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// reader parses EDN text into values. It recognizes primitives and
// collections natively and dispatches #tag literals through the effective
// reader map computed by the decode call that owns it.
type reader struct {
	src           *bufio.Reader
	readers       map[Symbol]ReadHandler
	defaultReader DefaultReadHandler

	line, col         int
	prevLine, prevCol int
}

func newReader(src io.Reader, readers map[Symbol]ReadHandler, def DefaultReadHandler) *reader {
	return &reader{
		src:           bufio.NewReader(src),
		readers:       readers,
		defaultReader: def,
		line:          1,
	}
}

func (r *reader) next() (rune, error) {
	c, _, err := r.src.ReadRune()
	if err != nil {
		return 0, err
	}
	r.prevLine, r.prevCol = r.line, r.col
	if c == '\n' {
		r.line++
		r.col = 0
	} else {
		r.col++
	}
	return c, nil
}

// unread pushes back the last rune. Only one rune deep.
func (r *reader) unread() {
	_ = r.src.UnreadRune()
	r.line, r.col = r.prevLine, r.prevCol
}

func (r *reader) errf(format string, args ...any) error {
	return &ParseError{Line: r.line, Col: r.col, Msg: fmt.Sprintf(format, args...)}
}

// read reads a single value.
func (r *reader) read() (any, error) {
	return r.readValue()
}

// eofErrf turns an end-of-input condition into a ParseError; any other read
// failure from the source propagates unchanged.
func (r *reader) eofErrf(err error, format string, args ...any) error {
	if err == io.EOF {
		return r.errf(format, args...)
	}
	return err
}

// readValue reads the next value, skipping over any #_ discard forms.
func (r *reader) readValue() (any, error) {
	for {
		v, ok, err := r.readForm()
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
	}
}

// readForm reads one form. The second result is false when the form was a
// #_ discard, which produces no value.
func (r *reader) readForm() (any, bool, error) {
	if err := r.skipSpace(); err != nil {
		return nil, false, r.eofErrf(err, "unexpected end of input")
	}

	c, err := r.next()
	if err != nil {
		return nil, false, r.eofErrf(err, "unexpected end of input")
	}

	switch c {
	case '(':
		vs, err := r.readSeq(')')
		return List(vs), true, err
	case '[':
		vs, err := r.readSeq(']')
		return Vector(vs), true, err
	case '{':
		m, err := r.readMap()
		return m, true, err
	case ')', ']', '}':
		return nil, false, r.errf("unexpected %q", c)
	case '"':
		s, err := r.readString()
		return s, true, err
	case '\\':
		ch, err := r.readChar()
		return ch, true, err
	case ':':
		k, err := r.readKeyword()
		return k, true, err
	case '#':
		return r.readDispatch()
	}

	r.unread()
	tok, err := r.readToken()
	if err != nil {
		return nil, false, err
	}
	v, err := r.interpretToken(tok)
	return v, true, err
}

// skipSpace consumes whitespace, commas and line comments.
func (r *reader) skipSpace() error {
	for {
		c, err := r.next()
		if err != nil {
			return err
		}
		switch {
		case c == ',' || unicode.IsSpace(c):
		case c == ';':
			for c != '\n' {
				c, err = r.next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
			}
		default:
			r.unread()
			return nil
		}
	}
}

func (r *reader) readSeq(end rune) ([]any, error) {
	var vs []any
	for {
		if err := r.skipSpace(); err != nil {
			return nil, r.eofErrf(err, "unterminated sequence, expected %q", end)
		}
		c, err := r.next()
		if err != nil {
			return nil, r.eofErrf(err, "unterminated sequence, expected %q", end)
		}
		if c == end {
			return vs, nil
		}
		r.unread()

		v, ok, err := r.readForm()
		if err != nil {
			return nil, err
		}
		if ok {
			vs = append(vs, v)
		}
	}
}

func (r *reader) readMap() (*Map, error) {
	m := &Map{}
	for {
		if err := r.skipSpace(); err != nil {
			return nil, r.eofErrf(err, "unterminated map")
		}
		c, err := r.next()
		if err != nil {
			return nil, r.eofErrf(err, "unterminated map")
		}
		if c == '}' {
			return m, nil
		}
		r.unread()

		k, ok, err := r.readForm()
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if _, ok := m.Get(k); ok {
			return nil, r.errf("duplicate map key %s", repr(k))
		}

		if err := r.skipSpace(); err != nil {
			return nil, r.eofErrf(err, "map key %s with no value", repr(k))
		}
		c, err = r.next()
		if err != nil {
			return nil, r.eofErrf(err, "map key %s with no value", repr(k))
		}
		if c == '}' {
			return nil, r.errf("map key %s with no value", repr(k))
		}
		r.unread()

		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		m.Set(k, v)
	}
}

func (r *reader) readSet() (Set, error) {
	vs, err := r.readSeq('}')
	if err != nil {
		return nil, err
	}
	s := Set{}
	for _, v := range vs {
		if s.Contains(v) {
			return nil, r.errf("duplicate set element %s", repr(v))
		}
		s = append(s, v)
	}
	return s, nil
}

// readDispatch handles the forms behind '#': sets, the #_ discard form,
// symbolic values (##Inf and friends) and tagged literals. The second result
// is false when the form was a discard.
func (r *reader) readDispatch() (any, bool, error) {
	c, err := r.next()
	if err != nil {
		return nil, false, r.eofErrf(err, "unexpected end of input after #")
	}
	switch c {
	case '{':
		s, err := r.readSet()
		return s, true, err
	case '_':
		if _, err := r.readValue(); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	case '#':
		v, err := r.readSymbolicValue()
		return v, true, err
	}

	r.unread()
	v, err := r.readTagged()
	return v, true, err
}

func (r *reader) readSymbolicValue() (any, error) {
	tok, err := r.readToken()
	if err != nil {
		return nil, err
	}
	switch tok {
	case "Inf":
		return math.Inf(1), nil
	case "-Inf":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	return nil, r.errf("unknown symbolic value ##%s", tok)
}

func (r *reader) readTagged() (any, error) {
	tok, err := r.readToken()
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, r.errf("missing tag after #")
	}
	tag := Symbol(tok)

	v, err := r.readValue()
	if err != nil {
		return nil, err
	}

	if fn, ok := r.readers[tag]; ok {
		return fn(v)
	}
	if r.defaultReader != nil {
		return r.defaultReader(tag, v)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
}

func (r *reader) readString() (string, error) {
	var b strings.Builder
	for {
		c, err := r.next()
		if err != nil {
			return "", r.eofErrf(err, "unterminated string")
		}
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			e, err := r.readStringEscape()
			if err != nil {
				return "", err
			}
			b.WriteRune(e)
		default:
			b.WriteRune(c)
		}
	}
}

func (r *reader) readStringEscape() (rune, error) {
	c, err := r.next()
	if err != nil {
		return 0, r.eofErrf(err, "unterminated string escape")
	}
	switch c {
	case '"', '\\', '/':
		return c, nil
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'u':
		return r.readUnicodeEscape()
	}
	return 0, r.errf("invalid string escape \\%c", c)
}

func (r *reader) readUnicodeEscape() (rune, error) {
	var code rune
	for i := 0; i < 4; i++ {
		c, err := r.next()
		if err != nil {
			return 0, r.eofErrf(err, "unterminated unicode escape")
		}
		d, ok := hexDigit(c)
		if !ok {
			return 0, r.errf("invalid unicode escape digit %q", c)
		}
		code = code<<4 | d
	}
	return code, nil
}

func hexDigit(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func (r *reader) readChar() (Char, error) {
	c, err := r.next()
	if err != nil {
		return 0, r.eofErrf(err, "unexpected end of input after \\")
	}
	if !unicode.IsLetter(c) {
		return Char(c), nil
	}

	tok, err := r.readToken()
	if err != nil {
		return 0, err
	}
	tok = string(c) + tok
	if len([]rune(tok)) == 1 {
		return Char(c), nil
	}
	switch tok {
	case "newline":
		return Char('\n'), nil
	case "return":
		return Char('\r'), nil
	case "space":
		return Char(' '), nil
	case "tab":
		return Char('\t'), nil
	}
	if c == 'u' && len(tok) == 5 {
		var code rune
		for _, d := range tok[1:] {
			h, ok := hexDigit(d)
			if !ok {
				return 0, r.errf("invalid character literal \\%s", tok)
			}
			code = code<<4 | h
		}
		return Char(code), nil
	}
	return 0, r.errf("invalid character literal \\%s", tok)
}

func (r *reader) readKeyword() (Keyword, error) {
	tok, err := r.readToken()
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", r.errf("empty keyword")
	}
	return Keyword(tok), nil
}

// readToken accumulates runes until whitespace, a comma, a delimiter or a
// comment starts.
func (r *reader) readToken() (string, error) {
	var b strings.Builder
	for {
		c, err := r.next()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		if c == ',' || unicode.IsSpace(c) || strings.ContainsRune(`()[]{}";`, c) {
			r.unread()
			return b.String(), nil
		}
		b.WriteRune(c)
	}
}

func (r *reader) interpretToken(tok string) (any, error) {
	switch tok {
	case "":
		return nil, r.errf("unexpected end of input")
	case "nil":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	if looksNumeric(tok) {
		if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, r.errf("invalid number literal %q", tok)
		}
		return f, nil
	}

	return Symbol(tok), nil
}

// looksNumeric reports whether a token must be a number literal: it starts
// with a digit or a sign followed by a digit.
func looksNumeric(tok string) bool {
	rs := []rune(tok)
	if unicode.IsDigit(rs[0]) {
		return true
	}
	return (rs[0] == '+' || rs[0] == '-') && len(rs) > 1 && unicode.IsDigit(rs[1])
}
