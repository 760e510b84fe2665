package ednutils

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// WriteHandler converts a host value into its tagged form for printing.
type WriteHandler func(v any) (Tagged, error)

// Printer renders values as canonical EDN text. Values implementing Tagged
// print as #tag <literal>; host types outside the value model are routed
// through a writer table keyed by their concrete type, preloaded with the
// built-in bindings (inst, uuid, bin, uri) and extendable via WithWriter.
type Printer struct {
	writers map[reflect.Type]WriteHandler
}

// NewPrinter creates a new Printer.
func NewPrinter(opts ...func(*Printer)) *Printer {
	p := &Printer{writers: builtinWriters()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithWriter registers a writer for a concrete host type on the Printer.
func WithWriter(rt reflect.Type, fn WriteHandler) func(*Printer) {
	return func(p *Printer) {
		p.writers[rt] = fn
	}
}

// Print renders the given value.
func (p *Printer) Print(v any) (string, error) {
	var b strings.Builder
	if err := p.print(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MustPrint is like Print but panics if there is an error.
func (p *Printer) MustPrint(v any) string {
	s, err := p.Print(v)
	if err != nil {
		panic(err)
	}
	return s
}

func (p *Printer) print(b *strings.Builder, v any) error {
	switch v := v.(type) {
	case nil:
		b.WriteString("nil")
		return nil
	case bool:
		b.WriteString(strconv.FormatBool(v))
		return nil
	case string:
		b.WriteString(quoteString(v))
		return nil
	case Char:
		b.WriteString(charLiteral(rune(v)))
		return nil
	case Keyword:
		b.WriteString(v.String())
		return nil
	case Symbol:
		b.WriteString(string(v))
		return nil
	case List:
		return p.printSeq(b, "(", ")", v)
	case Vector:
		return p.printSeq(b, "[", "]", v)
	case Set:
		return p.printSeq(b, "#{", "}", v)
	case *Map:
		return p.printMap(b, v)
	case float32:
		b.WriteString(formatFloat(float64(v)))
		return nil
	case float64:
		b.WriteString(formatFloat(v))
		return nil
	}

	if t, ok := v.(Tagged); ok {
		return p.printTagged(b, t)
	}

	rv := reflect.ValueOf(v)
	if fn, ok := p.writers[rv.Type()]; ok {
		t, err := fn(v)
		if err != nil {
			return err
		}
		return p.printTagged(b, t)
	}

	switch {
	case isSignedKind(rv):
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil
	case isUnsignedKind(rv):
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	}

	return fmt.Errorf("unsupported type %s", rv.Type())
}

func (p *Printer) printTagged(b *strings.Builder, t Tagged) error {
	b.WriteByte('#')
	b.WriteString(string(t.Tag()))
	b.WriteByte(' ')
	return p.print(b, t.Value())
}

func (p *Printer) printSeq(b *strings.Builder, open, end string, vs []any) error {
	b.WriteString(open)
	for i, v := range vs {
		if i > 0 {
			b.WriteByte(' ')
		}
		if err := p.print(b, v); err != nil {
			return err
		}
	}
	b.WriteString(end)
	return nil
}

func (p *Printer) printMap(b *strings.Builder, m *Map) error {
	b.WriteByte('{')
	first := true
	for k, v := range m.Entries() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		if err := p.print(b, k); err != nil {
			return err
		}
		b.WriteByte(' ')
		if err := p.print(b, v); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "##NaN"
	case math.IsInf(f, 1):
		return "##Inf"
	case math.IsInf(f, -1):
		return "##-Inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func charLiteral(r rune) string {
	switch r {
	case '\n':
		return `\newline`
	case '\r':
		return `\return`
	case ' ':
		return `\space`
	case '\t':
		return `\tab`
	}
	if r < ' ' || r == 0x7f {
		return fmt.Sprintf(`\u%04X`, r)
	}
	return `\` + string(r)
}

var defaultPrinter = NewPrinter()

// repr is the canonical textual representation used for ordering ties. It must
// be total, so foreign types degrade to fmt formatting instead of failing.
func repr(v any) string {
	s, err := defaultPrinter.Print(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}
