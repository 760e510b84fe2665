package ednutils

import "fmt"

// Tagged is the capability that makes a value encodable as a tagged literal
// #tag <value>. Both methods must be pure functions of the receiver.
// Implementations should only return tags that satisfy IsValidSymbol; Encode
// does not re-validate.
type Tagged interface {
	Tag() Symbol
	Value() any
}

// GenericTagged holds an arbitrary tag-value pair. It is the universal
// fallback produced when no specific reader exists for a tag, and round-trips
// through the same encode path as any other Tagged value.
type GenericTagged struct {
	tag   Symbol
	value any
}

// NewGenericTagged creates a new GenericTagged. It returns ErrInvalidTag if
// tag is not a valid symbol.
func NewGenericTagged(tag Symbol, value any) (GenericTagged, error) {
	if !IsValidSymbol(string(tag)) {
		return GenericTagged{}, fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	return GenericTagged{tag: tag, value: value}, nil
}

// MustGenericTagged is like NewGenericTagged but panics if the tag is invalid.
func MustGenericTagged(tag Symbol, value any) GenericTagged {
	g, err := NewGenericTagged(tag, value)
	if err != nil {
		panic(err)
	}
	return g
}

// Tag returns the tag of the value.
func (g GenericTagged) Tag() Symbol {
	return g.tag
}

// Value returns the inner value following the tag.
func (g GenericTagged) Value() any {
	return g.value
}

// Equal reports whether other is a GenericTagged with an equal tag and value.
func (g GenericTagged) Equal(other any) bool {
	o, ok := other.(GenericTagged)
	return ok && g.tag == o.tag && Equal(g.value, o.value)
}

// String returns the tagged literal form of the value.
func (g GenericTagged) String() string {
	return "#" + string(g.tag) + " " + repr(g.value)
}

// Encode renders v as "#tag <literal>" using the default printer.
func Encode(v Tagged) (string, error) {
	return NewPrinter().Print(v)
}

// MustEncode is like Encode but panics if printing fails.
func MustEncode(v Tagged) string {
	s, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return s
}
