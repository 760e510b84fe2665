package ednutils

import (
	"iter"
	"reflect"
	"time"
	"unicode"
)

// Keyword is an EDN keyword such as :name or :db/id, stored without the leading colon.
type Keyword string

// String returns the textual form of the keyword including the leading colon.
func (k Keyword) String() string {
	return ":" + string(k)
}

// Symbol is an EDN symbol such as foo, my.ns/bar or the tag part of a tagged literal.
type Symbol string

// String returns the textual form of the symbol.
func (s Symbol) String() string {
	return string(s)
}

// Char is a single EDN character literal such as \a or \newline.
type Char rune

// List is an EDN list, printed as (a b c).
type List []any

// Vector is an EDN vector, printed as [a b c].
type Vector []any

// Set is an EDN set, printed as #{a b c}. Element order is insertion order;
// membership is decided by Equal, so collections are legal elements.
type Set []any

// Contains reports whether the set contains a value equal to v.
func (s Set) Contains(v any) bool {
	for _, e := range s {
		if Equal(e, v) {
			return true
		}
	}
	return false
}

// Equal reports whether other is a Set with the same members, regardless of order.
func (s Set) Equal(other any) bool {
	o, ok := other.(Set)
	if !ok {
		return false
	}
	if len(s) != len(o) {
		return false
	}
	for _, e := range s {
		if !o.Contains(e) {
			return false
		}
	}
	return true
}

// MapEntry is a single key-value entry of a Map.
type MapEntry struct {
	Key   any
	Value any
}

// Map is an EDN map that preserves the insertion order of its entries.
// Keys may be any EDN value including collections, so lookup is linear
// and uses Equal instead of a Go map.
type Map struct {
	entries []MapEntry
}

// NewMap creates a new Map from the given entries. Later entries overwrite
// earlier ones with an equal key.
func NewMap(entries ...MapEntry) *Map {
	m := &Map{}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Get returns the value associated with a key equal to key.
func (m *Map) Get(key any) (any, bool) {
	if m == nil {
		return nil, false
	}
	for _, e := range m.entries {
		if Equal(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Set associates key with value, overwriting an existing entry with an equal key.
func (m *Map) Set(key, value any) {
	for i, e := range m.entries {
		if Equal(e.Key, key) {
			m.entries[i].Value = value
			return
		}
	}
	m.entries = append(m.entries, MapEntry{Key: key, Value: value})
}

// Len returns the number of entries in the map. A nil Map is empty.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns an iterator over all key-value entries in insertion order.
func (m *Map) Entries() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Equal reports whether other is a Map with equal entries, regardless of
// order. A nil Map equals an empty one.
func (m *Map) Equal(other any) bool {
	o, ok := other.(*Map)
	if !ok {
		return false
	}
	if m.Len() != o.Len() {
		return false
	}
	if m == nil {
		return true
	}
	for _, e := range m.entries {
		v, ok := o.Get(e.Key)
		if !ok || !Equal(e.Value, v) {
			return false
		}
	}
	return true
}

type equaler interface {
	Equal(other any) bool
}

// Equal reports whether a and b are equal EDN values. Types carrying their own
// equality (Map, Set, GenericTagged, time.Time) are consulted first; everything
// else falls back to reflect.DeepEqual.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if e, ok := a.(equaler); ok {
		return e.Equal(b)
	}
	if e, ok := b.(equaler); ok {
		return e.Equal(a)
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

// IsValidSymbol reports whether s is acceptable as a tag identifier. This is a
// conservative subset of symbol syntax: a leading letter (or '.', '_', '-' or
// '+' not followed by a digit), followed by letters, digits, '-', '_', '.',
// '*' or '?', with at most one '/' separating two such parts.
func IsValidSymbol(s string) bool {
	if s == "" {
		return false
	}
	parts := 0
	for i, r := range s {
		if r == '/' {
			parts++
			if parts > 1 || i == 0 || i == len(s)-1 {
				return false
			}
			continue
		}
		if !validSymbolRune(r) {
			return false
		}
	}
	return validSymbolStart(s) && (parts == 0 || validSymbolStart(s[indexAfterSlash(s):]))
}

func indexAfterSlash(s string) int {
	for i, r := range s {
		if r == '/' {
			return i + 1
		}
	}
	return 0
}

func validSymbolStart(s string) bool {
	rs := []rune(s)
	if len(rs) == 0 {
		return false
	}
	switch rs[0] {
	case '.', '_', '-', '+':
		return len(rs) < 2 || !unicode.IsDigit(rs[1])
	}
	return unicode.IsLetter(rs[0])
}

func validSymbolRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '-', '_', '.', '*', '?', '+':
		return true
	}
	return false
}
