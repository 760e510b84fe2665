package ednutils

import (
	"reflect"
	"time"

	"golang.org/x/exp/constraints"
)

// Priority classes of values for cross-type ordering. Lower sorts first.
const (
	classNil = iota
	classFalse
	classTrue
	classNumber
	classChar
	classString
	classKeyword
	classSymbol
	classList
	classVector
	classSet
	classMap
	classOther
)

// Compare returns -1, 0 or 1 ordering a before, equal to or after b. It is a
// total order over all values: equal values (per Equal) compare 0, values of
// different priority classes order by class, values of the same class order by
// native comparison where the type has one and by canonical printed text
// otherwise. Compare never fails.
func Compare(a, b any) int {
	if Equal(a, b) {
		return 0
	}

	ca, cb := classOf(a), classOf(b)
	if ca != cb {
		return compareOrdered(ca, cb)
	}

	switch ca {
	case classNumber:
		return compareNumbers(a, b)
	case classChar:
		return compareOrdered(a.(Char), b.(Char))
	case classString:
		return compareOrdered(a.(string), b.(string))
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	// Same class with no native order (keywords, symbols, collections,
	// foreign types) ties on canonical printed text.
	return compareOrdered(repr(a), repr(b))
}

// classOf classifies v into exactly one priority class. Classification is
// structural: the concrete type decides, first match wins.
func classOf(v any) int {
	switch v := v.(type) {
	case nil:
		return classNil
	case bool:
		if v {
			return classTrue
		}
		return classFalse
	case Char:
		return classChar
	case string:
		return classString
	case Keyword:
		return classKeyword
	case Symbol:
		return classSymbol
	case List:
		return classList
	case Vector:
		return classVector
	case Set:
		return classSet
	case *Map:
		return classMap
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return classNumber
	}
	return classOther
}

func compareNumbers(a, b any) int {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case isSignedKind(av) && isSignedKind(bv):
		return compareOrdered(av.Int(), bv.Int())
	case isUnsignedKind(av) && isUnsignedKind(bv):
		return compareOrdered(av.Uint(), bv.Uint())
	default:
		return compareOrdered(floatOf(av), floatOf(bv))
	}
}

func isSignedKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsignedKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func floatOf(v reflect.Value) float64 {
	switch {
	case isSignedKind(v):
		return float64(v.Int())
	case isUnsignedKind(v):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
