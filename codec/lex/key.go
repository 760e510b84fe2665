// Package lex encodes EDN values as order-preserving byte keys: comparing two
// keys with bytes.Compare agrees with ednutils.Compare on the values, so a
// store keyed this way iterates in value order.
package lex

import (
	"reflect"

	"github.com/ehsanranjbar/ednutils"
)

// Class rank prefixes. They mirror the priority classes of ednutils.Compare,
// so keys of different classes order by class before payload.
const (
	rankNil = byte(iota)
	rankFalse
	rankTrue
	rankNumber
	rankChar
	rankString
	rankKeyword
	rankSymbol
	rankList
	rankVector
	rankSet
	rankMap
	rankOther
)

// MustKey encodes the given value and panics if there is an error.
func MustKey(v any) []byte {
	bz, err := Key(v)
	if err != nil {
		panic(err)
	}
	return bz
}

// Key encodes the given value as one class-rank byte followed by an
// order-preserving payload. All numbers share one payload encoding (float64),
// so keys agree with ednutils.Compare within float64 precision. Collections
// and foreign types use their canonical printed text as payload, matching the
// comparator's text fallback.
func Key(v any) ([]byte, error) {
	switch v := v.(type) {
	case nil:
		return []byte{rankNil}, nil
	case bool:
		if v {
			return []byte{rankTrue}, nil
		}
		return []byte{rankFalse}, nil
	case ednutils.Char:
		return append([]byte{rankChar}, EncodeUint32(uint32(v))...), nil
	case string:
		return append([]byte{rankString}, v...), nil
	case ednutils.Keyword:
		return append([]byte{rankKeyword}, string(v)...), nil
	case ednutils.Symbol:
		return append([]byte{rankSymbol}, string(v)...), nil
	case ednutils.List:
		return printedKey(rankList, v)
	case ednutils.Vector:
		return printedKey(rankVector, v)
	case ednutils.Set:
		return printedKey(rankSet, v)
	case *ednutils.Map:
		return printedKey(rankMap, v)
	}

	if f, ok := floatValue(v); ok {
		return append([]byte{rankNumber}, EncodeFloat64(f)...), nil
	}
	return printedKey(rankOther, v)
}

func printedKey(rank byte, v any) ([]byte, error) {
	s, err := ednutils.NewPrinter().Print(v)
	if err != nil {
		return nil, err
	}
	return append([]byte{rank}, s...), nil
}

func floatValue(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
