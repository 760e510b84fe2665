package ednutils

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Tags of the built-in bindings.
const (
	TagInst Symbol = "inst"
	TagUUID Symbol = "uuid"
	TagBin  Symbol = "bin"
	TagURI  Symbol = "uri"
)

// instLayout is ISO-8601 UTC with millisecond precision. The rendered form
// carries a fixed "-00:00" zone suffix.
const instLayout = "2006-01-02T15:04:05.000"

// FormatInst renders t as the inner literal of an #inst tagged value.
func FormatInst(t time.Time) string {
	return t.UTC().Format(instLayout) + "-00:00"
}

// ParseInst parses the inner literal of an #inst tagged value.
func ParseInst(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse inst: %w", err)
	}
	return t, nil
}

// ReadInst decodes the payload of an #inst tagged value.
func ReadInst(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("inst: expected string payload, got %T", v)
	}
	return ParseInst(s)
}

// ReadUUID decodes the payload of a #uuid tagged value.
func ReadUUID(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("uuid: expected string payload, got %T", v)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse uuid: %w", err)
	}
	return id, nil
}

// ReadBin decodes the payload of a #bin tagged value.
func ReadBin(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("bin: expected string payload, got %T", v)
	}
	bz, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode bin: %w", err)
	}
	return bz, nil
}

// ReadURI decodes the payload of a #uri tagged value. A malformed URI
// propagates the *url.Error unchanged under the wrap.
func ReadURI(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("uri: expected string payload, got %T", v)
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse uri: %w", err)
	}
	return u, nil
}

// builtinReaders are the readers pre-registered by NewRegistry.
func builtinReaders() map[Symbol]ReadHandler {
	return map[Symbol]ReadHandler{
		TagBin: ReadBin,
		TagURI: ReadURI,
	}
}

// defaultDataReaders are built into the text reader itself; a Registry entry
// or per-call reader for the same tag takes precedence.
var defaultDataReaders = map[Symbol]ReadHandler{
	TagInst: ReadInst,
	TagUUID: ReadUUID,
}

// builtinWriters maps the host types of the built-in bindings to their tagged
// form.
func builtinWriters() map[reflect.Type]WriteHandler {
	return map[reflect.Type]WriteHandler{
		reflect.TypeOf(time.Time{}): func(v any) (Tagged, error) {
			return GenericTagged{tag: TagInst, value: FormatInst(v.(time.Time))}, nil
		},
		reflect.TypeOf(uuid.UUID{}): func(v any) (Tagged, error) {
			return GenericTagged{tag: TagUUID, value: v.(uuid.UUID).String()}, nil
		},
		reflect.TypeOf([]byte(nil)): func(v any) (Tagged, error) {
			return GenericTagged{tag: TagBin, value: base64.StdEncoding.EncodeToString(v.([]byte))}, nil
		},
		reflect.TypeOf(&url.URL{}): func(v any) (Tagged, error) {
			return GenericTagged{tag: TagURI, value: v.(*url.URL).String()}, nil
		},
	}
}
