package ednutils

import (
	"fmt"
	"io"
	"maps"
	"strings"
	"sync"
	"sync/atomic"
)

// ReadHandler transforms the literal following a tag into a host value.
type ReadHandler func(v any) (any, error)

// DefaultReadHandler constructs a value for a tag that has no matching reader.
type DefaultReadHandler func(tag Symbol, v any) (any, error)

// Registry associates tag symbols with reader functions and is the context
// object consulted by Decode. It is safe for concurrent use: registration
// swaps a full copy of the mapping atomically and each decode call works on
// the snapshot taken at its start, so a registration racing with a decode is
// either fully visible to it or not at all.
type Registry struct {
	readers atomic.Pointer[map[Symbol]ReadHandler]
	mu      sync.Mutex
}

// NewRegistry creates a new Registry with the built-in bin and uri readers
// pre-registered.
func NewRegistry(opts ...func(*Registry)) *Registry {
	r := &Registry{}
	r.store(builtinReaders())
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithoutBuiltinReaders drops the pre-registered readers.
func WithoutBuiltinReaders() func(*Registry) {
	return func(r *Registry) {
		r.store(map[Symbol]ReadHandler{})
	}
}

// WithReaders registers all entries of m.
func WithReaders(m map[Symbol]ReadHandler) func(*Registry) {
	return func(r *Registry) {
		for tag, fn := range m {
			r.MustRegisterReader(tag, fn)
		}
	}
}

// RegisterReader associates a tag with a reader, overwriting any previous
// reader for the same tag. It returns ErrInvalidTag without mutating the
// registry if tag is not a valid symbol. The new reader is visible to decode
// calls that start after registration, never to ones already in flight.
func (r *Registry) RegisterReader(tag Symbol, fn ReadHandler) error {
	if !IsValidSymbol(string(tag)) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m := maps.Clone(*r.readers.Load())
	m[tag] = fn
	r.store(m)
	return nil
}

// MustRegisterReader is like RegisterReader but panics if the tag is invalid.
func (r *Registry) MustRegisterReader(tag Symbol, fn ReadHandler) {
	if err := r.RegisterReader(tag, fn); err != nil {
		panic(err)
	}
}

// Readers returns a copy of the current tag-to-reader mapping.
func (r *Registry) Readers() map[Symbol]ReadHandler {
	return maps.Clone(*r.readers.Load())
}

func (r *Registry) store(m map[Symbol]ReadHandler) {
	r.readers.Store(&m)
}

type decodeOptions struct {
	readers       map[Symbol]ReadHandler
	defaultReader DefaultReadHandler
}

// DecodeOption configures a single decode call.
type DecodeOption func(*decodeOptions)

// WithReader adds a reader for this call only, taking precedence over a
// registered reader for the same tag.
func WithReader(tag Symbol, fn ReadHandler) DecodeOption {
	return func(o *decodeOptions) {
		if o.readers == nil {
			o.readers = map[Symbol]ReadHandler{}
		}
		o.readers[tag] = fn
	}
}

// WithDefaultReader replaces the handler for tags with no matching reader.
// The default constructs a GenericTagged value.
func WithDefaultReader(fn DefaultReadHandler) DecodeOption {
	return func(o *decodeOptions) {
		o.defaultReader = fn
	}
}

// WithoutDefaultReader makes unmatched tags fail with ErrUnknownTag instead of
// degrading to GenericTagged.
func WithoutDefaultReader() DecodeOption {
	return func(o *decodeOptions) {
		o.defaultReader = nil
	}
}

// Decode reads one value from src. The effective reader map is the registry
// snapshot taken now, merged under any per-call readers.
func (r *Registry) Decode(src io.Reader, opts ...DecodeOption) (any, error) {
	return r.decode(src, opts)
}

// DecodeString reads one value from s with the same merge semantics as Decode.
func (r *Registry) DecodeString(s string, opts ...DecodeOption) (any, error) {
	return r.decode(strings.NewReader(s), opts)
}

func (r *Registry) decode(src io.Reader, opts []DecodeOption) (any, error) {
	o := decodeOptions{defaultReader: readGeneric}
	for _, opt := range opts {
		opt(&o)
	}

	effective := maps.Clone(defaultDataReaders)
	maps.Copy(effective, *r.readers.Load())
	maps.Copy(effective, o.readers)

	rd := newReader(src, effective, o.defaultReader)
	return rd.read()
}

// readGeneric is the stock default reader.
func readGeneric(tag Symbol, v any) (any, error) {
	g, err := NewGenericTagged(tag, v)
	if err != nil {
		return nil, err
	}
	return g, nil
}
