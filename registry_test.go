package ednutils_test

import (
	"io"
	"sync"
	"testing"

	"github.com/ehsanranjbar/ednutils"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterReader(t *testing.T) {
	t.Run("Overwrite", func(t *testing.T) {
		reg := ednutils.NewRegistry()
		reg.MustRegisterReader("foo", func(v any) (any, error) { return "first", nil })
		reg.MustRegisterReader("foo", func(v any) (any, error) { return "second", nil })

		v, err := reg.DecodeString("#foo 1")
		require.NoError(t, err)
		require.Equal(t, "second", v)
	})

	t.Run("InvalidTag", func(t *testing.T) {
		reg := ednutils.NewRegistry()
		err := reg.RegisterReader("not-a-symbol-shape!!", func(v any) (any, error) { return nil, nil })
		require.ErrorIs(t, err, ednutils.ErrInvalidTag)

		// The failed registration must not have touched the registry; the
		// same tag name read back still falls through to unknown handling.
		_, err = reg.DecodeString("#not-a-symbol-shape 1", ednutils.WithoutDefaultReader())
		require.ErrorIs(t, err, ednutils.ErrUnknownTag)
	})

	t.Run("ConstructorReaders", func(t *testing.T) {
		reg := ednutils.NewRegistry(ednutils.WithReaders(map[ednutils.Symbol]ednutils.ReadHandler{
			"celsius": func(v any) (any, error) { return v, nil },
		}))

		v, err := reg.DecodeString("#celsius 21")
		require.NoError(t, err)
		require.Equal(t, int64(21), v)
	})

	t.Run("WithoutBuiltinReaders", func(t *testing.T) {
		reg := ednutils.NewRegistry(ednutils.WithoutBuiltinReaders())

		v, err := reg.DecodeString(`#bin "AAEC"`)
		require.NoError(t, err)
		require.Equal(t, ednutils.MustGenericTagged("bin", "AAEC"), v)
	})
}

func TestDecodeOptions(t *testing.T) {
	t.Run("PerCallReaderWins", func(t *testing.T) {
		reg := ednutils.NewRegistry()
		reg.MustRegisterReader("foo", func(v any) (any, error) { return "registered", nil })

		v, err := reg.DecodeString("#foo 1",
			ednutils.WithReader("foo", func(v any) (any, error) { return "override", nil }))
		require.NoError(t, err)
		require.Equal(t, "override", v)

		// The override is gone on the next call.
		v, err = reg.DecodeString("#foo 1")
		require.NoError(t, err)
		require.Equal(t, "registered", v)
	})

	t.Run("UnknownTagFallsBackToGeneric", func(t *testing.T) {
		reg := ednutils.NewRegistry()

		v, err := reg.DecodeString("#unregistered-tag 42")
		require.NoError(t, err)

		g, ok := v.(ednutils.GenericTagged)
		require.True(t, ok)
		require.Equal(t, ednutils.Symbol("unregistered-tag"), g.Tag())
		require.Equal(t, int64(42), g.Value())

		require.Equal(t, "#unregistered-tag 42", ednutils.MustEncode(g))
	})

	t.Run("WithDefaultReader", func(t *testing.T) {
		reg := ednutils.NewRegistry()

		v, err := reg.DecodeString("#anything 1",
			ednutils.WithDefaultReader(func(tag ednutils.Symbol, v any) (any, error) {
				return tag, nil
			}))
		require.NoError(t, err)
		require.Equal(t, ednutils.Symbol("anything"), v)
	})

	t.Run("WithoutDefaultReader", func(t *testing.T) {
		reg := ednutils.NewRegistry()

		_, err := reg.DecodeString("#anything 1", ednutils.WithoutDefaultReader())
		require.ErrorIs(t, err, ednutils.ErrUnknownTag)
	})
}

// chunkedReader feeds the source in fixed chunks and runs a callback before
// delivering the final chunk, so a registration can be interleaved with an
// in-flight decode.
type chunkedReader struct {
	chunks  []string
	between func()
}

func (s *chunkedReader) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, io.EOF
	}
	if len(s.chunks) == 1 && s.between != nil {
		s.between()
		s.between = nil
	}
	chunk := s.chunks[0]
	n := copy(p, chunk)
	if n == len(chunk) {
		s.chunks = s.chunks[1:]
	} else {
		s.chunks[0] = chunk[n:]
	}
	return n, nil
}

func TestRegistrySnapshotIsolation(t *testing.T) {
	reg := ednutils.NewRegistry()
	reg.MustRegisterReader("foo", func(v any) (any, error) { return "D1", nil })

	src := &chunkedReader{chunks: []string{"#foo ", "1"}}
	src.between = func() {
		reg.MustRegisterReader("foo", func(v any) (any, error) { return "D2", nil })
	}

	v, err := reg.Decode(src)
	require.NoError(t, err)
	require.Equal(t, "D1", v, "in-flight decode must keep the snapshot taken at call start")

	// A decode starting after the registration sees D2.
	v, err = reg.DecodeString("#foo 1")
	require.NoError(t, err)
	require.Equal(t, "D2", v)
}

func TestRegistryConcurrency(t *testing.T) {
	reg := ednutils.NewRegistry()
	reg.MustRegisterReader("foo", func(v any) (any, error) { return "ok", nil })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.MustRegisterReader("foo", func(v any) (any, error) { return "ok", nil })
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v, err := reg.DecodeString("#foo 1")
				require.NoError(t, err)
				require.Equal(t, "ok", v)
			}
		}()
	}
	wg.Wait()
}

func TestRegistryReaders(t *testing.T) {
	reg := ednutils.NewRegistry()
	require.Contains(t, reg.Readers(), ednutils.TagBin)
	require.Contains(t, reg.Readers(), ednutils.TagURI)

	// Mutating the returned copy must not affect the registry.
	m := reg.Readers()
	delete(m, ednutils.TagBin)
	require.Contains(t, reg.Readers(), ednutils.TagBin)
}
