package ednutils_test

import (
	"testing"

	"github.com/ehsanranjbar/ednutils"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := ednutils.NewMap()

	t.Run("SetAndGet", func(t *testing.T) {
		m.Set(ednutils.Keyword("a"), int64(1))
		m.Set(ednutils.Keyword("b"), int64(2))

		v, ok := m.Get(ednutils.Keyword("a"))
		require.True(t, ok)
		require.Equal(t, int64(1), v)
		require.Equal(t, 2, m.Len())
	})

	t.Run("OverwriteKeepsPosition", func(t *testing.T) {
		m.Set(ednutils.Keyword("a"), int64(10))
		require.Equal(t, 2, m.Len())

		var keys []any
		for k := range m.Entries() {
			keys = append(keys, k)
		}
		require.Equal(t, []any{ednutils.Keyword("a"), ednutils.Keyword("b")}, keys)
	})

	t.Run("CollectionKeys", func(t *testing.T) {
		m := ednutils.NewMap()
		m.Set(ednutils.Vector{int64(1), int64(2)}, "v")

		v, ok := m.Get(ednutils.Vector{int64(1), int64(2)})
		require.True(t, ok)
		require.Equal(t, "v", v)
	})

	t.Run("Missing", func(t *testing.T) {
		_, ok := m.Get(ednutils.Keyword("nope"))
		require.False(t, ok)
	})

	t.Run("NilMapIsEmpty", func(t *testing.T) {
		var nm *ednutils.Map
		require.Zero(t, nm.Len())

		_, ok := nm.Get(ednutils.Keyword("a"))
		require.False(t, ok)

		for range nm.Entries() {
			t.Fatal("nil map yielded an entry")
		}

		require.True(t, ednutils.Equal(nm, ednutils.NewMap()))
		require.False(t, ednutils.Equal(nm, ednutils.NewMap(
			ednutils.MapEntry{Key: ednutils.Keyword("a"), Value: int64(1)},
		)))
	})
}

func TestSet(t *testing.T) {
	s := ednutils.Set{int64(1), "a", ednutils.Vector{int64(2)}}

	t.Run("Contains", func(t *testing.T) {
		require.True(t, s.Contains(int64(1)))
		require.True(t, s.Contains(ednutils.Vector{int64(2)}))
		require.False(t, s.Contains(int64(2)))
	})

	t.Run("EqualIgnoresOrder", func(t *testing.T) {
		require.True(t, ednutils.Equal(s, ednutils.Set{"a", ednutils.Vector{int64(2)}, int64(1)}))
		require.False(t, ednutils.Equal(s, ednutils.Set{int64(1), "a"}))
	})
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     any
		expected bool
	}{
		{"Nils", nil, nil, true},
		{"NilVsFalse", nil, false, false},
		{"Ints", int64(3), int64(3), true},
		{"IntVsFloat", int64(3), 3.0, false},
		{"Strings", "a", "a", true},
		{"Vectors", ednutils.Vector{int64(1)}, ednutils.Vector{int64(1)}, true},
		{"ListVsVector", ednutils.List{int64(1)}, ednutils.Vector{int64(1)}, false},
		{"Tagged", ednutils.MustGenericTagged("foo", int64(1)), ednutils.MustGenericTagged("foo", int64(1)), true},
		{"TaggedDifferentTag", ednutils.MustGenericTagged("foo", int64(1)), ednutils.MustGenericTagged("bar", int64(1)), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, ednutils.Equal(test.a, test.b))
			require.Equal(t, test.expected, ednutils.Equal(test.b, test.a))
		})
	}
}

func TestIsValidSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"foo", true},
		{"foo-bar", true},
		{"foo.bar", true},
		{"my.ns/name", true},
		{"-dashed", true},
		{"unregistered-tag", true},
		{"a1", true},
		{"", false},
		{"1a", false},
		{"-1a", false},
		{"not-a-symbol-shape!!", false},
		{"a/b/c", false},
		{"/leading", false},
		{"trailing/", false},
		{"sp ace", false},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			require.Equal(t, test.expected, ednutils.IsValidSymbol(test.input), "IsValidSymbol(%q)", test.input)
		})
	}
}
