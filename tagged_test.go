package ednutils_test

import (
	"testing"

	"github.com/ehsanranjbar/ednutils"
	"github.com/stretchr/testify/require"
)

// temperature is a sample owned type carrying the Tagged capability.
type temperature float64

func (c temperature) Tag() ednutils.Symbol { return "celsius" }
func (c temperature) Value() any           { return float64(c) }

func TestGenericTagged(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		g, err := ednutils.NewGenericTagged("my.ns/thing", int64(1))
		require.NoError(t, err)
		require.Equal(t, ednutils.Symbol("my.ns/thing"), g.Tag())
		require.Equal(t, int64(1), g.Value())
	})

	t.Run("InvalidTag", func(t *testing.T) {
		_, err := ednutils.NewGenericTagged("not-a-symbol-shape!!", int64(1))
		require.ErrorIs(t, err, ednutils.ErrInvalidTag)
	})

	t.Run("MustPanics", func(t *testing.T) {
		require.Panics(t, func() {
			ednutils.MustGenericTagged("", nil)
		})
	})
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    ednutils.Tagged
		expected string
	}{
		{"Generic", ednutils.MustGenericTagged("foo", int64(42)), "#foo 42"},
		{"GenericCollection", ednutils.MustGenericTagged("point", ednutils.Vector{int64(1), int64(2)}), "#point [1 2]"},
		{"Capability", temperature(21.5), "#celsius 21.5"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := ednutils.Encode(test.input)
			require.NoError(t, err)
			require.Equal(t, test.expected, s)
		})
	}
}

func TestGenericTaggedRoundTrip(t *testing.T) {
	reg := ednutils.NewRegistry()

	src := "#unregistered-tag {:a [1 2], :b \"x\"}"
	v, err := reg.DecodeString(src)
	require.NoError(t, err)

	g, ok := v.(ednutils.GenericTagged)
	require.True(t, ok)
	require.Equal(t, src, ednutils.MustEncode(g))
}
