package testutil

import (
	"net/url"
	"time"

	"github.com/ehsanranjbar/ednutils"
	"github.com/google/uuid"
)

// SampleValues returns one or more representatives of every priority class,
// already in comparator order. Tests shuffle or pair them as needed.
func SampleValues() []any {
	return []any{
		nil,
		false,
		true,
		int64(-3),
		int64(0),
		3.5,
		int64(42),
		ednutils.Char('a'),
		ednutils.Char('z'),
		"abc",
		"abd",
		ednutils.Keyword("alpha"),
		ednutils.Keyword("beta"),
		ednutils.Symbol("foo"),
		ednutils.Symbol("foo/bar"),
		ednutils.List{int64(1), int64(2)},
		ednutils.Vector{int64(1), int64(2)},
		ednutils.Set{int64(1)},
		ednutils.NewMap(ednutils.MapEntry{Key: ednutils.Keyword("a"), Value: int64(1)}),
		time.Date(2021, 6, 15, 12, 30, 45, 500_000_000, time.UTC),
		MustURL("http://example.com/a?b=1"),
		uuid.MustParse("f81d4fae-7dec-11d0-a765-00a0c91e6bf6"),
	}
}

// MustURL parses a URL or panics.
func MustURL(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}
