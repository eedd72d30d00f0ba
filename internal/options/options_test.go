package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type limits struct {
	maxSize int
	name    string
}

var errNegative = errors.New("size cannot be negative")

func withMaxSize(n int) Option[*limits] {
	return New(func(l *limits) error {
		if n < 0 {
			return errNegative
		}
		l.maxSize = n

		return nil
	})
}

func withName(name string) Option[*limits] {
	return NoError(func(l *limits) {
		l.name = name
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		l := &limits{}
		err := Apply(l, withMaxSize(10), withName("a"), withMaxSize(20))
		require.NoError(t, err)
		require.Equal(t, 20, l.maxSize)
		require.Equal(t, "a", l.name)
	})

	t.Run("stops at first error", func(t *testing.T) {
		l := &limits{}
		err := Apply(l, withMaxSize(5), withMaxSize(-1), withName("skipped"))
		require.ErrorIs(t, err, errNegative)
		require.Equal(t, 5, l.maxSize)
		require.Empty(t, l.name)
	})

	t.Run("skips nil options", func(t *testing.T) {
		l := &limits{}
		require.NoError(t, Apply(l, nil, withName("b")))
		require.Equal(t, "b", l.name)
	})

	t.Run("no options", func(t *testing.T) {
		l := &limits{maxSize: 3}
		require.NoError(t, Apply(l))
		require.Equal(t, 3, l.maxSize)
	})
}

func TestConcat(t *testing.T) {
	base := []Option[*limits]{withMaxSize(1)}
	merged := Concat(base, withMaxSize(2))
	require.Len(t, base, 1)
	require.Len(t, merged, 2)

	l := &limits{}
	require.NoError(t, Apply(l, merged...))
	require.Equal(t, 2, l.maxSize)
}
