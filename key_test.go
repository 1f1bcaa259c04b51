package county

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	k, err := ParseKey("a.b.c", DefaultDelimiter)
	require.NoError(t, err)
	assert.Equal(t, CounterKey{"a", "b", "c"}, k)
	assert.Equal(t, "a.b.c", k.String())
	assert.Equal(t, "a/b/c", k.Format('/'))

	k, err = ParseKey("a/b.c", '/')
	require.NoError(t, err)
	assert.Equal(t, CounterKey{"a", "b.c"}, k)

	k, err = ParseKey("a.*.c", DefaultDelimiter)
	require.NoError(t, err)
	assert.True(t, k.HasWildcard())
}

func TestParseKeyMalformed(t *testing.T) {
	tests := map[string]int{
		"":      0,
		".a":    0,
		"a.":    1,
		"a..b":  1,
		"a.b..": 2,
	}
	for s, idx := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := ParseKey(s, DefaultDelimiter)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedPath))
			assert.Equal(t, ErrMalformedPath, errors.Cause(err))

			var mp *MalformedPathError
			require.True(t, errors.As(err, &mp))
			assert.Equal(t, s, mp.Path)
			assert.Equal(t, idx, mp.Index)
		})
	}
	assert.Panics(t, func() { MustParseKey("a..b", DefaultDelimiter) })
}

func TestKeys(t *testing.T) {
	k, err := Keys(DefaultDelimiter, "a.b", "c")
	require.NoError(t, err)
	assert.Equal(t, CounterKey{"a", "b", "c"}, k)

	k, err = Keys(DefaultDelimiter)
	require.NoError(t, err)
	assert.True(t, k.IsEmpty())

	_, err = Keys(DefaultDelimiter, "a", "b..c")
	assert.True(t, errors.Is(err, ErrMalformedPath))
}

func TestCounterKeyAppendDoesNotAlias(t *testing.T) {
	k := make(CounterKey, 2, 8)
	k[0], k[1] = "a", "b"
	c := k.Append("c")
	d := k.Append("d")
	assert.Equal(t, CounterKey{"a", "b", "c"}, c)
	assert.Equal(t, CounterKey{"a", "b", "d"}, d)
	assert.Equal(t, CounterKey{"a", "b"}, k)
}

func TestCounterKeyAccessors(t *testing.T) {
	k := MustParseKey("a.b.c", DefaultDelimiter)
	assert.Equal(t, "a", k.Head())
	assert.Equal(t, CounterKey{"b", "c"}, k.Tail())
	assert.Equal(t, "c", k.Last())
	assert.True(t, k.Equal(CounterKey{"a", "b", "c"}))
	assert.False(t, k.Equal(CounterKey{"a", "b"}))
	assert.False(t, k.Equal(CounterKey{"a", "b", "d"}))
	assert.False(t, k.HasWildcard())

	var empty CounterKey
	assert.Equal(t, "", empty.Head())
	assert.Equal(t, "", empty.Last())
	assert.Nil(t, empty.Tail())
	assert.Equal(t, "", empty.String())
}
