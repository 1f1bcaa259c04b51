package county

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eknet/county/mock"
)

func TestAggregateMutationsFanOut(t *testing.T) {
	tree := newTestTree()
	tree.MustGet("a.x")
	tree.MustGet("a.y")

	all := tree.MustGet("a.*")
	all.Increment()
	all.Add(2)
	all.Decrement()

	mock.AssertTotalCount(t, tree.MustGet("a.x"), 2)
	mock.AssertTotalCount(t, tree.MustGet("a.y"), 2)
	mock.AssertTotalCount(t, all, 4)

	k := Hour.TruncateTime(testStart)
	all.AddAt(k, 5)
	assert.Equal(t, int64(10), all.CountIn(k, k))

	all.Reset()
	mock.AssertTotalCount(t, tree.MustGet("a"), 0)
}

func TestAggregateGetDoesNotCreate(t *testing.T) {
	tree := newTestTree()
	tree.MustGet("a.x.c").Increment()
	tree.MustGet("a.y")

	all := tree.MustGet("a.*")
	c, err := all.Get("c")
	require.NoError(t, err)
	mock.AssertTotalCount(t, c, 1)
	assert.Equal(t, []CounterKey{{"a", "x", "c"}}, Members(c))
	assert.Equal(t, CounterKey{"a", "*", "c"}, c.Path())
	mock.AssertNoChildren(t, tree.MustGet("a.y"))

	_, err = all.Get("c..d")
	assert.True(t, errors.Is(err, ErrMalformedPath))
}

func TestAggregateChildren(t *testing.T) {
	tree := newTestTree()
	tree.MustGet("a.x.c")
	tree.MustGet("a.x.d")
	tree.MustGet("a.y.c")
	tree.MustGet("a.y.e")

	mock.AssertChildren(t, tree.MustGet("a.*"), "c", "d", "e")
	mock.AssertChildren(t, tree.MustGet("a.*").TransformKey(strings.ToUpper), "C", "D", "E")
	mock.AssertChildren(t, tree.MustGet("a.*").FilterKey(func(n string) bool { return n == "c" }), "c")
}

func TestAggregateTimes(t *testing.T) {
	clock := mock.NewClock(testStart)
	tree := newTestTree(WithTreeClock(clock.Now))
	x := tree.MustGet("a.x")
	clock.Advance(time.Minute)
	y := tree.MustGet("a.y")
	y.Increment()
	clock.Advance(time.Minute)
	x.Reset()

	all := tree.MustGet("a.*")
	assert.Equal(t, clock.Millis(), all.ResetTime())
	assert.Equal(t, testStart.Add(time.Minute).UnixMilli(), all.LastAccess())
	assert.Equal(t, []TimeKey{Minute.TruncateTime(testStart.Add(time.Minute))}, all.Keys())
}

func TestEmptyAggregate(t *testing.T) {
	tree := newTestTree()
	none := tree.MustGet("*")

	mock.AssertTotalCount(t, none, 0)
	assert.Equal(t, int64(0), none.CountIn(Minute.Truncate(0), Minute.Truncate(1<<40)))
	assert.Equal(t, int64(0), none.ResetTime())
	assert.Equal(t, int64(0), none.LastAccess())
	assert.Empty(t, none.Keys())
	mock.AssertNoChildren(t, none)

	deeper, err := none.Get("a.b")
	require.NoError(t, err)
	mock.AssertTotalCount(t, deeper, 0)
	mock.AssertNoChildren(t, tree)

	none.Increment()
	mock.AssertTotalCount(t, tree, 0)
}
