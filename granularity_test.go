package county

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	ts := time.Date(2013, time.March, 25, 19, 21, 34, 567*int(time.Millisecond), time.UTC)
	tests := map[Granularity]time.Time{
		Millis: ts,
		Second: time.Date(2013, time.March, 25, 19, 21, 34, 0, time.UTC),
		Minute: time.Date(2013, time.March, 25, 19, 21, 0, 0, time.UTC),
		Hour:   time.Date(2013, time.March, 25, 19, 0, 0, 0, time.UTC),
		Day:    time.Date(2013, time.March, 25, 0, 0, 0, 0, time.UTC),
		Month:  time.Date(2013, time.March, 1, 0, 0, 0, 0, time.UTC),
		Year:   time.Date(2013, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for g, exp := range tests {
		t.Run(g.String(), func(t *testing.T) {
			k := g.TruncateTime(ts)
			assert.Equal(t, g, k.Granularity())
			assert.Equal(t, exp.UnixMilli(), k.Millis())
			assert.True(t, exp.Equal(k.Time()))
		})
	}
}

func TestTruncateCalendar(t *testing.T) {
	endOfLeapFeb := time.Date(2012, time.February, 29, 23, 59, 59, 999*int(time.Millisecond), time.UTC)
	assert.Equal(t,
		time.Date(2012, time.February, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Month.TruncateTime(endOfLeapFeb).Millis())
	assert.Equal(t,
		time.Date(2012, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Month.TruncateTime(endOfLeapFeb.Add(time.Millisecond)).Millis())
	assert.Equal(t,
		time.Date(2013, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Year.TruncateTime(time.Date(2013, time.December, 31, 23, 0, 0, 0, time.UTC)).Millis())
}

func TestTruncateNegative(t *testing.T) {
	const day = int64(24 * time.Hour / time.Millisecond)
	assert.Equal(t, int64(-1), Millis.Truncate(-1).Millis())
	assert.Equal(t, int64(-1000), Second.Truncate(-1).Millis())
	assert.Equal(t, int64(-60000), Minute.Truncate(-1).Millis())
	assert.Equal(t, -day, Day.Truncate(-1).Millis())
	assert.Equal(t, -31*day, Month.Truncate(-1).Millis())
	assert.Equal(t, -365*day, Year.Truncate(-1).Millis())
	assert.Equal(t, int64(0), Second.Truncate(999).Millis())
}

func TestTruncateMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(25032013))
	for _, g := range Granularities() {
		prev := int64(-5 * 365 * 24 * 3600 * 1000)
		for i := 0; i < 2000; i++ {
			next := prev + r.Int63n(40*24*3600*1000)
			a, b := g.Truncate(prev), g.Truncate(next)
			if a.After(b) {
				t.Fatalf("%s: truncate(%d)=%d > truncate(%d)=%d", g, prev, a.Millis(), next, b.Millis())
			}
			prev = next
		}
	}
}

func TestTruncateMonotonicAtLimits(t *testing.T) {
	points := []int64{
		math.MinInt64,
		math.MinInt64 + 1,
		math.MinInt64 + 40*24*3600*1000,
		-1,
		0,
		math.MaxInt64 - 1,
		math.MaxInt64,
	}
	for _, g := range Granularities() {
		for i := 1; i < len(points); i++ {
			a, b := g.Truncate(points[i-1]), g.Truncate(points[i])
			if a.After(b) {
				t.Fatalf("%s: truncate(%d)=%d > truncate(%d)=%d", g, points[i-1], a.Millis(), points[i], b.Millis())
			}
		}
		// truncating a bucket start is the identity
		k := g.Truncate(math.MinInt64)
		assert.Equal(t, k, g.Truncate(k.Millis()), "%s", g)
	}
}

func TestGranularityOrder(t *testing.T) {
	gs := Granularities()
	for i := 1; i < len(gs); i++ {
		assert.Less(t, int(gs[i-1]), int(gs[i]))
	}
}

func TestParseGranularity(t *testing.T) {
	tests := map[string]Granularity{
		"millis":  Millis,
		"second":  Second,
		"Seconds": Second,
		" minute": Minute,
		"HOUR":    Hour,
		"days":    Day,
		"month":   Month,
		"years":   Year,
	}
	for s, exp := range tests {
		g, err := ParseGranularity(s)
		require.NoError(t, err, s)
		assert.Equal(t, exp, g, s)
	}

	_, err := ParseGranularity("fortnight")
	assert.True(t, errors.Is(err, ErrInvalidGranularity))
}

func TestGranularityDecode(t *testing.T) {
	var g Granularity
	require.NoError(t, g.Decode("day"))
	assert.Equal(t, Day, g)
	assert.Error(t, g.Decode("nope"))
	assert.Equal(t, Day, g)
}

func TestGranularityString(t *testing.T) {
	assert.Equal(t, "minute", Minute.String())
	assert.Equal(t, "Granularity(42)", Granularity(42).String())
}

func TestTimeKey(t *testing.T) {
	ts := time.Date(2013, time.March, 25, 19, 21, 34, 0, time.UTC)
	assert.Equal(t, "2013-03-25T19:21", Minute.TruncateTime(ts).String())
	assert.Equal(t, "2013-03", Month.TruncateTime(ts).String())
	assert.Equal(t, "2013-03-25T19:21:34.000", Millis.TruncateTime(ts).String())

	a, b := Minute.Range(ts, ts.Add(time.Hour))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))

	// same instant, different granularity: ordered equal but not Equal
	m, h := Minute.TruncateTime(ts.Truncate(time.Hour)), Hour.TruncateTime(ts)
	assert.Equal(t, 0, m.Compare(h))
	assert.False(t, m.Equal(h))
	assert.True(t, m.Equal(Minute.TruncateTime(ts.Truncate(time.Hour))))
}
