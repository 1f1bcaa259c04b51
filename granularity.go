package county

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Granularity is the width of the time buckets a Counter accumulates into.
type Granularity int

const (
	Millis Granularity = iota
	Second
	Minute
	Hour
	Day
	Month
	Year
)

var granularityNames = [...]string{
	Millis: "millis",
	Second: "second",
	Minute: "minute",
	Hour:   "hour",
	Day:    "day",
	Month:  "month",
	Year:   "year",
}

// Granularities returns all granularities ordered by bucket width.
func Granularities() []Granularity {
	return []Granularity{Millis, Second, Minute, Hour, Day, Month, Year}
}

func (g Granularity) valid() bool {
	return Millis <= g && g <= Year
}

func (g Granularity) String() string {
	if g.valid() {
		return granularityNames[g]
	}
	return "Granularity(" + strconv.Itoa(int(g)) + ")"
}

// ParseGranularity parses a granularity name such as "minute" or "days".
func ParseGranularity(s string) (Granularity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name != "millis" {
		name = strings.TrimSuffix(name, "s")
	}
	for g, n := range granularityNames {
		if n == name {
			return Granularity(g), nil
		}
	}
	return Millis, errors.Wrapf(ErrInvalidGranularity, "%q", s)
}

// Decode implements envconfig.Decoder.
func (g *Granularity) Decode(value string) error {
	v, err := ParseGranularity(value)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// fixed widths in milliseconds for the calendar independent granularities
var granularityWidth = [...]int64{
	Millis: 1,
	Second: int64(time.Second / time.Millisecond),
	Minute: int64(time.Minute / time.Millisecond),
	Hour:   int64(time.Hour / time.Millisecond),
	Day:    int64(24 * time.Hour / time.Millisecond),
}

// minKeyTime is the earliest instant representable in epoch millis.
var minKeyTime = time.UnixMilli(math.MinInt64).UTC()

// Truncate returns the TimeKey of the bucket containing the epoch
// millisecond timestamp. Truncation is done on the UTC calendar; negative
// timestamps round toward the past. Timestamps in the first, partial
// bucket above math.MinInt64 saturate to the first bucket start that is
// representable.
func (g Granularity) Truncate(millis int64) TimeKey {
	switch g {
	case Month, Year:
		t := time.UnixMilli(millis).UTC()
		month := t.Month()
		if g == Year {
			month = time.January
		}
		start := time.Date(t.Year(), month, 1, 0, 0, 0, 0, time.UTC)
		if start.Before(minKeyTime) {
			if g == Year {
				start = start.AddDate(1, 0, 0)
			} else {
				start = start.AddDate(0, 1, 0)
			}
		}
		return TimeKey{g: g, millis: start.UnixMilli()}
	}
	if !g.valid() {
		g = Millis
	}
	w := granularityWidth[g]
	q := floorDiv(millis, w)
	if lo := math.MinInt64 / w; q < lo {
		q = lo
	}
	return TimeKey{g: g, millis: q * w}
}

// TruncateTime is Truncate for a time.Time.
func (g Granularity) TruncateTime(t time.Time) TimeKey {
	return g.Truncate(t.UnixMilli())
}

// Range returns the inclusive key range covering start and end.
func (g Granularity) Range(start, end time.Time) (TimeKey, TimeKey) {
	return g.TruncateTime(start), g.TruncateTime(end)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// A TimeKey identifies a bucket: a timestamp truncated to a granularity.
// TimeKeys are comparable and may be used as map keys.
type TimeKey struct {
	g      Granularity
	millis int64
}

// Granularity returns the granularity the key was truncated to.
func (k TimeKey) Granularity() Granularity { return k.g }

// Millis returns the truncated epoch milliseconds.
func (k TimeKey) Millis() int64 { return k.millis }

// Time returns the start of the bucket in UTC.
func (k TimeKey) Time() time.Time {
	return time.UnixMilli(k.millis).UTC()
}

// Compare orders keys by their truncated value.
func (k TimeKey) Compare(o TimeKey) int {
	switch {
	case k.millis < o.millis:
		return -1
	case k.millis > o.millis:
		return 1
	}
	return 0
}

func (k TimeKey) Before(o TimeKey) bool { return k.millis < o.millis }
func (k TimeKey) After(o TimeKey) bool  { return k.millis > o.millis }

// Equal reports whether both keys have the same granularity and value.
func (k TimeKey) Equal(o TimeKey) bool { return k == o }

var timeKeyLayouts = [...]string{
	Millis: "2006-01-02T15:04:05.000",
	Second: "2006-01-02T15:04:05",
	Minute: "2006-01-02T15:04",
	Hour:   "2006-01-02T15",
	Day:    "2006-01-02",
	Month:  "2006-01",
	Year:   "2006",
}

func (k TimeKey) String() string {
	g := k.g
	if !g.valid() {
		g = Millis
	}
	return k.Time().Format(timeKeyLayouts[g])
}
