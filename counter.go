package county

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// A Counter accumulates integer values into time buckets.
//
// All methods are safe for concurrent use. Times are epoch milliseconds.
type Counter interface {
	// AddAt adds value to the bucket identified by key. Negative values
	// decrement.
	AddAt(key TimeKey, value int64)

	// Add adds value to the bucket for the current time at the counter's
	// granularity.
	Add(value int64)

	// Increment adds 1.
	Increment()

	// Decrement adds -1.
	Decrement()

	// TotalCount is the sum of all buckets.
	TotalCount() int64

	// CountIn sums the buckets in the inclusive range [start, end]. An empty
	// or inverted range yields 0.
	CountIn(start, end TimeKey) int64

	// Reset removes all buckets and records the reset time.
	Reset()

	// ResetTime returns the time of the last reset, or of construction.
	ResetTime() int64

	// LastAccess returns the time of the last mutation.
	LastAccess() int64

	// Keys returns the bucket keys in ascending order.
	Keys() []TimeKey

	// Buckets returns the bucket keys and values in ascending key order.
	Buckets() []Bucket
}

// A Bucket is a single key and its accumulated value.
type Bucket struct {
	Key   TimeKey
	Value int64
}

// A CounterOption configures a Counter built by NewCounter.
type CounterOption interface {
	apply(*counter)
}

type counterOptionFunc func(*counter)

func (f counterOptionFunc) apply(c *counter) { f(c) }

// WithClock sets the clock a counter uses for Add and its timestamps,
// time.Now is used otherwise.
func WithClock(now func() time.Time) CounterOption {
	return counterOptionFunc(func(c *counter) {
		if now != nil {
			c.now = now
		}
	})
}

// NewCounter returns a Counter bucketing values at granularity g.
func NewCounter(g Granularity, opts ...CounterOption) Counter {
	return newCounter(g, opts...)
}

func newCounter(g Granularity, opts ...CounterOption) *counter {
	c := &counter{
		granularity: g,
		now:         time.Now,
		buckets:     new(sync.Map),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	now := c.now().UnixMilli()
	c.resetTime = now
	c.lastAccess = now
	return c
}

type counter struct {
	granularity Granularity
	now         func() time.Time

	// mu is held shared while adding and exclusively while swapping the
	// bucket map on reset
	mu      sync.RWMutex
	buckets *sync.Map // map[TimeKey]*int64

	resetTime  int64
	lastAccess int64
}

func (c *counter) bucket(key TimeKey) *int64 {
	if v, ok := c.buckets.Load(key); ok {
		return v.(*int64)
	}
	v, _ := c.buckets.LoadOrStore(key, new(int64))
	return v.(*int64)
}

func (c *counter) AddAt(key TimeKey, value int64) {
	c.mu.RLock()
	atomic.AddInt64(c.bucket(key), value)
	c.mu.RUnlock()
	atomic.StoreInt64(&c.lastAccess, c.now().UnixMilli())
}

func (c *counter) Add(value int64) {
	c.AddAt(c.granularity.TruncateTime(c.now()), value)
}

func (c *counter) Increment() { c.Add(1) }

func (c *counter) Decrement() { c.Add(-1) }

func (c *counter) snapshot() *sync.Map {
	c.mu.RLock()
	m := c.buckets
	c.mu.RUnlock()
	return m
}

func (c *counter) TotalCount() int64 {
	var sum int64
	c.snapshot().Range(func(_, v interface{}) bool {
		sum += atomic.LoadInt64(v.(*int64))
		return true
	})
	return sum
}

func (c *counter) CountIn(start, end TimeKey) int64 {
	if start.After(end) {
		return 0
	}
	var sum int64
	c.snapshot().Range(func(k, v interface{}) bool {
		key := k.(TimeKey)
		if !key.Before(start) && !key.After(end) {
			sum += atomic.LoadInt64(v.(*int64))
		}
		return true
	})
	return sum
}

func (c *counter) Reset() {
	c.mu.Lock()
	c.buckets = new(sync.Map)
	c.mu.Unlock()
	atomic.StoreInt64(&c.resetTime, c.now().UnixMilli())
}

func (c *counter) ResetTime() int64 { return atomic.LoadInt64(&c.resetTime) }

func (c *counter) LastAccess() int64 { return atomic.LoadInt64(&c.lastAccess) }

func (c *counter) Buckets() []Bucket {
	var ret []Bucket
	c.snapshot().Range(func(k, v interface{}) bool {
		ret = append(ret, Bucket{Key: k.(TimeKey), Value: atomic.LoadInt64(v.(*int64))})
		return true
	})
	sortBuckets(ret)
	return ret
}

func (c *counter) Keys() []TimeKey {
	return bucketKeys(c.Buckets())
}

func sortBuckets(b []Bucket) {
	sort.Slice(b, func(i, j int) bool {
		if b[i].Key.millis != b[j].Key.millis {
			return b[i].Key.millis < b[j].Key.millis
		}
		return b[i].Key.g < b[j].Key.g
	})
}

func bucketKeys(b []Bucket) []TimeKey {
	keys := make([]TimeKey, len(b))
	for i := range b {
		keys[i] = b[i].Key
	}
	return keys
}

// mergeBuckets sums buckets sharing a key and returns them ascending.
func mergeBuckets(lists ...[]Bucket) []Bucket {
	sums := make(map[TimeKey]int64)
	for _, l := range lists {
		for _, b := range l {
			sums[b.Key] += b.Value
		}
	}
	ret := make([]Bucket, 0, len(sums))
	for k, v := range sums {
		ret = append(ret, Bucket{Key: k, Value: v})
	}
	sortBuckets(ret)
	return ret
}

var _ Counter = (*counter)(nil)
