package county

import (
	"time"

	"github.com/pkg/errors"
)

// An Option configures a Tree.
type Option interface {
	applyTree(*Tree)
}

type optionFunc func(*Tree)

func (f optionFunc) applyTree(t *Tree) { f(t) }

// WithDelimiter sets the path segment delimiter, DefaultDelimiter is used
// otherwise.
func WithDelimiter(delim rune) Option {
	return optionFunc(func(t *Tree) {
		t.delim = delim
	})
}

// WithDefaultGranularity sets the granularity of the counters built by the
// catch-all "**" factory.
func WithDefaultGranularity(g Granularity) Option {
	return optionFunc(func(t *Tree) {
		t.granularity = g
	})
}

// WithLogger configures the tree to use the provided logger otherwise a
// logrus logger is used.
func WithLogger(log Logger) Option {
	return optionFunc(func(t *Tree) {
		if log != nil {
			t.log = log
		}
	})
}

// WithTreeClock sets the clock of the counters built by the catch-all
// factory.
func WithTreeClock(now func() time.Time) Option {
	return optionFunc(func(t *Tree) {
		t.now = now
	})
}

// WithPool makes the tree materialize nodes through pool. The pool is
// used as is: no catch-all pattern is added to it.
func WithPool(pool *Pool) Option {
	return optionFunc(func(t *Tree) {
		t.pool = pool
	})
}

// WithSettings applies the delimiter, granularity and log level of s.
// Invalid values are logged and ignored.
func WithSettings(s Settings) Option {
	return optionFunc(func(t *Tree) {
		if d, err := s.Delimiter(); err == nil {
			t.delim = d
		} else {
			t.log.Warnf("ignoring settings: %s", err)
		}
		t.granularity = s.DefaultGranularity
		if log, err := s.Logger(); err == nil {
			t.log = log
		} else {
			t.log.Warnf("ignoring settings: %s", err)
		}
	})
}

// A Tree is the root of a counter tree. Nodes are materialized on first
// use through the tree's Pool; by default every path is backed by a
// counter of the default granularity.
//
//	tree := county.NewTree(county.WithDefaultGranularity(county.Second))
//	tree.AddFirst("http.*.errors", county.BasicFactory(county.Millis))
//	c, _ := tree.Get("http.login.errors")
//	c.Increment()
//	all, _ := tree.Get("http.*.errors")
//	all.TotalCount()
type Tree struct {
	*node

	delim       rune
	granularity Granularity
	now         func() time.Time
	pool        *Pool
	log         Logger
}

// NewTree returns an empty Tree.
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		delim:       DefaultDelimiter,
		granularity: DefaultGranularity,
		now:         time.Now,
		log:         defaultLogger(),
	}
	for _, opt := range opts {
		opt.applyTree(t)
	}
	if t.now == nil {
		t.now = time.Now
	}
	def := t.defaultFactory()
	if t.pool == nil {
		t.pool = NewPool(t.delim)
		if err := t.pool.Append(DeepWildcard, def); err != nil {
			panic(err) // "**" always parses
		}
	}
	t.node = &node{
		tree:    t,
		counter: def.NewCounter(nil),
	}
	return t
}

// NewDefaultTree returns a Tree configured from the environment, see
// Settings. It panics on invalid settings.
func NewDefaultTree() *Tree {
	return NewTree(WithSettings(MustGetSettings()))
}

func (t *Tree) defaultFactory() Factory {
	return BasicFactory(t.granularity, WithClock(t.now))
}

func (t *Tree) newNode(path CounterKey) (*node, error) {
	f, err := t.pool.Resolve(path)
	if err != nil {
		t.log.Warnf("materializing %s: %s", path.Format(t.delim), err)
		return nil, err
	}
	c := f.NewCounter(path)
	if c == nil {
		return nil, errors.Errorf("factory for %q returned a nil counter", path.Format(t.delim))
	}
	t.log.Debugf("materialized counter %s", path.Format(t.delim))
	return &node{tree: t, path: path, counter: c}, nil
}

// AddFirst registers f for pattern ahead of all other patterns. It only
// affects nodes materialized afterwards.
func (t *Tree) AddFirst(pattern string, f Factory) error {
	return t.pool.AddFirst(pattern, f)
}

// Pool returns the pool the tree materializes nodes through.
func (t *Tree) Pool() *Pool { return t.pool }

// Delimiter returns the path segment delimiter.
func (t *Tree) Delimiter() rune { return t.delim }

// ParseKey parses s with the tree's delimiter.
func (t *Tree) ParseKey(s string) (CounterKey, error) {
	return ParseKey(s, t.delim)
}

// MustGet is like Get but panics if a path cannot be resolved.
func (t *Tree) MustGet(paths ...string) County {
	c, err := t.Get(paths...)
	if err != nil {
		panic(err)
	}
	return c
}

var _ County = (*Tree)(nil)
