package county

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// A Factory builds the Counter backing a newly materialized tree node.
type Factory interface {
	NewCounter(path CounterKey) Counter
}

// FactoryFunc adapts a function to a Factory.
type FactoryFunc func(path CounterKey) Counter

// NewCounter calls f(path).
func (f FactoryFunc) NewCounter(path CounterKey) Counter {
	return f(path)
}

// BasicFactory returns a Factory building counters of granularity g.
func BasicFactory(g Granularity, opts ...CounterOption) Factory {
	return FactoryFunc(func(CounterKey) Counter {
		return newCounter(g, opts...)
	})
}

type rule struct {
	raw     string
	pattern CounterKey
	factory Factory
}

// matches compares the pattern with path segment by segment. "*" matches
// one segment, a trailing "**" matches the remainder.
func (r *rule) matches(path CounterKey) bool {
	for i, seg := range r.pattern {
		if seg == DeepWildcard && i == len(r.pattern)-1 {
			return true
		}
		if i >= len(path) {
			return false
		}
		if seg != Wildcard && seg != path[i] {
			return false
		}
	}
	return len(r.pattern) == len(path)
}

// A Pool is an ordered list of pattern rules deciding which Factory
// builds the counter of a new path. The first matching rule wins.
//
// Resolve never blocks on writers: the rule list is replaced as a whole on
// every change.
type Pool struct {
	delim rune

	mu    sync.Mutex   // serializes writers
	rules atomic.Value // []*rule
}

// NewPool returns an empty Pool parsing patterns with delim.
func NewPool(delim rune) *Pool {
	p := &Pool{delim: delim}
	p.rules.Store([]*rule(nil))
	return p
}

func (p *Pool) load() []*rule {
	rules, _ := p.rules.Load().([]*rule)
	return rules
}

func (p *Pool) newRule(pattern string, f Factory) (*rule, error) {
	if f == nil {
		return nil, errors.Errorf("nil factory for pattern %q", pattern)
	}
	key, err := ParseKey(pattern, p.delim)
	if err != nil {
		return nil, errors.Wrap(err, "parsing pool pattern")
	}
	for i, seg := range key {
		if seg == DeepWildcard && i != len(key)-1 {
			return nil, errors.Wrapf(ErrMalformedPath, "pattern %q: %q must be the last segment", pattern, DeepWildcard)
		}
	}
	return &rule{raw: pattern, pattern: key, factory: f}, nil
}

// AddFirst registers f for pattern with the highest precedence.
func (p *Pool) AddFirst(pattern string, f Factory) error {
	r, err := p.newRule(pattern, f)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.load()
	rules := make([]*rule, 0, len(old)+1)
	rules = append(rules, r)
	rules = append(rules, old...)
	p.rules.Store(rules)
	return nil
}

// Append registers f for pattern with the lowest precedence.
func (p *Pool) Append(pattern string, f Factory) error {
	r, err := p.newRule(pattern, f)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.load()
	rules := make([]*rule, 0, len(old)+1)
	rules = append(rules, old...)
	rules = append(rules, r)
	p.rules.Store(rules)
	return nil
}

// Resolve returns the Factory of the first rule matching path.
func (p *Pool) Resolve(path CounterKey) (Factory, error) {
	for _, r := range p.load() {
		if r.matches(path) {
			return r.factory, nil
		}
	}
	return nil, noFactoryMatch(path)
}

// Patterns returns the registered patterns in precedence order.
func (p *Pool) Patterns() []string {
	rules := p.load()
	ret := make([]string, len(rules))
	for i, r := range rules {
		ret[i] = r.raw
	}
	return ret
}

// Len returns the number of registered rules.
func (p *Pool) Len() int { return len(p.load()) }
