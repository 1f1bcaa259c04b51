package county

import (
	"sort"
	"sync"
)

// keyFn maps a stored child name to its displayed name and reports whether
// the child is visible at all.
type keyFn func(name string) (string, bool)

type keyChain []keyFn

func (c keyChain) apply(name string) (string, bool) {
	for _, fn := range c {
		var ok bool
		if name, ok = fn(name); !ok {
			return "", false
		}
	}
	return name, true
}

type entry struct {
	name string // displayed name
	node *node
}

type node struct {
	tree    *Tree
	path    CounterKey
	counter Counter

	mu       sync.RWMutex
	children map[string]*node
}

// child looks up the child named name and creates it if create is set. At
// most one child is ever materialized per name.
func (n *node) child(name string, create bool) (*node, bool, error) {
	n.mu.RLock()
	c := n.children[name]
	n.mu.RUnlock()
	if c != nil || !create {
		return c, c != nil, nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if c = n.children[name]; c != nil {
		return c, true, nil
	}
	c, err := n.tree.newNode(n.path.Append(name))
	if err != nil {
		return nil, false, err
	}
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	n.children[name] = c
	return c, true, nil
}

// entries snapshots the visible children sorted by displayed name.
func (n *node) entries(chain keyChain) []entry {
	n.mu.RLock()
	ret := make([]entry, 0, len(n.children))
	for name, c := range n.children {
		if display, ok := chain.apply(name); ok {
			ret = append(ret, entry{name: display, node: c})
		}
	}
	n.mu.RUnlock()
	sort.Slice(ret, func(i, j int) bool { return ret[i].name < ret[j].name })
	return ret
}

func (n *node) totalCount(chain keyChain) int64 {
	sum := n.counter.TotalCount()
	for _, e := range n.entries(chain) {
		sum += e.node.totalCount(chain)
	}
	return sum
}

func (n *node) countIn(chain keyChain, start, end TimeKey) int64 {
	sum := n.counter.CountIn(start, end)
	for _, e := range n.entries(chain) {
		sum += e.node.countIn(chain, start, end)
	}
	return sum
}

func (n *node) buckets(chain keyChain) []Bucket {
	lists := [][]Bucket{n.counter.Buckets()}
	for _, e := range n.entries(chain) {
		lists = append(lists, e.node.buckets(chain))
	}
	return mergeBuckets(lists...)
}

func (n *node) lastAccess(chain keyChain) int64 {
	last := n.counter.LastAccess()
	for _, e := range n.entries(chain) {
		if t := e.node.lastAccess(chain); t > last {
			last = t
		}
	}
	return last
}

func (n *node) reset(chain keyChain) {
	n.counter.Reset()
	for _, e := range n.entries(chain) {
		e.node.reset(chain)
	}
}

func names(es []entry) []string {
	ret := make([]string, len(es))
	for i, e := range es {
		ret[i] = e.name
	}
	return ret
}

func (n *node) AddAt(key TimeKey, value int64) { n.counter.AddAt(key, value) }
func (n *node) Add(value int64)                { n.counter.Add(value) }
func (n *node) Increment()                     { n.counter.Increment() }
func (n *node) Decrement()                     { n.counter.Decrement() }

func (n *node) TotalCount() int64 { return n.totalCount(nil) }

func (n *node) CountIn(start, end TimeKey) int64 {
	if start.After(end) {
		return 0
	}
	return n.countIn(nil, start, end)
}

func (n *node) Reset()            { n.reset(nil) }
func (n *node) ResetTime() int64  { return n.counter.ResetTime() }
func (n *node) LastAccess() int64 { return n.lastAccess(nil) }
func (n *node) Buckets() []Bucket { return n.buckets(nil) }
func (n *node) Keys() []TimeKey   { return bucketKeys(n.Buckets()) }

func (n *node) Get(paths ...string) (County, error) {
	key, err := Keys(n.tree.delim, paths...)
	if err != nil {
		return nil, err
	}
	return n.GetKey(key)
}

func (n *node) GetKey(keys ...CounterKey) (County, error) {
	key := joinKeys(keys)
	members, wild, err := resolve([]traversable{n}, key, true)
	if err != nil {
		return nil, err
	}
	return selection(members, wild, n.path.Append(key...)), nil
}

func (n *node) Children() []string { return names(n.entries(nil)) }

func (n *node) Path() CounterKey { return n.path.Append() }

func (n *node) FilterKey(fn func(string) bool) County {
	return newView(n, nil, n.path).FilterKey(fn)
}

func (n *node) TransformKey(fn func(string) string) County {
	return newView(n, nil, n.path).TransformKey(fn)
}

func (n *node) lookup(name string, create bool) (traversable, bool, error) {
	c, ok, err := n.child(name, create)
	if !ok || err != nil {
		return nil, ok, err
	}
	return c, true, nil
}

func (n *node) expand() []traversable {
	es := n.entries(nil)
	ret := make([]traversable, len(es))
	for i, e := range es {
		ret[i] = e.node
	}
	return ret
}

func (n *node) origin() *node { return n }

var _ traversable = (*node)(nil)
