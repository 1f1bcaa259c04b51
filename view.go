package county

// view reports the subtree of a node through a chain of key functions. It
// never changes what is stored.
type view struct {
	n     *node
	chain keyChain
	path  CounterKey // displayed path
}

func newView(n *node, chain keyChain, path CounterKey) *view {
	return &view{n: n, chain: chain, path: path}
}

func (v *view) with(fn keyFn) *view {
	chain := make(keyChain, 0, len(v.chain)+1)
	chain = append(chain, v.chain...)
	return newView(v.n, append(chain, fn), v.path)
}

func (v *view) FilterKey(fn func(string) bool) County {
	return v.with(func(name string) (string, bool) {
		return name, fn(name)
	})
}

func (v *view) TransformKey(fn func(string) string) County {
	return v.with(func(name string) (string, bool) {
		return fn(name), true
	})
}

func (v *view) AddAt(key TimeKey, value int64) { v.n.AddAt(key, value) }
func (v *view) Add(value int64)                { v.n.Add(value) }
func (v *view) Increment()                     { v.n.Increment() }
func (v *view) Decrement()                     { v.n.Decrement() }

func (v *view) TotalCount() int64 { return v.n.totalCount(v.chain) }

func (v *view) CountIn(start, end TimeKey) int64 {
	if start.After(end) {
		return 0
	}
	return v.n.countIn(v.chain, start, end)
}

func (v *view) Reset()            { v.n.reset(v.chain) }
func (v *view) ResetTime() int64  { return v.n.ResetTime() }
func (v *view) LastAccess() int64 { return v.n.lastAccess(v.chain) }
func (v *view) Buckets() []Bucket { return v.n.buckets(v.chain) }
func (v *view) Keys() []TimeKey   { return bucketKeys(v.Buckets()) }

func (v *view) Get(paths ...string) (County, error) {
	key, err := Keys(v.n.tree.delim, paths...)
	if err != nil {
		return nil, err
	}
	return v.GetKey(key)
}

func (v *view) GetKey(keys ...CounterKey) (County, error) {
	key := joinKeys(keys)
	members, wild, err := resolve([]traversable{v}, key, true)
	if err != nil {
		return nil, err
	}
	return selection(members, wild, v.path.Append(key...)), nil
}

func (v *view) Children() []string { return names(v.n.entries(v.chain)) }

func (v *view) Path() CounterKey { return v.path.Append() }

// lookup first matches name against the displayed names of existing
// children, then falls back to name as a stored segment.
func (v *view) lookup(name string, create bool) (traversable, bool, error) {
	for _, e := range v.n.entries(v.chain) {
		if e.name == name {
			return newView(e.node, v.chain, v.path.Append(name)), true, nil
		}
	}
	c, ok, err := v.n.child(name, create)
	if !ok || err != nil {
		return nil, ok, err
	}
	display := name
	if d, visible := v.chain.apply(name); visible {
		display = d
	}
	return newView(c, v.chain, v.path.Append(display)), true, nil
}

func (v *view) expand() []traversable {
	es := v.n.entries(v.chain)
	ret := make([]traversable, len(es))
	for i, e := range es {
		ret[i] = newView(e.node, v.chain, v.path.Append(e.name))
	}
	return ret
}

func (v *view) origin() *node { return v.n }

var _ traversable = (*view)(nil)
