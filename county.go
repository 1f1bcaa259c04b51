package county

// A County is a position in the counter tree: a single node, a key view of
// one, or the set of nodes matched by a wildcard path.
//
//	tree := county.NewTree()
//	c, err := tree.Get("service.requests.ok")
//	if err != nil {
//		// handle
//	}
//	c.Increment()
//
// The Counter methods of a County cover its whole subtree: the total of
// "service.requests" includes "service.requests.ok". Mutations go to the
// node's own counter; on a wildcard selection they go to every member.
type County interface {
	Counter

	// Get resolves the delimited paths below this County, creating missing
	// nodes. A "*" segment selects all existing children and never creates
	// nodes.
	Get(paths ...string) (County, error)

	// GetKey is Get for already parsed keys.
	GetKey(keys ...CounterKey) (County, error)

	// Children returns the sorted names of the materialized children.
	Children() []string

	// Path returns the path from the root to this County.
	Path() CounterKey

	// FilterKey returns a view hiding every child whose name fails fn.
	FilterKey(fn func(name string) bool) County

	// TransformKey returns a view reporting child names renamed by fn.
	TransformKey(fn func(name string) string) County
}

// traversable is implemented by the single node Counties (nodes and views)
// path resolution walks through.
type traversable interface {
	County

	// lookup returns the child named name, creating it if create is set.
	lookup(name string, create bool) (traversable, bool, error)

	// expand returns the visible children.
	expand() []traversable

	origin() *node
}

// resolve walks key from every start County. Once a wildcard has been seen
// no further nodes are created.
func resolve(start []traversable, key CounterKey, create bool) ([]traversable, bool, error) {
	cur := start
	wild := false
	for _, seg := range key {
		var next []traversable
		if seg == Wildcard {
			wild = true
			for _, t := range cur {
				next = append(next, t.expand()...)
			}
		} else {
			for _, t := range cur {
				c, ok, err := t.lookup(seg, create && !wild)
				if err != nil {
					return nil, wild, err
				}
				if ok {
					next = append(next, c)
				}
			}
		}
		cur = dedupe(next)
		if len(cur) == 0 {
			break
		}
	}
	return cur, wild, nil
}

func dedupe(ts []traversable) []traversable {
	if len(ts) < 2 {
		return ts
	}
	seen := make(map[*node]struct{}, len(ts))
	ret := ts[:0]
	for _, t := range ts {
		n := t.origin()
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		ret = append(ret, t)
	}
	return ret
}

// selection turns a resolve result into a County.
func selection(members []traversable, wild bool, path CounterKey) County {
	if !wild && len(members) == 1 {
		return members[0]
	}
	return newAggregate(members, path)
}

// Members returns the paths of the nodes c stands for: the matched nodes
// of a wildcard selection, or the path of c itself.
func Members(c County) []CounterKey {
	if a, ok := c.(*aggregate); ok {
		return a.Members()
	}
	return []CounterKey{c.Path()}
}
