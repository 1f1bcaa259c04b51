package county

import (
	"sort"
)

// aggregate is the set of Counties a wildcard path resolved to. Queries sum
// over the members, mutations are applied to every member. The member set
// is a snapshot taken at resolution time.
type aggregate struct {
	members []traversable
	path    CounterKey
}

func newAggregate(members []traversable, path CounterKey) *aggregate {
	return &aggregate{members: members, path: path}
}

func (a *aggregate) AddAt(key TimeKey, value int64) {
	for _, m := range a.members {
		m.AddAt(key, value)
	}
}

func (a *aggregate) Add(value int64) {
	for _, m := range a.members {
		m.Add(value)
	}
}

func (a *aggregate) Increment() { a.Add(1) }

func (a *aggregate) Decrement() { a.Add(-1) }

func (a *aggregate) TotalCount() int64 {
	var sum int64
	for _, m := range a.members {
		sum += m.TotalCount()
	}
	return sum
}

func (a *aggregate) CountIn(start, end TimeKey) int64 {
	var sum int64
	for _, m := range a.members {
		sum += m.CountIn(start, end)
	}
	return sum
}

func (a *aggregate) Reset() {
	for _, m := range a.members {
		m.Reset()
	}
}

// ResetTime returns the most recent reset time of the members.
func (a *aggregate) ResetTime() int64 {
	var t int64
	for _, m := range a.members {
		if rt := m.ResetTime(); rt > t {
			t = rt
		}
	}
	return t
}

func (a *aggregate) LastAccess() int64 {
	var t int64
	for _, m := range a.members {
		if la := m.LastAccess(); la > t {
			t = la
		}
	}
	return t
}

func (a *aggregate) Buckets() []Bucket {
	lists := make([][]Bucket, 0, len(a.members))
	for _, m := range a.members {
		lists = append(lists, m.Buckets())
	}
	return mergeBuckets(lists...)
}

func (a *aggregate) Keys() []TimeKey { return bucketKeys(a.Buckets()) }

func (a *aggregate) delim() rune {
	if len(a.members) == 0 {
		return DefaultDelimiter
	}
	return a.members[0].origin().tree.delim
}

func (a *aggregate) Get(paths ...string) (County, error) {
	key, err := Keys(a.delim(), paths...)
	if err != nil {
		return nil, err
	}
	return a.GetKey(key)
}

// GetKey resolves keys below every member without creating nodes.
func (a *aggregate) GetKey(keys ...CounterKey) (County, error) {
	key := joinKeys(keys)
	members, _, err := resolve(a.members, key, false)
	if err != nil {
		return nil, err
	}
	return newAggregate(members, a.path.Append(key...)), nil
}

// Children returns the sorted union of the members' children.
func (a *aggregate) Children() []string {
	seen := make(map[string]struct{})
	var ret []string
	for _, m := range a.members {
		for _, name := range m.Children() {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				ret = append(ret, name)
			}
		}
	}
	sort.Strings(ret)
	return ret
}

func (a *aggregate) Path() CounterKey { return a.path.Append() }

func (a *aggregate) FilterKey(fn func(string) bool) County {
	members := make([]traversable, len(a.members))
	for i, m := range a.members {
		members[i] = m.FilterKey(fn).(traversable)
	}
	return newAggregate(members, a.path)
}

func (a *aggregate) TransformKey(fn func(string) string) County {
	members := make([]traversable, len(a.members))
	for i, m := range a.members {
		members[i] = m.TransformKey(fn).(traversable)
	}
	return newAggregate(members, a.path)
}

// Members returns the paths of the selected nodes.
func (a *aggregate) Members() []CounterKey {
	ret := make([]CounterKey, len(a.members))
	for i, m := range a.members {
		ret[i] = m.Path()
	}
	return ret
}

var _ County = (*aggregate)(nil)
