package county

import (
	"strings"
)

const (
	// DefaultDelimiter separates path segments unless a tree is configured
	// otherwise.
	DefaultDelimiter = '.'

	// Wildcard matches any single segment.
	Wildcard = "*"

	// DeepWildcard matches the remainder of a path. It is only meaningful as
	// the last segment of a pool pattern.
	DeepWildcard = "**"
)

// A CounterKey is the path of a node in the counter tree. Methods never
// modify the receiver.
type CounterKey []string

// ParseKey splits s on delim. Empty segments are rejected with a
// *MalformedPathError.
func ParseKey(s string, delim rune) (CounterKey, error) {
	segs := strings.Split(s, string(delim))
	for i, seg := range segs {
		if seg == "" {
			return nil, &MalformedPathError{Path: s, Index: i}
		}
	}
	return CounterKey(segs), nil
}

// MustParseKey is like ParseKey but panics on malformed input.
func MustParseKey(s string, delim rune) CounterKey {
	k, err := ParseKey(s, delim)
	if err != nil {
		panic(err)
	}
	return k
}

// Keys parses every path with delim and joins the results in order, so
// Keys('.', "a.b", "c") equals the key a.b.c.
func Keys(delim rune, paths ...string) (CounterKey, error) {
	var key CounterKey
	for _, p := range paths {
		k, err := ParseKey(p, delim)
		if err != nil {
			return nil, err
		}
		key = append(key, k...)
	}
	return key, nil
}

func joinKeys(keys []CounterKey) CounterKey {
	var n int
	for _, k := range keys {
		n += len(k)
	}
	ret := make(CounterKey, 0, n)
	for _, k := range keys {
		ret = append(ret, k...)
	}
	return ret
}

// String formats the key with DefaultDelimiter.
func (k CounterKey) String() string {
	return k.Format(DefaultDelimiter)
}

// Format joins the segments with delim.
func (k CounterKey) Format(delim rune) string {
	return strings.Join(k, string(delim))
}

// Append returns a new key with segs added to the end.
func (k CounterKey) Append(segs ...string) CounterKey {
	ret := make(CounterKey, 0, len(k)+len(segs))
	ret = append(ret, k...)
	return append(ret, segs...)
}

// Equal reports whether both keys have the same segments.
func (k CounterKey) Equal(o CounterKey) bool {
	if len(k) != len(o) {
		return false
	}
	for i := range k {
		if k[i] != o[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the key addresses the root.
func (k CounterKey) IsEmpty() bool { return len(k) == 0 }

// HasWildcard reports whether any segment is a wildcard.
func (k CounterKey) HasWildcard() bool {
	for _, s := range k {
		if s == Wildcard || s == DeepWildcard {
			return true
		}
	}
	return false
}

// Head returns the first segment, or "" for the empty key.
func (k CounterKey) Head() string {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}

// Tail returns all but the first segment.
func (k CounterKey) Tail() CounterKey {
	if len(k) <= 1 {
		return nil
	}
	return k[1:]
}

// Last returns the final segment, or "" for the empty key.
func (k CounterKey) Last() string {
	if len(k) == 0 {
		return ""
	}
	return k[len(k)-1]
}
