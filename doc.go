// Package county implements a hierarchical registry of time bucketed
// counters.
//
// Counters live in a tree addressed by delimited paths such as
// "http.login.errors". A node is materialized the first time its path is
// resolved; the Pool of the Tree decides, by matching the path against an
// ordered list of patterns, which Factory builds its Counter. Each Counter
// accumulates values into buckets of a Granularity (milliseconds through
// years), keyed by TimeKey.
//
// Queries on a node cover its whole subtree, and a "*" path segment selects
// every existing child, so
//
//	tree.MustGet("http.*.errors").TotalCount()
//
// sums the errors of all endpoints seen so far. Wildcards never create
// nodes.
//
// Trees can be configured from the environment, see Settings and
// NewDefaultTree. NewStatHandler counts HTTP responses by status code
// below a County.
package county
