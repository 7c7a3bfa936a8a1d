package docstore

import "sort"

// Query narrows a scanned collection in process: exact-match filtering,
// stable ordering, then offset/limit.
type Query[T any] struct {
	Match func(T) bool
	Less  func(a, b T) bool
	Skip  int
	// Limit <= 0 means no limit.
	Limit int
}

// Apply runs q over docs. docs may be reordered.
func Apply[T any](docs []T, q Query[T]) []T {
	out := docs[:0]
	for _, d := range docs {
		if q.Match == nil || q.Match(d) {
			out = append(out, d)
		}
	}
	if q.Less != nil {
		sort.SliceStable(out, func(i, j int) bool { return q.Less(out[i], out[j]) })
	}
	if q.Skip > 0 {
		if q.Skip >= len(out) {
			return []T{}
		}
		out = out[q.Skip:]
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	if out == nil {
		return []T{}
	}
	return out
}

// ClampLimit bounds a requested page size to max. Zero or negative
// requests get max.
func ClampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}
