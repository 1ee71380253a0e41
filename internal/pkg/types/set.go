// Package types holds small generic containers shared across packages.
package types

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Set is a mutable hash set of comparable values.
type Set[T comparable] map[T]struct{}

// NewSet returns a Set holding the given elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T], len(data))
	set.Add(data...)
	return set
}

// Add inserts values into the set in place.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// ToIter returns an iterator over the elements, in no particular order.
func (s Set[T]) ToIter() iter.Seq[T] {
	return maps.Keys(s)
}

// Sorted returns the elements of s in ascending order. The result is never
// nil, so an empty set encodes as an empty JSON array.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	sorted := make([]T, 0, len(s))
	sorted = slices.AppendSeq(sorted, s.ToIter())
	slices.Sort(sorted)
	return sorted
}
