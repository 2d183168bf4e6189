// Package snapshot captures observable system state before and after an
// installer runs so the difference reveals what the installer created.
package snapshot

// Set is an immutable, insertion-ordered set.
type Set[T comparable] struct {
	items []T
	index map[T]struct{}
}

// NewSet builds a set from items, keeping the first occurrence of duplicates.
func NewSet[T comparable](items ...T) Set[T] {
	s := Set[T]{index: make(map[T]struct{}, len(items))}
	for _, item := range items {
		if _, ok := s.index[item]; ok {
			continue
		}
		s.index[item] = struct{}{}
		s.items = append(s.items, item)
	}
	return s
}

// Contains reports whether item is in the set.
func (s Set[T]) Contains(item T) bool {
	_, ok := s.index[item]
	return ok
}

// Len returns the number of items.
func (s Set[T]) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in insertion order.
func (s Set[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Difference returns the items of after that are not in before, in the order
// they appear in after.
func Difference[T comparable](before, after Set[T]) Set[T] {
	var added []T
	for _, item := range after.items {
		if !before.Contains(item) {
			added = append(added, item)
		}
	}
	return NewSet(added...)
}
