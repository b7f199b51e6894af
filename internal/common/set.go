package common

import "sort"

type Set[T comparable] struct {
	elements map[T]struct{}
}

// NewSet creates a new set with the given initial elements
func NewSet[T comparable](values ...T) *Set[T] {
	s := &Set[T]{
		elements: make(map[T]struct{}),
	}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts an element into the set
func (s *Set[T]) Add(value T) {
	s.elements[value] = struct{}{}
}

// Contains checks if an element is in the set
func (s *Set[T]) Contains(value T) bool {
	_, found := s.elements[value]
	return found
}

// Union adds every element of other into the set
func (s *Set[T]) Union(other *Set[T]) {
	for v := range other.elements {
		s.elements[v] = struct{}{}
	}
}

// Size returns the number of elements in the set
func (s *Set[T]) Size() int {
	return len(s.elements)
}

// List returns all elements in the set as a slice
func (s *Set[T]) List() []T {
	keys := make([]T, 0, len(s.elements))
	for key := range s.elements {
		keys = append(keys, key)
	}
	return keys
}

// SortedList returns all elements ordered with the given less function,
// for deterministic iteration when emitting events.
func (s *Set[T]) SortedList(less func(a, b T) bool) []T {
	keys := s.List()
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	return keys
}
