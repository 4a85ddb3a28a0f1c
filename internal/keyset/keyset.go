// Package keyset provides a small generic set, adapted from the
// teacher's utils/set.Set[T] (a map[T]struct{} wrapper keyed on
// ids.ID/ids.NodeID there) but generalized to any comparable type so
// wfa and semiring/genkill can both use it over key.Key.
package keyset

import "golang.org/x/exp/maps"

// Set is a set of elements of type T.
type Set[T comparable] map[T]struct{}

// Of returns a Set initialized with elts.
func Of[T comparable](elts ...T) Set[T] {
	s := make(Set[T], len(elts))
	s.Add(elts...)
	return s
}

// Add inserts all of elts into s.
func (s Set[T]) Add(elts ...T) {
	for _, e := range elts {
		s[e] = struct{}{}
	}
}

// Contains reports whether elt is in s.
func (s Set[T]) Contains(elt T) bool {
	_, ok := s[elt]
	return ok
}

// Remove deletes elt from s, if present.
func (s Set[T]) Remove(elt T) {
	delete(s, elt)
}

// Len returns the number of elements in s.
func (s Set[T]) Len() int {
	return len(s)
}

// List returns the elements of s in unspecified order.
func (s Set[T]) List() []T {
	return maps.Keys(s)
}

// Union returns a new set containing every element of s and other.
func Union[T comparable](s, other Set[T]) Set[T] {
	out := make(Set[T], s.Len()+other.Len())
	maps.Copy(out, s)
	maps.Copy(out, other)
	return out
}

// Intersect returns a new set containing only elements present in both
// s and other.
func Intersect[T comparable](s, other Set[T]) Set[T] {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := make(Set[T], small.Len())
	for e := range small {
		if big.Contains(e) {
			out[e] = struct{}{}
		}
	}
	return out
}

// Diff returns a new set containing every element of s not in other.
func Diff[T comparable](s, other Set[T]) Set[T] {
	out := make(Set[T], s.Len())
	for e := range s {
		if !other.Contains(e) {
			out[e] = struct{}{}
		}
	}
	return out
}

// Equal reports whether s and other contain exactly the same elements.
func Equal[T comparable](s, other Set[T]) bool {
	if len(s) != len(other) {
		return false
	}
	for e := range s {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}
