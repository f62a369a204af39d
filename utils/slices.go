package utils

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SortSlice sorts a slice in place.
func SortSlice[T constraints.Ordered](s []T) {
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
}

// SortedCopy returns a sorted copy of s, leaving s untouched.
func SortedCopy[T constraints.Ordered](s []T) (sorted []T) {
	sorted = make([]T, len(s))
	copy(sorted, s)
	SortSlice(sorted)
	return
}

// InsertSorted inserts v into the sorted slice s and returns the
// resulting slice, which is still sorted.
func InsertSorted[T constraints.Ordered](s []T, v T) []T {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// RemoveSorted removes the first occurrence of v from the sorted slice s.
// It returns the resulting slice and false if v was not found.
func RemoveSorted[T constraints.Ordered](s []T, v T) ([]T, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	if i == len(s) || s[i] != v {
		return s, false
	}
	return append(s[:i], s[i+1:]...), true
}

// IsStrictlyIncreasing returns true if every element of s is strictly
// greater than its predecessor.
func IsStrictlyIncreasing[T constraints.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if !(s[i-1] < s[i]) {
			return false
		}
	}
	return true
}

// EqualAsSets returns true if a and b hold the same multiset of values,
// regardless of their order.
func EqualAsSets[V comparable](a, b []V) bool {

	if len(a) != len(b) {
		return false
	}

	m := make(map[V]int, len(a))
	for _, ai := range a {
		m[ai]++
	}

	for _, bi := range b {
		if m[bi] == 0 {
			return false
		}
		m[bi]--
	}

	return true
}

// Gather returns the elements of s at the positions given by idx, in the order of idx.
func Gather[V any, I constraints.Integer](s []V, idx []I) (g []V) {
	g = make([]V, len(idx))
	for i, j := range idx {
		g[i] = s[j]
	}
	return
}
