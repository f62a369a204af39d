package greedy

import (
	"fmt"
	"sort"

	"github.com/tuneinsight/romspline/utils"
)

// KnotSet holds the indices of the selected samples under two views:
// indices, sorted in ascending order as required by the spline fit, and
// args, in the order in which the indices were selected.
type KnotSet struct {
	indices []int
	args    []int
}

// NewKnotSet returns a [KnotSet] whose selection order is args.
func NewKnotSet(args []int) *KnotSet {
	return &KnotSet{
		indices: utils.SortedCopy(args),
		args:    append([]int{}, args...),
	}
}

// Seed returns the initial [KnotSet] of a reduction over n samples with splines of the given degree.
//
// If seeds is not nil, it is used verbatim as the selection order. Otherwise the seed is made
// of the two endpoints and degree-1 interior indices, index i being i*n/m + n/(2m) with m = degree-1.
// Degree 1 is seeded with the endpoints only. When n is too small for these interior indices to be
// distinct, the indices i*(n-1)/degree, i = 0, ..., degree, are used instead.
func Seed(n, degree int, seeds []int) (*KnotSet, error) {

	if seeds != nil {
		return NewKnotSet(seeds), nil
	}

	if degree < 1 {
		return nil, fmt.Errorf("cannot Seed: %w: degree=%d", ErrInvalidDegree, degree)
	}

	if n < degree+1 {
		return nil, fmt.Errorf("cannot Seed: %w: %d samples for degree %d", ErrTooFewSamples, n, degree)
	}

	set := map[int]struct{}{0: {}, n - 1: {}}

	if m := degree - 1; m > 0 {
		for i := 0; i < m; i++ {
			set[i*n/m+n/(2*m)] = struct{}{}
		}
	}

	if len(set) < degree+1 {
		set = map[int]struct{}{}
		for i := 0; i <= degree; i++ {
			set[i*(n-1)/degree] = struct{}{}
		}
	}

	indices := keys(set)
	utils.SortSlice(indices)

	return NewKnotSet(indices), nil
}

func keys(m map[int]struct{}) (k []int) {
	k = make([]int, 0, len(m))
	for i := range m {
		k = append(k, i)
	}
	return
}

// Size returns the number of selected indices.
func (k *KnotSet) Size() int {
	return len(k.args)
}

// Indices returns a copy of the sorted indices.
func (k *KnotSet) Indices() []int {
	return append([]int{}, k.indices...)
}

// Args returns a copy of the indices in selection order.
func (k *KnotSet) Args() []int {
	return append([]int{}, k.args...)
}

// Contains returns true if index i is selected.
func (k *KnotSet) Contains(i int) bool {
	j := sort.SearchInts(k.indices, i)
	return j < len(k.indices) && k.indices[j] == i
}

// Add selects index i.
func (k *KnotSet) Add(i int) {
	k.args = append(k.args, i)
	k.indices = utils.InsertSorted(k.indices, i)
}

// Pop removes the most recently selected index and returns it.
// It panics if the set is empty.
func (k *KnotSet) Pop() (i int) {
	i = k.args[len(k.args)-1]
	k.args = k.args[:len(k.args)-1]
	k.indices, _ = utils.RemoveSorted(k.indices, i)
	return
}

// Clone returns a deep copy of the receiver.
func (k *KnotSet) Clone() *KnotSet {
	return &KnotSet{
		indices: k.Indices(),
		args:    k.Args(),
	}
}

// Check returns an error if the two views of the receiver are inconsistent:
// different lengths, different values, unsorted or repeated indices.
func (k *KnotSet) Check() error {

	if len(k.indices) != len(k.args) {
		return fmt.Errorf("knot set: len(indices)=%d != len(args)=%d", len(k.indices), len(k.args))
	}

	if !utils.IsStrictlyIncreasing(k.indices) {
		return fmt.Errorf("knot set: indices are not sorted or not unique")
	}

	if !utils.EqualAsSets(k.indices, k.args) {
		return fmt.Errorf("knot set: indices and args hold different values")
	}

	return nil
}
