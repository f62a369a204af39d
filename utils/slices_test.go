package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortedCopy(t *testing.T) {
	s := []int{3, 1, 2}
	require.Equal(t, []int{1, 2, 3}, SortedCopy(s))
	require.Equal(t, []int{3, 1, 2}, s)
}

func TestInsertSorted(t *testing.T) {
	s := []int{0, 4, 9}
	s = InsertSorted(s, 5)
	require.Equal(t, []int{0, 4, 5, 9}, s)
	s = InsertSorted(s, -1)
	require.Equal(t, []int{-1, 0, 4, 5, 9}, s)
	s = InsertSorted(s, 10)
	require.Equal(t, []int{-1, 0, 4, 5, 9, 10}, s)
	require.Equal(t, []int{1}, InsertSorted([]int{}, 1))
}

func TestRemoveSorted(t *testing.T) {
	s, ok := RemoveSorted([]int{0, 4, 5, 9}, 5)
	require.True(t, ok)
	require.Equal(t, []int{0, 4, 9}, s)

	s, ok = RemoveSorted(s, 7)
	require.False(t, ok)
	require.Equal(t, []int{0, 4, 9}, s)
}

func TestIsStrictlyIncreasing(t *testing.T) {
	require.True(t, IsStrictlyIncreasing([]float64{}))
	require.True(t, IsStrictlyIncreasing([]float64{0, 0.5, 1}))
	require.False(t, IsStrictlyIncreasing([]float64{0, 0.5, 0.5}))
	require.False(t, IsStrictlyIncreasing([]float64{1, 0}))
}

func TestEqualAsSets(t *testing.T) {
	require.True(t, EqualAsSets([]int{0, 9, 4}, []int{0, 4, 9}))
	require.True(t, EqualAsSets([]int{}, []int{}))
	require.False(t, EqualAsSets([]int{0, 4}, []int{0, 4, 9}))
	require.False(t, EqualAsSets([]int{0, 4, 4}, []int{0, 4, 9}))
}

func TestGather(t *testing.T) {
	x := []float64{0.0, 0.1, 0.2, 0.3}
	require.Equal(t, []float64{0.3, 0.0, 0.2}, Gather(x, []int{3, 0, 2}))
}
