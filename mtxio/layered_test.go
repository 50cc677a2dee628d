package mtxio

import (
	"strings"
	"testing"

	"github.com/LTLA/tatami/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAssignsCategoriesByRowMax(t *testing.T) {
	// Rows with max values {200, 300, 80000, 50} land in {0, 1, 2, 0}.
	rows := []int{0, 1, 2, 3}
	values := []float64{200, 300, 80000, 50}
	cats := classify(4, rows, values)

	assert.Equal(t, [4]int{0, 1, 2, 0}, [4]int{cats.Assignment[0], cats.Assignment[1], cats.Assignment[2], cats.Assignment[3]})
	assert.Equal(t, [3]int{2, 1, 1}, cats.RowsPerCategory)
}

func TestClassifyEmptyRowGetsCategoryZero(t *testing.T) {
	cats := classify(3, []int{0, 2}, []float64{10, 10})
	assert.Equal(t, 0, cats.Assignment[1])
}

func TestLoadLayeredPermutationRoundTrip(t *testing.T) {
	// 4 rows, 2 cols. Row maxima: 200, 300, 80000, 50 -> categories 0,1,2,0.
	src := "4 2 4\n1 1 200\n2 2 300\n3 1 80000\n4 2 50\n"
	input, err := LoadSimple(strings.NewReader(src))
	require.NoError(t, err)

	out, err := LoadLayered(strings.NewReader(src))
	require.NoError(t, err)

	nr, nc := out.Matrix.Shape()
	assert.Equal(t, 4, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, matrix.Double, out.Matrix.Type())

	inBuf := make([]float64, nc)
	outBuf := make([]float64, nc)
	for i := 0; i < 4; i++ {
		want := matrix.FullRow[float64, int](input, i, inBuf, nil)
		got := matrix.FullRow[float64, int](out.Matrix, out.Permutation[i], outBuf, nil)
		assert.Equal(t, want, got, "row %d", i)
	}

	// Permutation is a bijection on [0, 4).
	seen := make(map[int]bool)
	for _, p := range out.Permutation {
		assert.False(t, seen[p])
		seen[p] = true
	}
	assert.Len(t, seen, 4)
}

func TestLoadLayeredColumnMatchesSimple(t *testing.T) {
	src := "4 2 4\n1 1 200\n2 2 300\n3 1 80000\n4 2 50\n"
	input, err := LoadSimple(strings.NewReader(src))
	require.NoError(t, err)
	out, err := LoadLayered(strings.NewReader(src))
	require.NoError(t, err)

	nr, _ := input.Shape()
	for c := 0; c < 2; c++ {
		want := matrix.FullColumn[float64, int](input, c, make([]float64, nr), nil)
		permuted := matrix.FullColumn[float64, int](out.Matrix, c, make([]float64, nr), nil)
		got := make([]float64, nr)
		for i, p := range out.Permutation {
			got[i] = permuted[p]
		}
		assert.Equal(t, want, got, "column %d", c)
	}
}
