package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// W is 4x3 with rows [10 20 30; 40 50 60; 70 80 90; 1 2 3]. sigma=[3,0,3,1].
// DelayedSubset(W,row,sigma).column(1) = [2, 20, 2, 50].
func TestRowSubsetWithDuplicatesScenario(t *testing.T) {
	w, err := NewDenseRowMatrix[float64, int](4, 3, []float64{
		10, 20, 30,
		40, 50, 60,
		70, 80, 90,
		1, 2, 3,
	})
	require.NoError(t, err)

	d, err := NewDelayedSubsetRows[float64, int](w, []int{3, 0, 3, 1})
	require.NoError(t, err)

	nr, nc := d.Shape()
	assert.Equal(t, 4, nr)
	assert.Equal(t, 3, nc)

	got := FullColumn[float64, int](d, 1, make([]float64, 4), nil)
	assert.Equal(t, []float64{2, 20, 2, 50}, got)
}

func TestDelayedSubsetRowLaw(t *testing.T) {
	w, err := NewDenseRowMatrix[float64, int](4, 3, []float64{
		10, 20, 30,
		40, 50, 60,
		70, 80, 90,
		1, 2, 3,
	})
	require.NoError(t, err)
	sigma := []int{3, 0, 3, 1}
	d, err := NewDelayedSubsetRows[float64, int](w, sigma)
	require.NoError(t, err)

	for i, s := range sigma {
		want := FullRow[float64, int](w, s, make([]float64, 3), nil)
		got := FullRow[float64, int](d, i, make([]float64, 3), nil)
		assert.Equal(t, want, got)
	}
}

func TestDelayedSubsetColumnLaw(t *testing.T) {
	w, err := NewDenseRowMatrix[float64, int](3, 4, []float64{
		10, 20, 30, 40,
		50, 60, 70, 80,
		90, 100, 110, 120,
	})
	require.NoError(t, err)
	sigma := []int{3, 0, 0, 2}
	d, err := NewDelayedSubsetColumns[float64, int](w, sigma)
	require.NoError(t, err)

	nr, nc := d.Shape()
	assert.Equal(t, 3, nr)
	assert.Equal(t, 4, nc)

	for j, s := range sigma {
		want := FullColumn[float64, int](w, s, make([]float64, 3), nil)
		got := FullColumn[float64, int](d, j, make([]float64, 3), nil)
		assert.Equal(t, want, got)
	}
}

func TestDelayedSubsetSparseGatherIsSorted(t *testing.T) {
	w, err := NewDenseRowMatrix[float64, int](1, 5, []float64{0, 9, 0, 7, 0})
	require.NoError(t, err)
	// Non-monotone sigma on the non-subsetted axis.
	d, err := NewDelayedSubsetColumns[float64, int](w, []int{3, 1, 4, 0, 2})
	require.NoError(t, err)

	vbuf := make([]float64, 5)
	ibuf := make([]int, 5)
	sr := FullSparseRow[float64, int](d, 0, vbuf, ibuf, nil, true)
	assert.Equal(t, []float64{7, 9}, sr.Values)
	assert.Equal(t, []int{0, 1}, sr.Indices)
}

func TestDelayedSubsetWorkspacePropagation(t *testing.T) {
	w, err := NewCompressedSparseColumn[float64, int](3, 3, []float64{1, 1, 1}, []int{0, 1, 2}, []int{0, 1, 2, 3})
	require.NoError(t, err)
	d, err := NewDelayedSubsetRows[float64, int](w, []int{2, 1, 0})
	require.NoError(t, err)

	// Subsetted axis: no state needed.
	assert.Nil(t, d.NewWorkspace(true))
	// Non-subsetted axis: forwards to the wrapped matrix's workspace.
	ws := d.NewWorkspace(false)
	require.NotNil(t, ws)
}

func TestDelayedSubsetOutOfRangeSigma(t *testing.T) {
	w, err := NewDenseRowMatrix[float64, int](2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	_, err = NewDelayedSubsetRows[float64, int](w, []int{0, 5})
	require.Error(t, err)
}
