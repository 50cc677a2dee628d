package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressTripletsFiltersZerosAndSorts(t *testing.T) {
	values := []float64{0, 5, 3, 1}
	rows := []int{0, 2, 1, 0}
	cols := []int{2, 1, 1, 0}

	outValues, outIndices, pointers, err := CompressTriplets[float64, int](true, 3, 3, values, rows, cols)
	require.NoError(t, err)

	// Column-major: col0 has (0,0)=1; col1 has (1,1)=3, (2,1)=5; col2 has
	// (0,2)=0 which is filtered out.
	assert.Equal(t, []int{0, 1, 3, 3}, pointers)
	assert.Equal(t, []float64{1, 3, 5}, outValues)
	assert.Equal(t, []int{0, 1, 2}, outIndices)
}

func TestCompressTripletsDuplicateIsError(t *testing.T) {
	values := []float64{1, 2}
	rows := []int{0, 0}
	cols := []int{0, 0}
	_, _, _, err := CompressTriplets[float64, int](true, 2, 2, values, rows, cols)
	require.Error(t, err)
}

func TestBuildCompressedFromTripletsRoundTrip(t *testing.T) {
	values := []float64{1, 2, 3}
	rows := []int{0, 1, 2}
	cols := []int{0, 1, 2}
	m, err := BuildCompressedFromTriplets[float64, int](true, 3, 3, values, rows, cols)
	require.NoError(t, err)

	buf := make([]float64, 3)
	assert.Equal(t, []float64{0, 2, 0}, FullColumn[float64, int](m, 1, buf, nil))
}
