package mtxio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/LTLA/tatami/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenLoadSimpleRoundTrips(t *testing.T) {
	original, err := matrix.BuildCompressedFromTriplets[float64, int](true, 3, 4,
		[]float64{5, 7, 9}, []int{0, 2, 1}, []int{1, 3, 0})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write[float64, int](&buf, original))

	reloaded, err := LoadSimple(strings.NewReader(buf.String()))
	require.NoError(t, err)

	wr, wc := original.Shape()
	rr, rc := reloaded.Shape()
	assert.Equal(t, wr, rr)
	assert.Equal(t, wc, rc)

	rowBuf := make([]float64, wc)
	for r := 0; r < wr; r++ {
		want := matrix.FullRow[float64, int](original, r, rowBuf, nil)
		got := matrix.FullRow[float64, int](reloaded, r, make([]float64, rc), nil)
		assert.Equal(t, want, got, "row %d", r)
	}
}
