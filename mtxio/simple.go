package mtxio

import (
	"io"

	"github.com/LTLA/tatami/matrix"
)

// LoadSimple parses r as a Matrix Market coordinate stream and builds
// a column-compressed, double-valued matrix from it. A stored value of
// zero is legal input and survives parsing; it is filtered out during
// compression instead (see matrix.CompressTriplets).
func LoadSimple(r io.Reader) (*matrix.CompressedSparseMatrix[float64, int], error) {
	t, err := ParseTriplets(r)
	if err != nil {
		return nil, err
	}
	return matrix.BuildCompressedFromTriplets[float64, int](true, t.Nrow, t.Ncol, t.Values, t.Rows, t.Cols)
}
