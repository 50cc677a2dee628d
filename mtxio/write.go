package mtxio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/LTLA/tatami/matrix"
)

// Write emits m to w in Matrix Market coordinate format: a header
// comment, the "R C L" line, and one "r c v" line per non-zero entry,
// row by row. Values are converted to integers by truncation toward
// zero, since the format carries only integers; this is a round-trip
// writer for matrices whose values are already integral.
func Write[T matrix.Numeric, IDX matrix.Index](w io.Writer, m matrix.Matrix[T, IDX]) error {
	bw := bufio.NewWriter(w)
	nrow, ncol := m.Shape()

	var values []T
	var rows, cols []int
	vscratch := make([]T, ncol)
	iscratch := make([]IDX, ncol)
	for r := 0; r < nrow; r++ {
		sr := matrix.FullSparseRow[T, IDX](m, r, vscratch, iscratch, nil, true)
		for i, v := range sr.Values {
			if v == 0 {
				continue
			}
			values = append(values, v)
			rows = append(rows, r)
			cols = append(cols, int(sr.Indices[i]))
		}
	}

	if _, err := fmt.Fprintf(bw, "%%%%MatrixMarket matrix coordinate integer general\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", nrow, ncol, len(values)); err != nil {
		return err
	}
	for i, v := range values {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", rows[i]+1, cols[i]+1, int64(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
