// Package rowreduce computes per-row reductions over a matrix,
// partitioning the row range across goroutines that each hold their
// own workspace, in line with the core's concurrency contract: a
// matrix is safe for concurrent reads as long as no workspace is
// shared between threads.
package rowreduce

import (
	"context"
	"runtime"

	"github.com/LTLA/tatami/matrix"
	"github.com/LTLA/tatami/mtxio"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// RowSums computes the sum of every row of m, in parallel across
// workers goroutines. workers <= 0 defaults to GOMAXPROCS.
//
// This generalizes the vector-sum operators: instead of summing one
// caller-supplied slice, it drives the sum itself by streaming each
// row out of m through a dedicated workspace per goroutine.
func RowSums[T matrix.Numeric, IDX matrix.Index](ctx context.Context, m matrix.Matrix[T, IDX], workers int) ([]T, error) {
	nrow, ncol := m.Shape()
	sums := make([]T, nrow)
	if nrow == 0 {
		return sums, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > nrow {
		workers = nrow
	}

	glog.V(1).Infof("rowreduce: summing %d rows with %d workers", nrow, workers)

	chunk := (nrow + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < nrow; start += chunk {
		start := start
		end := start + chunk
		if end > nrow {
			end = nrow
		}
		g.Go(func() error {
			ws := m.NewWorkspace(true)
			buf := make([]T, ncol)
			for r := start; r < end; r++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				row := matrix.FullRow[T, IDX](m, r, buf, ws)
				var sum T
				for _, v := range row {
					sum += v
				}
				sums[r] = sum
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sums, nil
}

// SparseRowSums is the sparse-aware counterpart of RowSums: it sums
// only the stored entries of each row, which is cheaper than RowSums
// on a sparse engine since it never materializes the zero-filled
// positions.
func SparseRowSums[T matrix.Numeric, IDX matrix.Index](ctx context.Context, m matrix.Matrix[T, IDX], workers int) ([]T, error) {
	nrow, ncol := m.Shape()
	sums := make([]T, nrow)
	if nrow == 0 {
		return sums, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > nrow {
		workers = nrow
	}

	chunk := (nrow + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < nrow; start += chunk {
		start := start
		end := start + chunk
		if end > nrow {
			end = nrow
		}
		g.Go(func() error {
			ws := m.NewWorkspace(true)
			vbuf := make([]T, ncol)
			ibuf := make([]IDX, ncol)
			for r := start; r < end; r++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				sr := matrix.FullSparseRow[T, IDX](m, r, vbuf, ibuf, ws, false)
				var sum T
				for _, v := range sr.Values {
					sum += v
				}
				sums[r] = sum
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sums, nil
}

// CategorySums sums the rows of a layered load one category at a time,
// driving each category's traversal off its own Roaring bitmap of
// member rows rather than a flat row range. workers caps how many
// categories are summed concurrently; workers <= 0 leaves all of them
// (at most three) to run at once.
//
// The returned slice is indexed in the layered matrix's own row space
// (out.Matrix), the same convention SparseRowSums uses, so a caller
// un-permutes it with out.Permutation exactly as it would for a flat
// SparseRowSums result.
func CategorySums(ctx context.Context, out *mtxio.LayeredResult, workers int) ([]float64, error) {
	nrow, ncol := out.Matrix.Shape()
	sums := make([]float64, nrow)
	if nrow == 0 {
		return sums, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for cat := 0; cat < 3; cat++ {
		members := out.Categories.Members[cat]
		if members == nil || members.IsEmpty() {
			continue
		}
		cat := cat
		glog.V(1).Infof("rowreduce: summing %d rows in category %d", members.GetCardinality(), cat)

		g.Go(func() error {
			ws := out.Matrix.NewWorkspace(true)
			vbuf := make([]float64, ncol)
			ibuf := make([]int, ncol)

			it := out.Categories.Members[cat].Iterator()
			for it.HasNext() {
				if err := ctx.Err(); err != nil {
					return err
				}
				origRow := int(it.Next())
				outRow := out.Permutation[origRow]
				sr := matrix.FullSparseRow[float64, int](out.Matrix, outRow, vbuf, ibuf, ws, false)
				var sum float64
				for _, v := range sr.Values {
					sum += v
				}
				sums[outRow] = sum
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sums, nil
}
