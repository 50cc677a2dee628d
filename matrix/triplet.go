package matrix

import "sort"

// CompressTriplets sorts the (values[i], rows[i], cols[i]) triplets
// stably by (primary, secondary) — column-then-row when byColumn is
// true, row-then-column otherwise — and reorders values, rows, and
// cols in place to match. It returns the compressed values/indices
// arrays (with explicit zeros filtered out) and the pointers array
// ready to hand to NewCompressedSparseColumn/NewCompressedSparseRow.
//
// A duplicate (r, c) coordinate — zero or not — is an error.
func CompressTriplets[T Numeric, IDX Index](byColumn bool, nrow, ncol int, values []T, rows, cols []IDX) (outValues []T, outIndices []IDX, pointers []int, err error) {
	n := len(values)
	if len(rows) != n || len(cols) != n {
		return nil, nil, nil, NewError(InvalidShape, "compress triplets: values has %d entries, rows has %d, cols has %d", n, len(rows), len(cols))
	}

	primaryDim, _ := ncol, nrow
	if !byColumn {
		primaryDim = nrow
	}

	primaryOf := func(r, c IDX) int {
		if byColumn {
			return int(c)
		}
		return int(r)
	}
	secondaryOf := func(r, c IDX) int {
		if byColumn {
			return int(r)
		}
		return int(c)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		pa, pb := primaryOf(rows[ia], cols[ia]), primaryOf(rows[ib], cols[ib])
		if pa != pb {
			return pa < pb
		}
		return secondaryOf(rows[ia], cols[ia]) < secondaryOf(rows[ib], cols[ib])
	})

	sortedValues := make([]T, n)
	sortedRows := make([]IDX, n)
	sortedCols := make([]IDX, n)
	for newI, oldI := range order {
		sortedValues[newI] = values[oldI]
		sortedRows[newI] = rows[oldI]
		sortedCols[newI] = cols[oldI]
	}
	copy(values, sortedValues)
	copy(rows, sortedRows)
	copy(cols, sortedCols)

	outValues = make([]T, 0, n)
	outIndices = make([]IDX, 0, n)
	pointers = make([]int, primaryDim+1)

	pp := 0
	havePrev := false
	prevP, prevS := -1, -1
	for i := 0; i < n; i++ {
		p := primaryOf(sortedRows[i], sortedCols[i])
		s := secondaryOf(sortedRows[i], sortedCols[i])
		if havePrev && p == prevP && s == prevS {
			return nil, nil, nil, NewError(InvalidInput, "compress triplets: duplicate entry at (row=%d, col=%d)", sortedRows[i], sortedCols[i])
		}
		for pp < p {
			pp++
			pointers[pp] = len(outValues)
		}
		if sortedValues[i] != 0 {
			outValues = append(outValues, sortedValues[i])
			outIndices = append(outIndices, IDX(s))
		}
		prevP, prevS = p, s
		havePrev = true
	}
	for pp < primaryDim {
		pp++
		pointers[pp] = len(outValues)
	}

	return outValues, outIndices, pointers, nil
}

// BuildCompressedFromTriplets compresses and constructs a compressed
// sparse matrix in one step, the template every triplet-based loader
// build follows.
func BuildCompressedFromTriplets[T Numeric, IDX Index](byColumn bool, nrow, ncol int, values []T, rows, cols []IDX) (*CompressedSparseMatrix[T, IDX], error) {
	outValues, outIndices, pointers, err := CompressTriplets[T, IDX](byColumn, nrow, ncol, values, rows, cols)
	if err != nil {
		return nil, err
	}
	if byColumn {
		return NewCompressedSparseColumn[T, IDX](nrow, ncol, outValues, outIndices, pointers)
	}
	return NewCompressedSparseRow[T, IDX](nrow, ncol, outValues, outIndices, pointers)
}
