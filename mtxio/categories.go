package mtxio

import roaring "github.com/RoaringBitmap/roaring/v2"

// categoryOf buckets a row's maximum stored value into one of three
// magnitude categories: 0 for <=255, 1 for <=65535, 2 above.
func categoryOf(maxValue float64) int {
	switch {
	case maxValue <= 255:
		return 0
	case maxValue <= 65535:
		return 1
	default:
		return 2
	}
}

// Categories is the LineAssignments result of the layered loader's
// pre-pass: a per-row category, a row permutation grouping rows by
// category (category order {0,1,2}, input order preserved within a
// category), and bitmap/count bookkeeping for each category.
//
// Membership is tracked with Roaring bitmaps rather than plain slices
// so that a caller partitioning downstream work by category (rowreduce's
// CategorySums, for example) can intersect, union, or cardinality-query
// a category cheaply instead of scanning Assignment linearly.
type Categories struct {
	Assignment       []int
	Permutation      []int
	LinesPerCategory [3]int
	RowsPerCategory  [3]int
	Members          [3]*roaring.Bitmap
}

// classify runs the row-categorization pre-pass over raw triplets. It
// inspects Values before any zero-filtering happens in compression, so
// a row's category reflects every stored entry, including explicit
// zeros, not just the non-zero ones that survive into the compressed
// sub-matrices.
func classify(nrow int, rows []int, values []float64) Categories {
	rowMax := make([]float64, nrow)
	for i, r := range rows {
		if values[i] > rowMax[r] {
			rowMax[r] = values[i]
		}
	}

	c := Categories{
		Assignment:  make([]int, nrow),
		Permutation: make([]int, nrow),
	}
	for i := range c.Members {
		c.Members[i] = roaring.New()
	}

	for r := 0; r < nrow; r++ {
		cat := categoryOf(rowMax[r])
		c.Assignment[r] = cat
		c.RowsPerCategory[cat]++
		c.Members[cat].Add(uint32(r))
	}
	for _, r := range rows {
		c.LinesPerCategory[c.Assignment[r]]++
	}

	var offsets [3]int
	offsets[1] = c.RowsPerCategory[0]
	offsets[2] = offsets[1] + c.RowsPerCategory[1]
	next := offsets
	for r := 0; r < nrow; r++ {
		cat := c.Assignment[r]
		c.Permutation[r] = next[cat]
		next[cat]++
	}

	return c
}

// localRow returns the position of original row r within its own
// category's sub-matrix, i.e. Permutation[r] minus that category's
// output offset.
func (c Categories) localRow(r int) int {
	cat := c.Assignment[r]
	var offset int
	switch cat {
	case 1:
		offset = c.RowsPerCategory[0]
	case 2:
		offset = c.RowsPerCategory[0] + c.RowsPerCategory[1]
	}
	return c.Permutation[r] - offset
}
