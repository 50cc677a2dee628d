package mtxio

import (
	"io"

	"github.com/LTLA/tatami/matrix"
)

// LayeredResult is a layered-load envelope: a single double-valued,
// column-compressed matrix plus the row permutation that maps an
// original input row to its position in that matrix.
// out.Matrix.Row(out.Permutation[i]) reproduces input.Row(i).
type LayeredResult struct {
	Matrix      matrix.Matrix[float64, int]
	Permutation []int
	Categories  Categories
}

// LoadLayered parses r as Matrix Market and partitions rows into up to
// three sub-matrices by value-magnitude category, fronted by a single
// double-valued matrix and a row permutation.
func LoadLayered(r io.Reader) (*LayeredResult, error) {
	t, err := ParseTriplets(r)
	if err != nil {
		return nil, err
	}
	return BuildLayered(t)
}

// BuildLayered runs the layered build directly on already-parsed
// triplets, independent of the Matrix Market grammar, so that callers
// with their own triplet source can still use the loader's
// category-splitting strategy.
func BuildLayered(t *Triplets) (*LayeredResult, error) {
	cats := classify(t.Nrow, t.Rows, t.Values)

	var localRows, cols [3][]int
	var values [3][]float64
	for i, r := range t.Rows {
		cat := cats.Assignment[r]
		localRows[cat] = append(localRows[cat], cats.localRow(r))
		cols[cat] = append(cols[cat], t.Cols[i])
		values[cat] = append(values[cat], t.Values[i])
	}

	var accessors [3]narrowAccessor
	var err error
	accessors[0], err = buildNarrow[uint8](cats.RowsPerCategory[0], t.Ncol, values[0], localRows[0], cols[0])
	if err != nil {
		return nil, err
	}
	accessors[1], err = buildNarrow[uint16](cats.RowsPerCategory[1], t.Ncol, values[1], localRows[1], cols[1])
	if err != nil {
		return nil, err
	}
	accessors[2], err = buildNarrow[uint32](cats.RowsPerCategory[2], t.Ncol, values[2], localRows[2], cols[2])
	if err != nil {
		return nil, err
	}

	bounds := [4]int{0, cats.RowsPerCategory[0], cats.RowsPerCategory[0] + cats.RowsPerCategory[1], t.Nrow}

	lm := &layeredMatrix{
		nrow:      t.Nrow,
		ncol:      t.Ncol,
		accessors: accessors,
		bounds:    bounds,
	}
	return &LayeredResult{Matrix: lm, Permutation: cats.Permutation, Categories: cats}, nil
}

func buildNarrow[T matrix.Numeric](nrow, ncol int, values []float64, rows, cols []int) (narrowAccessor, error) {
	narrowValues := make([]T, len(values))
	for i, v := range values {
		narrowValues[i] = T(v)
	}
	m, err := matrix.BuildCompressedFromTriplets[T, int](true, nrow, ncol, narrowValues, rows, cols)
	if err != nil {
		return nil, err
	}
	return narrowAdapter[T]{m: m}, nil
}

// layeredMatrix is the internal composite matrix: the row index space
// is partitioned into three contiguous ranges, one per category, and
// Row/Column dispatch into whichever sub-matrices the requested range
// touches.
type layeredMatrix struct {
	nrow, ncol int
	accessors  [3]narrowAccessor
	bounds     [4]int
}

func (m *layeredMatrix) Shape() (int, int)        { return m.nrow, m.ncol }
func (m *layeredMatrix) IsSparse() bool           { return true }
func (m *layeredMatrix) PrefersRows() bool        { return false }
func (m *layeredMatrix) Type() matrix.ContentType { return matrix.Double }

func (m *layeredMatrix) locate(r int) (cat, local int) {
	for cat = 0; cat < 3; cat++ {
		if r < m.bounds[cat+1] {
			return cat, r - m.bounds[cat]
		}
	}
	return 2, r - m.bounds[2]
}

type layeredWorkspace struct {
	subs [3]matrix.Workspace
}

func (m *layeredMatrix) NewWorkspace(rowAxis bool) matrix.Workspace {
	var w layeredWorkspace
	for i, a := range m.accessors {
		w.subs[i] = a.newWorkspace(rowAxis)
	}
	return &w
}

func subWorkspace(ws matrix.Workspace, cat int) matrix.Workspace {
	lw, ok := ws.(*layeredWorkspace)
	if !ok {
		return nil
	}
	return lw.subs[cat]
}

func (m *layeredMatrix) Row(r int, buf []float64, first, last int, ws matrix.Workspace) []float64 {
	cat, local := m.locate(r)
	return m.accessors[cat].row(local, buf, first, last, subWorkspace(ws, cat))
}

func (m *layeredMatrix) SparseRow(r int, vbuf []float64, ibuf []int, first, last int, ws matrix.Workspace, sorted bool) matrix.SparseRange[float64, int] {
	cat, local := m.locate(r)
	return m.accessors[cat].sparseRow(local, vbuf, ibuf, first, last, subWorkspace(ws, cat), sorted)
}

// Column spans every category, since a column touches rows from all
// three. It is assembled piecewise: each category's sub-matrix is
// asked for its column restricted to the rows of [first, last) that
// fall in that category's contiguous output range.
func (m *layeredMatrix) Column(c int, buf []float64, first, last int, ws matrix.Workspace) []float64 {
	out := buf[:last-first]
	for cat := 0; cat < 3; cat++ {
		lo, hi := intersect(m.bounds[cat], m.bounds[cat+1], first, last)
		if lo >= hi {
			continue
		}
		localFirst, localLast := lo-m.bounds[cat], hi-m.bounds[cat]
		sub := m.accessors[cat].column(c, make([]float64, localLast-localFirst), localFirst, localLast, subWorkspace(ws, cat))
		copy(out[lo-first:hi-first], sub)
	}
	return out
}

func (m *layeredMatrix) SparseColumn(c int, vbuf []float64, ibuf []int, first, last int, ws matrix.Workspace, sorted bool) matrix.SparseRange[float64, int] {
	n := 0
	for cat := 0; cat < 3; cat++ {
		lo, hi := intersect(m.bounds[cat], m.bounds[cat+1], first, last)
		if lo >= hi {
			continue
		}
		localFirst, localLast := lo-m.bounds[cat], hi-m.bounds[cat]
		sr := m.accessors[cat].sparseColumn(c, make([]float64, localLast-localFirst), make([]int, localLast-localFirst), localFirst, localLast, subWorkspace(ws, cat), sorted)
		for i, v := range sr.Values {
			vbuf[n] = v
			ibuf[n] = sr.Indices[i] + m.bounds[cat]
			n++
		}
	}
	return matrix.SparseRange[float64, int]{Values: vbuf[:n], Indices: ibuf[:n]}
}

func intersect(aLo, aHi, bLo, bHi int) (int, int) {
	lo := aLo
	if bLo > lo {
		lo = bLo
	}
	hi := aHi
	if bHi < hi {
		hi = bHi
	}
	return lo, hi
}
