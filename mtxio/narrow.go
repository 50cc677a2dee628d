package mtxio

import "github.com/LTLA/tatami/matrix"

// narrowAccessor erases the value-type parameter of a per-category
// compressed-sparse sub-matrix so that layeredMatrix can hold uint8,
// uint16, and uint32 sub-matrices side by side and present them all as
// double-valued to the outside world. This is the internal tagged
// union, minus the tag: dispatch happens by which accessor a caller
// reaches through, not a runtime switch.
type narrowAccessor interface {
	shape() (int, int)
	newWorkspace(rowAxis bool) matrix.Workspace
	row(r int, buf []float64, first, last int, ws matrix.Workspace) []float64
	column(c int, buf []float64, first, last int, ws matrix.Workspace) []float64
	sparseRow(r int, vbuf []float64, ibuf []int, first, last int, ws matrix.Workspace, sorted bool) matrix.SparseRange[float64, int]
	sparseColumn(c int, vbuf []float64, ibuf []int, first, last int, ws matrix.Workspace, sorted bool) matrix.SparseRange[float64, int]
}

type narrowAdapter[T matrix.Numeric] struct {
	m *matrix.CompressedSparseMatrix[T, int]
}

func (a narrowAdapter[T]) shape() (int, int) { return a.m.Shape() }

func (a narrowAdapter[T]) newWorkspace(rowAxis bool) matrix.Workspace { return a.m.NewWorkspace(rowAxis) }

func (a narrowAdapter[T]) row(r int, buf []float64, first, last int, ws matrix.Workspace) []float64 {
	narrow := make([]T, last-first)
	a.m.Row(r, narrow, first, last, ws)
	return widen(narrow, buf)
}

func (a narrowAdapter[T]) column(c int, buf []float64, first, last int, ws matrix.Workspace) []float64 {
	narrow := make([]T, last-first)
	a.m.Column(c, narrow, first, last, ws)
	return widen(narrow, buf)
}

func (a narrowAdapter[T]) sparseRow(r int, vbuf []float64, ibuf []int, first, last int, ws matrix.Workspace, sorted bool) matrix.SparseRange[float64, int] {
	nv := make([]T, last-first)
	ni := make([]int, last-first)
	sr := a.m.SparseRow(r, nv, ni, first, last, ws, sorted)
	return widenSparse(sr, vbuf, ibuf)
}

func (a narrowAdapter[T]) sparseColumn(c int, vbuf []float64, ibuf []int, first, last int, ws matrix.Workspace, sorted bool) matrix.SparseRange[float64, int] {
	nv := make([]T, last-first)
	ni := make([]int, last-first)
	sr := a.m.SparseColumn(c, nv, ni, first, last, ws, sorted)
	return widenSparse(sr, vbuf, ibuf)
}

func widen[T matrix.Numeric](narrow []T, out []float64) []float64 {
	out = out[:len(narrow)]
	for i, v := range narrow {
		out[i] = float64(v)
	}
	return out
}

func widenSparse[T matrix.Numeric](sr matrix.SparseRange[T, int], vbuf []float64, ibuf []int) matrix.SparseRange[float64, int] {
	n := sr.Count()
	vout := vbuf[:n]
	for i, v := range sr.Values {
		vout[i] = float64(v)
	}
	copy(ibuf[:n], sr.Indices)
	return matrix.SparseRange[float64, int]{Values: vout, Indices: ibuf[:n]}
}
