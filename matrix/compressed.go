package matrix

import "sort"

// CompressedSparseMatrix is a compressed-sparse engine over a primary
// axis: compressed-sparse-column (CSC) when byColumn is true,
// compressed-sparse-row (CSR) when it is false. CSR is implemented as
// the transpose of CSC's logic rather than as a separate type, per the
// symmetry the two formats share.
//
// values[0:nnz) and indices[0:nnz) hold the non-zero entries in
// primary-slab order; pointers[p] is the offset of primary slab p and
// pointers[P] == nnz.
type CompressedSparseMatrix[T Numeric, IDX Index] struct {
	nrow, ncol int
	values     []T
	indices    []IDX
	pointers   []int
	byColumn   bool
}

// NewCompressedSparseColumn builds a CSC matrix: values/indices/pointers
// are column-major.
func NewCompressedSparseColumn[T Numeric, IDX Index](nrow, ncol int, values []T, indices []IDX, pointers []int) (*CompressedSparseMatrix[T, IDX], error) {
	return newCompressed[T, IDX](nrow, ncol, values, indices, pointers, true)
}

// NewCompressedSparseRow builds a CSR matrix: values/indices/pointers
// are row-major.
func NewCompressedSparseRow[T Numeric, IDX Index](nrow, ncol int, values []T, indices []IDX, pointers []int) (*CompressedSparseMatrix[T, IDX], error) {
	return newCompressed[T, IDX](nrow, ncol, values, indices, pointers, false)
}

func newCompressed[T Numeric, IDX Index](nrow, ncol int, values []T, indices []IDX, pointers []int, byColumn bool) (*CompressedSparseMatrix[T, IDX], error) {
	if nrow < 0 || ncol < 0 {
		panic(ErrBadShape)
	}
	primaryDim, secondaryDim := nrow, ncol
	if byColumn {
		primaryDim, secondaryDim = ncol, nrow
	}

	if len(pointers) != primaryDim+1 {
		return nil, NewError(InvalidShape, "compressed sparse matrix: pointers has length %d, expected %d", len(pointers), primaryDim+1)
	}
	if pointers[0] != 0 {
		return nil, NewError(InvalidInput, "compressed sparse matrix: pointers[0] must be 0, got %d", pointers[0])
	}
	for p := 1; p < len(pointers); p++ {
		if pointers[p] < pointers[p-1] {
			return nil, NewError(InvalidInput, "compressed sparse matrix: pointers must be nondecreasing, pointers[%d]=%d < pointers[%d]=%d", p, pointers[p], p-1, pointers[p-1])
		}
	}
	nnz := pointers[len(pointers)-1]
	if len(values) != nnz || len(indices) != nnz {
		return nil, NewError(InvalidShape, "compressed sparse matrix: pointers[P]=%d but values has %d and indices has %d entries", nnz, len(values), len(indices))
	}

	for p := 0; p < primaryDim; p++ {
		lo, hi := pointers[p], pointers[p+1]
		prev := -1
		for k := lo; k < hi; k++ {
			idx := int(indices[k])
			if idx < 0 || idx >= secondaryDim {
				return nil, NewError(InvalidInput, "compressed sparse matrix: index %d in slab %d out of range [0, %d)", idx, p, secondaryDim)
			}
			if idx <= prev {
				return nil, NewError(InvalidInput, "compressed sparse matrix: indices in slab %d are not strictly increasing at offset %d", p, k)
			}
			prev = idx
		}
	}

	return &CompressedSparseMatrix[T, IDX]{nrow: nrow, ncol: ncol, values: values, indices: indices, pointers: pointers, byColumn: byColumn}, nil
}

func (m *CompressedSparseMatrix[T, IDX]) Shape() (int, int) { return m.nrow, m.ncol }
func (m *CompressedSparseMatrix[T, IDX]) IsSparse() bool    { return true }
func (m *CompressedSparseMatrix[T, IDX]) PrefersRows() bool { return !m.byColumn }
func (m *CompressedSparseMatrix[T, IDX]) Type() ContentType { return TypeOf[T]() }

func (m *CompressedSparseMatrix[T, IDX]) primaryDim() int {
	if m.byColumn {
		return m.ncol
	}
	return m.nrow
}

func (m *CompressedSparseMatrix[T, IDX]) secondaryDim() int {
	if m.byColumn {
		return m.nrow
	}
	return m.ncol
}

// NewWorkspace returns nil for same-axis (primary) access, which needs
// no state, and a cursor-carrying crossAxisWorkspace for cross-axis
// (secondary) access.
func (m *CompressedSparseMatrix[T, IDX]) NewWorkspace(rowAxis bool) Workspace {
	samePrimary := rowAxis == !m.byColumn
	if samePrimary {
		return nil
	}
	cursors := make([]int, m.primaryDim())
	copy(cursors, m.pointers[:m.primaryDim()])
	return &crossAxisWorkspace{rowAxis: rowAxis, cursors: cursors, lastSecondary: -1}
}

func (m *CompressedSparseMatrix[T, IDX]) Column(c int, buf []T, first, last int, ws Workspace) []T {
	if m.byColumn {
		return m.primaryExtract(c, buf, first, last)
	}
	return m.crossExtract(c, buf, first, last, ws)
}

func (m *CompressedSparseMatrix[T, IDX]) Row(r int, buf []T, first, last int, ws Workspace) []T {
	if m.byColumn {
		return m.crossExtract(r, buf, first, last, ws)
	}
	return m.primaryExtract(r, buf, first, last)
}

func (m *CompressedSparseMatrix[T, IDX]) SparseColumn(c int, vbuf []T, ibuf []IDX, first, last int, ws Workspace, sorted bool) SparseRange[T, IDX] {
	if m.byColumn {
		return m.primarySparseExtract(c, vbuf, ibuf, first, last)
	}
	return m.crossSparseExtract(c, vbuf, ibuf, first, last, ws)
}

func (m *CompressedSparseMatrix[T, IDX]) SparseRow(r int, vbuf []T, ibuf []IDX, first, last int, ws Workspace, sorted bool) SparseRange[T, IDX] {
	if m.byColumn {
		return m.crossSparseExtract(r, vbuf, ibuf, first, last, ws)
	}
	return m.primarySparseExtract(r, vbuf, ibuf, first, last)
}

// primaryExtract handles extraction along the compressed axis: a
// binary search bounds the relevant slice of one slab, then values
// are scattered into a zero-filled buffer.
func (m *CompressedSparseMatrix[T, IDX]) primaryExtract(p int, buf []T, first, last int) []T {
	boundsCheck(p < 0 || p >= m.primaryDim(), "CompressedSparseMatrix: primary index %d out of range [0, %d)", p, m.primaryDim())
	boundsCheck(first < 0 || first > last || last > m.secondaryDim(), "CompressedSparseMatrix: window [%d, %d) invalid for dimension %d", first, last, m.secondaryDim())

	out := buf[:last-first]
	for i := range out {
		out[i] = 0
	}

	lo, hi := m.pointers[p], m.pointers[p+1]
	lo2, hi2 := m.slabBounds(lo, hi, first, last)
	for k := lo2; k < hi2; k++ {
		out[int(m.indices[k])-first] = m.values[k]
	}
	return out
}

// slabBounds finds, by binary search, the sub-range of indices[lo:hi)
// whose values lie in [first, last).
func (m *CompressedSparseMatrix[T, IDX]) slabBounds(lo, hi, first, last int) (int, int) {
	lo2 := lo + sort.Search(hi-lo, func(i int) bool { return int(m.indices[lo+i]) >= first })
	hi2 := lo + sort.Search(hi-lo, func(i int) bool { return int(m.indices[lo+i]) >= last })
	return lo2, hi2
}

func (m *CompressedSparseMatrix[T, IDX]) primarySparseExtract(p int, vbuf []T, ibuf []IDX, first, last int) SparseRange[T, IDX] {
	boundsCheck(p < 0 || p >= m.primaryDim(), "CompressedSparseMatrix: primary index %d out of range [0, %d)", p, m.primaryDim())
	boundsCheck(first < 0 || first > last || last > m.secondaryDim(), "CompressedSparseMatrix: window [%d, %d) invalid for dimension %d", first, last, m.secondaryDim())

	lo, hi := m.pointers[p], m.pointers[p+1]
	if first == 0 && last == m.secondaryDim() {
		// Full slab: alias internal storage directly.
		return SparseRange[T, IDX]{Values: m.values[lo:hi], Indices: m.indices[lo:hi]}
	}
	lo2, hi2 := m.slabBounds(lo, hi, first, last)
	n := hi2 - lo2
	copy(vbuf[:n], m.values[lo2:hi2])
	copy(ibuf[:n], m.indices[lo2:hi2])
	return SparseRange[T, IDX]{Values: vbuf[:n], Indices: ibuf[:n]}
}

// crossAxisWorkspace caches, per primary slab, the offset at which the
// last lookup for a given secondary-axis value landed, so that a
// monotone sequence of secondary values amortizes to a linear scan
// instead of re-binary-searching every slab on every call.
type crossAxisWorkspace struct {
	rowAxis       bool
	cursors       []int
	lastSecondary int
}

// locate finds, using and updating the workspace cursor for slab p,
// the offset of secondary-axis value s within indices[lo:hi); it
// returns (offset, true) on a hit or (offset, false) pointing at the
// first index >= s otherwise.
func (m *CompressedSparseMatrix[T, IDX]) locate(p, lo, hi, s int, ws *crossAxisWorkspace) (int, bool) {
	if ws == nil {
		off := lo + sort.Search(hi-lo, func(i int) bool { return int(m.indices[lo+i]) >= s })
		return off, off < hi && int(m.indices[off]) == s
	}

	cp := ws.cursors[p]
	if cp < lo {
		cp = lo
	}
	if cp > hi {
		cp = hi
	}

	if s >= ws.lastSecondary && (cp == lo || int(m.indices[cp-1]) < s) {
		for cp < hi && int(m.indices[cp]) < s {
			cp++
		}
	} else {
		cp = lo + sort.Search(hi-lo, func(i int) bool { return int(m.indices[lo+i]) >= s })
	}

	ws.cursors[p] = cp
	return cp, cp < hi && int(m.indices[cp]) == s
}

func (m *CompressedSparseMatrix[T, IDX]) crossExtract(s int, buf []T, first, last int, ws Workspace) []T {
	boundsCheck(s < 0 || s >= m.secondaryDim(), "CompressedSparseMatrix: secondary index %d out of range [0, %d)", s, m.secondaryDim())
	boundsCheck(first < 0 || first > last || last > m.primaryDim(), "CompressedSparseMatrix: window [%d, %d) invalid for dimension %d", first, last, m.primaryDim())

	cw, _ := ws.(*crossAxisWorkspace)
	out := buf[:last-first]
	for p := first; p < last; p++ {
		lo, hi := m.pointers[p], m.pointers[p+1]
		off, hit := m.locate(p, lo, hi, s, cw)
		if hit {
			out[p-first] = m.values[off]
		} else {
			out[p-first] = 0
		}
	}
	if cw != nil {
		cw.lastSecondary = s
	}
	return out
}

func (m *CompressedSparseMatrix[T, IDX]) crossSparseExtract(s int, vbuf []T, ibuf []IDX, first, last int, ws Workspace) SparseRange[T, IDX] {
	boundsCheck(s < 0 || s >= m.secondaryDim(), "CompressedSparseMatrix: secondary index %d out of range [0, %d)", s, m.secondaryDim())
	boundsCheck(first < 0 || first > last || last > m.primaryDim(), "CompressedSparseMatrix: window [%d, %d) invalid for dimension %d", first, last, m.primaryDim())

	cw, _ := ws.(*crossAxisWorkspace)
	n := 0
	for p := first; p < last; p++ {
		lo, hi := m.pointers[p], m.pointers[p+1]
		off, hit := m.locate(p, lo, hi, s, cw)
		if hit {
			vbuf[n] = m.values[off]
			ibuf[n] = IDX(p)
			n++
		}
	}
	if cw != nil {
		cw.lastSecondary = s
	}
	return SparseRange[T, IDX]{Values: vbuf[:n], Indices: ibuf[:n]}
}
