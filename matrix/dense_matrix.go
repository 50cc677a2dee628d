package matrix

// DenseRowMatrix is a read-only dense matrix backed by a row-major
// []T: the (i*ncol + j)-th element of data is the [i, j]-th element of
// the matrix. Row extraction is zero-copy; column extraction gathers
// into the caller's buffer.
type DenseRowMatrix[T Numeric, IDX Index] struct {
	nrow, ncol int
	data       []T
}

// NewDenseRowMatrix wraps data as an nrow x ncol row-major matrix. It
// panics if nrow or ncol is negative and returns InvalidShape if
// len(data) != nrow*ncol.
func NewDenseRowMatrix[T Numeric, IDX Index](nrow, ncol int, data []T) (*DenseRowMatrix[T, IDX], error) {
	if nrow < 0 || ncol < 0 {
		panic(ErrBadShape)
	}
	if len(data) != nrow*ncol {
		return nil, NewError(InvalidShape, "dense row matrix: data has %d elements, expected %d for a %dx%d matrix", len(data), nrow*ncol, nrow, ncol)
	}
	return &DenseRowMatrix[T, IDX]{nrow: nrow, ncol: ncol, data: data}, nil
}

func (m *DenseRowMatrix[T, IDX]) Shape() (int, int)     { return m.nrow, m.ncol }
func (m *DenseRowMatrix[T, IDX]) IsSparse() bool        { return false }
func (m *DenseRowMatrix[T, IDX]) PrefersRows() bool     { return true }
func (m *DenseRowMatrix[T, IDX]) Type() ContentType     { return TypeOf[T]() }
func (m *DenseRowMatrix[T, IDX]) NewWorkspace(bool) Workspace { return nil }

// Row returns a slice straight into the row's backing storage: no
// buffer is filled. The slice is valid only until the matrix is
// mutated, which never happens post-construction, so in practice it
// remains valid indefinitely.
func (m *DenseRowMatrix[T, IDX]) Row(r int, buf []T, first, last int, ws Workspace) []T {
	boundsCheck(r < 0 || r >= m.nrow, "DenseRowMatrix.Row: row %d out of range [0, %d)", r, m.nrow)
	boundsCheck(first < 0 || first > last || last > m.ncol, "DenseRowMatrix.Row: window [%d, %d) invalid for %d columns", first, last, m.ncol)
	base := r * m.ncol
	return m.data[base+first : base+last]
}

// Column gathers a strided slice into buf, since columns are not
// contiguous in row-major storage.
func (m *DenseRowMatrix[T, IDX]) Column(c int, buf []T, first, last int, ws Workspace) []T {
	boundsCheck(c < 0 || c >= m.ncol, "DenseRowMatrix.Column: column %d out of range [0, %d)", c, m.ncol)
	boundsCheck(first < 0 || first > last || last > m.nrow, "DenseRowMatrix.Column: window [%d, %d) invalid for %d rows", first, last, m.nrow)
	out := buf[:last-first]
	for i := first; i < last; i++ {
		out[i-first] = m.data[i*m.ncol+c]
	}
	return out
}

func (m *DenseRowMatrix[T, IDX]) SparseRow(r int, vbuf []T, ibuf []IDX, first, last int, ws Workspace, sorted bool) SparseRange[T, IDX] {
	return DenseSparseFallback[T, IDX](func(b []T) []T { return m.Row(r, b, first, last, ws) }, vbuf, ibuf, first, last)
}

func (m *DenseRowMatrix[T, IDX]) SparseColumn(c int, vbuf []T, ibuf []IDX, first, last int, ws Workspace, sorted bool) SparseRange[T, IDX] {
	return DenseSparseFallback[T, IDX](func(b []T) []T { return m.Column(c, b, first, last, ws) }, vbuf, ibuf, first, last)
}

// DenseColumnMatrix is the column-major mirror of DenseRowMatrix: the
// (j*nrow + i)-th element of data is the [i, j]-th element of the
// matrix. Column extraction is zero-copy; row extraction gathers.
type DenseColumnMatrix[T Numeric, IDX Index] struct {
	nrow, ncol int
	data       []T
}

// NewDenseColumnMatrix wraps data as an nrow x ncol column-major
// matrix, with the same validation as NewDenseRowMatrix.
func NewDenseColumnMatrix[T Numeric, IDX Index](nrow, ncol int, data []T) (*DenseColumnMatrix[T, IDX], error) {
	if nrow < 0 || ncol < 0 {
		panic(ErrBadShape)
	}
	if len(data) != nrow*ncol {
		return nil, NewError(InvalidShape, "dense column matrix: data has %d elements, expected %d for a %dx%d matrix", len(data), nrow*ncol, nrow, ncol)
	}
	return &DenseColumnMatrix[T, IDX]{nrow: nrow, ncol: ncol, data: data}, nil
}

func (m *DenseColumnMatrix[T, IDX]) Shape() (int, int)     { return m.nrow, m.ncol }
func (m *DenseColumnMatrix[T, IDX]) IsSparse() bool        { return false }
func (m *DenseColumnMatrix[T, IDX]) PrefersRows() bool     { return false }
func (m *DenseColumnMatrix[T, IDX]) Type() ContentType     { return TypeOf[T]() }
func (m *DenseColumnMatrix[T, IDX]) NewWorkspace(bool) Workspace { return nil }

func (m *DenseColumnMatrix[T, IDX]) Column(c int, buf []T, first, last int, ws Workspace) []T {
	boundsCheck(c < 0 || c >= m.ncol, "DenseColumnMatrix.Column: column %d out of range [0, %d)", c, m.ncol)
	boundsCheck(first < 0 || first > last || last > m.nrow, "DenseColumnMatrix.Column: window [%d, %d) invalid for %d rows", first, last, m.nrow)
	base := c * m.nrow
	return m.data[base+first : base+last]
}

func (m *DenseColumnMatrix[T, IDX]) Row(r int, buf []T, first, last int, ws Workspace) []T {
	boundsCheck(r < 0 || r >= m.nrow, "DenseColumnMatrix.Row: row %d out of range [0, %d)", r, m.nrow)
	boundsCheck(first < 0 || first > last || last > m.ncol, "DenseColumnMatrix.Row: window [%d, %d) invalid for %d columns", first, last, m.ncol)
	out := buf[:last-first]
	for j := first; j < last; j++ {
		out[j-first] = m.data[j*m.nrow+r]
	}
	return out
}

func (m *DenseColumnMatrix[T, IDX]) SparseRow(r int, vbuf []T, ibuf []IDX, first, last int, ws Workspace, sorted bool) SparseRange[T, IDX] {
	return DenseSparseFallback[T, IDX](func(b []T) []T { return m.Row(r, b, first, last, ws) }, vbuf, ibuf, first, last)
}

func (m *DenseColumnMatrix[T, IDX]) SparseColumn(c int, vbuf []T, ibuf []IDX, first, last int, ws Workspace, sorted bool) SparseRange[T, IDX] {
	return DenseSparseFallback[T, IDX](func(b []T) []T { return m.Column(c, b, first, last, ws) }, vbuf, ibuf, first, last)
}
