// Package matrix defines the uniform, abstract access contract for
// two-dimensional numeric matrices: dense or sparse, row- or
// column-major, and potentially composed through layers of delayed
// transformations. Callers iterate a Matrix one row or column at a
// time without knowing its backing storage.
package matrix

// Numeric is the set of value types a Matrix may hold.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Index is the set of types usable as a secondary-axis position in a
// SparseRange or a compressed-sparse index array.
type Index interface {
	~int | ~int32 | ~int64
}

// ContentType is a nominal tag for a Matrix's value type. Consumers use
// it for dispatch; it carries no guarantee about in-memory layout.
type ContentType int

const (
	UnknownType ContentType = iota
	Double
	Float32Type
	IntType
	Int8Type
	Int16Type
	Int32Type
	Int64Type
	UintType
	Uint8Type
	Uint16Type
	Uint32Type
	Uint64Type
)

func (c ContentType) String() string {
	switch c {
	case Double:
		return "double"
	case Float32Type:
		return "float32"
	case IntType:
		return "int"
	case Int8Type:
		return "int8"
	case Int16Type:
		return "int16"
	case Int32Type:
		return "int32"
	case Int64Type:
		return "int64"
	case UintType:
		return "uint"
	case Uint8Type:
		return "uint8"
	case Uint16Type:
		return "uint16"
	case Uint32Type:
		return "uint32"
	case Uint64Type:
		return "uint64"
	default:
		return "unknown"
	}
}

// TypeOf determines the ContentType tag for T.
func TypeOf[T Numeric]() ContentType {
	var zero T
	switch any(zero).(type) {
	case float64:
		return Double
	case float32:
		return Float32Type
	case int:
		return IntType
	case int8:
		return Int8Type
	case int16:
		return Int16Type
	case int32:
		return Int32Type
	case int64:
		return Int64Type
	case uint:
		return UintType
	case uint8:
		return Uint8Type
	case uint16:
		return Uint16Type
	case uint32:
		return Uint32Type
	case uint64:
		return Uint64Type
	default:
		return UnknownType
	}
}

// Workspace is opaque per-axis streaming state handed back to callers
// by NewWorkspace. A Workspace is bound to exactly one matrix and one
// axis; passing it to a different matrix or the opposite axis is
// undefined. A nil Workspace means "no state needed" and is always a
// legal argument to Row/Column/SparseRow/SparseColumn.
// It carries no methods: engines hand back a concrete, package-private
// type and recover it with a type assertion, rather than exposing any
// behavior on the handle itself. Packages outside matrix (e.g. a
// layered loader composing several sub-matrices) can define their own
// concrete workspace types too, since the interface is satisfied
// trivially.
type Workspace interface{}

// Matrix is the access contract every engine and delayed wrapper in
// this module implements. It is immutable after construction: no
// operation here ever mutates the logical contents.
type Matrix[T Numeric, IDX Index] interface {
	// Shape returns (nrow, ncol). Both are >= 0 and never change.
	Shape() (int, int)

	// IsSparse is a hint only: an engine may report true and still
	// return explicit zeros, or report false and still answer
	// SparseRow/SparseColumn via the dense fallback.
	IsSparse() bool

	// PrefersRows reports whether row access is expected cheaper than
	// column access. Engines must report this truthfully; callers use
	// it to choose their streaming axis.
	PrefersRows() bool

	// Type returns the nominal content-type tag for T.
	Type() ContentType

	// NewWorkspace allocates per-axis scratch state for repeated
	// extractions along rowAxis. It may return nil if no state is
	// needed for this engine and axis.
	NewWorkspace(rowAxis bool) Workspace

	// Row returns the values of row r restricted to [first, last).
	// The returned slice may alias buf (buf was filled) or point into
	// internal storage (valid only until the next call against the
	// same workspace). len(buf) must be >= last-first.
	Row(r int, buf []T, first, last int, ws Workspace) []T

	// Column is the transpose of Row.
	Column(c int, buf []T, first, last int, ws Workspace) []T

	// SparseRow returns the non-zero values of row r restricted to
	// [first, last) as a SparseRange. Indices in the range lie within
	// [first, last); when sorted is true they are strictly increasing.
	SparseRow(r int, vbuf []T, ibuf []IDX, first, last int, ws Workspace, sorted bool) SparseRange[T, IDX]

	// SparseColumn is the transpose of SparseRow.
	SparseColumn(c int, vbuf []T, ibuf []IDX, first, last int, ws Workspace, sorted bool) SparseRange[T, IDX]
}

// FullRow extracts the entirety of row r into buf, which must have
// length >= ncol.
func FullRow[T Numeric, IDX Index](m Matrix[T, IDX], r int, buf []T, ws Workspace) []T {
	_, ncol := m.Shape()
	return m.Row(r, buf, 0, ncol, ws)
}

// FullColumn extracts the entirety of column c into buf, which must
// have length >= nrow.
func FullColumn[T Numeric, IDX Index](m Matrix[T, IDX], c int, buf []T, ws Workspace) []T {
	nrow, _ := m.Shape()
	return m.Column(c, buf, 0, nrow, ws)
}

// FullSparseRow is the sparse counterpart of FullRow.
func FullSparseRow[T Numeric, IDX Index](m Matrix[T, IDX], r int, vbuf []T, ibuf []IDX, ws Workspace, sorted bool) SparseRange[T, IDX] {
	_, ncol := m.Shape()
	return m.SparseRow(r, vbuf, ibuf, 0, ncol, ws, sorted)
}

// FullSparseColumn is the sparse counterpart of FullColumn.
func FullSparseColumn[T Numeric, IDX Index](m Matrix[T, IDX], c int, vbuf []T, ibuf []IDX, ws Workspace, sorted bool) SparseRange[T, IDX] {
	nrow, _ := m.Shape()
	return m.SparseColumn(c, vbuf, ibuf, 0, nrow, ws, sorted)
}

// DenseSparseFallback implements the sparse extraction fallback for a
// dense-only engine: it calls denseFn to fill a dense window and
// reports every position in the window as a stored (possibly zero)
// value, with strictly increasing indices.
func DenseSparseFallback[T Numeric, IDX Index](denseFn func([]T) []T, vbuf []T, ibuf []IDX, first, last int) SparseRange[T, IDX] {
	vals := denseFn(vbuf[:last-first])
	for i := first; i < last; i++ {
		ibuf[i-first] = IDX(i)
	}
	return SparseRange[T, IDX]{Values: vals, Indices: ibuf[:last-first]}
}
