package matrix

// DelayedSubset wraps a Matrix and remaps one axis through an index
// vector sigma (arbitrary order, duplicates permitted). It never
// copies the wrapped matrix; every extraction re-dispatches to it,
// possibly with a gather across sigma.
type DelayedSubset[T Numeric, IDX Index] struct {
	wrapped Matrix[T, IDX]
	// rowAxis is true when rows are the subsetted axis (sigma indexes
	// wrapped rows), false when columns are.
	rowAxis bool
	sigma   []int
}

// NewDelayedSubsetRows subsets the rows of w: the result has len(sigma)
// rows and w's column count. Each sigma[i] must lie in [0, w.nrow).
func NewDelayedSubsetRows[T Numeric, IDX Index](w Matrix[T, IDX], sigma []int) (*DelayedSubset[T, IDX], error) {
	return newDelayedSubset[T, IDX](w, true, sigma)
}

// NewDelayedSubsetColumns subsets the columns of w.
func NewDelayedSubsetColumns[T Numeric, IDX Index](w Matrix[T, IDX], sigma []int) (*DelayedSubset[T, IDX], error) {
	return newDelayedSubset[T, IDX](w, false, sigma)
}

func newDelayedSubset[T Numeric, IDX Index](w Matrix[T, IDX], rowAxis bool, sigma []int) (*DelayedSubset[T, IDX], error) {
	wrow, wcol := w.Shape()
	bound := wcol
	if rowAxis {
		bound = wrow
	}
	for i, s := range sigma {
		if s < 0 || s >= bound {
			return nil, NewError(InvalidInput, "delayed subset: sigma[%d]=%d out of range [0, %d)", i, s, bound)
		}
	}
	return &DelayedSubset[T, IDX]{wrapped: w, rowAxis: rowAxis, sigma: sigma}, nil
}

func (d *DelayedSubset[T, IDX]) Shape() (int, int) {
	wrow, wcol := d.wrapped.Shape()
	if d.rowAxis {
		return len(d.sigma), wcol
	}
	return wrow, len(d.sigma)
}

func (d *DelayedSubset[T, IDX]) IsSparse() bool { return d.wrapped.IsSparse() }

// PrefersRows inherits unchanged from the wrapped matrix: subsetting
// rows does not force a preference flip, since column slabs are
// untouched by a row subset (and vice versa).
func (d *DelayedSubset[T, IDX]) PrefersRows() bool { return d.wrapped.PrefersRows() }

func (d *DelayedSubset[T, IDX]) Type() ContentType { return d.wrapped.Type() }

// subsetWorkspace carries the wrapped matrix's own workspace (reused
// on the non-subsetted axis) plus a reusable scratch buffer sized to
// the wrapped matrix's dimension along the subsetted axis.
type subsetWorkspace[T Numeric] struct {
	rowAxis bool
	wrapped Workspace
	scratch []T
}

// NewWorkspace returns nil on the subsetted axis (sigma drives access
// there, which is not monotone in general) and forwards to the wrapped
// matrix's own workspace on the other axis.
func (d *DelayedSubset[T, IDX]) NewWorkspace(rowAxis bool) Workspace {
	if rowAxis == d.rowAxis {
		return nil
	}
	wrow, wcol := d.wrapped.Shape()
	scratchLen := wcol
	if d.rowAxis {
		scratchLen = wrow
	}
	return &subsetWorkspace[T]{
		rowAxis: rowAxis,
		wrapped: d.wrapped.NewWorkspace(rowAxis),
		scratch: make([]T, scratchLen),
	}
}

func (d *DelayedSubset[T, IDX]) Row(r int, buf []T, first, last int, ws Workspace) []T {
	if d.rowAxis {
		boundsCheck(r < 0 || r >= len(d.sigma), "DelayedSubset.Row: %d out of range [0, %d)", r, len(d.sigma))
		return d.wrapped.Row(d.sigma[r], buf, first, last, nil)
	}
	return d.gather(buf, first, last, ws, func(full []T, j int) T { return full[d.sigma[j]] }, func(sw Workspace) (Workspace, []T) {
		s, _ := sw.(*subsetWorkspace[T])
		if s == nil {
			_, wcol := d.wrapped.Shape()
			return nil, make([]T, wcol)
		}
		return s.wrapped, s.scratch
	}, func(wws Workspace, scratch []T) []T { return FullRow[T, IDX](d.wrapped, r, scratch, wws) })
}

func (d *DelayedSubset[T, IDX]) Column(c int, buf []T, first, last int, ws Workspace) []T {
	if !d.rowAxis {
		boundsCheck(c < 0 || c >= len(d.sigma), "DelayedSubset.Column: %d out of range [0, %d)", c, len(d.sigma))
		return d.wrapped.Column(d.sigma[c], buf, first, last, nil)
	}
	return d.gather(buf, first, last, ws, func(full []T, j int) T { return full[d.sigma[j]] }, func(sw Workspace) (Workspace, []T) {
		s, _ := sw.(*subsetWorkspace[T])
		if s == nil {
			wrow, _ := d.wrapped.Shape()
			return nil, make([]T, wrow)
		}
		return s.wrapped, s.scratch
	}, func(wws Workspace, scratch []T) []T { return FullColumn[T, IDX](d.wrapped, c, scratch, wws) })
}

// gather implements the "other axis" extraction template: fetch the
// wrapped matrix's full row/column into scratch, then index it by
// sigma for every requested window position.
func (d *DelayedSubset[T, IDX]) gather(
	buf []T, first, last int, ws Workspace,
	pick func(full []T, j int) T,
	unpack func(Workspace) (Workspace, []T),
	fetchFull func(Workspace, []T) []T,
) []T {
	wws, scratch := unpack(ws)
	full := fetchFull(wws, scratch)
	out := buf[:last-first]
	for k := first; k < last; k++ {
		out[k-first] = pick(full, k)
	}
	return out
}

func (d *DelayedSubset[T, IDX]) SparseRow(r int, vbuf []T, ibuf []IDX, first, last int, ws Workspace, sorted bool) SparseRange[T, IDX] {
	if d.rowAxis {
		boundsCheck(r < 0 || r >= len(d.sigma), "DelayedSubset.SparseRow: %d out of range [0, %d)", r, len(d.sigma))
		return d.wrapped.SparseRow(d.sigma[r], vbuf, ibuf, first, last, nil, sorted)
	}
	_, wcol := d.wrapped.Shape()
	scratch := make([]T, wcol)
	var wws Workspace
	if sw, ok := ws.(*subsetWorkspace[T]); ok {
		scratch = sw.scratch
		wws = sw.wrapped
	}
	full := FullRow[T, IDX](d.wrapped, r, scratch, wws)
	return d.gatherSparse(full, vbuf, ibuf, first, last)
}

func (d *DelayedSubset[T, IDX]) SparseColumn(c int, vbuf []T, ibuf []IDX, first, last int, ws Workspace, sorted bool) SparseRange[T, IDX] {
	if !d.rowAxis {
		boundsCheck(c < 0 || c >= len(d.sigma), "DelayedSubset.SparseColumn: %d out of range [0, %d)", c, len(d.sigma))
		return d.wrapped.SparseColumn(d.sigma[c], vbuf, ibuf, first, last, nil, sorted)
	}
	wrow, _ := d.wrapped.Shape()
	scratch := make([]T, wrow)
	var wws Workspace
	if sw, ok := ws.(*subsetWorkspace[T]); ok {
		scratch = sw.scratch
		wws = sw.wrapped
	}
	full := FullColumn[T, IDX](d.wrapped, c, scratch, wws)
	return d.gatherSparse(full, vbuf, ibuf, first, last)
}

// gatherSparse emits only the non-zero positions of full[sigma[k]] for
// k in [first, last), reporting k itself as the index. Because k is
// visited in increasing order, the output is strictly increasing
// regardless of how sigma itself is ordered, so no separate sort step
// is needed to satisfy a sorted=true request.
func (d *DelayedSubset[T, IDX]) gatherSparse(full []T, vbuf []T, ibuf []IDX, first, last int) SparseRange[T, IDX] {
	n := 0
	for k := first; k < last; k++ {
		v := full[d.sigma[k]]
		if v != 0 {
			vbuf[n] = v
			ibuf[n] = IDX(k)
			n++
		}
	}
	return SparseRange[T, IDX]{Values: vbuf[:n], Indices: ibuf[:n]}
}
