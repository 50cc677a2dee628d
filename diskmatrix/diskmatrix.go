// Package diskmatrix is a file-backed matrix engine: the kind of
// external collaborator the core access contract anticipates but does
// not itself implement. It memory-maps a row-major binary file of
// float64 values and serves Row/Column extractions straight out of
// the mapping, so the operating system's page cache does the actual
// I/O.
package diskmatrix

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/LTLA/tatami/matrix"
	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

// Matrix is a read-only, memory-mapped dense matrix of float64 values.
// The file format is a single text header line "R,C" followed
// immediately by R*C little-endian float64 values in row-major order.
type Matrix struct {
	nrow, ncol int
	f          *os.File
	mapped     []byte
	header     int64
	iolock     *sync.Mutex
}

// Open maps path into memory. iolock, if non-nil, is acquired around
// the mmap call itself; pass the same lock shared by other file-backed
// engines in a reducer if the platform's mmap is not safe to call
// concurrently with other operations on that file descriptor. Page
// reads after mapping never touch the lock: the kernel serves them
// from the page cache without re-entering this package.
func Open(path string, iolock *sync.Mutex) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	nrow, ncol, headerLen, err := readHeader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	size := int64(nrow) * int64(ncol) * 8
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.Size() != headerLen+size {
		f.Close()
		return nil, matrix.NewError(matrix.InvalidShape, "diskmatrix: file %q has %d bytes, expected %d for a %dx%d matrix plus header", path, fi.Size(), headerLen+size, nrow, ncol)
	}

	if iolock != nil {
		iolock.Lock()
	}
	var mapped []byte
	if size > 0 {
		mapped, err = unix.Mmap(int(f.Fd()), 0, int(headerLen+size), unix.PROT_READ, unix.MAP_SHARED)
	}
	if iolock != nil {
		iolock.Unlock()
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	glog.V(1).Infof("diskmatrix: mapped %q as %dx%d (%d bytes)", path, nrow, ncol, size)
	return &Matrix{nrow: nrow, ncol: ncol, f: f, mapped: mapped, header: headerLen, iolock: iolock}, nil
}

func readHeader(f *os.File) (nrow, ncol int, headerLen int64, err error) {
	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return 0, 0, 0, err
	}
	headerLen = int64(len(line))
	line = strings.TrimSpace(line)
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return 0, 0, 0, matrix.NewError(matrix.ParseError, "diskmatrix: header %q must be \"R,C\"", line)
	}
	nrow, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, matrix.NewError(matrix.ParseError, "diskmatrix: header %q has a non-numeric row count", line)
	}
	ncol, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, matrix.NewError(matrix.ParseError, "diskmatrix: header %q has a non-numeric column count", line)
	}
	if nrow < 0 || ncol < 0 {
		panic(matrix.ErrBadShape)
	}
	return nrow, ncol, headerLen, nil
}

// Close unmaps the file and releases its descriptor.
func (m *Matrix) Close() error {
	var err error
	if m.mapped != nil {
		if m.iolock != nil {
			m.iolock.Lock()
		}
		err = unix.Munmap(m.mapped)
		if m.iolock != nil {
			m.iolock.Unlock()
		}
		m.mapped = nil
	}
	if closeErr := m.f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (m *Matrix) Shape() (int, int)        { return m.nrow, m.ncol }
func (m *Matrix) IsSparse() bool           { return false }
func (m *Matrix) PrefersRows() bool        { return true }
func (m *Matrix) Type() matrix.ContentType { return matrix.Double }

// lookaheadRows is how many rows past the just-touched one get a
// MADV_WILLNEED hint once a workspace notices consecutive forward
// access, the same chunked-ahead-of-time prefetch a row-major disk
// matrix wants on a sequential scan.
const lookaheadRows = 8

// workspace remembers the byte range of the last row served through
// it, so Row can tell a monotone forward scan (this row starts exactly
// where the last one ended) from a random-access pattern and only
// issue a prefetch hint in the former case.
type workspace struct {
	lastOffset int64
	lastLen    int64
}

func (m *Matrix) NewWorkspace(bool) matrix.Workspace {
	return &workspace{lastOffset: -1}
}

func (m *Matrix) at(r, c int) float64 {
	off := int(m.header) + (r*m.ncol+c)*8
	bits := binary.LittleEndian.Uint64(m.mapped[off : off+8])
	return math.Float64frombits(bits)
}

// adviseNext hints that the lookaheadRows rows starting at offset will
// be needed soon. madvise is advisory: a failure (including the
// EINVAL a non-page-aligned range produces on Linux) is not
// propagated, it just means the hint was skipped.
func (m *Matrix) adviseNext(offset, rowLen int64) {
	offset += m.header
	end := offset + rowLen*lookaheadRows
	if max := int64(len(m.mapped)); end > max {
		end = max
	}
	if offset >= end {
		return
	}
	if err := unix.Madvise(m.mapped[offset:end], unix.MADV_WILLNEED); err != nil {
		glog.V(2).Infof("diskmatrix: madvise(WILLNEED) skipped: %v", err)
	}
}

func (m *Matrix) Row(r int, buf []float64, first, last int, ws matrix.Workspace) []float64 {
	if r < 0 || r >= m.nrow || first < 0 || first > last || last > m.ncol {
		panic(matrix.NewError(matrix.OutOfBounds, "diskmatrix: Row(%d, [%d, %d)) invalid for %dx%d", r, first, last, m.nrow, m.ncol))
	}
	rowOff := int64(r) * int64(m.ncol) * 8
	rowLen := int64(m.ncol) * 8
	if w, ok := ws.(*workspace); ok {
		if w.lastOffset >= 0 && rowOff == w.lastOffset+w.lastLen {
			m.adviseNext(rowOff+rowLen, rowLen)
		}
		w.lastOffset = rowOff
		w.lastLen = rowLen
	}

	out := buf[:last-first]
	for c := first; c < last; c++ {
		out[c-first] = m.at(r, c)
	}
	return out
}

func (m *Matrix) Column(c int, buf []float64, first, last int, ws matrix.Workspace) []float64 {
	if c < 0 || c >= m.ncol || first < 0 || first > last || last > m.nrow {
		panic(matrix.NewError(matrix.OutOfBounds, "diskmatrix: Column(%d, [%d, %d)) invalid for %dx%d", c, first, last, m.nrow, m.ncol))
	}
	out := buf[:last-first]
	for r := first; r < last; r++ {
		out[r-first] = m.at(r, c)
	}
	return out
}

func (m *Matrix) SparseRow(r int, vbuf []float64, ibuf []int, first, last int, ws matrix.Workspace, sorted bool) matrix.SparseRange[float64, int] {
	return matrix.DenseSparseFallback[float64, int](func(b []float64) []float64 { return m.Row(r, b, first, last, ws) }, vbuf, ibuf, first, last)
}

func (m *Matrix) SparseColumn(c int, vbuf []float64, ibuf []int, first, last int, ws matrix.Workspace, sorted bool) matrix.SparseRange[float64, int] {
	return matrix.DenseSparseFallback[float64, int](func(b []float64) []float64 { return m.Column(c, b, first, last, ws) }, vbuf, ibuf, first, last)
}

// WriteFile writes m to path in the format Open expects, for tests and
// for round-tripping an in-memory matrix to disk.
func WriteFile[T matrix.Numeric, IDX matrix.Index](path string, m matrix.Matrix[T, IDX]) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	nrow, ncol := m.Shape()
	if _, err := fmt.Fprintf(out, "%d,%d\n", nrow, ncol); err != nil {
		return err
	}

	buf := make([]T, ncol)
	var scratch [8]byte
	for r := 0; r < nrow; r++ {
		row := matrix.FullRow[T, IDX](m, r, buf, nil)
		for _, v := range row {
			binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(float64(v)))
			if _, err := out.Write(scratch[:]); err != nil {
				return err
			}
		}
	}
	return nil
}
