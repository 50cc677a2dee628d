package mtxio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/LTLA/tatami/matrix"
)

// Triplets is the raw, 0-indexed coordinate data read from a Matrix
// Market stream: Rows[i], Cols[i], Values[i] describe one data line.
type Triplets struct {
	Nrow, Ncol int
	Rows, Cols []int
	Values     []float64
}

func parseErr(format string, args ...interface{}) error {
	return matrix.NewError(matrix.ParseError, format, args...)
}

// splitThree tokenizes a line on whitespace and requires exactly three
// fields; the "three values" substring in the returned error lets
// callers detect this failure programmatically.
func splitThree(line string) ([3]string, error) {
	fields := strings.Fields(line)
	var out [3]string
	if len(fields) != 3 {
		return out, parseErr("matrix market: line %q does not contain three values", line)
	}
	copy(out[:], fields)
	return out, nil
}

func parseThreeInts(line string) (a, b, c int, err error) {
	fields, err := splitThree(line)
	if err != nil {
		return 0, 0, 0, err
	}
	ints := make([]int, 3)
	for i, f := range fields {
		n, perr := strconv.ParseInt(f, 10, 64)
		if perr != nil {
			return 0, 0, 0, parseErr("matrix market: line %q does not contain three values (non-numeric field %q)", line, f)
		}
		ints[i] = int(n)
	}
	return ints[0], ints[1], ints[2], nil
}

// parseHeaderLine parses "R C L" and requires all three to be
// non-negative.
func parseHeaderLine(line string) (Header, error) {
	r, c, l, err := parseThreeInts(line)
	if err != nil {
		return Header{}, err
	}
	if r < 0 || c < 0 || l < 0 {
		return Header{}, parseErr("matrix market: header %q must have three non-negative integers", line)
	}
	return Header{Nrow: r, Ncol: c, Nlines: l}, nil
}

// scan runs the single-pass Matrix Market grammar over r. If
// headerOnly is true it stops immediately after the header line
// without consuming any data lines, a "header-only inspection" entry
// point for callers that only need the matrix's declared shape.
func scan(r io.Reader, headerOnly bool) (Header, *Triplets, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var header Header
	haveHeader := false
	var rows, cols []int
	var values []float64
	dataCount := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		if !haveHeader {
			h, err := parseHeaderLine(line)
			if err != nil {
				return Header{}, nil, err
			}
			header = h
			haveHeader = true
			if headerOnly {
				return header, nil, nil
			}
			continue
		}

		if dataCount >= header.Nlines {
			return Header{}, nil, parseErr("matrix market: more lines present in the stream but %d lines specified in the header", header.Nlines)
		}

		r1, c1, v, err := parseThreeInts(line)
		if err != nil {
			return Header{}, nil, err
		}
		if r1 <= 0 || c1 <= 0 {
			return Header{}, nil, parseErr("matrix market: data line %q has a row or column index that must be positive", line)
		}
		if v < 0 {
			return Header{}, nil, parseErr("matrix market: data line %q has a value of %d, but values must be non-negative", line, v)
		}
		if r1 > header.Nrow || c1 > header.Ncol {
			return Header{}, nil, parseErr("matrix market: data line %q is out of range for a %dx%d matrix", line, header.Nrow, header.Ncol)
		}

		rows = append(rows, r1-1)
		cols = append(cols, c1-1)
		values = append(values, float64(v))
		dataCount++
	}
	if err := scanner.Err(); err != nil {
		return Header{}, nil, err
	}
	if !haveHeader {
		return Header{}, nil, parseErr("matrix market: no header line found")
	}
	if headerOnly {
		return header, nil, nil
	}

	return header, &Triplets{Nrow: header.Nrow, Ncol: header.Ncol, Rows: rows, Cols: cols, Values: values}, nil
}

// ParseHeader parses only the header line of a Matrix Market stream
// and returns {nrow, ncol, nlines} without reading any data lines.
func ParseHeader(r io.Reader) (Header, error) {
	h, _, err := scan(r, true)
	return h, err
}

// ParseTriplets runs the full single-pass parse and returns the raw
// 0-indexed triplets.
func ParseTriplets(r io.Reader) (*Triplets, error) {
	_, t, err := scan(r, false)
	return t, err
}
