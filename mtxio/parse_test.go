package mtxio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/LTLA/tatami/matrix"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderOnly(t *testing.T) {
	h, err := ParseHeader(strings.NewReader("%% note\n5 6 3\n1 1 1\n2 2 2\n3 3 3\n"))
	require.NoError(t, err)
	assert.Equal(t, Header{Nrow: 5, Ncol: 6, Nlines: 3}, h)
}

func TestLoadSimple(t *testing.T) {
	m, err := LoadSimple(strings.NewReader("%% note\n5 6 3\n1 1 1\n2 2 2\n3 3 3\n"))
	require.NoError(t, err)

	nr, nc := m.Shape()
	assert.Equal(t, 5, nr)
	assert.Equal(t, 6, nc)

	buf := make([]float64, nr)
	assert.Equal(t, []float64{1, 0, 0, 0, 0}, matrix.FullColumn[float64, int](m, 0, buf, nil))
	for c := 3; c < nc; c++ {
		assert.Equal(t, make([]float64, nr), matrix.FullColumn[float64, int](m, c, buf, nil))
	}
}

func TestParseRejectsMissingHeader(t *testing.T) {
	_, err := ParseHeader(strings.NewReader("%% only a comment\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header line")
}

func TestParseRejectsMalformedHeader(t *testing.T) {
	_, err := ParseHeader(strings.NewReader("5 6\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "three values")
}

func TestParseRejectsNegativeHeaderLineCount(t *testing.T) {
	_, err := ParseTriplets(strings.NewReader("%% bad\n1 2 -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestParseRejectsNonPositiveCoordinate(t *testing.T) {
	_, err := ParseTriplets(strings.NewReader("2 2 1\n0 1 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestParseRejectsOutOfRangeCoordinate(t *testing.T) {
	_, err := ParseTriplets(strings.NewReader("2 2 1\n3 1 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestParseRejectsTooManyDataLines(t *testing.T) {
	_, err := ParseTriplets(strings.NewReader("2 2 1\n1 1 1\n1 2 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lines specified in the header")
	assert.Contains(t, err.Error(), "more lines present")
}

func TestParseToleratesFewerLinesThanDeclared(t *testing.T) {
	tri, err := ParseTriplets(strings.NewReader("2 2 5\n1 1 1\n"))
	require.NoError(t, err)
	assert.Len(t, tri.Rows, 1)
}

func TestOpenPassesThroughPlainStream(t *testing.T) {
	r, err := Open(strings.NewReader("2 2 1\n1 1 1\n"))
	require.NoError(t, err)
	buf := make([]byte, 64)
	n, _ := r.Read(buf)
	assert.Contains(t, string(buf[:n]), "2 2 1")
}

func TestOpenDecompressesGzip(t *testing.T) {
	var gz bytes.Buffer
	writeGzip(t, &gz, "2 2 1\n1 1 1\n")

	r, err := Open(&gz)
	require.NoError(t, err)
	tri, err := ParseTriplets(r)
	require.NoError(t, err)
	assert.Len(t, tri.Rows, 1)
}

func writeGzip(t *testing.T, dst *bytes.Buffer, content string) {
	t.Helper()
	zw := gzip.NewWriter(dst)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}
