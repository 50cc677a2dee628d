package diskmatrix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LTLA/tatami/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenOpenRoundTrips(t *testing.T) {
	dense, err := matrix.NewDenseRowMatrix[float64, int](3, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "m.bin")
	require.NoError(t, WriteFile[float64, int](path, dense))

	disk, err := Open(path, nil)
	require.NoError(t, err)
	defer disk.Close()

	nr, nc := disk.Shape()
	assert.Equal(t, 3, nr)
	assert.Equal(t, 4, nc)

	buf := make([]float64, nc)
	for r := 0; r < nr; r++ {
		want := matrix.FullRow[float64, int](dense, r, make([]float64, nc), nil)
		got := matrix.FullRow[float64, int](disk, r, buf, nil)
		assert.Equal(t, want, got)
	}
}

func TestRowWithWorkspaceMatchesWithout(t *testing.T) {
	dense, err := matrix.NewDenseRowMatrix[float64, int](5, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
		10, 11, 12,
		13, 14, 15,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "m.bin")
	require.NoError(t, WriteFile[float64, int](path, dense))

	disk, err := Open(path, nil)
	require.NoError(t, err)
	defer disk.Close()

	ws := disk.NewWorkspace(true)
	require.NotNil(t, ws)

	nr, nc := disk.Shape()
	buf := make([]float64, nc)
	// A sequential forward scan through the same workspace must return
	// exactly the rows a workspace-free read would, whether or not the
	// workspace decides to issue a prefetch hint along the way.
	for r := 0; r < nr; r++ {
		want := matrix.FullRow[float64, int](disk, r, make([]float64, nc), nil)
		got := matrix.FullRow[float64, int](disk, r, buf, ws)
		assert.Equal(t, want, got, "row %d", r)
	}
}

func TestOpenRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte("2,2\n\x00\x00\x00"), 0o644))

	_, err := Open(path, nil)
	require.Error(t, err)
}
