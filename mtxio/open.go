package mtxio

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Open wraps r so that the rest of the package can treat a gzip-framed
// Matrix Market stream exactly like a plain one. It peeks the first two
// bytes to detect the gzip magic number and only then commits to
// decompression; a plain stream (or one too short to carry a magic
// number at all) passes through unwrapped.
func Open(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return br, nil
	}
	if magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}
