package scene

import (
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks zstd-compressed scene files.
const CompressedExt = ".zst"

// IsCompressed reports whether path names a zstd-compressed file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), CompressedExt)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressWriter(w io.Writer, path string) (io.WriteCloser, error) {
	if !IsCompressed(path) {
		return nopWriteCloser{w}, nil
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	return enc, nil
}

func decompressReader(r io.Reader, path string) (io.ReadCloser, error) {
	if !IsCompressed(path) {
		return io.NopCloser(r), nil
	}
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
