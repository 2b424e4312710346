// Package compress wraps klauspost/compress/flate behind the uniform
// compress/decompress contract C3 requires: raw RFC 1951 deflate, no
// zlib/gzip wrapper. klauspost's flate implementation is a drop-in,
// faster-than-stdlib replacement for compress/flate, the same reason
// svanichkin-babe reaches for klauspost/compress elsewhere in this corpus.
package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

// Compress deflates data with the default compression level.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress inflates raw-deflate data produced by Compress (or any
// RFC 1951 raw deflate stream).
func Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}
