package object

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Inflate decompresses a complete zlib stream.
func Inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &CompressionError{Offset: -1, Err: err}
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		_ = zr.Close()
		return nil, &CompressionError{Offset: -1, Err: err}
	}
	if err := zr.Close(); err != nil {
		return nil, &CompressionError{Offset: -1, Err: err}
	}
	return out, nil
}

// inflateBounded decompresses the zlib stream at the start of data and also
// reports how many compressed bytes it occupied, so pack decoding can step
// to the next entry.
func inflateBounded(data []byte) ([]byte, int64, error) {
	sub := bytes.NewReader(data)
	zr, err := zlib.NewReader(sub)
	if err != nil {
		return nil, 0, &CompressionError{Offset: -1, Err: err}
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		_ = zr.Close()
		return nil, 0, &CompressionError{Offset: -1, Err: err}
	}
	if err := zr.Close(); err != nil {
		return nil, 0, &CompressionError{Offset: -1, Err: err}
	}
	consumed := int64(len(data) - sub.Len())
	return out, consumed, nil
}

// Deflate compresses data as a zlib stream. The inspector itself never
// writes objects; this exists for constructing fixtures.
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}
