package object

import "fmt"

// DecodeError reports malformed object or pack bytes. Offset is the byte
// position the decoder was at when it gave up, relative to the start of the
// stream being decoded (-1 when no single position applies).
type DecodeError struct {
	Offset int64
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("decode: %s", e.Reason)
	}
	return fmt.Sprintf("decode at offset %d: %s", e.Offset, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErrf(offset int64, format string, args ...any) *DecodeError {
	return &DecodeError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// CompressionError reports a malformed zlib stream. It is handled exactly
// like a DecodeError by callers; the distinct type only preserves where the
// failure came from.
type CompressionError struct {
	Offset int64
	Err    error
}

func (e *CompressionError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("zlib: %v", e.Err)
	}
	return fmt.Sprintf("zlib at offset %d: %v", e.Offset, e.Err)
}

func (e *CompressionError) Unwrap() error { return e.Err }
