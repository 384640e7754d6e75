package object

import (
	"bytes"
	"io"
)

func encodeDeltaVarint(v uint64) []byte {
	if v == 0 {
		return []byte{0}
	}
	out := make([]byte, 0, 10)
	for v > 0 {
		b := byte(v & 0x7f)
		v >>= 7
		if v > 0 {
			b |= 0x80
		}
		out = append(out, b)
	}
	return out
}

func decodeDeltaVarint(r io.ByteReader) (uint64, error) {
	var (
		value uint64
		shift uint
	)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, nil
		}
		shift += 7
		if shift > 63 {
			return 0, decodeErrf(-1, "delta varint too large")
		}
	}
}

// encodeOfsDeltaDistance encodes the backward distance that follows an
// OFS_DELTA entry header.
func encodeOfsDeltaDistance(distance uint64) []byte {
	if distance == 0 {
		return []byte{0}
	}
	b := []byte{byte(distance & 0x7f)}
	for distance >>= 7; distance > 0; distance >>= 7 {
		distance--
		b = append([]byte{byte((distance & 0x7f) | 0x80)}, b...)
	}
	return b
}

// decodeOfsDeltaDistance decodes the backward distance. Each continuation
// step is (v+1)<<7, the off-by-one that makes the encoding dense.
func decodeOfsDeltaDistance(data []byte) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, decodeErrf(0, "ofs-delta distance truncated")
	}
	i := 0
	c := data[i]
	i++
	offset := uint64(c & 0x7f)
	for c&0x80 != 0 {
		if i >= len(data) {
			return 0, 0, decodeErrf(int64(i), "ofs-delta distance truncated")
		}
		c = data[i]
		i++
		offset = ((offset + 1) << 7) | uint64(c&0x7f)
	}
	return offset, i, nil
}

// ApplyDelta replays a delta instruction stream against base and returns the
// reconstructed content. Copies are range references into base; inserts are
// literal byte runs.
func ApplyDelta(base, delta []byte) ([]byte, error) {
	dr := bytes.NewReader(delta)

	baseSize, err := decodeDeltaVarint(dr)
	if err != nil {
		return nil, decodeErrf(0, "delta: read base size: %v", err)
	}
	if int(baseSize) != len(base) {
		return nil, decodeErrf(0, "delta base size mismatch: header %d, base is %d bytes", baseSize, len(base))
	}
	resultSize, err := decodeDeltaVarint(dr)
	if err != nil {
		return nil, decodeErrf(0, "delta: read result size: %v", err)
	}

	out := make([]byte, 0, resultSize)
	for dr.Len() > 0 {
		pos := int64(len(delta) - dr.Len())
		cmd, err := dr.ReadByte()
		if err != nil {
			return nil, decodeErrf(pos, "delta: read command: %v", err)
		}
		if cmd&0x80 != 0 {
			offset, size, err := decodeDeltaCopyArgs(dr, cmd)
			if err != nil {
				return nil, decodeErrf(pos, "delta copy: %v", err)
			}
			if offset+size > int64(len(base)) {
				return nil, decodeErrf(pos, "delta copy out of bounds: [%d,%d) in %d-byte base", offset, offset+size, len(base))
			}
			out = append(out, base[offset:offset+size]...)
			continue
		}

		if cmd == 0 {
			return nil, decodeErrf(pos, "invalid delta command: 0")
		}
		insert := make([]byte, int(cmd))
		if _, err := io.ReadFull(dr, insert); err != nil {
			return nil, decodeErrf(pos, "delta insert truncated: %v", err)
		}
		out = append(out, insert...)
	}

	if uint64(len(out)) != resultSize {
		return nil, decodeErrf(-1, "delta result size mismatch: got %d, header declares %d", len(out), resultSize)
	}
	return out, nil
}

// decodeDeltaCopyArgs reads the offset and size bytes selected by the copy
// command's low bits. A size of zero means 0x10000 per the format.
func decodeDeltaCopyArgs(r io.ByteReader, cmd byte) (offset, size int64, err error) {
	for i := 0; i < 4; i++ {
		if cmd&(1<<i) == 0 {
			continue
		}
		b, err := r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		offset |= int64(b) << (8 * i)
	}
	for i := 0; i < 3; i++ {
		if cmd&(0x10<<i) == 0 {
			continue
		}
		b, err := r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		size |= int64(b) << (8 * i)
	}
	if size == 0 {
		size = 0x10000
	}
	return offset, size, nil
}
