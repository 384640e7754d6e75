package object

import (
	"bytes"
	"strconv"
)

// ParseLoose decodes a raw loose-object file: a zlib stream whose inflated
// form is "<kind> <size>\0" followed by the payload. The declared size must
// equal the payload length exactly.
func ParseLoose(raw []byte) (*LooseObject, error) {
	inflated, err := Inflate(raw)
	if err != nil {
		return nil, err
	}
	return parseLooseInflated(inflated)
}

func parseLooseInflated(data []byte) (*LooseObject, error) {
	nul := bytes.IndexByte(data, 0)
	if nul < 0 {
		return nil, decodeErrf(0, "loose header: missing NUL terminator")
	}
	header := string(data[:nul])
	payload := data[nul+1:]

	kindStr, sizeStr, ok := cutSpace(header)
	if !ok {
		return nil, decodeErrf(0, "loose header: malformed %q", header)
	}
	kind := ObjectType(kindStr)
	if !knownTypes[kind] {
		return nil, decodeErrf(0, "loose header: unknown object kind %q", kindStr)
	}
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil || size < 0 {
		return nil, decodeErrf(0, "loose header: bad size %q", sizeStr)
	}
	if size != int64(len(payload)) {
		return nil, decodeErrf(int64(nul+1), "size mismatch: header declares %d, payload is %d bytes", size, len(payload))
	}

	obj := &LooseObject{
		Kind:         kind,
		DeclaredSize: size,
		Payload:      payload,
	}

	switch kind {
	case TypeTree:
		entries, err := parseTreePayload(payload)
		if err != nil {
			return nil, err
		}
		obj.Entries = entries
	case TypeCommit, TypeTag:
		headers, message, err := parseHeaderBlock(payload)
		if err != nil {
			return nil, err
		}
		obj.Headers = headers
		obj.Message = message
	}
	return obj, nil
}

func cutSpace(s string) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}
