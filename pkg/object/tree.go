package object

import (
	"bytes"
	"encoding/hex"
)

const rawHashSize = 20

// parseTreePayload decodes the payload of a tree object: a repeated
// sequence of "<octal mode> <name>\0" followed by a 20-byte binary id,
// terminated by exhaustion of the payload.
func parseTreePayload(payload []byte) ([]TreeEntry, error) {
	var entries []TreeEntry
	pos := 0
	for pos < len(payload) {
		rest := payload[pos:]
		sp := bytes.IndexByte(rest, ' ')
		if sp < 0 {
			return nil, decodeErrf(int64(pos), "tree entry: missing mode terminator")
		}
		nul := bytes.IndexByte(rest[sp+1:], 0)
		if nul < 0 {
			return nil, decodeErrf(int64(pos), "tree entry: missing name terminator")
		}
		mode := string(rest[:sp])
		name := string(rest[sp+1 : sp+1+nul])
		if name == "" {
			return nil, decodeErrf(int64(pos), "tree entry: empty name")
		}

		idStart := sp + 1 + nul + 1
		if idStart+rawHashSize > len(rest) {
			return nil, decodeErrf(int64(pos+idStart), "tree entry %q: truncated object id", name)
		}
		id := hex.EncodeToString(rest[idStart : idStart+rawHashSize])

		entries = append(entries, TreeEntry{Mode: mode, Name: name, ID: Hash(id)})
		pos += idStart + rawHashSize
	}
	return entries, nil
}
