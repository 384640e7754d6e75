package object

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// PackEntry is one decoded record of a pack file.
//
// For delta entries Data holds the inflated delta instruction stream and
// exactly one of BaseOffset/BaseID is set. Resolved and ResolvedType are
// populated by Pack.Resolve once the entry's base chain is reconstructed.
type PackEntry struct {
	Offset       int64
	Type         PackObjectType
	DeclaredSize uint64

	BaseOffset int64 // ofs-delta: absolute offset of the base entry
	BaseID     Hash  // ref-delta: id of the base object

	CompressedStart int64 // byte range the zlib stream occupies in the pack
	CompressedEnd   int64

	Data []byte // inflated payload: full content, or the delta stream

	Resolved     []byte
	ResolvedType ObjectType
	ID           Hash // id of the resolved object
}

// CompressedLen returns the size of the entry's zlib stream in the pack.
func (e *PackEntry) CompressedLen() int64 {
	return e.CompressedEnd - e.CompressedStart
}

// Pack is a fully decoded pack file.
type Pack struct {
	Header   PackHeader
	Entries  []PackEntry
	Checksum Hash // trailing SHA-1 over everything before it
}

// ParsePack decodes a complete pack byte slice: header, every entry header
// and compressed payload, and the SHA-1 trailer. Delta entries are decoded
// but not resolved; call Resolve for that.
func ParsePack(data []byte) (*Pack, error) {
	if len(data) < packHeaderSize+sha1.Size {
		return nil, decodeErrf(0, "pack too short: %d bytes", len(data))
	}

	payload := data[:len(data)-sha1.Size]
	trailer := data[len(data)-sha1.Size:]

	sum := sha1.Sum(payload)
	if !bytes.Equal(sum[:], trailer) {
		return nil, decodeErrf(int64(len(payload)), "pack checksum mismatch")
	}

	header, err := UnmarshalPackHeader(payload[:packHeaderSize])
	if err != nil {
		return nil, err
	}

	offset := int64(packHeaderSize)
	entries := make([]PackEntry, 0, header.NumObjects)
	for i := uint32(0); i < header.NumObjects; i++ {
		entry, next, err := parsePackEntry(payload, offset)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, *entry)
		offset = next
	}

	if offset != int64(len(payload)) {
		return nil, decodeErrf(offset, "pack has %d trailing undecoded bytes", int64(len(payload))-offset)
	}

	return &Pack{
		Header:   *header,
		Entries:  entries,
		Checksum: Hash(hex.EncodeToString(trailer)),
	}, nil
}

func parsePackEntry(payload []byte, offset int64) (*PackEntry, int64, error) {
	objType, size, n, err := decodePackEntryHeader(payload[offset:])
	if err != nil {
		return nil, 0, err
	}
	entry := &PackEntry{
		Offset:       offset,
		Type:         objType,
		DeclaredSize: size,
	}
	pos := offset + int64(n)

	switch objType {
	case PackCommit, PackTree, PackBlob, PackTag:
	case PackOfsDelta:
		distance, dn, err := decodeOfsDeltaDistance(payload[pos:])
		if err != nil {
			return nil, 0, err
		}
		pos += int64(dn)
		base := offset - int64(distance)
		if base < packHeaderSize {
			return nil, 0, decodeErrf(offset, "ofs-delta base offset %d before first entry", base)
		}
		entry.BaseOffset = base
	case PackRefDelta:
		if pos+rawHashSize > int64(len(payload)) {
			return nil, 0, decodeErrf(pos, "ref-delta base id truncated")
		}
		entry.BaseID = Hash(hex.EncodeToString(payload[pos : pos+rawHashSize]))
		pos += rawHashSize
	default:
		return nil, 0, decodeErrf(offset, "unknown pack entry type %d", objType)
	}

	if pos >= int64(len(payload)) {
		return nil, 0, decodeErrf(pos, "missing compressed payload")
	}

	data, consumed, err := inflateBounded(payload[pos:])
	if err != nil {
		if ce, ok := err.(*CompressionError); ok {
			ce.Offset = pos
		}
		return nil, 0, err
	}
	if uint64(len(data)) != size {
		return nil, 0, decodeErrf(pos, "size mismatch: header declares %d, inflated %d bytes", size, len(data))
	}

	entry.CompressedStart = pos
	entry.CompressedEnd = pos + consumed
	entry.Data = data
	return entry, entry.CompressedEnd, nil
}

// Resolve reconstructs the content of every entry. Non-delta entries resolve
// immediately; delta entries resolve in repeated passes once their base is
// available (by offset for ofs-deltas, by object id for ref-deltas). A pass
// that makes no progress while entries remain means the chain has a cycle or
// a dangling base, which is reported rather than looped on.
func (p *Pack) Resolve() error {
	byID := make(map[Hash]*PackEntry, len(p.Entries))
	byOffset := make(map[int64]*PackEntry, len(p.Entries))
	for i := range p.Entries {
		byOffset[p.Entries[i].Offset] = &p.Entries[i]
	}

	finish := func(e *PackEntry, kind ObjectType, content []byte) {
		e.ResolvedType = kind
		e.Resolved = content
		sum := sha1.Sum(append([]byte(fmt.Sprintf("%s %d\x00", kind, len(content))), content...))
		e.ID = Hash(hex.EncodeToString(sum[:]))
		byID[e.ID] = e
	}

	for i := range p.Entries {
		e := &p.Entries[i]
		if kind, ok := e.Type.looseType(); ok {
			finish(e, kind, e.Data)
		}
	}

	remaining := 0
	for i := range p.Entries {
		if p.Entries[i].ResolvedType == "" {
			remaining++
		}
	}

	for remaining > 0 {
		progress := 0
		for i := range p.Entries {
			e := &p.Entries[i]
			if e.ResolvedType != "" {
				continue
			}
			var base *PackEntry
			switch e.Type {
			case PackOfsDelta:
				base = byOffset[e.BaseOffset]
				if base == nil {
					return decodeErrf(e.Offset, "ofs-delta: no entry at base offset %d", e.BaseOffset)
				}
			case PackRefDelta:
				base = byID[e.BaseID]
			}
			if base == nil || base.ResolvedType == "" {
				continue
			}
			content, err := ApplyDelta(base.Resolved, e.Data)
			if err != nil {
				return fmt.Errorf("entry at offset %d: %w", e.Offset, err)
			}
			finish(e, base.ResolvedType, content)
			progress++
			remaining--
		}
		if progress == 0 {
			var stuck []string
			for i := range p.Entries {
				if p.Entries[i].ResolvedType == "" {
					stuck = append(stuck, fmt.Sprintf("%d", p.Entries[i].Offset))
				}
			}
			return decodeErrf(-1, "delta chain cycle or dangling base; unresolved entries at offsets %s", strings.Join(stuck, ", "))
		}
	}
	return nil
}
