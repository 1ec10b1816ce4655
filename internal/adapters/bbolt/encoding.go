// Binary encoding for check entries.
//
// Entries are read on every cached check, so they use a compact binary
// format instead of JSON. Little-endian layout:
//
//	hashLen:   uint16
//	hash:      [hashLen]byte
//	checkedAt: int64
//	diagCount: uint32
//	per diagnostic:
//	  stageLen:    uint16 + [stageLen]byte
//	  line:        uint32
//	  messageLen:  uint16 + [messageLen]byte
//	  renderedLen: uint16 + [renderedLen]byte
package bbolt

import (
	"encoding/binary"
	"fmt"

	"github.com/rlox-lang/rlox/internal/ports"
)

// encodeEntry encodes a check entry to compact binary format. A single
// buffer is pre-allocated to avoid repeated growth.
func encodeEntry(entry *ports.CheckEntry) []byte {
	totalSize := 2 + len(entry.Hash) + 8 + 4
	for _, d := range entry.Diagnostics {
		totalSize += 2 + len(d.Stage) + 4 + 2 + len(d.Message) + 2 + len(d.Rendered)
	}

	buf := make([]byte, totalSize)
	offset := 0

	offset += putString(buf[offset:], entry.Hash)
	binary.LittleEndian.PutUint64(buf[offset:], uint64(entry.CheckedAt))
	offset += 8

	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(entry.Diagnostics)))
	offset += 4
	for _, d := range entry.Diagnostics {
		offset += putString(buf[offset:], d.Stage)
		binary.LittleEndian.PutUint32(buf[offset:], uint32(d.Line))
		offset += 4
		offset += putString(buf[offset:], d.Message)
		offset += putString(buf[offset:], d.Rendered)
	}

	return buf
}

// decodeEntry decodes binary data back to a check entry.
// Every read is bounds-checked to avoid panics on corrupt data.
func decodeEntry(data []byte) (*ports.CheckEntry, error) {
	hash, offset, err := readString(data, 0, "hash")
	if err != nil {
		return nil, err
	}

	if offset+8 > len(data) {
		return nil, fmt.Errorf("truncated at checked_at (offset %d)", offset)
	}
	checkedAt := int64(binary.LittleEndian.Uint64(data[offset:]))
	offset += 8

	if offset+4 > len(data) {
		return nil, fmt.Errorf("truncated at diagnostic count (offset %d)", offset)
	}
	diagCount := binary.LittleEndian.Uint32(data[offset:])
	offset += 4

	entry := &ports.CheckEntry{Hash: hash, CheckedAt: checkedAt}
	for i := uint32(0); i < diagCount; i++ {
		var d ports.Diagnostic

		if d.Stage, offset, err = readString(data, offset, "stage"); err != nil {
			return nil, fmt.Errorf("diagnostic %d: %w", i, err)
		}

		if offset+4 > len(data) {
			return nil, fmt.Errorf("diagnostic %d: truncated at line (offset %d)", i, offset)
		}
		d.Line = int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4

		if d.Message, offset, err = readString(data, offset, "message"); err != nil {
			return nil, fmt.Errorf("diagnostic %d: %w", i, err)
		}
		if d.Rendered, offset, err = readString(data, offset, "rendered"); err != nil {
			return nil, fmt.Errorf("diagnostic %d: %w", i, err)
		}

		entry.Diagnostics = append(entry.Diagnostics, d)
	}

	if offset != len(data) {
		return nil, fmt.Errorf("%d trailing bytes after entry", len(data)-offset)
	}
	return entry, nil
}

// putString writes a uint16 length prefix plus the string bytes and returns
// the number of bytes written. Strings here are hashes, stage names, and
// diagnostic messages, all far below the uint16 limit.
func putString(buf []byte, s string) int {
	binary.LittleEndian.PutUint16(buf, uint16(len(s)))
	copy(buf[2:], s)
	return 2 + len(s)
}

// readString reads a length-prefixed string at offset with bounds checks.
func readString(data []byte, offset int, field string) (string, int, error) {
	if offset+2 > len(data) {
		return "", 0, fmt.Errorf("truncated at %s length (offset %d)", field, offset)
	}
	n := int(binary.LittleEndian.Uint16(data[offset:]))
	offset += 2

	if offset+n > len(data) {
		return "", 0, fmt.Errorf("truncated at %s (offset %d, need %d)", field, offset, n)
	}
	return string(data[offset : offset+n]), offset + n, nil
}
