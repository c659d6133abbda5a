package gxt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// reader is a bounds-checked cursor over the raw file bytes. The binary
// layouts address sections by absolute offset, so it seeks rather than
// streams.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) seek(off uint32) { r.pos = int(off) }

func (r *reader) bytes(n int) ([]byte, error) {
	if r.pos < 0 || n < 0 || r.pos+n > len(r.data) {
		return nil, ErrUnexpectedEOF
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) magic(want string) error {
	b, err := r.bytes(4)
	if err != nil {
		return err
	}
	if string(b) != want {
		return fmt.Errorf("%w: expected %s section", ErrMalformedHeader, want)
	}
	return nil
}

// tkeyEntry pairs a key with the offset of its character run, relative to
// the start of the TDAT data.
type tkeyEntry struct {
	offset uint32
	key    Key
}

// tkeySection is one parsed lookup section.
type tkeySection struct {
	name    []byte // table-name prefix; nil for the MAIN table
	offset  uint32 // absolute offset of the section
	size    uint32 // byte size of the entry array
	entries []tkeyEntry
}

type tablEntry struct {
	name   [8]byte
	offset uint32
}

// DetectFormat sniffs the format family from the leading bytes: a bare
// TKEY section means Three, a TABL list means Vice, and the version/width
// header identifies the San layouts.
func DetectFormat(data []byte) (FileFormat, error) {
	if len(data) < 4 {
		return 0, ErrUnexpectedEOF
	}
	switch {
	case bytes.Equal(data[:4], []byte("TKEY")):
		return FormatThree, nil
	case bytes.Equal(data[:4], []byte("TABL")):
		return FormatVice, nil
	}
	version := binary.LittleEndian.Uint16(data[0:2])
	width := binary.LittleEndian.Uint16(data[2:4])
	if version == 4 {
		switch width {
		case 8:
			return FormatSan8, nil
		case 16:
			return FormatSan16, nil
		}
		return 0, fmt.Errorf("%w: character width %d, must be 8 or 16", ErrMalformedHeader, width)
	}
	return 0, fmt.Errorf("%w: no known GXT layout", ErrMalformedHeader)
}

// Parse decodes a binary GXT file into a Document. Table entry order
// follows the on-disk lookup sections; each entry records its absolute
// data offset so callers can recover offset order. The custom table, if
// any, overlays the built-in character mapping.
func Parse(data []byte, ct *CharTable) (*Document, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}

	r := &reader{data: data}
	doc := NewDocument(format)

	if format == FormatThree {
		sec, err := parseTKEY(r, format, false, 0)
		if err != nil {
			return nil, err
		}
		if err := parseTDAT(r, sec, format, ct, doc.Main); err != nil {
			return nil, err
		}
		return doc, nil
	}

	if format.HashKeys() {
		// Version and width were validated by DetectFormat.
		r.seek(4)
	}
	tabl, err := parseTABL(r)
	if err != nil {
		return nil, err
	}
	if len(tabl) == 0 || !bytes.Equal(tabl[0].name[:], []byte("MAIN\x00\x00\x00\x00")) {
		return nil, fmt.Errorf("%w: first table must be MAIN", ErrMalformedHeader)
	}

	for i, te := range tabl {
		sec, err := parseTKEY(r, format, i != 0, te.offset)
		if err != nil {
			return nil, err
		}
		table := doc.Main
		if i != 0 {
			name := nameToText(trimName(sec.name))
			table, err = doc.addAux(name, te.offset)
			if err != nil {
				return nil, err
			}
		}
		if err := parseTDAT(r, sec, format, ct, table); err != nil {
			if i != 0 {
				return nil, fmt.Errorf("table %s: %w", nameToText(trimName(sec.name)), err)
			}
			return nil, err
		}
	}
	return doc, nil
}

func parseTABL(r *reader) ([]tablEntry, error) {
	if err := r.magic("TABL"); err != nil {
		return nil, err
	}
	size, err := r.u32()
	if err != nil {
		return nil, err
	}
	count := size / 12 // 8 name bytes + 4 offset bytes per entry
	entries := make([]tablEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		var e tablEntry
		b, err := r.bytes(8)
		if err != nil {
			return nil, err
		}
		copy(e.name[:], b)
		if e.offset, err = r.u32(); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseTKEY(r *reader, f FileFormat, named bool, offset uint32) (*tkeySection, error) {
	r.seek(offset)
	sec := &tkeySection{offset: offset}
	if named {
		b, err := r.bytes(8)
		if err != nil {
			return nil, err
		}
		sec.name = append([]byte(nil), b...)
	}
	if err := r.magic("TKEY"); err != nil {
		return nil, err
	}
	size, err := r.u32()
	if err != nil {
		return nil, err
	}
	sec.size = size

	entrySize := uint32(12) // 4 offset bytes + 8 name bytes
	if f.HashKeys() {
		entrySize = 8 // 4 offset bytes + 4 hash bytes
	}
	count := size / entrySize
	sec.entries = make([]tkeyEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		off, err := r.u32()
		if err != nil {
			return nil, err
		}
		var key Key
		if f.HashKeys() {
			h, err := r.u32()
			if err != nil {
				return nil, err
			}
			key = HashKey(h)
		} else {
			b, err := r.bytes(8)
			if err != nil {
				return nil, err
			}
			if key, err = NameKey(b); err != nil {
				return nil, err
			}
		}
		sec.entries = append(sec.entries, tkeyEntry{offset: off, key: key})
	}
	return sec, nil
}

func parseTDAT(r *reader, sec *tkeySection, f FileFormat, ct *CharTable, table *StringTable) error {
	dataStart := sec.offset + sec.size + 8
	if sec.name != nil {
		dataStart += 8
	}
	r.seek(dataStart)
	if err := r.magic("TDAT"); err != nil {
		return err
	}
	if _, err := r.u32(); err != nil { // section size; strings are NUL-delimited
		return err
	}
	base := dataStart + 8

	for _, e := range sec.entries {
		abs := base + e.offset
		r.seek(abs)
		value, err := readString(r, f, ct)
		if err != nil {
			return fmt.Errorf("entry %s: %w", DisplayKey(e.key, nil), err)
		}
		if err := table.insert(e.key, value, abs); err != nil {
			return err
		}
	}
	return nil
}

// readString decodes one NUL-terminated character run at the cursor.
func readString(r *reader, f FileFormat, ct *CharTable) (string, error) {
	var sb strings.Builder
	for {
		var code uint16
		switch f {
		case FormatSan8:
			b, err := r.bytes(1)
			if err != nil {
				return "", ErrUnterminatedString
			}
			code = uint16(b[0])
		case FormatSan16:
			// Two bytes per character, low byte significant.
			b, err := r.bytes(2)
			if err != nil {
				return "", ErrUnterminatedString
			}
			code = uint16(b[0])
		default:
			b, err := r.bytes(2)
			if err != nil {
				return "", ErrUnterminatedString
			}
			code = binary.LittleEndian.Uint16(b)
		}
		if code == 0 {
			return sb.String(), nil
		}
		sb.WriteRune(decodeChar(code, f, ct))
	}
}

// trimName cuts the padded 8-byte field down to its last non-zero byte,
// keeping interior NULs.
func trimName(name []byte) []byte {
	last := -1
	for i, b := range name {
		if b != 0 {
			last = i
		}
	}
	return name[:last+1]
}
