package gxt

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// writer builds the output file. All multi-byte fields are little-endian.
type writer struct {
	buf []byte
}

func (w *writer) bytes(b []byte) { w.buf = append(w.buf, b...) }
func (w *writer) magic(m string) { w.buf = append(w.buf, m...) }
func (w *writer) u16(v uint16)   { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *writer) u32(v uint32)   { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

// builtTable is one table's wire-ready sections: the sorted lookup entries
// and the deduplicated data bytes they point into.
type builtTable struct {
	entries []tkeyEntry // sorted by key
	keySize uint32      // byte size of the TKEY entry array
	data    []byte      // TDAT payload, terminators included
}

// Emit encodes a Document into binary form. Lookup entries are written in
// binary-search order regardless of entry order; data runs are laid out in
// entry order, with identical values sharing one run. The custom table, if
// any, overlays the built-in character mapping.
func Emit(doc *Document, ct *CharTable) ([]byte, error) {
	f := doc.Format
	if f == FormatThree && len(doc.aux) > 0 {
		return nil, fmt.Errorf("format Three cannot carry auxiliary tables")
	}

	main, err := buildTable(doc.Main, f, ct)
	if err != nil {
		return nil, err
	}
	auxes := make([]builtTable, len(doc.aux))
	for i, a := range doc.aux {
		bt, err := buildTable(a.table, f, ct)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", a.name, err)
		}
		auxes[i] = bt
	}

	w := &writer{}
	if f == FormatThree {
		writeTKEY(w, main, f, nil)
		writeTDAT(w, main)
		return w.buf, nil
	}

	if f.HashKeys() {
		w.u16(4) // version
		w.u16(uint16(f.CharWidth() * 8))
	}

	// The table list carries absolute offsets, so every block size feeds
	// into the offsets of the blocks after it.
	tablSize := uint32(12 * (1 + len(doc.aux)))
	offset := uint32(len(w.buf)) + 8 + tablSize

	w.magic("TABL")
	w.u32(tablSize)
	w.bytes([]byte("MAIN\x00\x00\x00\x00"))
	w.u32(offset)
	offset += 8 + main.keySize + 8 + uint32(len(main.data))
	for i, a := range doc.aux {
		name, err := textToName(a.name)
		if err != nil {
			return nil, err
		}
		var padded [8]byte
		copy(padded[:], name)
		w.bytes(padded[:])
		w.u32(offset)
		offset += 16 + auxes[i].keySize + 8 + uint32(len(auxes[i].data))
	}

	writeTKEY(w, main, f, nil)
	writeTDAT(w, main)
	for i, a := range doc.aux {
		name, _ := textToName(a.name)
		writeTKEY(w, auxes[i], f, name)
		writeTDAT(w, auxes[i])
	}
	return w.buf, nil
}

func buildTable(t *StringTable, f FileFormat, ct *CharTable) (builtTable, error) {
	var bt builtTable
	offsetByValue := make(map[string]uint32, t.Len())
	bt.entries = make([]tkeyEntry, 0, t.Len())

	for _, e := range t.entries {
		if e.Key.IsHash() != f.HashKeys() {
			return bt, fmt.Errorf("key %s does not fit format %s", DisplayKey(e.Key, nil), f)
		}
		off, ok := offsetByValue[e.Value]
		if !ok {
			off = uint32(len(bt.data))
			encoded, err := encodeString(e.Value, f, ct)
			if err != nil {
				return bt, fmt.Errorf("entry %s: %w", DisplayKey(e.Key, nil), err)
			}
			bt.data = append(bt.data, encoded...)
			offsetByValue[e.Value] = off
		}
		bt.entries = append(bt.entries, tkeyEntry{offset: off, key: e.Key})
	}

	sort.SliceStable(bt.entries, func(i, j int) bool {
		return bt.entries[i].key.Less(bt.entries[j].key)
	})

	entrySize := uint32(12)
	if f.HashKeys() {
		entrySize = 8
	}
	bt.keySize = entrySize * uint32(len(bt.entries))

	if f.HashKeys() {
		// The engine loads San data sections with word reads; pad to a
		// 4-byte boundary.
		for len(bt.data)%4 != 0 {
			bt.data = append(bt.data, 0)
		}
	}
	return bt, nil
}

// encodeString converts one value to its character run, terminator
// included.
func encodeString(s string, f FileFormat, ct *CharTable) ([]byte, error) {
	buf := make([]byte, 0, (len(s)+1)*f.CharWidth())
	for _, r := range s {
		code, err := encodeChar(r, f, ct)
		if err != nil {
			return nil, err
		}
		if f == FormatSan8 {
			if code > 0xFF {
				return nil, fmt.Errorf("%w: code %#x does not fit 8-bit data", ErrUnencodableCharacter, code)
			}
			buf = append(buf, byte(code))
		} else {
			buf = binary.LittleEndian.AppendUint16(buf, code)
		}
	}
	if f == FormatSan8 {
		return append(buf, 0), nil
	}
	return binary.LittleEndian.AppendUint16(buf, 0), nil
}

func writeTKEY(w *writer, bt builtTable, f FileFormat, name []byte) {
	if name != nil {
		var padded [8]byte
		copy(padded[:], name)
		w.bytes(padded[:])
	}
	w.magic("TKEY")
	w.u32(bt.keySize)
	for _, e := range bt.entries {
		w.u32(e.offset)
		if f.HashKeys() {
			w.u32(e.key.Hash())
		} else {
			raw := e.key.raw8()
			w.bytes(raw[:])
		}
	}
}

func writeTDAT(w *writer, bt builtTable) {
	w.magic("TDAT")
	w.u32(uint32(len(bt.data)))
	w.bytes(bt.data)
}
