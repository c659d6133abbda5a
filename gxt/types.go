package gxt

import (
	"bytes"
	"fmt"
	"sort"
)

// FileFormat identifies one of the GXT format families.
type FileFormat uint8

const (
	// FormatThree is the single-table layout of GTA III and the Xbox
	// release of Vice City.
	FormatThree FileFormat = iota
	// FormatVice is the multi-table layout of Vice City and the Stories
	// titles.
	FormatVice
	// FormatSan8 is the hash-keyed San Andreas layout with 8-bit character
	// data.
	FormatSan8
	// FormatSan16 is the hash-keyed layout with 16-bit character data used
	// by GTA IV.
	FormatSan16
)

// String returns the format's text tag.
func (f FileFormat) String() string {
	switch f {
	case FormatThree:
		return "Three"
	case FormatVice:
		return "Vice"
	case FormatSan8:
		return "San8"
	case FormatSan16:
		return "San16"
	default:
		return "unknown"
	}
}

// ParseFormat maps a text tag to its FileFormat.
func ParseFormat(tag string) (FileFormat, error) {
	switch tag {
	case "Three":
		return FormatThree, nil
	case "Vice":
		return FormatVice, nil
	case "San8":
		return FormatSan8, nil
	case "San16":
		return FormatSan16, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, tag)
}

// CharWidth returns the size in bytes of one character code unit.
func (f FileFormat) CharWidth() int {
	if f == FormatSan8 {
		return 1
	}
	return 2
}

// HashKeys reports whether entry keys are CRC32 hashes rather than names.
func (f FileFormat) HashKeys() bool {
	return f == FormatSan8 || f == FormatSan16
}

// MultiTable reports whether the layout carries a table list.
func (f FileFormat) MultiTable() bool {
	return f != FormatThree
}

// Key identifies one entry within a table: a raw name of up to 8 bytes for
// the Three and Vice formats, or a JAMCRC hash for the San formats. The
// zero Key is the empty name.
type Key struct {
	name   [8]byte
	hash   uint32
	isHash bool
}

// NameKey builds a name key from raw bytes. Interior NUL bytes are kept;
// names longer than 8 bytes fail with ErrNameTooLong.
func NameKey(name []byte) (Key, error) {
	if len(name) > 8 {
		return Key{}, fmt.Errorf("%w: %q is %d bytes", ErrNameTooLong, name, len(name))
	}
	var k Key
	copy(k.name[:], name)
	return k, nil
}

// HashKey builds a hash key.
func HashKey(h uint32) Key {
	return Key{hash: h, isHash: true}
}

// IsHash reports whether k is a hash key.
func (k Key) IsHash() bool { return k.isHash }

// Hash returns the hash value; zero for name keys.
func (k Key) Hash() uint32 { return k.hash }

// Name returns the name bytes up to the last non-zero byte. Interior NULs
// followed by non-zero bytes are significant data and are preserved.
func (k Key) Name() []byte {
	last := -1
	for i, b := range k.name {
		if b != 0 {
			last = i
		}
	}
	if last < 0 {
		return nil
	}
	return append([]byte(nil), k.name[:last+1]...)
}

// Less reports whether k precedes other in binary-search order: numeric for
// hash keys, byte-lexicographic over the padded 8-byte field for names.
// This is the order the game engine expects in the lookup section.
func (k Key) Less(other Key) bool {
	if k.isHash != other.isHash {
		return !k.isHash
	}
	if k.isHash {
		return k.hash < other.hash
	}
	return bytes.Compare(k.name[:], other.name[:]) < 0
}

// raw8 returns the padded 8-byte wire form of a name key.
func (k Key) raw8() [8]byte { return k.name }

// Document is the in-memory form of one GXT file: the format tag, the MAIN
// table, and the auxiliary tables in their on-disk list order.
type Document struct {
	Format FileFormat
	Main   *StringTable

	aux []auxTable
}

type auxTable struct {
	name   string
	table  *StringTable
	offset uint32 // absolute file offset of the table block, when decoded
}

// NewDocument creates an empty Document for the given format.
func NewDocument(f FileFormat) *Document {
	return &Document{Format: f, Main: NewStringTable()}
}

// AddAux appends an empty auxiliary table. The name is the text form of an
// up-to-8-byte table name; a duplicate name fails with ErrDuplicateKey.
func (d *Document) AddAux(name string) (*StringTable, error) {
	return d.addAux(name, 0)
}

func (d *Document) addAux(name string, offset uint32) (*StringTable, error) {
	if _, err := textToName(name); err != nil {
		return nil, err
	}
	for _, a := range d.aux {
		if a.name == name {
			return nil, fmt.Errorf("%w: table %q", ErrDuplicateKey, name)
		}
	}
	t := NewStringTable()
	d.aux = append(d.aux, auxTable{name: name, table: t, offset: offset})
	return t, nil
}

// Aux returns the auxiliary table with the given name, or nil.
func (d *Document) Aux(name string) *StringTable {
	for _, a := range d.aux {
		if a.name == name {
			return a.table
		}
	}
	return nil
}

// AuxNames returns the auxiliary table names in Document order.
func (d *Document) AuxNames() []string {
	names := make([]string, len(d.aux))
	for i, a := range d.aux {
		names[i] = a.name
	}
	return names
}

// AuxOffset returns the file offset recorded for an auxiliary table at
// decode time.
func (d *Document) AuxOffset(name string) (uint32, bool) {
	for _, a := range d.aux {
		if a.name == name {
			return a.offset, true
		}
	}
	return 0, false
}

// AuxNamesByKeyOrder returns the auxiliary table names sorted the way their
// padded 8-byte wire names compare, without touching Document order.
func (d *Document) AuxNamesByKeyOrder() []string {
	names := d.AuxNames()
	sort.SliceStable(names, func(i, j int) bool {
		return auxNameLess(names[i], names[j])
	})
	return names
}

// AuxNamesByOffsetOrder returns the auxiliary table names sorted by their
// recorded file offsets, without touching Document order.
func (d *Document) AuxNamesByOffsetOrder() []string {
	names := d.AuxNames()
	offsets := make(map[string]uint32, len(d.aux))
	for _, a := range d.aux {
		offsets[a.name] = a.offset
	}
	sort.SliceStable(names, func(i, j int) bool {
		return offsets[names[i]] < offsets[names[j]]
	})
	return names
}

func auxNameLess(a, b string) bool {
	ra, _ := textToName(a)
	rb, _ := textToName(b)
	var pa, pb [8]byte
	copy(pa[:], ra)
	copy(pb[:], rb)
	return bytes.Compare(pa[:], pb[:]) < 0
}
