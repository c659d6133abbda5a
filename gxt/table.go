package gxt

import "sort"

// Entry is one key-to-string pair together with the absolute offset of its
// character run in the data section (recorded at decode, zero otherwise).
type Entry struct {
	Key    Key
	Value  string
	Offset uint32
}

// StringTable is an insertion-ordered map of Key to string. Entry order is
// semantic: it records the on-disk lookup order after a binary decode and
// dictates the data-section layout on encode. Keys are unique; uniqueness
// is enforced at insertion.
type StringTable struct {
	entries []Entry
	index   map[Key]int
}

// NewStringTable creates an empty table.
func NewStringTable() *StringTable {
	return &StringTable{index: make(map[Key]int)}
}

// Len returns the number of entries.
func (t *StringTable) Len() int { return len(t.entries) }

// Insert appends an entry. A key already present fails with ErrDuplicateKey.
func (t *StringTable) Insert(k Key, value string) error {
	return t.insert(k, value, 0)
}

func (t *StringTable) insert(k Key, value string, offset uint32) error {
	if _, ok := t.index[k]; ok {
		return dupKeyError(k)
	}
	t.index[k] = len(t.entries)
	t.entries = append(t.entries, Entry{Key: k, Value: value, Offset: offset})
	return nil
}

// Get returns the value stored under k.
func (t *StringTable) Get(k Key) (string, bool) {
	i, ok := t.index[k]
	if !ok {
		return "", false
	}
	return t.entries[i].Value, true
}

// Offset returns the data-section offset recorded for k.
func (t *StringTable) Offset(k Key) (uint32, bool) {
	i, ok := t.index[k]
	if !ok {
		return 0, false
	}
	return t.entries[i].Offset, true
}

// Keys returns the keys in entry order.
func (t *StringTable) Keys() []Key {
	keys := make([]Key, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in entry order.
func (t *StringTable) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// KeysByKeyOrder returns the keys in binary-search order (lexicographic for
// names, numeric for hashes) without touching entry order.
func (t *StringTable) KeysByKeyOrder() []Key {
	keys := t.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// KeysByOffsetOrder returns the keys sorted by the offset of their data
// runs, without touching entry order. For a decoded file this recovers the
// historical authoring order of the data section.
func (t *StringTable) KeysByOffsetOrder() []Key {
	keys := t.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return t.entries[t.index[keys[i]]].Offset < t.entries[t.index[keys[j]]].Offset
	})
	return keys
}
