package gxt

import (
	"fmt"
	"hash/crc32"

	"github.com/pelletier/go-toml/v2"
)

// crcTable is the IEEE CRC-32 table.
var crcTable = crc32.MakeTable(crc32.IEEE)

// Jamhash computes the CRC-32/JAMCRC of data: reflected input and output
// with no final complement. This is the variant the San Andreas engine
// applies to key names; it equals the bitwise NOT of the standard CRC-32.
func Jamhash(data []byte) uint32 {
	return crc32.Checksum(data, crcTable) ^ 0xFFFFFFFF
}

// NameList resolves hash keys back to the names that produced them. It is
// display-only: decoding never needs one, and encoding consults it only to
// render text keys.
type NameList struct {
	names  []string
	byHash map[uint32]string
}

// LoadNameList parses a TOML name-list document of the form
//
//	names = ["NAME1", "NAME2"]
//
// and builds the hash-to-name map once.
func LoadNameList(data []byte) (*NameList, error) {
	var raw struct {
		Names []string `toml:"names"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("name list: %w", err)
	}
	nl := &NameList{
		names:  raw.Names,
		byHash: make(map[uint32]string, len(raw.Names)),
	}
	for _, n := range raw.Names {
		nl.byHash[Jamhash([]byte(n))] = n
	}
	return nl, nil
}

// Resolve returns the name whose JAMCRC equals h.
func (l *NameList) Resolve(h uint32) (string, bool) {
	n, ok := l.byHash[h]
	return n, ok
}

// Names returns the listed names in document order.
func (l *NameList) Names() []string {
	return append([]string(nil), l.names...)
}
