package gxt

import (
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/encoding/charmap"
)

// Built-in character tables for codes 0x20-0xFF; index 0 is code 0x20 and a
// zero rune marks a code the runtime font leaves unmapped. The tables track
// ASCII, then diverge: accented EFIGS letters, and slots repurposed for HUD
// and controller-button glyphs.
//
// The San Andreas table is Windows-1252 and is derived from the charmap
// data at init; the III and Vice City tables are bespoke runtime fonts and
// are written out literally.

var threeTable = [224]rune{
	' ', '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';', '<', '=', '>', '?',
	'™', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O',
	'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', '[', '\\', ']', '^', '°',
	'`', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', '❤', '◯', 0, '~', 0,
	'À', 'Á', 'Â', 'Ä', 'Æ', 'Ç', 'È', 'É', 'Ê', 'Ë', 'Ì', 'Í', 'Î', 'Ï', 'Ò', 'Ó',
	'Ô', 'Ö', 'Ù', 'Ú', 'Û', 'Ü', 'ß', 'à', 'á', 'â', 'ä', 'æ', 'ç', 'è', 'é', 'ê',
	'ë', 'ì', 'í', 'î', 'ï', 'ò', 'ó', 'ô', 'ö', 'ù', 'ú', 'û', 'ü', 'Ñ', 'ñ', '¿',
	'¡',
}

var viceTable = [224]rune{
	' ', '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';', '🛡', '=', '★', '?',
	'™', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O',
	'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', '[', '\\', ']', '¡', '°',
	'`', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', '❤', '|', '}', '~', 0,
	'À', 'Á', 'Â', 'Ä', 'Æ', 'Ç', 'È', 'É', 'Ê', 'Ë', 'Ì', 'Í', 'Î', 'Ï', 'Ò', 'Ó',
	'Ô', 'Ö', 'Ù', 'Ú', 'Û', 'Ü', 'ß', 'à', 'á', 'â', 'ä', 'æ', 'ç', 'è', 'é', 'ê',
	'ë', 'ì', 'í', 'î', 'ï', 'ò', 'ó', 'ô', 'ö', 'ù', 'ú', 'û', 'ü', 'Ñ', 'ñ', '¿',
}

var sanTable [224]rune

var (
	threeReverse map[rune]uint16
	viceReverse  map[rune]uint16
	sanReverse   map[rune]uint16
)

func init() {
	for i := range sanTable {
		r := charmap.Windows1252.DecodeByte(byte(i + 0x20))
		// DEL and the C1 range have no glyphs in the runtime font; treat
		// them as unmapped along with the codepage holes.
		if r == utf8.RuneError || r == 0x7F || (r >= 0x80 && r <= 0x9F) {
			continue
		}
		sanTable[i] = r
	}
	threeReverse = reverseTable(&threeTable)
	viceReverse = reverseTable(&viceTable)
	sanReverse = reverseTable(&sanTable)
}

func reverseTable(t *[224]rune) map[rune]uint16 {
	m := make(map[rune]uint16, len(t))
	for i, r := range t {
		if r == 0 {
			continue
		}
		if _, ok := m[r]; !ok {
			m[r] = uint16(i + 0x20)
		}
	}
	return m
}

func builtinTables(f FileFormat) (*[224]rune, map[rune]uint16) {
	switch f {
	case FormatThree:
		return &threeTable, threeReverse
	case FormatVice:
		return &viceTable, viceReverse
	default:
		return &sanTable, sanReverse
	}
}

// CharTable overlays the built-in character table for non-NA/EFIGS game
// versions. Decode maps binary codes to scalars; Encode maps scalars back.
// Unofficial translations reuse one code for two similar-looking letters
// (say, the digit '3' and a Cyrillic letter), which is why the directions
// are independent: both letters can decode while only one code wins the
// encode direction.
type CharTable struct {
	Decode map[uint16]rune
	Encode map[rune]uint16
}

// LoadCharTable parses a TOML character-table document with optional
// [decode] and [encode] sections:
//
//	[decode]
//	51 = "З"
//
//	[encode]
//	"З" = 51
//
// Encode entries missing for a decoded scalar are derived by inverting the
// decode map; ascending-code iteration makes the derivation deterministic
// (the lowest code wins). Explicit encode entries always take precedence.
func LoadCharTable(data []byte) (*CharTable, error) {
	var raw struct {
		Decode map[string]string `toml:"decode"`
		Encode map[string]uint16 `toml:"encode"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("character table: %w", err)
	}

	ct := &CharTable{
		Decode: make(map[uint16]rune, len(raw.Decode)),
		Encode: make(map[rune]uint16, len(raw.Encode)),
	}
	for k, v := range raw.Decode {
		code, err := parseCharCode(k)
		if err != nil {
			return nil, err
		}
		r, err := singleRune(v)
		if err != nil {
			return nil, err
		}
		ct.Decode[code] = r
	}
	for k, code := range raw.Encode {
		r, err := singleRune(k)
		if err != nil {
			return nil, err
		}
		ct.Encode[r] = code
	}
	ct.deriveEncode()
	return ct, nil
}

func (ct *CharTable) deriveEncode() {
	codes := make([]int, 0, len(ct.Decode))
	for code := range ct.Decode {
		codes = append(codes, int(code))
	}
	sort.Ints(codes)
	for _, code := range codes {
		r := ct.Decode[uint16(code)]
		if _, ok := ct.Encode[r]; !ok {
			ct.Encode[r] = uint16(code)
		}
	}
}

func parseCharCode(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("character table: bad code %q: %w", s, err)
	}
	return uint16(v), nil
}

func singleRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError && size == 1 {
		return 0, fmt.Errorf("character table: %q is not a single character", s)
	}
	return r, nil
}

// decodeChar maps one non-zero binary character code to a Unicode scalar:
// custom table first, then the built-in table, then the structural
// fallback. Codes 1-31 fall back to the matching control scalar, 32-255
// into the PUA at 0xE000+code, higher codes into plane 15 at 0xFEF00+code,
// so an unmapped code stays visibly unmapped instead of posing as a real
// character.
func decodeChar(code uint16, f FileFormat, ct *CharTable) rune {
	if ct != nil {
		if r, ok := ct.Decode[code]; ok {
			return r
		}
	}
	if code >= 0x20 && code <= 0xFF {
		table, _ := builtinTables(f)
		if r := table[code-0x20]; r != 0 {
			return r
		}
	}
	switch {
	case code < 0x20:
		return rune(code)
	case code <= 0xFF:
		return rune(0xE000 + uint32(code))
	default:
		return rune(0xFEF00 + uint32(code))
	}
}

// encodeChar maps a scalar back to its binary code: custom table first,
// then the built-in reverse table, then the inverse of decodeChar's
// fallback arithmetic. Scalars with no mapping outside the fallback ranges
// fail with ErrUnencodableCharacter; so does the NUL scalar, which is the
// reserved terminator.
func encodeChar(r rune, f FileFormat, ct *CharTable) (uint16, error) {
	if ct != nil {
		if code, ok := ct.Encode[r]; ok && code != 0 {
			return code, nil
		}
	}
	_, reverse := builtinTables(f)
	if code, ok := reverse[r]; ok {
		return code, nil
	}
	switch {
	case r > 0 && r < 0x20:
		return uint16(r), nil
	case r >= 0xE020 && r <= 0xE0FF:
		return uint16(r - 0xE000), nil
	case r >= 0xFF000 && r <= 0x10EEFF:
		return uint16(r - 0xFEF00), nil
	}
	return 0, fmt.Errorf("%w: U+%04X", ErrUnencodableCharacter, r)
}
