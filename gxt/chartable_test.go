package gxt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeCharBuiltins(t *testing.T) {
	tests := []struct {
		name   string
		code   uint16
		format FileFormat
		want   rune
	}{
		{"ascii letter", 0x41, FormatThree, 'A'},
		{"ascii space", 0x20, FormatVice, ' '},
		{"three trademark", 0x40, FormatThree, '™'},
		{"three degree", 0x5F, FormatThree, '°'},
		{"vice star", 0x3E, FormatVice, '★'},
		{"vice inverted bang", 0x5E, FormatVice, '¡'},
		{"accented letter", 0x80, FormatThree, 'À'},
		{"san euro", 0x80, FormatSan8, '€'},
		{"san sharp s", 0xDF, FormatSan8, 'ß'},
		{"san16 shares san table", 0x80, FormatSan16, '€'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeChar(tt.code, tt.format, nil); got != tt.want {
				t.Errorf("decodeChar(%#x, %s) = %q, want %q", tt.code, tt.format, got, tt.want)
			}
		})
	}
}

func TestDecodeCharFallback(t *testing.T) {
	// Control codes pass through so markup like newline survives.
	if got := decodeChar(0x07, FormatThree, nil); got != rune(7) {
		t.Errorf("control fallback = %#x, want 0x7", got)
	}
	// Unmapped byte codes land in the private use area at 0xE000+code.
	if got := decodeChar(0x7D, FormatThree, nil); got != rune(0xE07D) {
		t.Errorf("byte fallback = %#x, want 0xE07D", got)
	}
	if got := decodeChar(0xFF, FormatThree, nil); got != rune(0xE0FF) {
		t.Errorf("byte fallback = %#x, want 0xE0FF", got)
	}
	if got := decodeChar(0x9F, FormatSan8, nil); got != rune(0xE09F) {
		t.Errorf("san hole fallback = %#x, want 0xE09F", got)
	}
	// Wide codes land in the plane 15 block at 0xFEF00+code.
	if got := decodeChar(0x1234, FormatSan16, nil); got != rune(0x100134) {
		t.Errorf("wide fallback = %#x, want 0x100134", got)
	}
}

func TestEncodeCharInvertsDecode(t *testing.T) {
	formats := []FileFormat{FormatThree, FormatVice, FormatSan8, FormatSan16}
	for _, f := range formats {
		for code := uint16(1); code <= 0xFF; code++ {
			r := decodeChar(code, f, nil)
			got, err := encodeChar(r, f, nil)
			if err != nil {
				t.Fatalf("%s code %#x: decode gave %q, encode failed: %v", f, code, r, err)
			}
			if got != code {
				t.Fatalf("%s code %#x: decoded %q re-encoded as %#x", f, code, r, got)
			}
		}
	}
}

func TestEncodeCharWideFallback(t *testing.T) {
	got, err := encodeChar(rune(0x100134), FormatSan16, nil)
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), got)
}

func TestEncodeCharUnencodable(t *testing.T) {
	_, err := encodeChar('€', FormatThree, nil)
	if !errors.Is(err, ErrUnencodableCharacter) {
		t.Fatalf("err = %v, want ErrUnencodableCharacter", err)
	}
	// NUL is the run terminator and never a data character.
	_, err = encodeChar(0, FormatSan8, nil)
	if !errors.Is(err, ErrUnencodableCharacter) {
		t.Fatalf("err = %v, want ErrUnencodableCharacter", err)
	}
}

func TestLoadCharTableOverlay(t *testing.T) {
	ct, err := LoadCharTable([]byte(`
[decode]
0x33 = "З"
0x36 = "б"
`))
	require.NoError(t, err)

	// Custom entries win over the built-in table.
	require.Equal(t, 'З', decodeChar(0x33, FormatSan8, ct))
	// Untouched codes keep their built-in mapping.
	require.Equal(t, '4', decodeChar(0x34, FormatSan8, ct))
	// The encode direction is derived from the decode map.
	code, err := encodeChar('З', FormatSan8, ct)
	require.NoError(t, err)
	require.Equal(t, uint16(0x33), code)
}

func TestLoadCharTableManyToOne(t *testing.T) {
	// Two codes decode to the same letter; the lowest code wins the derived
	// encode direction unless an explicit encode entry overrides it.
	doc := []byte(`
[decode]
0x33 = "З"
0x97 = "З"
`)
	ct, err := LoadCharTable(doc)
	require.NoError(t, err)
	code, err := encodeChar('З', FormatSan8, ct)
	require.NoError(t, err)
	require.Equal(t, uint16(0x33), code)

	ct, err = LoadCharTable(append(doc, []byte(`
[encode]
"З" = 0x97
`)...))
	require.NoError(t, err)
	code, err = encodeChar('З', FormatSan8, ct)
	require.NoError(t, err)
	require.Equal(t, uint16(0x97), code)
}

func TestLoadCharTableRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"multi-rune value", "[decode]\n0x33 = \"ab\""},
		{"empty value", "[decode]\n0x33 = \"\""},
		{"bad code", "[decode]\nnope = \"a\""},
		{"code out of range", "[decode]\n0x10000 = \"a\""},
		{"not toml", "???"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCharTable([]byte(tt.doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
