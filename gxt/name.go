package gxt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// nameToText converts raw name bytes to their text form, one rune per byte
// (Latin-1). Every byte value 0-255 maps to a distinct rune, so arbitrary
// names survive the trip through a quoted text key.
func nameToText(name []byte) string {
	var b strings.Builder
	for _, c := range name {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// textToName converts a text-form name back to raw bytes. Runes at or below
// 0xFF map back to single bytes, inverting nameToText exactly; anything
// higher falls back to UTF-8. Fails with ErrNameTooLong past 8 bytes.
func textToName(text string) ([]byte, error) {
	buf := make([]byte, 0, 8)
	for _, r := range text {
		if r <= 0xFF {
			buf = append(buf, byte(r))
		} else {
			buf = utf8.AppendRune(buf, r)
		}
	}
	if len(buf) > 8 {
		return nil, fmt.Errorf("%w: %q is %d bytes", ErrNameTooLong, text, len(buf))
	}
	return buf, nil
}

// hashLiteralRE matches the text form of a literal hash: '#' plus exactly
// eight hex digits.
var hashLiteralRE = regexp.MustCompile(`^#[0-9a-fA-F]{8}$`)

// DisplayKey returns the text form of a key. Hash keys render as '#' plus
// eight lowercase hex digits, or as the producing name when the list knows
// the hash. A name starting with '#' gets a second leading '#' so it cannot
// read as a hash literal.
func DisplayKey(k Key, names *NameList) string {
	if k.IsHash() {
		if names != nil {
			if n, ok := names.Resolve(k.Hash()); ok {
				return escapeLeadingHash(n)
			}
		}
		return fmt.Sprintf("#%08x", k.Hash())
	}
	return escapeLeadingHash(nameToText(k.Name()))
}

// ParseKey converts the text form of a key into its binary key for the
// given format.
//
// Hash formats: '#'+8 hex digits is the literal hash; a '##' prefix strips
// one '#' and hashes the remainder; any other text hashes as-is. Name
// formats: a '##' prefix strips one '#' (the inverse of DisplayKey),
// otherwise the text is the name verbatim.
func ParseKey(text string, f FileFormat) (Key, error) {
	if f.HashKeys() {
		if hashLiteralRE.MatchString(text) {
			v, err := strconv.ParseUint(text[1:], 16, 32)
			if err != nil {
				return Key{}, fmt.Errorf("hash literal %q: %w", text, err)
			}
			return HashKey(uint32(v)), nil
		}
		if strings.HasPrefix(text, "##") {
			text = text[1:]
		}
		return HashKey(Jamhash([]byte(text))), nil
	}
	if strings.HasPrefix(text, "##") {
		text = text[1:]
	}
	name, err := textToName(text)
	if err != nil {
		return Key{}, err
	}
	return NameKey(name)
}

func escapeLeadingHash(s string) string {
	if strings.HasPrefix(s, "#") {
		return "#" + s
	}
	return s
}

func dupKeyError(k Key) error {
	return fmt.Errorf("%w: %s", ErrDuplicateKey, DisplayKey(k, nil))
}
