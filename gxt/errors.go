package gxt

import "errors"

// Error definitions shared across the codec. Call sites wrap these with
// context via fmt.Errorf and %w; match with errors.Is.
var (
	// ErrMalformedHeader is returned when a binary structure violates the
	// format (bad section magic, bad version, missing MAIN table).
	ErrMalformedHeader = errors.New("malformed GXT header")
	// ErrUnexpectedEOF is returned when the input ends inside a structure.
	ErrUnexpectedEOF = errors.New("unexpected end of GXT data")
	// ErrUnterminatedString is returned when a character run reaches the end
	// of the input before its NUL terminator.
	ErrUnterminatedString = errors.New("unterminated string in data section")
	// ErrUnknownFormat is returned when a text document carries no format
	// tag, or one outside the known set.
	ErrUnknownFormat = errors.New("unknown GXT format tag")
	// ErrNameTooLong is returned when a key or table name exceeds 8 bytes.
	ErrNameTooLong = errors.New("name exceeds 8 bytes")
	// ErrUnencodableCharacter is returned when a scalar has no table entry
	// and lies outside the reversible fallback ranges.
	ErrUnencodableCharacter = errors.New("character cannot be encoded")
	// ErrDuplicateKey is returned when two entries in one table resolve to
	// the same binary key.
	ErrDuplicateKey = errors.New("duplicate key in table")
)
