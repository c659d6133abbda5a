// Package gxt implements a bidirectional codec for GXT, the binary
// string-table format the 3D-era Grand Theft Auto titles use for on-screen
// text.
//
// Three incompatible layouts are supported:
//   - Three:  a single name-keyed table (GTA III, Vice City on Xbox)
//   - Vice:   a table list plus named, name-keyed tables (Vice City, the
//     Stories titles)
//   - San8/San16: the table-list layout with CRC32-hashed keys and 8- or
//     16-bit character data (San Andreas, GTA IV)
//
// # Data Model
//
// A Document holds the format tag, the MAIN table and any auxiliary tables.
// Tables are insertion-ordered maps of Key to string; entry order records
// the on-disk lookup order at decode time and fixes the data-section layout
// at encode time. Keys are either raw names of up to 8 bytes or 32-bit
// JAMCRC hashes, depending on the format.
//
// # Character Mapping
//
// Binary character codes map to Unicode through a custom table (optional),
// then the built-in table for the format, then a structural fallback: codes
// 1-31 map to the matching control scalar, 32-255 into the Private Use Area
// at U+E000+code, and higher codes into plane 15 at 0xFEF00+code. The
// reserved ranges make an unmapped code visible instead of passing it off
// as a real character, and the arithmetic inverts exactly on encode.
//
// # Keys In Text Form
//
// Hash keys render as '#' plus eight hex digits, or as a known name when a
// NameList resolves the hash. A literal name that starts with '#' doubles
// the leading '#' so it cannot be mistaken for a hash literal; the parser
// strips one '#' from a '##' prefix and otherwise hashes or copies the text
// as the format requires.
//
// # Text Form
//
// Documents serialize to a TOML document with a format tag, a [main_table]
// section and one [aux_tables.NAME] section per auxiliary table, preserving
// entry order in both directions.
//
// All operations are pure: decode and encode take fully materialized input
// and share no mutable state, so concurrent calls need no locking.
package gxt
