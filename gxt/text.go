package gxt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
)

// The text form is a TOML document:
//
//	format = "Vice"
//
//	[main_table]
//	MAIN_KEY = "value"
//
//	[aux_tables.NAME]
//	AUX_KEY = "value"
//
// Key-value order inside a table is semantic, which rules out map-based
// TOML marshaling in both directions: encoding writes entries itself, and
// decoding walks the document expression by expression.

var bareKeyRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// EncodeText renders a Document in text form. Entries appear in entry
// order; hash keys render through the name list when one is given.
func EncodeText(doc *Document, names *NameList) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "format = %s\n", tomlString(doc.Format.String()))

	b.WriteString("\n[main_table]\n")
	writeTableBody(&b, doc.Main, names)
	for _, a := range doc.aux {
		fmt.Fprintf(&b, "\n[aux_tables.%s]\n", tomlKey(a.name))
		writeTableBody(&b, a.table, names)
	}
	return []byte(b.String())
}

func writeTableBody(b *strings.Builder, t *StringTable, names *NameList) {
	for _, e := range t.entries {
		fmt.Fprintf(b, "%s = %s\n", tomlKey(DisplayKey(e.Key, names)), tomlString(e.Value))
	}
}

// tomlKey renders a key bare when TOML allows it, quoted otherwise.
func tomlKey(s string) string {
	if bareKeyRE.MatchString(s) {
		return s
	}
	return tomlString(s)
}

func tomlString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7F {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// DecodeText parses the text form into a Document. The format key must
// precede the table sections, since it decides how entry keys are read.
func DecodeText(data []byte) (*Document, error) {
	var (
		doc     *Document
		current *StringTable
	)

	p := &unstable.Parser{}
	p.Reset(data)
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.KeyValue:
			key, err := singleKey(e)
			if err != nil {
				return nil, err
			}
			value := e.Value()
			if value.Kind != unstable.String {
				return nil, fmt.Errorf("key %q: value must be a string", key)
			}
			if current == nil {
				if key != "format" {
					return nil, fmt.Errorf("key %q precedes the format key", key)
				}
				if doc != nil {
					return nil, fmt.Errorf("%w: format set twice", ErrUnknownFormat)
				}
				f, err := ParseFormat(string(value.Data))
				if err != nil {
					return nil, err
				}
				doc = NewDocument(f)
			} else {
				k, err := ParseKey(key, doc.Format)
				if err != nil {
					return nil, err
				}
				if err := current.Insert(k, string(value.Data)); err != nil {
					return nil, err
				}
			}
		case unstable.Table:
			if doc == nil {
				return nil, fmt.Errorf("%w: table precedes the format key", ErrUnknownFormat)
			}
			parts := keyParts(e)
			switch {
			case len(parts) == 1 && parts[0] == "main_table":
				current = doc.Main
			case len(parts) == 2 && parts[0] == "aux_tables":
				if !doc.Format.MultiTable() {
					return nil, fmt.Errorf("format %s cannot carry auxiliary tables", doc.Format)
				}
				t, err := doc.AddAux(parts[1])
				if err != nil {
					return nil, err
				}
				current = t
			default:
				return nil, fmt.Errorf("unexpected table [%s]", strings.Join(parts, "."))
			}
		default:
			return nil, fmt.Errorf("unexpected TOML expression")
		}
	}
	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("text form: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: text form has no format key", ErrUnknownFormat)
	}
	return doc, nil
}

func keyParts(e *unstable.Node) []string {
	var parts []string
	it := e.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func singleKey(e *unstable.Node) (string, error) {
	parts := keyParts(e)
	if len(parts) != 1 {
		return "", fmt.Errorf("dotted key %q is not a valid entry key", strings.Join(parts, "."))
	}
	return parts[0], nil
}
