// Package pretty renders the tilde markup embedded in game strings for
// terminal display: color tags become ANSI escapes, controller-button tags
// become readable placeholders, and unknown tags pass through verbatim.
package pretty

import (
	"strings"

	"github.com/gxt-tools/gxt/gxt"
)

// ANSI foreground codes used by the tag palettes.
const (
	colBlack         = "30"
	colRed           = "31"
	colGreen         = "32"
	colYellow        = "33"
	colBlue          = "34"
	colMagenta       = "35"
	colWhite         = "37"
	colBrightRed     = "91"
	colBrightGreen   = "92"
	colBrightYellow  = "93"
	colBrightBlue    = "94"
	colBrightMagenta = "95"
	colBrightWhite   = "97"
)

// action is what one recognized tag does: switch the active color, reset
// it, or splice replacement text into the output.
type action struct {
	color string
	reset bool
	text  string
}

// Each game release repurposes the tag letters, so the palettes are keyed
// by format. The colors approximate the in-game ones.
var threeTags = map[string]action{
	"b": {color: colBrightBlue},
	"g": {color: colGreen},
	"h": {color: colBrightWhite},
	"l": {color: colBlack},
	"r": {color: colRed},
	"w": {reset: true},
	"y": {color: colYellow},
}

var viceTags = map[string]action{
	"b": {color: colBlue},
	"g": {color: colBrightRed},
	"h": {color: colBrightWhite},
	"l": {reset: true},
	"o": {color: colBrightMagenta},
	"p": {color: colMagenta},
	"r": {color: colBrightRed},
	"t": {color: colBrightGreen},
	"w": {color: colWhite},
	"x": {color: colBrightBlue},
	"y": {color: colBrightYellow},
}

var sanTags = map[string]action{
	"A": {text: "{left analog stick click}"},
	"b": {color: colBlue},
	"K": {text: "{left trigger}"},
	"c": {text: "{right analog stick click}"},
	"d": {text: "{down on d-pad}"},
	"g": {color: colGreen},
	"h": {color: colBrightWhite},
	"j": {text: "{right trigger}"},
	"l": {color: colBlack},
	"m": {text: "{left bumper / white button}"},
	"n": {text: "\n\t"},
	"o": {text: "{right face button}"},
	"p": {color: colMagenta},
	"q": {text: "{left face button}"},
	"r": {color: colRed},
	"s": {reset: true},
	"t": {text: "{top face button}"},
	"u": {text: "{up on d-pad}"},
	"v": {text: "{right bumper / black button}"},
	"w": {color: colWhite},
	"x": {text: "{bottom face button}"},
	"y": {color: colYellow},
	"z": {text: "{subtitle}"},
	"<": {text: "{left on d-pad}"},
	">": {text: "{right on d-pad}"},
}

func tagsFor(f gxt.FileFormat) map[string]action {
	switch f {
	case gxt.FormatThree:
		return threeTags
	case gxt.FormatVice:
		return viceTags
	default:
		return sanTags
	}
}

// Render expands the tilde markup in s for the given format. With color
// enabled the output carries ANSI escapes and ends with a reset; without
// it the color tags vanish while button placeholders stay.
func Render(s string, f gxt.FileFormat, color bool) string {
	tags := tagsFor(f)
	var b strings.Builder
	current := colWhite

	emitText := func(text string) {
		if text == "" {
			return
		}
		if color {
			b.WriteString("\x1b[" + current + "m")
		}
		b.WriteString(text)
	}

	rest := s
	for {
		i := strings.IndexByte(rest, '~')
		if i < 0 {
			emitText(rest)
			break
		}
		j := strings.IndexByte(rest[i+1:], '~')
		if j < 0 {
			// Unpaired tilde, keep the tail as text.
			emitText(rest)
			break
		}
		emitText(rest[:i])
		tag := rest[i+1 : i+1+j]
		rest = rest[i+j+2:]

		a, ok := tags[tag]
		switch {
		case !ok:
			emitText("~" + tag + "~")
		case a.text != "":
			b.WriteString(a.text)
		case a.reset:
			if color {
				b.WriteString("\x1b[0m")
			}
			current = colWhite
		default:
			current = a.color
		}
	}
	if color {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}
