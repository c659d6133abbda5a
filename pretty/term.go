package pretty

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// SupportsColor reports whether stdout should receive ANSI escapes: it has
// to be a terminal and TERM must not declare itself colorless.
func SupportsColor() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	switch strings.TrimSpace(os.Getenv("TERM")) {
	case "", "dumb":
		return false
	}
	return true
}
