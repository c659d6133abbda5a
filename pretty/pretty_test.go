package pretty

import (
	"strings"
	"testing"

	"github.com/gxt-tools/gxt/gxt"
)

func TestRenderPlainText(t *testing.T) {
	got := Render("Hello, world.", gxt.FormatThree, false)
	if got != "Hello, world." {
		t.Errorf("got %q", got)
	}
}

func TestRenderColorTags(t *testing.T) {
	got := Render("~r~WASTED~w~ again", gxt.FormatThree, true)
	want := "\x1b[31mWASTED\x1b[0m\x1b[37m again\x1b[0m"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderColorDisabled(t *testing.T) {
	got := Render("~r~WASTED~w~ again", gxt.FormatThree, false)
	if got != "WASTED again" {
		t.Errorf("got %q", got)
	}
}

func TestRenderPaletteIsPerFormat(t *testing.T) {
	// ~g~ is green in the III palette and bright red in the Vice one.
	three := Render("~g~go", gxt.FormatThree, true)
	vice := Render("~g~go", gxt.FormatVice, true)
	if !strings.Contains(three, "\x1b[32m") {
		t.Errorf("three = %q, want green", three)
	}
	if !strings.Contains(vice, "\x1b[91m") {
		t.Errorf("vice = %q, want bright red", vice)
	}
}

func TestRenderButtonSubstitutions(t *testing.T) {
	got := Render("Press ~x~ to jump~n~then ~K~", gxt.FormatSan8, false)
	want := "Press {bottom face button} to jump\n\tthen {left trigger}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderUnknownTagVerbatim(t *testing.T) {
	got := Render("cost: ~1~ dollars", gxt.FormatSan16, false)
	if got != "cost: ~1~ dollars" {
		t.Errorf("got %q", got)
	}
}

func TestRenderUnpairedTilde(t *testing.T) {
	got := Render("50~ complete", gxt.FormatVice, false)
	if got != "50~ complete" {
		t.Errorf("got %q", got)
	}
}
