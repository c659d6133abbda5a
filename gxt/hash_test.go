package gxt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJamhashCheckValues(t *testing.T) {
	// CRC-32/JAMCRC check value from the catalogue entry.
	if got := Jamhash([]byte("123456789")); got != 0x340bc6d9 {
		t.Errorf("Jamhash(123456789) = %#08x, want 0x340bc6d9", got)
	}
	if got := Jamhash(nil); got != 0xffffffff {
		t.Errorf("Jamhash(empty) = %#08x, want 0xffffffff", got)
	}
}

func TestJamhashDistinctInputs(t *testing.T) {
	if Jamhash([]byte("MAIN")) == Jamhash([]byte("MISSION")) {
		t.Fatal("distinct names hashed to the same value")
	}
}

func TestLoadNameList(t *testing.T) {
	nl, err := LoadNameList([]byte(`names = ["CRED001", "CRED002", "HELP_1"]`))
	require.NoError(t, err)
	require.Equal(t, []string{"CRED001", "CRED002", "HELP_1"}, nl.Names())

	name, ok := nl.Resolve(Jamhash([]byte("HELP_1")))
	require.True(t, ok)
	require.Equal(t, "HELP_1", name)

	_, ok = nl.Resolve(Jamhash([]byte("ABSENT")))
	require.False(t, ok)
}

func TestLoadNameListLastWins(t *testing.T) {
	nl, err := LoadNameList([]byte(`names = ["TWICE", "TWICE"]`))
	require.NoError(t, err)
	name, ok := nl.Resolve(Jamhash([]byte("TWICE")))
	require.True(t, ok)
	require.Equal(t, "TWICE", name)
}

func TestLoadNameListBadTOML(t *testing.T) {
	_, err := LoadNameList([]byte(`names = "not a list"`))
	require.Error(t, err)
}
