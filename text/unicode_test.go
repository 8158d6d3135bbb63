package text

import (
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestCanonicalTable(t *testing.T) {
	if len(legacyChars) != len(canonicalChars) {
		t.Fatalf("table misaligned: %d legacy, %d canonical", len(legacyChars), len(canonicalChars))
	}
	for i, legacy := range legacyChars {
		want := canonicalChars[i]
		// The eth glyphs are a code page mix-up, not a decomposition.
		if legacy == "\u00f0" || legacy == "\u00d0" {
			continue
		}
		if got := norm.NFC.String(legacy); got != want {
			t.Errorf("entry %d: NFC(%q) = %q, table says %q", i, legacy, got, want)
		}
	}
}

func TestCanonicalizeUnicode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already canonical", input: "ph\u1edf b\u00f2 ngon", want: "ph\u1edf b\u00f2 ngon"},
		{name: "decomposed tone", input: "thi\u0323t ngo\u0300n", want: "th\u1ecbt ng\u00f2n"},
		{name: "decomposed modifier", input: "qua\u0301n a\u0306n", want: "qu\u00e1n \u0103n"},
		{name: "modifier letter with tone", input: "\u00f4\u0301c", want: "\u1ed1c"},
		{name: "modifier followed by tone is left alone", input: "o\u0302\u0301c", want: "o\u0302\u0301c"},
		{name: "eth", input: "\u00d0\u00e0 N\u1eb5ng", want: "\u0110\u00e0 N\u1eb5ng"},
		{name: "lower eth", input: "\u00f0\u1eb9p", want: "\u0111\u1eb9p"},
		{name: "upper case", input: "A\u0300", want: "\u00c0"},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalizeUnicode(tt.input); got != tt.want {
				t.Errorf("CanonicalizeUnicode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeUnicode_Idempotent(t *testing.T) {
	inputs := []string{
		"ph\u1edf b\u00f2",
		"a\u0302\u0300",
		"\u01a1\u0301",
		"\u00d0i\u0323a",
		"thi\u0323t kho\u0302ng ngon",
		"e\u0302\u0323",
	}
	for _, input := range inputs {
		once := CanonicalizeUnicode(input)
		if twice := CanonicalizeUnicode(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}
