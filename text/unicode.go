package text

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// legacyChars and canonicalChars are positionally aligned: legacyChars[i] is
// rewritten to canonicalChars[i]. Legacy forms are a base letter followed by a
// combining mark, plus the eth glyphs that cp1252 shows for cp1258 d-stroke.
var legacyChars = [...]string{
	"a\u0300", "a\u0301", "a\u0309", "a\u0303", "a\u0323", "\u00e2\u0300", "\u00e2\u0301", "\u00e2\u0309", "\u00e2\u0303", "\u00e2\u0323",
	"\u0103\u0300", "\u0103\u0301", "\u0103\u0309", "\u0103\u0303", "\u0103\u0323", "e\u0300", "e\u0301", "e\u0309", "e\u0303", "e\u0323",
	"\u00ea\u0300", "\u00ea\u0301", "\u00ea\u0309", "\u00ea\u0303", "\u00ea\u0323", "i\u0300", "i\u0301", "i\u0309", "i\u0303", "i\u0323",
	"o\u0300", "o\u0301", "o\u0309", "o\u0303", "o\u0323", "\u00f4\u0300", "\u00f4\u0301", "\u00f4\u0309", "\u00f4\u0303", "\u00f4\u0323",
	"\u01a1\u0300", "\u01a1\u0301", "\u01a1\u0309", "\u01a1\u0303", "\u01a1\u0323", "u\u0300", "u\u0301", "u\u0309", "u\u0303", "u\u0323",
	"\u01b0\u0300", "\u01b0\u0301", "\u01b0\u0309", "\u01b0\u0303", "\u01b0\u0323", "y\u0300", "y\u0301", "y\u0309", "y\u0303", "y\u0323",
	"A\u0300", "A\u0301", "A\u0309", "A\u0303", "A\u0323", "\u00c2\u0300", "\u00c2\u0301", "\u00c2\u0309", "\u00c2\u0303", "\u00c2\u0323",
	"\u0102\u0300", "\u0102\u0301", "\u0102\u0309", "\u0102\u0303", "\u0102\u0323", "E\u0300", "E\u0301", "E\u0309", "E\u0303", "E\u0323",
	"\u00ca\u0300", "\u00ca\u0301", "\u00ca\u0309", "\u00ca\u0303", "\u00ca\u0323", "I\u0300", "I\u0301", "I\u0309", "I\u0303", "I\u0323",
	"O\u0300", "O\u0301", "O\u0309", "O\u0303", "O\u0323", "\u00d4\u0300", "\u00d4\u0301", "\u00d4\u0309", "\u00d4\u0303", "\u00d4\u0323",
	"\u01a0\u0300", "\u01a0\u0301", "\u01a0\u0309", "\u01a0\u0303", "\u01a0\u0323", "U\u0300", "U\u0301", "U\u0309", "U\u0303", "U\u0323",
	"\u01af\u0300", "\u01af\u0301", "\u01af\u0309", "\u01af\u0303", "\u01af\u0323", "Y\u0300", "Y\u0301", "Y\u0309", "Y\u0303", "Y\u0323",
	"a\u0302", "a\u0306", "e\u0302", "o\u0302", "o\u031b", "u\u031b",
	"A\u0302", "A\u0306", "E\u0302", "O\u0302", "O\u031b", "U\u031b",
	"\u00f0", "\u00d0",
}

var canonicalChars = [...]string{
	"à", "á", "ả", "ã", "ạ", "ầ", "ấ", "ẩ", "ẫ", "ậ",
	"ằ", "ắ", "ẳ", "ẵ", "ặ", "è", "é", "ẻ", "ẽ", "ẹ",
	"ề", "ế", "ể", "ễ", "ệ", "ì", "í", "ỉ", "ĩ", "ị",
	"ò", "ó", "ỏ", "õ", "ọ", "ồ", "ố", "ổ", "ỗ", "ộ",
	"ờ", "ớ", "ở", "ỡ", "ợ", "ù", "ú", "ủ", "ũ", "ụ",
	"ừ", "ứ", "ử", "ữ", "ự", "ỳ", "ý", "ỷ", "ỹ", "ỵ",
	"À", "Á", "Ả", "Ã", "Ạ", "Ầ", "Ấ", "Ẩ", "Ẫ", "Ậ",
	"Ằ", "Ắ", "Ẳ", "Ẵ", "Ặ", "È", "É", "Ẻ", "Ẽ", "Ẹ",
	"Ề", "Ế", "Ể", "Ễ", "Ệ", "Ì", "Í", "Ỉ", "Ĩ", "Ị",
	"Ò", "Ó", "Ỏ", "Õ", "Ọ", "Ồ", "Ố", "Ổ", "Ỗ", "Ộ",
	"Ờ", "Ớ", "Ở", "Ỡ", "Ợ", "Ù", "Ú", "Ủ", "Ũ", "Ụ",
	"Ừ", "Ứ", "Ử", "Ữ", "Ự", "Ỳ", "Ý", "Ỷ", "Ỹ", "Ỵ",
	"\u00e2", "\u0103", "\u00ea", "\u00f4", "\u01a1", "\u01b0",
	"\u00c2", "\u0102", "\u00ca", "\u00d4", "\u01a0", "\u01af",
	"\u0111", "\u0110",
}

// toneMarks are the combining tone marks. A base+modifier pair directly
// followed by one of them is left alone, otherwise a second pass would
// produce another legacy pair and break idempotence.
const toneMarks = "\u0300\u0301\u0303\u0309\u0323"

var (
	canonicalTable   = buildCanonicalTable()
	canonicalPattern = buildCanonicalPattern()
)

func buildCanonicalTable() map[string]string {
	table := make(map[string]string, len(legacyChars))
	for i, legacy := range legacyChars {
		table[legacy] = canonicalChars[i]
	}
	return table
}

func buildCanonicalPattern() *regexp2.Regexp {
	alternatives := make([]string, 0, len(legacyChars))
	for _, legacy := range legacyChars {
		alt := regexp2.Escape(legacy)
		if isModifierPair(legacy) {
			alt += "(?![" + toneMarks + "])"
		}
		alternatives = append(alternatives, alt)
	}
	return regexp2.MustCompile(strings.Join(alternatives, "|"), regexp2.None)
}

func isModifierPair(legacy string) bool {
	return strings.HasSuffix(legacy, "\u0302") ||
		strings.HasSuffix(legacy, "\u0306") ||
		strings.HasSuffix(legacy, "\u031b")
}

// CanonicalizeUnicode rewrites legacy Vietnamese character encodings to their
// precomposed form.
func CanonicalizeUnicode(text string) string {
	out, err := canonicalPattern.ReplaceFunc(text, func(m regexp2.Match) string {
		return canonicalTable[m.String()]
	}, -1, -1)
	if err != nil {
		return text
	}
	return out
}
