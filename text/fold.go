package text

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// FoldAccents lower-cases s, strips Vietnamese diacritics and collapses
// whitespace, so "Phở  Đặc Biệt" and "pho dac biet" compare equal.
func FoldAccents(s string) string {
	return collapseSpaces(strings.ToLower(unidecode.Unidecode(s)))
}
