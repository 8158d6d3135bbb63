package text

import "github.com/dlclark/regexp2"

var repeatedCharPattern = regexp2.MustCompile(`(.)\1+`, regexp2.None)

// CollapseRepeats reduces each run of an identical character to a single
// occurrence: "ngonnnn" becomes "ngon". Runs are found across the whole
// string, spaces included. Newlines are not collapsed.
func CollapseRepeats(text string) string {
	return replaceAll(repeatedCharPattern, text, "$1")
}
