package text

import (
	"strings"

	"github.com/samber/lo"
)

// DefaultNegationMarker is the Vietnamese "no/not" marker.
const DefaultNegationMarker = "không"

// NegationMarkers is the set of tokens fused with the token that follows them.
type NegationMarkers map[string]struct{}

// NewNegationMarkers builds a marker set. With no argument it holds only
// DefaultNegationMarker.
func NewNegationMarkers(markers ...string) NegationMarkers {
	if len(markers) == 0 {
		markers = []string{DefaultNegationMarker}
	}
	return NegationMarkers(toSet(lo.Compact(markers)))
}

// Contains reports whether token is a negation marker.
func (n NegationMarkers) Contains(token string) bool {
	_, ok := n[token]
	return ok
}

// FuseNegation joins every negation marker with the following token using an
// underscore, e.g. "không ngon" becomes "không_ngon". A fused pair is consumed
// as a unit, so "không không ngon" gives "không_không ngon".
func FuseNegation(text string, markers NegationMarkers) string {
	tokens := strings.Fields(text)
	if !lo.SomeBy(tokens, markers.Contains) {
		return strings.TrimSpace(text)
	}
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		word := tokens[i]
		if markers.Contains(word) && i+1 < len(tokens) {
			out = append(out, word+"_"+tokens[i+1])
			i += 2
			continue
		}
		out = append(out, word)
		i++
	}
	return strings.Join(out, " ")
}
