package text

import (
	"context"
	"errors"
	"strings"
)

// punctSplitter cuts after '.', '!' or '?' when followed by a space or the end.
type punctSplitter struct{}

func (punctSplitter) Split(text string) []string {
	runes := []rune(text)
	out := make([]string, 0, 4)
	start := 0
	for i, r := range runes {
		if !strings.ContainsRune(".!?", r) {
			continue
		}
		if i+1 == len(runes) || runes[i+1] == ' ' {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

var errSegmentFailed = errors.New("nổ")

// fieldSegmenter splits on whitespace and fails on the word "nổ".
type fieldSegmenter struct{}

func (fieldSegmenter) Segment(_ context.Context, sentence string) ([]string, error) {
	words := strings.Fields(sentence)
	for _, w := range words {
		if w == "nổ" {
			return nil, errSegmentFailed
		}
	}
	return words, nil
}

// dictTagger tags from a fixed map, "X" otherwise.
type dictTagger map[string]string

func (d dictTagger) Tag(_ context.Context, tokens []string) ([]TaggedToken, error) {
	out := make([]TaggedToken, len(tokens))
	for i, token := range tokens {
		tag, ok := d[token]
		if !ok {
			tag = "X"
		}
		out[i] = TaggedToken{Token: token, Tag: tag}
	}
	return out, nil
}

var testTags = dictTagger{
	"quán":       "N",
	"ngon":       "A",
	"không_ngon": "A",
	"này":        "P",
	"và":         "C",
	"của":        "E",
	"rất":        "R",
	"hà_nội":     "np",
	"ăn":         "V",
}

func newTestPipeline(lex *Lexicon) *Pipeline {
	if lex == nil {
		lex = NewLexicon(nil, nil, nil)
	}
	return NewPipeline(lex, punctSplitter{}, fieldSegmenter{}, testTags)
}
