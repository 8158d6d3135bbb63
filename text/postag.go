package text

import (
	"context"
	"fmt"
	"strings"
)

// AllowedPOSTags are the tags kept by FilterPOS: noun, proper noun,
// adjective, short adjective, verb, short verb, auxiliary verb and adverb.
var AllowedPOSTags = map[string]struct{}{
	"N":  {},
	"NP": {},
	"A":  {},
	"AB": {},
	"V":  {},
	"VB": {},
	"VY": {},
	"R":  {},
}

// IsAllowedTag reports whether tag, compared case-insensitively, is kept.
func IsAllowedTag(tag string) bool {
	_, ok := AllowedPOSTags[strings.ToUpper(tag)]
	return ok
}

// FilterPOS segments and tags each sentence and keeps only content words.
// The result may be empty when nothing survives.
func (p *Pipeline) FilterPOS(ctx context.Context, text string) (string, error) {
	sentences := p.Sentences.Split(text)
	kept := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		sentence = strings.ReplaceAll(sentence, ".", "")
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		words, err := p.Segmenter.Segment(ctx, sentence)
		if err != nil {
			return "", fmt.Errorf("word segmentation: %w", err)
		}
		fused := FuseNegation(strings.Join(words, " "), p.Negations)
		tagged, err := p.Tagger.Tag(ctx, strings.Fields(fused))
		if err != nil {
			return "", fmt.Errorf("pos tagging: %w", err)
		}
		tokens := make([]string, len(tagged))
		for i, t := range tagged {
			if IsAllowedTag(t.Tag) {
				tokens[i] = t.Token
			}
		}
		kept = append(kept, strings.Join(tokens, " "))
	}
	return collapseSpaces(strings.Join(kept, " ")), nil
}
