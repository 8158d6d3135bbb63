package models

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

const DefaultClassificationPrompt = "You label Vietnamese restaurant reviews by sentiment. " +
	"Reviews are lower-cased content words; a negated word is joined to its negation with an underscore, as in không_ngon. " +
	"Answer with exactly one word from this list: %s."

type LLMClassifierInfo struct {
	Labels []string `json:"labels,omitempty"`
	Prompt string   `json:"prompt,omitempty"`
	// Fallback is used when the answer contains none of the labels; empty
	// makes such an answer an error.
	Fallback string `json:"fallback,omitempty"`
}

// LLMClassifier asks a chat model for the label of each document.
type LLMClassifier struct {
	model    GenerationModel
	labels   []string
	prompt   string
	fallback string
}

// NewLLMClassifier lower-cases and dedups info.Labels, defaulting to
// positive/negative, and builds the prompt from them when none is given.
func NewLLMClassifier(model GenerationModel, info LLMClassifierInfo) *LLMClassifier {
	labels := lo.Uniq(lo.Map(lo.Compact(info.Labels), func(label string, _ int) string {
		return strings.ToLower(label)
	}))
	if len(labels) == 0 {
		labels = []string{LabelPositive, LabelNegative}
	}
	prompt := info.Prompt
	if prompt == "" {
		prompt = fmt.Sprintf(DefaultClassificationPrompt, strings.Join(labels, ", "))
	}
	return &LLMClassifier{
		model:    model,
		labels:   labels,
		prompt:   prompt,
		fallback: info.Fallback,
	}
}

// Predict asks the model once per document. Answers that name no known label
// become the fallback label, or an error when there is none.
func (c *LLMClassifier) Predict(ctx context.Context, docs []string) ([]string, error) {
	out := make([]string, len(docs))
	for i, doc := range docs {
		answer, err := c.model.Generate(ctx, c.prompt, []string{doc})
		if err != nil {
			return nil, fmt.Errorf("classify document %d: %w", i, err)
		}
		label, ok := c.parseLabel(answer)
		if !ok {
			if c.fallback == "" {
				return nil, fmt.Errorf("classify document %d: no label in answer %q", i, answer)
			}
			label = c.fallback
		}
		out[i] = label
	}
	return out, nil
}

// parseLabel returns the first word of answer that is a known label.
func (c *LLMClassifier) parseLabel(answer string) (string, bool) {
	words := strings.FieldsFunc(strings.ToLower(answer), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '_'
	})
	return lo.Find(words, func(word string) bool {
		return lo.Contains(c.labels, word)
	})
}
