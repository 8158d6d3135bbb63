package text

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// SentenceSplitter splits a document into sentences.
type SentenceSplitter interface {
	Split(text string) []string
}

// ProseSentenceSplitter uses the punkt segmenter shipped with prose.
type ProseSentenceSplitter struct{}

// NewProseSentenceSplitter creates a sentence splitter backed by prose.
func NewProseSentenceSplitter() *ProseSentenceSplitter {
	return &ProseSentenceSplitter{}
}

// Split returns the sentences of text. Whitespace-only input yields no sentence.
// If prose fails to build a document the whole text is returned as one sentence.
func (s *ProseSentenceSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(
		text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return []string{text}
	}
	sentences := doc.Sentences()
	out := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		out = append(out, sentence.Text)
	}
	return out
}
