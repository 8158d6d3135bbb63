package text

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pipeline turns raw review text into the token stream consumed by the
// classifier. It holds only read-only state and is safe for concurrent use.
type Pipeline struct {
	Lexicon   *Lexicon
	Negations NegationMarkers
	Sentences SentenceSplitter
	Segmenter WordSegmenter
	Tagger    POSTagger

	// Detector and TranslateEnglish enable English-to-Vietnamese word
	// substitution for reviews detected as English.
	Detector         *LanguageDetector
	TranslateEnglish bool

	// Workers bounds NormalizeBatch concurrency; zero means runtime.NumCPU().
	Workers int
}

// NewPipeline creates a pipeline with the default negation marker.
func NewPipeline(lexicon *Lexicon, sentences SentenceSplitter, segmenter WordSegmenter, tagger POSTagger) *Pipeline {
	return &Pipeline{
		Lexicon:   lexicon,
		Negations: NewNegationMarkers(),
		Sentences: sentences,
		Segmenter: segmenter,
		Tagger:    tagger,
	}
}

// Normalize runs all stages on a single review.
func (p *Pipeline) Normalize(ctx context.Context, review any) (string, error) {
	s := p.Substitute(Stringify(review))
	s = CanonicalizeUnicode(s)
	s = FuseNegation(s, p.Negations)
	s = CollapseRepeats(s)
	return p.FilterPOS(ctx, s)
}

// BatchResult is the outcome for one review of a batch.
type BatchResult struct {
	Input      string
	Normalized string
	Err        error
}

// NormalizeBatch normalizes reviews concurrently. The result has one entry per
// input, in input order; a failing review does not stop the others.
func (p *Pipeline) NormalizeBatch(ctx context.Context, reviews []any) []BatchResult {
	results := make([]BatchResult, len(reviews))
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, review := range reviews {
		g.Go(func() error {
			input := Stringify(review)
			normalized, err := p.Normalize(ctx, input)
			results[i] = BatchResult{Input: input, Normalized: normalized, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// NormalizeStrings is NormalizeBatch for string input.
func (p *Pipeline) NormalizeStrings(ctx context.Context, reviews []string) []BatchResult {
	values := make([]any, len(reviews))
	for i, r := range reviews {
		values[i] = r
	}
	return p.NormalizeBatch(ctx, values)
}
