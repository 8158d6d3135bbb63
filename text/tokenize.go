package text

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-ego/gse"
)

const (
	embeddedDictFile = "data/vi-dict.txt"
	// UnknownTag is assigned to tokens the dictionary does not know.
	UnknownTag = "X"

	defaultTokenFreq = 1000
)

// TaggedToken is a surface token with its part-of-speech tag.
type TaggedToken struct {
	Token string `json:"token"`
	Tag   string `json:"tag"`
}

// WordSegmenter splits a sentence into words. Multi-syllable words are
// returned with their syllables joined by "_".
type WordSegmenter interface {
	Segment(ctx context.Context, sentence string) ([]string, error)
}

// POSTagger assigns a part-of-speech tag to each token, in order.
type POSTagger interface {
	Tag(ctx context.Context, tokens []string) ([]TaggedToken, error)
}

// GSESegmenter segments Vietnamese with gse over a word/tag dictionary and
// tags tokens by dictionary lookup.
type GSESegmenter struct {
	seg  gse.Segmenter
	tags map[string]string
}

// NewGSESegmenter creates a segmenter from a dictionary file. An empty path
// loads the embedded dictionary.
func NewGSESegmenter(dictPath string) (*GSESegmenter, error) {
	f, name, err := openResource(dictPath, embeddedDictFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewGSESegmenterFromReader(f, name)
}

// NewGSESegmenterFromReader reads word<TAB>tag[<TAB>freq] lines. The first
// tag seen for a word wins.
func NewGSESegmenterFromReader(r io.Reader, name string) (*GSESegmenter, error) {
	s := &GSESegmenter{tags: make(map[string]string)}
	s.seg.SkipLog = true
	// Every rune is its own unit, so Vietnamese letters outside Latin-1 are
	// not split differently from ASCII ones.
	s.seg.AlphaNum = true
	s.seg.Dict = gse.NewDict()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, &ParseError{File: name, Line: lineNo, Content: line}
		}
		word, tag := strings.ToLower(fields[0]), fields[1]
		freq := float64(defaultTokenFreq)
		if len(fields) > 2 {
			parsed, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, &ParseError{File: name, Line: lineNo, Content: line}
			}
			freq = parsed
		}
		if _, ok := s.tags[word]; ok {
			continue
		}
		s.tags[word] = tag
		if err := s.seg.AddToken(word, freq, tag); err != nil {
			return nil, fmt.Errorf("add token %q: %w", word, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return s, nil
}

// Segment splits sentence into words. Token boundaries never fall inside a
// syllable: pieces gse returns between two spaces are glued back together.
// gse does not match a dictionary word at offset 0, so the sentence is sliced
// with a leading blank.
func (s *GSESegmenter) Segment(_ context.Context, sentence string) ([]string, error) {
	sentence = strings.ToLower(strings.TrimSpace(sentence))
	if sentence == "" {
		return nil, nil
	}
	words := make([]string, 0, 16)
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, joinSyllables(current.String()))
			current.Reset()
		}
	}
	for _, piece := range s.seg.Slice(" " + sentence) {
		if strings.TrimSpace(piece) == "" {
			flush()
			continue
		}
		if startsWithSpace(piece) {
			flush()
		}
		current.WriteString(strings.TrimSpace(piece))
		if endsWithSpace(piece) {
			flush()
		}
	}
	flush()
	return words, nil
}

// Tag looks every token up in the dictionary; unknown tokens get UnknownTag.
// An unknown compound such as a fused negation "không_ngon" takes the tag of
// what follows its first syllable.
func (s *GSESegmenter) Tag(_ context.Context, tokens []string) ([]TaggedToken, error) {
	out := make([]TaggedToken, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, TaggedToken{Token: token, Tag: s.lookup(strings.ToLower(token))})
	}
	return out, nil
}

func (s *GSESegmenter) lookup(token string) string {
	if tag, ok := s.tags[splitSyllables(token)]; ok {
		return tag
	}
	if _, rest, ok := strings.Cut(token, "_"); ok && rest != "" {
		if tag, ok := s.tags[splitSyllables(rest)]; ok {
			return tag
		}
	}
	return UnknownTag
}

func joinSyllables(word string) string {
	return strings.Join(strings.Fields(word), "_")
}

func splitSyllables(word string) string {
	return strings.ReplaceAll(word, "_", " ")
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}

func endsWithSpace(s string) bool {
	return len(s) > 0 && strings.TrimRightFunc(s, unicode.IsSpace) != s
}
