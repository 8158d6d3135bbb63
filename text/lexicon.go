package text

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

//go:embed data/*.txt
var embeddedData embed.FS

const (
	embeddedEmojiFile      = "data/emojicon.txt"
	embeddedTeencodeFile   = "data/teencode.txt"
	embeddedEnglishFile    = "data/english-vnmese.txt"
	embeddedWrongWordsFile = "data/wrong-word.txt"
	embeddedStopWordsFile  = "data/vietnamese-stopwords.txt"
)

// ParseError reports a malformed line in a lexicon resource.
type ParseError struct {
	File    string
	Line    int
	Content string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: missing tab separator in %q", e.File, e.Line, e.Content)
}

// Lexicon holds the static lookup resources used by the substitution stage.
// It must not be mutated after construction; a single instance is shared by
// every pipeline run.
type Lexicon struct {
	Emoji             map[string]string
	Teencode          map[string]string
	EnglishVietnamese map[string]string
	WrongWords        map[string]struct{}
	StopWords         map[string]struct{}
}

// LexiconPaths points at lexicon files on disk. An empty path selects the
// embedded default for that resource.
type LexiconPaths struct {
	Emoji             string `yaml:"emoji"`
	Teencode          string `yaml:"teencode"`
	EnglishVietnamese string `yaml:"english_vietnamese"`
	WrongWords        string `yaml:"wrong_words"`
	StopWords         string `yaml:"stop_words"`
}

// NewLexicon builds a lexicon from in-memory values, mostly useful in tests.
func NewLexicon(emoji, teencode map[string]string, wrongWords []string) *Lexicon {
	return &Lexicon{
		Emoji:             lo.Assign(map[string]string{}, emoji),
		Teencode:          lo.Assign(map[string]string{}, teencode),
		EnglishVietnamese: map[string]string{},
		WrongWords:        toSet(wrongWords),
		StopWords:         map[string]struct{}{},
	}
}

// DefaultLexicon loads the lexicon bundled with the binary.
func DefaultLexicon() (*Lexicon, error) {
	return LoadLexicon(LexiconPaths{})
}

// LoadLexicon reads all lexicon resources. A key/value line without a tab
// separator fails the whole load with a *ParseError.
func LoadLexicon(paths LexiconPaths) (*Lexicon, error) {
	var err error
	lex := &Lexicon{}
	if lex.Emoji, err = loadKeyValue(paths.Emoji, embeddedEmojiFile); err != nil {
		return nil, err
	}
	if lex.Teencode, err = loadKeyValue(paths.Teencode, embeddedTeencodeFile); err != nil {
		return nil, err
	}
	if lex.EnglishVietnamese, err = loadKeyValue(paths.EnglishVietnamese, embeddedEnglishFile); err != nil {
		return nil, err
	}
	if lex.WrongWords, err = loadWordList(paths.WrongWords, embeddedWrongWordsFile); err != nil {
		return nil, err
	}
	if lex.StopWords, err = loadWordList(paths.StopWords, embeddedStopWordsFile); err != nil {
		return nil, err
	}
	return lex, nil
}

// MultiRuneEmoji lists emoji keys longer than one rune. The substitution
// stage looks emoji up one rune at a time, so these entries never match.
func (l *Lexicon) MultiRuneEmoji() []string {
	return lo.Filter(lo.Keys(l.Emoji), func(key string, _ int) bool {
		return utf8.RuneCountInString(key) > 1
	})
}

// IsStopWord reports whether word is in the stopword list.
func (l *Lexicon) IsStopWord(word string) bool {
	_, ok := l.StopWords[word]
	return ok
}

func openResource(path, embedded string) (io.ReadCloser, string, error) {
	if path == "" {
		f, err := embeddedData.Open(embedded)
		if err != nil {
			return nil, embedded, err
		}
		return f, embedded, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, path, fmt.Errorf("open lexicon %s: %w", path, err)
	}
	return f, path, nil
}

func loadKeyValue(path, embedded string) (map[string]string, error) {
	f, name, err := openResource(path, embedded)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseKeyValue(f, name)
}

func loadWordList(path, embedded string) (map[string]struct{}, error) {
	f, name, err := openResource(path, embedded)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseWordList(f, name)
}

// ParseKeyValue parses key<TAB>value lines. Only the first tab splits; blank
// lines are skipped and later duplicates win.
func ParseKeyValue(r io.Reader, name string) (map[string]string, error) {
	out := make(map[string]string)
	lineNo := 0
	err := scanLines(r, func(line string) error {
		lineNo++
		if strings.TrimSpace(line) == "" {
			return nil
		}
		key, value, ok := strings.Cut(line, "\t")
		if !ok {
			return &ParseError{File: name, Line: lineNo, Content: line}
		}
		out[key] = value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseWordList parses one token per line, skipping blank lines.
func ParseWordList(r io.Reader, name string) (map[string]struct{}, error) {
	words := make([]string, 0, 64)
	err := scanLines(r, func(line string) error {
		if strings.TrimSpace(line) != "" {
			words = append(words, line)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return toSet(words), nil
}

func scanLines(r io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := fn(strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
