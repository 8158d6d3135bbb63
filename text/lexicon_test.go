package text

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValue(t *testing.T) {
	input := "ko\tkhông\n\n wá\tquá\tlắm\r\nko\tkhum\n"
	got, err := ParseKeyValue(strings.NewReader(input), "teencode.txt")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"ko":  "khum",
		" wá": "quá\tlắm",
	}, got)
}

func TestParseKeyValue_MissingTab(t *testing.T) {
	_, err := ParseKeyValue(strings.NewReader("ko\tkhông\ndc được\n"), "teencode.txt")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "error = %v", err)
	assert.Equal(t, "teencode.txt", parseErr.File)
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, "dc được", parseErr.Content)
}

func TestParseWordList(t *testing.T) {
	got, err := ParseWordList(strings.NewReader("hihi\n\nhaha\r\nhihi\n"), "wrong-word.txt")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Contains(t, got, "hihi")
	assert.Contains(t, got, "haha")
}

func TestDefaultLexicon(t *testing.T) {
	lex, err := DefaultLexicon()
	require.NoError(t, err)

	assert.Equal(t, "ngon", lex.Emoji["😋"])
	assert.Equal(t, "không", lex.Teencode["ko"])
	assert.Equal(t, "ngon", lex.EnglishVietnamese["delicious"])
	assert.Contains(t, lex.WrongWords, "hihi")
	assert.True(t, lex.IsStopWord("và"))
	assert.False(t, lex.IsStopWord("ngon"))
	assert.Contains(t, lex.MultiRuneEmoji(), ":)")
	assert.NotContains(t, lex.MultiRuneEmoji(), "😋")
}

func TestLoadLexicon_FromFiles(t *testing.T) {
	dir := t.TempDir()
	teencode := filepath.Join(dir, "teencode.txt")
	require.NoError(t, os.WriteFile(teencode, []byte("bt\tbình thường\n"), 0o644))

	lex, err := LoadLexicon(LexiconPaths{Teencode: teencode})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bt": "bình thường"}, lex.Teencode)
	// Resources without a path still come from the embedded defaults.
	assert.Equal(t, "ngon", lex.Emoji["😋"])

	broken := filepath.Join(dir, "emoji.txt")
	require.NoError(t, os.WriteFile(broken, []byte("😋 ngon\n"), 0o644))
	_, err = LoadLexicon(LexiconPaths{Emoji: broken})
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))

	_, err = LoadLexicon(LexiconPaths{WrongWords: filepath.Join(dir, "missing.txt")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLexicon_CopiesInput(t *testing.T) {
	emoji := map[string]string{"😋": "ngon"}
	lex := NewLexicon(emoji, nil, []string{"hihi"})
	emoji["😋"] = "dở"
	assert.Equal(t, "ngon", lex.Emoji["😋"])
	assert.Empty(t, lex.Teencode)
	assert.Contains(t, lex.WrongWords, "hihi")
}
