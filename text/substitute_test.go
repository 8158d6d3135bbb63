package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "ngon", want: "ngon"},
		{name: "nil", value: nil, want: ""},
		{name: "bytes", value: []byte("quán"), want: "quán"},
		{name: "int", value: 42, want: "42"},
		{name: "float", value: 4.5, want: "4.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.value))
		})
	}
}

func TestPipeline_Substitute_EmptyLexicon(t *testing.T) {
	p := newTestPipeline(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "digits and punctuation", input: "Ngonn qua, 10 diem!", want: "ngonn qua diem."},
		{name: "empty", input: "", want: ""},
		{name: "blank", input: "   ", want: ""},
		{name: "punctuation only", input: "!!!", want: "."},
		{name: "period runs", input: "Ngon quá... Giá rẻ!!", want: "ngon quá. giá rẻ."},
		{name: "typographic apostrophe", input: "Quán’s ngon", want: "quáns ngon."},
		{name: "vietnamese letters kept", input: "PHỞ BÒ tái 50k", want: "phở bò tái."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Substitute(tt.input))
		})
	}
}

func TestPipeline_Substitute_Lexicon(t *testing.T) {
	lex := NewLexicon(
		map[string]string{"😋": "ngon", ":)": "cười"},
		map[string]string{"ko": "không", "wá": "quá"},
		[]string{"hihi"},
	)
	p := newTestPipeline(lex)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "emoji teencode wrong word", input: "Món này ko ngon 😋 wá hihi", want: "món này không ngon ngon quá ."},
		{name: "emoji only", input: "😋😋", want: "ngon ngon."},
		{name: "multi rune emoji never matches", input: "ngon :)", want: "ngon."},
		{name: "wrong word only", input: "hihi", want: "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Substitute(tt.input))
		})
	}
}

func TestPipeline_Substitute_TranslateEnglish(t *testing.T) {
	lex := NewLexicon(nil, nil, nil)
	lex.EnglishVietnamese = map[string]string{"food": "đồ ăn", "delicious": "ngon"}
	p := newTestPipeline(lex)

	assert.Equal(t, "the food is delicious.", p.Substitute("The food is delicious"),
		"translation must stay off without a detector")

	p.Detector = NewLanguageDetector()
	p.TranslateEnglish = true
	assert.Equal(t, "the đồ ăn is really ngon and cheap.", p.Substitute("The food is really delicious and cheap"))
}

func BenchmarkPipeline_Substitute(b *testing.B) {
	lex, err := DefaultLexicon()
	if err != nil {
		b.Fatalf("DefaultLexicon() error = %v", err)
	}
	p := newTestPipeline(lex)
	text := "Quán này ko ngon lắm 😞 nhân viên phục vụ chậm, giá thì hơi mắc. Lần sau hok quay lại!!!"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Substitute(text)
	}
}
