package text

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewGSESegmenter(t *testing.T) {
	segmenter, err := NewGSESegmenter("")
	if err != nil {
		t.Fatalf("NewGSESegmenter() error = %v", err)
	}
	if segmenter == nil {
		t.Fatal("NewGSESegmenter() returned nil segmenter")
	}
}

func TestNewGSESegmenterFromReader_Malformed(t *testing.T) {
	_, err := NewGSESegmenterFromReader(strings.NewReader("ngon\tA\nquán\n"), "dict.txt")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("NewGSESegmenterFromReader() error = %v, want *ParseError", err)
	}
	if parseErr.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", parseErr.Line)
	}

	_, err = NewGSESegmenterFromReader(strings.NewReader("ngon\tA\tmany\n"), "dict.txt")
	if !errors.As(err, &parseErr) {
		t.Fatalf("bad frequency error = %v, want *ParseError", err)
	}
}

func TestGSESegmenter_Segment(t *testing.T) {
	segmenter, err := NewGSESegmenter("")
	if err != nil {
		t.Fatalf("Failed to create segmenter: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name  string
		text  string
		check func([]string) bool
	}{
		{
			name: "Syllables preserved",
			text: "quán ăn uống rất ngon",
			check: func(tokens []string) bool {
				return len(tokens) > 0 && splitSyllables(strings.Join(tokens, " ")) == "quán ăn uống rất ngon"
			},
		},
		{
			name: "Unknown word stays whole",
			text: "ngonn",
			check: func(tokens []string) bool {
				return len(tokens) == 1 && tokens[0] == "ngonn"
			},
		},
		{
			name: "Lower cased",
			text: "Rất Ngon",
			check: func(tokens []string) bool {
				return splitSyllables(strings.Join(tokens, " ")) == "rất ngon"
			},
		},
		{
			name: "Empty",
			text: "  ",
			check: func(tokens []string) bool {
				return len(tokens) == 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := segmenter.Segment(ctx, tt.text)
			if err != nil {
				t.Fatalf("Segment(%q) error = %v", tt.text, err)
			}
			if !tt.check(tokens) {
				t.Errorf("Segment(%q) = %v, check failed", tt.text, tokens)
			}
		})
	}
}

func TestGSESegmenter_Segment_Compounds(t *testing.T) {
	segmenter, err := NewGSESegmenter("")
	if err != nil {
		t.Fatalf("Failed to create segmenter: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "Compound at start", text: "nhân viên phục vụ", want: []string{"nhân_viên", "phục_vụ"}},
		{name: "Compound after a word", text: "rất đồ ăn ngon", want: []string{"rất", "đồ_ăn", "ngon"}},
		{name: "Single compound", text: "phục vụ", want: []string{"phục_vụ"}},
		{name: "Leading blanks", text: "   Món Ăn ngon", want: []string{"món_ăn", "ngon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := segmenter.Segment(ctx, tt.text)
			if err != nil {
				t.Fatalf("Segment(%q) error = %v", tt.text, err)
			}
			if strings.Join(tokens, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Segment(%q) = %v, want %v", tt.text, tokens, tt.want)
			}
		})
	}
}

func TestGSESegmenter_Tag(t *testing.T) {
	segmenter, err := NewGSESegmenter("")
	if err != nil {
		t.Fatalf("Failed to create segmenter: %v", err)
	}

	tagged, err := segmenter.Tag(context.Background(), []string{"ngon", "ăn_uống", "Quán", "xyz", "và", "không_ngon", "không_xyz"})
	if err != nil {
		t.Fatalf("Tag() error = %v", err)
	}
	want := []string{"A", "V", "N", UnknownTag, "C", "A", UnknownTag}
	if len(tagged) != len(want) {
		t.Fatalf("Tag() returned %d tokens, want %d", len(tagged), len(want))
	}
	for i, tok := range tagged {
		if tok.Tag != want[i] {
			t.Errorf("Tag(%q) = %q, want %q", tok.Token, tok.Tag, want[i])
		}
	}
	if tagged[2].Token != "Quán" {
		t.Errorf("Tag() must keep the surface token, got %q", tagged[2].Token)
	}
}

func BenchmarkGSESegmenter_Segment(b *testing.B) {
	segmenter, err := NewGSESegmenter("")
	if err != nil {
		b.Fatalf("Failed to create segmenter: %v", err)
	}
	ctx := context.Background()
	text := "quán ăn uống rất ngon nhân viên phục vụ nhiệt tình giá cả hợp lý"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = segmenter.Segment(ctx, text)
	}
}
