package text

import (
	"context"
	"errors"
	"testing"
)

func TestIsAllowedTag(t *testing.T) {
	for _, tag := range []string{"N", "Np", "np", "A", "AB", "V", "VB", "VY", "R"} {
		if !IsAllowedTag(tag) {
			t.Errorf("IsAllowedTag(%q) = false, want true", tag)
		}
	}
	for _, tag := range []string{"C", "E", "P", "M", "X", ""} {
		if IsAllowedTag(tag) {
			t.Errorf("IsAllowedTag(%q) = true, want false", tag)
		}
	}
}

func TestPipeline_FilterPOS(t *testing.T) {
	p := newTestPipeline(nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "function words only", input: "của và", want: ""},
		{name: "two sentences", input: "quán ngon. và của.", want: "quán ngon"},
		{name: "negation fused after segmentation", input: "quán không ngon.", want: "quán không_ngon"},
		{name: "lower case tag", input: "hà_nội rất ngon", want: "hà_nội rất ngon"},
		{name: "unknown words", input: "abc xyz.", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "periods only", input: ". .", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.FilterPOS(ctx, tt.input)
			if err != nil {
				t.Fatalf("FilterPOS(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("FilterPOS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPipeline_FilterPOS_SegmenterError(t *testing.T) {
	p := newTestPipeline(nil)
	_, err := p.FilterPOS(context.Background(), "quán nổ.")
	if !errors.Is(err, errSegmentFailed) {
		t.Fatalf("FilterPOS() error = %v, want %v", err, errSegmentFailed)
	}
}

func TestPipeline_FilterPOS_GSEKeepsLeadingCompound(t *testing.T) {
	segmenter, err := NewGSESegmenter("")
	if err != nil {
		t.Fatalf("Failed to create segmenter: %v", err)
	}
	p := NewPipeline(NewLexicon(nil, nil, nil), punctSplitter{}, segmenter, segmenter)

	tests := []struct {
		input string
		want  string
	}{
		{input: "phục vụ", want: "phục_vụ"},
		{input: "nhân viên phục vụ.", want: "nhân_viên phục_vụ"},
		{input: "đồ ăn ngon.", want: "đồ_ăn ngon"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := p.FilterPOS(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("FilterPOS(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("FilterPOS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
