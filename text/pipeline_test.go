package text

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Normalize(t *testing.T) {
	lex := NewLexicon(
		map[string]string{"😋": "ngon"},
		map[string]string{"ko": "không"},
		[]string{"hihi"},
	)
	p := newTestPipeline(lex)
	ctx := context.Background()

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "all stages", input: "Quán này ko ngonnnn 😋 hihi", want: "quán không_ngon ngon"},
		{name: "emoji only review keeps its gloss", input: "😋", want: "ngon"},
		{name: "upper case", input: "QUÁN NGON", want: "quán ngon"},
		{name: "function words only", input: "Và của!", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "nil", input: nil, want: ""},
		{name: "number", input: 10, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Normalize(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPipeline_NormalizeBatch(t *testing.T) {
	p := newTestPipeline(nil)
	p.Workers = 2

	inputs := []any{"Quán ngon", "", 42, nil, "của và", "rất ngon"}
	results := p.NormalizeBatch(context.Background(), inputs)

	require.Len(t, results, len(inputs))
	want := []BatchResult{
		{Input: "Quán ngon", Normalized: "quán ngon"},
		{Input: "", Normalized: ""},
		{Input: "42", Normalized: ""},
		{Input: "", Normalized: ""},
		{Input: "của và", Normalized: ""},
		{Input: "rất ngon", Normalized: "rất ngon"},
	}
	assert.Equal(t, want, results)
}

func TestPipeline_NormalizeBatch_ErrorIsolation(t *testing.T) {
	p := newTestPipeline(nil)

	results := p.NormalizeStrings(context.Background(), []string{"ngon", "nổ", "quán"})
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "ngon", results[0].Normalized)
	assert.True(t, errors.Is(results[1].Err, errSegmentFailed))
	assert.Equal(t, "nổ", results[1].Input)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "quán", results[2].Normalized)
}

func TestPipeline_NormalizeBatch_Empty(t *testing.T) {
	p := newTestPipeline(nil)
	assert.Empty(t, p.NormalizeBatch(context.Background(), nil))
}

func BenchmarkPipeline_NormalizeStrings(b *testing.B) {
	p := newTestPipeline(nil)
	reviews := []string{
		"Quán ngon, rất ngon",
		"Của và quán ngonnnn",
		"Không ngon lắm",
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.NormalizeStrings(ctx, reviews)
	}
}
