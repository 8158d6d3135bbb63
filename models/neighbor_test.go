package models

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbedder maps text onto counts of a few keywords plus a bias axis.
type keywordEmbedder struct {
	keywords []string
}

func (e keywordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vector := make([]float32, len(e.keywords)+1)
		for j, keyword := range e.keywords {
			vector[j] = float32(strings.Count(text, keyword))
		}
		vector[len(e.keywords)] = 0.1
		out[i] = vector
	}
	return out, nil
}

func TestNearestNeighborClassifier_Predict(t *testing.T) {
	embedder := keywordEmbedder{keywords: []string{"ngon", "dở", "rẻ", "mắc"}}
	info := NearestNeighborInfo{
		Examples: []LabeledExample{
			{Text: "ngon ngon", Label: LabelPositive},
			{Text: "ngon rẻ", Label: LabelPositive},
			{Text: "dở dở", Label: LabelNegative},
			{Text: "dở mắc", Label: LabelNegative},
		},
		K: 1,
	}
	classifier, err := NewNearestNeighborClassifier(context.Background(), embedder, info)
	require.NoError(t, err)

	labels, err := classifier.Predict(context.Background(), []string{"quán ngon", "đồ ăn dở", "giá rẻ ngon"})
	require.NoError(t, err)
	assert.Equal(t, []string{LabelPositive, LabelNegative, LabelPositive}, labels)

	labels, err = classifier.Predict(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestNearestNeighborClassifier_ExamplesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "examples.tsv")
	require.NoError(t, os.WriteFile(path, []byte("positive\tngon\n\nnegative\tdở\n"), 0o644))

	embedder := keywordEmbedder{keywords: []string{"ngon", "dở"}}
	classifier, err := NewNearestNeighborClassifier(context.Background(), embedder, NearestNeighborInfo{ExamplesFile: path})
	require.NoError(t, err)
	assert.Equal(t, []string{LabelPositive, LabelNegative}, classifier.labels)

	require.NoError(t, os.WriteFile(path, []byte("positive ngon\n"), 0o644))
	_, err = NewNearestNeighborClassifier(context.Background(), embedder, NearestNeighborInfo{ExamplesFile: path})
	assert.Error(t, err)

	_, err = NewNearestNeighborClassifier(context.Background(), embedder, NearestNeighborInfo{})
	assert.Error(t, err)
}
