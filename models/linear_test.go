package models

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyBinaryModel = `{
  "classes": ["negative", "positive"],
  "vocabulary": {"ngon": 0, "không_ngon": 1, "rất ngon": 2},
  "coef": [[1.0, -2.0, 0.5]],
  "intercept": [-0.25],
  "ngram_range": [1, 2]
}`

func TestLinearClassifier_Predict(t *testing.T) {
	model, err := ParseLinearClassifier([]byte(tinyBinaryModel))
	require.NoError(t, err)

	labels, err := model.Predict(context.Background(), []string{
		"quán ngon",
		"quán không_ngon",
		"",
		"rất ngon",
		"ngon không_ngon",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		LabelPositive,
		LabelNegative,
		LabelNegative, // intercept only
		LabelPositive,
		LabelNegative,
	}, labels)

	assert.InDelta(t, 1.25, model.Scores("rất ngon")[0], 1e-9)
}

func TestLinearClassifier_Multiclass(t *testing.T) {
	model, err := ParseLinearClassifier([]byte(`{
  "classes": ["negative", "neutral", "positive"],
  "vocabulary": {"ngon": 0, "dở": 1},
  "coef": [[-1, 1], [0, 0], [1, -1]],
  "intercept": [0, 0.1, 0],
  "binary": true
}`))
	require.NoError(t, err)

	labels, err := model.Predict(context.Background(), []string{"ngon ngon", "dở", "bình_thường"})
	require.NoError(t, err)
	assert.Equal(t, []string{"positive", "negative", "neutral"}, labels)
}

func TestParseLinearClassifier_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		model string
	}{
		{name: "one class", model: `{"classes": ["positive"], "vocabulary": {}, "coef": [[]], "intercept": [0]}`},
		{name: "row count", model: `{"classes": ["a", "b", "c"], "vocabulary": {}, "coef": [[]], "intercept": [0]}`},
		{name: "row width", model: `{"classes": ["a", "b"], "vocabulary": {"x": 0}, "coef": [[1, 2]], "intercept": [0]}`},
		{name: "index range", model: `{"classes": ["a", "b"], "vocabulary": {"x": 3}, "coef": [[1]], "intercept": [0]}`},
		{name: "ngram range", model: `{"classes": ["a", "b"], "vocabulary": {}, "coef": [[]], "intercept": [0], "ngram_range": [2, 1]}`},
		{name: "unknown field", model: `{"classes": ["a", "b"], "vocabulary": {}, "coef": [[]], "intercept": [0], "alpha": 1}`},
		{name: "not json", model: `classes`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLinearClassifier([]byte(tt.model))
			assert.Error(t, err)
		})
	}
}

func TestLoadLinearClassifier(t *testing.T) {
	bundled, err := LoadLinearClassifier("")
	require.NoError(t, err)
	labels, err := bundled.Predict(context.Background(), []string{"món ăn ngon nhân_viên nhiệt_tình", "đồ ăn không_ngon phục_vụ chậm"})
	require.NoError(t, err)
	assert.Equal(t, []string{LabelPositive, LabelNegative}, labels)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(tinyBinaryModel), 0o644))
	fromFile, err := LoadClassifier(ModelTypeLinear, map[string]interface{}{"path": path})
	require.NoError(t, err)
	labels, err = fromFile.Predict(context.Background(), []string{"ngon"})
	require.NoError(t, err)
	assert.Equal(t, []string{LabelPositive}, labels)

	_, err = LoadLinearClassifier(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadClassifier_UnknownType(t *testing.T) {
	_, err := LoadClassifier("svm", nil)
	assert.ErrorIs(t, err, ErrUnknownModelType)

	_, err = LoadEmbeddingModel("word2vec", nil)
	assert.ErrorIs(t, err, ErrUnknownModelType)
}

func BenchmarkLinearClassifier_Predict(b *testing.B) {
	model, err := LoadLinearClassifier("")
	if err != nil {
		b.Fatalf("LoadLinearClassifier() error = %v", err)
	}
	docs := []string{"món ăn ngon nhân_viên nhiệt_tình", "đồ ăn không_ngon phục_vụ chậm", "giá rẻ quán sạch_sẽ"}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = model.Predict(ctx, docs)
	}
}
