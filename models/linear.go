package models

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

//go:embed data/linear-sentiment.json
var defaultLinearModel []byte

type LinearModelInfo struct {
	// Path to a JSON model file; empty loads the bundled model.
	Path string `json:"path"`
}

// LinearClassifier is the inference half of a bag-of-words logistic
// regression: token counts over a fixed vocabulary, one weight row per class
// (or a single row for a binary model).
type LinearClassifier struct {
	Classes    []string       `json:"classes"`
	Vocabulary map[string]int `json:"vocabulary"`
	Coef       [][]float64    `json:"coef"`
	Intercept  []float64      `json:"intercept"`
	NGramRange [2]int         `json:"ngram_range"`
	Binary     bool           `json:"binary"`
}

// LoadLinearClassifier reads a model file, or the bundled model if path is empty.
func LoadLinearClassifier(path string) (*LinearClassifier, error) {
	data := defaultLinearModel
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read linear model: %w", err)
		}
	}
	return ParseLinearClassifier(data)
}

// ParseLinearClassifier decodes and validates a JSON model.
func ParseLinearClassifier(data []byte) (*LinearClassifier, error) {
	model := &LinearClassifier{}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(model); err != nil {
		return nil, fmt.Errorf("decode linear model: %w", err)
	}
	if model.NGramRange == [2]int{} {
		model.NGramRange = [2]int{1, 1}
	}
	if err := model.validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func (m *LinearClassifier) validate() error {
	if len(m.Classes) < 2 {
		return fmt.Errorf("linear model: need at least 2 classes, got %d", len(m.Classes))
	}
	rows := len(m.Classes)
	if rows == 2 {
		rows = 1
	}
	if len(m.Coef) != rows || len(m.Intercept) != rows {
		return fmt.Errorf("linear model: expected %d coefficient rows and intercepts, got %d and %d", rows, len(m.Coef), len(m.Intercept))
	}
	for i, row := range m.Coef {
		if len(row) != len(m.Vocabulary) {
			return fmt.Errorf("linear model: coefficient row %d has %d weights for %d features", i, len(row), len(m.Vocabulary))
		}
	}
	for token, index := range m.Vocabulary {
		if index < 0 || index >= len(m.Vocabulary) {
			return fmt.Errorf("linear model: feature %q has index %d out of range", token, index)
		}
	}
	if m.NGramRange[0] < 1 || m.NGramRange[1] < m.NGramRange[0] {
		return fmt.Errorf("linear model: invalid ngram range %v", m.NGramRange)
	}
	return nil
}

// Predict implements Classifier. An empty document has no features and is
// decided by the intercept alone.
func (m *LinearClassifier) Predict(_ context.Context, docs []string) ([]string, error) {
	labels := make([]string, len(docs))
	for i, doc := range docs {
		labels[i] = m.Classes[m.decide(m.Scores(doc))]
	}
	return labels, nil
}

// Scores returns the decision function of doc, one value per coefficient row.
func (m *LinearClassifier) Scores(doc string) []float64 {
	features := m.vectorize(doc)
	scores := make([]float64, len(m.Coef))
	for row, weights := range m.Coef {
		score := m.Intercept[row]
		for index, count := range features {
			score += weights[index] * count
		}
		scores[row] = score
	}
	return scores
}

func (m *LinearClassifier) decide(scores []float64) int {
	if len(scores) == 1 {
		if scores[0] > 0 {
			return 1
		}
		return 0
	}
	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	return best
}

func (m *LinearClassifier) vectorize(doc string) map[int]float64 {
	tokens := make([]string, 0, 16)
	for _, token := range strings.Fields(strings.ToLower(doc)) {
		if utf8.RuneCountInString(token) >= 2 {
			tokens = append(tokens, token)
		}
	}
	features := make(map[int]float64)
	for n := m.NGramRange[0]; n <= m.NGramRange[1]; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			index, ok := m.Vocabulary[strings.Join(tokens[i:i+n], " ")]
			if !ok {
				continue
			}
			if m.Binary {
				features[index] = 1
			} else {
				features[index]++
			}
		}
	}
	return features
}
