package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
)

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
)

const (
	ModelTypeLinear    = "linear"
	ModelTypeOllama    = "ollama"
	ModelTypeOpenAI    = "openai"
	ModelTypeEmbedding = "embedding"
)

// ErrUnknownModelType is returned by the factories for an unsupported type.
var ErrUnknownModelType = errors.New("unknown model type")

// Classifier predicts one sentiment label per normalized document.
type Classifier interface {
	Predict(ctx context.Context, docs []string) ([]string, error)
}

// LoadClassifier builds a classifier from its type and free-form config.
func LoadClassifier(modelType string, config map[string]interface{}) (Classifier, error) {
	switch modelType {
	case ModelTypeLinear:
		info := LinearModelInfo{}
		if err := decodeConfig(config, &info); err != nil {
			return nil, err
		}
		return LoadLinearClassifier(info.Path)
	case ModelTypeOllama, ModelTypeOpenAI:
		// Classification runs at temperature 0 unless configured.
		config = lo.Assign(map[string]interface{}{"temperature": 0.0}, config)
		model, err := NewGenerationModel(modelType, config)
		if err != nil {
			return nil, err
		}
		info := LLMClassifierInfo{}
		if err := decodeConfig(config, &info); err != nil {
			return nil, err
		}
		return NewLLMClassifier(model, info), nil
	case ModelTypeEmbedding:
		info := NearestNeighborInfo{}
		if err := decodeConfig(config, &info); err != nil {
			return nil, err
		}
		embedder, err := LoadEmbeddingModel(info.Embedding.Type, info.Embedding.Config)
		if err != nil {
			return nil, err
		}
		return NewNearestNeighborClassifier(context.Background(), embedder, info)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownModelType, modelType)
}

// decodeConfig converts a loosely typed config map into info through JSON.
func decodeConfig(config map[string]interface{}, info any) error {
	if config == nil {
		return nil
	}
	jsonData, err := json.Marshal(config)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, info)
}
