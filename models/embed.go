package models

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

// DefaultOllamaEndpoint is used when a model config has no endpoint.
const DefaultOllamaEndpoint = "http://localhost:11434"

func newOllamaClient(endpoint string) (*api.Client, error) {
	if endpoint == "" {
		endpoint = DefaultOllamaEndpoint
	}
	ollamaUrl, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama endpoint %q: %w", endpoint, err)
	}
	return api.NewClient(ollamaUrl, http.DefaultClient), nil
}

// BaseEmbeddingModel turns normalized reviews into vectors for the nearest
// neighbor classifier.
type BaseEmbeddingModel interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

func LoadEmbeddingModel(modelType string, config map[string]interface{}) (BaseEmbeddingModel, error) {
	if modelType != ModelTypeOllama {
		return nil, fmt.Errorf("%w: embedding model %s", ErrUnknownModelType, modelType)
	}
	info := OllamaEmbeddingInfo{}
	if err := decodeConfig(config, &info); err != nil {
		return nil, err
	}
	return NewOllamaEmbedding(info)
}

type OllamaEmbeddingInfo struct {
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions"`
	Endpoint   string `json:"endpoint"`
}

type OllamaEmbedding struct {
	Info   OllamaEmbeddingInfo
	client *api.Client
}

func NewOllamaEmbedding(info OllamaEmbeddingInfo) (*OllamaEmbedding, error) {
	client, err := newOllamaClient(info.Endpoint)
	if err != nil {
		return nil, err
	}
	return &OllamaEmbedding{Info: info, client: client}, nil
}

// Embed returns one vector per text. An empty review is sent as is; the
// vectors of empty documents all coincide.
func (o OllamaEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	req := api.EmbedRequest{Model: o.Info.Model, Input: texts}
	if o.Info.Dimensions > 0 {
		req.Dimensions = o.Info.Dimensions
	}
	resp, err := o.client.Embed(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("ollama embed %s: %w", o.Info.Model, err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding model returned %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}
	return resp.Embeddings, nil
}
