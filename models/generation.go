package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// GenerationModel is a chat model answering a system prompt plus user texts.
type GenerationModel interface {
	Generate(ctx context.Context, systemPrompt string, texts []string) (string, error)
}

func NewGenerationModel(modelType string, config map[string]interface{}) (GenerationModel, error) {
	switch modelType {
	case ModelTypeOllama:
		info := OllamaGenerationModelInfo{}
		if err := decodeConfig(config, &info); err != nil {
			return nil, err
		}
		return NewOllamaGenerationModel(info)
	case ModelTypeOpenAI:
		info := OpenAIGenerationModelInfo{}
		if err := decodeConfig(config, &info); err != nil {
			return nil, err
		}
		return NewOpenAIGenerationModel(info), nil
	}
	return nil, fmt.Errorf("%w: generation model %s", ErrUnknownModelType, modelType)
}

// userContent puts every review in its own paragraph.
func userContent(texts []string) string {
	return strings.Join(texts, "\n\n")
}

type OllamaGenerationModelInfo struct {
	Model    string `json:"model"`
	Endpoint string `json:"endpoint"`
	// Temperature is left to the server when nil.
	Temperature *float64 `json:"temperature,omitempty"`
}

type OllamaGenerationModel struct {
	Info   OllamaGenerationModelInfo
	client *api.Client
}

func NewOllamaGenerationModel(info OllamaGenerationModelInfo) (*OllamaGenerationModel, error) {
	client, err := newOllamaClient(info.Endpoint)
	if err != nil {
		return nil, err
	}
	return &OllamaGenerationModel{Info: info, client: client}, nil
}

func (o OllamaGenerationModel) Generate(ctx context.Context, systemPrompt string, texts []string) (string, error) {
	stream := false
	req := api.ChatRequest{
		Model: o.Info.Model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent(texts)},
		},
		Stream: &stream,
	}
	if o.Info.Temperature != nil {
		req.Options = map[string]any{"temperature": *o.Info.Temperature}
	}
	var answer strings.Builder
	received := false
	err := o.client.Chat(ctx, &req, func(resp api.ChatResponse) error {
		received = true
		answer.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat %s: %w", o.Info.Model, err)
	}
	if !received {
		return "", fmt.Errorf("no response from generation model %s", o.Info.Model)
	}
	return answer.String(), nil
}

type OpenAIGenerationModelInfo struct {
	Model       string   `json:"model"`
	Endpoint    string   `json:"endpoint"`
	Token       string   `json:"token"`
	Temperature *float64 `json:"temperature,omitempty"`
}

type OpenAIGenerationModel struct {
	Info   OpenAIGenerationModelInfo
	client openai.Client
}

func NewOpenAIGenerationModel(info OpenAIGenerationModelInfo) *OpenAIGenerationModel {
	options := make([]option.RequestOption, 0, 2)
	if info.Token != "" {
		options = append(options, option.WithAPIKey(info.Token))
	}
	if info.Endpoint != "" {
		options = append(options, option.WithBaseURL(info.Endpoint))
	}
	return &OpenAIGenerationModel{
		Info:   info,
		client: openai.NewClient(options...),
	}
}

func (o OpenAIGenerationModel) Generate(ctx context.Context, systemPrompt string, texts []string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userContent(texts)),
		},
		Model: o.Info.Model,
	}
	if o.Info.Temperature != nil {
		params.Temperature = openai.Float(*o.Info.Temperature)
	}
	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat %s: %w", o.Info.Model, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices from generation model %s", o.Info.Model)
	}
	return completion.Choices[0].Message.Content, nil
}
