package models

import (
	"context"
	"strings"
)

const DefaultSummarizationPrompt = "You're a helpful assistant that summarizes customer reviews of one restaurant. " +
	"Write three short sentences in Vietnamese: what customers like, what they complain about, and an overall verdict."

type SummarizationModel interface {
	// Summarize generates a summary for the given reviews
	Summarize(ctx context.Context, texts []string) (string, error)
}

type SummarizationModelInfo struct {
	Prompt string `json:"prompt,omitempty"`
	// MaxReviews caps how many reviews are sent; zero sends all of them.
	MaxReviews int `json:"max_reviews,omitempty"`
}

// ReviewSummarizer summarizes reviews with a generation model.
type ReviewSummarizer struct {
	Info  SummarizationModelInfo
	model GenerationModel
}

func NewSummarizationModel(modelType string, config map[string]interface{}) (SummarizationModel, error) {
	model, err := NewGenerationModel(modelType, config)
	if err != nil {
		return nil, err
	}
	info := SummarizationModelInfo{}
	if err := decodeConfig(config, &info); err != nil {
		return nil, err
	}
	return NewReviewSummarizer(model, info), nil
}

func NewReviewSummarizer(model GenerationModel, info SummarizationModelInfo) *ReviewSummarizer {
	if info.Prompt == "" {
		info.Prompt = DefaultSummarizationPrompt
	}
	return &ReviewSummarizer{Info: info, model: model}
}

func (s *ReviewSummarizer) Summarize(ctx context.Context, texts []string) (string, error) {
	texts = nonBlank(texts)
	if len(texts) == 0 {
		return "", nil
	}
	if s.Info.MaxReviews > 0 && len(texts) > s.Info.MaxReviews {
		texts = texts[:s.Info.MaxReviews]
	}
	summary, err := s.model.Generate(ctx, s.Info.Prompt, texts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

func nonBlank(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			out = append(out, t)
		}
	}
	return out
}
