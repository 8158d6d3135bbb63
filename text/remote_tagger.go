package text

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultRemoteTimeout bounds a single call to the tagging service.
const DefaultRemoteTimeout = 10 * time.Second

// ErrTaggerUnavailable is returned when the tagging service cannot be reached
// or answers with a non-2xx status.
var ErrTaggerUnavailable = errors.New("tagging service unavailable")

// RemoteTagger calls an HTTP sidecar (e.g. a small underthesea wrapper) for
// word segmentation and POS tagging.
//
//	POST /word_tokenize {"text": "..."}     -> {"data": {"tokens": ["ăn_uống", ...]}}
//	POST /pos_tag       {"tokens": [...]}   -> {"data": {"tags": [["ăn_uống", "V"], ...]}}
//
// Failures come back as {"error": {"code": "...", "message": "..."}}.
type RemoteTagger struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteTagger creates a client for the tagging service at baseURL.
func NewRemoteTagger(baseURL string, timeout time.Duration) *RemoteTagger {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &RemoteTagger{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// RemoteError is an error reported by the tagging service.
type RemoteError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type remoteResponse struct {
	Data  json.RawMessage `json:"data"`
	Error *RemoteError    `json:"error"`
}

// Segment implements WordSegmenter.
func (t *RemoteTagger) Segment(ctx context.Context, sentence string) ([]string, error) {
	if strings.TrimSpace(sentence) == "" {
		return nil, nil
	}
	var data struct {
		Tokens []string `json:"tokens"`
	}
	if err := t.call(ctx, "/word_tokenize", map[string]string{"text": sentence}, &data); err != nil {
		return nil, err
	}
	for i, token := range data.Tokens {
		data.Tokens[i] = joinSyllables(token)
	}
	return data.Tokens, nil
}

// Tag implements POSTagger.
func (t *RemoteTagger) Tag(ctx context.Context, tokens []string) ([]TaggedToken, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	var data struct {
		Tags [][2]string `json:"tags"`
	}
	if err := t.call(ctx, "/pos_tag", map[string][]string{"tokens": tokens}, &data); err != nil {
		return nil, err
	}
	out := make([]TaggedToken, 0, len(data.Tags))
	for _, pair := range data.Tags {
		out = append(out, TaggedToken{Token: joinSyllables(pair[0]), Tag: pair[1]})
	}
	return out, nil
}

func (t *RemoteTagger) call(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTaggerUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	var envelope remoteResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("%w: status %d", ErrTaggerUnavailable, resp.StatusCode)
		}
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d", ErrTaggerUnavailable, resp.StatusCode)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return nil
}
