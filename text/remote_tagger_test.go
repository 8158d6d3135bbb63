package text

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaggerServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/word_tokenize", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Text == "fail" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error": {"code": "BAD_TEXT", "message": "cannot segment"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data": {"tokens": ["quán", "ăn uống", "ngon"]}}`))
	})
	mux.HandleFunc("/pos_tag", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Tokens []string `json:"tokens"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		tags := make([][2]string, len(req.Tokens))
		for i, token := range req.Tokens {
			tags[i] = [2]string{token, "N"}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"tags": tags}})
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRemoteTagger_Segment(t *testing.T) {
	server := newTaggerServer(t)
	tagger := NewRemoteTagger(server.URL+"/", time.Second)

	tokens, err := tagger.Segment(context.Background(), "quán ăn uống ngon")
	require.NoError(t, err)
	assert.Equal(t, []string{"quán", "ăn_uống", "ngon"}, tokens)

	tokens, err = tagger.Segment(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestRemoteTagger_Tag(t *testing.T) {
	server := newTaggerServer(t)
	tagger := NewRemoteTagger(server.URL, 0)

	tagged, err := tagger.Tag(context.Background(), []string{"quán", "ăn_uống"})
	require.NoError(t, err)
	assert.Equal(t, []TaggedToken{
		{Token: "quán", Tag: "N"},
		{Token: "ăn_uống", Tag: "N"},
	}, tagged)
}

func TestRemoteTagger_Errors(t *testing.T) {
	server := newTaggerServer(t)
	tagger := NewRemoteTagger(server.URL, time.Second)
	ctx := context.Background()

	_, err := tagger.Segment(ctx, "fail")
	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr), "error = %v", err)
	assert.Equal(t, "BAD_TEXT", remoteErr.Code)

	err = tagger.call(ctx, "/broken", map[string]string{}, &struct{}{})
	assert.ErrorIs(t, err, ErrTaggerUnavailable)

	down := NewRemoteTagger("http://127.0.0.1:1", 100*time.Millisecond)
	_, err = down.Segment(ctx, "quán ngon")
	assert.ErrorIs(t, err, ErrTaggerUnavailable)
}
