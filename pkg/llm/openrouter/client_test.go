package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/llm"
)

func TestCompleteSendsPromptAndHeaders(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float32 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "https://docmaker.test", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "DocMaker", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "gen-1", "object": "chat.completion", "model": "openai/gpt-3.5-turbo-0125",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Led delivery.  "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
		}`))
	}))
	defer srv.Close()

	c := New(Options{APIKey: "sk-test", BaseURL: srv.URL + "/", AppTitle: "DocMaker", Referer: "https://docmaker.test"})
	assert.Equal(t, DefaultModel, c.Model())

	out, err := c.Complete(context.Background(), llm.Request{
		System: "sys", User: "rewrite this", MaxTokens: 500, Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "  Led delivery.  ", out.Content)
	assert.Equal(t, "openai/gpt-3.5-turbo-0125", out.Model)
	assert.Equal(t, llm.Usage{PromptTokens: 120, CompletionTokens: 30, TotalTokens: 150}, out.Usage)

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, 500, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 0.001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "rewrite this", got.Messages[1].Content)
}

func TestCompleteReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "No auth credentials found", "code": 401}}`))
	}))
	defer srv.Close()

	c := New(Options{APIKey: "bad", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), llm.Request{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "No auth credentials found")
}

func TestCompleteWithoutChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "choices": []}`))
	}))
	defer srv.Close()

	_, err := New(Options{APIKey: "k", BaseURL: srv.URL}).Complete(context.Background(), llm.Request{User: "x"})
	assert.EqualError(t, err, "no choices returned by model")
}
