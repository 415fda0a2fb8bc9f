package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"revivecare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionHandler(t *testing.T, content string, capture *ChatCompletionRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": content}},
			},
			"usage": map[string]interface{}{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestGenerateReply(t *testing.T) {
	var captured ChatCompletionRequest
	server := httptest.NewServer(completionHandler(t, `{"reply": "Rest and ice the knee.", "seriousness_score": 0.3}`, &captured))
	defer server.Close()

	client := NewClientWithConfig("test-key", server.URL, "test-model", server.Client())
	history := []models.ChatMessage{
		{Sender: models.SenderPatient, Message: "Hi"},
		{Sender: models.SenderAI, Message: "Hello! How is your recovery?"},
	}

	reply, usage, err := client.GenerateReply(context.Background(), history, "My knee is sore", models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Rest and ice the knee.", reply.Reply)
	assert.InDelta(t, 0.3, reply.SeriousnessScore, 0.0001)
	assert.Equal(t, 15, usage.TotalTokens)

	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "test-model", captured.Model)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "assistant", captured.Messages[2].Role)
	assert.Equal(t, "My knee is sore", captured.Messages[3].Content[0].Text)
}

func TestGenerateReplyHindiPrompt(t *testing.T) {
	var captured ChatCompletionRequest
	server := httptest.NewServer(completionHandler(t, `{"reply": "आराम करें", "seriousness_score": 0.1}`, &captured))
	defer server.Close()

	client := NewClientWithConfig("test-key", server.URL, "", server.Client())
	_, _, err := client.GenerateReply(context.Background(), nil, "दर्द", models.LanguageHindi)
	require.NoError(t, err)
	assert.True(t, strings.Contains(captured.Messages[0].Content[0].Text, "Hindi"))
	assert.Equal(t, defaultModel, captured.Model)
}

func TestGenerateReplyAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	client := NewClientWithConfig("test-key", server.URL, "", server.Client())
	_, _, err := client.GenerateReply(context.Background(), nil, "hello", models.LanguageEnglish)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestParseAssistantReply(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		expectedScore float64
		expectErr     bool
	}{
		{name: "plain json", content: `{"reply": "ok", "seriousness_score": 0.5}`, expectedScore: 0.5},
		{name: "fenced json", content: "```json\n{\"reply\": \"ok\", \"seriousness_score\": 0.8}\n```", expectedScore: 0.8},
		{name: "score above range", content: `{"reply": "ok", "seriousness_score": 3}`, expectedScore: 1},
		{name: "score below range", content: `{"reply": "ok", "seriousness_score": -1}`, expectedScore: 0},
		{name: "not json", content: "I think you are fine", expectErr: true},
		{name: "empty reply", content: `{"reply": "", "seriousness_score": 0.1}`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := parseAssistantReply(tt.content)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expectedScore, reply.SeriousnessScore, 0.0001)
		})
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewClient()
	assert.Error(t, err)
}
