package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"revivecare/internal/models"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
)

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type ChatMessage struct {
	Role    string        `json:"role"`
	Content []ContentItem `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// AssistantReply is the assistant's answer to one patient message.
type AssistantReply struct {
	Reply            string  `json:"reply"`
	SeriousnessScore float64 `json:"seriousness_score"`
}

func NewClient() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return NewClientWithConfig(apiKey, os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_MODEL"), nil), nil
}

// NewClientWithConfig builds a client against any chat-completions compatible
// endpoint. Empty values fall back to the OpenAI defaults.
func NewClientWithConfig(apiKey, baseURL, model string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

func buildSystemPrompt(language string) string {
	replyLanguage := "English"
	if language == models.LanguageHindi {
		replyLanguage = "Hindi (Devanagari script)"
	}

	return fmt.Sprintf(`### General Request:
You are ReViveCare's recovery assistant. You support patients who are doing physiotherapy and rehabilitation at home after surgery or injury.

### How to Act:
- Reply in **%s**.
- Use simple, warm, everyday language. Keep replies under 120 words.
- Never diagnose. Suggest contacting the assigned doctor when symptoms may need attention.
- If the patient describes an emergency (chest pain, heavy bleeding, fainting, sudden numbness, breathing trouble), tell them to seek emergency care immediately.

### Seriousness Score:
Rate how medically serious the patient's latest message is, from 0.0 to 1.0:
- 0.0-0.4: routine questions, mild soreness, motivation.
- 0.4-0.7: persistent or worsening pain, swelling, fever, wound concerns.
- 0.7-1.0: red-flag symptoms that the doctor must review urgently.

### Output Format:
Return only a JSON object, without markdown code fences:
{"reply": "<your reply>", "seriousness_score": <number between 0 and 1>}
`, replyLanguage)
}

func toChatMessage(role, text string) ChatMessage {
	return ChatMessage{
		Role:    role,
		Content: []ContentItem{{Type: "text", Text: text}},
	}
}

// GenerateReply asks the model to answer the patient's message given the
// earlier conversation, oldest message first.
func (c *Client) GenerateReply(ctx context.Context, history []models.ChatMessage, message, language string) (*AssistantReply, TokenUsage, error) {
	messages := []ChatMessage{toChatMessage("system", buildSystemPrompt(language))}
	for _, past := range history {
		role := "user"
		if past.Sender == models.SenderAI {
			role = "assistant"
		}
		messages = append(messages, toChatMessage(role, past.Message))
	}
	messages = append(messages, toChatMessage("user", message))

	req := ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.3,
		MaxTokens:   600,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, TokenUsage{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, TokenUsage{}, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, TokenUsage{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		var errorResponse struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(response.Body).Decode(&errorResponse); err != nil || errorResponse.Error.Message == "" {
			return nil, TokenUsage{}, fmt.Errorf("OpenAI API returned non-200 status code: %d", response.StatusCode)
		}
		return nil, TokenUsage{}, fmt.Errorf("OpenAI API error: %s", errorResponse.Error.Message)
	}

	var result ChatCompletionResponse
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, TokenUsage{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, TokenUsage{}, fmt.Errorf("no completion choices returned")
	}

	tokenUsage := TokenUsage{
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
		TotalTokens:      result.Usage.TotalTokens,
	}

	reply, err := parseAssistantReply(result.Choices[0].Message.Content)
	if err != nil {
		return nil, tokenUsage, err
	}
	return reply, tokenUsage, nil
}

// parseAssistantReply accepts the JSON object the prompt asks for, tolerating
// a surrounding markdown fence. The score is clamped to [0, 1].
func parseAssistantReply(content string) (*AssistantReply, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var reply AssistantReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if strings.TrimSpace(reply.Reply) == "" {
		return nil, fmt.Errorf("assistant returned an empty reply")
	}
	reply.SeriousnessScore = math.Max(0, math.Min(1, reply.SeriousnessScore))
	return &reply, nil
}
