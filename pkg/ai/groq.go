package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ChatCompletionClient talks to OpenAI-compatible chat completion APIs (OpenAI, Groq)
type ChatCompletionClient struct {
	provider string
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

// NewGroqClient creates a client for Groq's OpenAI-compatible endpoint
func NewGroqClient(apiKey, baseURL, model string, httpClient *http.Client) *ChatCompletionClient {
	if baseURL == "" {
		baseURL = "https://api.groq.com"
	}
	return &ChatCompletionClient{
		provider: "groq",
		apiKey:   apiKey,
		endpoint: strings.TrimRight(baseURL, "/") + "/openai/v1/chat/completions",
		model:    model,
		client:   httpClient,
	}
}

// NewOpenAIClient creates a client for the OpenAI chat completions API
func NewOpenAIClient(apiKey, baseURL, model string, httpClient *http.Client) *ChatCompletionClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &ChatCompletionClient{
		provider: "openai",
		apiKey:   apiKey,
		endpoint: strings.TrimRight(baseURL, "/") + "/v1/chat/completions",
		model:    model,
		client:   httpClient,
	}
}

// ChatMessage is a single role/content pair
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends one system+user exchange and returns the assistant content
func (g *ChatCompletionClient) Generate(ctx context.Context, in CompletionRequest) (string, error) {
	messages := make([]ChatMessage, 0, 2)
	if in.SystemInstruction != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: in.SystemInstruction})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: in.UserInstruction})

	b, err := json.Marshal(ChatRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: in.Temperature,
		MaxTokens:   in.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", g.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &UpstreamError{Provider: g.provider, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", &UpstreamError{Provider: g.provider, Body: err.Error()}
	}
	if len(cr.Choices) == 0 {
		return "", &UpstreamError{Provider: g.provider, Body: "no choices in response"}
	}
	return cr.Choices[0].Message.Content, nil
}
