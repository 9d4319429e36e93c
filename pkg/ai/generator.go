package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ucerrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
	"github.com/johnquangdev/transcript-iq/pkg/config"
)

// CompletionRequest is a provider-neutral single-turn generation request
type CompletionRequest struct {
	SystemInstruction string
	UserInstruction   string
	Temperature       float64
	MaxTokens         int
}

// Generator turns a prompt into free-form model text
type Generator interface {
	Generate(ctx context.Context, req CompletionRequest) (string, error)
}

// UpstreamError is returned when a provider answers with a non-2xx status
// or an envelope that carries no text.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: malformed response: %s", e.Provider, e.Body)
	}
	return fmt.Sprintf("%s API error: %d %s", e.Provider, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error { return ucerrors.ErrUpstream }

// NewGenerator builds the generator for a configured provider name
func NewGenerator(provider string, cfg *config.AIConfig) (Generator, error) {
	key, err := cfg.APIKey(provider)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: requestTimeout(cfg)}

	switch provider {
	case config.ProviderGemini:
		return &GeminiClient{
			apiKey:  key,
			baseURL: cfg.GeminiBaseURL,
			model:   cfg.GeminiModel,
			client:  httpClient,
		}, nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(key, cfg.OpenAIBaseURL, cfg.OpenAIModel, httpClient), nil
	case config.ProviderGroq:
		return NewGroqClient(key, cfg.GroqBaseURL, cfg.GroqModel, httpClient), nil
	}
	return nil, fmt.Errorf("unsupported AI provider %q", provider)
}

func requestTimeout(cfg *config.AIConfig) time.Duration {
	if cfg.RequestTimeout > 0 {
		return cfg.RequestTimeout
	}
	return 120 * time.Second
}
