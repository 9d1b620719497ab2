package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sony/gobreaker"

	"tascly-backend/logging"
)

const (
	defaultAIEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	defaultAIModel    = "llama3-70b-8192"
)

// AIConfig holds the provider settings. Endpoint and model have safe
// defaults; the key has none and its absence disables the feature.
type AIConfig struct {
	APIKey   string
	Endpoint string
	Model    string
}

// LoadAIConfig reads the provider settings from the environment, applying
// defaults for everything except the key.
func LoadAIConfig() AIConfig {
	cfg := AIConfig{
		APIKey:   os.Getenv("AI_API_KEY"),
		Endpoint: os.Getenv("AI_ENDPOINT"),
		Model:    os.Getenv("AI_MODEL"),
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultAIEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = defaultAIModel
	}
	return cfg
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatCompletionRequest is the body for an OpenAI-compatible chat-completions
// endpoint. Output is non-streaming JSON mode with temperature pinned to 0.
type chatCompletionRequest struct {
	Messages       []chatMessage  `json:"messages"`
	Model          string         `json:"model"`
	Stream         bool           `json:"stream"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompletionClient sends chat-completion requests to the configured AI
// provider. Calls run through a circuit breaker like every other downstream
// dependency of this service.
type CompletionClient struct {
	cfg        AIConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewCompletionClient(cfg AIConfig, breaker *gobreaker.CircuitBreaker) *CompletionClient {
	return &CompletionClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		breaker: breaker,
	}
}

// Generate sends exactly one system message and one user message and returns
// the first completion choice's content. The API key is checked before any
// network I/O and is never written to the logs.
func (c *CompletionClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrAPIKeyMissing
	}

	body := chatCompletionRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Model:          c.cfg.Model,
		Stream:         false,
		Temperature:    0,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, body)
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: AI_PROVIDER_CALL_FAILED, Description: Completion request to %s failed: %v", c.cfg.Endpoint, err)
		return "", &ProviderError{Err: err}
	}

	resp := result.(*chatCompletionResponse)
	if len(resp.Choices) == 0 {
		logging.Logger.Errorf("Event ID: AI_PROVIDER_NO_CHOICES, Description: Completion response from %s contained zero choices", c.cfg.Endpoint)
		return "", &ProviderError{Err: errors.New("no completion choices received from AI provider")}
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *CompletionClient) doRequest(ctx context.Context, body chatCompletionRequest) (*chatCompletionResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("AI provider returned status %d", httpResp.StatusCode)
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &resp, nil
}
