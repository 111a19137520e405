package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"skillmatch-backend/internal/llm"
	"skillmatch-backend/internal/shared/metrics"
	"skillmatch-backend/internal/shared/telemetry"
)

const defaultAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// Low temperature keeps the structuring output close to deterministic.
const temperature = float32(0.2)

// Client implements llm.Client against Groq's OpenAI-compatible chat completions API.
type Client struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// NewClient constructs a new Groq client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GROQ_MODEL is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GROQ_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		apiURL: defaultAPIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends the prompt and returns the model's textual reply.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	metrics.IncLLMCall()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncLLMFailed()
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("%w: request timeout: %v", llm.ErrUpstream, err)
		}
		return "", fmt.Errorf("%w: %v", llm.ErrUpstream, err)
	}
	defer resp.Body.Close()
	metrics.ObserveLLMDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncLLMFailed()
		return "", fmt.Errorf("%w: read body: %v", llm.ErrUpstream, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.IncLLMFailed()
		if resp.StatusCode >= 400 {
			return "", fmt.Errorf("%w: http status %d: %s", llm.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return "", fmt.Errorf("%w: response parse: %v", llm.ErrUpstream, err)
	}
	if parsed.Error != nil {
		metrics.IncLLMFailed()
		return "", fmt.Errorf("%w: http status %d: %s (%s)", llm.ErrUpstream, resp.StatusCode, parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode >= 400 {
		metrics.IncLLMFailed()
		return "", fmt.Errorf("%w: http status %d: %s", llm.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if len(parsed.Choices) == 0 {
		metrics.IncLLMFailed()
		return "", fmt.Errorf("%w: response missing choices", llm.ErrUpstream)
	}

	if parsed.Usage != nil {
		telemetry.Info("llm.response", map[string]any{
			"model":             c.model,
			"prompt_tokens":     parsed.Usage.PromptTokens,
			"completion_tokens": parsed.Usage.CompletionTokens,
			"total_tokens":      parsed.Usage.TotalTokens,
		})
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

var _ llm.Client = (*Client)(nil)
