package ai

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"smartresume/internal/config"
	"smartresume/internal/errors"
)

// OpenRouterProvider implements Provider against the OpenRouter
// chat-completions API. OpenRouter speaks the OpenAI wire shape, so the
// request/response types below are the minimal subset this client needs.
type OpenRouterProvider struct {
	cfg        *config.AIConfig
	baseURL    string
	httpClient *http.Client
	logger     *errors.Logger
}

var _ Provider = (*OpenRouterProvider)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	TopP        float32       `json:"top_p"`
	MaxTokens   int32         `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// NewOpenRouterProvider creates a new OpenRouter provider instance
func NewOpenRouterProvider(cfg *config.AIConfig, logger *errors.Logger) (*OpenRouterProvider, error) {
	if cfg.OpenRouter.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey,
			"OpenRouter API key is not configured", nil)
	}

	baseURL := strings.TrimSuffix(cfg.OpenRouter.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}

	return &OpenRouterProvider{
		cfg:     cfg,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}, nil
}

// Name implements Provider
func (o *OpenRouterProvider) Name() string {
	return "OpenRouter"
}

// Generate implements Provider
func (o *OpenRouterProvider) Generate(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model: o.cfg.OpenRouter.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: o.cfg.Temperature,
		TopP:        o.cfg.TopP,
		MaxTokens:   o.cfg.MaxOutputTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.NewUnexpectedError(errors.ErrCodeGenerationFailed,
			"Failed to encode OpenRouter request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.NewUnexpectedError(errors.ErrCodeGenerationFailed,
			"Failed to build OpenRouter request", err)
	}

	req.Header.Set("Authorization", "Bearer "+o.cfg.OpenRouter.APIKey)
	req.Header.Set("Content-Type", "application/json")
	// Attribution headers OpenRouter uses for app rankings.
	if o.cfg.OpenRouter.SiteURL != "" {
		req.Header.Set("HTTP-Referer", o.cfg.OpenRouter.SiteURL)
	}
	if o.cfg.OpenRouter.SiteName != "" {
		req.Header.Set("X-Title", o.cfg.OpenRouter.SiteName)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", classifyOpenRouterTransportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.NewTransientError(errors.ErrCodeProviderUnavailable,
			"Failed to read OpenRouter response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyOpenRouterStatus(resp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.NewTransientError(errors.ErrCodeProviderUnavailable,
			"OpenRouter returned malformed JSON", err)
	}

	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", errors.NewTransientError(errors.ErrCodeGenerationFailed,
			fmt.Sprintf("OpenRouter reported an error: %s", parsed.Error.Message), nil)
	}

	if len(parsed.Choices) == 0 {
		return "", errors.NewTransientError(errors.ErrCodeEmptyResponse,
			"OpenRouter returned no choices", nil)
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", errors.NewTransientError(errors.ErrCodeEmptyResponse,
			"OpenRouter returned an empty response", nil)
	}
	return text, nil
}

func classifyOpenRouterTransportError(err error) error {
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.NewTransientError(errors.ErrCodeNetworkTimeout,
			"OpenRouter request timed out", err)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTransientError(errors.ErrCodeNetworkTimeout,
			"OpenRouter request timed out", err)
	}
	return errors.NewTransientError(errors.ErrCodeProviderUnavailable,
		"OpenRouter is unreachable", err)
}

func classifyOpenRouterStatus(status int, body []byte) error {
	message := openRouterErrorMessage(body)

	switch status {
	case http.StatusTooManyRequests:
		return errors.NewRateLimitError(errors.ErrCodeRateLimited,
			"OpenRouter rate limit exceeded", nil).
			WithContext("detail", message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.NewInvalidRequestError(errors.ErrCodeInvalidAPIKey,
			"OpenRouter rejected the API key", nil).
			WithContext("detail", message)
	case http.StatusNotFound:
		return errors.NewInvalidRequestError(errors.ErrCodeModelUnavailable,
			"OpenRouter model is not available", nil).
			WithContext("detail", message)
	case http.StatusBadRequest:
		return errors.NewInvalidRequestError(errors.ErrCodeInvalidRequest,
			"OpenRouter rejected the request", nil).
			WithContext("detail", message)
	}

	if status >= 500 {
		return errors.NewTransientError(errors.ErrCodeProviderUnavailable,
			fmt.Sprintf("OpenRouter service error (HTTP %d)", status), nil).
			WithContext("detail", message)
	}

	return errors.NewUnexpectedError(errors.ErrCodeGenerationFailed,
		fmt.Sprintf("OpenRouter returned HTTP %d", status), nil).
		WithContext("detail", message)
}

func openRouterErrorMessage(body []byte) string {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err == nil &&
		parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}
