package ai

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"strings"

	"smartresume/internal/config"
	"smartresume/internal/errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini. A generation
// request walks the model chain (primary, then fallbacks) whenever a
// model is rejected by the API; all other failures surface immediately.
type GeminiProvider struct {
	client *genai.Client
	cfg    *config.AIConfig
	models []string
	logger *errors.Logger
}

var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance
func NewGeminiProvider(ctx context.Context, cfg *config.AIConfig, logger *errors.Logger) (*GeminiProvider, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey,
			"Gemini API key is not configured", nil)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"Failed to create Gemini client", err)
	}

	models := make([]string, 0, 1+len(cfg.Gemini.FallbackModels))
	models = append(models, cfg.Gemini.Model)
	models = append(models, cfg.Gemini.FallbackModels...)

	return &GeminiProvider{
		client: client,
		cfg:    cfg,
		models: models,
		logger: logger,
	}, nil
}

// Name implements Provider
func (g *GeminiProvider) Name() string {
	return "Gemini"
}

// Generate implements Provider
func (g *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.cfg.Temperature),
		TopP:            genai.Ptr(g.cfg.TopP),
		MaxOutputTokens: g.cfg.MaxOutputTokens,
	}

	var lastErr error
	for i, model := range g.models {
		callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
		result, err := g.client.Models.GenerateContent(callCtx, model, genai.Text(prompt), genCfg)
		cancel()

		if err != nil {
			classified := classifyGeminiError(err)
			lastErr = classified

			// A rejected model is worth retrying against the next one in
			// the chain; anything else fails the request as-is.
			if isModelRejected(err) && i < len(g.models)-1 {
				g.logger.Warn("Model rejected, trying fallback",
					"provider", g.Name(),
					"model", model,
					"fallback", g.models[i+1])
				continue
			}
			return "", classified
		}

		text := strings.TrimSpace(result.Text())
		if text == "" {
			return "", errors.NewTransientError(errors.ErrCodeEmptyResponse,
				"Gemini returned an empty response", nil).
				WithContext("model", model)
		}
		return text, nil
	}

	return "", lastErr
}

// classifyGeminiError maps SDK/transport failures into the application
// error taxonomy.
func classifyGeminiError(err error) error {
	if err == nil {
		return nil
	}

	// Network errors (timeouts, connection issues) are transient.
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		if netErr.Timeout() {
			return errors.NewTransientError(errors.ErrCodeNetworkTimeout,
				"Gemini request timed out", err)
		}
		return errors.NewTransientError(errors.ErrCodeProviderUnavailable,
			"Gemini is unreachable", err)
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return errors.NewRateLimitError(errors.ErrCodeRateLimited,
				"Gemini rate limit exceeded", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewInvalidRequestError(errors.ErrCodeInvalidAPIKey,
				"Gemini rejected the API key", err)
		case http.StatusNotFound:
			return errors.NewInvalidRequestError(errors.ErrCodeModelUnavailable,
				"Gemini model is not available", err)
		case http.StatusBadRequest:
			return errors.NewInvalidRequestError(errors.ErrCodeInvalidRequest,
				"Gemini rejected the request", err)
		case http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return errors.NewTransientError(errors.ErrCodeProviderUnavailable,
				"Gemini service error", err)
		}
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTransientError(errors.ErrCodeNetworkTimeout,
			"Gemini request timed out", err)
	}

	// The SDK sometimes surfaces plain errors; fall back to message text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "429"):
		return errors.NewRateLimitError(errors.ErrCodeRateLimited,
			"Gemini rate limit exceeded", err)
	case strings.Contains(msg, "api key") || strings.Contains(msg, "api_key"):
		return errors.NewInvalidRequestError(errors.ErrCodeInvalidAPIKey,
			"Gemini rejected the API key", err)
	case strings.Contains(msg, "not found") || strings.Contains(msg, "not supported"):
		return errors.NewInvalidRequestError(errors.ErrCodeModelUnavailable,
			"Gemini model is not available", err)
	}

	return errors.NewTransientError(errors.ErrCodeGenerationFailed,
		"Gemini generation failed", err)
}

// isModelRejected reports whether the failure points at the model name
// rather than the request, the key, or the service.
func isModelRejected(err error) bool {
	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "not supported")
}
