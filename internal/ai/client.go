package ai

import (
	"context"
	"time"

	"smartresume/internal/config"
	"smartresume/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// maxBackoff caps the exponential retry delay.
const maxBackoff = 30 * time.Second

// Client is the unified generation client. Provider selection happens
// once at construction: Gemini when its key is configured, otherwise
// OpenRouter, otherwise the no-provider state in which every generation
// fails with a configuration error before any network I/O.
type Client struct {
	provider Provider
	breaker  *GenerationBreaker
	cfg      *config.AIConfig
	logger   *errors.Logger
	tracer   trace.Tracer
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewClient creates the unified client from configuration.
func NewClient(cfg *config.AIConfig, logger *errors.Logger) *Client {
	c := &Client{
		breaker: NewGenerationBreaker(cfg.CircuitBreaker, logger),
		cfg:     cfg,
		logger:  logger,
		tracer:  otel.Tracer("smartresume.ai"),
		sleep:   sleepContext,
	}

	if cfg.Gemini.APIKey != "" {
		provider, err := NewGeminiProvider(context.Background(), cfg, logger)
		if err == nil {
			c.provider = provider
			logger.Info("AI provider selected", "provider", provider.Name())
			return c
		}
		logger.LogError(err, "Failed to initialize Gemini provider")
	}

	if cfg.OpenRouter.APIKey != "" {
		provider, err := NewOpenRouterProvider(cfg, logger)
		if err == nil {
			c.provider = provider
			logger.Info("AI provider selected", "provider", provider.Name())
			return c
		}
		logger.LogError(err, "Failed to initialize OpenRouter provider")
	}

	logger.Warn("No AI provider configured; generation operations will fail")
	return c
}

// Available reports whether a provider was selected at construction.
func (c *Client) Available() bool {
	return c.provider != nil
}

// ProviderName returns the active provider's name, or "None".
func (c *Client) ProviderName() string {
	if c.provider == nil {
		return "None"
	}
	return c.provider.Name()
}

// BreakerStats exposes circuit breaker statistics for diagnostics.
func (c *Client) BreakerStats() map[string]any {
	return c.breaker.GetStats()
}

// GenerateContent performs a single generation attempt through the
// circuit breaker.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "ai.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.provider", c.ProviderName()),
		attribute.Int("ai.prompt_length", len(prompt)),
	)

	if c.provider == nil {
		err := errors.NewConfigError(errors.ErrCodeNoProvider,
			"No AI provider is configured. Set GEMINI_API_KEY or OPENROUTER_API_KEY.", nil)
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", err
	}

	text, err := c.breaker.Execute(func() (string, error) {
		return c.provider.Generate(ctx, prompt)
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", err
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("ai.response_length", len(text)),
	)
	return text, nil
}

// GenerateWithRetry wraps GenerateContent in the bounded retry policy:
// up to MaxRetries additional attempts, sleeping 1s, 2s, 4s... before
// each retry (capped at 30s), and only for failures worth repeating.
func (c *Client) GenerateWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt)
			c.logger.Warn("Retrying AI generation",
				"provider", c.ProviderName(),
				"attempt", attempt,
				"max_retries", c.cfg.MaxRetries,
				"delay", delay.String(),
				"error", lastErr.Error())

			if err := c.sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		text, err := c.GenerateContent(ctx, prompt)
		if err == nil {
			if attempt > 0 {
				c.logger.Info("AI generation succeeded after retry",
					"provider", c.ProviderName(),
					"successful_attempt", attempt+1)
			}
			return text, nil
		}

		lastErr = err
		if !errors.IsRetryable(err) {
			c.logger.Debug("Error is not retryable, stopping retry attempts",
				"provider", c.ProviderName(),
				"error", err.Error())
			return "", err
		}
	}

	c.logger.LogError(lastErr, "AI generation failed after all retry attempts",
		"provider", c.ProviderName(),
		"total_attempts", c.cfg.MaxRetries+1)
	return "", lastErr
}

// backoffDelay returns the sleep before retry number attempt (1-based):
// 2^(attempt-1) seconds, capped at maxBackoff.
func backoffDelay(attempt int) time.Duration {
	if attempt > 5 {
		// 2^5s already exceeds the cap; avoids shift overflow too.
		return maxBackoff
	}
	delay := time.Duration(1<<uint(attempt-1)) * time.Second
	if delay > maxBackoff {
		delay = maxBackoff
	}
	return delay
}

// sleepContext sleeps for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
