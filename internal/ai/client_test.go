package ai

import (
	"context"
	"testing"
	"time"

	"smartresume/internal/config"
	"smartresume/internal/errors"

	"go.opentelemetry.io/otel"
)

type stubResult struct {
	text string
	err  error
}

type stubProvider struct {
	name    string
	calls   int
	results []stubResult
}

func (s *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	idx := s.calls
	s.calls++
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	r := s.results[idx]
	return r.text, r.err
}

func (s *stubProvider) Name() string {
	if s.name == "" {
		return "Stub"
	}
	return s.name
}

func newTestClient(t *testing.T, provider Provider, maxRetries int) (*Client, *[]time.Duration) {
	t.Helper()

	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	slept := &[]time.Duration{}
	c := &Client{
		provider: provider,
		cfg: &config.AIConfig{
			Timeout:    5 * time.Second,
			MaxRetries: maxRetries,
		},
		logger: logger,
		tracer: otel.Tracer("smartresume.ai.test"),
		sleep: func(ctx context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return nil
		},
	}
	return c, slept
}

func TestBreakerStatsReflectBreakerState(t *testing.T) {
	stub := &stubProvider{results: []stubResult{{text: "ok"}}}

	c, _ := newTestClient(t, stub, 0)
	stats := c.BreakerStats()
	if enabled, ok := stats["enabled"].(bool); !ok || enabled {
		t.Errorf("stats without breaker = %v, want enabled=false", stats)
	}

	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	c.breaker = NewGenerationBreaker(config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}, logger)

	stats = c.BreakerStats()
	if enabled, ok := stats["enabled"].(bool); !ok || !enabled {
		t.Errorf("stats with breaker = %v, want enabled=true", stats)
	}
	if stats["name"] != "ai-generation" {
		t.Errorf("breaker name = %v", stats["name"])
	}
}

func TestGenerateWithRetrySucceedsFirstAttempt(t *testing.T) {
	stub := &stubProvider{results: []stubResult{{text: "hello"}}}
	c, slept := newTestClient(t, stub, 3)

	got, err := c.GenerateWithRetry(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want hello", got)
	}
	if stub.calls != 1 {
		t.Errorf("provider called %d times, want 1", stub.calls)
	}
	if len(*slept) != 0 {
		t.Errorf("slept %v, want no sleeps", *slept)
	}
}

func TestGenerateWithRetryRecoversFromTransientErrors(t *testing.T) {
	transient := errors.NewTransientError(errors.ErrCodeProviderUnavailable, "503", nil)
	stub := &stubProvider{results: []stubResult{
		{err: transient},
		{err: transient},
		{text: "recovered"},
	}}
	c, slept := newTestClient(t, stub, 3)

	got, err := c.GenerateWithRetry(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "recovered" {
		t.Errorf("got %q, want recovered", got)
	}
	if stub.calls != 3 {
		t.Errorf("provider called %d times, want 3", stub.calls)
	}

	want := []time.Duration{time.Second, 2 * time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("slept %v, want %v", *slept, want)
	}
	for i, d := range want {
		if (*slept)[i] != d {
			t.Errorf("sleep %d = %v, want %v", i, (*slept)[i], d)
		}
	}
}

func TestGenerateWithRetryExhaustsAttempts(t *testing.T) {
	rateLimited := errors.NewRateLimitError(errors.ErrCodeRateLimited, "slow down", nil)
	stub := &stubProvider{results: []stubResult{{err: rateLimited}}}
	c, slept := newTestClient(t, stub, 2)

	_, err := c.GenerateWithRetry(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if errors.TypeOf(err) != errors.ErrorTypeRateLimit {
		t.Errorf("error type = %q, want rate_limit", errors.TypeOf(err))
	}
	if stub.calls != 3 {
		t.Errorf("provider called %d times, want 3 (initial + 2 retries)", stub.calls)
	}
	if len(*slept) != 2 {
		t.Errorf("slept %d times, want 2", len(*slept))
	}
}

func TestGenerateWithRetryStopsOnTerminalError(t *testing.T) {
	invalid := errors.NewInvalidRequestError(errors.ErrCodeInvalidAPIKey, "bad key", nil)
	stub := &stubProvider{results: []stubResult{{err: invalid}}}
	c, slept := newTestClient(t, stub, 3)

	_, err := c.GenerateWithRetry(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.TypeOf(err) != errors.ErrorTypeInvalidRequest {
		t.Errorf("error type = %q, want invalid_request", errors.TypeOf(err))
	}
	if stub.calls != 1 {
		t.Errorf("provider called %d times, want 1 (no retry on terminal errors)", stub.calls)
	}
	if len(*slept) != 0 {
		t.Errorf("slept %v, want no sleeps", *slept)
	}
}

func TestGenerateContentWithoutProvider(t *testing.T) {
	stub := &stubProvider{results: []stubResult{{text: "never"}}}
	c, _ := newTestClient(t, nil, 3)

	_, err := c.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if errors.TypeOf(err) != errors.ErrorTypeConfig {
		t.Errorf("error type = %q, want config", errors.TypeOf(err))
	}
	if stub.calls != 0 {
		t.Errorf("provider called %d times, want 0", stub.calls)
	}
	if c.Available() {
		t.Error("Available() = true, want false")
	}
	if c.ProviderName() != "None" {
		t.Errorf("ProviderName() = %q, want None", c.ProviderName())
	}
}

func TestGenerateWithRetryWithoutProviderDoesNotRetry(t *testing.T) {
	c, slept := newTestClient(t, nil, 3)

	_, err := c.GenerateWithRetry(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if errors.TypeOf(err) != errors.ErrorTypeConfig {
		t.Errorf("error type = %q, want config", errors.TypeOf(err))
	}
	if len(*slept) != 0 {
		t.Errorf("slept %v, want no sleeps for a config error", *slept)
	}
}

func TestProviderName(t *testing.T) {
	c, _ := newTestClient(t, &stubProvider{name: "Gemini", results: []stubResult{{}}}, 0)
	if c.ProviderName() != "Gemini" {
		t.Errorf("ProviderName() = %q, want Gemini", c.ProviderName())
	}
}

func TestBackoffDelay(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 16 * time.Second},
		{6, 30 * time.Second},
		{20, 30 * time.Second},
	}

	for _, tt := range tests {
		if got := backoffDelay(tt.attempt); got != tt.want {
			t.Errorf("backoffDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestSleepContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := sleepContext(ctx, 5*time.Second)
	if err == nil {
		t.Fatal("expected context error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("sleepContext took %v despite cancelled context", elapsed)
	}
}
