package ai

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartresume/internal/config"
	"smartresume/internal/errors"
)

func openRouterTestConfig(baseURL string) *config.AIConfig {
	return &config.AIConfig{
		OpenRouter: config.OpenRouterConfig{
			APIKey:   "test-key",
			Model:    "openai/gpt-3.5-turbo",
			BaseURL:  baseURL,
			SiteURL:  "https://example.test",
			SiteName: "SmartResume",
		},
		Temperature:     0.7,
		TopP:            0.95,
		MaxOutputTokens: 1024,
		Timeout:         5 * time.Second,
	}
}

func newOpenRouterProvider(t *testing.T, baseURL string) *OpenRouterProvider {
	t.Helper()
	logger, _ := errors.New("error")
	provider, err := NewOpenRouterProvider(openRouterTestConfig(baseURL), logger)
	if err != nil {
		t.Fatalf("NewOpenRouterProvider returned error: %v", err)
	}
	return provider
}

func TestNewOpenRouterProviderRequiresAPIKey(t *testing.T) {
	logger, _ := errors.New("error")
	cfg := openRouterTestConfig("")
	cfg.OpenRouter.APIKey = ""

	_, err := NewOpenRouterProvider(cfg, logger)
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if errors.TypeOf(err) != errors.ErrorTypeConfig {
		t.Errorf("error type = %q, want config", errors.TypeOf(err))
	}
}

func TestOpenRouterGenerateSuccess(t *testing.T) {
	var gotReq chatRequest
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Generated text.  "}}]}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	provider := newOpenRouterProvider(t, server.URL)

	got, err := provider.Generate(context.Background(), "write a summary")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "Generated text." {
		t.Errorf("Generate() = %q, want trimmed %q", got, "Generated text.")
	}

	if auth := gotHeaders.Get("Authorization"); auth != "Bearer test-key" {
		t.Errorf("Authorization = %q", auth)
	}
	if ref := gotHeaders.Get("HTTP-Referer"); ref != "https://example.test" {
		t.Errorf("HTTP-Referer = %q", ref)
	}
	if title := gotHeaders.Get("X-Title"); title != "SmartResume" {
		t.Errorf("X-Title = %q", title)
	}

	if gotReq.Model != "openai/gpt-3.5-turbo" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" || gotReq.Messages[0].Content != "write a summary" {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
	if gotReq.Temperature != 0.7 || gotReq.TopP != 0.95 || gotReq.MaxTokens != 1024 {
		t.Errorf("request params = temp %v topP %v maxTokens %d", gotReq.Temperature, gotReq.TopP, gotReq.MaxTokens)
	}
}

func TestOpenRouterGenerateStatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType errors.ErrorType
		wantCode string
	}{
		{"429 is rate limit", 429, `{"error":{"message":"rate limited"}}`, errors.ErrorTypeRateLimit, errors.ErrCodeRateLimited},
		{"401 is invalid key", 401, `{"error":{"message":"invalid key"}}`, errors.ErrorTypeInvalidRequest, errors.ErrCodeInvalidAPIKey},
		{"403 is invalid key", 403, ``, errors.ErrorTypeInvalidRequest, errors.ErrCodeInvalidAPIKey},
		{"404 is model unavailable", 404, `{"error":{"message":"no such model"}}`, errors.ErrorTypeInvalidRequest, errors.ErrCodeModelUnavailable},
		{"400 is invalid request", 400, ``, errors.ErrorTypeInvalidRequest, errors.ErrCodeInvalidRequest},
		{"500 is transient", 500, ``, errors.ErrorTypeTransient, errors.ErrCodeProviderUnavailable},
		{"503 is transient", 503, ``, errors.ErrorTypeTransient, errors.ErrCodeProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("failed to write response: %v", err)
				}
			}))
			defer server.Close()

			provider := newOpenRouterProvider(t, server.URL)

			_, err := provider.Generate(context.Background(), "prompt")
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.TypeOf(err) != tt.wantType {
				t.Errorf("error type = %q, want %q", errors.TypeOf(err), tt.wantType)
			}
			var appErr *errors.AppError
			if !stderrors.As(err, &appErr) {
				t.Fatalf("error is not an AppError: %v", err)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", appErr.Code, tt.wantCode)
			}
		})
	}
}

func TestOpenRouterGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"choices":[]}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	provider := newOpenRouterProvider(t, server.URL)

	_, err := provider.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	if errors.TypeOf(err) != errors.ErrorTypeTransient {
		t.Errorf("error type = %q, want transient", errors.TypeOf(err))
	}
}

func TestOpenRouterGenerateUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	provider := newOpenRouterProvider(t, server.URL)

	_, err := provider.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if errors.TypeOf(err) != errors.ErrorTypeTransient {
		t.Errorf("error type = %q, want transient", errors.TypeOf(err))
	}
}
