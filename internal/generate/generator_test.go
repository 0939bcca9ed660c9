package generate

import (
	"context"
	"strings"
	"testing"

	"smartresume/internal/errors"
	"smartresume/internal/types"
)

// scriptedClient returns canned responses keyed by a substring of the
// prompt, so tests can steer individual sub-operations.
type scriptedClient struct {
	prompts   []string
	responses map[string]string
	errors    map[string]error
	fallback  string
}

func (s *scriptedClient) generate(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	for key, err := range s.errors {
		if strings.Contains(prompt, key) {
			return "", err
		}
	}
	for key, resp := range s.responses {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return s.fallback, nil
}

func (s *scriptedClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return s.generate(prompt)
}

func (s *scriptedClient) GenerateWithRetry(ctx context.Context, prompt string) (string, error) {
	return s.generate(prompt)
}

func (s *scriptedClient) ProviderName() string { return "Scripted" }

func newTestGenerator(t *testing.T, client ContentClient) *Generator {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return NewGenerator(client, logger)
}

func TestSummarySuccess(t *testing.T) {
	client := &scriptedClient{fallback: "**Seasoned** engineer with impact—driven work."}
	g := newTestGenerator(t, client)

	res := g.Summary(context.Background(), types.SummaryInput{TargetRole: "Engineer"})
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Content != "Seasoned engineer with impact-driven work." {
		t.Errorf("content = %q, want sanitized output", res.Content)
	}
	if res.Error != "" {
		t.Errorf("error should be empty on success, got %q", res.Error)
	}
}

func TestSummaryRequiresTargetRole(t *testing.T) {
	client := &scriptedClient{fallback: "never used"}
	g := newTestGenerator(t, client)

	res := g.Summary(context.Background(), types.SummaryInput{})
	if res.Success {
		t.Fatal("expected failure without a target role")
	}
	if len(client.prompts) != 0 {
		t.Error("no prompt should be sent for invalid input")
	}
}

func TestSummaryErrorMessages(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantPrefix string
	}{
		{"rate limit", errors.NewRateLimitError(errors.ErrCodeRateLimited, "429", nil), "Rate limit"},
		{"invalid request", errors.NewInvalidRequestError(errors.ErrCodeInvalidAPIKey, "401", nil), "Invalid"},
		{"transient", errors.NewTransientError(errors.ErrCodeProviderUnavailable, "503", nil), "The AI service"},
		{"config", errors.NewConfigError(errors.ErrCodeNoProvider, "none", nil), "AI generation is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedClient{errors: map[string]error{"resume summary": tt.err}}
			g := newTestGenerator(t, client)

			res := g.Summary(context.Background(), types.SummaryInput{TargetRole: "Engineer"})
			if res.Success {
				t.Fatal("expected failure")
			}
			if !strings.HasPrefix(res.Error, tt.wantPrefix) {
				t.Errorf("error = %q, want prefix %q", res.Error, tt.wantPrefix)
			}
			if res.Content != "" {
				t.Errorf("content should be empty on failure, got %q", res.Content)
			}
		})
	}
}

func TestExperienceBullets(t *testing.T) {
	client := &scriptedClient{fallback: "- Led the rewrite\n- Cut costs by 30%\n- Mentored two juniors"}
	g := newTestGenerator(t, client)

	res := g.ExperienceBullets(context.Background(), types.BulletsInput{
		JobTitle:         "Engineer",
		Responsibilities: "rewrote the system",
	})
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	want := []string{"Led the rewrite", "Cut costs by 30%", "Mentored two juniors"}
	if len(res.Items) != len(want) {
		t.Fatalf("items = %v, want %v", res.Items, want)
	}
	for i := range want {
		if res.Items[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, res.Items[i], want[i])
		}
	}
}

func TestExperienceBulletsRequiresResponsibilities(t *testing.T) {
	g := newTestGenerator(t, &scriptedClient{})

	res := g.ExperienceBullets(context.Background(), types.BulletsInput{JobTitle: "Engineer"})
	if res.Success {
		t.Fatal("expected failure without responsibilities")
	}
}

func TestExperienceBulletsFallsBackToRawText(t *testing.T) {
	// Output with no line structure still yields one usable item.
	client := &scriptedClient{fallback: "Single block of prose about the role"}
	g := newTestGenerator(t, client)

	res := g.ExperienceBullets(context.Background(), types.BulletsInput{
		JobTitle:         "Engineer",
		Responsibilities: "did things",
	})
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if len(res.Items) != 1 || res.Items[0] != "Single block of prose about the role" {
		t.Errorf("items = %v", res.Items)
	}
}

func TestSuggestSkillsParsesList(t *testing.T) {
	client := &scriptedClient{fallback: "Go, Kubernetes, Terraform, gRPC"}
	g := newTestGenerator(t, client)

	res := g.SuggestSkills(context.Background(), types.SkillsInput{TargetRole: "Platform Engineer"})
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if len(res.Items) != 4 {
		t.Errorf("items = %v, want 4 skills", res.Items)
	}
}

func TestEnhanceAchievementKeepsFirstLine(t *testing.T) {
	client := &scriptedClient{fallback: "Won the 2023 hackathon.\nHere is some extra rambling."}
	g := newTestGenerator(t, client)

	res := g.EnhanceAchievement(context.Background(), "won hackathon")
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if res.Content != "Won the 2023 hackathon." {
		t.Errorf("content = %q, want first line only", res.Content)
	}
}

func TestCoverLetterRequiresJobTitle(t *testing.T) {
	g := newTestGenerator(t, &scriptedClient{})

	res := g.CoverLetter(context.Background(), types.CoverLetterInput{})
	if res.Success {
		t.Fatal("expected failure without a job title")
	}
}

func TestCoverLetterSuccess(t *testing.T) {
	client := &scriptedClient{fallback: "Dear Hiring Manager,\n\nI am excited to apply."}
	g := newTestGenerator(t, client)

	res := g.CoverLetter(context.Background(), types.CoverLetterInput{
		JobTitle: "Engineer",
		Company:  "Acme",
		Resume:   &types.ResumeData{Summary: "Engineer."},
	})
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if !strings.HasPrefix(res.Content, "Dear Hiring Manager,") {
		t.Errorf("content = %q", res.Content)
	}
}

func TestOptimizeResumePartialFailure(t *testing.T) {
	// Summary generation fails; bullets, projects, and skills succeed.
	client := &scriptedClient{
		errors: map[string]error{
			"resume summary": errors.NewRateLimitError(errors.ErrCodeRateLimited, "429", nil),
		},
		responses: map[string]string{
			"bullet points":  "- Shipped the platform\n- Halved deploy time",
			"project":        "Rebuilt the pipeline end to end.",
			"Suggest skills": "Go, Kafka, Python",
		},
	}
	g := newTestGenerator(t, client)

	data := types.ResumeData{
		TargetRole:      "Platform Engineer",
		Summary:         "short",
		TechnicalSkills: []string{"Go"},
		Experience: []types.Experience{
			{JobTitle: "Engineer", Company: "Acme", Responsibilities: "ran deploys"},
			{JobTitle: "Intern", Company: "Acme"}, // no responsibilities, skipped
		},
		Projects: []types.Project{
			{Title: "Pipeline", Description: "a data pipeline for analytics"},
			{Title: "Tiny", Description: "short"}, // too thin, skipped
		},
	}

	opt, err := g.OptimizeResume(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opt.Summary != "" {
		t.Errorf("summary should be empty after its failure, got %q", opt.Summary)
	}
	if msg, ok := opt.Failed["summary"]; !ok || !strings.HasPrefix(msg, "Rate limit") {
		t.Errorf("Failed[summary] = %q, want rate-limit message", msg)
	}

	if len(opt.Experience) != 1 {
		t.Fatalf("experience = %v, want one enhanced entry", opt.Experience)
	}
	if len(opt.Experience[0].BulletPoints) != 2 {
		t.Errorf("bullet points = %v", opt.Experience[0].BulletPoints)
	}

	if len(opt.Projects) != 1 || opt.Projects[0].Title != "Pipeline" {
		t.Fatalf("projects = %v, want only Pipeline", opt.Projects)
	}
	if opt.Projects[0].EnhancedDescription == "" {
		t.Error("enhanced description should be set")
	}
	if opt.Projects[0].Description != "a data pipeline for analytics" {
		t.Error("original description must be preserved")
	}

	// "Go" is already listed and must be filtered out.
	if len(opt.SuggestedSkills) != 2 {
		t.Errorf("suggested skills = %v, want [Kafka Python]", opt.SuggestedSkills)
	}
	for _, s := range opt.SuggestedSkills {
		if strings.EqualFold(s, "Go") {
			t.Error("already-known skill should be filtered")
		}
	}

	// Input snapshot untouched.
	if data.Summary != "short" || len(data.Experience[0].BulletPoints) != 0 {
		t.Error("input snapshot was mutated")
	}
}

func TestOptimizeResumeRequiresTargetRole(t *testing.T) {
	g := newTestGenerator(t, &scriptedClient{})

	_, err := g.OptimizeResume(context.Background(), types.ResumeData{})
	if err == nil {
		t.Fatal("expected validation error without a target role")
	}
	if errors.TypeOf(err) != errors.ErrorTypeValidation {
		t.Errorf("error type = %q, want validation", errors.TypeOf(err))
	}
}

func TestOptimizeResumeSkipsHealthySummary(t *testing.T) {
	longSummary := strings.Repeat("Solid summary text. ", 5)
	client := &scriptedClient{
		responses: map[string]string{"Suggest skills": "Rust"},
		fallback:  "unused",
	}
	g := newTestGenerator(t, client)

	opt, err := g.OptimizeResume(context.Background(), types.ResumeData{
		TargetRole: "Engineer",
		Summary:    longSummary,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Summary != "" {
		t.Errorf("summary should not be regenerated when long enough, got %q", opt.Summary)
	}
	for _, prompt := range client.prompts {
		if strings.Contains(prompt, "resume summary") {
			t.Error("summary prompt should not have been sent")
		}
	}
}

type panickyClient struct{}

func (panickyClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	panic("boom")
}

func (panickyClient) GenerateWithRetry(ctx context.Context, prompt string) (string, error) {
	panic("boom")
}

func (panickyClient) ProviderName() string { return "Panicky" }

func TestGeneratorRecoversFromPanics(t *testing.T) {
	g := newTestGenerator(t, panickyClient{})

	res := g.Summary(context.Background(), types.SummaryInput{TargetRole: "Engineer"})
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(res.Error, "An unexpected error occurred") {
		t.Errorf("error = %q", res.Error)
	}

	list := g.SuggestSkills(context.Background(), types.SkillsInput{TargetRole: "Engineer"})
	if list.Success {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(list.Error, "An unexpected error occurred") {
		t.Errorf("error = %q", list.Error)
	}
}
