package generate

import (
	"context"
	"fmt"
	"strings"

	"smartresume/internal/errors"
	"smartresume/internal/types"
)

// ContentClient is the slice of the unified AI client the generators
// need. Satisfied by *ai.Client.
type ContentClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateWithRetry(ctx context.Context, prompt string) (string, error)
	ProviderName() string
}

// Generator orchestrates content generation per content type. Every
// operation returns a Result or ListResult instead of an error: failures
// are folded into the result with a human-readable message, and panics
// never escape.
type Generator struct {
	client ContentClient
	logger *errors.Logger
}

// NewGenerator creates a generator on top of the unified client.
func NewGenerator(client ContentClient, logger *errors.Logger) *Generator {
	return &Generator{client: client, logger: logger}
}

// Result is the uniform outcome shape for single-text operations.
// Exactly one of Content (Success true) or Error (Success false) is set.
type Result struct {
	Success bool   `json:"success"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListResult is the uniform outcome shape for list-producing operations.
type ListResult struct {
	Success bool     `json:"success"`
	Items   []string `json:"items,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func successResult(content string) Result {
	return Result{Success: true, Content: content}
}

func failureResult(message string) Result {
	return Result{Success: false, Error: message}
}

// messageFor translates a generation failure into the stable, human
// readable messages the surrounding tooling pattern-matches on.
func messageFor(err error) string {
	switch errors.TypeOf(err) {
	case errors.ErrorTypeConfig:
		return "AI generation is not configured. Add a Gemini or OpenRouter API key."
	case errors.ErrorTypeRateLimit:
		return "Rate limit exceeded. Please wait a moment and try again."
	case errors.ErrorTypeInvalidRequest:
		return "Invalid request. Please check your API key and input."
	case errors.ErrorTypeTransient:
		return "The AI service is temporarily unavailable. Please try again."
	default:
		return fmt.Sprintf("An error occurred while generating content: %v", err)
	}
}

// recoverResult converts a panic in a generator operation into an
// unexpected-error Result.
func (g *Generator) recoverResult(res *Result, operation string) {
	if r := recover(); r != nil {
		g.logger.LogError(
			errors.NewUnexpectedError(errors.ErrCodeGenerationFailed,
				fmt.Sprintf("panic in %s", operation), nil),
			"Recovered from panic during generation",
			"operation", operation, "panic", fmt.Sprint(r))
		*res = failureResult(fmt.Sprintf("An unexpected error occurred: %v", r))
	}
}

// recoverListResult is recoverResult for list-shaped operations.
func (g *Generator) recoverListResult(res *ListResult, operation string) {
	if r := recover(); r != nil {
		g.logger.LogError(
			errors.NewUnexpectedError(errors.ErrCodeGenerationFailed,
				fmt.Sprintf("panic in %s", operation), nil),
			"Recovered from panic during generation",
			"operation", operation, "panic", fmt.Sprint(r))
		*res = ListResult{Success: false, Error: fmt.Sprintf("An unexpected error occurred: %v", r)}
	}
}

// Summary generates a professional summary.
func (g *Generator) Summary(ctx context.Context, in types.SummaryInput) (res Result) {
	defer g.recoverResult(&res, "summary")

	if strings.TrimSpace(in.TargetRole) == "" {
		return failureResult("Please provide a target job role first.")
	}

	text, err := g.client.GenerateWithRetry(ctx, BuildSummaryPrompt(in))
	if err != nil {
		return failureResult(messageFor(err))
	}
	return successResult(Sanitize(text))
}

// ExperienceBullets turns one experience entry's responsibilities into
// 3-5 polished bullet points. Re-running on already-generated bullets is
// safe; the caller decides what to keep.
func (g *Generator) ExperienceBullets(ctx context.Context, in types.BulletsInput) (res ListResult) {
	defer g.recoverListResult(&res, "experience_bullets")

	if strings.TrimSpace(in.JobTitle) == "" {
		return ListResult{Success: false, Error: "Please provide the job title first."}
	}
	if strings.TrimSpace(in.Responsibilities) == "" {
		return ListResult{Success: false, Error: "Please describe the responsibilities first."}
	}

	text, err := g.client.GenerateWithRetry(ctx, BuildBulletsPrompt(in))
	if err != nil {
		return ListResult{Success: false, Error: messageFor(err)}
	}

	cleaned := Sanitize(text)
	bullets := SplitBullets(cleaned)
	if len(bullets) == 0 {
		bullets = []string{cleaned}
	}
	return ListResult{Success: true, Items: bullets}
}

// EnhanceProject rewrites a project description as a 2-3 sentence
// paragraph.
func (g *Generator) EnhanceProject(ctx context.Context, in types.ProjectInput) (res Result) {
	defer g.recoverResult(&res, "enhance_project")

	if strings.TrimSpace(in.Title) == "" {
		return failureResult("Please provide the project title first.")
	}
	if strings.TrimSpace(in.Description) == "" {
		return failureResult("Please provide a project description first.")
	}

	text, err := g.client.GenerateWithRetry(ctx, BuildProjectPrompt(in))
	if err != nil {
		return failureResult(messageFor(err))
	}
	return successResult(Sanitize(text))
}

// SuggestSkills suggests skills for the target role. The returned list
// may overlap CurrentSkills; duplicate filtering is the caller's job.
func (g *Generator) SuggestSkills(ctx context.Context, in types.SkillsInput) (res ListResult) {
	defer g.recoverListResult(&res, "suggest_skills")

	if strings.TrimSpace(in.TargetRole) == "" {
		return ListResult{Success: false, Error: "Please provide a target job role first."}
	}

	text, err := g.client.GenerateWithRetry(ctx, BuildSkillsPrompt(in))
	if err != nil {
		return ListResult{Success: false, Error: messageFor(err)}
	}

	skills := SplitSkills(Sanitize(text))
	if len(skills) == 0 {
		return ListResult{Success: false, Error: "The AI returned no usable skills. Please try again."}
	}
	return ListResult{Success: true, Items: skills}
}

// AnalyzeQuality produces a free-text quality report for a snapshot.
func (g *Generator) AnalyzeQuality(ctx context.Context, data types.ResumeData) (res Result) {
	defer g.recoverResult(&res, "analyze_quality")

	text, err := g.client.GenerateWithRetry(ctx, BuildQualityPrompt(data))
	if err != nil {
		return failureResult(messageFor(err))
	}
	return successResult(Sanitize(text))
}

// EnhanceAchievement restates one achievement as a single resume line.
func (g *Generator) EnhanceAchievement(ctx context.Context, achievement string) (res Result) {
	defer g.recoverResult(&res, "enhance_achievement")

	if strings.TrimSpace(achievement) == "" {
		return failureResult("Please provide an achievement to enhance first.")
	}

	text, err := g.client.GenerateWithRetry(ctx, BuildAchievementPrompt(achievement))
	if err != nil {
		return failureResult(messageFor(err))
	}

	// One line was asked for; keep only the first if the model rambles.
	line := Sanitize(text)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	return successResult(line)
}

// Optimizations carries the fields the full-resume optimization managed
// to produce. Failed maps a section label to the failure message for
// sub-operations that did not succeed; the rest of the struct is still
// valid.
type Optimizations struct {
	Summary         string             `json:"summary,omitempty"`
	Experience      []types.Experience `json:"experience,omitempty"`
	Projects        []types.Project    `json:"projects,omitempty"`
	SuggestedSkills []string           `json:"suggestedSkills,omitempty"`
	Failed          map[string]string  `json:"failed,omitempty"`
}

// Empty reports whether the optimization produced nothing at all.
func (o *Optimizations) Empty() bool {
	return o.Summary == "" && len(o.Experience) == 0 &&
		len(o.Projects) == 0 && len(o.SuggestedSkills) == 0
}

// OptimizeResume runs the applicable generators across a whole snapshot
// and aggregates their output. Individual failures are tolerated and
// recorded in Failed; the snapshot itself is never mutated.
func (g *Generator) OptimizeResume(ctx context.Context, data types.ResumeData) (Optimizations, error) {
	opt := Optimizations{Failed: map[string]string{}}

	if strings.TrimSpace(data.TargetRole) == "" {
		return opt, errors.NewValidationError(errors.ErrCodeInvalidSnapshot,
			"A target role is required to optimize a resume", nil)
	}

	// Summary: generate when absent or too thin to be useful.
	if len(strings.TrimSpace(data.Summary)) < 50 {
		res := g.Summary(ctx, types.SummaryInput{
			Name:            data.Personal.Name,
			TargetRole:      data.TargetRole,
			ExperienceYears: data.ExperienceYears,
			KeySkills:       JoinSkills(data.TechnicalSkills),
			ExistingSummary: data.Summary,
		})
		if res.Success {
			opt.Summary = res.Content
		} else {
			opt.Failed["summary"] = res.Error
		}
	}

	// Bullet points for every experience entry with responsibilities.
	for _, exp := range data.Experience {
		if strings.TrimSpace(exp.Responsibilities) == "" {
			continue
		}
		res := g.ExperienceBullets(ctx, types.BulletsInput{
			JobTitle:         exp.JobTitle,
			Company:          exp.Company,
			Duration:         experienceDuration(exp),
			Responsibilities: exp.Responsibilities,
		})
		if res.Success {
			enhanced := exp
			enhanced.BulletPoints = res.Items
			opt.Experience = append(opt.Experience, enhanced)
		} else {
			opt.Failed[fmt.Sprintf("experience: %s", exp.JobTitle)] = res.Error
		}
	}

	// Project descriptions long enough to work with.
	for _, proj := range data.Projects {
		if len(strings.TrimSpace(proj.Description)) <= 10 {
			continue
		}
		res := g.EnhanceProject(ctx, types.ProjectInput{
			Title:        proj.Title,
			Duration:     proj.Duration,
			Technologies: proj.Technologies,
			Description:  proj.Description,
		})
		if res.Success {
			enhanced := proj
			enhanced.EnhancedDescription = res.Content
			opt.Projects = append(opt.Projects, enhanced)
		} else {
			opt.Failed[fmt.Sprintf("project: %s", proj.Title)] = res.Error
		}
	}

	// Skill suggestions, filtered against what is already listed.
	skillsRes := g.SuggestSkills(ctx, types.SkillsInput{
		TargetRole:    data.TargetRole,
		CurrentSkills: data.Skills(),
	})
	if skillsRes.Success {
		opt.SuggestedSkills = filterKnownSkills(skillsRes.Items, data.Skills())
	} else {
		opt.Failed["skills"] = skillsRes.Error
	}

	if len(opt.Failed) == 0 {
		opt.Failed = nil
	}
	return opt, nil
}

// experienceDuration renders an entry's date range for prompts.
func experienceDuration(exp types.Experience) string {
	switch {
	case exp.StartDate == "":
		return ""
	case exp.Current:
		return exp.StartDate + " - Present"
	case exp.EndDate != "":
		return exp.StartDate + " - " + exp.EndDate
	default:
		return exp.StartDate
	}
}

// filterKnownSkills drops suggestions already present (case-insensitive).
func filterKnownSkills(suggested, current []string) []string {
	known := make(map[string]bool, len(current))
	for _, s := range current {
		known[strings.ToLower(strings.TrimSpace(s))] = true
	}

	var fresh []string
	for _, s := range suggested {
		if !known[strings.ToLower(strings.TrimSpace(s))] {
			fresh = append(fresh, s)
		}
	}
	return fresh
}
