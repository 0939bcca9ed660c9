package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"smartresume/internal/generate"
	"smartresume/internal/store"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Result", &ResultTextFormatter{})
	registry.RegisterFormatter("text", "ListResult", &ListResultTextFormatter{})
	registry.RegisterFormatter("text", "Optimizations", &OptimizationsTextFormatter{})
	registry.RegisterFormatter("text", "ResumeSummaryList", &ResumeListTextFormatter{})
	registry.RegisterFormatter("text", "ResumeRecord", &ResumeRecordTextFormatter{})
	registry.RegisterFormatter("text", "CoverLetterList", &CoverLetterListTextFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case generate.Result:
		return "Result"
	case generate.ListResult:
		return "ListResult"
	case generate.Optimizations:
		return "Optimizations"
	case []store.ResumeSummary:
		return "ResumeSummaryList"
	case store.ResumeRecord, *store.ResumeRecord:
		return "ResumeRecord"
	case []store.CoverLetter:
		return "CoverLetterList"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ResultTextFormatter prints a single generation result as plain text.
type ResultTextFormatter struct{}

func (rf *ResultTextFormatter) Format(data any) (string, error) {
	result, ok := data.(generate.Result)
	if !ok {
		return "", fmt.Errorf("expected Result, got %T", data)
	}

	if !result.Success {
		return fmt.Sprintf("Error: %s\n", result.Error), nil
	}
	return result.Content + "\n", nil
}

func (rf *ResultTextFormatter) SupportedType() string {
	return "Result"
}

// ListResultTextFormatter prints a list result as one item per line.
type ListResultTextFormatter struct{}

func (lf *ListResultTextFormatter) Format(data any) (string, error) {
	result, ok := data.(generate.ListResult)
	if !ok {
		return "", fmt.Errorf("expected ListResult, got %T", data)
	}

	if !result.Success {
		return fmt.Sprintf("Error: %s\n", result.Error), nil
	}

	var output strings.Builder
	for _, item := range result.Items {
		output.WriteString("- ")
		output.WriteString(item)
		output.WriteString("\n")
	}
	return output.String(), nil
}

func (lf *ListResultTextFormatter) SupportedType() string {
	return "ListResult"
}

// OptimizationsTextFormatter prints a whole-resume optimization report.
type OptimizationsTextFormatter struct{}

func (of *OptimizationsTextFormatter) Format(data any) (string, error) {
	result, ok := data.(generate.Optimizations)
	if !ok {
		return "", fmt.Errorf("expected Optimizations, got %T", data)
	}

	var output strings.Builder

	if result.Summary != "" {
		output.WriteString("=== SUMMARY ===\n")
		output.WriteString(result.Summary)
		output.WriteString("\n\n")
	}

	if len(result.Experience) > 0 {
		output.WriteString("=== EXPERIENCE ===\n")
		for _, exp := range result.Experience {
			title := exp.JobTitle
			if exp.Company != "" {
				title += " at " + exp.Company
			}
			output.WriteString(title)
			output.WriteString("\n")
			for _, bullet := range exp.BulletPoints {
				output.WriteString(fmt.Sprintf("- %s\n", bullet))
			}
			output.WriteString("\n")
		}
	}

	if len(result.Projects) > 0 {
		output.WriteString("=== PROJECTS ===\n")
		for _, proj := range result.Projects {
			output.WriteString(proj.Title)
			output.WriteString("\n")
			output.WriteString(proj.EnhancedDescription)
			output.WriteString("\n\n")
		}
	}

	if len(result.SuggestedSkills) > 0 {
		output.WriteString("=== SUGGESTED SKILLS ===\n")
		output.WriteString(strings.Join(result.SuggestedSkills, ", "))
		output.WriteString("\n\n")
	}

	if len(result.Failed) > 0 {
		output.WriteString("=== SKIPPED SECTIONS ===\n")
		for section, reason := range result.Failed {
			output.WriteString(fmt.Sprintf("%s: %s\n", section, reason))
		}
	}

	if output.Len() == 0 {
		output.WriteString("No optimizations were produced.\n")
	}

	return output.String(), nil
}

func (of *OptimizationsTextFormatter) SupportedType() string {
	return "Optimizations"
}

// ResumeListTextFormatter prints stored resume metadata one row per line.
type ResumeListTextFormatter struct{}

func (rf *ResumeListTextFormatter) Format(data any) (string, error) {
	summaries, ok := data.([]store.ResumeSummary)
	if !ok {
		return "", fmt.Errorf("expected []ResumeSummary, got %T", data)
	}

	if len(summaries) == 0 {
		return "No saved resumes.\n", nil
	}

	var output strings.Builder
	for _, s := range summaries {
		line := fmt.Sprintf("%d\t%s", s.ID, s.Name)
		if s.TargetRole != "" {
			line += "\t" + s.TargetRole
		}
		line += "\t" + s.UpdatedAt.Format("2006-01-02 15:04")
		output.WriteString(line)
		output.WriteString("\n")
	}
	return output.String(), nil
}

func (rf *ResumeListTextFormatter) SupportedType() string {
	return "ResumeSummaryList"
}

// ResumeRecordTextFormatter prints one stored resume with its snapshot.
type ResumeRecordTextFormatter struct{}

func (rf *ResumeRecordTextFormatter) Format(data any) (string, error) {
	var rec store.ResumeRecord
	switch v := data.(type) {
	case store.ResumeRecord:
		rec = v
	case *store.ResumeRecord:
		rec = *v
	default:
		return "", fmt.Errorf("expected ResumeRecord, got %T", data)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Resume #%d: %s\n", rec.ID, rec.Name))
	if rec.TargetRole != "" {
		output.WriteString("Target Role: " + rec.TargetRole + "\n")
	}
	output.WriteString("Updated: " + rec.UpdatedAt.Format("2006-01-02 15:04") + "\n")

	if rec.Data.Summary != "" {
		output.WriteString("\nSummary:\n")
		output.WriteString(rec.Data.Summary)
		output.WriteString("\n")
	}
	if len(rec.Data.Experience) > 0 {
		output.WriteString("\nExperience:\n")
		for _, exp := range rec.Data.Experience {
			entry := exp.JobTitle
			if exp.Company != "" {
				entry += " at " + exp.Company
			}
			output.WriteString("- " + entry + "\n")
		}
	}
	if len(rec.Data.Education) > 0 {
		output.WriteString("\nEducation:\n")
		for _, edu := range rec.Data.Education {
			entry := edu.Degree
			if edu.Institution != "" {
				entry += ", " + edu.Institution
			}
			output.WriteString("- " + entry + "\n")
		}
	}
	if skills := rec.Data.Skills(); len(skills) > 0 {
		output.WriteString("\nSkills: " + strings.Join(skills, ", ") + "\n")
	}

	return output.String(), nil
}

func (rf *ResumeRecordTextFormatter) SupportedType() string {
	return "ResumeRecord"
}

// CoverLetterListTextFormatter prints stored cover letters one row per line.
type CoverLetterListTextFormatter struct{}

func (cf *CoverLetterListTextFormatter) Format(data any) (string, error) {
	letters, ok := data.([]store.CoverLetter)
	if !ok {
		return "", fmt.Errorf("expected []CoverLetter, got %T", data)
	}

	if len(letters) == 0 {
		return "No saved cover letters.\n", nil
	}

	var output strings.Builder
	for _, l := range letters {
		line := fmt.Sprintf("%d\t%s", l.ID, l.CompanyName)
		if l.JobTitle != "" {
			line += "\t" + l.JobTitle
		}
		if l.ResumeID != nil {
			line += fmt.Sprintf("\tresume #%d", *l.ResumeID)
		}
		line += "\t" + l.UpdatedAt.Format("2006-01-02 15:04")
		output.WriteString(line)
		output.WriteString("\n")
	}
	return output.String(), nil
}

func (cf *CoverLetterListTextFormatter) SupportedType() string {
	return "CoverLetterList"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
