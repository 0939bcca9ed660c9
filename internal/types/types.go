package types

// PersonalInfo carries the contact block of a resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Experience is a single work-history entry. Responsibilities holds the
// user's free-text description; BulletPoints holds the polished list.
type Experience struct {
	JobTitle         string   `json:"jobTitle"`
	Company          string   `json:"company"`
	StartDate        string   `json:"startDate,omitempty"`
	EndDate          string   `json:"endDate,omitempty"`
	Current          bool     `json:"current,omitempty"`
	Responsibilities string   `json:"responsibilities,omitempty"`
	BulletPoints     []string `json:"bulletPoints,omitempty"`
}

// Education is a single education entry, most recent first in the
// snapshot's list.
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Project is a portfolio entry. EnhancedDescription is filled by the
// project-enhancement operation and never overwrites Description.
type Project struct {
	Title               string `json:"title"`
	Duration            string `json:"duration,omitempty"`
	Technologies        string `json:"technologies,omitempty"`
	Description         string `json:"description,omitempty"`
	EnhancedDescription string `json:"enhancedDescription,omitempty"`
}

// ResumeData is the complete resume snapshot passed explicitly to every
// operation that needs resume context. It is a plain value object; no
// operation mutates a snapshot it receives.
type ResumeData struct {
	Personal        PersonalInfo `json:"personal"`
	TargetRole      string       `json:"targetRole,omitempty"`
	ExperienceYears int          `json:"experienceYears,omitempty"`
	Summary         string       `json:"summary,omitempty"`
	TechnicalSkills []string     `json:"technicalSkills,omitempty"`
	SoftSkills      []string     `json:"softSkills,omitempty"`
	Experience      []Experience `json:"experience,omitempty"`
	Education       []Education  `json:"education,omitempty"`
	Projects        []Project    `json:"projects,omitempty"`
	Certifications  []string     `json:"certifications,omitempty"`
}

// Skills returns technical and soft skills merged, technical first.
func (r *ResumeData) Skills() []string {
	merged := make([]string, 0, len(r.TechnicalSkills)+len(r.SoftSkills))
	merged = append(merged, r.TechnicalSkills...)
	merged = append(merged, r.SoftSkills...)
	return merged
}

// SummaryInput carries the fields the summary generator works from.
// TargetRole is required; the rest enrich the prompt when present.
type SummaryInput struct {
	Name            string `json:"name,omitempty"`
	TargetRole      string `json:"targetRole"`
	ExperienceYears int    `json:"experienceYears,omitempty"`
	KeySkills       string `json:"keySkills,omitempty"`
	Education       string `json:"education,omitempty"`
	ExistingSummary string `json:"existingSummary,omitempty"`
}

// BulletsInput describes one experience entry to turn into bullet points.
type BulletsInput struct {
	JobTitle         string `json:"jobTitle"`
	Company          string `json:"company,omitempty"`
	Duration         string `json:"duration,omitempty"`
	Responsibilities string `json:"responsibilities"`
}

// ProjectInput describes one project to rewrite.
type ProjectInput struct {
	Title        string `json:"title"`
	Duration     string `json:"duration,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Description  string `json:"description"`
}

// SkillsInput describes the skill-suggestion request. CurrentSkills is
// informational for the model; duplicate filtering is the caller's job.
type SkillsInput struct {
	TargetRole    string   `json:"targetRole"`
	CurrentSkills []string `json:"currentSkills,omitempty"`
}

// CoverLetterInput carries the job posting plus optional resume context.
// When Resume is set, a condensed view of it is folded into the prompt.
type CoverLetterInput struct {
	Name           string      `json:"name,omitempty"`
	Email          string      `json:"email,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	JobTitle       string      `json:"jobTitle"`
	Company        string      `json:"company,omitempty"`
	JobDescription string      `json:"jobDescription,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	Resume         *ResumeData `json:"resume,omitempty"`
}
