package generate

import (
	"fmt"
	"strings"

	"smartresume/internal/types"
)

// Prompt builders are pure functions over their inputs: same input,
// same prompt. Optional fields that are empty are omitted entirely
// rather than rendered as blank lines.

const plainTextContract = "Return plain text only. Do not use any markdown formatting (no asterisks, no headers, no bullets markup)."

// BuildSummaryPrompt builds the professional-summary prompt.
func BuildSummaryPrompt(in types.SummaryInput) string {
	var b strings.Builder

	b.WriteString("Write a professional resume summary for the following candidate.\n\n")
	if in.Name != "" {
		fmt.Fprintf(&b, "Name: %s\n", in.Name)
	}
	fmt.Fprintf(&b, "Target Role: %s\n", in.TargetRole)
	if in.ExperienceYears > 0 {
		fmt.Fprintf(&b, "Years of Experience: %d\n", in.ExperienceYears)
	}
	if in.KeySkills != "" {
		fmt.Fprintf(&b, "Key Skills: %s\n", in.KeySkills)
	}
	if in.Education != "" {
		fmt.Fprintf(&b, "Education: %s\n", in.Education)
	}
	if in.ExistingSummary != "" {
		fmt.Fprintf(&b, "Current Summary (improve on it): %s\n", in.ExistingSummary)
	}

	b.WriteString("\nRequirements:\n")
	b.WriteString("- 3-4 lines, roughly 50-70 words\n")
	b.WriteString("- Highlight the skills and experience most relevant to the target role\n")
	b.WriteString("- Use confident, action-oriented language\n")
	b.WriteString("- Write in first person without using the word \"I\"\n")
	b.WriteString("- " + plainTextContract + "\n")

	return b.String()
}

// BuildBulletsPrompt builds the experience bullet-point prompt.
func BuildBulletsPrompt(in types.BulletsInput) string {
	var b strings.Builder

	b.WriteString("Turn the following job responsibilities into polished resume bullet points.\n\n")
	fmt.Fprintf(&b, "Job Title: %s\n", in.JobTitle)
	if in.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", in.Company)
	}
	if in.Duration != "" {
		fmt.Fprintf(&b, "Duration: %s\n", in.Duration)
	}
	fmt.Fprintf(&b, "Responsibilities: %s\n", in.Responsibilities)

	b.WriteString("\nRequirements:\n")
	b.WriteString("- Produce 3-5 bullet points, one per line, each starting with \"- \"\n")
	b.WriteString("- Start each bullet with a strong action verb\n")
	b.WriteString("- Quantify impact with numbers where the input supports it; never invent figures\n")
	b.WriteString("- " + plainTextContract + "\n")

	return b.String()
}

// BuildProjectPrompt builds the project-description enhancement prompt.
func BuildProjectPrompt(in types.ProjectInput) string {
	var b strings.Builder

	b.WriteString("Rewrite the following project description for a resume.\n\n")
	fmt.Fprintf(&b, "Project: %s\n", in.Title)
	if in.Duration != "" {
		fmt.Fprintf(&b, "Duration: %s\n", in.Duration)
	}
	if in.Technologies != "" {
		fmt.Fprintf(&b, "Technologies: %s\n", in.Technologies)
	}
	fmt.Fprintf(&b, "Description: %s\n", in.Description)

	b.WriteString("\nRequirements:\n")
	b.WriteString("- Write 2-3 sentences as one paragraph\n")
	b.WriteString("- Emphasize the problem solved, the approach, and the outcome\n")
	b.WriteString("- Mention the technologies naturally, not as a list\n")
	b.WriteString("- " + plainTextContract + "\n")

	return b.String()
}

// BuildSkillsPrompt builds the skill-suggestion prompt.
func BuildSkillsPrompt(in types.SkillsInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Suggest skills for a resume targeting the role of %s.\n\n", in.TargetRole)
	if len(in.CurrentSkills) > 0 {
		fmt.Fprintf(&b, "The candidate already lists: %s\n\n", JoinSkills(in.CurrentSkills))
	}

	b.WriteString("Requirements:\n")
	b.WriteString("- Suggest 8-10 skills that are in demand for this role\n")
	b.WriteString("- Prefer skills the candidate has not already listed\n")
	b.WriteString("- Return a single comma-separated line, no numbering and no explanations\n")
	b.WriteString("- " + plainTextContract + "\n")

	return b.String()
}

// BuildQualityPrompt builds the resume quality-analysis prompt from a
// snapshot. It describes what the resume contains rather than pasting
// the whole document.
func BuildQualityPrompt(data types.ResumeData) string {
	var b strings.Builder

	b.WriteString("Analyze the quality of the following resume and report on it.\n\n")
	if data.TargetRole != "" {
		fmt.Fprintf(&b, "Target Role: %s\n", data.TargetRole)
	}
	if data.ExperienceYears > 0 {
		fmt.Fprintf(&b, "Years of Experience: %d\n", data.ExperienceYears)
	}
	if data.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", data.Summary)
	} else {
		b.WriteString("Summary: (missing)\n")
	}
	if skills := data.Skills(); len(skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", JoinSkills(skills))
	}
	fmt.Fprintf(&b, "Experience entries: %d\n", len(data.Experience))
	for _, exp := range data.Experience {
		fmt.Fprintf(&b, "- %s at %s (%d bullet points)\n", exp.JobTitle, exp.Company, len(exp.BulletPoints))
	}
	fmt.Fprintf(&b, "Education entries: %d\n", len(data.Education))
	fmt.Fprintf(&b, "Projects: %d\n", len(data.Projects))
	if len(data.Certifications) > 0 {
		fmt.Fprintf(&b, "Certifications: %s\n", JoinSkills(data.Certifications))
	}

	b.WriteString("\nRequirements:\n")
	b.WriteString("- Start with an overall strength rating from 1 to 10\n")
	b.WriteString("- List the resume's strengths\n")
	b.WriteString("- List concrete improvements, most impactful first\n")
	b.WriteString("- Suggest keywords worth adding for the target role\n")
	b.WriteString("- " + plainTextContract + "\n")

	return b.String()
}

// BuildAchievementPrompt builds the achievement-restatement prompt.
func BuildAchievementPrompt(text string) string {
	var b strings.Builder

	b.WriteString("Rewrite the following achievement as a single polished resume line.\n\n")
	fmt.Fprintf(&b, "Achievement: %s\n", text)

	b.WriteString("\nRequirements:\n")
	b.WriteString("- One line only\n")
	b.WriteString("- Lead with the result, keep any numbers from the input\n")
	b.WriteString("- " + plainTextContract + "\n")

	return b.String()
}
