package generate

import (
	"context"
	"fmt"
	"strings"

	"smartresume/internal/types"
)

// How much resume context is folded into a cover letter prompt.
const (
	coverLetterMaxExperiences = 2
	coverLetterMaxBullets     = 2
	coverLetterMaxProjects    = 2
	coverLetterSnippetLen     = 160
)

// coverLetterContext is the condensed view of a resume snapshot used by
// the cover letter prompt.
type coverLetterContext struct {
	Name        string
	TargetRole  string
	Summary     string
	Skills      string
	Experiences []string
	Education   string
	Projects    []string
}

// condenseResume reduces a snapshot to the highlights worth citing in a
// cover letter: the top two experiences with at most two bullets each,
// the most recent education entry, and up to two projects.
func condenseResume(r *types.ResumeData) coverLetterContext {
	cctx := coverLetterContext{
		Name:       r.Personal.Name,
		TargetRole: r.TargetRole,
		Summary:    r.Summary,
		Skills:     JoinSkills(r.Skills()),
	}

	for i, exp := range r.Experience {
		if i >= coverLetterMaxExperiences {
			break
		}
		line := exp.JobTitle
		if exp.Company != "" {
			line += " at " + exp.Company
		}
		if len(exp.BulletPoints) > 0 {
			bullets := exp.BulletPoints
			if len(bullets) > coverLetterMaxBullets {
				bullets = bullets[:coverLetterMaxBullets]
			}
			line += ": " + strings.Join(bullets, "; ")
		} else if exp.Responsibilities != "" {
			line += ": " + truncate(exp.Responsibilities, coverLetterSnippetLen)
		}
		cctx.Experiences = append(cctx.Experiences, line)
	}

	if len(r.Education) > 0 {
		edu := r.Education[0]
		line := edu.Degree
		if edu.Field != "" {
			line += " in " + edu.Field
		}
		if edu.Institution != "" {
			line += ", " + edu.Institution
		}
		if edu.Year != "" {
			line += " (" + edu.Year + ")"
		}
		cctx.Education = line
	}

	for i, proj := range r.Projects {
		if i >= coverLetterMaxProjects {
			break
		}
		desc := proj.Description
		if proj.EnhancedDescription != "" {
			desc = proj.EnhancedDescription
		}
		line := proj.Title
		if desc != "" {
			line += ": " + truncate(desc, coverLetterSnippetLen)
		}
		cctx.Projects = append(cctx.Projects, line)
	}

	return cctx
}

// BuildCoverLetterPrompt builds the cover letter prompt. Resume context
// is condensed, optional fields are omitted when empty.
func BuildCoverLetterPrompt(in types.CoverLetterInput) string {
	var b strings.Builder

	// Explicit input wins; the snapshot fills the gaps.
	name := in.Name
	if name == "" && in.Resume != nil {
		name = in.Resume.Personal.Name
	}

	b.WriteString("Write a cover letter for the following job application.\n\n")
	if name != "" {
		fmt.Fprintf(&b, "Candidate: %s\n", name)
	}
	fmt.Fprintf(&b, "Position: %s\n", in.JobTitle)
	if in.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", in.Company)
	}
	if in.JobDescription != "" {
		fmt.Fprintf(&b, "\nJob Description:\n%s\n", in.JobDescription)
	}

	if in.Resume != nil {
		cctx := condenseResume(in.Resume)
		b.WriteString("\nCandidate background:\n")
		if cctx.TargetRole != "" {
			fmt.Fprintf(&b, "Target role: %s\n", cctx.TargetRole)
		}
		if cctx.Summary != "" {
			fmt.Fprintf(&b, "Summary: %s\n", cctx.Summary)
		}
		if cctx.Skills != "" {
			fmt.Fprintf(&b, "Skills: %s\n", cctx.Skills)
		}
		for _, exp := range cctx.Experiences {
			fmt.Fprintf(&b, "Experience: %s\n", exp)
		}
		if cctx.Education != "" {
			fmt.Fprintf(&b, "Education: %s\n", cctx.Education)
		}
		for _, proj := range cctx.Projects {
			fmt.Fprintf(&b, "Project: %s\n", proj)
		}
	}

	if in.Notes != "" {
		fmt.Fprintf(&b, "\nAdditional notes from the candidate: %s\n", in.Notes)
	}

	b.WriteString("\nRequirements:\n")
	b.WriteString("- 3-4 paragraphs, professional but warm in tone\n")
	b.WriteString("- Open with genuine interest in the position")
	if in.Company != "" {
		b.WriteString(" and the company")
	}
	b.WriteString("\n")
	b.WriteString("- Connect the candidate's background to the role; never invent experience\n")
	b.WriteString("- Close with a call to action\n")
	b.WriteString("- Do not include addresses or a date header\n")
	b.WriteString("- " + plainTextContract + "\n")

	return b.String()
}

// CoverLetter generates a cover letter for a job posting, optionally
// grounded in a resume snapshot.
func (g *Generator) CoverLetter(ctx context.Context, in types.CoverLetterInput) (res Result) {
	defer g.recoverResult(&res, "cover_letter")

	if strings.TrimSpace(in.JobTitle) == "" {
		return failureResult("Please provide the job title first.")
	}

	text, err := g.client.GenerateWithRetry(ctx, BuildCoverLetterPrompt(in))
	if err != nil {
		return failureResult(messageFor(err))
	}
	return successResult(Sanitize(text))
}
