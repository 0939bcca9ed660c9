package generate

import (
	"regexp"
	"strings"
)

var (
	boldRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe  = regexp.MustCompile(`\*([^*\n]+)\*`)
	underRe   = regexp.MustCompile(`__([^_]+)__`)
	codeRe    = regexp.MustCompile("`([^`]*)`")
	headingRe = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	blankRe   = regexp.MustCompile(`\n{3,}`)

	bulletPrefixRe = regexp.MustCompile(`^[-*\x{2022}\x{2192}\x{25B8}\x{25AA}\s]+`)
)

// typographic-to-ASCII replacements applied after markdown stripping
var punctuationReplacer = strings.NewReplacer(
	"—", "-", // em dash
	"–", "-", // en dash
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"…", "...",
	"•", "-",
	"▪", "-",
	"▸", "-",
	"→", "-",
	" ", " ",
)

// Sanitize strips markdown decoration from model output and normalizes
// typographic punctuation to plain ASCII. Applying it to already-clean
// text returns the text unchanged.
func Sanitize(text string) string {
	s := boldRe.ReplaceAllString(text, "$1")
	s = underRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = codeRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = punctuationReplacer.Replace(s)
	s = blankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// SplitBullets splits model output into cleaned bullet lines, dropping
// bullet glyphs, stray list markers and blank lines.
func SplitBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = bulletPrefixRe.ReplaceAllString(strings.TrimSpace(line), "")
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

// SplitSkills parses a comma- or newline-separated skill list. Entries
// are trimmed and empties dropped; duplicate filtering is the caller's
// concern.
func SplitSkills(text string) []string {
	text = strings.ReplaceAll(text, "\n", ",")
	var skills []string
	for _, part := range strings.Split(text, ",") {
		part = bulletPrefixRe.ReplaceAllString(strings.TrimSpace(part), "")
		part = strings.TrimSuffix(strings.TrimSpace(part), ".")
		if part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// JoinSkills renders a skill list back to the comma-separated form used
// in prompts.
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

// truncate shortens s to at most n runes, appending "..." when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
