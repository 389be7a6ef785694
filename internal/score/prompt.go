package score

import (
	"fmt"
	"strings"
	"time"

	"jobradar-engine/internal/domain"
)

const promptHeader = `You are screening a job listing for a specific candidate.
Rate how well the candidate matches the listing on a 0-100 scale, where
0 means no overlap at all and 100 means an ideal match.

Respond with ONLY a JSON object, no prose, shaped exactly like:
{"score": 72, "reason": "one short sentence", "missing": ["requirement the candidate lacks"]}
`

// BuildPrompt embeds the listing and the profile projection into the
// scoring prompt. Nil profile still yields a usable prompt; the model
// then scores against an empty candidate.
func BuildPrompt(l domain.Listing, p *domain.Profile) string {
	var b strings.Builder
	b.WriteString(promptHeader)

	b.WriteString("\nJOB LISTING\n")
	fmt.Fprintf(&b, "Title: %s\n", l.Title)
	fmt.Fprintf(&b, "Company: %s\n", l.Company)
	fmt.Fprintf(&b, "Location: %s\n", l.Location)
	if l.Salary != "" {
		fmt.Fprintf(&b, "Salary: %s\n", l.Salary)
	}
	fmt.Fprintf(&b, "Source: %s\n", l.Source)

	b.WriteString("\nCANDIDATE\n")
	if p == nil {
		b.WriteString("(no profile provided)\n")
		return b.String()
	}
	if name := p.FullName(); name != "" {
		fmt.Fprintf(&b, "Name: %s\n", name)
	}
	if p.Language != "" {
		fmt.Fprintf(&b, "Preferred language: %s\n", p.Language)
	}
	if p.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", p.Summary)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	for _, e := range p.Experience {
		fmt.Fprintf(&b, "Experience: %s at %s (%s - %s)\n",
			e.Position, e.Company, yearOf(e.StartDate), endYear(e.EndDate))
	}
	for _, ed := range p.Education {
		fmt.Fprintf(&b, "Education: %s\n", ed.Degree)
	}
	return b.String()
}

func yearOf(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format("2006-01")
}

func endYear(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "present"
	}
	return t.Format("2006-01")
}
