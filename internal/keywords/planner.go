// Package keywords turns a sparse, optional candidate profile into a
// bounded ordered set of search terms, so one click can fan searches
// out over plausible queries without the user typing anything.
package keywords

import (
	"sort"
	"strings"

	"jobradar-engine/internal/domain"
)

// MaxTerms bounds how many terms a plan may contain; every extra term
// is a full aggregator fan-out, so this caps the whole run's cost.
const MaxTerms = 8

// skill terms added from the profile before falling back to degrees.
const maxSkillTerms = 8

// minTermsBeforeFallback: below this, education degrees are appended.
const minTermsBeforeFallback = 3

// Defaults is returned when the profile gives the planner nothing to
// work with (nil or fully empty profile).
var Defaults = []string{"software developer", "project manager", "administrative assistant"}

var qualifierWords = []string{"junior", "senior", "intern", "stagiaire"}

// Plan derives search terms from a profile, in priority order: recent
// position titles (raw plus a de-qualified variant), then top skills,
// then degrees as a fallback, then fixed defaults. Total over any
// input, including nil.
func Plan(p *domain.Profile) []string {
	var terms []string
	seen := map[string]bool{}

	add := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		terms = append(terms, t)
	}

	if p != nil {
		for _, exp := range recentFirst(p.Experience) {
			if exp.Position == "" {
				continue
			}
			add(exp.Position)
			if core := StripQualifiers(exp.Position); core != "" {
				add(core)
			}
		}

		for i, skill := range p.Skills {
			if i >= maxSkillTerms {
				break
			}
			add(skill)
		}

		if len(terms) < minTermsBeforeFallback {
			for _, edu := range p.Education {
				add(edu.Degree)
			}
		}
	}

	if len(terms) == 0 {
		return append([]string(nil), Defaults...)
	}

	if len(terms) > MaxTerms {
		terms = terms[:MaxTerms]
	}
	return terms
}

// StripQualifiers removes seniority and internship qualifiers from a
// position title ("Junior DevOps Engineer" -> "DevOps Engineer").
// Returns "" when nothing but qualifiers remains.
func StripQualifiers(title string) string {
	var kept []string
	for _, w := range strings.Fields(title) {
		if isQualifier(w) {
			continue
		}
		kept = append(kept, w)
	}
	out := strings.Join(kept, " ")
	if out == title {
		return "" // nothing stripped; no point searching the same term twice
	}
	return out
}

func isQualifier(word string) bool {
	w := strings.ToLower(strings.Trim(word, ".,;:()"))
	for _, q := range qualifierWords {
		if w == q {
			return true
		}
	}
	return false
}

func recentFirst(exps []domain.Experience) []domain.Experience {
	out := append([]domain.Experience(nil), exps...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out
}
