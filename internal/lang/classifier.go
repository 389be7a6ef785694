// Package lang guesses the working language of a listing (French,
// Dutch or English) from its title, company and location text.
//
// This is a cascade of hand-tuned rules, not a statistical model. The
// rule order is load-bearing: strong markers beat keyword counts, and
// any English tech vocabulary beats weak French/Dutch counts because
// IT roles in Belgium are routinely advertised in English.
package lang

import (
	"strings"

	"jobradar-engine/internal/domain"
)

// Rule is one step of the cascade. Apply returns the outcome and true
// when the rule decides, or false to fall through to the next rule.
type Rule struct {
	Name  string
	Apply func(text string) (domain.Language, bool)
}

// Strong markers decide on their own, regardless of anything else in
// the text. The Dutch (m/v/x) suffix and vacancy wording are close to
// unambiguous; same for the French gender pair and application wording.
var strongDutch = []string{
	"(m/v/x)", "(m/v)", "m/v/x",
	"vacature", "solliciteer", "wij zoeken", "jij bent", "ben jij",
}

var strongFrench = []string{
	"(h/f/x)", "(h/f)", "h/f/x",
	"postulez", "offre d'emploi", "nous recherchons", "vous êtes",
}

// Weak hints, counted against each other. Brussels is deliberately in
// neither list; it gets its own fallback rule because the city is
// bilingual on paper but French-first in practice.
var frenchHints = []string{
	"liège", "namur", "charleroi", "mons", "wallonie", "wavre",
	"ingénieur", "développeur", "chef de projet", "gestionnaire",
	"conseiller", "responsable", "employé", "comptable", "infirmier",
}

var dutchHints = []string{
	"antwerpen", "gent", "leuven", "brugge", "hasselt", "vlaanderen", "mechelen",
	"medewerker", "ontwikkelaar", "verantwoordelijke", "bediende",
	"boekhouder", "verpleegkundige", "teamleider",
}

var englishHints = []string{
	"developer", "engineer", "software", "devops", "cloud", "data",
	"analyst", "consultant", "full stack", "fullstack", "backend",
	"frontend", "manager", "scientist", "architect",
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func countHits(text string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			n++
		}
	}
	return n
}

// Rules is the full cascade, in priority order. Classify walks it top
// to bottom and takes the first rule that decides; the last rule
// always does.
var Rules = []Rule{
	{
		Name: "strong_dutch_marker",
		Apply: func(text string) (domain.Language, bool) {
			if containsAny(text, strongDutch) {
				return domain.Dutch, true
			}
			return "", false
		},
	},
	{
		Name: "strong_french_marker",
		Apply: func(text string) (domain.Language, bool) {
			if containsAny(text, strongFrench) {
				return domain.French, true
			}
			return "", false
		},
	},
	{
		Name: "english_tech_vocabulary",
		Apply: func(text string) (domain.Language, bool) {
			if containsAny(text, englishHints) {
				return domain.English, true
			}
			return "", false
		},
	},
	{
		Name: "hint_count_majority",
		Apply: func(text string) (domain.Language, bool) {
			fr := countHits(text, frenchHints)
			nl := countHits(text, dutchHints)
			if fr > nl && fr > 0 {
				return domain.French, true
			}
			if nl > fr && nl > 0 {
				return domain.Dutch, true
			}
			return "", false
		},
	},
	{
		Name: "brussels_defaults_french",
		Apply: func(text string) (domain.Language, bool) {
			if strings.Contains(text, "bruxelles") || strings.Contains(text, "brussel") {
				return domain.French, true
			}
			return "", false
		},
	},
	{
		Name: "default_english",
		Apply: func(text string) (domain.Language, bool) {
			return domain.English, true
		},
	},
}

// Classify tags one listing. It is total: every input resolves to
// exactly one language.
func Classify(l domain.Listing) domain.Language {
	return ClassifyText(l.Title + " " + l.Company + " " + l.Location)
}

func ClassifyText(text string) domain.Language {
	text = strings.ToLower(text)
	for _, r := range Rules {
		if out, ok := r.Apply(text); ok {
			return out
		}
	}
	return domain.English // unreachable; the last rule always decides
}
