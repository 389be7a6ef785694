package domain

import "time"

// Profile is the read-only projection of the candidate profile the
// engine consumes. The UI owns the full record; the engine never
// writes any of this back.
type Profile struct {
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName"`
	Summary    string       `json:"summary"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Language   string       `json:"language"`
}

type Experience struct {
	Position  string     `json:"position"`
	Company   string     `json:"company"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

type Education struct {
	Degree string `json:"degree"`
}

func (p *Profile) FullName() string {
	if p == nil {
		return ""
	}
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Empty reports whether the profile carries nothing the keyword
// planner could use.
func (p *Profile) Empty() bool {
	return p == nil || (len(p.Skills) == 0 && len(p.Experience) == 0 && len(p.Education) == 0)
}
