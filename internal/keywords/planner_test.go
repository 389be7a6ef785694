package keywords

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar-engine/internal/domain"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestPlanEmptyProfileFallsBackToDefaults(t *testing.T) {
	assert.Equal(t, Defaults, Plan(nil))
	assert.Equal(t, Defaults, Plan(&domain.Profile{FirstName: "Ana"}))
}

func TestPlanIsStableForSameInput(t *testing.T) {
	p := &domain.Profile{
		Skills: []string{"Python", "SQL"},
		Experience: []domain.Experience{
			{Position: "Data Analyst", StartDate: date(2022, time.March)},
		},
	}
	assert.Equal(t, Plan(p), Plan(p))
}

func TestPlanPrefersRecentTitlesThenSkills(t *testing.T) {
	p := &domain.Profile{
		Skills: []string{"Kubernetes", "Terraform"},
		Experience: []domain.Experience{
			{Position: "Sysadmin", StartDate: date(2016, time.January)},
			{Position: "Platform Engineer", StartDate: date(2023, time.June)},
		},
	}
	terms := Plan(p)
	require.NotEmpty(t, terms)
	assert.Equal(t, "Platform Engineer", terms[0], "most recent title first")

	idxTitle := indexOf(terms, "Sysadmin")
	idxSkill := indexOf(terms, "Kubernetes")
	require.GreaterOrEqual(t, idxTitle, 0)
	require.GreaterOrEqual(t, idxSkill, 0)
	assert.Less(t, idxTitle, idxSkill, "titles come before skills")
}

func TestPlanAddsDeQualifiedTitleVariant(t *testing.T) {
	p := &domain.Profile{
		Experience: []domain.Experience{
			{Position: "Junior DevOps Engineer", StartDate: date(2023, time.January)},
		},
	}
	terms := Plan(p)
	assert.Contains(t, terms, "Junior DevOps Engineer")
	assert.Contains(t, terms, "DevOps Engineer")
}

func TestPlanDegreeFallbackOnlyWhenSparse(t *testing.T) {
	sparse := &domain.Profile{
		Skills:    []string{"Excel"},
		Education: []domain.Education{{Degree: "Bachelor Accountancy"}},
	}
	assert.Contains(t, Plan(sparse), "Bachelor Accountancy")

	rich := &domain.Profile{
		Skills:    []string{"Go", "Rust", "Kafka", "Postgres"},
		Education: []domain.Education{{Degree: "Master CS"}},
	}
	assert.NotContains(t, Plan(rich), "Master CS")
}

func TestPlanBoundedAndDeduplicated(t *testing.T) {
	p := &domain.Profile{
		Skills: []string{"Go", "Go", "Rust", "Kafka", "Postgres", "Redis", "Docker", "K8s", "AWS", "GCP"},
		Experience: []domain.Experience{
			{Position: "Backend Developer", StartDate: date(2024, time.January)},
			{Position: "Backend Developer", StartDate: date(2020, time.January)},
		},
	}
	terms := Plan(p)
	assert.LessOrEqual(t, len(terms), MaxTerms)

	seen := map[string]bool{}
	for _, term := range terms {
		assert.False(t, seen[term], "duplicate term %q", term)
		seen[term] = true
	}
}

func TestStripQualifiers(t *testing.T) {
	assert.Equal(t, "DevOps Engineer", StripQualifiers("Junior DevOps Engineer"))
	assert.Equal(t, "Comptable", StripQualifiers("Comptable senior"))
	assert.Equal(t, "", StripQualifiers("Project Manager"), "no qualifier means no variant")
	assert.Equal(t, "", StripQualifiers("Senior"), "all-qualifier titles collapse to nothing")
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}
