package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCfg() Config {
	var c Config
	c.App.Port = 38472
	c.Search.MaxResults = 50
	c.Search.KeywordTimeoutSeconds = 45
	c.Search.RatePerSecond = 1
	c.Search.RateBurst = 2
	c.Search.Languages = []string{"fr", "en"}
	c.Sources.ICTJob.Enabled = true
	c.Scoring.Enabled = true
	c.Scoring.Command = "ollama"
	c.Scoring.Concurrency = 5
	c.Scoring.TopN = 5
	c.Scoring.BatchTimeoutSeconds = 180
	c.History.KeepRuns = 50
	return c
}

func TestNormalizeAndValidateAcceptsGoodConfig(t *testing.T) {
	_, res := NormalizeAndValidate(validCfg())
	assert.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestNormalizeTrimsAndDedupsLists(t *testing.T) {
	c := validCfg()
	c.Search.Languages = []string{" fr ", "", "FR", "en"}
	out, res := NormalizeAndValidate(c)
	require.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, []string{"fr", "en"}, out.Search.Languages)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.App.Port = 0 }},
		{"port too high", func(c *Config) { c.App.Port = 70000 }},
		{"max results zero", func(c *Config) { c.Search.MaxResults = 0 }},
		{"timeout zero", func(c *Config) { c.Search.KeywordTimeoutSeconds = 0 }},
		{"rate zero", func(c *Config) { c.Search.RatePerSecond = 0 }},
		{"unknown language", func(c *Config) { c.Search.Languages = []string{"de"} }},
		{"scoring without command", func(c *Config) { c.Scoring.Command = "  " }},
		{"scoring topn zero", func(c *Config) { c.Scoring.TopN = 0 }},
		{"negative keep_runs", func(c *Config) { c.History.KeepRuns = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCfg()
			tt.mutate(&c)
			_, res := NormalizeAndValidate(c)
			assert.False(t, res.OK())
		})
	}
}

func TestValidateScoringRulesOnlyWhenEnabled(t *testing.T) {
	c := validCfg()
	c.Scoring.Enabled = false
	c.Scoring.Command = ""
	c.Scoring.TopN = 0
	_, res := NormalizeAndValidate(c)
	assert.True(t, res.OK(), "disabled scoring must not be validated: %v", res.Errors)
}

func TestValidateMailAlertRequiredFields(t *testing.T) {
	c := validCfg()
	c.Sources.MailAlert.Enabled = true
	_, res := NormalizeAndValidate(c)
	require.False(t, res.OK())
	assert.GreaterOrEqual(t, len(res.Errors), 3, "host, username and mailbox are required")
}

func TestValidateWarnsWhenNoSourcesEnabled(t *testing.T) {
	c := validCfg()
	c.Sources.ICTJob.Enabled = false
	_, res := NormalizeAndValidate(c)
	assert.True(t, res.OK(), "no sources is a warning, not an error")
	assert.NotEmpty(t, res.Warnings)
}
