package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type SourceToggle struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type MailAlert struct {
	Enabled    bool     `yaml:"enabled" json:"enabled"`
	IMAPHost   string   `yaml:"imap_host" json:"imap_host"`
	IMAPPort   int      `yaml:"imap_port" json:"imap_port"`
	Username   string   `yaml:"username" json:"username"`
	Mailbox    string   `yaml:"mailbox" json:"mailbox"`
	SubjectAny []string `yaml:"subject_any" json:"subject_any"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Search struct {
		MaxResults            int      `yaml:"max_results" json:"max_results"`
		KeywordTimeoutSeconds int      `yaml:"keyword_timeout_seconds" json:"keyword_timeout_seconds"`
		RatePerSecond         float64  `yaml:"rate_per_second" json:"rate_per_second"`
		RateBurst             int      `yaml:"rate_burst" json:"rate_burst"`
		Languages             []string `yaml:"languages" json:"languages"`
	} `yaml:"search" json:"search"`

	Sources struct {
		ICTJob    SourceToggle `yaml:"ictjob" json:"ictjob"`
		Jobat     SourceToggle `yaml:"jobat" json:"jobat"`
		StepStone SourceToggle `yaml:"stepstone" json:"stepstone"`
		VDAB      SourceToggle `yaml:"vdab" json:"vdab"`
		Actiris   SourceToggle `yaml:"actiris" json:"actiris"`
		MailAlert MailAlert    `yaml:"mailalert" json:"mailalert"`
	} `yaml:"sources" json:"sources"`

	Scoring struct {
		Enabled             bool     `yaml:"enabled" json:"enabled"`
		Command             string   `yaml:"command" json:"command"`
		Args                []string `yaml:"args" json:"args"`
		APIKeyEnv           string   `yaml:"api_key_env" json:"api_key_env"`
		Concurrency         int      `yaml:"concurrency" json:"concurrency"`
		TopN                int      `yaml:"top_n" json:"top_n"`
		BatchTimeoutSeconds int      `yaml:"batch_timeout_seconds" json:"batch_timeout_seconds"`
	} `yaml:"scoring" json:"scoring"`

	History struct {
		KeepRuns int `yaml:"keep_runs" json:"keep_runs"`
	} `yaml:"history" json:"history"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) KeywordTimeout() time.Duration {
	return time.Duration(c.Search.KeywordTimeoutSeconds) * time.Second
}

func (c Config) ScoringBatchTimeout() time.Duration {
	return time.Duration(c.Scoring.BatchTimeoutSeconds) * time.Second
}
