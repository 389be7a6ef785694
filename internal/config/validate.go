package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of the config plus
// whatever it found wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Search.Languages = trimList(out.Search.Languages)
	out.Sources.MailAlert.SubjectAny = trimList(out.Sources.MailAlert.SubjectAny)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Search.MaxResults <= 0 {
		res.addErr("search.max_results must be > 0")
	} else if out.Search.MaxResults > 500 {
		res.addWarn("search.max_results is very high (%d); the UI may struggle.", out.Search.MaxResults)
	}
	if out.Search.KeywordTimeoutSeconds <= 0 {
		res.addErr("search.keyword_timeout_seconds must be > 0")
	}
	if out.Search.RatePerSecond <= 0 {
		res.addErr("search.rate_per_second must be > 0")
	} else if out.Search.RatePerSecond > 5 {
		res.addWarn("search.rate_per_second is high (%.1f); boards may rate-limit or ban.", out.Search.RatePerSecond)
	}
	for _, l := range out.Search.Languages {
		switch strings.ToLower(l) {
		case "fr", "nl", "en":
		default:
			res.addErr("search.languages: unknown tag %q (want fr, nl or en)", l)
		}
	}

	if !anySourceEnabled(out) {
		res.addWarn("no sources enabled; searches will return nothing.")
	}

	if out.Scoring.Enabled {
		if strings.TrimSpace(out.Scoring.Command) == "" {
			res.addErr("scoring.command is required when scoring.enabled=true")
		}
		if out.Scoring.Concurrency <= 0 {
			res.addErr("scoring.concurrency must be > 0")
		} else if out.Scoring.Concurrency > 16 {
			res.addWarn("scoring.concurrency is high (%d); local models rarely keep up.", out.Scoring.Concurrency)
		}
		if out.Scoring.TopN <= 0 {
			res.addErr("scoring.top_n must be > 0")
		}
		if out.Scoring.BatchTimeoutSeconds <= 0 {
			res.addErr("scoring.batch_timeout_seconds must be > 0")
		}
	}

	ma := out.Sources.MailAlert
	if ma.Enabled {
		if strings.TrimSpace(ma.IMAPHost) == "" {
			res.addErr("sources.mailalert.imap_host is required when mailalert is enabled")
		}
		if ma.IMAPPort == 0 {
			res.addErr("sources.mailalert.imap_port is required when mailalert is enabled")
		}
		if strings.TrimSpace(ma.Username) == "" {
			res.addErr("sources.mailalert.username is required when mailalert is enabled")
		}
		if strings.TrimSpace(ma.Mailbox) == "" {
			res.addErr("sources.mailalert.mailbox is required when mailalert is enabled")
		}
		if len(ma.SubjectAny) == 0 {
			res.addWarn("sources.mailalert.subject_any is empty; the mail adapter may find nothing.")
		}
	}

	if out.History.KeepRuns < 0 {
		res.addErr("history.keep_runs must be >= 0")
	}

	return out, res
}

func anySourceEnabled(cfg Config) bool {
	return cfg.Sources.ICTJob.Enabled ||
		cfg.Sources.Jobat.Enabled ||
		cfg.Sources.StepStone.Enabled ||
		cfg.Sources.VDAB.Enabled ||
		cfg.Sources.Actiris.Enabled ||
		cfg.Sources.MailAlert.Enabled
}
