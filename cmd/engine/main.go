package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"jobradar-engine/internal/aggregate"
	"jobradar-engine/internal/config"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/events"
	"jobradar-engine/internal/httpapi"
	"jobradar-engine/internal/score"
	"jobradar-engine/internal/search"
	"jobradar-engine/internal/secrets"
	"jobradar-engine/internal/source"
	"jobradar-engine/internal/source/actiris"
	"jobradar-engine/internal/source/ictjob"
	"jobradar-engine/internal/source/jobat"
	"jobradar-engine/internal/source/mailalert"
	"jobradar-engine/internal/source/stepstone"
	"jobradar-engine/internal/source/util"
	"jobradar-engine/internal/source/vdab"
	"jobradar-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell passes
	// one), else local folder.
	dataDir := os.Getenv("JOBRADAR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would fight over the
	// sqlite file and the boards' rate budget.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already holds %s", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, wmsg := range vr.Warnings {
		log.Printf("[config] warning: %s", wmsg)
	}
	if !vr.OK() {
		log.Fatalf("config invalid: %v", vr.Errors)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "jobradar.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	var searchStatus atomic.Value
	searchStatus.Store(search.Status{})

	deps := httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		CfgVal:       &cfgVal,
		SearchStatus: &searchStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		RunSearch: func(ctx context.Context, cfg config.Config, req domain.SearchRequest) []domain.ScoredListing {
			svc := buildService(cfg, hub)
			return svc.Search(ctx, req)
		},
		Adapters: buildAdapters,
	}

	handler := httpapi.Chain(
		httpapi.NewMux(deps),
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}

// buildAdapters assembles the enabled source adapters for one config
// snapshot. The limiter is shared so every keyword pass stays under
// one per-host budget.
func buildAdapters(cfg config.Config) []source.Adapter {
	limiter := util.NewHostLimiter(cfg.Search.RatePerSecond, cfg.Search.RateBurst)

	var adapters []source.Adapter
	if cfg.Sources.ICTJob.Enabled {
		adapters = append(adapters, ictjob.New(limiter))
	}
	if cfg.Sources.Jobat.Enabled {
		adapters = append(adapters, jobat.New(limiter))
	}
	if cfg.Sources.StepStone.Enabled {
		adapters = append(adapters, stepstone.New(limiter))
	}
	if cfg.Sources.VDAB.Enabled {
		adapters = append(adapters, vdab.New(limiter))
	}
	if cfg.Sources.Actiris.Enabled {
		adapters = append(adapters, actiris.New(limiter))
	}
	if ma := cfg.Sources.MailAlert; ma.Enabled {
		adapters = append(adapters, mailalert.New(mailalert.Config{
			Host:       ma.IMAPHost,
			Port:       ma.IMAPPort,
			Username:   ma.Username,
			Mailbox:    ma.Mailbox,
			SubjectAny: ma.SubjectAny,
			Password: func() (string, error) {
				return secrets.GetIMAPPassword(ma.Username)
			},
		}))
	}
	return adapters
}

func buildService(cfg config.Config, hub *events.Hub) *search.Service {
	agg := aggregate.New(buildAdapters(cfg), cfg.KeywordTimeout())

	var runner score.Runner // nil keeps every listing unscored
	if cfg.Scoring.Enabled {
		var env []string
		if cfg.Scoring.APIKeyEnv != "" {
			if key, err := secrets.GetScoringAPIKey(); err == nil {
				env = append(env, cfg.Scoring.APIKeyEnv+"="+key)
			} else {
				log.Printf("[score] api key not available: %v", err)
			}
		}
		runner = &score.CLIRunner{
			Command: cfg.Scoring.Command,
			Args:    cfg.Scoring.Args,
			Env:     env,
		}
	}

	pipe := score.NewPipeline(runner, cfg.Scoring.Concurrency, cfg.Scoring.TopN, cfg.ScoringBatchTimeout())

	svc := search.NewService(agg, pipe)
	svc.OnEvent = func(typ string, data map[string]any) {
		hub.Publish(events.MakeEvent("", typ, 1, data))
	}
	return svc
}
