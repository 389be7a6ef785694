package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobradar-engine/internal/config"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/events"
	"jobradar-engine/internal/source"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	SearchStatus *atomic.Value // stores search.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Search entrypoint (injected for testability). Built fresh per
	// request from the current config by main.
	RunSearch func(ctx context.Context, cfg config.Config, req domain.SearchRequest) []domain.ScoredListing

	// Adapters visible to the diagnostics endpoint.
	Adapters func(cfg config.Config) []source.Adapter
}
