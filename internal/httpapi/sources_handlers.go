package httpapi

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"jobradar-engine/internal/config"
	"jobradar-engine/internal/source"
)

type SourcesHandler struct {
	CfgVal   *atomic.Value // config.Config
	Adapters func(cfg config.Config) []source.Adapter
}

type sourceInfo struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// List probes every configured adapter concurrently. Pure diagnostics;
// searches never consult these probe results.
func (h SourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	adapters := h.Adapters(cfg)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	out := make([]sourceInfo, len(adapters))
	var wg sync.WaitGroup
	for i, ad := range adapters {
		wg.Add(1)
		go func(i int, ad source.Adapter) {
			defer wg.Done()
			out[i] = sourceInfo{Name: ad.Name(), Available: ad.Available(ctx)}
		}(i, ad)
	}
	wg.Wait()

	writeJSON(w, out)
}
