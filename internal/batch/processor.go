package batch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"stagehit/internal/renderer"
	"stagehit/internal/scene"
	"stagehit/internal/skin"
)

// Config holds the shared resources for loading a scene's skins.
type Config struct {
	Resolver skin.Resolver
	Workers  int
	// Progress is how often a progress line is logged. Zero disables it.
	Progress time.Duration
}

// Result holds the outcome of loading one skin.
type Result struct {
	ID      int32
	File    string
	Skin    *skin.Skin
	Success bool
	Error   string
}

// LoadSkins resolves every skin using a worker pool. Results keep the order
// of specs.
func LoadSkins(cfg Config, specs []scene.Skin) []Result {
	total := len(specs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						renderer.Logger().Info("batch: loading skins",
							"done", p, "total", total, "rate", float64(p)/elapsed)
					}
				}
			}
		}()
	}

	// Worker pool
	specChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range specChan {
				results[idx] = loadSkin(cfg.Resolver, specs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range specs {
		specChan <- i
	}
	close(specChan)

	wg.Wait()
	close(done)

	renderer.Logger().Debug("batch: skins loaded",
		"total", total, "elapsed", time.Since(start))
	return results
}

func loadSkin(resolver skin.Resolver, spec scene.Skin) Result {
	s, err := resolver.Resolve(spec.File)
	if err != nil {
		return Result{
			ID:    spec.ID,
			File:  spec.File,
			Error: err.Error(),
		}
	}
	if s.Width == 0 || s.Height == 0 {
		return Result{
			ID:    spec.ID,
			File:  spec.File,
			Error: fmt.Sprintf("empty image: %s", spec.File),
		}
	}
	return Result{
		ID:      spec.ID,
		File:    spec.File,
		Skin:    s,
		Success: true,
	}
}

// Skins collects the successfully loaded skins by id.
func Skins(results []Result) map[int32]*skin.Skin {
	out := make(map[int32]*skin.Skin, len(results))
	for _, r := range results {
		if r.Success {
			out[r.ID] = r.Skin
		}
	}
	return out
}
