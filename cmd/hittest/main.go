package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"

	"stagehit/internal/batch"
	"stagehit/internal/config"
	"stagehit/internal/overlay"
	"stagehit/internal/renderer"
	"stagehit/internal/scene"
	"stagehit/internal/skin"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Scene file (default: scene.json)")
	skinDir := flag.String("skins", "", "Skin image directory (default: skins)")
	outputDir := flag.String("output", "", "Output directory (default: out)")
	baseDir := flag.String("base", "", "Base directory for relative paths (default: cwd)")
	workers := flag.Int("workers", 0, "Number of skin loading goroutines (default: NumCPU)")
	scale := flag.Int("scale", 0, "Hull overlay scale (default: 4)")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error")
	noOverlay := flag.Bool("no-overlay", false, "Skip writing hull overlays")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:      *baseDir,
		SkinDir:      *skinDir,
		SceneFile:    *sceneFile,
		OutputDir:    *outputDir,
		OverlayScale: *scale,
		Workers:      *workers,
		LogLevel:     *logLevel,
	})

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	renderer.SetLogger(logger)
	gg.SetLogger(logger)

	sc, err := scene.Load(cfg.SceneFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	// Build skin index
	index, err := skin.BuildIndex(cfg.SkinDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error indexing skins: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Skins: %d indexed in %s\n", index.Len(), cfg.SkinDir)

	fmt.Printf("Scene: %s\n", cfg.SceneFile)
	fmt.Printf("Skins: %d, Drawables: %d, Queries: %d, Workers: %d\n",
		len(sc.Skins), len(sc.Drawables), len(sc.Queries), cfg.Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	loaded := batch.LoadSkins(batch.Config{
		Resolver: skin.NewCache(index),
		Workers:  cfg.Workers,
		Progress: 2 * time.Second,
	}, sc.Skins)

	failed := 0
	for _, r := range loaded {
		if !r.Success {
			failed++
			logger.Warn("skin failed to load", "skin", r.ID, "file", r.File, "err", r.Error)
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d of %d skins failed to load\n", failed, len(loaded))
		os.Exit(1)
	}

	r := renderer.New()
	if err := sc.Apply(r, batch.Skins(loaded)); err != nil {
		fmt.Fprintf(os.Stderr, "Error building stage: %v\n", err)
		os.Exit(1)
	}

	results := sc.Run(r)
	queryErrors := 0
	for _, res := range results {
		fmt.Printf("  %-24s %-22s %s\n", res.Name, res.Op, describe(res))
		if res.Error != "" {
			queryErrors++
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	overlays := make(map[int32]string)
	if !*noOverlay {
		overlays = writeOverlays(r, sc, cfg.OutputDir, cfg.OverlayScale)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	manifest := batch.NewManifest(cfg.SceneFile, loaded, results, overlays)
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if queryErrors > 0 {
		os.Exit(1)
	}
}

// writeOverlays renders each skin's silhouette with the hull of the first
// drawable showing it. Paths in the result are relative to outDir.
func writeOverlays(r *renderer.Renderer, sc *scene.Scene, outDir string, scale int) map[int32]string {
	out := make(map[int32]string)
	for _, d := range sc.Drawables {
		if d.Skin == nil || *d.Skin == renderer.IDNone {
			continue
		}
		if _, done := out[*d.Skin]; done {
			continue
		}
		s := r.DrawableSilhouette(d.ID)
		if s.Empty() {
			continue
		}

		img, err := overlay.Render(s, r.ConvexHull(d.ID), scale)
		if err != nil {
			renderer.Logger().Warn("overlay render failed", "skin", *d.Skin, "err", err)
			continue
		}
		rel := filepath.Join("hull", fmt.Sprintf("%d.webp", *d.Skin))
		if err := overlay.WriteWebP(filepath.Join(outDir, rel), img); err != nil {
			renderer.Logger().Warn("overlay write failed", "skin", *d.Skin, "err", err)
			continue
		}
		out[*d.Skin] = filepath.ToSlash(rel)
	}
	return out
}

func describe(res scene.Result) string {
	switch {
	case res.Error != "":
		return "ERROR " + res.Error
	case res.Touching != nil:
		return fmt.Sprintf("%v", *res.Touching)
	case res.Picked != nil:
		if *res.Picked == renderer.IDNone {
			return "none"
		}
		return fmt.Sprintf("%d", *res.Picked)
	case res.Bounds != nil:
		b := res.Bounds
		return fmt.Sprintf("[%.2f, %.2f] x [%.2f, %.2f]", b.Left, b.Right, b.Bottom, b.Top)
	case res.Color != "":
		return res.Color
	default:
		return fmt.Sprintf("%d hull points", len(res.Hull)/2)
	}
}
