package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"stagehit/internal/scene"
)

// Manifest is the output of one scene run.
type Manifest struct {
	Scene   string         `json:"scene"`
	Skins   []ManifestSkin `json:"skins"`
	Queries []scene.Result `json:"queries"`
}

// ManifestSkin represents one skin in the output manifest.
type ManifestSkin struct {
	ID      int32  `json:"id"`
	File    string `json:"file"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Overlay string `json:"overlay,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewManifest combines skin load results and query answers. overlays maps a
// skin id to its overlay image path, relative to the manifest.
func NewManifest(scenePath string, skins []Result, queries []scene.Result, overlays map[int32]string) Manifest {
	m := Manifest{
		Scene:   scenePath,
		Skins:   make([]ManifestSkin, len(skins)),
		Queries: queries,
	}
	for i, r := range skins {
		entry := ManifestSkin{ID: r.ID, File: r.File, Error: r.Error, Overlay: overlays[r.ID]}
		if r.Skin != nil {
			entry.Width = r.Skin.Width
			entry.Height = r.Skin.Height
		}
		m.Skins[i] = entry
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
