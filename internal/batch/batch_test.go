package batch

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"stagehit/internal/scene"
	"stagehit/internal/skin"
)

type mapResolver struct {
	skins map[string]*skin.Skin
	calls atomic.Int64
}

func (m *mapResolver) Resolve(name string) (*skin.Skin, error) {
	m.calls.Add(1)
	s, ok := m.skins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", skin.ErrNotFound, name)
	}
	return s, nil
}

func TestLoadSkins(t *testing.T) {
	res := &mapResolver{skins: map[string]*skin.Skin{
		"a":     {Name: "a", Width: 1, Height: 1, Pix: make([]uint8, 4)},
		"b":     {Name: "b", Width: 2, Height: 1, Pix: make([]uint8, 8)},
		"empty": {Name: "empty"},
	}}
	specs := []scene.Skin{
		{ID: 10, File: "a"},
		{ID: 11, File: "missing"},
		{ID: 12, File: "b"},
		{ID: 13, File: "empty"},
	}

	results := LoadSkins(Config{Resolver: res, Workers: 3, Progress: time.Millisecond}, specs)
	if len(results) != len(specs) {
		t.Fatalf("got %d results, want %d", len(results), len(specs))
	}
	if got := res.calls.Load(); got != int64(len(specs)) {
		t.Errorf("resolver called %d times, want %d", got, len(specs))
	}

	for i, r := range results {
		if r.ID != specs[i].ID || r.File != specs[i].File {
			t.Errorf("result %d = %d/%s, out of order", i, r.ID, r.File)
		}
	}
	wantOK := []bool{true, false, true, false}
	for i, r := range results {
		if r.Success != wantOK[i] {
			t.Errorf("%s: success = %v (%s), want %v", r.File, r.Success, r.Error, wantOK[i])
		}
		if !r.Success && r.Error == "" {
			t.Errorf("%s: failed without an error", r.File)
		}
	}

	skins := Skins(results)
	if len(skins) != 2 || skins[10].Name != "a" || skins[12].Name != "b" {
		t.Errorf("Skins = %v", skins)
	}
}

func TestLoadSkinsFromCache(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, "Cat.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	index, err := skin.BuildIndex(dir)
	if err != nil {
		t.Fatal(err)
	}
	specs := []scene.Skin{{ID: 1, File: "cat"}, {ID: 2, File: "cat"}}
	results := LoadSkins(Config{Resolver: skin.NewCache(index), Workers: 0}, specs)

	for _, r := range results {
		if !r.Success {
			t.Fatalf("skin %d: %s", r.ID, r.Error)
		}
		if r.Skin.Width != 3 || r.Skin.Height != 2 {
			t.Errorf("skin %d = %dx%d, want 3x2", r.ID, r.Skin.Width, r.Skin.Height)
		}
	}
	if results[0].Skin != results[1].Skin {
		t.Error("same file decoded twice")
	}
}

func TestWriteManifest(t *testing.T) {
	touching := true
	skins := []Result{
		{ID: 1, File: "a", Skin: &skin.Skin{Width: 4, Height: 2}, Success: true},
		{ID: 2, File: "b", Error: "skin: not found: b"},
	}
	queries := []scene.Result{{Name: "hit", Op: scene.OpTouchingRect, Touching: &touching}}
	m := NewManifest("stage.json", skins, queries, map[int32]string{1: "hull/1.webp"})

	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(path, m); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Manifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	if got.Scene != "stage.json" || len(got.Skins) != 2 || len(got.Queries) != 1 {
		t.Fatalf("manifest = %+v", got)
	}
	want := ManifestSkin{ID: 1, File: "a", Width: 4, Height: 2, Overlay: "hull/1.webp"}
	if got.Skins[0] != want {
		t.Errorf("skin 0 = %+v, want %+v", got.Skins[0], want)
	}
	if got.Skins[1].Error == "" || got.Skins[1].Width != 0 {
		t.Errorf("skin 1 = %+v", got.Skins[1])
	}
	if q := got.Queries[0]; q.Touching == nil || !*q.Touching {
		t.Errorf("query = %+v", q)
	}
}

func TestWriteManifestBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "manifest.json")
	if err := WriteManifest(path, Manifest{}); err == nil {
		t.Error("expected error")
	}
}
