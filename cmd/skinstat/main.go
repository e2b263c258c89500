package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"stagehit/internal/drawable"
	"stagehit/internal/overlay"
	"stagehit/internal/renderer"
	"stagehit/internal/skin"
)

func main() {
	overlayDir := flag.String("overlay", "", "Write <stem>.webp hull overlays to this directory")
	scale := flag.Int("scale", 8, "Overlay scale")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: skinstat [-overlay dir] image...")
		os.Exit(2)
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := inspect(path, *overlayDir, *scale); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func inspect(path, overlayDir string, scale int) error {
	s, err := skin.Load(path)
	if err != nil {
		return err
	}

	st := skin.Analyze(s)
	total := st.Width * st.Height
	fmt.Printf("%s: %dx%d, premultiplied=%v\n", s.Name, st.Width, st.Height, s.Premultiplied)
	if total == 0 {
		return nil
	}
	fmt.Printf("  alpha: min=%d max=%d opaque=%d translucent=%d transparent=%d (%.0f%% opaque)\n",
		st.MinAlpha, st.MaxAlpha, st.Opaque, st.Translucent, st.Transparent,
		100*float64(st.Opaque)/float64(total))
	fmt.Printf("  bounds: %v, regions: %d\n", st.Bounds, st.Regions)

	// Show the skin on its own at natural size to get its hull.
	const id = 1
	r := renderer.New()
	pix := make([]uint8, len(s.Pix))
	copy(pix, s.Pix)
	if err := r.SetSilhouette(id, s.Width, s.Height, pix, s.Size(), s.Premultiplied); err != nil {
		return err
	}
	m := drawable.DefaultTransform(s.Size(), s.Size().Scale(0.5)).Matrix()
	sil := int32(id)
	r.SetDrawable(id, renderer.DrawableUpdate{Matrix: &m, Silhouette: &sil, Mode: drawable.Nearest})

	points := r.ConvexHull(id)
	fmt.Printf("  hull: %d points\n", len(points))
	for _, p := range points {
		px := p.Mul(s.Size())
		fmt.Printf("    (%.1f, %.1f)\n", px.X, px.Y)
	}
	b := r.Bounds(id)
	fmt.Printf("  stage bounds: [%.2f, %.2f] x [%.2f, %.2f]\n", b.Left, b.Right, b.Bottom, b.Top)

	if overlayDir == "" {
		return nil
	}
	img, err := overlay.Render(r.DrawableSilhouette(id), points, scale)
	if err != nil {
		return err
	}
	out := filepath.Join(overlayDir, s.Name+".webp")
	if err := overlay.WriteWebP(out, img); err != nil {
		return err
	}
	fmt.Printf("  overlay: %s\n", out)
	return nil
}
