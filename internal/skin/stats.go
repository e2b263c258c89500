package skin

import "image"

// Stats summarizes a skin's alpha channel.
type Stats struct {
	Width       int
	Height      int
	Transparent int // alpha 0
	Translucent int // alpha 1..254
	Opaque      int // alpha 255
	MinAlpha    uint8
	MaxAlpha    uint8
	Bounds      image.Rectangle // box around non-transparent pixels
	Regions     int             // 8-connected groups of non-transparent pixels
}

// Analyze computes alpha statistics for a skin.
func Analyze(s *Skin) Stats {
	st := Stats{Width: s.Width, Height: s.Height, MinAlpha: 255}
	w, h := s.Width, s.Height
	if w == 0 || h == 0 {
		st.MinAlpha = 0
		return st
	}

	solid := make([]bool, w*h)
	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := s.Pix[(y*w+x)*4+3]
			if a < st.MinAlpha {
				st.MinAlpha = a
			}
			if a > st.MaxAlpha {
				st.MaxAlpha = a
			}
			switch a {
			case 0:
				st.Transparent++
				continue
			case 255:
				st.Opaque++
			default:
				st.Translucent++
			}
			solid[y*w+x] = true
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX >= 0 {
		st.Bounds = image.Rect(minX, minY, maxX+1, maxY+1)
	}
	st.Regions = countRegions(solid, w, h)
	return st
}

// countRegions labels 8-connected components with a BFS flood fill.
func countRegions(solid []bool, w, h int) int {
	seen := make([]bool, w*h)
	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	queue := make([]int, 0, 1024)
	regions := 0

	for start := range solid {
		if !solid[start] || seen[start] {
			continue
		}
		regions++
		seen[start] = true
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			cx, cy := cur%w, cur/w
			for d := 0; d < 8; d++ {
				nx, ny := cx+dx[d], cy+dy[d]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if solid[ni] && !seen[ni] {
					seen[ni] = true
					queue = append(queue, ni)
				}
			}
		}
	}
	return regions
}
