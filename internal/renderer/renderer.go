package renderer

import (
	"errors"
	"fmt"

	"stagehit/internal/drawable"
	"stagehit/internal/effect"
	"stagehit/internal/hull"
	"stagehit/internal/mathutil"
	"stagehit/internal/silhouette"
)

// IDNone is the reserved silhouette id. It always resolves to an empty
// silhouette and cannot be replaced or removed.
const IDNone int32 = -1

// ErrReservedID is returned when a caller tries to set the IDNone silhouette.
var ErrReservedID = errors.New("renderer: silhouette id is reserved")

// DrawableUpdate patches a drawable. Nil pointer fields are left unchanged;
// Bits and Mode are always overwritten.
type DrawableUpdate struct {
	Matrix     *mathutil.Mat4
	Silhouette *int32
	Effects    *effect.Effects
	Bits       effect.Bits
	Mode       drawable.SampleMode
}

// hullEntry is a cached convex hull and the state it was computed from.
type hullEntry struct {
	sil        *silhouette.Silhouette
	version    uint64
	bits       effect.Bits
	distortion [4]float64
	points     []mathutil.Vec2
}

// Renderer owns every drawable and silhouette and answers queries against
// them. It is not safe for concurrent use.
type Renderer struct {
	drawables   map[int32]*drawable.Drawable
	silhouettes map[int32]*silhouette.Silhouette
	hulls       map[int32]*hullEntry
}

// New returns a renderer holding only the empty IDNone silhouette.
func New() *Renderer {
	r := &Renderer{
		drawables:   make(map[int32]*drawable.Drawable),
		silhouettes: make(map[int32]*silhouette.Silhouette),
		hulls:       make(map[int32]*hullEntry),
	}
	r.silhouettes[IDNone] = silhouette.New(IDNone)
	return r
}

// SetDrawable creates or patches a drawable. A new drawable starts with a
// zero matrix, default effects and the supplied silhouette or IDNone.
func (r *Renderer) SetDrawable(id int32, u DrawableUpdate) {
	d, ok := r.drawables[id]
	if !ok {
		silID := IDNone
		if u.Silhouette != nil {
			silID = *u.Silhouette
		}
		d = drawable.New(id, silID)
		r.drawables[id] = d
	}

	if u.Matrix != nil {
		d.SetMatrix(*u.Matrix)
		if !u.Matrix.Invertible() {
			Logger().Warn("renderer: singular drawable matrix",
				"drawable", id, "det", u.Matrix.Det())
		}
	}
	if u.Silhouette != nil {
		d.Silhouette = *u.Silhouette
	}
	if u.Effects != nil {
		d.Effects = *u.Effects
	}
	d.Bits = u.Bits
	d.Mode = u.Mode
}

// RemoveDrawable deletes a drawable. Unknown ids are ignored.
func (r *Renderer) RemoveDrawable(id int32) {
	delete(r.drawables, id)
	delete(r.hulls, id)
}

// SetSilhouette creates or replaces a silhouette's pixel data. On a size
// mismatch the error is returned and nothing changes.
func (r *Renderer) SetSilhouette(id int32, w, h int, data []uint8, nominal mathutil.Vec2, premultiplied bool) error {
	if id == IDNone {
		return fmt.Errorf("renderer: set silhouette %d: %w", id, ErrReservedID)
	}
	s, ok := r.silhouettes[id]
	if !ok {
		s = silhouette.New(id)
	}
	if err := s.SetData(w, h, data, nominal, premultiplied); err != nil {
		return fmt.Errorf("renderer: set silhouette %d: %w", id, err)
	}
	r.silhouettes[id] = s
	return nil
}

// RemoveSilhouette deletes a silhouette. Unknown ids and IDNone are ignored.
// Drawables still referencing it sample as empty.
func (r *Renderer) RemoveSilhouette(id int32) {
	if id == IDNone {
		return
	}
	delete(r.silhouettes, id)
}

// Drawable returns a registered drawable.
func (r *Renderer) Drawable(id int32) (*drawable.Drawable, bool) {
	d, ok := r.drawables[id]
	return d, ok
}

// Silhouette returns a registered silhouette.
func (r *Renderer) Silhouette(id int32) (*silhouette.Silhouette, bool) {
	s, ok := r.silhouettes[id]
	return s, ok
}

// mustDrawable looks up a drawable named by a query. Querying an unregistered
// drawable is a caller bug.
func (r *Renderer) mustDrawable(id int32) *drawable.Drawable {
	d, ok := r.drawables[id]
	if !ok {
		panic(fmt.Sprintf("renderer: drawable %d is not registered", id))
	}
	return d
}

// silhouetteOf resolves a drawable's silhouette, falling back to the empty
// one when the reference dangles.
func (r *Renderer) silhouetteOf(d *drawable.Drawable) *silhouette.Silhouette {
	if s, ok := r.silhouettes[d.Silhouette]; ok {
		return s
	}
	Logger().Debug("renderer: dangling silhouette reference",
		"drawable", d.ID, "silhouette", d.Silhouette)
	return r.silhouettes[IDNone]
}

// convexHull returns the drawable's convex hull in texture space, recomputing it
// only when the silhouette or the distortion effects changed.
func (r *Renderer) convexHull(d *drawable.Drawable) []mathutil.Vec2 {
	s := r.silhouetteOf(d)
	bits := d.Bits & effect.DistortionGroup
	distortion := [4]float64{d.Effects.Fisheye, d.Effects.Whirl, d.Effects.Pixelate, d.Effects.Mosaic}

	if e, ok := r.hulls[d.ID]; ok &&
		e.sil == s && e.version == s.Version() &&
		e.bits == bits && (bits == 0 || e.distortion == distortion) {
		return e.points
	}

	points := hull.Compute(d, s)
	Logger().Debug("renderer: computed convex hull",
		"drawable", d.ID, "silhouette", s.ID, "points", len(points))
	r.hulls[d.ID] = &hullEntry{
		sil:        s,
		version:    s.Version(),
		bits:       bits,
		distortion: distortion,
		points:     points,
	}
	return points
}
