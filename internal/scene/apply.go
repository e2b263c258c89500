package scene

import (
	"fmt"

	"stagehit/internal/drawable"
	"stagehit/internal/effect"
	"stagehit/internal/mathutil"
	"stagehit/internal/renderer"
	"stagehit/internal/skin"
)

// Apply registers the scene's skins and drawables with r. skins maps each
// skin id to its decoded image; a missing entry is an error.
func (s *Scene) Apply(r *renderer.Renderer, skins map[int32]*skin.Skin) error {
	nominals := make(map[int32]mathutil.Vec2, len(s.Skins))
	centers := make(map[int32]mathutil.Vec2, len(s.Skins))

	for _, spec := range s.Skins {
		img, ok := skins[spec.ID]
		if !ok || img == nil {
			return fmt.Errorf("scene: skin %d (%s) was not loaded", spec.ID, spec.File)
		}

		nominal := img.Size()
		if spec.NominalSize != nil {
			nominal = mathutil.Vec2{X: spec.NominalSize[0], Y: spec.NominalSize[1]}
		}
		center := nominal.Scale(0.5)
		if spec.RotationCenter != nil {
			center = mathutil.Vec2{X: spec.RotationCenter[0], Y: spec.RotationCenter[1]}
		}

		img = skin.ResampleTo(img, nominal.X, nominal.Y, spec.Resolution)

		// The silhouette keeps the slice; cached skins must stay untouched.
		pix := make([]uint8, len(img.Pix))
		copy(pix, img.Pix)
		if err := r.SetSilhouette(spec.ID, img.Width, img.Height, pix, nominal, img.Premultiplied); err != nil {
			return fmt.Errorf("scene: skin %d: %w", spec.ID, err)
		}
		nominals[spec.ID] = nominal
		centers[spec.ID] = center
	}

	for _, spec := range s.Drawables {
		silID := renderer.IDNone
		if spec.Skin != nil {
			silID = *spec.Skin
		}

		m := spec.matrix(nominals[silID], centers[silID])
		fx, bits := effect.FromParams(spec.Effects)
		mode := drawable.Linear
		if spec.Nearest {
			mode = drawable.Nearest
		}

		r.SetDrawable(spec.ID, renderer.DrawableUpdate{
			Matrix:     &m,
			Silhouette: &silID,
			Effects:    &fx,
			Bits:       bits,
			Mode:       mode,
		})
	}
	return nil
}

// matrix returns the explicit matrix if one is given, otherwise the sprite
// placement built from position, scale and direction.
func (d Drawable) matrix(nominal, center mathutil.Vec2) mathutil.Mat4 {
	if d.Matrix != nil {
		return mathutil.Mat4(*d.Matrix)
	}
	t := drawable.DefaultTransform(nominal, center)
	t.Position = mathutil.Vec2{X: d.Position[0], Y: d.Position[1]}
	if d.Scale != nil {
		t.Scale = mathutil.Vec2{X: d.Scale[0], Y: d.Scale[1]}
	}
	if d.Direction != nil {
		t.Direction = *d.Direction
	}
	return t.Matrix()
}
