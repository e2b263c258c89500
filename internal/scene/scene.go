package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"stagehit/internal/effect"
	"stagehit/internal/renderer"
)

// Query operations.
const (
	OpTouchingRect       = "touching_rect"
	OpTouchingDrawables  = "touching_drawables"
	OpTouchingColor      = "touching_color"
	OpColorTouchingColor = "color_touching_color"
	OpPick               = "pick"
	OpHull               = "hull"
	OpBounds             = "bounds"
	OpBubbleBounds       = "bubble_bounds"
	OpAABB               = "aabb"
	OpStageColor         = "stage_color"
)

// DefaultBubbleSlice is how tall a slice of the sprite's top bubble_bounds
// measures, in stage units, when a query does not say.
const DefaultBubbleSlice = 8

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("scene: invalid")

// Scene is a stage description: skins to load, drawables showing them and
// queries to run against the result.
type Scene struct {
	Skins     []Skin     `json:"skins"`
	Drawables []Drawable `json:"drawables"`
	Queries   []Query    `json:"queries"`
}

// Skin names an image file and how it maps to stage units.
type Skin struct {
	ID   int32  `json:"id"`
	File string `json:"file"` // name resolved through the skin index

	// NominalSize is the skin's size in stage units. Defaults to the
	// decoded image size.
	NominalSize *[2]float64 `json:"nominal_size,omitempty"`
	// RotationCenter is in skin units from the top-left corner. Defaults to
	// the middle.
	RotationCenter *[2]float64 `json:"rotation_center,omitempty"`
	// Resolution is silhouette pixels per stage unit. Zero keeps the image
	// as decoded.
	Resolution float64 `json:"resolution,omitempty"`
}

// Drawable places a skin on the stage.
type Drawable struct {
	ID   int32  `json:"id"`
	Skin *int32 `json:"skin,omitempty"`

	// Matrix, when set, is used as is and the placement fields are ignored.
	Matrix    *[16]float64  `json:"matrix,omitempty"`
	Position  [2]float64    `json:"position"`
	Scale     *[2]float64   `json:"scale,omitempty"`     // percent, default 100
	Direction *float64      `json:"direction,omitempty"` // degrees, default 90
	Effects   effect.Params `json:"effects"`
	Nearest   bool          `json:"nearest"`
}

// Query is one question asked of the stage.
type Query struct {
	Name       string         `json:"name"`
	Op         string         `json:"op"`
	Drawable   int32          `json:"drawable"`
	Candidates []int32        `json:"candidates,omitempty"`
	Rect       *renderer.Rect `json:"rect,omitempty"`
	Color      string         `json:"color,omitempty"`
	Mask       string         `json:"mask,omitempty"`
	Point      *[2]float64    `json:"point,omitempty"`
	Slice      float64        `json:"slice,omitempty"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks ids and references so that running the scene never asks
// the renderer about an unknown drawable.
func (s *Scene) Validate() error {
	skins := make(map[int32]bool, len(s.Skins))
	for i, sk := range s.Skins {
		if sk.ID == renderer.IDNone {
			return fmt.Errorf("%w: skin %d uses the reserved id %d", ErrInvalid, i, sk.ID)
		}
		if skins[sk.ID] {
			return fmt.Errorf("%w: duplicate skin id %d", ErrInvalid, sk.ID)
		}
		if sk.File == "" {
			return fmt.Errorf("%w: skin %d has no file", ErrInvalid, sk.ID)
		}
		if sk.Resolution < 0 {
			return fmt.Errorf("%w: skin %d has negative resolution", ErrInvalid, sk.ID)
		}
		skins[sk.ID] = true
	}

	drawables := make(map[int32]bool, len(s.Drawables))
	for _, d := range s.Drawables {
		if drawables[d.ID] {
			return fmt.Errorf("%w: duplicate drawable id %d", ErrInvalid, d.ID)
		}
		if d.Skin != nil && *d.Skin != renderer.IDNone && !skins[*d.Skin] {
			return fmt.Errorf("%w: drawable %d uses unknown skin %d", ErrInvalid, d.ID, *d.Skin)
		}
		drawables[d.ID] = true
	}

	for i, q := range s.Queries {
		name := q.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if err := q.validate(drawables); err != nil {
			return fmt.Errorf("%w: query %s: %v", ErrInvalid, name, err)
		}
	}
	return nil
}

func (q Query) validate(drawables map[int32]bool) error {
	needsDrawable := true
	switch q.Op {
	case OpTouchingRect, OpHull, OpBounds, OpBubbleBounds, OpAABB:
	case OpTouchingDrawables:
	case OpTouchingColor:
		if q.Color == "" {
			return errors.New("missing color")
		}
	case OpColorTouchingColor:
		if q.Color == "" || q.Mask == "" {
			return errors.New("missing color or mask")
		}
	case OpPick:
		needsDrawable = false
		if q.Rect == nil {
			return errors.New("pick needs a rect")
		}
	case OpStageColor:
		needsDrawable = false
		if q.Point == nil {
			return errors.New("stage_color needs a point")
		}
	default:
		return fmt.Errorf("unknown op %q", q.Op)
	}

	if needsDrawable && !drawables[q.Drawable] {
		return fmt.Errorf("unknown drawable %d", q.Drawable)
	}
	for _, c := range q.Candidates {
		if !drawables[c] {
			return fmt.Errorf("unknown candidate %d", c)
		}
	}
	if q.Color != "" {
		if _, err := parseColor(q.Color); err != nil {
			return err
		}
	}
	if q.Mask != "" {
		if _, err := parseColor(q.Mask); err != nil {
			return err
		}
	}
	return nil
}
