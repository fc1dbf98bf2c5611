package scene

// Scale limits for a placed item. Gestures can push past these bounds; the
// applied value is always clamped back into range.
const (
	MinScale = 0.2
	MaxScale = 3.0
)

// SizeBasis is the reference footprint of a placed item in scene-space
// pixels. The rendered size of an item is SizeBasis * Scale on each axis.
const SizeBasis = 300.0

// PlacedItem is one furniture asset instance positioned in a room scene.
// Position and rotation are unbounded; only scale is clamped.
type PlacedItem struct {
	ID       string
	AssetRef string
	Name     string

	// X, Y are the item's top-left corner in scene-space pixels,
	// origin at the top-left of the scene container.
	X, Y     float64
	Scale    float64
	Rotation float64 // degrees, accumulates without wrapping
}

// Footprint returns the rendered width and height of the item.
func (it PlacedItem) Footprint() (w, h float64) {
	return SizeBasis * it.Scale, SizeBasis * it.Scale
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
