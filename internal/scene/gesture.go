package scene

import "math"

// GestureState classifies what a continuous pointer interaction is doing to
// an item. Wheel scaling is momentary and never shows up as a state: it is
// applied and the tracker stays (or returns to) Idle.
type GestureState int

const (
	Idle GestureState = iota
	Translating
	Rotating
	Scaling
)

func (s GestureState) String() string {
	switch s {
	case Translating:
		return "translating"
	case Rotating:
		return "rotating"
	case Scaling:
		return "scaling"
	default:
		return "idle"
	}
}

// Button identifies which pointer button started a gesture. The secondary
// button is reassigned to rotation, so its native context menu must be
// suppressed by the caller when PointerDown reports SuppressMenu.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Gesture tuning. Values match the interaction feel of the original canvas:
// rotation only reacts to horizontal movement past a small jitter deadzone,
// resize follows the diagonal, and wheel direction is inverted so scrolling
// up zooms in.
const (
	rotateDeadzonePx  = 3.0
	rotateDegPerPx    = 0.1
	resizeScalePerPx  = 0.003
	wheelScalePerUnit = 0.0015
)

// Delta is the incremental change one pointer event produces. Deltas are
// relative to the previous event, not the gesture start, so clamping applied
// downstream composes without jumps.
type Delta struct {
	DX, DY    float64
	DRotation float64
	DScale    float64
}

func (d Delta) isZero() bool {
	return d.DX == 0 && d.DY == 0 && d.DRotation == 0 && d.DScale == 0
}

// DownResult reports how a pointer-down was classified.
type DownResult struct {
	Started      bool
	SuppressMenu bool
}

// Tracker converts a pointer event stream scoped to one item into a gesture
// classification and per-event deltas. It tracks exactly one gesture at a
// time; extra pointer-downs while a gesture is active are ignored.
type Tracker struct {
	state        GestureState
	lastX, lastY float64
}

func (t *Tracker) State() GestureState { return t.state }

// PointerDown starts a gesture. onHandle marks a press on the resize grip,
// which wins over the button mapping.
func (t *Tracker) PointerDown(x, y float64, button Button, onHandle bool) DownResult {
	if t.state != Idle {
		return DownResult{SuppressMenu: button == ButtonSecondary}
	}
	t.lastX, t.lastY = x, y
	switch {
	case onHandle:
		t.state = Scaling
	case button == ButtonSecondary:
		t.state = Rotating
	default:
		t.state = Translating
	}
	return DownResult{Started: true, SuppressMenu: button == ButtonSecondary}
}

// PointerMove returns the delta for a move event, relative to the previous
// event's position. It returns ok=false while no gesture is active.
func (t *Tracker) PointerMove(x, y float64) (Delta, bool) {
	if t.state == Idle {
		return Delta{}, false
	}
	dx := x - t.lastX
	dy := y - t.lastY
	t.lastX, t.lastY = x, y

	var d Delta
	switch t.state {
	case Translating:
		d.DX, d.DY = dx, dy
	case Rotating:
		// Horizontal movement only, with a deadzone so small jitter
		// doesn't wobble the item.
		if math.Abs(dx) > rotateDeadzonePx {
			d.DRotation = dx * rotateDegPerPx
		}
	case Scaling:
		d.DScale = (dx + dy) * resizeScalePerPx
	}
	return d, true
}

// PointerUp ends the active gesture.
func (t *Tracker) PointerUp() { t.state = Idle }

// Cancel unconditionally aborts the active gesture. It is the capture-loss
// path (window blur, pointer leaving the window mid-drag): a tracker must
// never stay stuck in a dragging state once events stop arriving.
func (t *Tracker) Cancel() { t.state = Idle }

// Wheel maps a wheel event to a scale delta. Wheel scaling needs no pointer
// capture: it is processed immediately and leaves the state untouched.
func (t *Tracker) Wheel(deltaY float64) Delta {
	return Delta{DScale: -deltaY * wheelScalePerUnit}
}
