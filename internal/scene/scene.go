package scene

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrNoBackground is returned when an add or gesture operation is attempted
// while the scene has no background image. A scene without spatial context
// renders a placeholder prompt and nothing is interactable.
var ErrNoBackground = errors.New("scene has no background image")

// activeGesture is the scene's single active-gesture slot. The scene, not
// individual items, owns gesture tracking: at most one gesture runs at a
// time, and the scene dispatches resolved deltas to whichever item the slot
// points at. This replaces per-item global listeners with one coordinator.
type activeGesture struct {
	itemID  string
	tracker Tracker
}

// Scene composites a background room image with an overlay of placed items
// and routes pointer input to them. All mutation goes through Scene methods;
// a mutex confines the event-loop discipline the interaction model assumes.
type Scene struct {
	mu sync.Mutex

	background string // opaque image handle; empty means awaiting upload
	width      int    // container box, pixels
	height     int

	overlay *Overlay
	active  *activeGesture
	clock   Clock
	logger  *slog.Logger
}

// New creates a scene for a container of the given pixel size. background
// may be empty; the scene then stays in its placeholder state until
// SetBackground is called.
func New(background string, width, height int, clock Clock, logger *slog.Logger) *Scene {
	return &Scene{
		background: background,
		width:      width,
		height:     height,
		overlay:    NewOverlay(clock, logger),
		clock:      clock,
		logger:     logger,
	}
}

// HasBackground reports whether the scene has spatial context. Without it
// the embedder should render the placeholder prompt.
func (s *Scene) HasBackground() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background != ""
}

// Background returns the background image handle, or "" if none is set.
func (s *Scene) Background() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

// Size returns the container box in pixels.
func (s *Scene) Size() (w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// SetBackground replaces the background image handle.
func (s *Scene) SetBackground(background string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = background
}

// ClearBackground removes the background and tears down all placed items;
// the layout is meaningless without the image it was arranged against.
func (s *Scene) ClearBackground() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = ""
	s.active = nil
	s.overlay.Clear()
}

// AddItem places a new furniture item and returns its id.
func (s *Scene) AddItem(assetRef, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.background == "" {
		return "", ErrNoBackground
	}
	return s.overlay.AddItem(assetRef, name)
}

// RemoveItem deletes an item. Absent ids are ignored. If the item is mid-
// gesture the slot is released so later events don't target a ghost.
func (s *Scene) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.itemID == id {
		s.active = nil
	}
	s.overlay.RemoveItem(id)
}

// Items returns a read-only snapshot of the placed items in stacking order.
func (s *Scene) Items() []PlacedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay.Items()
}

// Item returns a snapshot of a single item.
func (s *Scene) Item(id string) (PlacedItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay.Item(id)
}

// HandleVisible reports whether the item's resize/delete handle should be
// drawn right now.
func (s *Scene) HandleVisible(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.itemID == id {
		return true
	}
	return s.overlay.HandleVisible(id)
}

// GestureState reports the item's current gesture classification.
func (s *Scene) GestureState(id string) GestureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.itemID == id {
		return s.active.tracker.State()
	}
	return Idle
}

// PointerDown routes a pointer press on an item into the gesture slot. It
// reports whether the native context menu must be suppressed (secondary
// button is reassigned to rotation). A press while another gesture is
// active is ignored until that gesture completes.
func (s *Scene) PointerDown(itemID string, x, y float64, button Button, onHandle bool) (suppressMenu bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.background == "" {
		return false, ErrNoBackground
	}
	if _, ok := s.overlay.Item(itemID); !ok {
		s.logger.Debug("pointer down on unknown item", "item_id", itemID)
		return button == ButtonSecondary, nil
	}
	if s.active != nil {
		return button == ButtonSecondary, nil
	}

	g := &activeGesture{itemID: itemID}
	res := g.tracker.PointerDown(x, y, button, onHandle)
	if res.Started {
		s.active = g
		s.overlay.Touch(itemID)
	}
	return res.SuppressMenu, nil
}

// PointerMove advances the active gesture, applying the resolved delta to
// the slot's item. Moves with no active gesture are ignored.
func (s *Scene) PointerMove(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return
	}
	d, ok := s.active.tracker.PointerMove(x, y)
	if !ok {
		return
	}
	if !d.isZero() {
		s.overlay.UpdateItem(s.active.itemID, d)
		return
	}
	// Deadzone moves still count as interaction.
	s.overlay.Touch(s.active.itemID)
}

// PointerUp completes the active gesture.
func (s *Scene) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return
	}
	s.overlay.Touch(s.active.itemID)
	s.active = nil
}

// CancelGesture aborts any active gesture unconditionally. Wire this to
// window blur and pointer-capture loss so a drag can never stick.
func (s *Scene) CancelGesture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

// Wheel applies a momentary wheel-scaling event to an item. It needs no
// pointer capture and does not disturb an active gesture.
func (s *Scene) Wheel(itemID string, deltaY float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.background == "" {
		return ErrNoBackground
	}
	if _, ok := s.overlay.Item(itemID); !ok {
		s.logger.Debug("wheel on unknown item", "item_id", itemID)
		return nil
	}
	var t Tracker
	s.overlay.UpdateItem(itemID, t.Wheel(deltaY))
	return nil
}

// PointerEnter marks a hover, showing the item's handle.
func (s *Scene) PointerEnter(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay.Touch(itemID)
}

// PointerLeave starts the shortened hide countdown unless the item is being
// gestured.
func (s *Scene) PointerLeave(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.itemID == itemID {
		return
	}
	s.overlay.PointerLeft(itemID)
}
