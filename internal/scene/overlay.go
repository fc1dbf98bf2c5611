package scene

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidAssetRef is returned when an item is added with a missing or
// malformed asset reference. No item is created in that case.
var ErrInvalidAssetRef = errors.New("invalid asset reference")

// Handle visibility windows. Interaction keeps the handle visible for a
// short while afterwards; leaving the item without an active gesture hides
// it sooner.
const (
	handleLinger    = 800 * time.Millisecond
	handleLeaveHide = 500 * time.Millisecond
)

// Spawn jitter: new items land in a bounded random box so items added in
// sequence don't stack exactly on top of each other.
const (
	spawnBaseX, spawnJitterX = 100.0, 300.0
	spawnBaseY, spawnJitterY = 100.0, 100.0
)

type overlayEntry struct {
	item PlacedItem

	// handleUntil is the deadline the resize/delete handle stays visible
	// to. Visibility is an explicit timed state checked against the
	// clock on read; there are no per-item timers to leak.
	handleUntil time.Time
}

// Overlay owns the authoritative collection of placed items for one scene.
// Items are kept in insertion order, which is also stacking order: later
// additions render on top. Only Overlay methods mutate the collection;
// gesture tracking emits deltas that are applied through UpdateItem.
type Overlay struct {
	entries []*overlayEntry
	byID    map[string]*overlayEntry
	clock   Clock
	logger  *slog.Logger
}

func NewOverlay(clock Clock, logger *slog.Logger) *Overlay {
	return &Overlay{
		byID:   make(map[string]*overlayEntry),
		clock:  clock,
		logger: logger,
	}
}

// AddItem creates a new item at a jittered default position with scale 1 and
// no rotation, and returns its id.
func (o *Overlay) AddItem(assetRef, name string) (string, error) {
	assetRef = strings.TrimSpace(assetRef)
	if assetRef == "" || strings.ContainsAny(assetRef, " \t\n") {
		return "", ErrInvalidAssetRef
	}

	e := &overlayEntry{
		item: PlacedItem{
			ID:       uuid.NewString(),
			AssetRef: assetRef,
			Name:     name,
			X:        spawnBaseX + rand.Float64()*spawnJitterX,
			Y:        spawnBaseY + rand.Float64()*spawnJitterY,
			Scale:    1.0,
		},
	}
	o.entries = append(o.entries, e)
	o.byID[e.item.ID] = e
	return e.item.ID, nil
}

// RemoveItem deletes the item with the given id. Removal is immediate and
// irreversible; an absent id is a no-op.
func (o *Overlay) RemoveItem(id string) {
	if _, ok := o.byID[id]; !ok {
		return
	}
	delete(o.byID, id)
	for i, e := range o.entries {
		if e.item.ID == id {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			break
		}
	}
}

// UpdateItem applies a gesture delta to an item and refreshes its handle
// visibility. A stale id is expected when a removal races an in-flight
// gesture update, so it is logged and ignored rather than surfaced.
func (o *Overlay) UpdateItem(id string, d Delta) {
	e, ok := o.byID[id]
	if !ok {
		o.logger.Debug("update for removed item dropped", "item_id", id)
		return
	}
	e.item.X += d.DX
	e.item.Y += d.DY
	e.item.Rotation += d.DRotation
	e.item.Scale = clampScale(e.item.Scale + d.DScale)
	e.handleUntil = o.clock.Now().Add(handleLinger)
}

// Touch marks an interaction (hover, gesture start/end, wheel) on an item,
// keeping its handle visible for the linger window.
func (o *Overlay) Touch(id string) {
	if e, ok := o.byID[id]; ok {
		e.handleUntil = o.clock.Now().Add(handleLinger)
	}
}

// PointerLeft shortens the item's handle deadline after the pointer leaves
// it with no gesture running.
func (o *Overlay) PointerLeft(id string) {
	if e, ok := o.byID[id]; ok {
		e.handleUntil = o.clock.Now().Add(handleLeaveHide)
	}
}

// HandleVisible reports whether the item's handle affordance should render.
func (o *Overlay) HandleVisible(id string) bool {
	e, ok := o.byID[id]
	return ok && o.clock.Now().Before(e.handleUntil)
}

// Item returns a snapshot of one item.
func (o *Overlay) Item(id string) (PlacedItem, bool) {
	if e, ok := o.byID[id]; ok {
		return e.item, true
	}
	return PlacedItem{}, false
}

// Items returns a snapshot of all items in stacking order.
func (o *Overlay) Items() []PlacedItem {
	out := make([]PlacedItem, 0, len(o.entries))
	for _, e := range o.entries {
		out = append(out, e.item)
	}
	return out
}

// Clear removes every item. Used on scene teardown.
func (o *Overlay) Clear() {
	o.entries = nil
	o.byID = make(map[string]*overlayEntry)
}

func (o *Overlay) Len() int { return len(o.entries) }
