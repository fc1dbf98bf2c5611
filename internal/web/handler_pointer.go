package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oakhaus/decorator/internal/scene"
)

// pointerEvent is one input event forwarded by the frontend. The scene's
// input coordinator expects them in delivery order; the frontend posts them
// sequentially for exactly that reason.
type pointerEvent struct {
	Type     string  `json:"type"` // down, move, up, cancel, wheel, enter, leave
	ItemID   string  `json:"item_id,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Button   string  `json:"button,omitempty"` // primary (default) or secondary
	OnHandle bool    `json:"on_handle,omitempty"`
	DeltaY   float64 `json:"delta_y,omitempty"`
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var ev pointerEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "invalid pointer event", http.StatusBadRequest)
		return
	}

	button := scene.ButtonPrimary
	if ev.Button == "secondary" {
		button = scene.ButtonSecondary
	}

	switch ev.Type {
	case "down":
		suppress, err := sess.scene.PointerDown(ev.ItemID, ev.X, ev.Y, button, ev.OnHandle)
		if errors.Is(err, scene.ErrNoBackground) {
			http.Error(w, "scene has no background", http.StatusConflict)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]bool{"suppress_context_menu": suppress})
		return
	case "move":
		sess.scene.PointerMove(ev.X, ev.Y)
	case "up":
		sess.scene.PointerUp()
	case "cancel":
		// Window blur / pointer-capture loss on the client.
		sess.scene.CancelGesture()
	case "wheel":
		if err := sess.scene.Wheel(ev.ItemID, ev.DeltaY); errors.Is(err, scene.ErrNoBackground) {
			http.Error(w, "scene has no background", http.StatusConflict)
			return
		}
	case "enter":
		sess.scene.PointerEnter(ev.ItemID)
	case "leave":
		sess.scene.PointerLeave(ev.ItemID)
	default:
		http.Error(w, "unknown event type", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
