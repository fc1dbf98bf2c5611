package web

import (
	"encoding/json"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/oakhaus/decorator/internal/catalog"
	"github.com/oakhaus/decorator/internal/scene"
	"github.com/oakhaus/decorator/internal/scene/render"
)

type itemJSON struct {
	ID            string  `json:"id"`
	AssetRef      string  `json:"asset_ref"`
	Name          string  `json:"name"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Scale         float64 `json:"scale"`
	Rotation      float64 `json:"rotation"`
	HandleVisible bool    `json:"handle_visible"`
}

func (s *Server) itemsJSON(sess *sceneSession) []itemJSON {
	items := sess.scene.Items()
	out := make([]itemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, itemJSON{
			ID:            it.ID,
			AssetRef:      it.AssetRef,
			Name:          it.Name,
			X:             it.X,
			Y:             it.Y,
			Scale:         it.Scale,
			Rotation:      it.Rotation,
			HandleVisible: sess.scene.HandleVisible(it.ID),
		})
	}
	return out
}

func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomKey string `json:"room_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomKey == "" {
		http.Error(w, "room_key required", http.StatusBadRequest)
		return
	}

	img, _, err := s.rooms.Open(r.Context(), req.RoomKey)
	if err != nil {
		http.Error(w, "room photo not found", http.StatusNotFound)
		return
	}
	_ = img.Close()

	// Catalog listings load now, before any scene interaction: the
	// gesture path never waits on I/O.
	browser := catalog.NewBrowser(s.source, s.logger)
	if err := browser.Load(r.Context()); err != nil {
		s.logger.Warn("catalog load failed, browser starts empty", "error", err)
	}

	sess := &sceneSession{
		roomKey: req.RoomKey,
		scene:   scene.New(req.RoomKey, s.sceneWidth, s.sceneHeight, s.clock, s.logger),
		browser: browser,
	}
	id := s.sessions.add(sess)

	s.logger.Info("scene created", "scene_id", id, "room_key", req.RoomKey)
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"id":     id,
		"width":  s.sceneWidth,
		"height": s.sceneHeight,
	})
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"id":       sess.id,
		"room_key": sess.roomKey,
		"items":    s.itemsJSON(sess),
	})
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.scene.ClearBackground()
	s.sessions.remove(sess.id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"items": s.itemsJSON(sess)})
}

func (s *Server) handlePlaceItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID int64 `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	itemID, err := sess.browser.Place(req.ProductID, sess.scene)
	switch {
	case errors.Is(err, scene.ErrNoBackground):
		http.Error(w, "scene has no background", http.StatusConflict)
		return
	case errors.Is(err, scene.ErrInvalidAssetRef):
		http.Error(w, "product has no usable model", http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, "failed to place item", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{"item_id": itemID})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.scene.RemoveItem(r.PathValue("itemID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var background image.Image
	if rc, _, err := s.rooms.Open(r.Context(), sess.roomKey); err == nil {
		background, _, err = image.Decode(rc)
		_ = rc.Close()
		if err != nil {
			s.logger.Warn("room photo not decodable, rendering without background",
				"room_key", sess.roomKey, "error", err)
			background = nil
		}
	}

	width, height := sess.scene.Size()
	img := render.Snapshot(background, width, height, sess.scene.Items())

	w.Header().Set("Content-Type", "image/webp")
	if err := render.EncodeWebP(w, img); err != nil {
		s.logger.Error("snapshot encode failed", "scene_id", sess.id, "error", err)
	}
}
