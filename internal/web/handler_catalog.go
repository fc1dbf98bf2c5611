package web

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"categories": emptyNotNil(sess.browser.Categories()),
	})
}

func (s *Server) handleSubcategories(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"subcategories": emptyNotNil(sess.browser.Subcategories()),
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"products": emptyNotNil(sess.browser.Products()),
	})
}

// handleSelect applies the cascading filter: picking a category resets the
// subcategory; picking a subcategory narrows products further.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		CategoryID    *int64 `json:"category_id"`
		SubcategoryID *int64 `json:"subcategory_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.CategoryID != nil {
		sess.browser.SelectCategory(*req.CategoryID)
	}
	if req.SubcategoryID != nil {
		sess.browser.SelectSubcategory(*req.SubcategoryID)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"subcategories": emptyNotNil(sess.browser.Subcategories()),
		"products":      emptyNotNil(sess.browser.Products()),
	})
}

// emptyNotNil keeps empty listings rendering as [] rather than null.
func emptyNotNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
