package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MikeSquared-Agency/narrator/internal/catalog"
	"github.com/MikeSquared-Agency/narrator/internal/narration"
	"github.com/MikeSquared-Agency/narrator/internal/refine"
)

// ComposeRequest carries the full input state for one narration.
type ComposeRequest struct {
	TemplateID   string            `json:"template_id"`
	Placeholders map[string]string `json:"placeholders"`
	narration.Adjustments
	Notes string `json:"notes,omitempty"`
}

type ComposeResponse struct {
	TemplateID string              `json:"template_id"`
	Text       string              `json:"text"`
	Segments   []narration.Segment `json:"segments"`
}

type RefineResponse struct {
	RequestID  string              `json:"request_id"`
	TemplateID string              `json:"template_id"`
	Text       string              `json:"text"`
	Refined    bool                `json:"refined"`
	Segments   []narration.Segment `json:"segments"`
}

// compose handles POST /api/v1/narrations/compose
func (s *Server) compose(w http.ResponseWriter, r *http.Request) {
	req, text, ok := s.decodeAndCompose(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ComposeResponse{
		TemplateID: req.TemplateID,
		Text:       text,
		Segments:   narration.Segments(text),
	})
}

// refine handles POST /api/v1/narrations/refine
func (s *Server) refine(w http.ResponseWriter, r *http.Request) {
	req, text, ok := s.decodeAndCompose(w, r)
	if !ok {
		return
	}

	res, err := s.gateway.Refine(r.Context(), refine.Request{
		TemplateID: req.TemplateID,
		Text:       text,
		Notes:      req.Notes,
	})
	if errors.Is(err, refine.ErrEmptyNotes) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, RefineResponse{
		RequestID:  res.RequestID,
		TemplateID: req.TemplateID,
		Text:       res.Text,
		Refined:    res.Refined,
		Segments:   narration.Segments(res.Text),
	})
}

// decodeAndCompose writes the error response itself and reports ok=false on failure.
func (s *Server) decodeAndCompose(w http.ResponseWriter, r *http.Request) (ComposeRequest, string, bool) {
	var req ComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return req, "", false
	}
	if req.TemplateID == "" {
		writeError(w, http.StatusBadRequest, "template_id is required")
		return req, "", false
	}
	t, err := s.catalog.Get(req.TemplateID)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return req, "", false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return req, "", false
	}
	return req, narration.Compose(t.Description, req.Placeholders, req.Adjustments), true
}
