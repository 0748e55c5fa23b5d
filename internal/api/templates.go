package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/narrator/internal/catalog"
	"github.com/MikeSquared-Agency/narrator/internal/narration"
)

// Field is one input the user fills for a template.
type Field struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

type TemplateResponse struct {
	catalog.Template
	Placeholders []Field `json:"placeholders"`
}

type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
	Count     int                `json:"count"`
}

func templateResponse(t catalog.Template) TemplateResponse {
	tokens := narration.Placeholders(t.Description)
	fields := make([]Field, len(tokens))
	for i, tok := range tokens {
		fields[i] = Field{Token: tok, Label: narration.Label(tok)}
	}
	return TemplateResponse{Template: t, Placeholders: fields}
}

// listTemplates handles GET /api/v1/templates?q=
func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	matches := s.catalog.Search(r.URL.Query().Get("q"))
	out := make([]TemplateResponse, len(matches))
	for i, t := range matches {
		out[i] = templateResponse(t)
	}
	writeJSON(w, http.StatusOK, TemplateListResponse{Templates: out, Count: len(out)})
}

// getTemplate handles GET /api/v1/templates/{id}
func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.catalog.Get(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, templateResponse(t))
}
