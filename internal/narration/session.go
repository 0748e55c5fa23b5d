package narration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MikeSquared-Agency/narrator/internal/catalog"
)

var (
	ErrNoTemplate           = errors.New("no template selected")
	ErrUnknownPlaceholder   = errors.New("placeholder not in selected template")
	ErrRefinementInProgress = errors.New("refinement already in progress")
)

// RefineFunc blends notes into text for the given template. It returns the
// text to display, which is text itself when refinement did not improve it.
// A non-nil error means the request was rejected and nothing changed.
type RefineFunc func(ctx context.Context, templateID, text, notes string) (string, error)

// Session is the input state of one user working on one narration. It is
// reset when a template is selected and is never persisted.
type Session struct {
	mu       sync.Mutex
	template *catalog.Template
	tokens   []string
	values   map[string]string
	adj      Adjustments
	notes    string

	refining    bool
	refined     string
	refinedFrom string
}

func NewSession() *Session {
	return &Session{values: map[string]string{}}
}

// Select makes t the active template. Values of tokens shared with the
// previous template are kept; every other token starts empty. Adjustments
// and notes are left as they are.
func (s *Session) Select(t catalog.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := Placeholders(t.Description)
	values := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		values[tok] = s.values[tok]
	}
	s.template = &t
	s.tokens = tokens
	s.values = values
	s.refined, s.refinedFrom = "", ""
}

// Template returns the selected template.
func (s *Session) Template() (catalog.Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.template == nil {
		return catalog.Template{}, false
	}
	return *s.template, true
}

// Placeholders returns the fields of the selected template in display order.
func (s *Session) Placeholders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

// Set records the value entered for token.
func (s *Session) Set(token, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.template == nil {
		return ErrNoTemplate
	}
	if _, ok := s.values[token]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlaceholder, token)
	}
	s.values[token] = value
	return nil
}

// Values returns a copy of the placeholder values.
func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s *Session) SetAdjustments(adj Adjustments) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adj = adj
}

func (s *Session) Adjustments() Adjustments {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adj
}

func (s *Session) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
}

// Preview is the composed narration for the current inputs.
func (s *Session) Preview() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewLocked()
}

func (s *Session) previewLocked() (string, error) {
	if s.template == nil {
		return "", ErrNoTemplate
	}
	return Compose(s.template.Description, s.values, s.adj), nil
}

// Text is the final narration: the refined text while the inputs it was
// refined from are unchanged, otherwise the preview.
func (s *Session) Text() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	preview, err := s.previewLocked()
	if err != nil {
		return "", err
	}
	if s.refined != "" && s.refinedFrom == preview {
		return s.refined, nil
	}
	return preview, nil
}

// CanRefine reports whether a refinement may be started now.
func (s *Session) CanRefine() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template != nil && !s.refining && strings.TrimSpace(s.notes) != ""
}

// Refining reports whether a refinement is in flight.
func (s *Session) Refining() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refining
}

// Refine runs fn over the current preview and notes. Only one refinement may
// be in flight per session; a second call fails with ErrRefinementInProgress
// instead of queueing. The lock is not held while fn runs.
func (s *Session) Refine(ctx context.Context, fn RefineFunc) (string, error) {
	s.mu.Lock()
	if s.refining {
		s.mu.Unlock()
		return "", ErrRefinementInProgress
	}
	preview, err := s.previewLocked()
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	templateID, notes := s.template.ID, s.notes
	s.refining = true
	s.mu.Unlock()

	text, err := fn(ctx, templateID, preview, notes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refining = false
	if err != nil {
		return "", err
	}
	s.refined, s.refinedFrom = text, preview
	return text, nil
}
