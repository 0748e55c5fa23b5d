package refine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/narrator/internal/hermes"
	"github.com/MikeSquared-Agency/narrator/internal/narration"
)

// ErrEmptyNotes rejects a refinement before any call is made.
var ErrEmptyNotes = errors.New("please provide additional coordination notes to integrate")

// Fallback reasons reported in events and logs.
const (
	ReasonNoGenerator       = "no generator configured"
	ReasonServiceError      = "service error"
	ReasonEmptyResponse     = "empty response"
	ReasonDisclaimerMissing = "disclaimer missing from response"
)

// Generator turns a prompt into text. It is the only boundary to the
// external service.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type Request struct {
	TemplateID string
	Text       string
	Notes      string
}

// Result is either the refined text or the unchanged input text.
type Result struct {
	RequestID string `json:"request_id"`
	Text      string `json:"text"`
	Refined   bool   `json:"refined"`
	Reason    string `json:"-"`
}

type Options struct {
	Provider string
	Model    string
	Events   Publisher // optional
	Logger   *slog.Logger
}

// Gateway blends notes into a composed narration with one best-effort call.
// Any failure returns the input text unchanged.
type Gateway struct {
	gen      Generator
	provider string
	model    string
	events   Publisher
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a gateway. A nil gen makes every refinement fall back.
func New(gen Generator, opts Options) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		gen:      gen,
		provider: opts.Provider,
		model:    opts.Model,
		events:   opts.Events,
		logger:   logger,
		now:      time.Now,
	}
}

func (g *Gateway) Provider() string { return g.provider }
func (g *Gateway) Model() string    { return g.model }

// Refine validates notes, calls the generator once and returns its text.
// The only error is ErrEmptyNotes; every service failure is logged and
// answered with req.Text.
func (g *Gateway) Refine(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Notes) == "" {
		return Result{}, ErrEmptyNotes
	}

	id := uuid.NewString()
	start := g.now()
	text, reason, err := g.generate(ctx, req)

	res := Result{RequestID: id, Text: req.Text}
	if reason == "" {
		res.Text, res.Refined = text, true
		g.logger.Info("narration refined",
			"request_id", id,
			"template_id", req.TemplateID,
			"model", g.model,
		)
	} else {
		res.Reason = reason
		g.logger.Warn("refinement fell back to original text",
			"request_id", id,
			"template_id", req.TemplateID,
			"model", g.model,
			"reason", reason,
			"error", err,
		)
	}

	g.publish(Event{
		RequestID:  id,
		TemplateID: req.TemplateID,
		Provider:   g.provider,
		Model:      g.model,
		Refined:    res.Refined,
		Reason:     res.Reason,
		InputLen:   len(req.Text),
		OutputLen:  len(res.Text),
		DurationMS: g.now().Sub(start).Milliseconds(),
		Timestamp:  g.now().UTC(),
	})
	return res, nil
}

// generate returns the trimmed refined text, or a fallback reason.
func (g *Gateway) generate(ctx context.Context, req Request) (string, string, error) {
	if g.gen == nil {
		return "", ReasonNoGenerator, nil
	}
	raw, err := g.gen.Generate(ctx, BuildPrompt(req.Text, req.Notes))
	if err != nil {
		return "", ReasonServiceError, err
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ReasonEmptyResponse, nil
	}
	if narration.HasDisclaimer(req.Text) && !narration.HasDisclaimer(text) {
		return "", ReasonDisclaimerMissing, nil
	}
	return text, "", nil
}

func (g *Gateway) publish(evt Event) {
	if g.events == nil {
		return
	}
	subject := hermes.SubjectRefinementCompleted
	if !evt.Refined {
		subject = hermes.SubjectRefinementFallback
	}
	if err := g.events.Publish(subject, evt); err != nil {
		g.logger.Warn("failed to publish refinement event", "subject", subject, "error", err)
	}
}

// Func adapts the gateway to a session's refinement capability.
func (g *Gateway) Func() narration.RefineFunc {
	return func(ctx context.Context, templateID, text, notes string) (string, error) {
		res, err := g.Refine(ctx, Request{TemplateID: templateID, Text: text, Notes: notes})
		if err != nil {
			return "", err
		}
		return res.Text, nil
	}
}
