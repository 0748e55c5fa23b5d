// Package form walks a user through building a narration in the terminal:
// search, select, fill placeholders, set adjustments, refine, copy.
package form

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/narrator/internal/catalog"
	"github.com/MikeSquared-Agency/narrator/internal/narration"
)

const pageSize = 12

type Form struct {
	driver  PromptDriver
	catalog *catalog.Catalog
	refine  narration.RefineFunc
	copy    Copier
	logger  *slog.Logger
}

// New creates a form. refineFn and copier may be nil to disable those steps.
func New(driver PromptDriver, cat *catalog.Catalog, refineFn narration.RefineFunc, copier Copier, logger *slog.Logger) *Form {
	return &Form{
		driver:  driver,
		catalog: cat,
		refine:  refineFn,
		copy:    copier,
		logger:  logger,
	}
}

// Run drives one narration through session s and returns the final text.
func (f *Form) Run(ctx context.Context, s *narration.Session) (string, error) {
	tpl, err := f.chooseTemplate(ctx)
	if err != nil {
		return "", err
	}
	s.Select(tpl)

	if err := f.fillPlaceholders(ctx, s); err != nil {
		return "", err
	}
	if err := f.askAdjustments(ctx, s); err != nil {
		return "", err
	}

	preview, err := s.Preview()
	if err != nil {
		return "", err
	}
	if err := f.driver.Info(ctx, "\nNarration preview:\n"+preview+"\n"); err != nil {
		return "", err
	}

	if f.refine != nil {
		if err := f.offerRefinement(ctx, s); err != nil {
			return "", err
		}
	}

	text, err := s.Text()
	if err != nil {
		return "", err
	}
	if err := f.driver.Info(ctx, "\nFinal narration:\n"+text+"\n"); err != nil {
		return "", err
	}

	if f.copy != nil {
		ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Copy to clipboard?", Default: true})
		if err != nil {
			return "", err
		}
		if ok {
			if err := f.copy(text); err != nil {
				f.logger.Warn("clipboard copy failed", "error", err)
				_ = f.driver.Info(ctx, "Could not copy to clipboard.")
			} else {
				_ = f.driver.Info(ctx, "Copied!")
			}
		}
	}
	return text, nil
}

func (f *Form) chooseTemplate(ctx context.Context) (catalog.Template, error) {
	for {
		query, err := f.driver.Input(ctx, InputConfig{
			Message: "Search application types:",
			Help:    "Matches category, sub-category or type, e.g. Critical Skills. Leave empty to list all.",
		})
		if err != nil {
			return catalog.Template{}, err
		}
		matches := f.catalog.Search(strings.TrimSpace(query))
		if len(matches) == 0 {
			if err := f.driver.Info(ctx, "No matching application types found."); err != nil {
				return catalog.Template{}, err
			}
			continue
		}

		options := make([]string, len(matches))
		for i, t := range matches {
			options[i] = OptionLabel(t)
		}
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:  "Select application type:",
			Options:  options,
			PageSize: pageSize,
		})
		if err != nil {
			return catalog.Template{}, err
		}
		if idx < 0 || idx >= len(matches) {
			return catalog.Template{}, fmt.Errorf("selection %d out of range", idx)
		}
		return matches[idx], nil
	}
}

// OptionLabel is how a template is listed for selection.
func OptionLabel(t catalog.Template) string {
	return fmt.Sprintf("%s / %s / %s", t.Category, t.SubCategory, t.Type)
}

func (f *Form) fillPlaceholders(ctx context.Context, s *narration.Session) error {
	values := s.Values()
	for _, tok := range s.Placeholders() {
		label := narration.Label(tok)
		v, err := f.driver.Input(ctx, InputConfig{
			Message: label + ":",
			Default: values[tok],
			Help:    "Leave empty to keep " + tok + " in the text.",
		})
		if err != nil {
			return err
		}
		if err := s.Set(tok, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *Form) askAdjustments(ctx context.Context, s *narration.Session) error {
	var adj narration.Adjustments
	var err error

	if adj.Urgent, err = f.driver.Confirm(ctx, ConfirmConfig{Message: "Urgent application?"}); err != nil {
		return err
	}
	if adj.Urgent {
		if adj.UrgencyFee, err = f.driver.Input(ctx, InputConfig{Message: "Urgency fee (e.g. R2,500):"}); err != nil {
			return err
		}
	}
	if adj.IncludeTimeSpent, err = f.driver.Confirm(ctx, ConfirmConfig{Message: "Include time spent?"}); err != nil {
		return err
	}
	if adj.IncludeTimeSpent {
		if adj.TimeSpentDetails, err = f.driver.Input(ctx, InputConfig{Message: "Time spent (e.g. 5 hours since 01/01/2025):"}); err != nil {
			return err
		}
	}
	s.SetAdjustments(adj)
	return nil
}

func (f *Form) offerRefinement(ctx context.Context, s *narration.Session) error {
	ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Integrate additional notes and refine with AI?"})
	if err != nil || !ok {
		return err
	}
	for {
		notes, err := f.driver.TextArea(ctx, TextAreaConfig{
			Message: "Additional coordination notes:",
			Help:    "e.g. Additional 3 hours spent coordinating with the client's local HR team.",
		})
		if err != nil {
			return err
		}
		s.SetNotes(notes)
		if !s.CanRefine() {
			if err := f.driver.Info(ctx, "Please provide additional coordination notes to integrate."); err != nil {
				return err
			}
			continue
		}

		if err := f.driver.Info(ctx, "Blending details..."); err != nil {
			return err
		}
		_, err = s.Refine(ctx, f.refine)
		return err
	}
}
