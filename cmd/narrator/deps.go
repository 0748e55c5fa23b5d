package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/narrator/internal/anthropic"
	"github.com/MikeSquared-Agency/narrator/internal/catalog"
	"github.com/MikeSquared-Agency/narrator/internal/config"
	"github.com/MikeSquared-Agency/narrator/internal/hermes"
	"github.com/MikeSquared-Agency/narrator/internal/openai"
	"github.com/MikeSquared-Agency/narrator/internal/refine"
)

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	slog.Info("catalog loaded", "templates", cat.Len(), "path", cfg.CatalogPath)
	return cat, nil
}

// newGenerator picks the text-generation provider. A provider without a key
// yields a nil generator: refinement then always falls back.
func newGenerator(cfg config.Config) (refine.Generator, string, error) {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			slog.Warn("ANTHROPIC_API_KEY not set, refinement disabled")
			return nil, cfg.AnthropicModel, nil
		}
		slog.Info("anthropic client ready", "model", cfg.AnthropicModel)
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), cfg.AnthropicModel, nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			slog.Warn("OPENAI_API_KEY not set, refinement disabled")
			return nil, cfg.OpenAIModel, nil
		}
		client := openai.NewClient(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		slog.Info("openai-compatible client ready", "model", client.Model(), "base_url", cfg.OpenAIBaseURL)
		return client, client.Model(), nil
	case "none":
		return nil, "", nil
	default:
		return nil, "", fmt.Errorf("unknown NARRATOR_PROVIDER %q", cfg.Provider)
	}
}

// newGateway wires the provider and, when NATS_URL is set, the event
// publisher. The returned close func is always non-nil.
func newGateway(ctx context.Context, cfg config.Config) (*refine.Gateway, func(), error) {
	gen, model, err := newGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := refine.Options{Provider: cfg.Provider, Model: model, Logger: slog.Default()}
	closeFn := func() {}

	if cfg.NatsURL != "" {
		h, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Warn("NATS unavailable, refinement events disabled", "url", cfg.NatsURL, "error", err)
		} else {
			slog.Info("NATS connected", "url", cfg.NatsURL)
			opts.Events = h
			closeFn = h.Close
		}
	}

	return refine.New(gen, opts), closeFn, nil
}
