package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codearena/arena/internal/challengegen"
	"github.com/codearena/arena/internal/fallback"
	"github.com/codearena/arena/internal/llm"
	"github.com/codearena/arena/internal/provision"
	"github.com/codearena/arena/internal/store"
)

// services are the long-lived collaborators shared by the commands.
type services struct {
	Provision       *provision.Service
	ModelConfigured bool
}

// resolveLLMConfig picks the provider from settings, falling back to
// whichever standard API key is present. ok is false when no usable
// provider is configured.
func resolveLLMConfig(s settings) (cfg llm.Config, ok bool, err error) {
	if s.LLMProvider == "" {
		cfg, ok = llm.DiscoverConfig()
		if !ok {
			return llm.Config{}, false, nil
		}
	} else {
		cfg = llm.ConfigFromEnv()
		cfg.Provider = s.LLMProvider
	}
	cfg = cfg.WithModel(s.LLMModel)
	if err := cfg.Validate(); err != nil {
		return cfg, false, err
	}
	return cfg, true, nil
}

func buildServices(ctx context.Context, s settings, repo store.EventRepo, logger *slog.Logger) (*services, error) {
	fb, err := fallback.Default()
	if err != nil {
		return nil, fmt.Errorf("load sample challenges: %w", err)
	}

	opts := []provision.Option{provision.WithEvents(repo), provision.WithLogger(logger)}
	if s.BatchSize > 0 {
		opts = append(opts, provision.WithBatchSize(s.BatchSize))
	}

	cfg, ok, err := resolveLLMConfig(s)
	if err != nil {
		logger.Warn("model provider not configured", "error", err)
	}
	if !ok {
		logger.Info("no model configured, serving sample challenges")
		return &services{Provision: provision.New(nil, fb, opts...)}, nil
	}

	provider, err := llm.NewProvider(ctx, cfg, repo, logger)
	if err != nil {
		logger.Warn("model provider unavailable, serving sample challenges", "provider", cfg.Provider, "error", err)
		return &services{Provision: provision.New(nil, fb, opts...)}, nil
	}

	genCfg := challengegen.DefaultConfig()
	if s.ProvisionTimeout > 0 {
		genCfg.Timeout = s.ProvisionTimeout
	}
	gen := challengegen.New(provider, genCfg,
		challengegen.WithHistory(repo),
		challengegen.WithLogger(logger))

	return &services{
		Provision:       provision.New(gen, fb, opts...),
		ModelConfigured: cfg.Provider != "mock",
	}, nil
}
