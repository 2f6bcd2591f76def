package challengegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/llm"
)

// Generator produces coding challenges from a generative model. It never
// substitutes fallback content; callers decide what to do on failure.
type Generator interface {
	// Challenge produces one challenge at the tier of level.
	Challenge(ctx context.Context, level challenge.Level) (*Single, error)

	// Batch produces up to n challenges at the tier of level.
	Batch(ctx context.Context, n int, level challenge.Level) (challenge.Batch, error)
}

// Single is one provisioned challenge and where it came from.
type Single struct {
	Challenge  challenge.Challenge
	Provenance challenge.Provenance
}

// TitleSource supplies recently served titles for the avoid-list.
type TitleSource interface {
	RecentChallengeTitles(ctx context.Context, limit int) ([]string, error)
}

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	history  TitleSource
	logger   *slog.Logger
}

// Option customizes an LLMGenerator.
type Option func(*LLMGenerator)

// WithHistory feeds recently served titles into every prompt.
func WithHistory(src TitleSource) Option {
	return func(g *LLMGenerator) { g.history = src }
}

// WithLogger sets the logger used for normalization warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(g *LLMGenerator) { g.logger = logger }
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config, opts ...Option) *LLMGenerator {
	g := &LLMGenerator{provider: provider, config: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Challenge produces a single challenge. A reply that is not a JSON
// object is a provisioning failure.
func (g *LLMGenerator) Challenge(ctx context.Context, level challenge.Level) (*Single, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChallengeGen)

	raw, err := g.complete(ctx, 1, level)
	if err != nil {
		return nil, err
	}
	if _, ok := raw.(map[string]any); !ok {
		return nil, &ProvisionError{Stage: StageShape, Err: fmt.Errorf("expected a JSON object, got %T", raw)}
	}

	c, warnings := NewNormalizer(level).Challenge(raw)
	g.logWarnings(level, warnings)

	return &Single{Challenge: c, Provenance: challenge.ProvenanceModel}, nil
}

// Batch produces up to n challenges. A reply that normalizes to no
// challenges is a provisioning failure.
func (g *LLMGenerator) Batch(ctx context.Context, n int, level challenge.Level) (challenge.Batch, error) {
	if n < 1 {
		n = 1
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeChallengeBatch)

	raw, err := g.complete(ctx, n, level)
	if err != nil {
		return challenge.Batch{}, err
	}

	cs, warnings := NewNormalizer(level).Batch(raw, n)
	g.logWarnings(level, warnings)

	if len(cs) == 0 {
		return challenge.Batch{}, &ProvisionError{Stage: StageShape, Err: errors.New("reply held no challenges")}
	}
	return challenge.NewBatch(cs, challenge.ProvenanceModel), nil
}

// complete runs prompt → model → extract under the configured timeout.
func (g *LLMGenerator) complete(ctx context.Context, count int, level challenge.Level) (any, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	prompt := BuildPrompt(PromptInput{
		Count: count,
		Level: level,
		Avoid: g.recentTitles(ctx),
	}, g.config.MaxAvoidTitles)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   g.config.maxTokens(count),
		Temperature: g.config.Temperature,
		JSON:        true,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &ProvisionError{Stage: StageTimeout, Err: fmt.Errorf("%w: %w", ErrTimeout, err)}
		}
		return nil, &ProvisionError{Stage: StageModel, Err: err}
	}

	raw, err := Extract(resp.Text)
	if err != nil {
		return nil, &ProvisionError{Stage: StageExtract, Err: err}
	}
	return raw, nil
}

func (g *LLMGenerator) recentTitles(ctx context.Context) []string {
	if g.history == nil || g.config.MaxAvoidTitles <= 0 {
		return nil
	}
	titles, err := g.history.RecentChallengeTitles(ctx, g.config.MaxAvoidTitles)
	if err != nil {
		g.logger.Warn("could not load recent challenge titles", "error", err)
		return nil
	}
	return titles
}

func (g *LLMGenerator) logWarnings(level challenge.Level, warnings []Warning) {
	for _, w := range warnings {
		g.logger.Warn("normalized model output",
			"level", level,
			"challenge", w.ChallengeID,
			"field", w.Field,
			"index", w.Index,
			"note", w.Message)
	}
}
