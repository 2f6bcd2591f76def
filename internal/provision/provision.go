// Package provision answers challenge requests, substituting the fallback
// set whenever the model path fails.
package provision

import (
	"context"
	"errors"
	"log/slog"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/challengegen"
	"github.com/codearena/arena/internal/fallback"
	"github.com/codearena/arena/internal/store"
)

// DefaultBatchSize is the number of challenges in a practice session.
const DefaultBatchSize = 5

var errNoGenerator = errors.New("no model configured")

// Service is the only caller of the Generator. It never returns a
// provisioning failure; only an exhausted fallback set surfaces as an
// error.
type Service struct {
	gen       challengegen.Generator
	fallback  *fallback.Set
	events    store.EventRepo
	logger    *slog.Logger
	batchSize int
}

// Option customizes a Service.
type Option func(*Service)

// WithEvents records every outcome as a provision event.
func WithEvents(repo store.EventRepo) Option {
	return func(s *Service) { s.events = repo }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithBatchSize sets the number of challenges RequestBatch asks for.
func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// New creates a Service. gen may be nil, in which case every request is
// served from the fallback set.
func New(gen challengegen.Generator, fb *fallback.Set, opts ...Option) *Service {
	s := &Service{
		gen:       gen,
		fallback:  fb,
		logger:    slog.Default(),
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BatchSize returns the configured session size.
func (s *Service) BatchSize() int { return s.batchSize }

// RequestBatch provisions a session's worth of challenges at level.
func (s *Service) RequestBatch(ctx context.Context, level challenge.Level) (challenge.Batch, error) {
	var genErr error
	if s.gen != nil {
		batch, err := s.gen.Batch(ctx, s.batchSize, level)
		if err == nil {
			s.record(ctx, level, s.batchSize, batch.Provenance(), batch.Titles(), nil)
			return batch, nil
		}
		genErr = err
	} else {
		genErr = errNoGenerator
	}

	s.warn("batch", level, genErr)
	batch, err := s.fallback.Batch(s.batchSize, level)
	if err != nil {
		s.record(ctx, level, s.batchSize, challenge.ProvenanceFallback, nil, errors.Join(genErr, err))
		return challenge.Batch{}, err
	}
	s.record(ctx, level, s.batchSize, batch.Provenance(), batch.Titles(), genErr)
	return batch, nil
}

// RequestChallenge provisions one challenge at level.
func (s *Service) RequestChallenge(ctx context.Context, level challenge.Level) (*challengegen.Single, error) {
	var genErr error
	if s.gen != nil {
		single, err := s.gen.Challenge(ctx, level)
		if err == nil {
			s.record(ctx, level, 1, single.Provenance, []string{single.Challenge.Title}, nil)
			return single, nil
		}
		genErr = err
	} else {
		genErr = errNoGenerator
	}

	s.warn("challenge", level, genErr)
	c, err := s.fallback.Challenge(level)
	if err != nil {
		s.record(ctx, level, 1, challenge.ProvenanceFallback, nil, errors.Join(genErr, err))
		return nil, err
	}
	s.record(ctx, level, 1, challenge.ProvenanceFallback, []string{c.Title}, genErr)
	return &challengegen.Single{Challenge: c, Provenance: challenge.ProvenanceFallback}, nil
}

func (s *Service) warn(kind string, level challenge.Level, err error) {
	attrs := []any{"request", kind, "level", level, "error", err}
	var perr *challengegen.ProvisionError
	if errors.As(err, &perr) {
		attrs = append(attrs, "stage", perr.Stage)
	}
	s.logger.Warn("serving fallback challenges", attrs...)
}

func (s *Service) record(ctx context.Context, level challenge.Level, requested int, prov challenge.Provenance, titles []string, cause error) {
	if s.events == nil {
		return
	}
	data := store.ProvisionEventData{
		Level:      string(level),
		Difficulty: string(level.Difficulty()),
		Requested:  requested,
		Provenance: string(prov),
		Titles:     titles,
	}
	if cause != nil {
		data.ErrorMessage = cause.Error()
	}
	// Record even if the caller has gone away.
	if err := s.events.AppendProvisionEvent(context.WithoutCancel(ctx), data); err != nil {
		s.logger.Warn("failed to record provision event", "error", err)
	}
}
