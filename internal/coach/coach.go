// Package coach produces coaching reports that help a candidate tailor a CV to
// a job. A language model is tried first when one is configured; any failure
// falls back to a deterministic template report.
package coach

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ranker/internal/types"
)

// ErrUnavailable reports that no language model is configured.
var ErrUnavailable = errors.New("coach: generator unavailable")

// DefaultTimeout bounds a single generator call.
const DefaultTimeout = 20 * time.Second

// Source identifies how a report was produced.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Input is the text pair to coach on, with optional match and gap hints
// (usually the ranker's output for the same pair).
type Input struct {
	JobText       string
	CandidateText string
	Matches       []string
	Gaps          []string
}

// Outcome is a report tagged with its source.
type Outcome struct {
	Source Source
	Report types.CoachingReport
}

// Generator produces a coaching report from an external service.
type Generator interface {
	Generate(ctx context.Context, in Input) (types.CoachingReport, error)
}

// Service picks between a generator and the template fallback.
type Service struct {
	generator Generator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewService creates a coaching service. A nil generator always falls back.
func NewService(generator Generator, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{generator: generator, timeout: timeout, logger: logger}
}

// Coach always returns a report. Generator errors are logged, never returned.
func (s *Service) Coach(ctx context.Context, in Input) Outcome {
	report, err := s.generate(ctx, in)
	if err == nil {
		return Outcome{Source: SourceGenerated, Report: report}
	}

	if !errors.Is(err, ErrUnavailable) {
		s.logger.Warn("coach generator failed, using fallback", zap.Error(err))
	}
	return Outcome{Source: SourceFallback, Report: Fallback(in)}
}

func (s *Service) generate(ctx context.Context, in Input) (types.CoachingReport, error) {
	if s.generator == nil {
		return types.CoachingReport{}, ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.generator.Generate(ctx, in)
}
