package coach

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/ats-ranker/internal/types"
)

type fakeGenerator struct {
	report types.CoachingReport
	err    error
	block  bool
	calls  int
}

func (f *fakeGenerator) Generate(ctx context.Context, _ Input) (types.CoachingReport, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return types.CoachingReport{}, ctx.Err()
	}
	return f.report, f.err
}

func sampleInput() Input {
	return Input{
		JobText:       "Go engineer with PostgreSQL",
		CandidateText: "Go developer using PostgreSQL",
	}
}

func TestService_GeneratedReport(t *testing.T) {
	want := types.CoachingReport{Summary: "from the model"}
	gen := &fakeGenerator{report: want}

	out := NewService(gen, time.Second, nil).Coach(context.Background(), sampleInput())

	assert.Equal(t, SourceGenerated, out.Source)
	assert.Equal(t, want, out.Report)
	assert.Equal(t, 1, gen.calls)
}

func TestService_FallbackOnError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	gen := &fakeGenerator{err: errors.New("quota exhausted")}

	in := sampleInput()
	out := NewService(gen, time.Second, zap.New(core)).Coach(context.Background(), in)

	assert.Equal(t, SourceFallback, out.Source)
	assert.Equal(t, Fallback(in), out.Report)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "fallback")
}

func TestService_FallbackWithoutGenerator(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	out := NewService(nil, 0, zap.New(core)).Coach(context.Background(), sampleInput())

	assert.Equal(t, SourceFallback, out.Source)
	assert.Equal(t, 0, logs.Len(), "a missing generator is not a failure")
}

func TestService_FallbackOnTimeout(t *testing.T) {
	gen := &fakeGenerator{block: true}

	start := time.Now()
	out := NewService(gen, 20*time.Millisecond, nil).Coach(context.Background(), sampleInput())

	assert.Equal(t, SourceFallback, out.Source)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewService_DefaultTimeout(t *testing.T) {
	s := NewService(nil, 0, nil)
	assert.Equal(t, DefaultTimeout, s.timeout)
	assert.NotNil(t, s.logger)
}
