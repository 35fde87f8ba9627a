// Package quota enforces per-caller daily usage limits. Counters are keyed by
// feature and caller and reset at midnight UTC.
package quota

import (
	"context"
	"fmt"
	"time"
)

// DayLayout is the format of the UTC day stored with each counter.
const DayLayout = "2006-01-02"

// Reason explains a quota decision.
type Reason string

const (
	ReasonOK           Reason = "ok"
	ReasonLimitReached Reason = "limit_reached"
	ReasonOwner        Reason = "owner"
)

// Caller identifies who is using a feature. Key is an IP address for
// anonymous callers and the account email for signed-in ones.
type Caller struct {
	Key      string
	SignedIn bool
	Owner    bool
}

// Result is the outcome of a quota check. For the owner Unlimited is set and
// Remaining is -1.
type Result struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Day       string `json:"day"`
	Reason    Reason `json:"reason"`
	Unlimited bool   `json:"unlimited,omitempty"`
}

// Limits are the daily allowances per caller class.
type Limits struct {
	Anonymous int
	SignedIn  int
}

// Store persists daily counters. Implementations must make Increment atomic
// per key.
type Store interface {
	// Usage returns the count recorded for key on day, or 0 when the stored
	// day differs or the key is unknown.
	Usage(ctx context.Context, key, day string) (int, error)
	// Increment resets the counter when its stored day differs from day, then
	// adds one if the count is below limit. It returns the resulting count
	// and whether the increment happened.
	Increment(ctx context.Context, key, day string, limit int) (used int, ok bool, err error)
}

// Gate applies Limits for one feature against a Store.
type Gate struct {
	feature string
	limits  Limits
	store   Store
	now     func() time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// NewGate creates a gate for feature.
func NewGate(feature string, limits Limits, store Store, opts ...Option) *Gate {
	g := &Gate{
		feature: feature,
		limits:  limits,
		store:   store,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Feature returns the feature name the gate counts.
func (g *Gate) Feature() string {
	return g.feature
}

// Today returns the current UTC day key.
func (g *Gate) Today() string {
	return g.now().UTC().Format(DayLayout)
}

// Status reports the caller's standing without consuming anything.
func (g *Gate) Status(ctx context.Context, c Caller) (Result, error) {
	day := g.Today()
	limit := g.limitFor(c)
	if c.Owner {
		return ownerResult(day, limit), nil
	}

	used, err := g.store.Usage(ctx, g.key(c), day)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s quota: %w", g.feature, err)
	}
	return newResult(day, limit, used, used < limit), nil
}

// Consume atomically checks the limit and records one use. A denied result
// is not an error.
func (g *Gate) Consume(ctx context.Context, c Caller) (Result, error) {
	day := g.Today()
	limit := g.limitFor(c)
	if c.Owner {
		return ownerResult(day, limit), nil
	}

	used, ok, err := g.store.Increment(ctx, g.key(c), day, limit)
	if err != nil {
		return Result{}, fmt.Errorf("failed to consume %s quota: %w", g.feature, err)
	}
	return newResult(day, limit, used, ok), nil
}

func (g *Gate) limitFor(c Caller) int {
	if c.SignedIn {
		return g.limits.SignedIn
	}
	return g.limits.Anonymous
}

func (g *Gate) key(c Caller) string {
	return g.feature + ":" + c.Key
}

func newResult(day string, limit, used int, allowed bool) Result {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	reason := ReasonOK
	if !allowed {
		reason = ReasonLimitReached
	}
	return Result{
		Allowed:   allowed,
		Remaining: remaining,
		Used:      used,
		Limit:     limit,
		Day:       day,
		Reason:    reason,
	}
}

func ownerResult(day string, limit int) Result {
	return Result{
		Allowed:   true,
		Remaining: -1,
		Limit:     limit,
		Day:       day,
		Reason:    ReasonOwner,
		Unlimited: true,
	}
}
