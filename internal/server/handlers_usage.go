package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ranker/internal/quota"
)

// UsageResponse flattens a quota result into a success body.
type UsageResponse struct {
	OK      bool   `json:"ok"`
	Feature string `json:"feature"`
	quota.Result
}

// gateFor returns the gate for a feature name; empty means score.
func (s *Server) gateFor(feature string) *quota.Gate {
	switch feature {
	case "", FeatureScore:
		return s.scoreGate
	case FeatureCoach:
		return s.coachGate
	case FeatureDemo:
		return s.demoGate
	default:
		return nil
	}
}

// handleUsageStatus reports the caller's standing for a feature without
// consuming anything.
func (s *Server) handleUsageStatus(w http.ResponseWriter, r *http.Request) {
	gate := s.gateFor(r.URL.Query().Get("feature"))
	if gate == nil {
		s.errorResponse(w, http.StatusBadRequest, CodeBadRequest, "feature must be one of score, coach, demo")
		return
	}

	res, err := gate.Status(r.Context(), s.callerFor(r))
	if err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}
	s.jsonResponse(w, http.StatusOK, UsageResponse{OK: true, Feature: gate.Feature(), Result: res})
}

// handleUsageConsume spends one unit of the demo feature for a signed-in
// caller and records the change in the audit log.
func (s *Server) handleUsageConsume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := s.callerFor(r)
	if !caller.SignedIn {
		s.writeError(w, r, &ErrUnauthenticated{}, CodeServerError)
		return
	}

	before, err := s.demoGate.Status(ctx, caller)
	if err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}
	if !before.Allowed {
		s.limitReached(w, before)
		return
	}

	after, err := s.demoGate.Consume(ctx, caller)
	if err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}
	if !after.Allowed {
		s.limitReached(w, after)
		return
	}

	s.audit(ctx, caller, "quota.consume", map[string]quota.Result{"before": before, "after": after})
	s.jsonResponse(w, http.StatusOK, UsageResponse{OK: true, Feature: FeatureDemo, Result: after})
}

// limitReached writes the 429 body used by the usage routes.
func (s *Server) limitReached(w http.ResponseWriter, res quota.Result) {
	s.jsonResponse(w, http.StatusTooManyRequests, struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
		quota.Result
	}{Error: string(quota.ReasonLimitReached), Result: res})
}

// audit logs a quota event and stores it when an auditor is configured.
// Storage failures are logged and otherwise ignored.
func (s *Server) audit(ctx context.Context, caller quota.Caller, action string, detail any) {
	s.logger.Info("audit",
		zap.String("caller", caller.Key),
		zap.String("action", action),
		zap.Any("detail", detail),
	)
	if s.auditor == nil {
		return
	}

	entry := quota.AuditEntry{
		CallerKey: caller.Key,
		Action:    action,
		Detail:    detail,
		At:        s.now().UTC(),
	}
	if err := s.auditor.Audit(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit entry", zap.String("action", action), zap.Error(err))
	}
}
