package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/ats-ranker/internal/db"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditResponse lists stored audit entries, newest first.
type AuditResponse struct {
	OK      bool             `json:"ok"`
	Entries []db.AuditRecord `json:"entries"`
}

// handleAudit lists recent audit entries for the owner.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if s.auditLog == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, CodeUnavailable, "Audit log requires a database")
		return
	}

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, CodeBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxAuditLimit)
	}

	entries, err := s.auditLog.ListAudit(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}
	if entries == nil {
		entries = []db.AuditRecord{}
	}
	s.jsonResponse(w, http.StatusOK, AuditResponse{OK: true, Entries: entries})
}
