package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/ats-ranker/internal/quota"
	"github.com/jonathan/ats-ranker/internal/server/middleware"
)

// quotaCookieName is the advisory mirror of the caller's score usage.
// The quota store stays authoritative; the cookie is never read back.
const quotaCookieName = "ats_quota_v1"

// callerFor identifies who is making the request. Signed-in callers are keyed
// by email, everyone else by client IP.
func (s *Server) callerFor(r *http.Request) quota.Caller {
	identity, ok := middleware.FromContext(r.Context())
	if !ok || identity.GetEmail() == "" {
		return quota.Caller{Key: clientIP(r)}
	}

	email := strings.ToLower(strings.TrimSpace(identity.GetEmail()))
	return quota.Caller{
		Key:      email,
		SignedIn: true,
		Owner:    identity.IsOwner() || s.cfg.Owner.IsOwner(email),
	}
}

// quotaMessage is the user-facing text for an exhausted allowance.
type quotaMessage func(c quota.Caller, res quota.Result) string

func scoreLimitMessage(c quota.Caller, res quota.Result) string {
	if c.SignedIn {
		return fmt.Sprintf("Daily limit reached (%d). Try again tomorrow.", res.Limit)
	}
	return fmt.Sprintf("Daily free limit reached (%d). Sign in to unlock.", res.Limit)
}

func coachLimitMessage(c quota.Caller, _ quota.Result) string {
	if c.SignedIn {
		return "Daily coach limit reached. Try again tomorrow."
	}
	return "Daily coach limit reached. Sign in to continue."
}

func demoLimitMessage(_ quota.Caller, res quota.Result) string {
	return fmt.Sprintf("Daily limit reached (%d).", res.Limit)
}

// checkQuota rejects callers who are already over the limit without
// consuming anything.
func (s *Server) checkQuota(ctx context.Context, gate *quota.Gate, c quota.Caller, code string, msg quotaMessage) error {
	res, err := gate.Status(ctx, c)
	if err != nil {
		return err
	}
	if !res.Allowed {
		return &ErrQuotaExceeded{Code: code, Message: msg(c, res), Result: res}
	}
	return nil
}

// consumeQuota records one use, or returns ErrQuotaExceeded when the caller
// reached the limit in the meantime.
func (s *Server) consumeQuota(ctx context.Context, gate *quota.Gate, c quota.Caller, code string, msg quotaMessage) (quota.Result, error) {
	res, err := gate.Consume(ctx, c)
	if err != nil {
		return res, err
	}
	if !res.Allowed {
		return res, &ErrQuotaExceeded{Code: code, Message: msg(c, res), Result: res}
	}
	return res, nil
}

// setQuotaCookie mirrors the day's usage count into a short-lived cookie so
// clients can show it without another request. The value is URL-encoded JSON.
func setQuotaCookie(w http.ResponseWriter, res quota.Result) {
	value, err := json.Marshal(struct {
		Day string `json:"day"`
		N   int    `json:"n"`
	}{Day: res.Day, N: res.Used})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     quotaCookieName,
		Value:    url.QueryEscape(string(value)),
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, message string) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &ErrValidation{Field: "body", Message: "Request body too large"}
		}
		return &ErrValidation{Field: "body", Message: message}
	}
	return nil
}
