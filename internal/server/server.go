package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/ats-ranker/internal/coach"
	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/db"
	"github.com/jonathan/ats-ranker/internal/quota"
	"github.com/jonathan/ats-ranker/internal/server/middleware"
	"github.com/jonathan/ats-ranker/internal/server/ratelimit"
)

// Quota features. Each is counted separately per caller.
const (
	FeatureScore = "score"
	FeatureCoach = "coach"
	FeatureDemo  = "demo"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// AuditLister reads back stored audit entries.
type AuditLister interface {
	ListAudit(ctx context.Context, limit int) ([]db.AuditRecord, error)
}

// Deps are the collaborators a Server needs beyond its configuration.
type Deps struct {
	Store    quota.Store    // required
	Coach    *coach.Service // nil uses the template fallback only
	Auditor  quota.Auditor  // optional
	AuditLog AuditLister    // optional
	Logger   *zap.Logger
	Now      func() time.Time
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	cfg            config.Config
	logger         *zap.Logger
	scoreGate      *quota.Gate
	coachGate      *quota.Gate
	demoGate       *quota.Gate
	coach          *coach.Service
	auditor        quota.Auditor
	auditLog       AuditLister
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	passwordConfig *config.PasswordConfig
	now            func() time.Time
}

// New creates a new server instance
func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, errors.New("quota store is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	coachService := deps.Coach
	if coachService == nil {
		coachService = coach.NewService(nil, cfg.LLM.Timeout, logger)
	}

	clock := quota.WithClock(now)
	s := &Server{
		cfg:    cfg,
		logger: logger,
		scoreGate: quota.NewGate(FeatureScore, quota.Limits{
			Anonymous: cfg.Quota.AnonymousScore,
			SignedIn:  cfg.Quota.SignedIn,
		}, deps.Store, clock),
		coachGate: quota.NewGate(FeatureCoach, quota.Limits{
			Anonymous: cfg.Quota.AnonymousCoach,
			SignedIn:  cfg.Quota.SignedIn,
		}, deps.Store, clock),
		demoGate: quota.NewGate(FeatureDemo, quota.Limits{
			Anonymous: 0,
			SignedIn:  cfg.Quota.SignedIn,
		}, deps.Store, clock),
		coach:          coachService,
		auditor:        deps.Auditor,
		auditLog:       deps.AuditLog,
		rateLimiter:    ratelimit.NewLimiter(ratelimit.NewConfig(cfg.RateLimit)),
		passwordConfig: &config.PasswordConfig{BcryptCost: cfg.Password.BcryptCost, Pepper: cfg.Password.Pepper},
		now:            now,
	}

	var validator middleware.TokenValidator
	if cfg.JWT.Enabled() {
		jwtConfig := cfg.JWT
		s.jwtService = NewJWTService(&jwtConfig)
		validator = s.jwtService.AsTokenValidator()
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Scoring and coaching
	mux.HandleFunc("GET /api/ats/score", s.handleScoreDocs)
	mux.HandleFunc("POST /api/ats/score", s.handleScore)
	mux.HandleFunc("POST /api/ats/coach", s.handleCoach)
	mux.HandleFunc("POST /api/ats/rank", s.handleRank)
	mux.HandleFunc("POST /api/extract", s.handleExtract)

	// Usage
	mux.HandleFunc("GET /api/usage/status", s.handleUsageStatus)
	mux.HandleFunc("POST /api/usage/consume", s.handleUsageConsume)

	// Owner
	mux.HandleFunc("POST /api/auth/owner", s.handleOwnerLogin)
	mux.Handle("GET /api/audit", middleware.RequireOwner(http.HandlerFunc(s.handleAudit)))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(middleware.OptionalAuth(validator)(mux))))
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start runs the server until ctx is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()

	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowedOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin.
func (s *Server) allowedOrigin(origin string) string {
	if slices.Contains(s.cfg.AllowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(s.cfg.AllowedOrigins, origin) {
		return origin
	}
	return ""
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientIP(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging tags each request with an ID and logs its outcome.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestID),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// failure is the body of every error response.
type failure struct {
	OK      bool          `json:"ok"`
	Error   string        `json:"error"`
	Message string        `json:"message"`
	Quota   *quota.Result `json:"quota,omitempty"`
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, code, message string) {
	s.jsonResponse(w, status, failure{Error: code, Message: message})
}

// writeError maps err to a status and code. Unexpected errors are logged and
// reported with fallbackCode and a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	status := HTTPStatus(err)
	code := errorCode(err, fallbackCode)

	body := failure{Error: code, Message: err.Error()}
	var quotaErr *ErrQuotaExceeded
	var validationErr *ErrValidation
	switch {
	case errors.As(err, &quotaErr):
		body.Message = quotaErr.Message
		body.Quota = &quotaErr.Result
	case errors.As(err, &validationErr):
		body.Message = validationErr.Message
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("code", code),
			zap.Error(err),
		)
		body.Message = "Unexpected error"
	}

	s.jsonResponse(w, status, body)
}

// clientIP extracts the client IP address from the request.
// Only RemoteAddr is trusted; X-Forwarded-For is ignored.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
		zap.Time("reset", info.ResetTime),
	)

	s.errorResponse(w, http.StatusTooManyRequests, CodeRateLimited, "Too many requests. Please try again later.")
}
