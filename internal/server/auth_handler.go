package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/ats-ranker/internal/types"
)

// handleOwnerLogin exchanges the owner's email and password for a token.
func (s *Server) handleOwnerLogin(w http.ResponseWriter, r *http.Request) {
	if s.jwtService == nil || s.cfg.Owner.Email == "" {
		s.errorResponse(w, http.StatusServiceUnavailable, CodeUnavailable, "Owner login is not configured")
		return
	}

	var req types.OwnerLoginRequest
	if err := decodeJSON(w, r, &req, "Provide email and password"); err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err), CodeServerError)
		return
	}

	if !s.cfg.Owner.Authenticate(s.passwordConfig, req.Email, req.Password) {
		s.logger.Warn("owner login rejected", zap.String("client_ip", clientIP(r)))
		s.writeError(w, r, &ErrInvalidCredentials{}, CodeServerError)
		return
	}

	token, expiresAt, err := s.jwtService.GenerateToken(s.cfg.Owner.Email, true)
	if err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}

	s.logger.Info("owner signed in")
	s.jsonResponse(w, http.StatusOK, types.OwnerLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// validationError converts validator errors into ErrValidation, reporting
// the first failing field.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{
			Field:   ve.Field(),
			Message: "validation error: " + ve.Field() + " - " + ve.Tag(),
		}
	}
	return &ErrValidation{Field: "body", Message: "validation error: invalid request"}
}
