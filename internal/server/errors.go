// Package server provides the HTTP API for the ATS ranker.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/ats-ranker/internal/quota"
)

// Error codes carried in the "error" field of failure bodies.
const (
	CodeBadRequest    = "bad_request"
	CodeQuotaExceeded = "quota_exceeded"
	CodeRateLimited   = "rate_limited"
	CodeUnauthorized  = "unauthorized"
	CodeForbidden     = "forbidden"
	CodeUnavailable   = "unavailable"
	CodeCoachFailed   = "coach_failed"
	CodeServerError   = "server_error"
)

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrQuotaExceeded indicates the caller has used up a feature's daily allowance.
// Code lets each route report the code its clients expect.
type ErrQuotaExceeded struct {
	Code    string
	Message string
	Result  quota.Result
}

func (e *ErrQuotaExceeded) Error() string {
	return fmt.Sprintf("daily limit reached: %d of %d used on %s", e.Result.Used, e.Result.Limit, e.Result.Day)
}

// ErrUnauthenticated indicates a route that needs a signed-in caller.
type ErrUnauthenticated struct{}

func (e *ErrUnauthenticated) Error() string {
	return "sign in required"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var quotaErr *ErrQuotaExceeded
	var credentialsErr *ErrInvalidCredentials
	var authErr *ErrUnauthenticated
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &quotaErr):
		return http.StatusTooManyRequests
	case errors.As(err, &credentialsErr), errors.As(err, &authErr):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorCode returns the code reported for err, falling back to fallback for
// unexpected faults.
func errorCode(err error, fallback string) string {
	var quotaErr *ErrQuotaExceeded
	if errors.As(err, &quotaErr) {
		if quotaErr.Code != "" {
			return quotaErr.Code
		}
		return CodeQuotaExceeded
	}

	var validationErr *ErrValidation
	var credentialsErr *ErrInvalidCredentials
	var authErr *ErrUnauthenticated
	switch {
	case errors.As(err, &validationErr):
		return CodeBadRequest
	case errors.As(err, &credentialsErr), errors.As(err, &authErr):
		return CodeUnauthorized
	default:
		return fallback
	}
}
