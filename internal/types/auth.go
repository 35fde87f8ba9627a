// Package types provides the request and response shapes shared by the HTTP API and the CLI.
package types

import "time"

// OwnerLoginRequest represents the site owner's login request.
type OwnerLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OwnerLoginResponse carries the signed token issued to the owner.
type OwnerLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Validate validates the OwnerLoginRequest using the validator.
func (r *OwnerLoginRequest) Validate() error {
	return validate.Struct(r)
}
