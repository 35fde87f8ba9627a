//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   OwnerLoginRequest
		wantField string
		wantTag   string
	}{
		{name: "valid", request: OwnerLoginRequest{Email: "owner@example.com", Password: "correct horse"}},
		{name: "missing email", request: OwnerLoginRequest{Password: "correct horse"}, wantField: "Email", wantTag: "required"},
		{name: "malformed email", request: OwnerLoginRequest{Email: "owner-at-example", Password: "pw"}, wantField: "Email", wantTag: "email"},
		{name: "missing password", request: OwnerLoginRequest{Email: "owner@example.com"}, wantField: "Password", wantTag: "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
		})
	}
}
