package auth_test

import (
	"testing"

	auth "github.com/goliatone/go-authflow"
	"github.com/stretchr/testify/assert"
)

func TestRegisterPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload auth.RegisterPayload
		codes   []string
	}{
		{
			name: "valid payload",
			payload: auth.RegisterPayload{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "ada@example.com",
				Password:  "Pw1!secret",
			},
		},
		{
			name: "missing everything",
			payload: auth.RegisterPayload{},
			codes:   []string{"InvalidEmail", "InvalidPassword"},
		},
		{
			name: "bad email shape",
			payload: auth.RegisterPayload{
				Email:    "not-an-email",
				Password: "Pw1!secret",
			},
			codes: []string{"InvalidEmail"},
		},
		{
			name: "short password",
			payload: auth.RegisterPayload{
				Email:    "ada@example.com",
				Password: "pw",
			},
			codes: []string{"InvalidPassword"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.payload.Validate()

			if len(tt.codes) == 0 {
				assert.Empty(t, errs)
				return
			}

			assert.Len(t, errs, len(tt.codes))
			for i, code := range tt.codes {
				assert.Equal(t, code, errs[i].Code)
				assert.NotEmpty(t, errs[i].Description)
			}
		})
	}
}

func TestRegistrationError_Error(t *testing.T) {
	err := auth.RegistrationError{Code: "DuplicateEmail", Description: "Email 'a@x.com' is already taken."}
	assert.Equal(t, "DuplicateEmail: Email 'a@x.com' is already taken.", err.Error())
}
