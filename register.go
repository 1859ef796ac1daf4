package auth

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/hashid/pkg/hashid"
)

// RegisterPayload is the registration request shape. The email doubles as
// the account's username.
type RegisterPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	// UseHashid derives the user id deterministically from the email
	// instead of generating a random one.
	UseHashid bool `json:"-"`
}

// Validate runs field validation and maps failures to the structured
// registration error list, sorted by field for a deterministic response.
func (r RegisterPayload) Validate() []RegistrationError {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, 200)),
		validation.Field(&r.LastName, validation.Length(0, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		return []RegistrationError{{
			Code:        "InvalidPayload",
			Description: err.Error(),
		}}
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]RegistrationError, 0, len(fields))
	for _, field := range fields {
		out = append(out, RegistrationError{
			Code:        "Invalid" + exportFieldName(field),
			Description: field + " " + verrs[field].Error(),
		})
	}

	return out
}

// exportFieldName turns a snake_case json field name back into the exported
// Go identifier used in error codes, e.g. "first_name" -> "FirstName".
func exportFieldName(field string) string {
	parts := strings.Split(field, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "")
}

// toUser maps the payload to a new user shape. The identity store owns
// password hashing and uniqueness checks on creation.
func (r RegisterPayload) toUser() *User {
	email := strings.ToLower(strings.TrimSpace(r.Email))

	user := &User{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     email,
		Username:  email,
	}

	if r.UseHashid {
		if id, err := hashid.NewUUID(email); err == nil {
			user.ID = id
		}
	}

	return user
}
