package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claim keys used beyond the registered JWT set.
const (
	ClaimUserID = "uid"
	ClaimEmail  = "email"
)

// reservedClaimKeys are never overwritten by an identity's custom claims.
// Earlier union operands win: registered claims, then uid/email, then custom
// claims, then role claims, which live in their own list.
var reservedClaimKeys = map[string]struct{}{
	"sub":       {},
	"jti":       {},
	"iss":       {},
	"aud":       {},
	"exp":       {},
	"iat":       {},
	"nbf":       {},
	ClaimUserID: {},
	ClaimEmail:  {},
}

// JWTClaims is the claim set carried by every issued access token
type JWTClaims struct {
	jwt.RegisteredClaims
	UID    string            `json:"uid,omitempty"`
	Email  string            `json:"email,omitempty"`
	Roles  []string          `json:"roles,omitempty"`
	Custom map[string]string `json:"custom,omitempty"`
}

// NewAuthClaims assembles the claim set for a resolved user: subject and
// email claim from the user's email, a fresh random token id, the user id
// under a custom key, every custom claim, and every role name. Pure function
// of the user snapshot except for the token id, which MUST be fresh per call
// so issuances never collide.
func NewAuthClaims(user *User, roles []string, custom map[string]string) *JWTClaims {
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.Email,
		},
		UID:   user.ID.String(),
		Email: user.Email,
	}

	if len(roles) > 0 {
		claims.Roles = append([]string(nil), roles...)
	}

	if len(custom) > 0 {
		claims.Custom = make(map[string]string, len(custom))
		for key, value := range custom {
			if _, reserved := reservedClaimKeys[key]; reserved {
				continue
			}
			claims.Custom[key] = value
		}
	}

	ensureTokenID(&claims.RegisteredClaims)

	return claims
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}

// UserID returns the user id claim, falling back to the subject
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// UserEmail returns the email claim, falling back to the subject
func (c *JWTClaims) UserEmail() string {
	if c.Email != "" {
		return c.Email
	}
	return c.RegisteredClaims.Subject
}

// HasRole checks if the claim set carries a specific role
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CustomClaim returns the value of a custom claim, if present
func (c *JWTClaims) CustomClaim(key string) (string, bool) {
	value, ok := c.Custom[key]
	return value, ok
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// Issued returns the issued at time
func (c *JWTClaims) Issued() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
