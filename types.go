package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Register(ctx context.Context, payload RegisterPayload) ([]RegistrationError, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	RefreshToken(ctx context.Context, request *AuthResponse) (*AuthResponse, error)
}

// IdentityStore is the user record boundary. The library reads and mutates
// user state exclusively through this contract and never persists identities
// itself. NewUsersRepository provides the default Bun-backed implementation.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	CheckPassword(ctx context.Context, user *User, password string) error
	CreateUser(ctx context.Context, user *User, password string) ([]RegistrationError, error)
	AssignRole(ctx context.Context, user *User, role string) error
	GetRoles(ctx context.Context, user *User) ([]string, error)
	GetClaims(ctx context.Context, user *User) (map[string]string, error)
	BumpSecurityStamp(ctx context.Context, user *User) error
}

// TokenStore persists named opaque tokens keyed by (user, provider, name).
// NewAuthTokensRepository provides the default Bun-backed implementation.
type TokenStore interface {
	RemoveToken(ctx context.Context, user *User, provider, name string) error
	GenerateToken(ctx context.Context, user *User, provider, purpose string) (string, error)
	StoreToken(ctx context.Context, user *User, provider, name, value string) error
	VerifyToken(ctx context.Context, user *User, provider, name, value string) (bool, error)
}

// TokenService signs and parses access tokens
type TokenService interface {
	Generate(user *User, roles []string, custom map[string]string) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (*JWTClaims, error)
	Decode(tokenString string) (*JWTClaims, error)
}

// RefreshTokener manages the single active refresh token per user
type RefreshTokener interface {
	Issue(ctx context.Context, user *User) (string, error)
	Verify(ctx context.Context, user *User, candidate string) (bool, error)
}

// AuthResponse is the wire shape returned by Login and RefreshToken, and the
// request shape RefreshToken consumes. Never persisted.
type AuthResponse struct {
	UserID       string `json:"userId"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// RegistrationError is a structured creation or validation failure. An empty
// slice of these signals a successful registration.
type RegistrationError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e RegistrationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetAudience() []string
	// GetTokenDuration is the access token validity in minutes.
	GetTokenDuration() int
	GetDefaultRole() string
	GetRefreshProvider() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
