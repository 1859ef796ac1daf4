package auth

// DefaultTokenDuration is the access token validity, in minutes, used when
// a config does not provide a positive duration.
const DefaultTokenDuration = 15

// DefaultRole is assigned to every newly registered user.
const DefaultRole = "user"

// SimpleConfig is a plain struct Config implementation for callers that do
// not bring their own configuration layer.
type SimpleConfig struct {
	SigningKey      string
	Issuer          string
	Audience        []string
	TokenDuration   int
	DefaultRole     string
	RefreshProvider string
}

var _ Config = SimpleConfig{}

func (c SimpleConfig) GetSigningKey() string { return c.SigningKey }

func (c SimpleConfig) GetIssuer() string { return c.Issuer }

func (c SimpleConfig) GetAudience() []string { return c.Audience }

func (c SimpleConfig) GetTokenDuration() int {
	if c.TokenDuration <= 0 {
		return DefaultTokenDuration
	}
	return c.TokenDuration
}

func (c SimpleConfig) GetDefaultRole() string {
	if c.DefaultRole == "" {
		return DefaultRole
	}
	return c.DefaultRole
}

func (c SimpleConfig) GetRefreshProvider() string {
	if c.RefreshProvider == "" {
		return DefaultRefreshProvider
	}
	return c.RefreshProvider
}
