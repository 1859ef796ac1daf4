package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// Auther orchestrates registration, login, and the refresh token exchange.
// It holds only read-only collaborators; every resolved user is a local
// threaded through the call, so a single instance is safe for concurrent
// requests.
type Auther struct {
	identities  IdentityStore
	tokens      TokenService
	refresh     RefreshTokener
	defaultRole string
	logger      Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator over the given stores.
func NewAuthenticator(identities IdentityStore, tokenStore TokenStore, opts Config) *Auther {
	tokens := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenDuration(),
		opts.GetIssuer(),
		jwt.ClaimStrings(opts.GetAudience()),
		defLogger{},
	)

	defaultRole := opts.GetDefaultRole()
	if defaultRole == "" {
		defaultRole = DefaultRole
	}

	return &Auther{
		identities:  identities,
		tokens:      tokens,
		refresh:     NewRefreshTokenService(tokenStore, opts.GetRefreshProvider(), defLogger{}),
		defaultRole: defaultRole,
		logger:      defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService overrides the token signer, e.g. for custom claim layouts.
func (s *Auther) WithTokenService(tokens TokenService) *Auther {
	s.tokens = tokens
	return s
}

// WithRefreshTokener overrides the refresh token adapter.
func (s *Auther) WithRefreshTokener(refresh RefreshTokener) *Auther {
	s.refresh = refresh
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// Register creates a new identity and assigns the default role. The returned
// slice carries structured validation and creation failures; an empty slice
// signals success. No tokens are issued on registration.
func (s *Auther) Register(ctx context.Context, payload RegisterPayload) ([]RegistrationError, error) {
	if verrs := payload.Validate(); len(verrs) > 0 {
		s.logger.Info("Register payload rejected", "email", payload.Email)
		return verrs, nil
	}

	user := payload.toUser()

	cerrs, err := s.identities.CreateUser(ctx, user, payload.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create user")
	}

	if len(cerrs) > 0 {
		s.logger.Info("Register rejected by identity store", "email", user.Email)
		return cerrs, nil
	}

	if err := s.identities.AssignRole(ctx, user, s.defaultRole); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to assign default role")
	}

	return nil, nil
}

// Login resolves the identity by email, verifies the password, and on
// success issues a signed access token plus a rotated refresh token. Unknown
// email and wrong password return the same ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if IsIdentityNotFound(err) {
			s.logger.Info("Login failed", "email", email)
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}

	if err := s.identities.CheckPassword(ctx, user, password); err != nil {
		s.logger.Info("Login failed", "email", email)
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// refreshStatus is the explicit tri-state outcome of the refresh
// verification path. The security stamp bump on refreshInvalid is an
// intentional branch, never an error-handler side effect.
type refreshStatus int

const (
	refreshOK refreshStatus = iota
	refreshNotFound
	refreshInvalid
)

// RefreshToken exchanges an expired or expiring access token plus a valid
// refresh token for a new pair. A refresh token that fails verification is
// treated as potential theft: the user's security stamp is replaced and the
// caller sees the uniform authentication failure.
func (s *Auther) RefreshToken(ctx context.Context, request *AuthResponse) (*AuthResponse, error) {
	user, status, err := s.checkRefresh(ctx, request)
	if err != nil {
		return nil, err
	}

	switch status {
	case refreshOK:
		return s.issueTokens(ctx, user)
	case refreshInvalid:
		s.logger.Warn("RefreshToken verification failed, invalidating sessions", "user_id", user.ID)
		if err := s.identities.BumpSecurityStamp(ctx, user); err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update security stamp")
		}
		return nil, ErrInvalidCredentials
	default:
		return nil, ErrInvalidCredentials
	}
}

// checkRefresh walks DecodeToken -> ResolveUser -> VerifyMatch ->
// VerifyRefreshToken and reports where the chain stopped. The access token
// is decoded without signature or expiry validation: this call's purpose is
// to exchange an expired token, so only its email claim is trusted enough to
// resolve a candidate user for the store-side check.
func (s *Auther) checkRefresh(ctx context.Context, request *AuthResponse) (*User, refreshStatus, error) {
	if request == nil {
		return nil, refreshNotFound, nil
	}

	claims, err := s.tokens.Decode(request.Token)
	if err != nil {
		s.logger.Info("RefreshToken received undecodable access token")
		return nil, refreshNotFound, nil
	}

	email := claims.UserEmail()
	if email == "" {
		return nil, refreshNotFound, nil
	}

	user, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if IsIdentityNotFound(err) {
			return nil, refreshNotFound, nil
		}
		return nil, refreshNotFound, errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}

	// The submitted user id must match the identity resolved from the token,
	// otherwise a captured pair could be replayed against another account.
	if user.ID.String() != request.UserID {
		s.logger.Info("RefreshToken user id mismatch", "user_id", request.UserID)
		return nil, refreshNotFound, nil
	}

	ok, err := s.refresh.Verify(ctx, user, request.RefreshToken)
	if err != nil {
		return nil, refreshNotFound, err
	}

	if !ok {
		return user, refreshInvalid, nil
	}

	return user, refreshOK, nil
}

// issueTokens builds the claim set from the user's current roles and claims,
// signs the access token, and rotates the refresh token.
func (s *Auther) issueTokens(ctx context.Context, user *User) (*AuthResponse, error) {
	roles, err := s.identities.GetRoles(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch roles")
	}

	custom, err := s.identities.GetClaims(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch claims")
	}

	token, err := s.tokens.Generate(user, roles, custom)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.refresh.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		UserID:       user.ID.String(),
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}
