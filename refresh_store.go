package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// DefaultRefreshProvider scopes refresh tokens issued by this library.
const DefaultRefreshProvider = "Local"

// RefreshTokenName is the token name under which the refresh token is stored.
const RefreshTokenName = "RefreshToken"

// RefreshTokenService manages the single active refresh token per
// (user, provider) pair on top of a TokenStore.
type RefreshTokenService struct {
	store    TokenStore
	provider string
	logger   Logger
}

var _ RefreshTokener = (*RefreshTokenService)(nil)

// NewRefreshTokenService creates a refresh token adapter scoped to provider.
// An empty provider falls back to DefaultRefreshProvider.
func NewRefreshTokenService(store TokenStore, provider string, logger Logger) *RefreshTokenService {
	if provider == "" {
		provider = DefaultRefreshProvider
	}
	if logger == nil {
		logger = defLogger{}
	}
	return &RefreshTokenService{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// Issue rotates the user's refresh token: the stored token is removed before
// a new value exists, so the old token is unusable the instant rotation is
// requested even if the caller never receives the new one.
func (s *RefreshTokenService) Issue(ctx context.Context, user *User) (string, error) {
	if user == nil {
		return "", errors.New("user must not be nil", errors.CategoryBadInput)
	}

	if err := s.store.RemoveToken(ctx, user, s.provider, RefreshTokenName); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to remove refresh token")
	}

	value, err := s.store.GenerateToken(ctx, user, s.provider, RefreshTokenName)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to generate refresh token")
	}

	if err := s.store.StoreToken(ctx, user, s.provider, RefreshTokenName, value); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to store refresh token")
	}

	return value, nil
}

// Verify reports whether candidate matches the currently stored refresh
// token for the user. It has no side effects: rotation and invalidation are
// decided by the caller on the ensuing branch.
func (s *RefreshTokenService) Verify(ctx context.Context, user *User, candidate string) (bool, error) {
	if user == nil || candidate == "" {
		return false, nil
	}

	ok, err := s.store.VerifyToken(ctx, user, s.provider, RefreshTokenName, candidate)
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to verify refresh token")
	}

	return ok, nil
}
