package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// opaqueTokenBytes is the entropy of generated refresh token values.
const opaqueTokenBytes = 32

// AuthTokens is the default token store: a Bun repository over the
// auth_tokens table extended with the TokenStore contract.
type AuthTokens interface {
	repository.Repository[*AuthToken]
	TokenStore
}

type authTokens struct {
	repository.Repository[*AuthToken]
	db *bun.DB
}

var (
	_ AuthTokens = (*authTokens)(nil)
	_ TokenStore = (*authTokens)(nil)
)

func NewAuthTokensRepository(db *bun.DB) AuthTokens {
	repo := repository.NewRepository[*AuthToken](db, repository.ModelHandlers[*AuthToken]{
		NewRecord: func() *AuthToken { return &AuthToken{} },
		GetID: func(t *AuthToken) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *AuthToken, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
	})

	return &authTokens{
		Repository: repo,
		db:         db,
	}
}

// RemoveToken deletes the stored token for (user, provider, name). Removing
// a token that does not exist is not an error.
func (a *authTokens) RemoveToken(ctx context.Context, user *User, provider, name string) error {
	if user == nil {
		return ErrIdentityNotFound
	}

	_, err := a.db.NewDelete().
		Model((*AuthToken)(nil)).
		Where("user_id = ?", user.ID).
		Where("provider = ?", provider).
		Where("name = ?", name).
		Exec(ctx)

	return err
}

// GenerateToken produces a fresh opaque token value. The value is random,
// not derived from user state; binding to the user happens in StoreToken.
func (a *authTokens) GenerateToken(ctx context.Context, user *User, provider, purpose string) (string, error) {
	if user == nil {
		return "", ErrIdentityNotFound
	}
	return randomToken(opaqueTokenBytes)
}

// StoreToken persists value under (user, provider, name). The upsert keeps a
// single row per tuple, so concurrent rotations settle last-write-wins at
// the store layer instead of accumulating stale tokens.
func (a *authTokens) StoreToken(ctx context.Context, user *User, provider, name, value string) error {
	if user == nil {
		return ErrIdentityNotFound
	}

	now := time.Now()
	record := &AuthToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Provider:  provider,
		Name:      name,
		Value:     value,
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	_, err := a.db.NewInsert().
		Model(record).
		On("CONFLICT (user_id, provider, name) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	return err
}

// VerifyToken reports whether value matches the currently stored token for
// (user, provider, name). No rows means no valid token exists.
func (a *authTokens) VerifyToken(ctx context.Context, user *User, provider, name, value string) (bool, error) {
	if user == nil || value == "" {
		return false, nil
	}

	record := &AuthToken{}
	err := a.db.NewSelect().
		Model(record).
		Where("user_id = ?", user.ID).
		Where("provider = ?", provider).
		Where("name = ?", name).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) || errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(record.Value), []byte(value)) == 1, nil
}

func randomToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
