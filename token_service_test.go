package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	auth "github.com/goliatone/go-authflow"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testUser(email string) *auth.User {
	return &auth.User{
		ID:       uuid.New(),
		Email:    email,
		Username: email,
	}
}

func TestTokenService_Generate(t *testing.T) {
	signingKey := []byte("test-signing-key")
	issuer := "test-issuer"
	audience := jwt.ClaimStrings{"test-audience"}

	service := auth.NewTokenService(signingKey, 15, issuer, audience, testLogger{})

	t.Run("generates valid signed token", func(t *testing.T) {
		user := testUser("ada@example.com")

		tokenString, err := service.Generate(user, []string{"user", "admin"}, map[string]string{
			"plan": "premium",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		claims, err := service.Validate(tokenString)
		assert.NoError(t, err)

		assert.Equal(t, "ada@example.com", claims.Subject)
		assert.Equal(t, "ada@example.com", claims.UserEmail())
		assert.Equal(t, user.ID.String(), claims.UserID())
		assert.Equal(t, issuer, claims.Issuer)
		assert.Equal(t, audience, claims.Audience)
		assert.True(t, claims.HasRole("user"))
		assert.True(t, claims.HasRole("admin"))
		assert.False(t, claims.HasRole("owner"))

		plan, ok := claims.CustomClaim("plan")
		assert.True(t, ok)
		assert.Equal(t, "premium", plan)

		assert.NotEmpty(t, claims.ID, "token id must be set")
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.Expires(), 5*time.Second)
	})

	t.Run("fresh token id per issuance", func(t *testing.T) {
		user := testUser("ada@example.com")

		first, err := service.Generate(user, nil, nil)
		assert.NoError(t, err)
		second, err := service.Generate(user, nil, nil)
		assert.NoError(t, err)

		firstClaims, err := service.Validate(first)
		assert.NoError(t, err)
		secondClaims, err := service.Validate(second)
		assert.NoError(t, err)

		assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
	})

	t.Run("nil user is rejected", func(t *testing.T) {
		_, err := service.Generate(nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestTokenService_MissingSigningKey(t *testing.T) {
	service := auth.NewTokenService(nil, 15, "issuer", nil, testLogger{})

	_, err := service.Generate(testUser("ada@example.com"), nil, nil)
	assert.Equal(t, auth.ErrMissingSigningKey, err)

	_, err = service.Validate("whatever")
	assert.Equal(t, auth.ErrMissingSigningKey, err)
}

func TestTokenService_Validate(t *testing.T) {
	signingKey := []byte("test-signing-key")
	service := auth.NewTokenService(signingKey, 15, "test-issuer", nil, testLogger{})

	t.Run("valid one minute before expiry", func(t *testing.T) {
		user := testUser("ada@example.com")
		now := time.Now()

		claims := auth.NewAuthClaims(user, nil, nil)
		claims.Issuer = "test-issuer"
		claims.IssuedAt = jwt.NewNumericDate(now.Add(-14 * time.Minute))
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(1 * time.Minute))

		tokenString, err := service.SignClaims(claims)
		assert.NoError(t, err)

		parsed, err := service.Validate(tokenString)
		assert.NoError(t, err)
		assert.Equal(t, user.Email, parsed.Subject)
	})

	t.Run("rejected one minute after expiry", func(t *testing.T) {
		user := testUser("ada@example.com")
		now := time.Now()

		claims := auth.NewAuthClaims(user, nil, nil)
		claims.Issuer = "test-issuer"
		claims.IssuedAt = jwt.NewNumericDate(now.Add(-16 * time.Minute))
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(-1 * time.Minute))

		tokenString, err := service.SignClaims(claims)
		assert.NoError(t, err)

		_, err = service.Validate(tokenString)
		assert.Equal(t, auth.ErrTokenExpired, err)
	})

	t.Run("rejects token signed with a different key", func(t *testing.T) {
		other := auth.NewTokenService([]byte("other-key"), 15, "test-issuer", nil, testLogger{})
		tokenString, err := other.Generate(testUser("ada@example.com"), nil, nil)
		assert.NoError(t, err)

		_, err = service.Validate(tokenString)
		assert.Error(t, err)
		assert.True(t, auth.IsMalformedError(err))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.Validate("not-a-token")
		assert.Error(t, err)
		assert.True(t, auth.IsMalformedError(err))
	})
}

func TestTokenService_Decode(t *testing.T) {
	signingKey := []byte("test-signing-key")
	service := auth.NewTokenService(signingKey, 15, "test-issuer", nil, testLogger{})

	t.Run("decodes expired token without validation", func(t *testing.T) {
		user := testUser("ada@example.com")

		claims := auth.NewAuthClaims(user, []string{"user"}, nil)
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-1 * time.Hour))

		tokenString, err := service.SignClaims(claims)
		assert.NoError(t, err)

		// Validate refuses it, Decode still surfaces the claims.
		_, err = service.Validate(tokenString)
		assert.Equal(t, auth.ErrTokenExpired, err)

		decoded, err := service.Decode(tokenString)
		assert.NoError(t, err)
		assert.Equal(t, "ada@example.com", decoded.UserEmail())
		assert.Equal(t, user.ID.String(), decoded.UserID())
	})

	t.Run("rejects malformed strings", func(t *testing.T) {
		_, err := service.Decode("not-a-token")
		assert.Error(t, err)
		assert.True(t, auth.IsMalformedError(err))
	})
}
