package auth_test

import (
	"context"

	auth "github.com/goliatone/go-authflow"
	"github.com/stretchr/testify/mock"
)

// MockIdentityStore implements auth.IdentityStore
type MockIdentityStore struct {
	mock.Mock
}

func (m *MockIdentityStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockIdentityStore) FindByID(ctx context.Context, id string) (*auth.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockIdentityStore) CheckPassword(ctx context.Context, user *auth.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockIdentityStore) CreateUser(ctx context.Context, user *auth.User, password string) ([]auth.RegistrationError, error) {
	args := m.Called(ctx, user, password)
	errs, _ := args.Get(0).([]auth.RegistrationError)
	return errs, args.Error(1)
}

func (m *MockIdentityStore) AssignRole(ctx context.Context, user *auth.User, role string) error {
	args := m.Called(ctx, user, role)
	return args.Error(0)
}

func (m *MockIdentityStore) GetRoles(ctx context.Context, user *auth.User) ([]string, error) {
	args := m.Called(ctx, user)
	roles, _ := args.Get(0).([]string)
	return roles, args.Error(1)
}

func (m *MockIdentityStore) GetClaims(ctx context.Context, user *auth.User) (map[string]string, error) {
	args := m.Called(ctx, user)
	claims, _ := args.Get(0).(map[string]string)
	return claims, args.Error(1)
}

func (m *MockIdentityStore) BumpSecurityStamp(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockTokenStore implements auth.TokenStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RemoveToken(ctx context.Context, user *auth.User, provider, name string) error {
	args := m.Called(ctx, user, provider, name)
	return args.Error(0)
}

func (m *MockTokenStore) GenerateToken(ctx context.Context, user *auth.User, provider, purpose string) (string, error) {
	args := m.Called(ctx, user, provider, purpose)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) StoreToken(ctx context.Context, user *auth.User, provider, name, value string) error {
	args := m.Called(ctx, user, provider, name, value)
	return args.Error(0)
}

func (m *MockTokenStore) VerifyToken(ctx context.Context, user *auth.User, provider, name, value string) (bool, error) {
	args := m.Called(ctx, user, provider, name, value)
	return args.Bool(0), args.Error(1)
}

// testLogger swallows output so tests stay quiet
type testLogger struct{}

func (testLogger) Debug(format string, args ...any) {}
func (testLogger) Info(format string, args ...any)  {}
func (testLogger) Warn(format string, args ...any)  {}
func (testLogger) Error(format string, args ...any) {}
