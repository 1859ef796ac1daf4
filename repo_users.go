package auth

import (
	"context"
	"database/sql"
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the default identity store: a Bun repository over the users table
// extended with the IdentityStore contract.
type Users interface {
	repository.Repository[*User]
	IdentityStore

	CreateUserTx(ctx context.Context, tx bun.IDB, user *User, password string) ([]RegistrationError, error)
	AssignRoleTx(ctx context.Context, tx bun.IDB, user *User, role string) error
	BumpSecurityStampTx(ctx context.Context, tx bun.IDB, user *User) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users         = (*users)(nil)
	_ IdentityStore = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// FindByEmail looks up a user by email, comparing case-insensitively.
func (a *users) FindByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrIdentityNotFound
	}

	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("LOWER(?TableAlias.email) = LOWER(?)", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) || goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	return record, nil
}

func (a *users) FindByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrIdentityNotFound
	}

	record := &User{}
	err = a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", uid).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) || goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	return record, nil
}

// CheckPassword verifies the cleartext password against the stored hash.
func (a *users) CheckPassword(ctx context.Context, user *User, password string) error {
	if user == nil {
		return ErrIdentityNotFound
	}
	return ComparePasswordAndHash(password, user.PasswordHash)
}

// CreateUser hashes the password and creates the record, enforcing email
// uniqueness. Creation failures the caller can act on come back as the
// structured error list; infrastructure failures come back as the error.
func (a *users) CreateUser(ctx context.Context, user *User, password string) ([]RegistrationError, error) {
	return a.CreateUserTx(ctx, a.db, user, password)
}

func (a *users) CreateUserTx(ctx context.Context, tx bun.IDB, user *User, password string) ([]RegistrationError, error) {
	if user == nil {
		return nil, ErrIdentityNotFound
	}

	hash, err := HashPassword(password)
	if err != nil {
		return []RegistrationError{{
			Code:        "InvalidPassword",
			Description: "Password could not be processed.",
		}}, nil
	}

	if _, err := a.FindByEmail(ctx, user.Email); err == nil {
		return []RegistrationError{duplicateEmailError(user.Email)}, nil
	} else if !IsIdentityNotFound(err) {
		return nil, err
	}

	user.PasswordHash = hash
	prepareUserDefaults(user)

	if _, err := a.Repository.CreateTx(ctx, tx, user); err != nil {
		// A concurrent registration can slip past the lookup; the unique
		// constraint is the authority.
		if isUniqueViolation(err) {
			return []RegistrationError{duplicateEmailError(user.Email)}, nil
		}
		return nil, err
	}

	return nil, nil
}

// AssignRole attaches a role name to the user if not already present.
func (a *users) AssignRole(ctx context.Context, user *User, role string) error {
	return a.AssignRoleTx(ctx, a.db, user, role)
}

func (a *users) AssignRoleTx(ctx context.Context, tx bun.IDB, user *User, role string) error {
	if user == nil {
		return ErrIdentityNotFound
	}

	if user.HasRole(role) {
		return nil
	}

	user.Roles = append(user.Roles, role)

	_, err := tx.NewUpdate().
		Model(user).
		Column("roles").
		WherePK().
		Exec(ctx)

	return err
}

// GetRoles returns the user's current role names from the store.
func (a *users) GetRoles(ctx context.Context, user *User) ([]string, error) {
	record, err := a.refetch(ctx, user)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), record.Roles...), nil
}

// GetClaims returns the user's current custom claims from the store.
func (a *users) GetClaims(ctx context.Context, user *User) (map[string]string, error) {
	record, err := a.refetch(ctx, user)
	if err != nil {
		return nil, err
	}

	claims := make(map[string]string, len(record.Claims))
	for key, value := range record.Claims {
		claims[key] = value
	}
	return claims, nil
}

// BumpSecurityStamp replaces the user's security stamp, invalidating every
// outstanding artifact tied to the old value.
func (a *users) BumpSecurityStamp(ctx context.Context, user *User) error {
	return a.BumpSecurityStampTx(ctx, a.db, user)
}

func (a *users) BumpSecurityStampTx(ctx context.Context, tx bun.IDB, user *User) error {
	if user == nil {
		return ErrIdentityNotFound
	}

	user.SecurityStamp = uuid.NewString()

	_, err := tx.NewUpdate().
		Model(user).
		Column("security_stamp").
		WherePK().
		Exec(ctx)

	return err
}

func (a *users) refetch(ctx context.Context, user *User) (*User, error) {
	if user == nil {
		return nil, ErrIdentityNotFound
	}
	return a.FindByID(ctx, user.ID.String())
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.Username == "" {
		record.Username = record.Email
	}

	if record.SecurityStamp == "" {
		record.SecurityStamp = uuid.NewString()
	}
}

func duplicateEmailError(email string) RegistrationError {
	return RegistrationError{
		Code:        "DuplicateEmail",
		Description: fmt.Sprintf("Email '%s' is already taken.", email),
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
