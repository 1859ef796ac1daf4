package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID         `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string            `bun:"first_name" json:"first_name,omitempty"`
	LastName      string            `bun:"last_name" json:"last_name,omitempty"`
	Username      string            `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string            `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string            `bun:"password_hash" json:"-"`
	Roles         []string          `bun:"roles,type:jsonb" json:"roles,omitempty"`
	Claims        map[string]string `bun:"claims,type:jsonb" json:"claims,omitempty"`
	SecurityStamp string            `bun:"security_stamp,notnull" json:"-"`
	CreatedAt     *time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time        `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// HasRole reports whether the user carries the given role name
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AddClaim will attach a custom claim to the user record
func (u *User) AddClaim(key, value string) *User {
	if u.Claims == nil {
		u.Claims = make(map[string]string)
	}
	u.Claims[key] = value
	return u
}

// AuthToken is a named opaque token stored per (user, provider, name). The
// refresh token lifecycle keeps at most one row per tuple: StoreToken
// replaces the value in place so concurrent rotations settle at the store.
type AuthToken struct {
	bun.BaseModel `bun:"table:auth_tokens,alias:tok"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Provider      string     `bun:"provider,notnull" json:"provider,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Value         string     `bun:"value,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
