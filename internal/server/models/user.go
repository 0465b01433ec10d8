package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access role carried by a user record and its tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// PasswordHasher produces and checks salted password hashes.
type PasswordHasher interface {
	HashPassword(password string) (salt, hash string)
	Verify(password, salt, hash string) bool
}

type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	Salt      string
	Hash      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser returns a user with a freshly generated id and no credentials.
func NewUser(email, name string, role Role) *User {
	return &User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Role:  role,
	}
}

// SetPassword replaces the stored salt and hash. The plaintext is not kept.
func (u *User) SetPassword(h PasswordHasher, password string) {
	u.Salt, u.Hash = h.HashPassword(password)
}

// CheckPassword reports whether password matches the stored credentials.
func (u *User) CheckPassword(h PasswordHasher, password string) bool {
	if u.Salt == "" || u.Hash == "" {
		return false
	}
	return h.Verify(password, u.Salt, u.Hash)
}

// AuthUser returns the identity projection embedded in tokens.
func (u *User) AuthUser() AuthUser {
	return AuthUser{ID: u.ID, Role: u.Role, Email: u.Email}
}
