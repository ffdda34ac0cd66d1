// Package user models the user directory the entitlement engine consults.
// Account management beyond existence, email, and role is handled by the
// surrounding CRUD layer and is not part of the core.
package user

import (
	"fmt"
	"time"
)

type User struct {
	id           uint
	sid          string
	email        string
	name         string
	passwordHash string
	role         Role
	active       bool
	createdAt    time.Time
}

// NewUser creates an active user account.
func NewUser(sid, email, name, passwordHash string, role Role) (*User, error) {
	if sid == "" {
		return nil, fmt.Errorf("user SID is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	return &User{
		sid:          sid,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		active:       true,
		createdAt:    time.Now().UTC(),
	}, nil
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(id uint, sid, email, name, passwordHash string, role Role, active bool, createdAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	return &User{
		id:           id,
		sid:          sid,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
		createdAt:    createdAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) SID() string          { return u.sid }
func (u *User) Email() string        { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.active }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}
