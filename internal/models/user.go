// ABOUTME: User account entity for the clinical reference system
// ABOUTME: Usernames and emails are globally unique, enforced by the database
package models

import (
	"regexp"
	"time"
)

const (
	maxUsernameLen    = 50
	maxEmailLen       = 255
	maxFullNameLen    = 100
	maxInstitutionLen = 200
	maxSpecialtyLen   = 100
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// User is an account holder: student, resident, clinician, or admin.
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        UserRole   `json:"role"`
	Institution string     `json:"institution,omitempty"`
	Specialty   string     `json:"specialty,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	Preferences Metadata   `json:"preferences"`
}

// NewUser builds a validated User from a creation request. The ID is assigned
// by the persistence layer on insert.
func NewUser(c UserCreate) (*User, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	role := c.Role
	if role == "" {
		role = RoleStudent
	}
	return &User{
		Username:    c.Username,
		Email:       c.Email,
		FullName:    c.FullName,
		Role:        role,
		Institution: c.Institution,
		Specialty:   c.Specialty,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
		Preferences: Metadata{},
	}, nil
}

// Validate checks every declared field constraint.
func (u *User) Validate() error {
	if err := requireText("username", u.Username, maxUsernameLen); err != nil {
		return err
	}
	if err := requireText("email", u.Email, maxEmailLen); err != nil {
		return err
	}
	if !emailPattern.MatchString(u.Email) {
		return invalid("email", "not a valid email address")
	}
	if err := requireText("full_name", u.FullName, maxFullNameLen); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return invalid("role", "unknown user role %q", string(u.Role))
	}
	if err := limitText("institution", u.Institution, maxInstitutionLen); err != nil {
		return err
	}
	return limitText("specialty", u.Specialty, maxSpecialtyLen)
}

// ApplyUpdate merges a validated update request into the user.
func (u *User) ApplyUpdate(upd UserUpdate) error {
	if err := upd.Validate(); err != nil {
		return err
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Institution != nil {
		u.Institution = *upd.Institution
	}
	if upd.Specialty != nil {
		u.Specialty = *upd.Specialty
	}
	if upd.Preferences != nil {
		u.Preferences = upd.Preferences
	}
	return nil
}
