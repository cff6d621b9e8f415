// ABOUTME: Tests for User entity validation and construction
// ABOUTME: Covers email format rules, defaults, and update merging
package models

import (
	"errors"
	"strings"
	"testing"
)

func validUserCreate() UserCreate {
	return UserCreate{
		Username: "jdoe",
		Email:    "jdoe@hospital.org",
		FullName: "Jane Doe",
	}
}

func TestNewUser_Defaults(t *testing.T) {
	user, err := NewUser(validUserCreate())
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}

	if user.Role != RoleStudent {
		t.Errorf("Role = %q, want %q", user.Role, RoleStudent)
	}
	if !user.IsActive {
		t.Error("new user should be active")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if user.LastLogin != nil {
		t.Error("LastLogin should be nil initially")
	}
	if user.Preferences == nil {
		t.Error("Preferences should be initialized")
	}
}

func TestNewUser_ExplicitRole(t *testing.T) {
	create := validUserCreate()
	create.Role = RoleClinician

	user, err := NewUser(create)
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	if user.Role != RoleClinician {
		t.Errorf("Role = %q, want %q", user.Role, RoleClinician)
	}
}

func TestUserCreate_EmailValidation(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"simple", "a@b.co", true},
		{"with dots and plus", "first.last+tag@sub.example.org", true},
		{"underscore local", "dr_smith@childrens.edu", true},
		{"missing at", "jdoe.hospital.org", false},
		{"missing domain dot", "jdoe@hospital", false},
		{"empty local", "@hospital.org", false},
		{"space in local", "j doe@hospital.org", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create := validUserCreate()
			create.Email = tt.email

			err := create.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Validate() = nil, want error for %q", tt.email)
			}
		})
	}
}

func TestUserCreate_FieldLimits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*UserCreate)
		field  string
	}{
		{"empty username", func(c *UserCreate) { c.Username = "" }, "username"},
		{"long username", func(c *UserCreate) { c.Username = strings.Repeat("x", 51) }, "username"},
		{"empty full name", func(c *UserCreate) { c.FullName = "" }, "full_name"},
		{"long full name", func(c *UserCreate) { c.FullName = strings.Repeat("x", 101) }, "full_name"},
		{"long institution", func(c *UserCreate) { c.Institution = strings.Repeat("x", 201) }, "institution"},
		{"long specialty", func(c *UserCreate) { c.Specialty = strings.Repeat("x", 101) }, "specialty"},
		{"bad role", func(c *UserCreate) { c.Role = "attending" }, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create := validUserCreate()
			tt.mutate(&create)

			err := create.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestUser_ApplyUpdate(t *testing.T) {
	user, err := NewUser(validUserCreate())
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}

	name := "Jane A. Doe"
	inst := "Children's Hospital"
	if err := user.ApplyUpdate(UserUpdate{
		FullName:    &name,
		Institution: &inst,
		Preferences: Metadata{"units": "metric"},
	}); err != nil {
		t.Fatalf("ApplyUpdate() error = %v", err)
	}

	if user.FullName != name {
		t.Errorf("FullName = %q, want %q", user.FullName, name)
	}
	if user.Institution != inst {
		t.Errorf("Institution = %q, want %q", user.Institution, inst)
	}
	if user.Preferences["units"] != "metric" {
		t.Errorf("Preferences = %v, want units=metric", user.Preferences)
	}
	// Untouched field survives
	if user.Username != "jdoe" {
		t.Errorf("Username = %q, want jdoe", user.Username)
	}
}

func TestUser_ApplyUpdate_Invalid(t *testing.T) {
	user, err := NewUser(validUserCreate())
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}

	empty := ""
	if err := user.ApplyUpdate(UserUpdate{FullName: &empty}); err == nil {
		t.Error("ApplyUpdate() = nil, want error for empty full name")
	}
	if user.FullName != "Jane Doe" {
		t.Errorf("FullName changed on failed update: %q", user.FullName)
	}
}
