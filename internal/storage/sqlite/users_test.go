// ABOUTME: Tests for user persistence
// ABOUTME: Covers round-trips, uniqueness enforcement, and login tracking
package sqlite

import (
	"strings"
	"testing"

	"github.com/pedbot/nelsonref/internal/models"
)

func TestUserStore_CreateAndGet(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db)

	user := mustCreateUser(t, db, "jdoe")
	if user.ID == 0 {
		t.Fatal("Create should assign an ID")
	}

	got, err := store.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() = nil for existing user")
	}
	if got.Username != "jdoe" || got.Email != "jdoe@hospital.org" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.Role != models.RoleStudent {
		t.Errorf("Role = %q, want student", got.Role)
	}
	if !got.IsActive {
		t.Error("IsActive should survive the round-trip")
	}
	if got.LastLogin != nil {
		t.Error("LastLogin should be nil before first login")
	}
}

func TestUserStore_GetAbsent(t *testing.T) {
	store := NewUserStore(testDB(t))

	got, err := store.GetByID(999)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByID(999) = %+v, want nil", got)
	}

	got, err = store.GetByUsername("nobody")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByUsername(nobody) = %+v, want nil", got)
	}
}

func TestUserStore_UniqueUsername(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db)
	mustCreateUser(t, db, "jdoe")

	dup, err := models.NewUser(models.UserCreate{
		Username: "jdoe",
		Email:    "different@hospital.org",
		FullName: "Other User",
	})
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}

	err = store.Create(dup)
	if err == nil {
		t.Fatal("Create() = nil, want error for duplicate username")
	}
	if !strings.Contains(err.Error(), "already taken") {
		t.Errorf("error = %q, want it to name the taken username", err)
	}
}

func TestUserStore_UniqueEmail(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db)
	mustCreateUser(t, db, "jdoe")

	dup, err := models.NewUser(models.UserCreate{
		Username: "other",
		Email:    "jdoe@hospital.org",
		FullName: "Other User",
	})
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}

	err = store.Create(dup)
	if err == nil {
		t.Fatal("Create() = nil, want error for duplicate email")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("error = %q, want it to name the registered email", err)
	}
}

func TestUserStore_Update(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db)
	user := mustCreateUser(t, db, "jdoe")

	name := "Jane A. Doe"
	if err := user.ApplyUpdate(models.UserUpdate{
		FullName:    &name,
		Preferences: models.Metadata{"units": "metric"},
	}); err != nil {
		t.Fatalf("ApplyUpdate() error = %v", err)
	}
	if err := store.Update(user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.FullName != name {
		t.Errorf("FullName = %q, want %q", got.FullName, name)
	}
	if got.Preferences["units"] != "metric" {
		t.Errorf("Preferences = %v", got.Preferences)
	}
}

func TestUserStore_RecordLogin(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db)
	user := mustCreateUser(t, db, "jdoe")

	if err := store.RecordLogin(user.ID); err != nil {
		t.Fatalf("RecordLogin() error = %v", err)
	}

	got, err := store.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.LastLogin == nil {
		t.Fatal("LastLogin should be set after RecordLogin")
	}
}

func TestUserStore_DeleteAndList(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db)
	a := mustCreateUser(t, db, "alpha")
	mustCreateUser(t, db, "beta")

	users, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("List() returned %d users, want 2", len(users))
	}

	if err := store.Delete(a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, err := store.GetByID(a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Error("deleted user should be gone")
	}
}
