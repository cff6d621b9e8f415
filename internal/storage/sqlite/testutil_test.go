// ABOUTME: Shared fixtures for storage tests
// ABOUTME: Builds in-memory databases with minimal seed records
package sqlite

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pedbot/nelsonref/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustCreateUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()
	user, err := models.NewUser(models.UserCreate{
		Username: username,
		Email:    username + "@hospital.org",
		FullName: "Test User",
	})
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	if err := NewUserStore(db).Create(user); err != nil {
		t.Fatalf("UserStore.Create() error = %v", err)
	}
	return user
}

func mustCreateSession(t *testing.T, db *DB, userID int64) *models.ChatSession {
	t.Helper()
	session, err := models.NewChatSession(userID, models.ChatSessionCreate{})
	if err != nil {
		t.Fatalf("NewChatSession() error = %v", err)
	}
	if err := NewSessionStore(db).Create(session); err != nil {
		t.Fatalf("SessionStore.Create() error = %v", err)
	}
	return session
}

func mustCreateDrug(t *testing.T, db *DB, name string) *models.PediatricDrug {
	t.Helper()
	drug := &models.PediatricDrug{
		GenericName: name,
		DrugClass:   "penicillin",
		BrandNames:  []string{"Amoxil"},
		Indications: []string{"otitis media"},
	}
	if err := NewDrugStore(db).Create(drug); err != nil {
		t.Fatalf("DrugStore.Create() error = %v", err)
	}
	return drug
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}

func intPtr(n int) *int { return &n }
