// ABOUTME: Tests for chat session persistence
// ABOUTME: Covers listing order, archiving, renames, and message cascade
package sqlite

import (
	"testing"
	"time"

	"github.com/pedbot/nelsonref/internal/models"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	db := testDB(t)
	user := mustCreateUser(t, db, "jdoe")
	session := mustCreateSession(t, db, user.ID)

	got, err := NewSessionStore(db).GetByID(session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() = nil for existing session")
	}
	if got.Title != models.DefaultSessionTitle {
		t.Errorf("Title = %q, want %q", got.Title, models.DefaultSessionTitle)
	}
	if got.UserID != user.ID {
		t.Errorf("UserID = %d, want %d", got.UserID, user.ID)
	}
	if got.IsArchived {
		t.Error("fresh session should not be archived")
	}
}

func TestSessionStore_ListByUser_MostRecentFirst(t *testing.T) {
	db := testDB(t)
	store := NewSessionStore(db)
	user := mustCreateUser(t, db, "jdoe")

	older := mustCreateSession(t, db, user.ID)
	newer := mustCreateSession(t, db, user.ID)

	// Activity on the older session should float it to the top
	future := time.Now().UTC().Add(time.Minute)
	if _, err := db.Exec("UPDATE chat_sessions SET updated_at = ? WHERE id = ?", future, older.ID); err != nil {
		t.Fatalf("touching session: %v", err)
	}

	sessions, err := store.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("ListByUser() returned %d sessions, want 2", len(sessions))
	}
	if sessions[0].ID != older.ID || sessions[1].ID != newer.ID {
		t.Errorf("order = [%d, %d], want [%d, %d]",
			sessions[0].ID, sessions[1].ID, older.ID, newer.ID)
	}
}

func TestSessionStore_SetArchived(t *testing.T) {
	db := testDB(t)
	store := NewSessionStore(db)
	user := mustCreateUser(t, db, "jdoe")
	session := mustCreateSession(t, db, user.ID)

	if err := store.SetArchived(session.ID, true); err != nil {
		t.Fatalf("SetArchived() error = %v", err)
	}

	got, err := store.GetByID(session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.IsArchived {
		t.Error("session should be archived")
	}
}

func TestSessionStore_SetTitle(t *testing.T) {
	db := testDB(t)
	store := NewSessionStore(db)
	user := mustCreateUser(t, db, "jdoe")
	session := mustCreateSession(t, db, user.ID)

	if err := store.SetTitle(session.ID, "Sepsis workup"); err != nil {
		t.Fatalf("SetTitle() error = %v", err)
	}
	got, err := store.GetByID(session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Sepsis workup" {
		t.Errorf("Title = %q", got.Title)
	}

	if err := store.SetTitle(session.ID, ""); err == nil {
		t.Error("SetTitle(\"\") = nil, want validation error")
	}
}

func TestSessionStore_DeleteCascadesMessages(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionStore(db)
	messages := NewMessageStore(db)
	user := mustCreateUser(t, db, "jdoe")
	session := mustCreateSession(t, db, user.ID)

	for _, content := range []string{"first", "second"} {
		msg, err := models.NewMessage(session.ID, models.MessageCreate{
			Role:    models.MessageRoleUser,
			Content: content,
		})
		if err != nil {
			t.Fatalf("NewMessage() error = %v", err)
		}
		if err := messages.Append(msg); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	if err := sessions.Delete(session.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	count, err := messages.CountBySession(session.ID)
	if err != nil {
		t.Fatalf("CountBySession() error = %v", err)
	}
	if count != 0 {
		t.Errorf("deleting the session left %d messages behind", count)
	}
}
