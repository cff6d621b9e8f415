// ABOUTME: Tests for message persistence
// ABOUTME: Covers conversation ordering, session activity, and FK enforcement
package sqlite

import (
	"testing"

	"github.com/pedbot/nelsonref/internal/models"
)

func appendMessage(t *testing.T, db *DB, sessionID int64, role models.MessageRole, content string) *models.Message {
	t.Helper()
	msg, err := models.NewMessage(sessionID, models.MessageCreate{Role: role, Content: content})
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}
	if err := NewMessageStore(db).Append(msg); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	return msg
}

func TestMessageStore_ConversationOrder(t *testing.T) {
	db := testDB(t)
	user := mustCreateUser(t, db, "jdoe")
	session := mustCreateSession(t, db, user.ID)

	appendMessage(t, db, session.ID, models.MessageRoleUser, "What is the dose?")
	appendMessage(t, db, session.ID, models.MessageRoleAssistant, "45 mg/kg/day divided BID.")
	appendMessage(t, db, session.ID, models.MessageRoleUser, "And the maximum?")

	got, err := NewMessageStore(db).ListBySession(session.ID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListBySession() returned %d messages, want 3", len(got))
	}

	wantContents := []string{"What is the dose?", "45 mg/kg/day divided BID.", "And the maximum?"}
	for i, want := range wantContents {
		if got[i].Content != want {
			t.Errorf("message[%d] = %q, want %q", i, got[i].Content, want)
		}
	}
	if got[0].Role != models.MessageRoleUser || got[1].Role != models.MessageRoleAssistant {
		t.Error("roles did not survive the round-trip")
	}
}

func TestMessageStore_AppendAdvancesSession(t *testing.T) {
	db := testDB(t)
	user := mustCreateUser(t, db, "jdoe")
	session := mustCreateSession(t, db, user.ID)

	before, err := NewSessionStore(db).GetByID(session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	msg := appendMessage(t, db, session.ID, models.MessageRoleUser, "hello")

	after, err := NewSessionStore(db).GetByID(session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if after.UpdatedAt.Before(before.UpdatedAt) {
		t.Error("appending a message moved the session backwards")
	}
	if !after.UpdatedAt.Equal(msg.CreatedAt) {
		t.Errorf("session UpdatedAt = %v, want message time %v", after.UpdatedAt, msg.CreatedAt)
	}
}

func TestMessageStore_AppendToMissingSession(t *testing.T) {
	db := testDB(t)

	msg, err := models.NewMessage(999, models.MessageCreate{
		Role:    models.MessageRoleUser,
		Content: "orphan",
	})
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}
	if err := NewMessageStore(db).Append(msg); err == nil {
		t.Error("Append() = nil, want foreign key error for missing session")
	}
}

func TestMessageStore_OptionalFieldsRoundTrip(t *testing.T) {
	db := testDB(t)
	user := mustCreateUser(t, db, "jdoe")
	session := mustCreateSession(t, db, user.ID)

	msg, err := models.NewMessage(session.ID, models.MessageCreate{
		Role:    models.MessageRoleAssistant,
		Content: "answer",
		Citations: []models.Metadata{
			{"chapter": "Otitis Media", "page": float64(3041)},
		},
	})
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}
	msg.TokenCount = intPtr(128)
	msg.ProcessingTime = decPtr(t, "0.412")
	msg.SourceChunks = []string{"chunk-17", "chunk-18"}

	if err := NewMessageStore(db).Append(msg); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := NewMessageStore(db).ListBySession(session.ID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d messages, want 1", len(got))
	}

	m := got[0]
	if m.TokenCount == nil || *m.TokenCount != 128 {
		t.Errorf("TokenCount = %v, want 128", m.TokenCount)
	}
	if m.ProcessingTime == nil || m.ProcessingTime.StringFixed(3) != "0.412" {
		t.Errorf("ProcessingTime = %v, want 0.412", m.ProcessingTime)
	}
	if len(m.Citations) != 1 || m.Citations[0]["chapter"] != "Otitis Media" {
		t.Errorf("Citations = %v", m.Citations)
	}
	if len(m.SourceChunks) != 2 {
		t.Errorf("SourceChunks = %v", m.SourceChunks)
	}
}
