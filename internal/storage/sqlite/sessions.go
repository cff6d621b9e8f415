// ABOUTME: ChatSession storage operations for SQLite
// ABOUTME: Deleting a session cascades to its messages
package sqlite

import (
	"database/sql"
	"time"

	"github.com/pedbot/nelsonref/internal/models"
)

// SessionStore handles chat session persistence
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Create inserts a validated session and assigns its ID
func (s *SessionStore) Create(session *models.ChatSession) error {
	if err := session.Validate(); err != nil {
		return err
	}
	metaJSON, err := jsonText(session.Metadata)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO chat_sessions (user_id, title, created_at, updated_at, is_archived, session_metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`, session.UserID, session.Title, session.CreatedAt, session.UpdatedAt,
		session.IsArchived, metaJSON)
	if err != nil {
		return err
	}

	session.ID, err = res.LastInsertId()
	return err
}

// GetByID retrieves a session, or nil when absent
func (s *SessionStore) GetByID(id int64) (*models.ChatSession, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, title, created_at, updated_at, is_archived, session_metadata
		FROM chat_sessions WHERE id = ?
	`, id)

	session, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func scanSession(scan func(...any) error) (*models.ChatSession, error) {
	var (
		session  models.ChatSession
		metaJSON sql.NullString
	)
	err := scan(&session.ID, &session.UserID, &session.Title,
		&session.CreatedAt, &session.UpdatedAt, &session.IsArchived, &metaJSON)
	if err != nil {
		return nil, err
	}
	session.Metadata = models.Metadata{}
	readJSON(metaJSON, &session.Metadata)
	return &session, nil
}

// ListByUser retrieves a user's sessions, most recently updated first
func (s *SessionStore) ListByUser(userID int64) ([]models.ChatSession, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, created_at, updated_at, is_archived, session_metadata
		FROM chat_sessions
		WHERE user_id = ?
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.ChatSession
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// SetArchived flips the archival flag and advances updated_at
func (s *SessionStore) SetArchived(id int64, archived bool) error {
	_, err := s.db.Exec(`
		UPDATE chat_sessions SET is_archived = ?, updated_at = ? WHERE id = ?
	`, archived, time.Now().UTC(), id)
	return err
}

// SetTitle renames a session and advances updated_at
func (s *SessionStore) SetTitle(id int64, title string) error {
	if err := models.ValidateSessionTitle(title); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		UPDATE chat_sessions SET title = ?, updated_at = ? WHERE id = ?
	`, title, time.Now().UTC(), id)
	return err
}

// Touch advances a session's updated_at without changing anything else
func (s *SessionStore) Touch(id int64) error {
	_, err := s.db.Exec("UPDATE chat_sessions SET updated_at = ? WHERE id = ?", time.Now().UTC(), id)
	return err
}

// Delete removes a session; its messages cascade
func (s *SessionStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM chat_sessions WHERE id = ?", id)
	return err
}
