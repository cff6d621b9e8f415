// ABOUTME: Message storage operations for SQLite
// ABOUTME: Appends preserve insertion order and advance the owning session
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/pedbot/nelsonref/internal/models"
)

// MessageStore handles message persistence
type MessageStore struct {
	db *DB
}

// NewMessageStore creates a new MessageStore
func NewMessageStore(db *DB) *MessageStore {
	return &MessageStore{db: db}
}

// Append inserts a validated message and advances the session's updated_at.
// The foreign key rejects messages for sessions that do not exist.
func (s *MessageStore) Append(msg *models.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	citationsJSON, err := jsonText(msg.Citations)
	if err != nil {
		return err
	}
	chunksJSON, err := jsonText(msg.SourceChunks)
	if err != nil {
		return err
	}
	metaJSON, err := jsonText(msg.Metadata)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO messages (chat_session_id, role, content, created_at,
			token_count, processing_time, citations, source_chunks, message_metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, msg.ChatSessionID, string(msg.Role), msg.Content, msg.CreatedAt,
		optInt(msg.TokenCount), optDecText(msg.ProcessingTime, models.TimingScale),
		citationsJSON, chunksJSON, metaJSON)
	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}

	if msg.ID, err = res.LastInsertId(); err != nil {
		return err
	}

	// Conversation activity moves the session forward
	_, err = s.db.Exec("UPDATE chat_sessions SET updated_at = ? WHERE id = ?",
		msg.CreatedAt, msg.ChatSessionID)
	return err
}

// ListBySession retrieves a session's messages in conversation order
func (s *MessageStore) ListBySession(sessionID int64) ([]models.Message, error) {
	rows, err := s.db.Query(`
		SELECT id, chat_session_id, role, content, created_at,
			token_count, processing_time, citations, source_chunks, message_metadata
		FROM messages
		WHERE chat_session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var messages []models.Message
	for rows.Next() {
		var (
			msg           models.Message
			role          string
			tokenCount    sql.NullInt64
			procTime      sql.NullString
			citationsJSON sql.NullString
			chunksJSON    sql.NullString
			metaJSON      sql.NullString
		)
		err := rows.Scan(&msg.ID, &msg.ChatSessionID, &role, &msg.Content, &msg.CreatedAt,
			&tokenCount, &procTime, &citationsJSON, &chunksJSON, &metaJSON)
		if err != nil {
			return nil, err
		}

		msg.Role = models.MessageRole(role)
		msg.TokenCount = readOptInt(tokenCount)
		if msg.ProcessingTime, err = readOptDec(procTime); err != nil {
			return nil, err
		}
		msg.Citations = []models.Metadata{}
		readJSON(citationsJSON, &msg.Citations)
		msg.SourceChunks = []string{}
		readJSON(chunksJSON, &msg.SourceChunks)
		msg.Metadata = models.Metadata{}
		readJSON(metaJSON, &msg.Metadata)

		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// CountBySession returns the number of messages in a session
func (s *MessageStore) CountBySession(sessionID int64) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM messages WHERE chat_session_id = ?", sessionID).Scan(&count)
	return count, err
}
