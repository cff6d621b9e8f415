// ABOUTME: ChatSession and Message entities for conversation history
// ABOUTME: Sessions own their messages; deleting a session cascades to them
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxSessionTitleLen = 200

	// DefaultSessionTitle is used when a creation request omits the title.
	DefaultSessionTitle = "New Chat"
)

// ChatSession is one conversation thread owned by a user.
type ChatSession struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	IsArchived bool      `json:"is_archived"`
	Metadata   Metadata  `json:"session_metadata"`
}

// NewChatSession builds a validated session for a user.
func NewChatSession(userID int64, c ChatSessionCreate) (*ChatSession, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, invalid("user_id", "must reference a user")
	}
	title := c.Title
	if title == "" {
		title = DefaultSessionTitle
	}
	now := time.Now().UTC()
	return &ChatSession{
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata:  Metadata{},
	}, nil
}

// Validate checks every declared field constraint.
func (s *ChatSession) Validate() error {
	if s.UserID <= 0 {
		return invalid("user_id", "must reference a user")
	}
	return requireText("title", s.Title, maxSessionTitleLen)
}

// ValidateSessionTitle checks a title on its own, for rename operations.
func ValidateSessionTitle(title string) error {
	return requireText("title", title, maxSessionTitleLen)
}

// Touch advances UpdatedAt. The timestamp never moves backwards.
func (s *ChatSession) Touch() {
	if now := time.Now().UTC(); now.After(s.UpdatedAt) {
		s.UpdatedAt = now
	}
}

// Message is a single entry in a chat session. Insertion order is
// conversation order.
type Message struct {
	ID             int64            `json:"id"`
	ChatSessionID  int64            `json:"chat_session_id"`
	Role           MessageRole      `json:"role"`
	Content        string           `json:"content"`
	CreatedAt      time.Time        `json:"created_at"`
	TokenCount     *int             `json:"token_count,omitempty"`
	ProcessingTime *decimal.Decimal `json:"processing_time,omitempty"`
	Citations      []Metadata       `json:"citations"`
	SourceChunks   []string         `json:"source_chunks"`
	Metadata       Metadata         `json:"message_metadata"`
}

// NewMessage builds a validated message for a session.
func NewMessage(sessionID int64, c MessageCreate) (*Message, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if sessionID <= 0 {
		return nil, invalid("chat_session_id", "must reference a chat session")
	}
	msg := &Message{
		ChatSessionID: sessionID,
		Role:          c.Role,
		Content:       c.Content,
		CreatedAt:     time.Now().UTC(),
		Citations:     c.Citations,
		SourceChunks:  []string{},
		Metadata:      c.Metadata,
	}
	if msg.Citations == nil {
		msg.Citations = []Metadata{}
	}
	if msg.Metadata == nil {
		msg.Metadata = Metadata{}
	}
	return msg, nil
}

// Validate checks every declared field constraint.
func (m *Message) Validate() error {
	if m.ChatSessionID <= 0 {
		return invalid("chat_session_id", "must reference a chat session")
	}
	if !m.Role.Valid() {
		return invalid("role", "unknown message role %q", string(m.Role))
	}
	if m.Content == "" {
		return invalid("content", "cannot be empty")
	}
	if m.TokenCount != nil && *m.TokenCount < 0 {
		return invalid("token_count", "cannot be negative")
	}
	return checkOptScale("processing_time", m.ProcessingTime, TimingScale)
}
