// ABOUTME: NelsonChapter storage operations for SQLite
// ABOUTME: Deleting a chapter cascades to its chunks
package sqlite

import (
	"database/sql"
	"time"

	"github.com/pedbot/nelsonref/internal/models"
)

// ChapterStore handles textbook chapter persistence
type ChapterStore struct {
	db *DB
}

// NewChapterStore creates a new ChapterStore
func NewChapterStore(db *DB) *ChapterStore {
	return &ChapterStore{db: db}
}

// Create inserts a validated chapter and assigns its ID
func (s *ChapterStore) Create(ch *models.NelsonChapter) error {
	if ch.Edition == "" {
		ch.Edition = models.DefaultEdition
	}
	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = time.Now().UTC()
	}
	if ch.UpdatedAt.IsZero() {
		ch.UpdatedAt = ch.CreatedAt
	}
	if err := ch.Validate(); err != nil {
		return err
	}

	authorsJSON, err := jsonText(ch.Authors)
	if err != nil {
		return err
	}
	keywordsJSON, err := jsonText(ch.Keywords)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO nelson_chapters (chapter_number, title, authors, edition,
			page_start, page_end, keywords, summary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ch.ChapterNumber, ch.Title, authorsJSON, ch.Edition,
		optInt(ch.PageStart), optInt(ch.PageEnd), keywordsJSON,
		nullText(ch.Summary), ch.CreatedAt, ch.UpdatedAt)
	if err != nil {
		return err
	}

	ch.ID, err = res.LastInsertId()
	return err
}

// GetByID retrieves a chapter, or nil when absent
func (s *ChapterStore) GetByID(id int64) (*models.NelsonChapter, error) {
	row := s.db.QueryRow(`
		SELECT id, chapter_number, title, authors, edition, page_start, page_end,
			keywords, summary, created_at, updated_at
		FROM nelson_chapters WHERE id = ?
	`, id)

	ch, err := scanChapter(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func scanChapter(scan func(...any) error) (*models.NelsonChapter, error) {
	var (
		ch           models.NelsonChapter
		authorsJSON  sql.NullString
		keywordsJSON sql.NullString
		pageStart    sql.NullInt64
		pageEnd      sql.NullInt64
		summary      sql.NullString
	)
	err := scan(&ch.ID, &ch.ChapterNumber, &ch.Title, &authorsJSON, &ch.Edition,
		&pageStart, &pageEnd, &keywordsJSON, &summary, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		return nil, err
	}

	ch.Authors = []string{}
	readJSON(authorsJSON, &ch.Authors)
	ch.Keywords = []string{}
	readJSON(keywordsJSON, &ch.Keywords)
	ch.PageStart = readOptInt(pageStart)
	ch.PageEnd = readOptInt(pageEnd)
	ch.Summary = summary.String

	return &ch, nil
}

// List retrieves all chapters in chapter-number order
func (s *ChapterStore) List() ([]models.NelsonChapter, error) {
	rows, err := s.db.Query(`
		SELECT id, chapter_number, title, authors, edition, page_start, page_end,
			keywords, summary, created_at, updated_at
		FROM nelson_chapters ORDER BY chapter_number ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var chapters []models.NelsonChapter
	for rows.Next() {
		ch, err := scanChapter(rows.Scan)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, *ch)
	}
	return chapters, rows.Err()
}

// Delete removes a chapter; its chunks cascade
func (s *ChapterStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM nelson_chapters WHERE id = ?", id)
	return err
}
