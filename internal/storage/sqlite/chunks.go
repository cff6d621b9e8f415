// ABOUTME: NelsonChunk storage operations for SQLite
// ABOUTME: Embedding vectors are stored as little-endian float64 BLOBs
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pedbot/nelsonref/internal/models"
)

// ChunkStore handles retrieval chunk persistence. The embedding dimension is
// fixed by the external embedding model; a dimension of 0 disables the check.
type ChunkStore struct {
	db        *DB
	dimension int
}

// NewChunkStore creates a new ChunkStore validating vectors against dimension
func NewChunkStore(db *DB, dimension int) *ChunkStore {
	return &ChunkStore{db: db, dimension: dimension}
}

// Create inserts a validated chunk and assigns its ID
func (s *ChunkStore) Create(chunk *models.NelsonChunk) error {
	if chunk.CreatedAt.IsZero() {
		chunk.CreatedAt = time.Now().UTC()
	}
	if err := chunk.Validate(); err != nil {
		return err
	}
	if s.dimension > 0 && len(chunk.Embedding) > 0 && len(chunk.Embedding) != s.dimension {
		return fmt.Errorf("invalid embedding dimension: expected %d, got %d",
			s.dimension, len(chunk.Embedding))
	}

	pagesJSON, err := jsonText(chunk.PageNumbers)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO nelson_chunks (chapter_id, content, chunk_index, token_count,
			embedding, page_numbers, section_title, subsection_title, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, chunk.ChapterID, chunk.Content, chunk.ChunkIndex, chunk.TokenCount,
		vectorToBlob(chunk.Embedding), pagesJSON,
		nullText(chunk.SectionTitle), nullText(chunk.SubsectionTitle), chunk.CreatedAt)
	if err != nil {
		return err
	}

	chunk.ID, err = res.LastInsertId()
	return err
}

// GetByID retrieves a chunk, or nil when absent
func (s *ChunkStore) GetByID(id int64) (*models.NelsonChunk, error) {
	row := s.db.QueryRow(`
		SELECT id, chapter_id, content, chunk_index, token_count, embedding,
			page_numbers, section_title, subsection_title, created_at
		FROM nelson_chunks WHERE id = ?
	`, id)

	chunk, err := scanChunk(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

func scanChunk(scan func(...any) error) (*models.NelsonChunk, error) {
	var (
		chunk      models.NelsonChunk
		blob       []byte
		pagesJSON  sql.NullString
		section    sql.NullString
		subsection sql.NullString
	)
	err := scan(&chunk.ID, &chunk.ChapterID, &chunk.Content, &chunk.ChunkIndex,
		&chunk.TokenCount, &blob, &pagesJSON, &section, &subsection, &chunk.CreatedAt)
	if err != nil {
		return nil, err
	}

	chunk.Embedding = blobToVector(blob)
	chunk.PageNumbers = []int{}
	readJSON(pagesJSON, &chunk.PageNumbers)
	chunk.SectionTitle = section.String
	chunk.SubsectionTitle = subsection.String

	return &chunk, nil
}

// ListByChapter retrieves a chapter's chunks ordered by their index
func (s *ChunkStore) ListByChapter(chapterID int64) ([]models.NelsonChunk, error) {
	rows, err := s.db.Query(`
		SELECT id, chapter_id, content, chunk_index, token_count, embedding,
			page_numbers, section_title, subsection_title, created_at
		FROM nelson_chunks
		WHERE chapter_id = ?
		ORDER BY chunk_index ASC
	`, chapterID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var chunks []models.NelsonChunk
	for rows.Next() {
		chunk, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}
	return chunks, rows.Err()
}

// CountByChapter returns the number of chunks stored for a chapter
func (s *ChunkStore) CountByChapter(chapterID int64) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM nelson_chunks WHERE chapter_id = ?", chapterID).Scan(&count)
	return count, err
}
