// ABOUTME: NelsonChapter and NelsonChunk entities for the knowledge base
// ABOUTME: Chapters own index-ordered chunks; embeddings are computed externally
package models

import "time"

const (
	maxChapterTitleLen = 500
	maxEditionLen      = 20
	maxSectionTitleLen = 500

	// DefaultEdition is the textbook edition assumed when none is given.
	DefaultEdition = "22nd"
)

// NelsonChapter is one chapter of the reference textbook.
type NelsonChapter struct {
	ID            int64     `json:"id"`
	ChapterNumber int       `json:"chapter_number"`
	Title         string    `json:"title"`
	Authors       []string  `json:"authors"`
	Edition       string    `json:"edition"`
	PageStart     *int      `json:"page_start,omitempty"`
	PageEnd       *int      `json:"page_end,omitempty"`
	Keywords      []string  `json:"keywords"`
	Summary       string    `json:"summary,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate checks every declared field constraint.
func (c *NelsonChapter) Validate() error {
	if c.ChapterNumber <= 0 {
		return invalid("chapter_number", "must be positive")
	}
	if err := requireText("title", c.Title, maxChapterTitleLen); err != nil {
		return err
	}
	if err := limitText("edition", c.Edition, maxEditionLen); err != nil {
		return err
	}
	if c.PageStart != nil && *c.PageStart < 1 {
		return invalid("page_start", "must be positive")
	}
	if c.PageStart != nil && c.PageEnd != nil && *c.PageStart > *c.PageEnd {
		return invalid("page_start", "exceeds page_end")
	}
	return nil
}

// Touch advances UpdatedAt. The timestamp never moves backwards.
func (c *NelsonChapter) Touch() {
	if now := time.Now().UTC(); now.After(c.UpdatedAt) {
		c.UpdatedAt = now
	}
}

// NelsonChunk is a retrieval fragment of a chapter. The embedding dimension is
// fixed by the external embedding model; this schema only stores the vector.
type NelsonChunk struct {
	ID              int64     `json:"id"`
	ChapterID       int64     `json:"chapter_id"`
	Content         string    `json:"content"`
	ChunkIndex      int       `json:"chunk_index"`
	TokenCount      int       `json:"token_count"`
	Embedding       []float64 `json:"embedding"`
	PageNumbers     []int     `json:"page_numbers"`
	SectionTitle    string    `json:"section_title,omitempty"`
	SubsectionTitle string    `json:"subsection_title,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Validate checks every declared field constraint.
func (c *NelsonChunk) Validate() error {
	if c.ChapterID <= 0 {
		return invalid("chapter_id", "must reference a chapter")
	}
	if c.Content == "" {
		return invalid("content", "cannot be empty")
	}
	if c.ChunkIndex < 0 {
		return invalid("chunk_index", "cannot be negative")
	}
	if c.TokenCount < 0 {
		return invalid("token_count", "cannot be negative")
	}
	if err := limitText("section_title", c.SectionTitle, maxSectionTitleLen); err != nil {
		return err
	}
	return limitText("subsection_title", c.SubsectionTitle, maxSectionTitleLen)
}
