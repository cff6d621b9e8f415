// ABOUTME: Tests for textbook chapter persistence
// ABOUTME: Covers edition defaulting, ordering, and chunk cascade
package sqlite

import (
	"testing"

	"github.com/pedbot/nelsonref/internal/models"
)

func mustCreateChapter(t *testing.T, db *DB, number int, title string) *models.NelsonChapter {
	t.Helper()
	ch := &models.NelsonChapter{
		ChapterNumber: number,
		Title:         title,
		Authors:       []string{"R. Kliegman"},
		Keywords:      []string{"pediatrics"},
	}
	if err := NewChapterStore(db).Create(ch); err != nil {
		t.Fatalf("ChapterStore.Create() error = %v", err)
	}
	return ch
}

func TestChapterStore_CreateDefaultsEdition(t *testing.T) {
	db := testDB(t)
	ch := mustCreateChapter(t, db, 12, "Fever")

	got, err := NewChapterStore(db).GetByID(ch.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Edition != models.DefaultEdition {
		t.Errorf("Edition = %q, want %q", got.Edition, models.DefaultEdition)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should be set on create")
	}
}

func TestChapterStore_ListByChapterNumber(t *testing.T) {
	db := testDB(t)
	mustCreateChapter(t, db, 30, "Respiratory Disorders")
	mustCreateChapter(t, db, 12, "Fever")

	chapters, err := NewChapterStore(db).List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("List() returned %d chapters, want 2", len(chapters))
	}
	if chapters[0].ChapterNumber != 12 || chapters[1].ChapterNumber != 30 {
		t.Errorf("chapters not ordered by number: %d, %d",
			chapters[0].ChapterNumber, chapters[1].ChapterNumber)
	}
}

func TestChapterStore_DeleteCascadesChunks(t *testing.T) {
	db := testDB(t)
	chunks := NewChunkStore(db, 0)
	ch := mustCreateChapter(t, db, 12, "Fever")

	for i := 0; i < 3; i++ {
		chunk := &models.NelsonChunk{
			ChapterID:  ch.ID,
			Content:    "chunk content",
			ChunkIndex: i,
			TokenCount: 42,
		}
		if err := chunks.Create(chunk); err != nil {
			t.Fatalf("ChunkStore.Create() error = %v", err)
		}
	}

	if err := NewChapterStore(db).Delete(ch.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	count, err := chunks.CountByChapter(ch.ID)
	if err != nil {
		t.Fatalf("CountByChapter() error = %v", err)
	}
	if count != 0 {
		t.Errorf("deleting the chapter left %d chunks behind", count)
	}
}
