// ABOUTME: Storage facade bundling all entity stores over one database
// ABOUTME: Resolves the default database location from XDG data directories
package storage

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pedbot/nelsonref/internal/storage/sqlite"
)

// Storage owns the database connection and exposes one store per entity.
type Storage struct {
	db *sqlite.DB

	Users      *sqlite.UserStore
	Sessions   *sqlite.SessionStore
	Messages   *sqlite.MessageStore
	Chapters   *sqlite.ChapterStore
	Chunks     *sqlite.ChunkStore
	Drugs      *sqlite.DrugStore
	Dosages    *sqlite.DosageStore
	Protocols  *sqlite.ProtocolStore
	Milestones *sqlite.MilestoneStore
	Charts     *sqlite.GrowthChartStore
	Symptoms   *sqlite.SymptomStore
	Queries    *sqlite.SearchQueryStore
}

// DefaultDBPath returns the default database file path following XDG spec.
// Respects XDG_DATA_HOME environment variable override for testing.
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "nelsonref", "nelsonref.db")
}

// Open opens the database at path and wires up all stores. vectorDimension
// is the embedding dimension chunks are validated against (0 disables).
func Open(path string, vectorDimension int) (*Storage, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	return wrap(db, vectorDimension), nil
}

// OpenInMemory creates an in-memory Storage (for testing)
func OpenInMemory(vectorDimension int) (*Storage, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, err
	}
	return wrap(db, vectorDimension), nil
}

func wrap(db *sqlite.DB, vectorDimension int) *Storage {
	return &Storage{
		db:         db,
		Users:      sqlite.NewUserStore(db),
		Sessions:   sqlite.NewSessionStore(db),
		Messages:   sqlite.NewMessageStore(db),
		Chapters:   sqlite.NewChapterStore(db),
		Chunks:     sqlite.NewChunkStore(db, vectorDimension),
		Drugs:      sqlite.NewDrugStore(db),
		Dosages:    sqlite.NewDosageStore(db),
		Protocols:  sqlite.NewProtocolStore(db),
		Milestones: sqlite.NewMilestoneStore(db),
		Charts:     sqlite.NewGrowthChartStore(db),
		Symptoms:   sqlite.NewSymptomStore(db),
		Queries:    sqlite.NewSearchQueryStore(db),
	}
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}
