// ABOUTME: Tests for emergency protocol persistence and search
// ABOUTME: Covers keyword matching, filters, and priority ordering
package sqlite

import (
	"testing"

	"github.com/pedbot/nelsonref/internal/models"
)

func mustCreateProtocol(t *testing.T, db *DB, p *models.EmergencyProtocol) *models.EmergencyProtocol {
	t.Helper()
	if err := NewProtocolStore(db).Create(p); err != nil {
		t.Fatalf("ProtocolStore.Create() error = %v", err)
	}
	return p
}

func seedProtocols(t *testing.T, db *DB) {
	t.Helper()
	mustCreateProtocol(t, db, &models.EmergencyProtocol{
		Name:         "Pediatric Anaphylaxis Management",
		ProtocolType: models.EmergencyAnaphylaxis,
		AgeGroup:     "all",
		Keywords:     []string{"allergy", "epinephrine"},
		Overview:     "Immediate management of anaphylaxis.",
		Steps: []models.Metadata{
			{"step": float64(1), "action": "Give IM epinephrine"},
		},
		PriorityLevel: 1,
	})
	mustCreateProtocol(t, db, &models.EmergencyProtocol{
		Name:          "Infant Seizure Protocol",
		ProtocolType:  models.EmergencySeizures,
		AgeGroup:      "infant",
		Keywords:      []string{"convulsion", "status epilepticus"},
		Overview:      "First-line management of seizures in infants.",
		PriorityLevel: 2,
	})
}

func TestProtocolStore_SearchByName(t *testing.T) {
	db := testDB(t)
	seedProtocols(t, db)

	results, err := NewProtocolStore(db).Search(models.EmergencyProtocolQuery{
		SearchTerm: "anaphylaxis",
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Name != "Pediatric Anaphylaxis Management" {
		t.Errorf("Name = %q", results[0].Name)
	}
	if len(results[0].Steps) != 1 || results[0].Steps[0]["action"] != "Give IM epinephrine" {
		t.Errorf("Steps = %v", results[0].Steps)
	}
}

func TestProtocolStore_SearchByKeyword(t *testing.T) {
	db := testDB(t)
	seedProtocols(t, db)

	results, err := NewProtocolStore(db).Search(models.EmergencyProtocolQuery{
		SearchTerm: "Convulsion",
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].ProtocolType != models.EmergencySeizures {
		t.Errorf("results = %+v", results)
	}
}

func TestProtocolStore_TypeFilter(t *testing.T) {
	db := testDB(t)
	seedProtocols(t, db)

	results, err := NewProtocolStore(db).Search(models.EmergencyProtocolQuery{
		SearchTerm:   "a",
		ProtocolType: models.EmergencyAnaphylaxis,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].ProtocolType != models.EmergencyAnaphylaxis {
		t.Errorf("type filter leaked %q", results[0].ProtocolType)
	}
}

func TestProtocolStore_AgeGroupIncludesAll(t *testing.T) {
	db := testDB(t)
	seedProtocols(t, db)

	// An infant query should see both infant-specific protocols and
	// protocols recorded for all ages.
	results, err := NewProtocolStore(db).Search(models.EmergencyProtocolQuery{
		SearchTerm: "a",
		AgeGroup:   "infant",
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (infant + all)", len(results))
	}
	// Highest priority first
	if results[0].PriorityLevel != 1 {
		t.Errorf("first result priority = %d, want 1", results[0].PriorityLevel)
	}
}

func TestProtocolStore_CreateDefaultsPriority(t *testing.T) {
	db := testDB(t)
	p := mustCreateProtocol(t, db, &models.EmergencyProtocol{
		Name:         "Shock Recognition",
		ProtocolType: models.EmergencyShock,
		AgeGroup:     "child",
		Overview:     "Recognize compensated shock early.",
	})

	got, err := NewProtocolStore(db).GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PriorityLevel != 1 {
		t.Errorf("PriorityLevel = %d, want default 1", got.PriorityLevel)
	}
}
