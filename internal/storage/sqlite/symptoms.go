// ABOUTME: Symptom storage operations for SQLite
// ABOUTME: Search matches symptom names and synonym lists
package sqlite

import (
	"database/sql"
	"time"

	"github.com/pedbot/nelsonref/internal/models"
)

// SymptomStore handles symptom persistence
type SymptomStore struct {
	db *DB
}

// NewSymptomStore creates a new SymptomStore
func NewSymptomStore(db *DB) *SymptomStore {
	return &SymptomStore{db: db}
}

// Create inserts a validated symptom and assigns its ID
func (s *SymptomStore) Create(sym *models.Symptom) error {
	if sym.CreatedAt.IsZero() {
		sym.CreatedAt = time.Now().UTC()
	}
	if sym.UpdatedAt.IsZero() {
		sym.UpdatedAt = sym.CreatedAt
	}
	if err := sym.Validate(); err != nil {
		return err
	}

	lists := []any{
		sym.Synonyms, sym.CommonAgeGroups, sym.RedFlags, sym.CommonDiagnoses,
		sym.UrgentDiagnoses, sym.AssessmentQuestions, sym.PhysicalExamFindings,
	}
	cols := make([]string, len(lists))
	for i, src := range lists {
		text, err := jsonText(src)
		if err != nil {
			return err
		}
		cols[i] = text
	}

	res, err := s.db.Exec(`
		INSERT INTO symptoms (name, synonyms, category, description,
			common_age_groups, red_flags, common_diagnoses, urgent_diagnoses,
			assessment_questions, physical_exam_findings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sym.Name, cols[0], sym.Category, nullText(sym.Description),
		cols[1], cols[2], cols[3], cols[4], cols[5], cols[6],
		sym.CreatedAt, sym.UpdatedAt)
	if err != nil {
		return err
	}

	sym.ID, err = res.LastInsertId()
	return err
}

const symptomColumns = `id, name, synonyms, category, description,
	common_age_groups, red_flags, common_diagnoses, urgent_diagnoses,
	assessment_questions, physical_exam_findings, created_at, updated_at`

// GetByID retrieves a symptom, or nil when absent
func (s *SymptomStore) GetByID(id int64) (*models.Symptom, error) {
	row := s.db.QueryRow("SELECT "+symptomColumns+" FROM symptoms WHERE id = ?", id)
	sym, err := scanSymptom(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sym, nil
}

func scanSymptom(scan func(...any) error) (*models.Symptom, error) {
	var (
		sym         models.Symptom
		synonyms    sql.NullString
		description sql.NullString
		ageGroups   sql.NullString
		redFlags    sql.NullString
		common      sql.NullString
		urgent      sql.NullString
		questions   sql.NullString
		findings    sql.NullString
	)
	err := scan(&sym.ID, &sym.Name, &synonyms, &sym.Category, &description,
		&ageGroups, &redFlags, &common, &urgent, &questions, &findings,
		&sym.CreatedAt, &sym.UpdatedAt)
	if err != nil {
		return nil, err
	}

	sym.Description = description.String
	sym.Synonyms = []string{}
	readJSON(synonyms, &sym.Synonyms)
	sym.CommonAgeGroups = []string{}
	readJSON(ageGroups, &sym.CommonAgeGroups)
	sym.RedFlags = []string{}
	readJSON(redFlags, &sym.RedFlags)
	sym.CommonDiagnoses = []string{}
	readJSON(common, &sym.CommonDiagnoses)
	sym.UrgentDiagnoses = []string{}
	readJSON(urgent, &sym.UrgentDiagnoses)
	sym.AssessmentQuestions = []string{}
	readJSON(questions, &sym.AssessmentQuestions)
	sym.PhysicalExamFindings = []string{}
	readJSON(findings, &sym.PhysicalExamFindings)

	return &sym, nil
}

// Search resolves a SymptomQuery by name or synonym match.
func (s *SymptomStore) Search(q models.SymptomQuery) ([]models.Symptom, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT " + symptomColumns + " FROM symptoms ORDER BY name COLLATE NOCASE ASC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []models.Symptom
	for rows.Next() {
		sym, err := scanSymptom(rows.Scan)
		if err != nil {
			return nil, err
		}
		if sym.Matches(q.SymptomName) || containsFold(sym.Name, q.SymptomName) {
			results = append(results, *sym)
		}
	}
	return results, rows.Err()
}

// Delete removes a symptom
func (s *SymptomStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM symptoms WHERE id = ?", id)
	return err
}
