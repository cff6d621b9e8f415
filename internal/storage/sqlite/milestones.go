// ABOUTME: DevelopmentalMilestone storage operations for SQLite
// ABOUTME: Find filters by age within typical range, domain, and text
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pedbot/nelsonref/internal/models"
)

// MilestoneStore handles developmental milestone persistence
type MilestoneStore struct {
	db *DB
}

// NewMilestoneStore creates a new MilestoneStore
func NewMilestoneStore(db *DB) *MilestoneStore {
	return &MilestoneStore{db: db}
}

// Create inserts a validated milestone and assigns its ID
func (s *MilestoneStore) Create(m *models.DevelopmentalMilestone) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if err := m.Validate(); err != nil {
		return err
	}

	sourcesJSON, err := jsonText(m.SourceReferences)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO developmental_milestones (age_months, domain, milestone_text,
			description, typical_age_range_start, typical_age_range_end, red_flag_age,
			assessment_method, parent_report_acceptable, requires_observation,
			source_references, clinical_notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.AgeMonths, string(m.Domain), m.MilestoneText, nullText(m.Description),
		m.TypicalAgeRangeStart, m.TypicalAgeRangeEnd, optInt(m.RedFlagAge),
		nullText(m.AssessmentMethod), m.ParentReportAcceptable, m.RequiresObservation,
		sourcesJSON, nullText(m.ClinicalNotes), m.CreatedAt)
	if err != nil {
		return err
	}

	m.ID, err = res.LastInsertId()
	return err
}

const milestoneColumns = `id, age_months, domain, milestone_text, description,
	typical_age_range_start, typical_age_range_end, red_flag_age,
	assessment_method, parent_report_acceptable, requires_observation,
	source_references, clinical_notes, created_at`

// GetByID retrieves a milestone, or nil when absent
func (s *MilestoneStore) GetByID(id int64) (*models.DevelopmentalMilestone, error) {
	row := s.db.QueryRow("SELECT "+milestoneColumns+" FROM developmental_milestones WHERE id = ?", id)
	m, err := scanMilestone(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func scanMilestone(scan func(...any) error) (*models.DevelopmentalMilestone, error) {
	var (
		m           models.DevelopmentalMilestone
		domain      string
		description sql.NullString
		redFlag     sql.NullInt64
		method      sql.NullString
		sourcesJSON sql.NullString
		notes       sql.NullString
	)
	err := scan(&m.ID, &m.AgeMonths, &domain, &m.MilestoneText, &description,
		&m.TypicalAgeRangeStart, &m.TypicalAgeRangeEnd, &redFlag,
		&method, &m.ParentReportAcceptable, &m.RequiresObservation,
		&sourcesJSON, &notes, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	m.Domain = models.DevelopmentalDomain(domain)
	m.Description = description.String
	m.RedFlagAge = readOptInt(redFlag)
	m.AssessmentMethod = method.String
	m.SourceReferences = []string{}
	readJSON(sourcesJSON, &m.SourceReferences)
	m.ClinicalNotes = notes.String

	return &m, nil
}

// Find resolves a MilestoneQuery. An age filter matches milestones whose
// typical range contains the age; the term matches milestone text or
// description, case-insensitively.
func (s *MilestoneStore) Find(q models.MilestoneQuery) ([]models.DevelopmentalMilestone, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	query := "SELECT " + milestoneColumns + " FROM developmental_milestones"
	var (
		where []string
		args  []any
	)
	if q.AgeMonths != nil {
		where = append(where, "typical_age_range_start <= ? AND typical_age_range_end >= ?")
		args = append(args, *q.AgeMonths, *q.AgeMonths)
	}
	if q.Domain != "" {
		where = append(where, "domain = ?")
		args = append(args, string(q.Domain))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY age_months ASC, id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []models.DevelopmentalMilestone
	for rows.Next() {
		m, err := scanMilestone(rows.Scan)
		if err != nil {
			return nil, err
		}
		if q.SearchTerm != "" &&
			!containsFold(m.MilestoneText, q.SearchTerm) &&
			!containsFold(m.Description, q.SearchTerm) {
			continue
		}
		results = append(results, *m)
	}
	return results, rows.Err()
}

// Delete removes a milestone
func (s *MilestoneStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM developmental_milestones WHERE id = ?", id)
	return err
}
