// ABOUTME: EmergencyProtocol storage operations for SQLite
// ABOUTME: Search matches name and keywords, ordered by priority level
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pedbot/nelsonref/internal/models"
)

// ProtocolStore handles emergency protocol persistence
type ProtocolStore struct {
	db *DB
}

// NewProtocolStore creates a new ProtocolStore
func NewProtocolStore(db *DB) *ProtocolStore {
	return &ProtocolStore{db: db}
}

// Create inserts a validated protocol and assigns its ID
func (s *ProtocolStore) Create(p *models.EmergencyProtocol) error {
	if p.PriorityLevel == 0 {
		p.PriorityLevel = 1
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if err := p.Validate(); err != nil {
		return err
	}

	cols, err := protocolJSONColumns(p)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO emergency_protocols (name, protocol_type, age_group, keywords,
			overview, steps, medications, equipment, warning_signs, contraindications,
			when_to_call_help, priority_level, last_reviewed, source_references,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, string(p.ProtocolType), p.AgeGroup, cols.keywords,
		p.Overview, cols.steps, cols.medications, cols.equipment,
		cols.warningSigns, cols.contraindications, cols.whenToCallHelp,
		p.PriorityLevel, p.LastReviewed, cols.sourceReferences,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}

	p.ID, err = res.LastInsertId()
	return err
}

type protocolJSON struct {
	keywords          string
	steps             string
	medications       string
	equipment         string
	warningSigns      string
	contraindications string
	whenToCallHelp    string
	sourceReferences  string
}

func protocolJSONColumns(p *models.EmergencyProtocol) (*protocolJSON, error) {
	cols := &protocolJSON{}
	for _, field := range []struct {
		dst *string
		src any
	}{
		{&cols.keywords, p.Keywords},
		{&cols.steps, p.Steps},
		{&cols.medications, p.Medications},
		{&cols.equipment, p.Equipment},
		{&cols.warningSigns, p.WarningSigns},
		{&cols.contraindications, p.Contraindications},
		{&cols.whenToCallHelp, p.WhenToCallHelp},
		{&cols.sourceReferences, p.SourceReferences},
	} {
		text, err := jsonText(field.src)
		if err != nil {
			return nil, err
		}
		*field.dst = text
	}
	return cols, nil
}

const protocolColumns = `id, name, protocol_type, age_group, keywords, overview,
	steps, medications, equipment, warning_signs, contraindications,
	when_to_call_help, priority_level, last_reviewed, source_references,
	created_at, updated_at`

// GetByID retrieves a protocol, or nil when absent
func (s *ProtocolStore) GetByID(id int64) (*models.EmergencyProtocol, error) {
	row := s.db.QueryRow("SELECT "+protocolColumns+" FROM emergency_protocols WHERE id = ?", id)
	p, err := scanProtocol(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanProtocol(scan func(...any) error) (*models.EmergencyProtocol, error) {
	var (
		p            models.EmergencyProtocol
		protocolType string
		keywords     sql.NullString
		steps        sql.NullString
		medications  sql.NullString
		equipment    sql.NullString
		warnings     sql.NullString
		contra       sql.NullString
		callHelp     sql.NullString
		lastReviewed sql.NullTime
		sources      sql.NullString
	)
	err := scan(&p.ID, &p.Name, &protocolType, &p.AgeGroup, &keywords, &p.Overview,
		&steps, &medications, &equipment, &warnings, &contra, &callHelp,
		&p.PriorityLevel, &lastReviewed, &sources, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.ProtocolType = models.EmergencyType(protocolType)
	p.Keywords = []string{}
	readJSON(keywords, &p.Keywords)
	p.Steps = []models.Metadata{}
	readJSON(steps, &p.Steps)
	p.Medications = []models.Metadata{}
	readJSON(medications, &p.Medications)
	p.Equipment = []string{}
	readJSON(equipment, &p.Equipment)
	p.WarningSigns = []string{}
	readJSON(warnings, &p.WarningSigns)
	p.Contraindications = []string{}
	readJSON(contra, &p.Contraindications)
	p.WhenToCallHelp = []string{}
	readJSON(callHelp, &p.WhenToCallHelp)
	if lastReviewed.Valid {
		t := lastReviewed.Time
		p.LastReviewed = &t
	}
	p.SourceReferences = []string{}
	readJSON(sources, &p.SourceReferences)

	return &p, nil
}

// Search resolves an EmergencyProtocolQuery. The term matches the protocol
// name or any keyword, case-insensitively; type and age-group filters are
// exact. Results come back highest priority first.
func (s *ProtocolStore) Search(q models.EmergencyProtocolQuery) ([]models.EmergencyProtocol, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	query := "SELECT " + protocolColumns + " FROM emergency_protocols"
	var (
		where []string
		args  []any
	)
	if q.ProtocolType != "" {
		where = append(where, "protocol_type = ?")
		args = append(args, string(q.ProtocolType))
	}
	if q.AgeGroup != "" {
		where = append(where, "(age_group = ? OR age_group = 'all')")
		args = append(args, q.AgeGroup)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY priority_level ASC, name ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []models.EmergencyProtocol
	for rows.Next() {
		p, err := scanProtocol(rows.Scan)
		if err != nil {
			return nil, err
		}
		if !protocolMatches(p, q.SearchTerm) {
			continue
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

// protocolMatches checks the search term against name and keywords.
func protocolMatches(p *models.EmergencyProtocol, term string) bool {
	if containsFold(p.Name, term) {
		return true
	}
	for _, kw := range p.Keywords {
		if containsFold(kw, term) {
			return true
		}
	}
	return false
}

// Delete removes a protocol
func (s *ProtocolStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM emergency_protocols WHERE id = ?", id)
	return err
}
