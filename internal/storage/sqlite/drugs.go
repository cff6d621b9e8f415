// ABOUTME: PediatricDrug and DrugDosage storage operations for SQLite
// ABOUTME: Dosage queries filter by drug name, indication, and patient eligibility
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pedbot/nelsonref/internal/models"
)

// DrugStore handles drug monograph persistence
type DrugStore struct {
	db *DB
}

// NewDrugStore creates a new DrugStore
func NewDrugStore(db *DB) *DrugStore {
	return &DrugStore{db: db}
}

// Create inserts a validated drug and assigns its ID
func (s *DrugStore) Create(drug *models.PediatricDrug) error {
	if drug.CreatedAt.IsZero() {
		drug.CreatedAt = time.Now().UTC()
	}
	if drug.UpdatedAt.IsZero() {
		drug.UpdatedAt = drug.CreatedAt
	}
	if err := drug.Validate(); err != nil {
		return err
	}

	brandsJSON, err := jsonText(drug.BrandNames)
	if err != nil {
		return err
	}
	indicationsJSON, err := jsonText(drug.Indications)
	if err != nil {
		return err
	}
	contraJSON, err := jsonText(drug.Contraindications)
	if err != nil {
		return err
	}
	warningsJSON, err := jsonText(drug.Warnings)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO pediatric_drugs (generic_name, brand_names, drug_class,
			indications, contraindications, warnings,
			min_age_months, max_age_months, min_weight_kg, max_weight_kg,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, drug.GenericName, brandsJSON, drug.DrugClass,
		indicationsJSON, contraJSON, warningsJSON,
		optInt(drug.MinAgeMonths), optInt(drug.MaxAgeMonths),
		optDecText(drug.MinWeightKg, models.WeightScale),
		optDecText(drug.MaxWeightKg, models.WeightScale),
		drug.CreatedAt, drug.UpdatedAt)
	if err != nil {
		return err
	}

	drug.ID, err = res.LastInsertId()
	return err
}

// GetByID retrieves a drug, or nil when absent
func (s *DrugStore) GetByID(id int64) (*models.PediatricDrug, error) {
	return s.getWhere("id = ?", id)
}

// GetByName retrieves a drug by generic name, case-insensitively,
// or nil when absent
func (s *DrugStore) GetByName(genericName string) (*models.PediatricDrug, error) {
	return s.getWhere("lower(generic_name) = ?", strings.ToLower(genericName))
}

func (s *DrugStore) getWhere(where string, arg any) (*models.PediatricDrug, error) {
	row := s.db.QueryRow(`
		SELECT id, generic_name, brand_names, drug_class,
			indications, contraindications, warnings,
			min_age_months, max_age_months, min_weight_kg, max_weight_kg,
			created_at, updated_at
		FROM pediatric_drugs WHERE `+where, arg)

	drug, err := scanDrug(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return drug, nil
}

func scanDrug(scan func(...any) error) (*models.PediatricDrug, error) {
	var (
		drug            models.PediatricDrug
		brandsJSON      sql.NullString
		indicationsJSON sql.NullString
		contraJSON      sql.NullString
		warningsJSON    sql.NullString
		minAge, maxAge  sql.NullInt64
		minWt, maxWt    sql.NullString
	)
	err := scan(&drug.ID, &drug.GenericName, &brandsJSON, &drug.DrugClass,
		&indicationsJSON, &contraJSON, &warningsJSON,
		&minAge, &maxAge, &minWt, &maxWt, &drug.CreatedAt, &drug.UpdatedAt)
	if err != nil {
		return nil, err
	}

	drug.BrandNames = []string{}
	readJSON(brandsJSON, &drug.BrandNames)
	drug.Indications = []string{}
	readJSON(indicationsJSON, &drug.Indications)
	drug.Contraindications = []string{}
	readJSON(contraJSON, &drug.Contraindications)
	drug.Warnings = []string{}
	readJSON(warningsJSON, &drug.Warnings)
	drug.MinAgeMonths = readOptInt(minAge)
	drug.MaxAgeMonths = readOptInt(maxAge)
	if drug.MinWeightKg, err = readOptDec(minWt); err != nil {
		return nil, err
	}
	if drug.MaxWeightKg, err = readOptDec(maxWt); err != nil {
		return nil, err
	}

	return &drug, nil
}

// List retrieves all drugs ordered by generic name
func (s *DrugStore) List() ([]models.PediatricDrug, error) {
	rows, err := s.db.Query(`
		SELECT id, generic_name, brand_names, drug_class,
			indications, contraindications, warnings,
			min_age_months, max_age_months, min_weight_kg, max_weight_kg,
			created_at, updated_at
		FROM pediatric_drugs ORDER BY generic_name COLLATE NOCASE ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var drugs []models.PediatricDrug
	for rows.Next() {
		drug, err := scanDrug(rows.Scan)
		if err != nil {
			return nil, err
		}
		drugs = append(drugs, *drug)
	}
	return drugs, rows.Err()
}

// Delete removes a drug; its dosages cascade
func (s *DrugStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM pediatric_drugs WHERE id = ?", id)
	return err
}
