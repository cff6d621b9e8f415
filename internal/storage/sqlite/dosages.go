// ABOUTME: DrugDosage storage operations for SQLite
// ABOUTME: FindForQuery resolves a DrugDosageQuery against stored dosing rules
package sqlite

import (
	"database/sql"

	"github.com/pedbot/nelsonref/internal/models"
)

// DosageStore handles dosing rule persistence
type DosageStore struct {
	db *DB
}

// NewDosageStore creates a new DosageStore
func NewDosageStore(db *DB) *DosageStore {
	return &DosageStore{db: db}
}

// Create inserts a validated dosage and assigns its ID
func (s *DosageStore) Create(d *models.DrugDosage) error {
	if err := d.Validate(); err != nil {
		return err
	}
	monitoringJSON, err := jsonText(d.MonitoringRequirements)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO drug_dosages (drug_id, indication, route, dose_amount, dose_unit,
			frequency, max_daily_dose, max_single_dose,
			min_age_months, max_age_months, min_weight_kg, max_weight_kg,
			administration_notes, monitoring_requirements)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.DrugID, d.Indication, d.Route,
		decText(d.DoseAmount, models.DoseScale), string(d.DoseUnit), d.Frequency,
		optDecText(d.MaxDailyDose, models.DoseScale),
		optDecText(d.MaxSingleDose, models.DoseScale),
		optInt(d.MinAgeMonths), optInt(d.MaxAgeMonths),
		optDecText(d.MinWeightKg, models.WeightScale),
		optDecText(d.MaxWeightKg, models.WeightScale),
		nullText(d.AdministrationNotes), monitoringJSON)
	if err != nil {
		return err
	}

	d.ID, err = res.LastInsertId()
	return err
}

const dosageColumns = `id, drug_id, indication, route, dose_amount, dose_unit,
	frequency, max_daily_dose, max_single_dose,
	min_age_months, max_age_months, min_weight_kg, max_weight_kg,
	administration_notes, monitoring_requirements`

// GetByID retrieves a dosage, or nil when absent
func (s *DosageStore) GetByID(id int64) (*models.DrugDosage, error) {
	row := s.db.QueryRow("SELECT "+dosageColumns+" FROM drug_dosages WHERE id = ?", id)
	d, err := scanDosage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func scanDosage(scan func(...any) error) (*models.DrugDosage, error) {
	var (
		d              models.DrugDosage
		doseAmount     string
		doseUnit       string
		maxDaily       sql.NullString
		maxSingle      sql.NullString
		minAge, maxAge sql.NullInt64
		minWt, maxWt   sql.NullString
		notes          sql.NullString
		monitoringJSON sql.NullString
	)
	err := scan(&d.ID, &d.DrugID, &d.Indication, &d.Route, &doseAmount, &doseUnit,
		&d.Frequency, &maxDaily, &maxSingle, &minAge, &maxAge, &minWt, &maxWt,
		&notes, &monitoringJSON)
	if err != nil {
		return nil, err
	}

	if d.DoseAmount, err = readDec(doseAmount); err != nil {
		return nil, err
	}
	d.DoseUnit = models.DoseUnit(doseUnit)
	if d.MaxDailyDose, err = readOptDec(maxDaily); err != nil {
		return nil, err
	}
	if d.MaxSingleDose, err = readOptDec(maxSingle); err != nil {
		return nil, err
	}
	d.MinAgeMonths = readOptInt(minAge)
	d.MaxAgeMonths = readOptInt(maxAge)
	if d.MinWeightKg, err = readOptDec(minWt); err != nil {
		return nil, err
	}
	if d.MaxWeightKg, err = readOptDec(maxWt); err != nil {
		return nil, err
	}
	d.AdministrationNotes = notes.String
	d.MonitoringRequirements = []string{}
	readJSON(monitoringJSON, &d.MonitoringRequirements)

	return &d, nil
}

// ListByDrug retrieves all dosing rules for a drug
func (s *DosageStore) ListByDrug(drugID int64) ([]models.DrugDosage, error) {
	rows, err := s.db.Query("SELECT "+dosageColumns+" FROM drug_dosages WHERE drug_id = ? ORDER BY id ASC", drugID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var dosages []models.DrugDosage
	for rows.Next() {
		d, err := scanDosage(rows.Scan)
		if err != nil {
			return nil, err
		}
		dosages = append(dosages, *d)
	}
	return dosages, rows.Err()
}

// FindForQuery resolves a dosage query: the drug is matched by generic name,
// then dosing rules are filtered by indication and patient eligibility.
// A nil drug result means the drug is unknown.
func (s *DosageStore) FindForQuery(drugs *DrugStore, q models.DrugDosageQuery) (*models.PediatricDrug, []models.DrugDosage, error) {
	if err := q.Validate(); err != nil {
		return nil, nil, err
	}

	drug, err := drugs.GetByName(q.DrugName)
	if err != nil || drug == nil {
		return nil, nil, err
	}

	all, err := s.ListByDrug(drug.ID)
	if err != nil {
		return nil, nil, err
	}

	weight := q.WeightKg
	var matched []models.DrugDosage
	for _, d := range all {
		if q.Indication != "" && !containsFold(d.Indication, q.Indication) {
			continue
		}
		if !d.AppliesTo(q.AgeMonths, &weight) {
			continue
		}
		matched = append(matched, d)
	}
	return drug, matched, nil
}
