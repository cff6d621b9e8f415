// ABOUTME: PediatricDrug and DrugDosage entities for weight-based dosing
// ABOUTME: Dose amounts are fixed-point at 3 decimals, weights at 2
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxGenericNameLen = 200
	maxDrugClassLen   = 100
	maxIndicationLen  = 200
	maxRouteLen       = 50
	maxFrequencyLen   = 50
)

// PediatricDrug is a drug monograph with optional age/weight eligibility.
type PediatricDrug struct {
	ID                int64            `json:"id"`
	GenericName       string           `json:"generic_name"`
	BrandNames        []string         `json:"brand_names"`
	DrugClass         string           `json:"drug_class"`
	Indications       []string         `json:"indications"`
	Contraindications []string         `json:"contraindications"`
	Warnings          []string         `json:"warnings"`
	MinAgeMonths      *int             `json:"min_age_months,omitempty"`
	MaxAgeMonths      *int             `json:"max_age_months,omitempty"`
	MinWeightKg       *decimal.Decimal `json:"min_weight_kg,omitempty"`
	MaxWeightKg       *decimal.Decimal `json:"max_weight_kg,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Validate checks every declared field constraint.
func (d *PediatricDrug) Validate() error {
	if err := requireText("generic_name", d.GenericName, maxGenericNameLen); err != nil {
		return err
	}
	if err := requireText("drug_class", d.DrugClass, maxDrugClassLen); err != nil {
		return err
	}
	if err := checkAgeOrder("min_age_months", d.MinAgeMonths, d.MaxAgeMonths); err != nil {
		return err
	}
	return checkWeightOrder("min_weight_kg", "max_weight_kg", d.MinWeightKg, d.MaxWeightKg)
}

// Touch advances UpdatedAt. The timestamp never moves backwards.
func (d *PediatricDrug) Touch() {
	if now := time.Now().UTC(); now.After(d.UpdatedAt) {
		d.UpdatedAt = now
	}
}

// DrugDosage is one dosing rule for a drug. Frequency strings like "q6h" or
// "BID" are clinical shorthand, stored verbatim.
type DrugDosage struct {
	ID                     int64            `json:"id"`
	DrugID                 int64            `json:"drug_id"`
	Indication             string           `json:"indication"`
	Route                  string           `json:"route"`
	DoseAmount             decimal.Decimal  `json:"dose_amount"`
	DoseUnit               DoseUnit         `json:"dose_unit"`
	Frequency              string           `json:"frequency"`
	MaxDailyDose           *decimal.Decimal `json:"max_daily_dose,omitempty"`
	MaxSingleDose          *decimal.Decimal `json:"max_single_dose,omitempty"`
	MinAgeMonths           *int             `json:"min_age_months,omitempty"`
	MaxAgeMonths           *int             `json:"max_age_months,omitempty"`
	MinWeightKg            *decimal.Decimal `json:"min_weight_kg,omitempty"`
	MaxWeightKg            *decimal.Decimal `json:"max_weight_kg,omitempty"`
	AdministrationNotes    string           `json:"administration_notes,omitempty"`
	MonitoringRequirements []string         `json:"monitoring_requirements"`
}

// Validate checks every declared field constraint.
func (d *DrugDosage) Validate() error {
	if d.DrugID <= 0 {
		return invalid("drug_id", "must reference a drug")
	}
	if err := requireText("indication", d.Indication, maxIndicationLen); err != nil {
		return err
	}
	if err := requireText("route", d.Route, maxRouteLen); err != nil {
		return err
	}
	if err := checkScale("dose_amount", d.DoseAmount, DoseScale); err != nil {
		return err
	}
	if !d.DoseUnit.Valid() {
		return invalid("dose_unit", "unknown dose unit %q", string(d.DoseUnit))
	}
	if err := requireText("frequency", d.Frequency, maxFrequencyLen); err != nil {
		return err
	}
	if err := checkOptScale("max_daily_dose", d.MaxDailyDose, DoseScale); err != nil {
		return err
	}
	if err := checkOptScale("max_single_dose", d.MaxSingleDose, DoseScale); err != nil {
		return err
	}
	if err := checkAgeOrder("min_age_months", d.MinAgeMonths, d.MaxAgeMonths); err != nil {
		return err
	}
	return checkWeightOrder("min_weight_kg", "max_weight_kg", d.MinWeightKg, d.MaxWeightKg)
}

// AppliesTo reports whether the dosage's eligibility window admits a patient
// of the given age and weight. Nil query values skip the corresponding bound.
func (d *DrugDosage) AppliesTo(ageMonths *int, weightKg *decimal.Decimal) bool {
	if ageMonths != nil {
		if d.MinAgeMonths != nil && *ageMonths < *d.MinAgeMonths {
			return false
		}
		if d.MaxAgeMonths != nil && *ageMonths > *d.MaxAgeMonths {
			return false
		}
	}
	if weightKg != nil {
		if d.MinWeightKg != nil && weightKg.LessThan(*d.MinWeightKg) {
			return false
		}
		if d.MaxWeightKg != nil && weightKg.GreaterThan(*d.MaxWeightKg) {
			return false
		}
	}
	return true
}
