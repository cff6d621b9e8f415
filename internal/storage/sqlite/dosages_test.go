// ABOUTME: Tests for dosing rule persistence and patient-matched lookup
// ABOUTME: Dose amounts must survive storage at exactly three decimal places
package sqlite

import (
	"testing"

	"github.com/pedbot/nelsonref/internal/models"
)

func mustCreateDosage(t *testing.T, db *DB, d *models.DrugDosage) *models.DrugDosage {
	t.Helper()
	if err := NewDosageStore(db).Create(d); err != nil {
		t.Fatalf("DosageStore.Create() error = %v", err)
	}
	return d
}

func TestDosageStore_DecimalRoundTrip(t *testing.T) {
	db := testDB(t)
	store := NewDosageStore(db)
	drug := mustCreateDrug(t, db, "amoxicillin")

	tests := []string{"25.000", "0.125", "45.000", "0.010"}
	for _, amount := range tests {
		t.Run(amount, func(t *testing.T) {
			d := mustCreateDosage(t, db, &models.DrugDosage{
				DrugID:     drug.ID,
				Indication: "otitis media",
				Route:      "oral",
				DoseAmount: dec(t, amount),
				DoseUnit:   models.UnitMgKgDay,
				Frequency:  "BID",
			})

			got, err := store.GetByID(d.ID)
			if err != nil {
				t.Fatalf("GetByID() error = %v", err)
			}
			if got.DoseAmount.StringFixed(models.DoseScale) != amount {
				t.Errorf("DoseAmount = %s, want %s",
					got.DoseAmount.StringFixed(models.DoseScale), amount)
			}
		})
	}
}

func TestDosageStore_OptionalBoundsRoundTrip(t *testing.T) {
	db := testDB(t)
	store := NewDosageStore(db)
	drug := mustCreateDrug(t, db, "amoxicillin")

	d := mustCreateDosage(t, db, &models.DrugDosage{
		DrugID:        drug.ID,
		Indication:    "otitis media",
		Route:         "oral",
		DoseAmount:    dec(t, "45.000"),
		DoseUnit:      models.UnitMgKgDay,
		Frequency:     "BID",
		MaxDailyDose:  decPtr(t, "1750.000"),
		MinAgeMonths:  intPtr(3),
		MaxAgeMonths:  intPtr(144),
		MinWeightKg:   decPtr(t, "4.00"),
		MaxWeightKg:   decPtr(t, "40.00"),
		MonitoringRequirements: []string{"renal function"},
	})

	got, err := store.GetByID(d.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.MaxDailyDose == nil || got.MaxDailyDose.StringFixed(3) != "1750.000" {
		t.Errorf("MaxDailyDose = %v", got.MaxDailyDose)
	}
	if got.MinWeightKg == nil || got.MinWeightKg.StringFixed(2) != "4.00" {
		t.Errorf("MinWeightKg = %v", got.MinWeightKg)
	}
	if got.MinAgeMonths == nil || *got.MinAgeMonths != 3 {
		t.Errorf("MinAgeMonths = %v", got.MinAgeMonths)
	}
	if len(got.MonitoringRequirements) != 1 {
		t.Errorf("MonitoringRequirements = %v", got.MonitoringRequirements)
	}
}

func TestDosageStore_FindForQuery(t *testing.T) {
	db := testDB(t)
	store := NewDosageStore(db)
	drugs := NewDrugStore(db)
	drug := mustCreateDrug(t, db, "amoxicillin")

	mustCreateDosage(t, db, &models.DrugDosage{
		DrugID:       drug.ID,
		Indication:   "otitis media",
		Route:        "oral",
		DoseAmount:   dec(t, "45.000"),
		DoseUnit:     models.UnitMgKgDay,
		Frequency:    "BID",
		MinAgeMonths: intPtr(6),
	})
	mustCreateDosage(t, db, &models.DrugDosage{
		DrugID:      drug.ID,
		Indication:  "pneumonia",
		Route:       "oral",
		DoseAmount:  dec(t, "90.000"),
		DoseUnit:    models.UnitMgKgDay,
		Frequency:   "BID",
		MinWeightKg: decPtr(t, "20.00"),
	})

	t.Run("matches by name case-insensitively", func(t *testing.T) {
		found, dosages, err := store.FindForQuery(drugs, models.DrugDosageQuery{
			DrugName: "AMOXICILLIN",
			WeightKg: dec(t, "12.50"),
		})
		if err != nil {
			t.Fatalf("FindForQuery() error = %v", err)
		}
		if found == nil {
			t.Fatal("drug not found")
		}
		// The pneumonia rule needs 20 kg; only otitis media applies
		if len(dosages) != 1 || dosages[0].Indication != "otitis media" {
			t.Errorf("dosages = %+v", dosages)
		}
	})

	t.Run("indication filter", func(t *testing.T) {
		_, dosages, err := store.FindForQuery(drugs, models.DrugDosageQuery{
			DrugName:   "amoxicillin",
			WeightKg:   dec(t, "25.00"),
			Indication: "pneumonia",
		})
		if err != nil {
			t.Fatalf("FindForQuery() error = %v", err)
		}
		if len(dosages) != 1 || dosages[0].Indication != "pneumonia" {
			t.Errorf("dosages = %+v", dosages)
		}
	})

	t.Run("age filter excludes young patients", func(t *testing.T) {
		_, dosages, err := store.FindForQuery(drugs, models.DrugDosageQuery{
			DrugName:  "amoxicillin",
			WeightKg:  dec(t, "4.50"),
			AgeMonths: intPtr(2),
		})
		if err != nil {
			t.Fatalf("FindForQuery() error = %v", err)
		}
		if len(dosages) != 0 {
			t.Errorf("dosages = %+v, want none for a 2-month-old", dosages)
		}
	})

	t.Run("unknown drug", func(t *testing.T) {
		found, _, err := store.FindForQuery(drugs, models.DrugDosageQuery{
			DrugName: "nosuchdrug",
			WeightKg: dec(t, "12.50"),
		})
		if err != nil {
			t.Fatalf("FindForQuery() error = %v", err)
		}
		if found != nil {
			t.Errorf("found = %+v, want nil", found)
		}
	})
}

func TestDrugStore_DeleteCascadesDosages(t *testing.T) {
	db := testDB(t)
	store := NewDosageStore(db)
	drug := mustCreateDrug(t, db, "amoxicillin")

	d := mustCreateDosage(t, db, &models.DrugDosage{
		DrugID:     drug.ID,
		Indication: "otitis media",
		Route:      "oral",
		DoseAmount: dec(t, "45.000"),
		DoseUnit:   models.UnitMgKgDay,
		Frequency:  "BID",
	})

	if err := NewDrugStore(db).Delete(drug.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, err := store.GetByID(d.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Error("deleting the drug should remove its dosages")
	}
}

func TestDrugStore_GetByNameCaseInsensitive(t *testing.T) {
	db := testDB(t)
	store := NewDrugStore(db)
	mustCreateDrug(t, db, "Amoxicillin")

	got, err := store.GetByName("amoxicillin")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByName() = nil for existing drug")
	}
	if len(got.BrandNames) != 1 || got.BrandNames[0] != "Amoxil" {
		t.Errorf("BrandNames = %v", got.BrandNames)
	}
}
