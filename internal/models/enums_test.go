// ABOUTME: Tests for closed string enumerations
// ABOUTME: Parse functions must reject anything outside the declared values
package models

import "testing"

func TestParseUserRole(t *testing.T) {
	for _, s := range []string{"student", "resident", "clinician", "admin"} {
		if _, err := ParseUserRole(s); err != nil {
			t.Errorf("ParseUserRole(%q) error = %v", s, err)
		}
	}
	for _, s := range []string{"", "Student", "attending", "nurse"} {
		if _, err := ParseUserRole(s); err == nil {
			t.Errorf("ParseUserRole(%q) = nil, want error", s)
		}
	}
}

func TestParseMessageRole(t *testing.T) {
	for _, s := range []string{"user", "assistant", "system"} {
		if _, err := ParseMessageRole(s); err != nil {
			t.Errorf("ParseMessageRole(%q) error = %v", s, err)
		}
	}
	if _, err := ParseMessageRole("tool"); err == nil {
		t.Error("ParseMessageRole(tool) = nil, want error")
	}
}

func TestParseEmergencyType(t *testing.T) {
	valid := []string{
		"neonatal_resuscitation", "anaphylaxis", "cardiac_arrest",
		"respiratory_distress", "seizures", "shock", "poisoning",
	}
	for _, s := range valid {
		if _, err := ParseEmergencyType(s); err != nil {
			t.Errorf("ParseEmergencyType(%q) error = %v", s, err)
		}
	}
	for _, s := range []string{"seizure", "trauma", ""} {
		if _, err := ParseEmergencyType(s); err == nil {
			t.Errorf("ParseEmergencyType(%q) = nil, want error", s)
		}
	}
}

func TestParseDevelopmentalDomain(t *testing.T) {
	valid := []string{
		"gross_motor", "fine_motor", "language",
		"cognitive", "social_emotional", "adaptive",
	}
	for _, s := range valid {
		if _, err := ParseDevelopmentalDomain(s); err != nil {
			t.Errorf("ParseDevelopmentalDomain(%q) error = %v", s, err)
		}
	}
	if _, err := ParseDevelopmentalDomain("motor"); err == nil {
		t.Error("ParseDevelopmentalDomain(motor) = nil, want error")
	}
}

func TestParseDoseUnit(t *testing.T) {
	valid := []string{"mg/kg", "mcg/kg", "units/kg", "ml/kg", "mg/kg/day", "mcg/kg/min"}
	for _, s := range valid {
		if _, err := ParseDoseUnit(s); err != nil {
			t.Errorf("ParseDoseUnit(%q) error = %v", s, err)
		}
	}
	for _, s := range []string{"mg", "mg/kg/dose", ""} {
		if _, err := ParseDoseUnit(s); err == nil {
			t.Errorf("ParseDoseUnit(%q) = nil, want error", s)
		}
	}
}

func TestParseSex(t *testing.T) {
	for _, s := range []string{"male", "female", "all"} {
		if _, err := ParseSex(s); err != nil {
			t.Errorf("ParseSex(%q) error = %v", s, err)
		}
	}
	for _, s := range []string{"M", "other", ""} {
		if _, err := ParseSex(s); err == nil {
			t.Errorf("ParseSex(%q) = nil, want error", s)
		}
	}
}
