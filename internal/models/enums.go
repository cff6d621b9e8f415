// ABOUTME: Closed string enumerations for categorical fields
// ABOUTME: String spellings are the persisted encodings and must not change
package models

// UserRole classifies the clinical experience level of an account.
type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleResident  UserRole = "resident"
	RoleClinician UserRole = "clinician"
	RoleAdmin     UserRole = "admin"
)

// Valid reports whether the role is one of the declared values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleResident, RoleClinician, RoleAdmin:
		return true
	}
	return false
}

// ParseUserRole converts a stored string into a UserRole.
func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(s)
	if !r.Valid() {
		return "", invalid("role", "unknown user role %q", s)
	}
	return r, nil
}

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

func (r MessageRole) Valid() bool {
	switch r {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem:
		return true
	}
	return false
}

// ParseMessageRole converts a stored string into a MessageRole.
func ParseMessageRole(s string) (MessageRole, error) {
	r := MessageRole(s)
	if !r.Valid() {
		return "", invalid("role", "unknown message role %q", s)
	}
	return r, nil
}

// EmergencyType categorizes an emergency protocol.
type EmergencyType string

const (
	EmergencyNeonatalResuscitation EmergencyType = "neonatal_resuscitation"
	EmergencyAnaphylaxis           EmergencyType = "anaphylaxis"
	EmergencyCardiacArrest         EmergencyType = "cardiac_arrest"
	EmergencyRespiratoryDistress   EmergencyType = "respiratory_distress"
	EmergencySeizures              EmergencyType = "seizures"
	EmergencyShock                 EmergencyType = "shock"
	EmergencyPoisoning             EmergencyType = "poisoning"
)

func (t EmergencyType) Valid() bool {
	switch t {
	case EmergencyNeonatalResuscitation, EmergencyAnaphylaxis,
		EmergencyCardiacArrest, EmergencyRespiratoryDistress,
		EmergencySeizures, EmergencyShock, EmergencyPoisoning:
		return true
	}
	return false
}

// ParseEmergencyType converts a stored string into an EmergencyType.
func ParseEmergencyType(s string) (EmergencyType, error) {
	t := EmergencyType(s)
	if !t.Valid() {
		return "", invalid("protocol_type", "unknown emergency type %q", s)
	}
	return t, nil
}

// DevelopmentalDomain categorizes a developmental milestone.
type DevelopmentalDomain string

const (
	DomainGrossMotor      DevelopmentalDomain = "gross_motor"
	DomainFineMotor       DevelopmentalDomain = "fine_motor"
	DomainLanguage        DevelopmentalDomain = "language"
	DomainCognitive       DevelopmentalDomain = "cognitive"
	DomainSocialEmotional DevelopmentalDomain = "social_emotional"
	DomainAdaptive        DevelopmentalDomain = "adaptive"
)

func (d DevelopmentalDomain) Valid() bool {
	switch d {
	case DomainGrossMotor, DomainFineMotor, DomainLanguage,
		DomainCognitive, DomainSocialEmotional, DomainAdaptive:
		return true
	}
	return false
}

// ParseDevelopmentalDomain converts a stored string into a DevelopmentalDomain.
func ParseDevelopmentalDomain(s string) (DevelopmentalDomain, error) {
	d := DevelopmentalDomain(s)
	if !d.Valid() {
		return "", invalid("domain", "unknown developmental domain %q", s)
	}
	return d, nil
}

// DoseUnit is the weight-based unit for a drug dosage.
// Frequency strings like "q6h" or "BID" are plain text, not enumerated.
type DoseUnit string

const (
	UnitMgKg     DoseUnit = "mg/kg"
	UnitMcgKg    DoseUnit = "mcg/kg"
	UnitUnitsKg  DoseUnit = "units/kg"
	UnitMlKg     DoseUnit = "ml/kg"
	UnitMgKgDay  DoseUnit = "mg/kg/day"
	UnitMcgKgMin DoseUnit = "mcg/kg/min"
)

func (u DoseUnit) Valid() bool {
	switch u {
	case UnitMgKg, UnitMcgKg, UnitUnitsKg, UnitMlKg, UnitMgKgDay, UnitMcgKgMin:
		return true
	}
	return false
}

// ParseDoseUnit converts a stored string into a DoseUnit.
func ParseDoseUnit(s string) (DoseUnit, error) {
	u := DoseUnit(s)
	if !u.Valid() {
		return "", invalid("dose_unit", "unknown dose unit %q", s)
	}
	return u, nil
}

// Sex selects which growth chart applies.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexAll    Sex = "all"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexAll:
		return true
	}
	return false
}

// ParseSex converts a stored string into a Sex.
func ParseSex(s string) (Sex, error) {
	v := Sex(s)
	if !v.Valid() {
		return "", invalid("sex", "unknown sex %q", s)
	}
	return v, nil
}
