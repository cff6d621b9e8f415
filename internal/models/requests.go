// ABOUTME: Non-persistent request shapes validated at the API boundary
// ABOUTME: Never stored as-is; the service layer transforms them into entities
package models

import "github.com/shopspring/decimal"

const maxSearchTermLen = 200

// UserCreate is the accepted input for creating a user. Server-assigned
// fields (id, timestamps, activity flags) are deliberately absent.
type UserCreate struct {
	Username    string   `json:"username" yaml:"username"`
	Email       string   `json:"email" yaml:"email"`
	FullName    string   `json:"full_name" yaml:"full_name"`
	Role        UserRole `json:"role,omitempty" yaml:"role"`
	Institution string   `json:"institution,omitempty" yaml:"institution"`
	Specialty   string   `json:"specialty,omitempty" yaml:"specialty"`
}

// Validate checks the creation shape independently of storage.
func (c UserCreate) Validate() error {
	if err := requireText("username", c.Username, maxUsernameLen); err != nil {
		return err
	}
	if err := requireText("email", c.Email, maxEmailLen); err != nil {
		return err
	}
	if !emailPattern.MatchString(c.Email) {
		return invalid("email", "not a valid email address")
	}
	if err := requireText("full_name", c.FullName, maxFullNameLen); err != nil {
		return err
	}
	if c.Role != "" && !c.Role.Valid() {
		return invalid("role", "unknown user role %q", string(c.Role))
	}
	if err := limitText("institution", c.Institution, maxInstitutionLen); err != nil {
		return err
	}
	return limitText("specialty", c.Specialty, maxSpecialtyLen)
}

// UserUpdate carries the mutable subset of a user. Nil fields are untouched.
type UserUpdate struct {
	FullName    *string  `json:"full_name,omitempty"`
	Institution *string  `json:"institution,omitempty"`
	Specialty   *string  `json:"specialty,omitempty"`
	Preferences Metadata `json:"preferences,omitempty"`
}

// Validate checks the update shape independently of storage.
func (u UserUpdate) Validate() error {
	if u.FullName != nil {
		if err := requireText("full_name", *u.FullName, maxFullNameLen); err != nil {
			return err
		}
	}
	if u.Institution != nil {
		if err := limitText("institution", *u.Institution, maxInstitutionLen); err != nil {
			return err
		}
	}
	if u.Specialty != nil {
		if err := limitText("specialty", *u.Specialty, maxSpecialtyLen); err != nil {
			return err
		}
	}
	return nil
}

// ChatSessionCreate is the accepted input for opening a session.
type ChatSessionCreate struct {
	Title string `json:"title,omitempty"`
}

// Validate checks the creation shape. An empty title is allowed and defaults
// to DefaultSessionTitle.
func (c ChatSessionCreate) Validate() error {
	return limitText("title", c.Title, maxSessionTitleLen)
}

// MessageCreate is the accepted input for appending a message.
type MessageCreate struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Citations []Metadata  `json:"citations,omitempty"`
	Metadata  Metadata    `json:"message_metadata,omitempty"`
}

// Validate checks the creation shape independently of storage.
func (c MessageCreate) Validate() error {
	if !c.Role.Valid() {
		return invalid("role", "unknown message role %q", string(c.Role))
	}
	if c.Content == "" {
		return invalid("content", "cannot be empty")
	}
	return nil
}

// DrugDosageQuery asks for dosing rules matching a drug and patient.
type DrugDosageQuery struct {
	DrugName   string          `json:"drug_name"`
	WeightKg   decimal.Decimal `json:"weight_kg"`
	AgeMonths  *int            `json:"age_months,omitempty"`
	Indication string          `json:"indication,omitempty"`
}

// Validate checks the query shape independently of storage.
func (q DrugDosageQuery) Validate() error {
	if err := requireText("drug_name", q.DrugName, maxGenericNameLen); err != nil {
		return err
	}
	if err := checkScale("weight_kg", q.WeightKg, WeightScale); err != nil {
		return err
	}
	if !q.WeightKg.IsPositive() {
		return invalid("weight_kg", "must be positive")
	}
	if q.AgeMonths != nil && *q.AgeMonths < 0 {
		return invalid("age_months", "cannot be negative")
	}
	return limitText("indication", q.Indication, maxIndicationLen)
}

// EmergencyProtocolQuery searches protocols by term with optional filters.
type EmergencyProtocolQuery struct {
	SearchTerm   string        `json:"search_term"`
	AgeGroup     string        `json:"age_group,omitempty"`
	ProtocolType EmergencyType `json:"protocol_type,omitempty"`
}

// Validate checks the query shape independently of storage.
func (q EmergencyProtocolQuery) Validate() error {
	if err := requireText("search_term", q.SearchTerm, maxSearchTermLen); err != nil {
		return err
	}
	if err := limitText("age_group", q.AgeGroup, maxAgeGroupLen); err != nil {
		return err
	}
	if q.ProtocolType != "" && !q.ProtocolType.Valid() {
		return invalid("protocol_type", "unknown emergency type %q", string(q.ProtocolType))
	}
	return nil
}

// MilestoneQuery filters milestones by age, domain, or text. All fields are
// optional but at least one must be set.
type MilestoneQuery struct {
	AgeMonths  *int                `json:"age_months,omitempty"`
	Domain     DevelopmentalDomain `json:"domain,omitempty"`
	SearchTerm string              `json:"search_term,omitempty"`
}

// Validate checks the query shape independently of storage.
func (q MilestoneQuery) Validate() error {
	if q.AgeMonths == nil && q.Domain == "" && q.SearchTerm == "" {
		return invalid("age_months", "at least one filter is required")
	}
	if q.AgeMonths != nil && *q.AgeMonths < 0 {
		return invalid("age_months", "cannot be negative")
	}
	if q.Domain != "" && !q.Domain.Valid() {
		return invalid("domain", "unknown developmental domain %q", string(q.Domain))
	}
	return limitText("search_term", q.SearchTerm, maxSearchTermLen)
}

// SymptomQuery looks up a symptom by name or synonym.
type SymptomQuery struct {
	SymptomName        string   `json:"symptom_name"`
	AgeMonths          *int     `json:"age_months,omitempty"`
	AdditionalSymptoms []string `json:"additional_symptoms,omitempty"`
}

// Validate checks the query shape independently of storage.
func (q SymptomQuery) Validate() error {
	if err := requireText("symptom_name", q.SymptomName, maxSymptomNameLen); err != nil {
		return err
	}
	if q.AgeMonths != nil && *q.AgeMonths < 0 {
		return invalid("age_months", "cannot be negative")
	}
	return nil
}

// GrowthChartQuery asks where a measurement falls on a percentile chart.
type GrowthChartQuery struct {
	ChartType        string          `json:"chart_type"`
	Sex              Sex             `json:"sex"`
	AgeMonths        int             `json:"age_months"`
	MeasurementValue decimal.Decimal `json:"measurement_value"`
}

// Validate checks the query shape independently of storage.
func (q GrowthChartQuery) Validate() error {
	if err := requireText("chart_type", q.ChartType, maxChartTypeLen); err != nil {
		return err
	}
	if !q.Sex.Valid() {
		return invalid("sex", "unknown sex %q", string(q.Sex))
	}
	if q.AgeMonths < 0 {
		return invalid("age_months", "cannot be negative")
	}
	return checkScale("measurement_value", q.MeasurementValue, WeightScale)
}
