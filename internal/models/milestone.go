// ABOUTME: DevelopmentalMilestone entity for age-based developmental screening
// ABOUTME: Typical age ranges are in months; red flag age marks concerning absence
package models

import "time"

const (
	maxMilestoneTextLen    = 500
	maxAssessmentMethodLen = 200
)

// DevelopmentalMilestone is a standalone screening reference record.
type DevelopmentalMilestone struct {
	ID                     int64               `json:"id"`
	AgeMonths              int                 `json:"age_months"`
	Domain                 DevelopmentalDomain `json:"domain"`
	MilestoneText          string              `json:"milestone_text"`
	Description            string              `json:"description,omitempty"`
	TypicalAgeRangeStart   int                 `json:"typical_age_range_start"`
	TypicalAgeRangeEnd     int                 `json:"typical_age_range_end"`
	RedFlagAge             *int                `json:"red_flag_age,omitempty"`
	AssessmentMethod       string              `json:"assessment_method,omitempty"`
	ParentReportAcceptable bool                `json:"parent_report_acceptable"`
	RequiresObservation    bool                `json:"requires_observation"`
	SourceReferences       []string            `json:"source_references"`
	ClinicalNotes          string              `json:"clinical_notes,omitempty"`
	CreatedAt              time.Time           `json:"created_at"`
}

// Validate checks every declared field constraint.
func (m *DevelopmentalMilestone) Validate() error {
	if m.AgeMonths < 0 {
		return invalid("age_months", "cannot be negative")
	}
	if !m.Domain.Valid() {
		return invalid("domain", "unknown developmental domain %q", string(m.Domain))
	}
	if err := requireText("milestone_text", m.MilestoneText, maxMilestoneTextLen); err != nil {
		return err
	}
	if m.TypicalAgeRangeStart < 0 {
		return invalid("typical_age_range_start", "cannot be negative")
	}
	if m.TypicalAgeRangeStart > m.TypicalAgeRangeEnd {
		return invalid("typical_age_range_start", "exceeds typical_age_range_end")
	}
	if m.RedFlagAge != nil && *m.RedFlagAge < 0 {
		return invalid("red_flag_age", "cannot be negative")
	}
	return limitText("assessment_method", m.AssessmentMethod, maxAssessmentMethodLen)
}
