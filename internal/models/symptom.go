// ABOUTME: Symptom entity for clinical assessment reference
// ABOUTME: Carries synonyms, red flags, and common/urgent differential lists
package models

import (
	"strings"
	"time"
)

const (
	maxSymptomNameLen = 200
	maxCategoryLen    = 100
)

// Symptom is a standalone clinical assessment record.
type Symptom struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Synonyms             []string  `json:"synonyms"`
	Category             string    `json:"category"`
	Description          string    `json:"description,omitempty"`
	CommonAgeGroups      []string  `json:"common_age_groups"`
	RedFlags             []string  `json:"red_flags"`
	CommonDiagnoses      []string  `json:"common_diagnoses"`
	UrgentDiagnoses      []string  `json:"urgent_diagnoses"`
	AssessmentQuestions  []string  `json:"assessment_questions"`
	PhysicalExamFindings []string  `json:"physical_exam_findings"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Validate checks every declared field constraint.
func (s *Symptom) Validate() error {
	if err := requireText("name", s.Name, maxSymptomNameLen); err != nil {
		return err
	}
	return requireText("category", s.Category, maxCategoryLen)
}

// Touch advances UpdatedAt. The timestamp never moves backwards.
func (s *Symptom) Touch() {
	if now := time.Now().UTC(); now.After(s.UpdatedAt) {
		s.UpdatedAt = now
	}
}

// Matches reports whether the symptom's name or any synonym matches the term,
// case-insensitively.
func (s *Symptom) Matches(term string) bool {
	if strings.EqualFold(s.Name, term) {
		return true
	}
	for _, syn := range s.Synonyms {
		if strings.EqualFold(syn, term) {
			return true
		}
	}
	return false
}
