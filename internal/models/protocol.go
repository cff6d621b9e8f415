// ABOUTME: EmergencyProtocol entity for time-critical clinical procedures
// ABOUTME: Steps and medications are open-ended JSON structures, stored in order
package models

import "time"

const (
	maxProtocolNameLen = 200
	maxAgeGroupLen     = 50
)

// EmergencyProtocol is a standalone emergency procedure record.
// PriorityLevel 1 is the highest priority.
type EmergencyProtocol struct {
	ID                int64         `json:"id"`
	Name              string        `json:"name"`
	ProtocolType      EmergencyType `json:"protocol_type"`
	AgeGroup          string        `json:"age_group"`
	Keywords          []string      `json:"keywords"`
	Overview          string        `json:"overview"`
	Steps             []Metadata    `json:"steps"`
	Medications       []Metadata    `json:"medications"`
	Equipment         []string      `json:"equipment"`
	WarningSigns      []string      `json:"warning_signs"`
	Contraindications []string      `json:"contraindications"`
	WhenToCallHelp    []string      `json:"when_to_call_help"`
	PriorityLevel     int           `json:"priority_level"`
	LastReviewed      *time.Time    `json:"last_reviewed,omitempty"`
	SourceReferences  []string      `json:"source_references"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Validate checks every declared field constraint.
func (p *EmergencyProtocol) Validate() error {
	if err := requireText("name", p.Name, maxProtocolNameLen); err != nil {
		return err
	}
	if !p.ProtocolType.Valid() {
		return invalid("protocol_type", "unknown emergency type %q", string(p.ProtocolType))
	}
	if err := requireText("age_group", p.AgeGroup, maxAgeGroupLen); err != nil {
		return err
	}
	if p.Overview == "" {
		return invalid("overview", "cannot be empty")
	}
	if p.PriorityLevel < 1 {
		return invalid("priority_level", "must be 1 or greater")
	}
	return nil
}

// Touch advances UpdatedAt. The timestamp never moves backwards.
func (p *EmergencyProtocol) Touch() {
	if now := time.Now().UTC(); now.After(p.UpdatedAt) {
		p.UpdatedAt = now
	}
}
