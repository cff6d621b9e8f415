// ABOUTME: SearchQuery entity logging lookups against the reference data
// ABOUTME: UserID is nullable so anonymous queries can be recorded
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxQueryTextLen = 1000
	maxQueryTypeLen = 50
)

// SearchQuery is one logged lookup. QueryType is a free-form category tag
// such as "chat", "drug_lookup", "emergency", "milestone", or "symptom".
type SearchQuery struct {
	ID           int64            `json:"id"`
	UserID       *int64           `json:"user_id,omitempty"`
	QueryText    string           `json:"query_text"`
	QueryType    string           `json:"query_type"`
	ResultsCount int              `json:"results_count"`
	ContextData  Metadata         `json:"context_data"`
	ResponseTime *decimal.Decimal `json:"response_time,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// NewSearchQuery builds a validated log entry. A nil userID records an
// anonymous query.
func NewSearchQuery(userID *int64, queryText, queryType string) (*SearchQuery, error) {
	q := &SearchQuery{
		UserID:      userID,
		QueryText:   queryText,
		QueryType:   queryType,
		ContextData: Metadata{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks every declared field constraint.
func (q *SearchQuery) Validate() error {
	if q.UserID != nil && *q.UserID <= 0 {
		return invalid("user_id", "must reference a user when set")
	}
	if err := requireText("query_text", q.QueryText, maxQueryTextLen); err != nil {
		return err
	}
	if err := requireText("query_type", q.QueryType, maxQueryTypeLen); err != nil {
		return err
	}
	if q.ResultsCount < 0 {
		return invalid("results_count", "cannot be negative")
	}
	return checkOptScale("response_time", q.ResponseTime, TimingScale)
}
