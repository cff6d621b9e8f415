// ABOUTME: GrowthChart entity holding percentile curves keyed by label
// ABOUTME: Each curve is an ordered sequence of (age, value) points
package models

import "time"

const (
	maxChartTypeLen = 50
	maxSourceLen    = 100
	maxVersionLen   = 20

	// DefaultChartSource and DefaultChartVersion apply when a chart record
	// does not name its origin.
	DefaultChartSource  = "WHO/CDC"
	DefaultChartVersion = "2000"

	// DefaultAgeRangeEnd is 20 years in months.
	DefaultAgeRangeEnd = 240
)

// GrowthPoint is one point on a percentile curve: a measurement value at an
// age in months.
type GrowthPoint struct {
	Age   float64 `json:"age"`
	Value float64 `json:"value"`
}

// GrowthChart is a standalone percentile reference record. PercentileData maps
// labels like "P3", "P50", "P97" to age-ordered curves.
type GrowthChart struct {
	ID             int64                    `json:"id"`
	ChartType      string                   `json:"chart_type"`
	Sex            Sex                      `json:"sex"`
	AgeRangeStart  int                      `json:"age_range_start"`
	AgeRangeEnd    int                      `json:"age_range_end"`
	PercentileData map[string][]GrowthPoint `json:"percentile_data"`
	Source         string                   `json:"source"`
	Version        string                   `json:"version"`
	LastUpdated    *time.Time               `json:"last_updated,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

// Validate checks every declared field constraint.
func (g *GrowthChart) Validate() error {
	if err := requireText("chart_type", g.ChartType, maxChartTypeLen); err != nil {
		return err
	}
	if !g.Sex.Valid() {
		return invalid("sex", "unknown sex %q", string(g.Sex))
	}
	if g.AgeRangeStart < 0 {
		return invalid("age_range_start", "cannot be negative")
	}
	if g.AgeRangeStart > g.AgeRangeEnd {
		return invalid("age_range_start", "exceeds age_range_end")
	}
	for label := range g.PercentileData {
		if label == "" {
			return invalid("percentile_data", "percentile label cannot be empty")
		}
	}
	if err := limitText("source", g.Source, maxSourceLen); err != nil {
		return err
	}
	return limitText("version", g.Version, maxVersionLen)
}

// NearestPoint returns the stored point on the labeled curve closest to the
// given age in months, or false when the curve is absent or empty.
func (g *GrowthChart) NearestPoint(label string, ageMonths float64) (GrowthPoint, bool) {
	curve := g.PercentileData[label]
	if len(curve) == 0 {
		return GrowthPoint{}, false
	}
	best := curve[0]
	for _, p := range curve[1:] {
		if diff(p.Age, ageMonths) < diff(best.Age, ageMonths) {
			best = p
		}
	}
	return best, true
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
