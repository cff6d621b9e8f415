// ABOUTME: GrowthChart storage operations for SQLite
// ABOUTME: Percentile curves are stored as a JSON mapping of label to points
package sqlite

import (
	"database/sql"
	"time"

	"github.com/pedbot/nelsonref/internal/models"
)

// GrowthChartStore handles growth chart persistence
type GrowthChartStore struct {
	db *DB
}

// NewGrowthChartStore creates a new GrowthChartStore
func NewGrowthChartStore(db *DB) *GrowthChartStore {
	return &GrowthChartStore{db: db}
}

// Create inserts a validated chart and assigns its ID
func (s *GrowthChartStore) Create(g *models.GrowthChart) error {
	if g.Source == "" {
		g.Source = models.DefaultChartSource
	}
	if g.Version == "" {
		g.Version = models.DefaultChartVersion
	}
	if g.AgeRangeEnd == 0 {
		g.AgeRangeEnd = models.DefaultAgeRangeEnd
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	if err := g.Validate(); err != nil {
		return err
	}

	dataJSON, err := jsonText(g.PercentileData)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO growth_charts (chart_type, sex, age_range_start, age_range_end,
			percentile_data, source, version, last_updated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ChartType, string(g.Sex), g.AgeRangeStart, g.AgeRangeEnd,
		dataJSON, g.Source, g.Version, g.LastUpdated, g.CreatedAt)
	if err != nil {
		return err
	}

	g.ID, err = res.LastInsertId()
	return err
}

const chartColumns = `id, chart_type, sex, age_range_start, age_range_end,
	percentile_data, source, version, last_updated, created_at`

// GetByID retrieves a chart, or nil when absent
func (s *GrowthChartStore) GetByID(id int64) (*models.GrowthChart, error) {
	row := s.db.QueryRow("SELECT "+chartColumns+" FROM growth_charts WHERE id = ?", id)
	g, err := scanChart(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Lookup retrieves the chart for a type and sex. A chart recorded for "all"
// answers queries for either sex.
func (s *GrowthChartStore) Lookup(chartType string, sex models.Sex) (*models.GrowthChart, error) {
	row := s.db.QueryRow(`
		SELECT `+chartColumns+`
		FROM growth_charts
		WHERE chart_type = ? AND (sex = ? OR sex = 'all')
		ORDER BY sex = ? DESC
		LIMIT 1
	`, chartType, string(sex), string(sex))

	g, err := scanChart(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func scanChart(scan func(...any) error) (*models.GrowthChart, error) {
	var (
		g           models.GrowthChart
		sex         string
		dataJSON    sql.NullString
		lastUpdated sql.NullTime
	)
	err := scan(&g.ID, &g.ChartType, &sex, &g.AgeRangeStart, &g.AgeRangeEnd,
		&dataJSON, &g.Source, &g.Version, &lastUpdated, &g.CreatedAt)
	if err != nil {
		return nil, err
	}

	g.Sex = models.Sex(sex)
	g.PercentileData = map[string][]models.GrowthPoint{}
	readJSON(dataJSON, &g.PercentileData)
	if lastUpdated.Valid {
		t := lastUpdated.Time
		g.LastUpdated = &t
	}

	return &g, nil
}

// Delete removes a chart
func (s *GrowthChartStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM growth_charts WHERE id = ?", id)
	return err
}
