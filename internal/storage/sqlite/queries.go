// ABOUTME: SearchQuery log storage for SQLite
// ABOUTME: Records are kept when their user is deleted (user_id set to NULL)
package sqlite

import (
	"database/sql"

	"github.com/pedbot/nelsonref/internal/models"
)

// SearchQueryStore handles search log persistence
type SearchQueryStore struct {
	db *DB
}

// NewSearchQueryStore creates a new SearchQueryStore
func NewSearchQueryStore(db *DB) *SearchQueryStore {
	return &SearchQueryStore{db: db}
}

// Log inserts a validated search record and assigns its ID
func (s *SearchQueryStore) Log(q *models.SearchQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}
	contextJSON, err := jsonText(q.ContextData)
	if err != nil {
		return err
	}

	var userID any
	if q.UserID != nil {
		userID = *q.UserID
	}

	res, err := s.db.Exec(`
		INSERT INTO search_queries (user_id, query_text, query_type, results_count,
			context_data, response_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, userID, q.QueryText, q.QueryType, q.ResultsCount,
		contextJSON, optDecText(q.ResponseTime, models.TimingScale), q.CreatedAt)
	if err != nil {
		return err
	}

	q.ID, err = res.LastInsertId()
	return err
}

const queryColumns = `id, user_id, query_text, query_type, results_count,
	context_data, response_time, created_at`

// ListByUser retrieves a user's queries, most recent first
func (s *SearchQueryStore) ListByUser(userID int64, limit int) ([]models.SearchQuery, error) {
	return s.list("WHERE user_id = ?", limit, userID)
}

// ListRecent retrieves the most recent queries across all users
func (s *SearchQueryStore) ListRecent(limit int) ([]models.SearchQuery, error) {
	return s.list("", limit)
}

func (s *SearchQueryStore) list(where string, limit int, args ...any) ([]models.SearchQuery, error) {
	query := "SELECT " + queryColumns + " FROM search_queries " + where +
		" ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var queries []models.SearchQuery
	for rows.Next() {
		var (
			q           models.SearchQuery
			userID      sql.NullInt64
			contextJSON sql.NullString
			respTime    sql.NullString
		)
		err := rows.Scan(&q.ID, &userID, &q.QueryText, &q.QueryType, &q.ResultsCount,
			&contextJSON, &respTime, &q.CreatedAt)
		if err != nil {
			return nil, err
		}

		if userID.Valid {
			id := userID.Int64
			q.UserID = &id
		}
		q.ContextData = models.Metadata{}
		readJSON(contextJSON, &q.ContextData)
		if q.ResponseTime, err = readOptDec(respTime); err != nil {
			return nil, err
		}

		queries = append(queries, q)
	}
	return queries, rows.Err()
}
