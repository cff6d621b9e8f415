// ABOUTME: User storage operations for SQLite
// ABOUTME: Enforces unique usernames and emails via database constraints
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pedbot/nelsonref/internal/models"
)

// UserStore handles user persistence
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a validated user and assigns its ID. Duplicate usernames or
// emails are rejected by the UNIQUE constraints.
func (s *UserStore) Create(user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	prefsJSON, err := jsonText(user.Preferences)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO users (username, email, full_name, role, institution, specialty,
			is_active, created_at, last_login, preferences)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, user.Username, user.Email, user.FullName, string(user.Role),
		nullText(user.Institution), nullText(user.Specialty),
		user.IsActive, user.CreatedAt, user.LastLogin, prefsJSON)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return fmt.Errorf("username %q is already taken", user.Username)
		}
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return fmt.Errorf("email %q is already registered", user.Email)
		}
		return err
	}

	user.ID, err = res.LastInsertId()
	return err
}

// GetByID retrieves a user, or nil when absent
func (s *UserStore) GetByID(id int64) (*models.User, error) {
	return s.getWhere("id = ?", id)
}

// GetByUsername retrieves a user by username, or nil when absent
func (s *UserStore) GetByUsername(username string) (*models.User, error) {
	return s.getWhere("username = ?", username)
}

func (s *UserStore) getWhere(where string, arg any) (*models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, email, full_name, role, institution, specialty,
			is_active, created_at, last_login, preferences
		FROM users WHERE `+where, arg)

	user, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func scanUser(scan func(...any) error) (*models.User, error) {
	var (
		user        models.User
		role        string
		institution sql.NullString
		specialty   sql.NullString
		lastLogin   sql.NullTime
		prefsJSON   sql.NullString
	)

	err := scan(&user.ID, &user.Username, &user.Email, &user.FullName, &role,
		&institution, &specialty, &user.IsActive, &user.CreatedAt, &lastLogin, &prefsJSON)
	if err != nil {
		return nil, err
	}

	user.Role = models.UserRole(role)
	user.Institution = institution.String
	user.Specialty = specialty.String
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	user.Preferences = models.Metadata{}
	readJSON(prefsJSON, &user.Preferences)

	return &user, nil
}

// Update persists the mutable fields of a user
func (s *UserStore) Update(user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	prefsJSON, err := jsonText(user.Preferences)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE users
		SET full_name = ?, institution = ?, specialty = ?, is_active = ?, preferences = ?
		WHERE id = ?
	`, user.FullName, nullText(user.Institution), nullText(user.Specialty),
		user.IsActive, prefsJSON, user.ID)
	return err
}

// RecordLogin stamps last_login with the current time
func (s *UserStore) RecordLogin(id int64) error {
	_, err := s.db.Exec("UPDATE users SET last_login = ? WHERE id = ?", time.Now().UTC(), id)
	return err
}

// Delete removes a user
func (s *UserStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

// List retrieves all users ordered by username
func (s *UserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT id, username, email, full_name, role, institution, specialty,
			is_active, created_at, last_login, preferences
		FROM users ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
