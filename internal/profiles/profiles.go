package profiles

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bankshot/backend/internal/trace"
)

// ErrNotFound is returned when no profile matches the requested id.
var ErrNotFound = errors.New("profile not found")

// Profile is a saved table setup for the desktop overlay: a named
// boundary plus prediction settings, so recalibrating a known table is
// one click. Predictions themselves are never stored.
type Profile struct {
	ID               int       `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Left             float64   `db:"boundary_left" json:"left"`
	Top              float64   `db:"boundary_top" json:"top"`
	Right            float64   `db:"boundary_right" json:"right"`
	Bottom           float64   `db:"boundary_bottom" json:"bottom"`
	MaxBounces       int       `db:"max_bounces" json:"max_bounces"`
	LengthMultiplier float64   `db:"length_multiplier" json:"length_multiplier"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Boundary returns the saved rectangle as an engine boundary.
func (p *Profile) Boundary() trace.Boundary {
	return trace.Boundary{Left: p.Left, Top: p.Top, Right: p.Right, Bottom: p.Bottom}
}

// List returns all saved profiles, most recent first.
func List(db *sqlx.DB) ([]Profile, error) {
	var out []Profile
	err := db.Select(&out, `SELECT id, name, boundary_left, boundary_top, boundary_right, boundary_bottom, max_bounces, length_multiplier, created_at FROM table_profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return out, nil
}

// Get fetches one profile by id.
func Get(db *sqlx.DB, id int) (*Profile, error) {
	var p Profile
	err := db.Get(&p, `SELECT id, name, boundary_left, boundary_top, boundary_right, boundary_bottom, max_bounces, length_multiplier, created_at FROM table_profiles WHERE id=$1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %d: %w", id, err)
	}
	return &p, nil
}

// Create inserts a profile and returns it with its assigned id.
func Create(db *sqlx.DB, p Profile) (*Profile, error) {
	err := db.QueryRowx(`
		INSERT INTO table_profiles (name, boundary_left, boundary_top, boundary_right, boundary_bottom, max_bounces, length_multiplier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`, p.Name, p.Left, p.Top, p.Right, p.Bottom, p.MaxBounces, p.LengthMultiplier).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile %q: %w", p.Name, err)
	}
	return &p, nil
}

// Delete removes a profile by id.
func Delete(db *sqlx.DB, id int) error {
	res, err := db.Exec(`DELETE FROM table_profiles WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
