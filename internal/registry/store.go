package registry

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteStore persists teams in the shared sqlite database, ordered by an
// explicit position column so insertion order survives round trips.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened database as a TeamStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// SaveTeams replaces the stored list with teams, preserving order.
func (s *SQLiteStore) SaveTeams(ctx context.Context, teams []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin teams tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM teams"); err != nil {
		return fmt.Errorf("clear teams: %w", err)
	}
	for i, name := range teams {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO teams (name, position) VALUES (?, ?)", name, i,
		); err != nil {
			return fmt.Errorf("insert team %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit teams: %w", err)
	}
	return nil
}

// LoadTeams returns the stored list in position order.
func (s *SQLiteStore) LoadTeams(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM teams ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		teams = append(teams, name)
	}
	return teams, rows.Err()
}
