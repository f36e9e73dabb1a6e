package repository

import (
	"context"
	"database/sql"
	"fmt"

	"traderops/internal/entities"
)

type DirectionRepository struct {
	db *sql.DB
}

func NewDirectionRepository(db *sql.DB) *DirectionRepository {
	return &DirectionRepository{db: db}
}

// GetAll returns the full catalog. Menus are rebuilt from this on every
// render so admin edits never leave stale keyboards behind.
func (r *DirectionRepository) GetAll(ctx context.Context) ([]entities.Direction, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, description, link FROM directions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query directions: %w", err)
	}
	defer rows.Close()

	var directions []entities.Direction
	for rows.Next() {
		var d entities.Direction
		var description, link sql.NullString
		if err := rows.Scan(&d.ID, &d.Name, &description, &link); err != nil {
			return nil, fmt.Errorf("scan direction: %w", err)
		}
		d.Description = description.String
		d.Link = link.String
		directions = append(directions, d)
	}
	return directions, rows.Err()
}

// GetByName returns nil, nil when no catalog entry matches.
func (r *DirectionRepository) GetByName(ctx context.Context, name string) (*entities.Direction, error) {
	var d entities.Direction
	var description, link sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, link FROM directions WHERE name = ?", name).
		Scan(&d.ID, &d.Name, &description, &link)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("scan direction: %w", err)
	}
	d.Description = description.String
	d.Link = link.String
	return &d, nil
}

// Create adds a catalog entry; used by the seed command.
func (r *DirectionRepository) Create(ctx context.Context, d *entities.Direction) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO directions (name, description, link) VALUES (?, ?, ?)",
		d.Name, d.Description, d.Link)
	if err != nil {
		return fmt.Errorf("insert direction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert direction: %w", err)
	}
	d.ID = id
	return nil
}
