package repository

import (
	"context"
	"database/sql"
	"fmt"

	"traderops/internal/entities"
)

type ProfitRepository struct {
	db *sql.DB
}

func NewProfitRepository(db *sql.DB) *ProfitRepository {
	return &ProfitRepository{db: db}
}

// Create appends one profit entry. A single INSERT: the entry is either
// committed whole or not at all.
func (r *ProfitRepository) Create(ctx context.Context, entry *entities.ProfitEntry) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO profits (user_id, direction, amount, date, comment) VALUES (?, ?, ?, ?, ?)",
		entry.UserID, entry.Direction, entry.Amount, entry.Date, entry.Comment)
	if err != nil {
		return fmt.Errorf("insert profit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert profit: %w", err)
	}
	entry.ID = id
	return nil
}
