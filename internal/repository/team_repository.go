package repository

import (
	"context"
	"database/sql"
	"fmt"

	"traderops/internal/entities"
)

type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts the team and, when a leader is set, attaches the leader to
// it in the same transaction so the lead's "my team" view works immediately.
func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create team: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO teams (name, team_leader_id) VALUES (?, ?)",
		team.Name, team.LeaderID)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	if team.LeaderID != nil {
		if _, err := tx.ExecContext(ctx,
			"UPDATE users SET team_id = ? WHERE id = ?", id, *team.LeaderID); err != nil {
			return fmt.Errorf("attach team leader: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create team: %w", err)
	}
	team.ID = id
	return nil
}

// GetByID returns nil, nil when no such team exists.
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*entities.Team, error) {
	var t entities.Team
	var leaderID sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, team_leader_id FROM teams WHERE id = ?", id).
		Scan(&t.ID, &t.Name, &leaderID)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("scan team: %w", err)
	}
	if leaderID.Valid {
		t.LeaderID = &leaderID.Int64
	}
	return &t, nil
}

func (r *TeamRepository) GetAll(ctx context.Context) ([]entities.Team, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, team_leader_id FROM teams ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var teams []entities.Team
	for rows.Next() {
		var t entities.Team
		var leaderID sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Name, &leaderID); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		if leaderID.Valid {
			t.LeaderID = &leaderID.Int64
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// UpdateLeader reassigns the team's leader and moves the new leader into
// the team, atomically.
func (r *TeamRepository) UpdateLeader(ctx context.Context, teamID, leaderID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update team leader: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE teams SET team_leader_id = ? WHERE id = ?", leaderID, teamID); err != nil {
		return fmt.Errorf("update team leader: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET team_id = ? WHERE id = ?", teamID, leaderID); err != nil {
		return fmt.Errorf("attach new team leader: %w", err)
	}

	return tx.Commit()
}

// Delete detaches every member and removes the team row in one transaction,
// so no user is ever left pointing at a missing team.
func (r *TeamRepository) Delete(ctx context.Context, teamID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete team: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "UPDATE users SET team_id = NULL WHERE team_id = ?", teamID); err != nil {
		return fmt.Errorf("detach team members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM teams WHERE id = ?", teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	return tx.Commit()
}
