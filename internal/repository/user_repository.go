package repository

import (
	"context"
	"database/sql"
	"fmt"

	"traderops/internal/entities"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (telegram_id, name, role, team_id, direction) VALUES (?, ?, ?, ?, ?)",
		user.TelegramID, user.Name, user.Role, user.TeamID, nullableString(user.Direction))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

// GetByTelegramID returns nil, nil when the user is not registered.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entities.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, telegram_id, name, role, team_id, direction FROM users WHERE telegram_id = ?",
		telegramID)
	return scanUser(row)
}

// GetByID returns nil, nil when no such user exists.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, telegram_id, name, role, team_id, direction FROM users WHERE id = ?",
		id)
	return scanUser(row)
}

// GetWorkers lists every role=worker user, ordered by name for stable keyboards.
func (r *UserRepository) GetWorkers(ctx context.Context) ([]entities.User, error) {
	return r.listByQuery(ctx,
		"SELECT id, telegram_id, name, role, team_id, direction FROM users WHERE role = ? ORDER BY name",
		entities.RoleWorker)
}

// GetTeamLeaders lists every role=team_leader user.
func (r *UserRepository) GetTeamLeaders(ctx context.Context) ([]entities.User, error) {
	return r.listByQuery(ctx,
		"SELECT id, telegram_id, name, role, team_id, direction FROM users WHERE role = ? ORDER BY name",
		entities.RoleTeamLeader)
}

// GetTeamMembers lists users assigned to a team.
func (r *UserRepository) GetTeamMembers(ctx context.Context, teamID int64) ([]entities.User, error) {
	return r.listByQuery(ctx,
		"SELECT id, telegram_id, name, role, team_id, direction FROM users WHERE team_id = ? ORDER BY name",
		teamID)
}

// UpdateDirection sets the caller's working direction.
func (r *UserRepository) UpdateDirection(ctx context.Context, telegramID int64, direction string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET direction = ? WHERE telegram_id = ?", direction, telegramID)
	if err != nil {
		return fmt.Errorf("update user direction: %w", err)
	}
	return nil
}

// UpdateTeam moves a user to a team; a nil teamID detaches them.
func (r *UserRepository) UpdateTeam(ctx context.Context, userID int64, teamID *int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET team_id = ? WHERE id = ?", teamID, userID)
	if err != nil {
		return fmt.Errorf("update user team: %w", err)
	}
	return nil
}

// Delete removes the user row. Profit entries are a ledger and stay in
// place; every report joins through users, so they drop out of all views.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) listByQuery(ctx context.Context, query string, args ...any) ([]entities.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		var u entities.User
		var teamID sql.NullInt64
		var direction sql.NullString
		if err := rows.Scan(&u.ID, &u.TelegramID, &u.Name, &u.Role, &teamID, &direction); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if teamID.Valid {
			u.TeamID = &teamID.Int64
		}
		u.Direction = direction.String
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row *sql.Row) (*entities.User, error) {
	var u entities.User
	var teamID sql.NullInt64
	var direction sql.NullString
	err := row.Scan(&u.ID, &u.TelegramID, &u.Name, &u.Role, &teamID, &direction)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if teamID.Valid {
		u.TeamID = &teamID.Int64
	}
	u.Direction = direction.String
	return &u, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
