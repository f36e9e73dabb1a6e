package repository

import (
	"context"
	"database/sql"
	"fmt"

	"traderops/internal/entities"
)

// DirectionSum is one per-direction rollup line.
type DirectionSum struct {
	Direction string  `json:"direction"`
	Total     float64 `json:"total"`
}

// DirectionDetail adds the number of contributing entries.
type DirectionDetail struct {
	Direction string  `json:"direction"`
	Total     float64 `json:"total"`
	Count     int     `json:"count"`
}

// RatingRow is one leaderboard line (worker or team).
type RatingRow struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// StatsRepository runs the period-bounded rollup queries. A cutoff is a
// YYYY-MM-DD lower bound compared lexically against stored dates; the empty
// string means no bound. Groups with no matching rows are absent from the
// result, never zero-filled.
type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// WorkerStatsByDirection sums a user's profit grouped by direction.
func (r *StatsRepository) WorkerStatsByDirection(ctx context.Context, userID int64, cutoff string) ([]DirectionSum, error) {
	query := `
		SELECT direction, SUM(amount) AS total
		FROM profits
		WHERE user_id = ?` + cutoffClause(cutoff, "date") + `
		GROUP BY direction
	`
	rows, err := r.db.QueryContext(ctx, query, withCutoff(cutoff, userID)...)
	if err != nil {
		return nil, fmt.Errorf("worker stats query: %w", err)
	}
	defer rows.Close()

	var sums []DirectionSum
	for rows.Next() {
		var s DirectionSum
		var total sql.NullFloat64
		if err := rows.Scan(&s.Direction, &total); err != nil {
			return nil, fmt.Errorf("scan worker stats: %w", err)
		}
		s.Total = total.Float64
		sums = append(sums, s)
	}
	return sums, rows.Err()
}

// WorkerDetailedStats is WorkerStatsByDirection plus per-direction entry counts.
func (r *StatsRepository) WorkerDetailedStats(ctx context.Context, userID int64, cutoff string) ([]DirectionDetail, error) {
	query := `
		SELECT direction, SUM(amount) AS total, COUNT(*) AS count
		FROM profits
		WHERE user_id = ?` + cutoffClause(cutoff, "date") + `
		GROUP BY direction
	`
	rows, err := r.db.QueryContext(ctx, query, withCutoff(cutoff, userID)...)
	if err != nil {
		return nil, fmt.Errorf("worker detailed stats query: %w", err)
	}
	defer rows.Close()

	var details []DirectionDetail
	for rows.Next() {
		var d DirectionDetail
		var total sql.NullFloat64
		if err := rows.Scan(&d.Direction, &total, &d.Count); err != nil {
			return nil, fmt.Errorf("scan worker detailed stats: %w", err)
		}
		d.Total = total.Float64
		details = append(details, d)
	}
	return details, rows.Err()
}

// TeamStatsByMember sums profit per member of a team, descending.
func (r *StatsRepository) TeamStatsByMember(ctx context.Context, teamID int64, cutoff string) ([]RatingRow, error) {
	query := `
		SELECT u.name, SUM(p.amount) AS total
		FROM profits p
		JOIN users u ON p.user_id = u.id
		WHERE u.team_id = ?` + cutoffClause(cutoff, "p.date") + `
		GROUP BY u.id, u.name
		ORDER BY total DESC
	`
	return r.ratingQuery(ctx, query, withCutoff(cutoff, teamID)...)
}

// WorkersRating sums profit per role=worker user across the whole system, descending.
func (r *StatsRepository) WorkersRating(ctx context.Context, cutoff string) ([]RatingRow, error) {
	query := `
		SELECT u.name, SUM(p.amount) AS total
		FROM profits p
		JOIN users u ON p.user_id = u.id
		WHERE u.role = ?` + cutoffClause(cutoff, "p.date") + `
		GROUP BY u.id, u.name
		ORDER BY total DESC
	`
	return r.ratingQuery(ctx, query, withCutoff(cutoff, entities.RoleWorker)...)
}

// TeamsRating sums profit per team, descending. Teams with a sum of zero or
// less are excluded: the leaderboard only shows teams with positive activity.
func (r *StatsRepository) TeamsRating(ctx context.Context, cutoff string) ([]RatingRow, error) {
	join := "LEFT JOIN profits p ON u.id = p.user_id"
	args := []any{}
	if cutoff != "" {
		join += " AND p.date >= ?"
		args = append(args, cutoff)
	}
	query := `
		SELECT t.name, COALESCE(SUM(p.amount), 0) AS total
		FROM teams t
		LEFT JOIN users u ON t.id = u.team_id
		` + join + `
		GROUP BY t.id, t.name
		HAVING total > 0
		ORDER BY total DESC
	`
	return r.ratingQuery(ctx, query, args...)
}

// TeamTotal is the all-time profit of a team, 0 when it has none.
func (r *StatsRepository) TeamTotal(ctx context.Context, teamID int64) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM profits p
		JOIN users u ON p.user_id = u.id
		WHERE u.team_id = ?
	`, teamID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("team total query: %w", err)
	}
	return total, nil
}

// GlobalStats backs the admin panel's global view.
type GlobalStats struct {
	TotalProfit float64 `json:"total_profit"`
	Workers     int     `json:"workers"`
	Teams       int     `json:"teams"`
	Entries     int     `json:"entries"`
}

func (r *StatsRepository) Global(ctx context.Context) (*GlobalStats, error) {
	var g GlobalStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE((SELECT SUM(amount) FROM profits), 0),
			(SELECT COUNT(*) FROM users WHERE role = ?),
			(SELECT COUNT(*) FROM teams),
			(SELECT COUNT(*) FROM profits)
	`, entities.RoleWorker).Scan(&g.TotalProfit, &g.Workers, &g.Teams, &g.Entries)
	if err != nil {
		return nil, fmt.Errorf("global stats query: %w", err)
	}
	return &g, nil
}

func (r *StatsRepository) ratingQuery(ctx context.Context, query string, args ...any) ([]RatingRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("rating query: %w", err)
	}
	defer rows.Close()

	var result []RatingRow
	for rows.Next() {
		var row RatingRow
		var total sql.NullFloat64
		if err := rows.Scan(&row.Name, &total); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		row.Total = total.Float64
		result = append(result, row)
	}
	return result, rows.Err()
}

func cutoffClause(cutoff, column string) string {
	if cutoff == "" {
		return ""
	}
	return " AND " + column + " >= ?"
}

func withCutoff(cutoff string, args ...any) []any {
	if cutoff == "" {
		return args
	}
	return append(args, cutoff)
}
