package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traderops/internal/entities"
)

func TestWorkerStatsByDirectionWithCutoff(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = ? AND date >= ? GROUP BY direction")).
		WithArgs(int64(7), "2025-03-08").
		WillReturnRows(sqlmock.NewRows([]string{"direction", "total"}).
			AddRow("eToro", 100.50).
			AddRow("Binance", 250.00))

	sums, err := repo.WorkerStatsByDirection(context.Background(), 7, "2025-03-08")
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "eToro", sums[0].Direction)
	assert.Equal(t, 100.50, sums[0].Total)
}

func TestWorkerStatsByDirectionAllTimeOmitsCutoff(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = ? GROUP BY direction")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"direction", "total"}))

	sums, err := repo.WorkerStatsByDirection(context.Background(), 7, "")
	require.NoError(t, err)
	assert.Empty(t, sums, "no rows means absent directions, not zeros")
}

func TestWorkerDetailedStatsIncludesCounts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT direction, SUM(amount) AS total, COUNT(*) AS count")).
		WithArgs(int64(7), "2025-03-15").
		WillReturnRows(sqlmock.NewRows([]string{"direction", "total", "count"}).
			AddRow("eToro", 100.50, 3))

	details, err := repo.WorkerDetailedStats(context.Background(), 7, "2025-03-15")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 3, details[0].Count)
}

func TestTeamStatsByMemberOrdering(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.team_id = ? AND p.date >= ? GROUP BY u.id, u.name ORDER BY total DESC")).
		WithArgs(int64(3), "2025-02-13").
		WillReturnRows(sqlmock.NewRows([]string{"name", "total"}).
			AddRow("Alice", 500.0).
			AddRow("Bob", 120.0))

	rows, err := repo.TeamStatsByMember(context.Background(), 3, "2025-02-13")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Name)
}

func TestWorkersRatingFiltersByRole(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.role = ?")).
		WithArgs(entities.RoleWorker).
		WillReturnRows(sqlmock.NewRows([]string{"name", "total"}).
			AddRow("Alice", 500.0))

	rows, err := repo.WorkersRating(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

// The period bound for team ratings lives in the join condition, not the
// WHERE clause. A WHERE bound would turn the LEFT JOIN into an inner one.
func TestTeamsRatingCutoffInJoinCondition(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN profits p ON u.id = p.user_id AND p.date >= ?")).
		WithArgs("2025-03-08").
		WillReturnRows(sqlmock.NewRows([]string{"name", "total"}).
			AddRow("Alpha", 620.50))

	rows, err := repo.TeamsRating(context.Background(), "2025-03-08")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alpha", rows[0].Name)
}

func TestTeamsRatingAllTimeTakesNoArgs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("HAVING total > 0 ORDER BY total DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"name", "total"}))

	rows, err := repo.TeamsRating(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTeamTotalDefaultsToZero(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(p.amount), 0)")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0.0))

	total, err := repo.TeamTotal(context.Background(), 3)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGlobalStats(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM profits")).
		WithArgs(entities.RoleWorker).
		WillReturnRows(sqlmock.NewRows([]string{"total", "workers", "teams", "entries"}).
			AddRow(1234.50, 3, 2, 17))

	g, err := repo.Global(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1234.50, g.TotalProfit)
	assert.Equal(t, 3, g.Workers)
	assert.Equal(t, 2, g.Teams)
	assert.Equal(t, 17, g.Entries)
}

func TestProfitRepositoryCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfitRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profits (user_id, direction, amount, date, comment) VALUES (?, ?, ?, ?, ?)")).
		WithArgs(int64(7), "eToro", 150.50, "2025-03-15", "first payout").
		WillReturnResult(sqlmock.NewResult(11, 1))

	entry := &entities.ProfitEntry{UserID: 7, Direction: "eToro", Amount: 150.50, Date: "2025-03-15", Comment: "first payout"}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.Equal(t, int64(11), entry.ID)
}

func TestDirectionRepositoryGetByNameNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDirectionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM directions WHERE name = ?")).
		WithArgs("Robinhood").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "link"}))

	d, err := repo.GetByName(context.Background(), "Robinhood")
	require.NoError(t, err)
	assert.Nil(t, d)
}
