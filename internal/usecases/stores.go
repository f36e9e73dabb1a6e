package usecases

import (
	"context"

	"traderops/internal/entities"
	"traderops/internal/repository"
)

// Store ports implemented by the repository package. Services and the
// conversation router depend on these so tests can swap in fakes.

type UserStore interface {
	Create(ctx context.Context, user *entities.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*entities.User, error)
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetWorkers(ctx context.Context) ([]entities.User, error)
	GetTeamLeaders(ctx context.Context) ([]entities.User, error)
	GetTeamMembers(ctx context.Context, teamID int64) ([]entities.User, error)
	UpdateDirection(ctx context.Context, telegramID int64, direction string) error
	UpdateTeam(ctx context.Context, userID int64, teamID *int64) error
	Delete(ctx context.Context, userID int64) error
}

type TeamStore interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByID(ctx context.Context, id int64) (*entities.Team, error)
	GetAll(ctx context.Context) ([]entities.Team, error)
	UpdateLeader(ctx context.Context, teamID, leaderID int64) error
	Delete(ctx context.Context, teamID int64) error
}

type ProfitStore interface {
	Create(ctx context.Context, entry *entities.ProfitEntry) error
}

type DirectionStore interface {
	GetAll(ctx context.Context) ([]entities.Direction, error)
	GetByName(ctx context.Context, name string) (*entities.Direction, error)
}

type StatsStore interface {
	WorkerStatsByDirection(ctx context.Context, userID int64, cutoff string) ([]repository.DirectionSum, error)
	WorkerDetailedStats(ctx context.Context, userID int64, cutoff string) ([]repository.DirectionDetail, error)
	TeamStatsByMember(ctx context.Context, teamID int64, cutoff string) ([]repository.RatingRow, error)
	WorkersRating(ctx context.Context, cutoff string) ([]repository.RatingRow, error)
	TeamsRating(ctx context.Context, cutoff string) ([]repository.RatingRow, error)
	TeamTotal(ctx context.Context, teamID int64) (float64, error)
	Global(ctx context.Context) (*repository.GlobalStats, error)
}
