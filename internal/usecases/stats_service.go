package usecases

import (
	"context"
	"time"

	"traderops/internal/repository"
)

// WorkerStats is a per-direction rollup plus the grand total. Directions
// with no entries in the period are absent; the total is 0 when there are
// no entries at all.
type WorkerStats struct {
	ByDirection []repository.DirectionSum `json:"by_direction"`
	Total       float64                   `json:"total"`
}

// StatsService is the aggregation engine: it resolves periods to date
// cutoffs and delegates the rollups to the store.
type StatsService struct {
	store StatsStore
	now   func() time.Time
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

func (s *StatsService) WorkerStats(ctx context.Context, userID int64, p Period) (*WorkerStats, error) {
	sums, err := s.store.WorkerStatsByDirection(ctx, userID, p.Cutoff(s.now()))
	if err != nil {
		return nil, err
	}
	stats := &WorkerStats{ByDirection: sums}
	for _, sum := range sums {
		stats.Total += sum.Total
	}
	return stats, nil
}

func (s *StatsService) WorkerDetailedStats(ctx context.Context, userID int64, p Period) ([]repository.DirectionDetail, error) {
	return s.store.WorkerDetailedStats(ctx, userID, p.Cutoff(s.now()))
}

func (s *StatsService) TeamStats(ctx context.Context, teamID int64, p Period) ([]repository.RatingRow, error) {
	return s.store.TeamStatsByMember(ctx, teamID, p.Cutoff(s.now()))
}

func (s *StatsService) WorkersRating(ctx context.Context, p Period) ([]repository.RatingRow, error) {
	return s.store.WorkersRating(ctx, p.Cutoff(s.now()))
}

func (s *StatsService) TeamsRating(ctx context.Context, p Period) ([]repository.RatingRow, error) {
	return s.store.TeamsRating(ctx, p.Cutoff(s.now()))
}

func (s *StatsService) TeamTotal(ctx context.Context, teamID int64) (float64, error) {
	return s.store.TeamTotal(ctx, teamID)
}

func (s *StatsService) Global(ctx context.Context) (*repository.GlobalStats, error) {
	return s.store.Global(ctx)
}
