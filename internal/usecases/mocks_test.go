package usecases

import (
	"context"
	"sync"

	"traderops/internal/entities"
	"traderops/internal/repository"
)

// In-memory fakes for the store ports, shared by the service tests.

type fakeUserStore struct {
	mu     sync.Mutex
	users  []*entities.User
	nextID int64
	err    error
}

func newFakeUserStore(users ...*entities.User) *fakeUserStore {
	s := &fakeUserStore{nextID: 1}
	for _, u := range users {
		uu := *u
		if uu.ID == 0 {
			uu.ID = s.nextID
		}
		if uu.ID >= s.nextID {
			s.nextID = uu.ID + 1
		}
		s.users = append(s.users, &uu)
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user *entities.User) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextID
	s.nextID++
	stored := *user
	s.users = append(s.users, &stored)
	return nil
}

func (s *fakeUserStore) GetByTelegramID(_ context.Context, telegramID int64) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.TelegramID == telegramID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetWorkers(_ context.Context) ([]entities.User, error) {
	return s.byRole(entities.RoleWorker), nil
}

func (s *fakeUserStore) GetTeamLeaders(_ context.Context) ([]entities.User, error) {
	return s.byRole(entities.RoleTeamLeader), nil
}

func (s *fakeUserStore) byRole(role string) []entities.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out
}

func (s *fakeUserStore) GetTeamMembers(_ context.Context, teamID int64) ([]entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.User
	for _, u := range s.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) UpdateDirection(_ context.Context, telegramID int64, direction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.TelegramID == telegramID {
			u.Direction = direction
		}
	}
	return nil
}

func (s *fakeUserStore) UpdateTeam(_ context.Context, userID int64, teamID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == userID {
			u.TeamID = teamID
		}
	}
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == userID {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeTeamStore struct {
	mu     sync.Mutex
	teams  []*entities.Team
	users  *fakeUserStore // for member detach on delete
	nextID int64
}

func newFakeTeamStore(users *fakeUserStore, teams ...*entities.Team) *fakeTeamStore {
	s := &fakeTeamStore{users: users, nextID: 1}
	for _, t := range teams {
		tt := *t
		if tt.ID == 0 {
			tt.ID = s.nextID
		}
		if tt.ID >= s.nextID {
			s.nextID = tt.ID + 1
		}
		s.teams = append(s.teams, &tt)
	}
	return s
}

func (s *fakeTeamStore) Create(_ context.Context, team *entities.Team) error {
	s.mu.Lock()
	team.ID = s.nextID
	s.nextID++
	stored := *team
	s.teams = append(s.teams, &stored)
	s.mu.Unlock()
	if team.LeaderID != nil && s.users != nil {
		_ = s.users.UpdateTeam(context.Background(), *team.LeaderID, &team.ID)
	}
	return nil
}

func (s *fakeTeamStore) GetByID(_ context.Context, id int64) (*entities.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeTeamStore) GetAll(_ context.Context) ([]entities.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (s *fakeTeamStore) UpdateLeader(ctx context.Context, teamID, leaderID int64) error {
	s.mu.Lock()
	for _, t := range s.teams {
		if t.ID == teamID {
			id := leaderID
			t.LeaderID = &id
		}
	}
	s.mu.Unlock()
	if s.users != nil {
		_ = s.users.UpdateTeam(ctx, leaderID, &teamID)
	}
	return nil
}

func (s *fakeTeamStore) Delete(ctx context.Context, teamID int64) error {
	if s.users != nil {
		members, _ := s.users.GetTeamMembers(ctx, teamID)
		for _, m := range members {
			_ = s.users.UpdateTeam(ctx, m.ID, nil)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.teams {
		if t.ID == teamID {
			s.teams = append(s.teams[:i], s.teams[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeProfitStore struct {
	mu      sync.Mutex
	entries []entities.ProfitEntry
	err     error
}

func (s *fakeProfitStore) Create(_ context.Context, entry *entities.ProfitEntry) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = int64(len(s.entries) + 1)
	s.entries = append(s.entries, *entry)
	return nil
}

type fakeDirectionStore struct {
	directions []entities.Direction
}

func (s *fakeDirectionStore) GetAll(_ context.Context) ([]entities.Direction, error) {
	return append([]entities.Direction(nil), s.directions...), nil
}

func (s *fakeDirectionStore) GetByName(_ context.Context, name string) (*entities.Direction, error) {
	for _, d := range s.directions {
		if d.Name == name {
			copied := d
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

type sentNotification struct {
	ChatID int64
	Text   string
}

func (n *fakeNotifier) Notify(chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{ChatID: chatID, Text: text})
	return n.err
}

func (n *fakeNotifier) all() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

// fakeStatsStore returns canned rollups regardless of cutoff, recording the
// cutoffs it was queried with.
type fakeStatsStore struct {
	sums    []repository.DirectionSum
	details []repository.DirectionDetail
	rating  []repository.RatingRow
	global  repository.GlobalStats
	cutoffs []string
}

func (s *fakeStatsStore) WorkerStatsByDirection(_ context.Context, _ int64, cutoff string) ([]repository.DirectionSum, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.sums, nil
}

func (s *fakeStatsStore) WorkerDetailedStats(_ context.Context, _ int64, cutoff string) ([]repository.DirectionDetail, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.details, nil
}

func (s *fakeStatsStore) TeamStatsByMember(_ context.Context, _ int64, cutoff string) ([]repository.RatingRow, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.rating, nil
}

func (s *fakeStatsStore) WorkersRating(_ context.Context, cutoff string) ([]repository.RatingRow, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.rating, nil
}

func (s *fakeStatsStore) TeamsRating(_ context.Context, cutoff string) ([]repository.RatingRow, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.rating, nil
}

func (s *fakeStatsStore) TeamTotal(_ context.Context, _ int64) (float64, error) {
	var total float64
	for _, r := range s.rating {
		total += r.Total
	}
	return total, nil
}

func (s *fakeStatsStore) Global(_ context.Context) (*repository.GlobalStats, error) {
	g := s.global
	return &g, nil
}
