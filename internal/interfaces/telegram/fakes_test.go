package telegram

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"traderops/internal/entities"
	"traderops/internal/infrastructure"
	"traderops/internal/repository"
	"traderops/internal/usecases"
)

// In-memory stores and a full router wiring for conversation tests. The
// router only sees the store ports, so these stand in for the sqlite
// repositories.

const testAdminChat = int64(1000)

type memUserStore struct {
	users  []*entities.User
	nextID int64
}

func (s *memUserStore) add(u entities.User) *entities.User {
	if u.ID == 0 {
		u.ID = s.nextID + 1
	}
	if u.ID > s.nextID {
		s.nextID = u.ID
	}
	s.users = append(s.users, &u)
	return &u
}

func (s *memUserStore) Create(_ context.Context, user *entities.User) error {
	s.nextID++
	user.ID = s.nextID
	stored := *user
	s.users = append(s.users, &stored)
	return nil
}

func (s *memUserStore) GetByTelegramID(_ context.Context, telegramID int64) (*entities.User, error) {
	for _, u := range s.users {
		if u.TelegramID == telegramID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*entities.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetWorkers(_ context.Context) ([]entities.User, error) {
	return s.byRole(entities.RoleWorker), nil
}

func (s *memUserStore) GetTeamLeaders(_ context.Context) ([]entities.User, error) {
	return s.byRole(entities.RoleTeamLeader), nil
}

func (s *memUserStore) byRole(role string) []entities.User {
	var out []entities.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out
}

func (s *memUserStore) GetTeamMembers(_ context.Context, teamID int64) ([]entities.User, error) {
	var out []entities.User
	for _, u := range s.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *memUserStore) UpdateDirection(_ context.Context, telegramID int64, direction string) error {
	for _, u := range s.users {
		if u.TelegramID == telegramID {
			u.Direction = direction
		}
	}
	return nil
}

func (s *memUserStore) UpdateTeam(_ context.Context, userID int64, teamID *int64) error {
	for _, u := range s.users {
		if u.ID == userID {
			u.TeamID = teamID
		}
	}
	return nil
}

func (s *memUserStore) Delete(_ context.Context, userID int64) error {
	for i, u := range s.users {
		if u.ID == userID {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type memTeamStore struct {
	teams  []*entities.Team
	users  *memUserStore
	nextID int64
}

func (s *memTeamStore) add(t entities.Team) *entities.Team {
	if t.ID == 0 {
		t.ID = s.nextID + 1
	}
	if t.ID > s.nextID {
		s.nextID = t.ID
	}
	s.teams = append(s.teams, &t)
	return &t
}

func (s *memTeamStore) Create(ctx context.Context, team *entities.Team) error {
	s.nextID++
	team.ID = s.nextID
	stored := *team
	s.teams = append(s.teams, &stored)
	if team.LeaderID != nil {
		return s.users.UpdateTeam(ctx, *team.LeaderID, &team.ID)
	}
	return nil
}

func (s *memTeamStore) GetByID(_ context.Context, id int64) (*entities.Team, error) {
	for _, t := range s.teams {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memTeamStore) GetAll(_ context.Context) ([]entities.Team, error) {
	out := make([]entities.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (s *memTeamStore) UpdateLeader(ctx context.Context, teamID, leaderID int64) error {
	for _, t := range s.teams {
		if t.ID == teamID {
			id := leaderID
			t.LeaderID = &id
		}
	}
	return s.users.UpdateTeam(ctx, leaderID, &teamID)
}

func (s *memTeamStore) Delete(ctx context.Context, teamID int64) error {
	members, _ := s.users.GetTeamMembers(ctx, teamID)
	for _, m := range members {
		_ = s.users.UpdateTeam(ctx, m.ID, nil)
	}
	for i, t := range s.teams {
		if t.ID == teamID {
			s.teams = append(s.teams[:i], s.teams[i+1:]...)
			return nil
		}
	}
	return nil
}

type memProfitStore struct {
	mu      sync.Mutex
	entries []entities.ProfitEntry
}

func (s *memProfitStore) Create(_ context.Context, entry *entities.ProfitEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = int64(len(s.entries) + 1)
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *memProfitStore) all() []entities.ProfitEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.ProfitEntry(nil), s.entries...)
}

type memDirectionStore struct {
	directions []entities.Direction
}

func (s *memDirectionStore) GetAll(_ context.Context) ([]entities.Direction, error) {
	return append([]entities.Direction(nil), s.directions...), nil
}

func (s *memDirectionStore) GetByName(_ context.Context, name string) (*entities.Direction, error) {
	for _, d := range s.directions {
		if d.Name == name {
			copied := d
			return &copied, nil
		}
	}
	return nil, nil
}

type memStatsStore struct {
	sums    []repository.DirectionSum
	details []repository.DirectionDetail
	rating  []repository.RatingRow
	global  repository.GlobalStats
	cutoffs []string
}

func (s *memStatsStore) WorkerStatsByDirection(_ context.Context, _ int64, cutoff string) ([]repository.DirectionSum, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.sums, nil
}

func (s *memStatsStore) WorkerDetailedStats(_ context.Context, _ int64, cutoff string) ([]repository.DirectionDetail, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.details, nil
}

func (s *memStatsStore) TeamStatsByMember(_ context.Context, _ int64, cutoff string) ([]repository.RatingRow, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.rating, nil
}

func (s *memStatsStore) WorkersRating(_ context.Context, cutoff string) ([]repository.RatingRow, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.rating, nil
}

func (s *memStatsStore) TeamsRating(_ context.Context, cutoff string) ([]repository.RatingRow, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.rating, nil
}

func (s *memStatsStore) TeamTotal(_ context.Context, _ int64) (float64, error) {
	var total float64
	for _, r := range s.rating {
		total += r.Total
	}
	return total, nil
}

func (s *memStatsStore) Global(_ context.Context) (*repository.GlobalStats, error) {
	g := s.global
	return &g, nil
}

type memNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *memNotifier) Notify(_ int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, text)
	return nil
}

type testEnv struct {
	router     *Router
	sessions   *infrastructure.SessionManager
	users      *memUserStore
	teams      *memTeamStore
	profits    *memProfitStore
	directions *memDirectionStore
	stats      *memStatsStore
	notifier   *memNotifier
}

func newTestEnv() *testEnv {
	users := &memUserStore{}
	teams := &memTeamStore{users: users}
	profits := &memProfitStore{}
	directions := &memDirectionStore{directions: []entities.Direction{
		{ID: 1, Name: "eToro", Description: "Copy trading", Link: "https://example.com/etoro"},
		{ID: 2, Name: "Binance", Description: "Spot bot", Link: "https://example.com/binance"},
	}}
	stats := &memStatsStore{}
	notifier := &memNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessions := infrastructure.NewSessionManager()
	router := NewRouter(
		sessions,
		users,
		teams,
		directions,
		usecases.NewUserService(users, directions, testAdminChat),
		usecases.NewAdminService(users, teams, profits, notifier, logger),
		usecases.NewStatsService(stats),
		logger,
	)
	return &testEnv{
		router:     router,
		sessions:   sessions,
		users:      users,
		teams:      teams,
		profits:    profits,
		directions: directions,
		stats:      stats,
		notifier:   notifier,
	}
}

func (e *testEnv) send(chatID int64, text string) []Reply {
	return e.router.Handle(context.Background(), chatID, text)
}

func (e *testEnv) session(chatID int64) *infrastructure.Session {
	return e.sessions.GetOrCreateSession(chatID)
}

// registeredAdmin seeds an admin user whose chat id is the bootstrap admin id.
func (e *testEnv) registeredAdmin() *entities.User {
	return e.users.add(entities.User{TelegramID: testAdminChat, Name: "Boss", Role: entities.RoleAdmin})
}

func (e *testEnv) registeredWorker(chatID int64, name string) *entities.User {
	return e.users.add(entities.User{TelegramID: chatID, Name: name, Role: entities.RoleWorker})
}

// firstText flattens the replies to the first message text for assertions.
func firstText(replies []Reply) string {
	if len(replies) == 0 {
		return ""
	}
	return replies[0].Text
}
