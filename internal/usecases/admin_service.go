package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"traderops/internal/entities"
	"traderops/internal/interfaces"
)

// AdminService commits the results of the admin wizards. Each commit is a
// single logical mutation; notifications to affected users ride a
// fire-and-forget side channel and never fail the primary action.
type AdminService struct {
	users    UserStore
	teams    TeamStore
	profits  ProfitStore
	notifier interfaces.Notifier
	logger   *slog.Logger
	now      func() time.Time

	notifyWG sync.WaitGroup
}

func NewAdminService(users UserStore, teams TeamStore, profits ProfitStore, notifier interfaces.Notifier, logger *slog.Logger) *AdminService {
	return &AdminService{
		users:    users,
		teams:    teams,
		profits:  profits,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// AccrueProfit records a profit entry for a worker, dated today, and tells
// the worker about it.
func (s *AdminService) AccrueProfit(ctx context.Context, worker *entities.User, direction string, amount float64, comment string) error {
	entry := &entities.ProfitEntry{
		UserID:    worker.ID,
		Direction: direction,
		Amount:    amount,
		Date:      s.now().Format(entities.DateLayout),
		Comment:   comment,
	}
	if err := s.profits.Create(ctx, entry); err != nil {
		return fmt.Errorf("accrue profit: %w", err)
	}

	s.notify(worker.TelegramID,
		fmt.Sprintf("💰 You received a profit credit: $%.2f (%s)", amount, direction))
	return nil
}

// CreateTeam creates a team led by the given team_leader user.
func (s *AdminService) CreateTeam(ctx context.Context, name string, leaderID int64) (*entities.Team, error) {
	team := &entities.Team{Name: name, LeaderID: &leaderID}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return team, nil
}

// AddWorker registers a worker on the admin's behalf and tells the team's
// leader about the new member.
func (s *AdminService) AddWorker(ctx context.Context, name string, telegramID int64, direction string, teamID int64) (*entities.User, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	worker := &entities.User{
		TelegramID: telegramID,
		Name:       name,
		Role:       entities.RoleWorker,
		TeamID:     &teamID,
		Direction:  direction,
	}
	if err := s.users.Create(ctx, worker); err != nil {
		return nil, fmt.Errorf("add worker: %w", err)
	}

	if team.LeaderID != nil {
		leader, err := s.users.GetByID(ctx, *team.LeaderID)
		if err != nil {
			s.logger.Error("lookup team leader for notification", "team_id", teamID, "error", err)
		} else if leader != nil {
			s.notify(leader.TelegramID,
				fmt.Sprintf("👤 %s joined your team %s", name, team.Name))
		}
	}
	return worker, nil
}

// DeleteWorker removes the worker row; their profit entries stay in the
// ledger.
func (s *AdminService) DeleteWorker(ctx context.Context, workerID int64) error {
	worker, err := s.users.GetByID(ctx, workerID)
	if err != nil {
		return err
	}
	if worker == nil {
		return ErrWorkerNotFound
	}
	return s.users.Delete(ctx, workerID)
}

// MoveWorker reassigns exactly one worker to the destination team.
func (s *AdminService) MoveWorker(ctx context.Context, workerID, teamID int64) error {
	worker, err := s.users.GetByID(ctx, workerID)
	if err != nil {
		return err
	}
	if worker == nil {
		return ErrWorkerNotFound
	}
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}
	return s.users.UpdateTeam(ctx, workerID, &teamID)
}

// ReassignLeader puts a new team_leader in charge of the team.
func (s *AdminService) ReassignLeader(ctx context.Context, teamID, leaderID int64) error {
	return s.teams.UpdateLeader(ctx, teamID, leaderID)
}

// DeleteTeam detaches all members and removes the team.
func (s *AdminService) DeleteTeam(ctx context.Context, teamID int64) error {
	return s.teams.Delete(ctx, teamID)
}

// notify delivers off the caller's reply flow; failures are logged only.
func (s *AdminService) notify(chatID int64, text string) {
	if s.notifier == nil {
		return
	}
	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()
		if err := s.notifier.Notify(chatID, text); err != nil {
			s.logger.Error("notification failed", "chat_id", chatID, "error", err)
		}
	}()
}
