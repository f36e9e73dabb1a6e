package usecases

import (
	"context"
	"fmt"
	"strings"

	"traderops/internal/entities"
)

// UserService covers self-service flows: registration on first contact and
// the settings menu.
type UserService struct {
	users      UserStore
	directions DirectionStore
	adminID    int64 // bootstrap administrator's telegram id
}

func NewUserService(users UserStore, directions DirectionStore, adminID int64) *UserService {
	return &UserService{users: users, directions: directions, adminID: adminID}
}

// Register creates a user on first contact. The bootstrap admin id gets the
// admin role; everyone else starts as a worker.
func (s *UserService) Register(ctx context.Context, telegramID int64, name string) (*entities.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	role := entities.RoleWorker
	if telegramID == s.adminID {
		role = entities.RoleAdmin
	}

	user := &entities.User{
		TelegramID: telegramID,
		Name:       name,
		Role:       role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

// SetDirection validates the choice against the live catalog and stores it.
func (s *UserService) SetDirection(ctx context.Context, telegramID int64, direction string) error {
	match, err := s.directions.GetByName(ctx, direction)
	if err != nil {
		return err
	}
	if match == nil {
		return ErrUnknownDirection
	}
	return s.users.UpdateDirection(ctx, telegramID, match.Name)
}
