package service

import (
	"context"
	"strings"

	"auth-api/internal/domain"
	"auth-api/internal/repository"
)

// UserService expone el perfil publico del usuario autenticado.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetUserData(ctx context.Context, userID string) (domain.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Profile{}, ErrUnauthenticated
	}
	user, err := findUserByID(ctx, s.users, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return user.Profile(), nil
}
