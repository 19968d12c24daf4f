package service

import (
	"context"
	"fmt"

	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/internal/utils"
	"github.com/forecastflow/forecastflow/models"
)

// userService is the concrete implementation of [UserService].
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a [UserService] on top of the given repository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{userRepository: userRepository, logger: logger}
}

// GetUser returns the account with the given ID.
func (s *userService) GetUser(ctx context.Context, id int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// GetAllUsers lists every account.
func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("user listing ended with error: %w", err)
	}

	return users, nil
}

// UpdateUser overwrites username and email; when newPassword is non-empty the
// credential is rehashed with a fresh salt.
func (s *userService) UpdateUser(ctx context.Context, id int64, username, email, newPassword string) error {
	log := logger.FromContext(ctx)

	if username == "" {
		log.Error().Int64("id", id).Msg("invalid user data provided")
		return ErrInvalidDataProvided
	}

	user := models.User{ID: id, Username: username, Email: email}

	if newPassword != "" {
		hash, salt, err := utils.HashPassword(newPassword)
		if err != nil {
			log.Err(err).Int64("id", id).Msg("password hashing failed")
			return fmt.Errorf("password hashing failed: %w", err)
		}
		user.PasswordHash = hash
		user.PasswordSalt = salt
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		log.Err(err).Int64("id", id).Msg("user update ended with error")
		return err
	}

	return nil
}

// DeleteUser removes the account and, through the schema cascade, its tasks.
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("user deletion ended with error")
		return err
	}

	return nil
}
