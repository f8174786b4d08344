package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitmyphone-backend-go/internal/db"
	"fitmyphone-backend-go/internal/models"
)

// Custom errors for the UserService.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

// GetOrCreate retrieves a user by ID. If the user doesn't exist, a profile is
// created from the verified token claims with the default role and no points.
// Returns the user, a boolean indicating if the user was created, and an error.
func (s *userService) GetOrCreate(ctx context.Context, userID, email, displayName, photoURL string) (*models.User, bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			newUser := &models.User{
				ID:          userID, // Firebase Auth UID is the document ID
				Email:       email,
				DisplayName: displayName,
				PhotoURL:    photoURL,
				Points:      0,
				Role:        models.RoleUser,
				CreatedAt:   time.Now().UTC(),
				UpdatedAt:   time.Now().UTC(),
			}
			if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
				return nil, false, fmt.Errorf("failed to create user (id: %s) after not found: %w", userID, createErr)
			}
			return newUser, true, nil
		}
		return nil, false, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}
	return user, false, nil
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}
	return user, nil
}

// UpdateRole changes a user's role.
func (s *userService) UpdateRole(ctx context.Context, userID, role string) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidRole, role)
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update role of user '%s': %w", userID, err)
	}
	return user, nil
}

// SetSuspension suspends or reinstates a user.
func (s *userService) SetSuspension(ctx context.Context, userID string, suspended bool) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsSuspended = suspended
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update suspension of user '%s': %w", userID, err)
	}
	return user, nil
}

// Leaderboard returns the top contributors ordered by points descending.
func (s *userService) Leaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	users, err := s.userRepo.ListTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return users, nil
}

// RegisterFCMToken adds a push notification device token to the user's
// profile. Registering the same token twice is a no-op.
func (s *userService) RegisterFCMToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return errors.New("FCM token cannot be empty")
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	for _, existing := range user.FCMTokens {
		if existing == token {
			return nil
		}
	}
	user.FCMTokens = append(user.FCMTokens, token)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to register FCM token for user '%s': %w", userID, err)
	}
	return nil
}
