package core

import (
	"context"
	"errors"
	"fmt"

	"fitmyphone-backend-go/internal/db"
	"fitmyphone-backend-go/internal/models"
)

// Custom errors for the ContributionService.
var (
	ErrUserSuspended = errors.New("user is suspended and cannot contribute")
	ErrInvalidStatus = errors.New("invalid contribution status")
)

// contributionService implements the ContributionService interface.
type contributionService struct {
	contributionRepo db.ContributionRepository
	userRepo         db.UserRepository
}

// NewContributionService creates a new ContributionService instance.
func NewContributionService(contributionRepo db.ContributionRepository, userRepo db.UserRepository) ContributionService {
	return &contributionService{
		contributionRepo: contributionRepo,
		userRepo:         userRepo,
	}
}

// Submit records a new pending contribution for admin review.
func (s *contributionService) Submit(ctx context.Context, userID string, req models.CreateContributionRequest) (*models.Contribution, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load submitter '%s': %w", userID, err)
	}
	if user.IsSuspended {
		return nil, ErrUserSuspended
	}

	contribution := &models.Contribution{
		AccessoryType:    req.AccessoryType,
		Models:           req.Models,
		SubmittedBy:      userID,
		Status:           models.ContributionStatusPending,
		Source:           req.Source,
		AddToAccessoryID: req.AddToAccessoryID,
	}

	if _, err := s.contributionRepo.Create(ctx, contribution); err != nil {
		return nil, fmt.Errorf("failed to submit contribution: %w", err)
	}
	return contribution, nil
}

// GetByID retrieves a single contribution.
func (s *contributionService) GetByID(ctx context.Context, contributionID string) (*models.Contribution, error) {
	contribution, err := s.contributionRepo.GetByID(ctx, contributionID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrContributionNotFound
		}
		return nil, fmt.Errorf("failed to get contribution '%s': %w", contributionID, err)
	}
	return contribution, nil
}

// ListByStatus retrieves contributions in the given lifecycle state.
func (s *contributionService) ListByStatus(ctx context.Context, status string, limit int) ([]*models.Contribution, error) {
	switch status {
	case models.ContributionStatusPending, models.ContributionStatusApproved, models.ContributionStatusRejected:
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidStatus, status)
	}
	contributions, err := s.contributionRepo.ListByStatus(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions with status '%s': %w", status, err)
	}
	return contributions, nil
}

// ListMine retrieves the calling user's own contributions.
func (s *contributionService) ListMine(ctx context.Context, userID string, limit int) ([]*models.Contribution, error) {
	contributions, err := s.contributionRepo.ListBySubmitter(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions of user '%s': %w", userID, err)
	}
	return contributions, nil
}

// Delete removes a contribution. Only explicit admin deletion reaches this.
func (s *contributionService) Delete(ctx context.Context, contributionID string) error {
	if err := s.contributionRepo.Delete(ctx, contributionID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrContributionNotFound
		}
		return fmt.Errorf("failed to delete contribution '%s': %w", contributionID, err)
	}
	return nil
}
