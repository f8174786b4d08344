package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/db"
	"fitmyphone-backend-go/internal/models"
)

// Custom errors for the ReconciliationService.
var (
	ErrContributionNotFound = errors.New("contribution not found")
	ErrAlreadyReviewed      = errors.New("contribution has already been reviewed")
)

// reconciliationService implements the ReconciliationService interface. All of
// Approve runs inside one Firestore transaction: the status guard, the target
// group resolution, the case-insensitive model merge, the master-model
// upserts, the points award, and the status transition. Re-approving an
// already reviewed contribution fails the guard, so points can never be
// awarded twice.
type reconciliationService struct {
	store            db.ReconciliationStore
	contributionRepo db.ContributionRepository
	notifier         NotificationService
	defaultReward    int
	logger           *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService instance.
func NewReconciliationService(
	store db.ReconciliationStore,
	contributionRepo db.ContributionRepository,
	notifier NotificationService,
	defaultReward int,
	logger *zap.Logger,
) ReconciliationService {
	if defaultReward <= 0 {
		defaultReward = 10
	}
	return &reconciliationService{
		store:            store,
		contributionRepo: contributionRepo,
		notifier:         notifier,
		defaultReward:    defaultReward,
		logger:           logger,
	}
}

// mergeModelEntries appends the submitted names that are not already present
// in the group, matching case-insensitively. Existing entries keep their order
// and attribution; appended entries are tagged with the contributor. Duplicate
// names within the submission itself collapse to one entry.
func mergeModelEntries(existing []models.AccessoryModel, submitted []string, contributorUID, contributorName string) ([]models.AccessoryModel, int) {
	seen := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		seen[strings.ToLower(strings.TrimSpace(entry.Name))] = struct{}{}
	}

	merged := existing
	added := 0
	for _, name := range submitted {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, models.AccessoryModel{
			Name:            name,
			ContributorUID:  contributorUID,
			ContributorName: contributorName,
		})
		added++
	}
	return merged, added
}

// Approve reconciles a pending contribution into the accessory graph.
func (s *reconciliationService) Approve(ctx context.Context, contributionID, reviewerID string, pointsOverride *int) (*models.Contribution, error) {
	if contributionID == "" {
		return nil, errors.New("contributionID cannot be empty for Approve operation")
	}

	points := s.defaultReward
	if pointsOverride != nil {
		points = *pointsOverride
	}

	var (
		approved  *models.Contribution
		submitter *models.User
	)

	err := s.store.Run(ctx, func(tx db.ReconciliationTx) error {
		// The transaction function can be retried on contention; start from
		// clean state and re-derive everything from transactional reads.
		approved, submitter = nil, nil

		// --- Reads (all reads must precede the first write) ---
		contribution, err := tx.Contribution(contributionID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return ErrContributionNotFound
			}
			return err
		}

		// Status guard: a contribution is approved at most once. This is what
		// makes re-entrant approval safe — the second attempt fails here
		// before any write, so points cannot be double-awarded.
		if !contribution.IsPending() {
			return fmt.Errorf("%w: contribution '%s' is '%s'", ErrAlreadyReviewed, contributionID, contribution.Status)
		}

		// Resolve the target group. An explicit addToAccessoryId wins; the
		// category-name lookup is the fallback for contributions without one.
		var target *models.Accessory
		if contribution.AddToAccessoryID != "" {
			target, err = tx.AccessoryByID(contribution.AddToAccessoryID)
			if err != nil && !errors.Is(err, db.ErrNotFound) {
				return err
			}
		}
		if target == nil {
			target, err = tx.FirstAccessoryByType(contribution.AccessoryType)
			if err != nil && !errors.Is(err, db.ErrNotFound) {
				return err
			}
		}

		submitter, err = tx.User(contribution.SubmittedBy)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return err
		}

		missingMasterModels, err := tx.MissingMasterModels(contribution.Models)
		if err != nil {
			return err
		}

		// --- Writes ---
		contributorName := ""
		if submitter != nil {
			contributorName = submitter.DisplayName
		}

		if target == nil {
			// No group carries this category yet: create one from the
			// submission, with every entry tagged.
			entries, _ := mergeModelEntries(nil, contribution.Models, contribution.SubmittedBy, contributorName)
			target = &models.Accessory{
				AccessoryType: contribution.AccessoryType,
				Models:        entries,
				Contributor: models.ContributorSummary{
					UID:         contribution.SubmittedBy,
					DisplayName: contributorName,
				},
				Source: contribution.Source,
			}
			if err := tx.SaveAccessory(target); err != nil {
				return err
			}
		} else {
			merged, added := mergeModelEntries(target.Models, contribution.Models, contribution.SubmittedBy, contributorName)
			if added > 0 {
				target.Models = merged
				if err := tx.SaveAccessory(target); err != nil {
					return err
				}
			}
		}

		if len(missingMasterModels) > 0 {
			if err := tx.CreateMasterModels(missingMasterModels); err != nil {
				return err
			}
		}

		awarded := 0
		if submitter != nil && points > 0 {
			if err := tx.AddUserPoints(submitter.ID, points); err != nil {
				return err
			}
			awarded = points
		}

		now := time.Now().UTC()
		contribution.Status = models.ContributionStatusApproved
		contribution.ReviewedAt = &now
		contribution.ReviewedBy = reviewerID
		contribution.PointsAwarded = awarded
		if contribution.AddToAccessoryID == "" {
			contribution.AddToAccessoryID = target.ID
		}
		if err := tx.SaveContribution(contribution); err != nil {
			return err
		}

		approved = contribution
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notification happens outside the transaction: the approval is already
	// durable and a messaging failure must not roll it back.
	if s.notifier != nil && submitter != nil {
		if notifyErr := s.notifier.NotifyContributionApproved(ctx, submitter, approved); notifyErr != nil {
			s.logger.Warn("approval notification failed",
				zap.String("contributionId", approved.ID),
				zap.String("userId", submitter.ID),
				zap.Error(notifyErr))
		}
	}

	return approved, nil
}

// Reject marks a contribution rejected. It touches no accessory or user
// records and is reversible by editing the contribution back to pending.
func (s *reconciliationService) Reject(ctx context.Context, contributionID, reviewerID string) (*models.Contribution, error) {
	contribution, err := s.contributionRepo.GetByID(ctx, contributionID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrContributionNotFound
		}
		return nil, fmt.Errorf("failed to load contribution '%s' for rejection: %w", contributionID, err)
	}
	if contribution.Status == models.ContributionStatusApproved {
		return nil, fmt.Errorf("%w: contribution '%s' is already approved", ErrAlreadyReviewed, contributionID)
	}

	now := time.Now().UTC()
	contribution.Status = models.ContributionStatusRejected
	contribution.ReviewedAt = &now
	contribution.ReviewedBy = reviewerID

	if err := s.contributionRepo.Update(ctx, contribution); err != nil {
		return nil, fmt.Errorf("failed to reject contribution '%s': %w", contributionID, err)
	}
	return contribution, nil
}

// Edit overwrites fields of a contribution that has not been approved yet.
func (s *reconciliationService) Edit(ctx context.Context, contributionID string, req models.UpdateContributionRequest) (*models.Contribution, error) {
	contribution, err := s.contributionRepo.GetByID(ctx, contributionID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrContributionNotFound
		}
		return nil, fmt.Errorf("failed to load contribution '%s' for edit: %w", contributionID, err)
	}
	if contribution.Status == models.ContributionStatusApproved {
		return nil, fmt.Errorf("%w: approved contributions cannot be edited", ErrAlreadyReviewed)
	}

	if req.AccessoryType != nil {
		contribution.AccessoryType = *req.AccessoryType
	}
	if req.Models != nil {
		contribution.Models = *req.Models
	}
	if req.Source != nil {
		contribution.Source = *req.Source
	}
	if req.AddToAccessoryID != nil {
		contribution.AddToAccessoryID = *req.AddToAccessoryID
	}
	// Editing a rejected contribution reopens it for review.
	contribution.Status = models.ContributionStatusPending
	contribution.ReviewedAt = nil
	contribution.ReviewedBy = ""

	if err := s.contributionRepo.Update(ctx, contribution); err != nil {
		return nil, fmt.Errorf("failed to edit contribution '%s': %w", contributionID, err)
	}
	return contribution, nil
}
