package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fitmyphone-backend-go/internal/models"
)

const contributionsCollection = "contributions"

// firestoreContributionRepository implements the ContributionRepository
// interface using Firestore.
type firestoreContributionRepository struct {
	client *firestore.Client
}

// NewFirestoreContributionRepository creates a new instance of firestoreContributionRepository.
func NewFirestoreContributionRepository(client *firestore.Client) ContributionRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ContributionRepository.")
	}
	return &firestoreContributionRepository{client: client}
}

// Create adds a new contribution document with an auto-generated ID.
// SubmittedAt is stamped server-side via the serverTimestamp tag.
func (r *firestoreContributionRepository) Create(ctx context.Context, contribution *models.Contribution) (string, error) {
	docRef := r.client.Collection(contributionsCollection).NewDoc()
	contribution.ID = docRef.ID

	_, err := docRef.Create(ctx, contribution)
	if err != nil {
		return "", fmt.Errorf("failed to create contribution: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a contribution document from Firestore by its ID.
func (r *firestoreContributionRepository) GetByID(ctx context.Context, contributionID string) (*models.Contribution, error) {
	if contributionID == "" {
		return nil, errors.New("contributionID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(contributionsCollection).Doc(contributionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("contribution with ID '%s' not found: %w", contributionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contribution with ID '%s': %w", contributionID, err)
	}

	var contribution models.Contribution
	if err := docSnap.DataTo(&contribution); err != nil {
		return nil, fmt.Errorf("failed to decode contribution data for ID '%s': %w", contributionID, err)
	}
	contribution.ID = docSnap.Ref.ID

	return &contribution, nil
}

// ListByStatus retrieves contributions in the given lifecycle state, newest first.
func (r *firestoreContributionRepository) ListByStatus(ctx context.Context, contributionStatus string, limit int) ([]*models.Contribution, error) {
	query := r.client.Collection(contributionsCollection).
		Where("status", "==", contributionStatus).
		OrderBy("submittedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return r.list(ctx, query)
}

// ListBySubmitter retrieves the contributions a user submitted, newest first.
func (r *firestoreContributionRepository) ListBySubmitter(ctx context.Context, userID string, limit int) ([]*models.Contribution, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for ListBySubmitter operation")
	}
	query := r.client.Collection(contributionsCollection).
		Where("submittedBy", "==", userID).
		OrderBy("submittedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return r.list(ctx, query)
}

func (r *firestoreContributionRepository) list(ctx context.Context, query firestore.Query) ([]*models.Contribution, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var contributions []*models.Contribution
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate contributions: %w", err)
		}

		var contribution models.Contribution
		if err := doc.DataTo(&contribution); err != nil {
			log.Printf("Error decoding contribution data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		contribution.ID = doc.Ref.ID
		contributions = append(contributions, &contribution)
	}
	return contributions, nil
}

// Update overwrites an existing contribution document.
func (r *firestoreContributionRepository) Update(ctx context.Context, contribution *models.Contribution) error {
	if contribution.ID == "" {
		return errors.New("contribution ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(contributionsCollection).Doc(contribution.ID).Set(ctx, contribution)
	if err != nil {
		return fmt.Errorf("failed to update contribution with ID '%s': %w", contribution.ID, err)
	}
	return nil
}

// Delete removes a contribution document. Contributions are only ever
// hard-deleted by an explicit admin action.
func (r *firestoreContributionRepository) Delete(ctx context.Context, contributionID string) error {
	if contributionID == "" {
		return errors.New("contributionID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(contributionsCollection).Doc(contributionID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("contribution with ID '%s' not found for deletion: %w", contributionID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete contribution with ID '%s': %w", contributionID, err)
	}
	return nil
}
