package core

import (
	"context"
	"io"
	"time"

	"firebase.google.com/go/v4/messaging"

	"fitmyphone-backend-go/internal/models"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	// GetOrCreate retrieves a user by ID. If the user doesn't exist, it
	// creates a new profile with default values from the verified token claims.
	GetOrCreate(ctx context.Context, userID, email, displayName, photoURL string) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	UpdateRole(ctx context.Context, userID, role string) (*models.User, error)
	SetSuspension(ctx context.Context, userID string, suspended bool) (*models.User, error)
	Leaderboard(ctx context.Context, limit int) ([]*models.User, error)
	RegisterFCMToken(ctx context.Context, userID, token string) error
}

// ContributionService defines the user-facing contribution operations.
type ContributionService interface {
	Submit(ctx context.Context, userID string, req models.CreateContributionRequest) (*models.Contribution, error)
	GetByID(ctx context.Context, contributionID string) (*models.Contribution, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*models.Contribution, error)
	ListMine(ctx context.Context, userID string, limit int) ([]*models.Contribution, error)
	Delete(ctx context.Context, contributionID string) error
}

// ReconciliationService converts reviewed contributions into durable changes
// to accessory groups and user records.
type ReconciliationService interface {
	// Approve merges the contribution into its target accessory group, awards
	// points to the submitter, upserts the canonical model names, and marks
	// the contribution approved — all inside one transaction. pointsOverride
	// lets the reviewer deviate from the configured default reward.
	Approve(ctx context.Context, contributionID, reviewerID string, pointsOverride *int) (*models.Contribution, error)
	// Reject is a single status update with no other side effects.
	Reject(ctx context.Context, contributionID, reviewerID string) (*models.Contribution, error)
	// Edit overwrites fields of a still-pending contribution. No history is kept.
	Edit(ctx context.Context, contributionID string, req models.UpdateContributionRequest) (*models.Contribution, error)
}

// SearchService defines the search/display operations.
type SearchService interface {
	// Search filters the category's accessory groups by case-insensitive
	// substring match over model names, logging the term, and falls back to
	// the LLM suggestion service when nothing matches.
	Search(ctx context.Context, category, term string) (*models.SearchResult, error)
	// GetAccessory retrieves a single compatibility group for display.
	GetAccessory(ctx context.Context, accessoryID string) (*models.Accessory, error)
	// ListByCategory retrieves all compatibility groups of a category.
	ListByCategory(ctx context.Context, category string) ([]*models.Accessory, error)
	// Watch streams the live accessory set of a category.
	Watch(ctx context.Context, category string) (<-chan []*models.Accessory, <-chan error)
	// TopSearchTerms aggregates the append-only search log in memory.
	TopSearchTerms(ctx context.Context, since time.Time, limit int) ([]models.SearchTermCount, error)
}

// ImportSummary reports what a bulk import did.
type ImportSummary struct {
	RowsRead    int `json:"rowsRead"`
	RowsSkipped int `json:"rowsSkipped"`
	DocsWritten int `json:"docsWritten"`
}

// ImportService defines the CSV bulk import operations.
type ImportService interface {
	ImportAccessories(ctx context.Context, csvData io.Reader) (*ImportSummary, error)
	ImportMasterModels(ctx context.Context, csvData io.Reader) (*ImportSummary, error)
}

// CategoryService defines category management operations.
type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Delete(ctx context.Context, categoryID string) error
}

// MasterModelService defines canonical device-name list operations.
type MasterModelService interface {
	List(ctx context.Context) ([]*models.MasterModel, error)
	Add(ctx context.Context, name string) error
}

// NotificationService defines push notification operations.
type NotificationService interface {
	// NotifyContributionApproved pushes an approval notice to every device
	// token the submitter registered. Best effort; callers log, not fail.
	NotifyContributionApproved(ctx context.Context, user *models.User, contribution *models.Contribution) error
}

// Suggester is the LLM suggestion collaborator the search service falls back
// to when local filtering finds nothing.
type Suggester interface {
	Suggest(ctx context.Context, term, category string) (*models.Suggestion, error)
}

// Messenger abstracts the Firebase Cloud Messaging client so the notification
// service can be exercised without the real backend. *messaging.Client
// satisfies it.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}
