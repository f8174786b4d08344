package db

import (
	"context"
	"errors"

	"fitmyphone-backend-go/internal/models"
)

// ErrNotFound is the common error for a document that does not exist in
// Firestore, shared by all repositories in this package.
var ErrNotFound = errors.New("document not found")

// AccessoryWrite is one pending accessory upsert produced by the bulk
// importer. An empty DocID means "create with a fresh document ID".
type AccessoryWrite struct {
	DocID     string
	Accessory *models.Accessory
}

// AccessoryRepository defines the interface for accessory group storage.
type AccessoryRepository interface {
	GetByID(ctx context.Context, accessoryID string) (*models.Accessory, error)
	// GetByType returns every group whose accessoryType equals the given
	// category name, in creation order. Category is a grouping label, not a
	// unique key, so multiple groups may share it.
	GetByType(ctx context.Context, accessoryType string) ([]*models.Accessory, error)
	Create(ctx context.Context, accessory *models.Accessory) (string, error)
	Update(ctx context.Context, accessory *models.Accessory) error
	Delete(ctx context.Context, accessoryID string) error
	// CommitBatch writes one batch of upserts atomically. The caller is
	// responsible for keeping batches within Firestore's 500-operation limit.
	CommitBatch(ctx context.Context, writes []AccessoryWrite) error
	// Watch streams the current accessory set of a category; a new slice is
	// delivered on every snapshot change until ctx is cancelled.
	Watch(ctx context.Context, accessoryType string) (<-chan []*models.Accessory, <-chan error)
}

// ContributionRepository defines the interface for contribution storage.
type ContributionRepository interface {
	Create(ctx context.Context, contribution *models.Contribution) (string, error)
	GetByID(ctx context.Context, contributionID string) (*models.Contribution, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*models.Contribution, error)
	ListBySubmitter(ctx context.Context, userID string, limit int) ([]*models.Contribution, error)
	Update(ctx context.Context, contribution *models.Contribution) error
	Delete(ctx context.Context, contributionID string) error
}

// UserRepository defines the interface for user profile storage.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// ListTop returns up to limit users ordered by points descending.
	ListTop(ctx context.Context, limit int) ([]*models.User, error)
}

// CategoryRepository defines the interface for category storage.
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) (string, error)
	Delete(ctx context.Context, categoryID string) error
}

// MasterModelRepository defines the interface for the canonical device-name
// list. Documents are keyed by name, which makes upserts idempotent.
type MasterModelRepository interface {
	Upsert(ctx context.Context, name string) error
	BulkUpsert(ctx context.Context, names []string) error
	List(ctx context.Context) ([]*models.MasterModel, error)
}

// SearchLogRepository defines the interface for the append-only search log.
type SearchLogRepository interface {
	Append(ctx context.Context, entry *models.SearchLog) error
	ListSince(ctx context.Context, since string) ([]*models.SearchLog, error) // since is a YYYY-MM-DD date
}

// ReconciliationTx gives the reconciliation workflow transactional access to
// the documents it touches. All read methods must be called before any write
// method, matching Firestore's transaction contract.
type ReconciliationTx interface {
	// Reads
	Contribution(contributionID string) (*models.Contribution, error)
	AccessoryByID(accessoryID string) (*models.Accessory, error)
	FirstAccessoryByType(accessoryType string) (*models.Accessory, error)
	User(userID string) (*models.User, error)
	MissingMasterModels(names []string) ([]string, error)
	// Writes
	SaveAccessory(accessory *models.Accessory) error // Creates when ID is empty
	CreateMasterModels(names []string) error
	AddUserPoints(userID string, points int) error
	SaveContribution(contribution *models.Contribution) error
}

// ReconciliationStore runs a reconciliation function inside a single Firestore
// transaction. On contention the function is retried with fresh reads, so a
// concurrent approval re-merges instead of overwriting.
type ReconciliationStore interface {
	Run(ctx context.Context, fn func(tx ReconciliationTx) error) error
}
