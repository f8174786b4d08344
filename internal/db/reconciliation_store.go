package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fitmyphone-backend-go/internal/models"
)

// firestoreReconciliationStore implements ReconciliationStore on top of
// Firestore's RunTransaction. Firestore retries the transaction function on
// contention, which gives concurrent approvals read-merge-write semantics
// instead of last-write-wins.
type firestoreReconciliationStore struct {
	client *firestore.Client
}

// NewFirestoreReconciliationStore creates a new instance of firestoreReconciliationStore.
func NewFirestoreReconciliationStore(client *firestore.Client) ReconciliationStore {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ReconciliationStore.")
	}
	return &firestoreReconciliationStore{client: client}
}

// Run executes fn inside one Firestore transaction. The transaction function
// may be invoked multiple times; fn must therefore derive all writes from the
// reads it performs through the passed tx.
func (s *firestoreReconciliationStore) Run(ctx context.Context, fn func(tx ReconciliationTx) error) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(&firestoreReconciliationTx{client: s.client, ctx: ctx, tx: tx})
	})
}

// firestoreReconciliationTx adapts a *firestore.Transaction to the
// ReconciliationTx interface. Firestore requires every read to happen before
// the first write of the transaction; the reconciliation service honors that
// ordering.
type firestoreReconciliationTx struct {
	client *firestore.Client
	ctx    context.Context
	tx     *firestore.Transaction
}

func (t *firestoreReconciliationTx) Contribution(contributionID string) (*models.Contribution, error) {
	docSnap, err := t.tx.Get(t.client.Collection(contributionsCollection).Doc(contributionID))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("contribution with ID '%s' not found: %w", contributionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read contribution '%s' in transaction: %w", contributionID, err)
	}

	var contribution models.Contribution
	if err := docSnap.DataTo(&contribution); err != nil {
		return nil, fmt.Errorf("failed to decode contribution '%s' in transaction: %w", contributionID, err)
	}
	contribution.ID = docSnap.Ref.ID
	return &contribution, nil
}

func (t *firestoreReconciliationTx) AccessoryByID(accessoryID string) (*models.Accessory, error) {
	docSnap, err := t.tx.Get(t.client.Collection(accessoriesCollection).Doc(accessoryID))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("accessory with ID '%s' not found: %w", accessoryID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read accessory '%s' in transaction: %w", accessoryID, err)
	}
	return accessoryFromDoc(docSnap)
}

// FirstAccessoryByType returns the first group matching the category name.
// When several groups share the label only the first query result is merged
// into; that is the documented grouping behavior of the data model.
func (t *firestoreReconciliationTx) FirstAccessoryByType(accessoryType string) (*models.Accessory, error) {
	query := t.client.Collection(accessoriesCollection).
		Where("accessoryType", "==", accessoryType).
		Limit(1)

	iter := t.tx.Documents(query)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("no accessory of type '%s': %w", accessoryType, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query accessories of type '%s' in transaction: %w", accessoryType, err)
	}
	return accessoryFromDoc(doc)
}

func (t *firestoreReconciliationTx) User(userID string) (*models.User, error) {
	docSnap, err := t.tx.Get(t.client.Collection(usersCollection).Doc(userID))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read user '%s' in transaction: %w", userID, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user '%s' in transaction: %w", userID, err)
	}
	user.ID = docSnap.Ref.ID
	return &user, nil
}

// MissingMasterModels returns the subset of names that have no canonical
// entry yet. Reads happen here so the subsequent CreateMasterModels call only
// issues writes, keeping the read-before-write transaction ordering intact.
func (t *firestoreReconciliationTx) MissingMasterModels(names []string) ([]string, error) {
	var missing []string
	for _, name := range names {
		if name == "" {
			continue
		}
		_, err := t.tx.Get(t.client.Collection(masterModelsCollection).Doc(name))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				missing = append(missing, name)
				continue
			}
			return nil, fmt.Errorf("failed to read master model '%s' in transaction: %w", name, err)
		}
	}
	return missing, nil
}

func (t *firestoreReconciliationTx) SaveAccessory(accessory *models.Accessory) error {
	if accessory.ID == "" {
		docRef := t.client.Collection(accessoriesCollection).NewDoc()
		accessory.ID = docRef.ID
		if err := t.tx.Create(docRef, accessory); err != nil {
			return fmt.Errorf("failed to create accessory in transaction: %w", err)
		}
		return nil
	}
	if err := t.tx.Set(t.client.Collection(accessoriesCollection).Doc(accessory.ID), accessory); err != nil {
		return fmt.Errorf("failed to save accessory '%s' in transaction: %w", accessory.ID, err)
	}
	return nil
}

func (t *firestoreReconciliationTx) CreateMasterModels(names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		entry := &models.MasterModel{Name: name, CreatedAt: time.Now().UTC()}
		if err := t.tx.Set(t.client.Collection(masterModelsCollection).Doc(name), entry); err != nil {
			return fmt.Errorf("failed to create master model '%s' in transaction: %w", name, err)
		}
	}
	return nil
}

func (t *firestoreReconciliationTx) AddUserPoints(userID string, points int) error {
	err := t.tx.Update(t.client.Collection(usersCollection).Doc(userID), []firestore.Update{
		{Path: "points", Value: firestore.Increment(points)},
	})
	if err != nil {
		return fmt.Errorf("failed to add %d points to user '%s' in transaction: %w", points, userID, err)
	}
	return nil
}

func (t *firestoreReconciliationTx) SaveContribution(contribution *models.Contribution) error {
	if contribution.ID == "" {
		return fmt.Errorf("contribution ID cannot be empty when saving in transaction")
	}
	if err := t.tx.Set(t.client.Collection(contributionsCollection).Doc(contribution.ID), contribution); err != nil {
		return fmt.Errorf("failed to save contribution '%s' in transaction: %w", contribution.ID, err)
	}
	return nil
}
