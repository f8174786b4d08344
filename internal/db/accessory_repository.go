package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fitmyphone-backend-go/internal/models"
)

const accessoriesCollection = "accessories"

// firestoreAccessoryRepository implements the AccessoryRepository interface
// using Firestore.
type firestoreAccessoryRepository struct {
	client *firestore.Client
}

// NewFirestoreAccessoryRepository creates a new instance of firestoreAccessoryRepository.
func NewFirestoreAccessoryRepository(client *firestore.Client) AccessoryRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AccessoryRepository.")
	}
	return &firestoreAccessoryRepository{client: client}
}

// accessoryFromDoc decodes an accessory document. The "models" field is
// decoded by hand because two encodings coexist in production data: plain
// string entries and {name, contributorUid, contributorName} maps.
func accessoryFromDoc(doc *firestore.DocumentSnapshot) (*models.Accessory, error) {
	data := doc.Data()
	if data == nil {
		return nil, fmt.Errorf("accessory document '%s' has no data", doc.Ref.ID)
	}

	accessory := &models.Accessory{ID: doc.Ref.ID}
	accessory.AccessoryType, _ = data["accessoryType"].(string)
	accessory.Source, _ = data["source"].(string)
	if ts, ok := data["lastUpdated"].(time.Time); ok {
		accessory.LastUpdated = ts
	}
	if raw, ok := data["models"].([]interface{}); ok {
		accessory.Models = models.NormalizeModelEntries(raw)
	}
	if contributor, ok := data["contributor"].(map[string]interface{}); ok {
		accessory.Contributor.UID, _ = contributor["uid"].(string)
		accessory.Contributor.DisplayName, _ = contributor["displayName"].(string)
	}
	return accessory, nil
}

// GetByID retrieves an accessory document from Firestore by its ID.
func (r *firestoreAccessoryRepository) GetByID(ctx context.Context, accessoryID string) (*models.Accessory, error) {
	if accessoryID == "" {
		return nil, errors.New("accessoryID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(accessoriesCollection).Doc(accessoryID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("accessory with ID '%s' not found: %w", accessoryID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get accessory with ID '%s': %w", accessoryID, err)
	}
	return accessoryFromDoc(docSnap)
}

// GetByType retrieves all accessory groups whose accessoryType matches the
// given category name.
func (r *firestoreAccessoryRepository) GetByType(ctx context.Context, accessoryType string) ([]*models.Accessory, error) {
	if accessoryType == "" {
		return nil, errors.New("accessoryType cannot be empty for GetByType operation")
	}

	iter := r.client.Collection(accessoriesCollection).
		Where("accessoryType", "==", accessoryType).
		Documents(ctx)
	defer iter.Stop()

	var accessories []*models.Accessory
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate accessories of type '%s': %w", accessoryType, err)
		}
		accessory, err := accessoryFromDoc(doc)
		if err != nil {
			// Log and skip problematic documents rather than failing the listing.
			log.Printf("Error decoding accessory data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		accessories = append(accessories, accessory)
	}
	return accessories, nil
}

// Create adds a new accessory document to Firestore with an auto-generated ID.
func (r *firestoreAccessoryRepository) Create(ctx context.Context, accessory *models.Accessory) (string, error) {
	docRef := r.client.Collection(accessoriesCollection).NewDoc()
	accessory.ID = docRef.ID

	_, err := docRef.Create(ctx, accessory)
	if err != nil {
		return "", fmt.Errorf("failed to create accessory: %w", err)
	}
	return docRef.ID, nil
}

// Update overwrites an existing accessory document.
func (r *firestoreAccessoryRepository) Update(ctx context.Context, accessory *models.Accessory) error {
	if accessory.ID == "" {
		return errors.New("accessory ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(accessoriesCollection).Doc(accessory.ID).Set(ctx, accessory)
	if err != nil {
		return fmt.Errorf("failed to update accessory with ID '%s': %w", accessory.ID, err)
	}
	return nil
}

// Delete removes an accessory document from Firestore.
func (r *firestoreAccessoryRepository) Delete(ctx context.Context, accessoryID string) error {
	if accessoryID == "" {
		return errors.New("accessoryID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(accessoriesCollection).Doc(accessoryID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("accessory with ID '%s' not found for deletion: %w", accessoryID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete accessory with ID '%s': %w", accessoryID, err)
	}
	return nil
}

// CommitBatch writes one batch of accessory upserts atomically. The caller
// chunks writes to stay within Firestore's per-batch operation limit.
func (r *firestoreAccessoryRepository) CommitBatch(ctx context.Context, writes []AccessoryWrite) error {
	if len(writes) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for _, w := range writes {
		if w.DocID != "" {
			// Explicit IDs merge-update the existing document; fields the
			// import does not carry survive. MergeAll requires map data.
			docRef := r.client.Collection(accessoriesCollection).Doc(w.DocID)
			w.Accessory.ID = docRef.ID
			data := map[string]interface{}{
				"models":      w.Accessory.Models,
				"source":      w.Accessory.Source,
				"lastUpdated": firestore.ServerTimestamp,
			}
			if w.Accessory.AccessoryType != "" {
				data["accessoryType"] = w.Accessory.AccessoryType
			}
			batch.Set(docRef, data, firestore.MergeAll)
			continue
		}
		docRef := r.client.Collection(accessoriesCollection).NewDoc()
		w.Accessory.ID = docRef.ID
		batch.Set(docRef, w.Accessory)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit accessory batch of %d writes: %w", len(writes), err)
	}
	return nil
}

// Watch subscribes to the accessory groups of a category via a Firestore
// snapshot listener and delivers the full current set on every change. The
// listener stops when ctx is cancelled; after too many consecutive listener
// errors the error is surfaced and both channels are closed.
func (r *firestoreAccessoryRepository) Watch(ctx context.Context, accessoryType string) (<-chan []*models.Accessory, <-chan error) {
	snapshots := make(chan []*models.Accessory)
	errs := make(chan error, 1)

	query := r.client.Collection(accessoriesCollection).Where("accessoryType", "==", accessoryType)
	const errTolerance = 20

	go func() {
		defer close(snapshots)
		defer close(errs)

		it := query.Snapshots(ctx)
		defer it.Stop()

		errCnt := 0
		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled || status.Code(err) == codes.DeadlineExceeded {
					return
				}
				log.Printf("accessory watch (%s): snapshot error: %v", accessoryType, err)
				errCnt++
				if errCnt < errTolerance {
					continue
				}
				errs <- err
				return
			}

			var accessories []*models.Accessory
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("accessory watch (%s): doc iteration error: %v", accessoryType, err)
					break
				}
				accessory, decodeErr := accessoryFromDoc(doc)
				if decodeErr != nil {
					continue
				}
				accessories = append(accessories, accessory)
			}

			select {
			case snapshots <- accessories:
			case <-ctx.Done():
				return
			}
		}
	}()

	return snapshots, errs
}
