package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"fitmyphone-backend-go/internal/models"
)

const masterModelsCollection = "master_models"

// masterModelBatchLimit keeps bulk upserts within Firestore's per-batch
// operation cap.
const masterModelBatchLimit = 500

// firestoreMasterModelRepository implements the MasterModelRepository
// interface using Firestore. Documents are keyed by model name so that
// repeated upserts of the same name are idempotent.
type firestoreMasterModelRepository struct {
	client *firestore.Client
}

// NewFirestoreMasterModelRepository creates a new instance of firestoreMasterModelRepository.
func NewFirestoreMasterModelRepository(client *firestore.Client) MasterModelRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for MasterModelRepository.")
	}
	return &firestoreMasterModelRepository{client: client}
}

// Upsert writes a single canonical model name. Set (not Create) keeps the
// operation idempotent by name.
func (r *firestoreMasterModelRepository) Upsert(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("name cannot be empty for Upsert operation")
	}
	entry := &models.MasterModel{Name: name, CreatedAt: time.Now().UTC()}
	_, err := r.client.Collection(masterModelsCollection).Doc(name).Set(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to upsert master model '%s': %w", name, err)
	}
	return nil
}

// BulkUpsert writes many canonical model names in batches.
func (r *firestoreMasterModelRepository) BulkUpsert(ctx context.Context, names []string) error {
	for start := 0; start < len(names); start += masterModelBatchLimit {
		end := start + masterModelBatchLimit
		if end > len(names) {
			end = len(names)
		}

		batch := r.client.Batch()
		for _, name := range names[start:end] {
			if name == "" {
				continue
			}
			entry := &models.MasterModel{Name: name, CreatedAt: time.Now().UTC()}
			batch.Set(r.client.Collection(masterModelsCollection).Doc(name), entry)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit master model batch [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

// List retrieves the full canonical device-name list in name order.
func (r *firestoreMasterModelRepository) List(ctx context.Context) ([]*models.MasterModel, error) {
	iter := r.client.Collection(masterModelsCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var entries []*models.MasterModel
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate master models: %w", err)
		}

		var entry models.MasterModel
		if err := doc.DataTo(&entry); err != nil {
			log.Printf("Error decoding master model data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}
