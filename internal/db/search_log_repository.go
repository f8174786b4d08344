package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"fitmyphone-backend-go/internal/models"
)

const searchLogsCollection = "search_logs"

// firestoreSearchLogRepository implements the SearchLogRepository interface
// using Firestore. The collection is append-only.
type firestoreSearchLogRepository struct {
	client *firestore.Client
}

// NewFirestoreSearchLogRepository creates a new instance of firestoreSearchLogRepository.
func NewFirestoreSearchLogRepository(client *firestore.Client) SearchLogRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SearchLogRepository.")
	}
	return &firestoreSearchLogRepository{client: client}
}

// Append writes a single search log entry with an auto-generated ID.
func (r *firestoreSearchLogRepository) Append(ctx context.Context, entry *models.SearchLog) error {
	if entry == nil || entry.Term == "" {
		return errors.New("search log entry must have a term")
	}
	docRef := r.client.Collection(searchLogsCollection).NewDoc()
	entry.ID = docRef.ID

	if _, err := docRef.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to append search log: %w", err)
	}
	return nil
}

// ListSince retrieves all log entries whose date is on or after the given
// YYYY-MM-DD date. Aggregation happens in memory on the caller's side.
func (r *firestoreSearchLogRepository) ListSince(ctx context.Context, since string) ([]*models.SearchLog, error) {
	query := r.client.Collection(searchLogsCollection).Query
	if since != "" {
		query = query.Where("date", ">=", since)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var entries []*models.SearchLog
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate search logs: %w", err)
		}

		var entry models.SearchLog
		if err := doc.DataTo(&entry); err != nil {
			log.Printf("Error decoding search log data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		entry.ID = doc.Ref.ID
		entries = append(entries, &entry)
	}
	return entries, nil
}
