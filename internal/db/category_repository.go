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

const categoriesCollection = "categories"

// firestoreCategoryRepository implements the CategoryRepository interface
// using Firestore.
type firestoreCategoryRepository struct {
	client *firestore.Client
}

// NewFirestoreCategoryRepository creates a new instance of firestoreCategoryRepository.
func NewFirestoreCategoryRepository(client *firestore.Client) CategoryRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CategoryRepository.")
	}
	return &firestoreCategoryRepository{client: client}
}

// List retrieves all categories in name order.
func (r *firestoreCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	iter := r.client.Collection(categoriesCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var categories []*models.Category
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate categories: %w", err)
		}

		var category models.Category
		if err := doc.DataTo(&category); err != nil {
			log.Printf("Error decoding category data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		category.ID = doc.Ref.ID
		categories = append(categories, &category)
	}
	return categories, nil
}

// GetByName retrieves the first category with the given name.
func (r *firestoreCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, errors.New("name cannot be empty for GetByName operation")
	}
	iter := r.client.Collection(categoriesCollection).Where("name", "==", name).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("category named '%s' not found: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category named '%s': %w", name, err)
	}

	var category models.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, fmt.Errorf("failed to decode category data for name '%s': %w", name, err)
	}
	category.ID = doc.Ref.ID
	return &category, nil
}

// Create adds a new category document with an auto-generated ID.
func (r *firestoreCategoryRepository) Create(ctx context.Context, category *models.Category) (string, error) {
	docRef := r.client.Collection(categoriesCollection).NewDoc()
	category.ID = docRef.ID

	_, err := docRef.Create(ctx, category)
	if err != nil {
		return "", fmt.Errorf("failed to create category: %w", err)
	}
	return docRef.ID, nil
}

// Delete removes a category document. Accessories referencing the category by
// name are left untouched; orphaned references are accepted by the data model.
func (r *firestoreCategoryRepository) Delete(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return errors.New("categoryID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(categoriesCollection).Doc(categoryID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("category with ID '%s' not found for deletion: %w", categoryID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete category with ID '%s': %w", categoryID, err)
	}
	return nil
}
