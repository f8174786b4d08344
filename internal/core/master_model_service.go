package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitmyphone-backend-go/internal/db"
	"fitmyphone-backend-go/internal/models"
)

// masterModelService implements the MasterModelService interface.
type masterModelService struct {
	masterModelRepo db.MasterModelRepository
}

// NewMasterModelService creates a new MasterModelService instance.
func NewMasterModelService(masterModelRepo db.MasterModelRepository) MasterModelService {
	return &masterModelService{
		masterModelRepo: masterModelRepo,
	}
}

// List retrieves the full canonical device-name list.
func (s *masterModelService) List(ctx context.Context) ([]*models.MasterModel, error) {
	entries, err := s.masterModelRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list master models: %w", err)
	}
	return entries, nil
}

// Add upserts a single device name. Free-text creation is allowed; the
// name-keyed document makes repeats idempotent.
func (s *masterModelService) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("master model name cannot be empty")
	}
	if err := s.masterModelRepo.Upsert(ctx, name); err != nil {
		return fmt.Errorf("failed to add master model '%s': %w", name, err)
	}
	return nil
}
