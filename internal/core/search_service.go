package core

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/db"
	"fitmyphone-backend-go/internal/models"
)

// ErrEmptySearchTerm is returned when the query term is blank.
var ErrEmptySearchTerm = errors.New("search term cannot be empty")

// searchService implements the SearchService interface. Filtering is plain
// case-insensitive substring matching over data fetched for the category; no
// indexing or scoring is done here. When nothing matches, the LLM suggestion
// collaborator is consulted.
type searchService struct {
	accessoryRepo db.AccessoryRepository
	searchLogRepo db.SearchLogRepository
	suggester     Suggester
	logger        *zap.Logger
}

// NewSearchService creates a new SearchService instance.
func NewSearchService(
	accessoryRepo db.AccessoryRepository,
	searchLogRepo db.SearchLogRepository,
	suggester Suggester,
	logger *zap.Logger,
) SearchService {
	return &searchService{
		accessoryRepo: accessoryRepo,
		searchLogRepo: searchLogRepo,
		suggester:     suggester,
		logger:        logger,
	}
}

// matchesTerm reports whether any model name in the group contains the term,
// case-insensitively. Querying "iphone" matches a stored "iPhone 13 Pro".
func matchesTerm(accessory *models.Accessory, term string) bool {
	needle := strings.ToLower(term)
	for _, m := range accessory.Models {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			return true
		}
	}
	return false
}

// Search filters the category's accessory groups by the term.
func (s *searchService) Search(ctx context.Context, category, term string) (*models.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptySearchTerm
	}

	accessories, err := s.accessoryRepo.GetByType(ctx, category)
	if err != nil {
		return nil, err
	}

	// The search log is analytics-only; a logging failure never fails the search.
	now := time.Now().UTC()
	if logErr := s.searchLogRepo.Append(ctx, &models.SearchLog{
		Term:     term,
		Category: category,
		Date:     now.Format("2006-01-02"),
	}); logErr != nil {
		s.logger.Warn("failed to append search log", zap.String("term", term), zap.Error(logErr))
	}

	result := &models.SearchResult{Accessories: []*models.Accessory{}}
	for _, accessory := range accessories {
		if matchesTerm(accessory, term) {
			result.Accessories = append(result.Accessories, accessory)
		}
	}

	if len(result.Accessories) == 0 && s.suggester != nil {
		suggestion, suggestErr := s.suggester.Suggest(ctx, term, category)
		if suggestErr != nil {
			// The fallback is best effort: an LLM failure degrades to an
			// empty result rather than failing the search.
			s.logger.Warn("LLM suggestion fallback failed", zap.String("term", term), zap.Error(suggestErr))
		} else {
			result.Suggestion = suggestion
		}
	}

	return result, nil
}

// ErrAccessoryNotFound is returned when a compatibility group does not exist.
var ErrAccessoryNotFound = errors.New("accessory not found")

// GetAccessory retrieves a single compatibility group for display.
func (s *searchService) GetAccessory(ctx context.Context, accessoryID string) (*models.Accessory, error) {
	accessory, err := s.accessoryRepo.GetByID(ctx, accessoryID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrAccessoryNotFound
		}
		return nil, err
	}
	return accessory, nil
}

// ListByCategory retrieves all compatibility groups of a category.
func (s *searchService) ListByCategory(ctx context.Context, category string) ([]*models.Accessory, error) {
	return s.accessoryRepo.GetByType(ctx, category)
}

// Watch streams the live accessory set of a category.
func (s *searchService) Watch(ctx context.Context, category string) (<-chan []*models.Accessory, <-chan error) {
	return s.accessoryRepo.Watch(ctx, category)
}

// TopSearchTerms aggregates the search log in memory: terms are counted
// case-insensitively and returned most-frequent first.
func (s *searchService) TopSearchTerms(ctx context.Context, since time.Time, limit int) ([]models.SearchTermCount, error) {
	entries, err := s.searchLogRepo.ListSince(ctx, since.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, entry := range entries {
		term := strings.ToLower(strings.TrimSpace(entry.Term))
		if term == "" {
			continue
		}
		counts[term]++
	}

	aggregated := make([]models.SearchTermCount, 0, len(counts))
	for term, count := range counts {
		aggregated = append(aggregated, models.SearchTermCount{Term: term, Count: count})
	}
	sort.Slice(aggregated, func(i, j int) bool {
		if aggregated[i].Count != aggregated[j].Count {
			return aggregated[i].Count > aggregated[j].Count
		}
		return aggregated[i].Term < aggregated[j].Term
	})

	if limit > 0 && len(aggregated) > limit {
		aggregated = aggregated[:limit]
	}
	return aggregated, nil
}
