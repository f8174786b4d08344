package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/core"
	"fitmyphone-backend-go/internal/models"
)

// stubSearchService returns canned data for the display endpoints.
type stubSearchService struct {
	accessories []*models.Accessory
	result      *models.SearchResult
	getErr      error
}

func (s *stubSearchService) Search(_ context.Context, _, _ string) (*models.SearchResult, error) {
	return s.result, nil
}

func (s *stubSearchService) GetAccessory(_ context.Context, accessoryID string) (*models.Accessory, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, a := range s.accessories {
		if a.ID == accessoryID {
			return a, nil
		}
	}
	return nil, core.ErrAccessoryNotFound
}

func (s *stubSearchService) ListByCategory(_ context.Context, _ string) ([]*models.Accessory, error) {
	return s.accessories, nil
}

func (s *stubSearchService) Watch(_ context.Context, _ string) (<-chan []*models.Accessory, <-chan error) {
	updates := make(chan []*models.Accessory, 1)
	errs := make(chan error)
	updates <- s.accessories
	close(updates)
	close(errs)
	return updates, errs
}

func (s *stubSearchService) TopSearchTerms(_ context.Context, _ time.Time, _ int) ([]models.SearchTermCount, error) {
	return []models.SearchTermCount{{Term: "pixel 9", Count: 3}}, nil
}

func newAccessoryRouter(svc core.SearchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAccessoryHandler(svc, zap.NewNop())
	router.GET("/accessories", handler.List)
	router.GET("/accessories/:id", handler.Get)
	return router
}

func TestAccessoryList(t *testing.T) {
	svc := &stubSearchService{
		accessories: []*models.Accessory{
			{ID: "a1", AccessoryType: "Clear Case", Models: []models.AccessoryModel{{Name: "Pixel 9"}}},
		},
		result: &models.SearchResult{
			Accessories: []*models.Accessory{},
			Suggestion:  &models.Suggestion{AlternativeTerms: []string{"pixel 9"}},
		},
	}
	router := newAccessoryRouter(svc)

	t.Run("missing category", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/accessories", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("category without term lists groups", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/accessories?category=Clear+Case", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var got []*models.Accessory
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "a1", got[0].ID)
	})

	t.Run("term triggers search result shape", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/accessories?category=Clear+Case&q=pixle", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var got models.SearchResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Empty(t, got.Accessories)
		require.NotNil(t, got.Suggestion)
		assert.Equal(t, []string{"pixel 9"}, got.Suggestion.AlternativeTerms)
	})
}

func TestAccessoryGet(t *testing.T) {
	svc := &stubSearchService{
		accessories: []*models.Accessory{{ID: "a1", AccessoryType: "Clear Case"}},
	}
	router := newAccessoryRouter(svc)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/accessories/a1", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/accessories/missing", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
