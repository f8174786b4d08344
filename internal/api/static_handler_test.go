package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/models"
)

type stubCategoryService struct {
	categories []*models.Category
}

func (s *stubCategoryService) List(_ context.Context) ([]*models.Category, error) {
	return s.categories, nil
}

func (s *stubCategoryService) Create(_ context.Context, name string) (*models.Category, error) {
	return &models.Category{Name: name}, nil
}

func (s *stubCategoryService) Delete(_ context.Context, _ string) error {
	return nil
}

func newStaticRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	categoryService := &stubCategoryService{categories: []*models.Category{{ID: "cat-1", Name: "Clear Case"}}}
	searchService := &stubSearchService{
		accessories: []*models.Accessory{{ID: "a1", AccessoryType: "Clear Case"}},
	}
	handler := NewStaticHandler(categoryService, searchService, "https://fitmyphone.example/", zap.NewNop())
	router := gin.New()
	router.GET("/sitemap.xml", handler.Sitemap)
	router.GET("/robots.txt", handler.Robots)
	return router
}

func TestRobots(t *testing.T) {
	router := newStaticRouter()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Disallow: /admin/")
	assert.Contains(t, body, "Disallow: /profile/")
	assert.Contains(t, body, "Disallow: /settings/")
	assert.Contains(t, body, "Sitemap: https://fitmyphone.example/sitemap.xml")
}

func TestSitemap(t *testing.T) {
	router := newStaticRouter()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<loc>https://fitmyphone.example/</loc>")
	assert.Contains(t, body, "<loc>https://fitmyphone.example/category/Clear Case</loc>")
	assert.Contains(t, body, "<loc>https://fitmyphone.example/accessory/a1</loc>")
}
