package api

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/core"
)

// StaticHandler serves the crawler-facing endpoints: a sitemap generated from
// live data and a robots.txt that keeps crawlers out of authenticated pages.
type StaticHandler struct {
	categoryService core.CategoryService
	searchService   core.SearchService
	clientURL       string
	logger          *zap.Logger
}

// NewStaticHandler creates a new StaticHandler. clientURL is the public
// frontend origin used as the base for every sitemap location.
func NewStaticHandler(cs core.CategoryService, ss core.SearchService, clientURL string, logger *zap.Logger) *StaticHandler {
	return &StaticHandler{
		categoryService: cs,
		searchService:   ss,
		clientURL:       strings.TrimRight(clientURL, "/"),
		logger:          logger,
	}
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap handles GET /sitemap.xml. It lists the home page, one page per
// category and one page per accessory group.
func (h *StaticHandler) Sitemap(c *gin.Context) {
	ctx := c.Request.Context()

	urlSet := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: h.clientURL + "/"}},
	}

	categories, err := h.categoryService.List(ctx)
	if err != nil {
		h.logger.Error("failed to build sitemap", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to generate sitemap")
		return
	}

	for _, category := range categories {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc: fmt.Sprintf("%s/category/%s", h.clientURL, category.Name),
		})

		accessories, listErr := h.searchService.ListByCategory(ctx, category.Name)
		if listErr != nil {
			h.logger.Warn("skipping category in sitemap", zap.String("category", category.Name), zap.Error(listErr))
			continue
		}
		for _, accessory := range accessories {
			urlSet.URLs = append(urlSet.URLs, sitemapURL{
				Loc: fmt.Sprintf("%s/accessory/%s", h.clientURL, accessory.ID),
			})
		}
	}

	c.XML(http.StatusOK, urlSet)
}

// Robots handles GET /robots.txt. Authenticated areas are kept out of search
// indexes.
func (h *StaticHandler) Robots(c *gin.Context) {
	body := strings.Join([]string{
		"User-agent: *",
		"Disallow: /admin/",
		"Disallow: /profile/",
		"Disallow: /settings/",
		"",
		"Sitemap: " + h.clientURL + "/sitemap.xml",
		"",
	}, "\n")
	c.String(http.StatusOK, body)
}
