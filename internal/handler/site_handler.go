package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kevo-dev/Portfolio2/internal/kvstore"
	"github.com/kevo-dev/Portfolio2/internal/navigation"
	"github.com/kevo-dev/Portfolio2/internal/profile"
)

const healthKey = "health-probe"

type SiteHandler struct {
	profile *profile.Profile
	store   kvstore.Store
	now     func() time.Time
}

func NewSiteHandler(p *profile.Profile, store kvstore.Store) *SiteHandler {
	return &SiteHandler{profile: p, store: store, now: time.Now}
}

func (h *SiteHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.profile)
}

// GetView resolves a browser address to the view it shows and the canonical
// address for that view.
func (h *SiteHandler) GetView(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		raw = h.profile.Site.BaseURL + "/"
	}

	loc := navigation.Decode(raw)
	c.JSON(http.StatusOK, ViewResponse{
		View:      string(loc.View),
		ArticleID: loc.ArticleID,
		Canonical: navigation.Encode(raw, loc),
	})
}

func (h *SiteHandler) GetSitemap(c *gin.Context) {
	base := h.profile.Site.BaseURL
	lastMod := h.now().UTC().Format("2006-01-02")

	c.XML(http.StatusOK, URLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []SitemapURL{
			{Loc: base, LastMod: lastMod, ChangeFreq: "weekly", Priority: 1},
			{Loc: base + "/blog", LastMod: lastMod, ChangeFreq: "daily", Priority: 0.8},
		},
	})
}

func (h *SiteHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	_, err := h.store.Get(ctx, healthKey)
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"store":  "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"store":  "connected",
	})
}
