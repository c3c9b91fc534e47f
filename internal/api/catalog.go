package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moviepulse/awards-voting-api/internal/store"
)

// Catalog handles GET /api/catalog?industry=...
func (a *API) Catalog(c *gin.Context) {
	industry := c.Query("industry")
	if industry == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please pass industry"})
		return
	}

	cats, err := a.catalog.ByIndustry(c.Request.Context(), industry)
	if err != nil {
		a.log.Error().Err(err).Str("industry", industry).Msg("catalog load failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch catalog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// Categories handles GET /api/categories
func (a *API) Categories(c *gin.Context) {
	cats, err := a.catalog.All(c.Request.Context())
	if err != nil {
		a.log.Error().Err(err).Msg("category listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// Category handles GET /api/categories/:id
func (a *API) Category(c *gin.Context) {
	cat, err := a.catalog.Category(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cat})
}

// WriteIns handles GET /api/categories/:id/nominees/:nominee_id/writeins
func (a *API) WriteIns(c *gin.Context) {
	categoryID := c.Param("id")
	if _, err := a.store.GetCategory(c.Request.Context(), categoryID); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch write-ins"})
		return
	}

	recs, err := a.voting.WriteIns(c.Request.Context(), categoryID, c.Param("nominee_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch write-ins"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"writeins": recs})
}
