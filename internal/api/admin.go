package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moviepulse/awards-voting-api/internal/store"
)

type CreateCategoryRequest struct {
	Industry    string    `json:"industry" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	VotingStart time.Time `json:"voting_start" binding:"required"`
	VotingEnd   time.Time `json:"voting_end" binding:"required,gtfield=VotingStart"`
}

type UpdateCategoryRequest struct {
	Name        *string    `json:"name"`
	VotingStart *time.Time `json:"voting_start"`
	VotingEnd   *time.Time `json:"voting_end"`
}

type AddNomineeRequest struct {
	CelebrityID string `json:"celebrity_id" binding:"required"`
	MovieID     string `json:"movie_id"`
}

type CreateCelebrityRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

type CreateMovieRequest struct {
	Title  string `json:"title" binding:"required"`
	Poster string `json:"poster"`
}

// CreateCategory handles POST /api/admin/categories. Every category gets its
// "Other" placeholder nominee at creation time.
func (a *API) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, other, err := a.store.CreateCategory(c.Request.Context(), req.Industry, req.Name,
		req.VotingStart, req.VotingEnd, c.GetString("userID"))
	if err != nil {
		a.log.Error().Err(err).Msg("failed to create category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": cat, "other_nominee": other})
}

// UpdateCategory handles PUT /api/admin/categories/:id
func (a *API) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.VotingStart != nil && req.VotingEnd != nil && !req.VotingEnd.After(*req.VotingStart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voting_end must be after voting_start"})
		return
	}

	cat, err := a.store.UpdateCategory(c.Request.Context(), c.Param("id"), req.Name, req.VotingStart, req.VotingEnd)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat})
}

// AddNominee handles POST /api/admin/categories/:id/nominees
func (a *API) AddNominee(c *gin.Context) {
	var req AddNomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := a.store.GetCelebrity(ctx, req.CelebrityID); err != nil {
		if errors.Is(err, store.ErrCelebrityNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown celebrity"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add nominee"})
		return
	}
	if req.MovieID != "" {
		if _, err := a.store.GetMovie(ctx, req.MovieID); err != nil {
			if errors.Is(err, store.ErrMovieNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown movie"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add nominee"})
			return
		}
	}

	nom, err := a.store.CreateNominee(ctx, c.Param("id"), req.CelebrityID, req.MovieID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add nominee"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"nominee": nom})
}

// DeleteNominee handles DELETE /api/admin/nominees/:id
func (a *API) DeleteNominee(c *gin.Context) {
	err := a.store.DeleteNominee(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Nominee deleted successfully"})
	case errors.Is(err, store.ErrNomineeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Nominee not found"})
	case errors.Is(err, store.ErrOtherImmutable):
		c.JSON(http.StatusForbidden, gin.H{"error": "The Other option cannot be removed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete nominee"})
	}
}

// CreateCelebrity handles POST /api/admin/celebrities
func (a *API) CreateCelebrity(c *gin.Context) {
	var req CreateCelebrityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cel, err := a.store.PutCelebrity(c.Request.Context(), req.Name, req.Image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create celebrity"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"celebrity": cel})
}

// CreateMovie handles POST /api/admin/movies
func (a *API) CreateMovie(c *gin.Context) {
	var req CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mov, err := a.store.PutMovie(c.Request.Context(), req.Title, req.Poster)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create movie"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"movie": mov})
}
