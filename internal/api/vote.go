package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moviepulse/awards-voting-api/internal/metrics"
	"github.com/moviepulse/awards-voting-api/internal/store"
	"github.com/moviepulse/awards-voting-api/internal/voting"
)

// VotePayload is the expected vote request.
type VotePayload struct {
	NomineeID string `json:"nominee_id" binding:"required"`
	OtherText string `json:"other_text"`
}

// SubmitVote handles POST /api/categories/:id/vote
func (a *API) SubmitVote(c *gin.Context) {
	var payload VotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote payload"})
		return
	}

	receipt, err := a.voting.Submit(c.Request.Context(), c.GetString("userID"), voting.Submission{
		CategoryID: c.Param("id"),
		NomineeID:  payload.NomineeID,
		OtherText:  payload.OtherText,
	})
	if err != nil {
		a.voteError(c, err)
		return
	}

	metrics.RecordVote(metrics.OutcomeAccepted)
	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded successfully", "receipt": receipt})
}

// MyVote handles GET /api/categories/:id/vote
func (a *API) MyVote(c *gin.Context) {
	vote, err := a.voting.UserVote(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrVoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No vote recorded for this category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vote"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vote})
}

func (a *API) voteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, voting.ErrUnauthenticated):
		metrics.RecordVote(metrics.OutcomeRejected)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, store.ErrAlreadyVoted):
		metrics.RecordVote(metrics.OutcomeAlreadyVoted)
		c.JSON(http.StatusConflict, gin.H{"error": "You already voted for this nominee"})
	case errors.Is(err, store.ErrCooldownActive):
		metrics.RecordVote(metrics.OutcomeCooldown)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Votes can be changed once every 24 hours"})
	case errors.Is(err, voting.ErrWriteInRequired):
		metrics.RecordVote(metrics.OutcomeRejected)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a name for the Other choice"})
	case errors.Is(err, voting.ErrVotingClosed):
		metrics.RecordVote(metrics.OutcomeRejected)
		c.JSON(http.StatusForbidden, gin.H{"error": "Voting is closed for this category"})
	case errors.Is(err, store.ErrCategoryNotFound):
		metrics.RecordVote(metrics.OutcomeRejected)
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
	case errors.Is(err, store.ErrNomineeNotFound):
		metrics.RecordVote(metrics.OutcomeRejected)
		c.JSON(http.StatusNotFound, gin.H{"error": "Nominee not found"})
	default:
		metrics.RecordVote(metrics.OutcomeError)
		a.log.Error().Err(err).Msg("vote submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
	}
}
