// Package voting implements the award-vote workflow: submission with the
// cooldown rule, the write-in ("Other") collector, and the write-in viewer.
//
// The state machine per (user, category) is NoVote → Voted(nominee, ts);
// from Voted, only a transition to a different nominee at least one cooldown
// after ts is allowed. Votes are never retracted.
package voting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviepulse/awards-voting-api/internal/models"
	"github.com/moviepulse/awards-voting-api/internal/store"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrWriteInRequired = errors.New("write-in text required for the Other nominee")
	ErrVotingClosed    = errors.New("category is not open for voting")
)

type Service struct {
	store    *store.Store
	cooldown time.Duration
	log      zerolog.Logger

	// Now is the clock used for window and cooldown checks; tests override it.
	Now func() time.Time
}

func New(st *store.Store, cooldown time.Duration, log zerolog.Logger) *Service {
	return &Service{store: st, cooldown: cooldown, log: log, Now: time.Now}
}

// Submission is one user-initiated vote action.
type Submission struct {
	CategoryID string
	NomineeID  string
	OtherText  string
}

// Submit validates a submission and hands it to the store transaction.
// OtherText is required for the "Other" placeholder and ignored otherwise.
func (s *Service) Submit(ctx context.Context, userID string, sub Submission) (*models.VoteReceipt, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	cat, err := s.store.GetCategory(ctx, sub.CategoryID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	if now.Before(cat.VotingStart) || now.After(cat.VotingEnd) {
		return nil, ErrVotingClosed
	}

	nom, err := s.store.GetNominee(ctx, sub.NomineeID)
	if err != nil {
		return nil, err
	}
	if nom.CategoryID != sub.CategoryID {
		return nil, store.ErrNomineeNotFound
	}

	text := strings.TrimSpace(sub.OtherText)
	if nom.IsOther && text == "" {
		return nil, ErrWriteInRequired
	}
	if !nom.IsOther {
		text = ""
	}

	receipt, err := s.store.SubmitVote(ctx, userID, sub.CategoryID, sub.NomineeID, text, now, s.cooldown)
	if err != nil {
		return nil, err
	}

	if nom.IsOther {
		rec := models.WriteInChoice{
			CategoryID:  sub.CategoryID,
			NomineeID:   sub.NomineeID,
			UserID:      userID,
			Text:        text,
			SubmittedAt: now,
		}
		// The vote itself is committed; the suggestion log is best-effort.
		if err := s.store.AppendWriteIn(ctx, rec); err != nil {
			s.log.Error().Err(err).Str("category", sub.CategoryID).Str("user", userID).
				Msg("failed to append write-in record")
		}
	}

	s.log.Info().Str("category", sub.CategoryID).Str("nominee", sub.NomineeID).
		Str("user", userID).Bool("first_vote", receipt.FirstVote).Msg("vote recorded")
	return receipt, nil
}

// UserVote returns the caller's current choice for a category.
func (s *Service) UserVote(ctx context.Context, userID, categoryID string) (*models.UserVote, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.store.GetUserVote(ctx, userID, categoryID)
}

// WriteIns lists the logged suggestions for a (category, placeholder) pair,
// each annotated with a best-effort display name: the submitter's username
// when the profile resolves, otherwise a truncated user id.
func (s *Service) WriteIns(ctx context.Context, categoryID, nomineeID string) ([]models.WriteInChoice, error) {
	recs, err := s.store.WriteIns(ctx, categoryID, nomineeID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	for i := range recs {
		name, ok := names[recs[i].UserID]
		if !ok {
			if u, err := s.store.GetUser(ctx, recs[i].UserID); err == nil {
				name = u.Username
			} else {
				name = truncateID(recs[i].UserID)
			}
			names[recs[i].UserID] = name
		}
		recs[i].DisplayName = name
	}
	return recs, nil
}

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
