package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moviepulse/awards-voting-api/internal/models"
)

// maxTxRetries bounds the optimistic retry loop on WATCH conflicts. A
// conflict on the vote key only happens when the same user races their own
// submission, so contention is short-lived.
const maxTxRetries = 10

// GetUserVote returns the user's current choice for a category.
func (s *Store) GetUserVote(ctx context.Context, userID, categoryID string) (*models.UserVote, error) {
	data, err := s.rdb.HGetAll(ctx, voteKey(userID, categoryID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrVoteNotFound
	}
	vote := decodeUserVote(data)
	return &vote, nil
}

// SubmitVote records or changes a user's vote as a single transaction:
//
//  1. decrement the previously chosen nominee's counter, if the prior
//     choice was a numeric nominee that still exists;
//  2. increment the new nominee's counter, unless it is the "Other"
//     placeholder;
//  3. upsert the UserVote record;
//  4. increment the category total only when no prior vote existed.
//
// The duplicate-choice and cooldown checks run against the watched read of
// the vote key, so a racing duplicate submission from the same user cannot
// slip past them. Counter movements use HINCRBY and are atomic on their own;
// the WATCH therefore only needs to cover the vote key.
func (s *Store) SubmitVote(ctx context.Context, userID, categoryID, nomineeID, otherText string, now time.Time, cooldown time.Duration) (*models.VoteReceipt, error) {
	vKey := voteKey(userID, categoryID)
	var receipt *models.VoteReceipt

	txf := func(tx *redis.Tx) error {
		prior, err := tx.HGetAll(ctx, vKey).Result()
		if err != nil {
			return err
		}

		priorNominee := prior["nominee_id"]
		firstVote := priorNominee == ""
		if !firstVote {
			if priorNominee == nomineeID {
				return ErrAlreadyVoted
			}
			// A timestamp that fails to parse must not open the change
			// window early; fail closed.
			votedAt, perr := time.Parse(time.RFC3339, prior["voted_at"])
			if perr != nil || now.Sub(votedAt) < cooldown {
				return ErrCooldownActive
			}
		}

		target, err := tx.HGetAll(ctx, nomineeKey(nomineeID)).Result()
		if err != nil {
			return err
		}
		if len(target) == 0 || target["category_id"] != categoryID {
			return ErrNomineeNotFound
		}
		targetOther := target["is_other"] == "true"

		// When the prior nominee was removed by an admin its hash is gone;
		// decrementing it would recreate the key with a negative counter.
		priorOther := false
		priorGone := false
		if !firstVote {
			was, err := tx.HGet(ctx, nomineeKey(priorNominee), "is_other").Result()
			switch {
			case errors.Is(err, redis.Nil):
				priorGone = true
			case err != nil:
				return err
			default:
				priorOther = was == "true"
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if !firstVote && !priorOther && !priorGone {
				pipe.HIncrBy(ctx, nomineeKey(priorNominee), "votes", -1)
			}
			if !targetOther {
				pipe.HIncrBy(ctx, nomineeKey(nomineeID), "votes", 1)
			}
			pipe.HSet(ctx, vKey, map[string]interface{}{
				"user_id":     userID,
				"category_id": categoryID,
				"nominee_id":  nomineeID,
				"voted_at":    now.Format(time.RFC3339),
				"other_text":  otherText,
			})
			if firstVote {
				pipe.HIncrBy(ctx, categoryKey(categoryID), "total_votes", 1)
			}
			return nil
		})
		if err != nil {
			return err
		}

		receipt = &models.VoteReceipt{
			CategoryID:        categoryID,
			NomineeID:         nomineeID,
			PreviousNomineeID: priorNominee,
			FirstVote:         firstVote,
			VotedAt:           now,
		}
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, vKey)
		if err == nil {
			return receipt, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrTxContention
}

// AppendWriteIn logs a free-text suggestion. The log is append-only and
// deliberately outside the vote transaction.
func (s *Store) AppendWriteIn(ctx context.Context, rec models.WriteInChoice) error {
	rec.DisplayName = ""
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, writeInKey(rec.CategoryID, rec.NomineeID), payload).Err()
}

// WriteIns returns every logged suggestion for a (category, placeholder
// nominee) pair, oldest first. Corrupt entries are skipped.
func (s *Store) WriteIns(ctx context.Context, categoryID, nomineeID string) ([]models.WriteInChoice, error) {
	raw, err := s.rdb.LRange(ctx, writeInKey(categoryID, nomineeID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	recs := make([]models.WriteInChoice, 0, len(raw))
	for _, item := range raw {
		var rec models.WriteInChoice
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
