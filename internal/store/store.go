// Package store persists the awards catalog, the per-user vote ledger and the
// write-in log in Redis. Entities live in hashes keyed by id, with sibling
// sets as indexes:
//
//	category:<id>            category hash
//	category:<id>:nominees   set of nominee ids
//	industry:<slug>          set of category ids for an industry
//	nominee:<id>             nominee hash
//	vote:<user>:<category>   the user's current choice for the category
//	writein:<cat>:<nominee>  list of JSON write-in records, append-only
//	celebrity:<id>, movie:<id>, user:<id>, username:<name>
//
// All vote-counter mutation goes through SubmitVote; no other code path
// touches the nominee or category counters.
package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"

	"github.com/moviepulse/awards-voting-api/internal/models"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrNomineeNotFound   = errors.New("nominee not found")
	ErrCelebrityNotFound = errors.New("celebrity not found")
	ErrMovieNotFound     = errors.New("movie not found")
	ErrVoteNotFound      = errors.New("vote not found")
	ErrAlreadyVoted      = errors.New("already voted for this nominee")
	ErrCooldownActive    = errors.New("vote cannot be changed yet")
	ErrOtherImmutable    = errors.New("the Other placeholder cannot be removed")
	ErrUserExists        = errors.New("username already taken")
	ErrUserNotFound      = errors.New("user not found")
	ErrTxContention      = errors.New("vote transaction kept conflicting")
)

type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func categoryKey(id string) string         { return "category:" + id }
func categoryNomineesKey(id string) string { return "category:" + id + ":nominees" }
func industryKey(slug string) string       { return "industry:" + slug }
func nomineeKey(id string) string          { return "nominee:" + id }
func celebrityKey(id string) string        { return "celebrity:" + id }
func movieKey(id string) string            { return "movie:" + id }
func userKey(id string) string             { return "user:" + id }
func usernameKey(name string) string       { return "username:" + name }

func voteKey(userID, categoryID string) string {
	return "vote:" + userID + ":" + categoryID
}

func writeInKey(categoryID, nomineeID string) string {
	return "writein:" + categoryID + ":" + nomineeID
}

// IndustrySlug normalizes an industry name for indexing and lookup, so that
// "Pan India", "pan-india" and "PAN INDIA" all address the same index.
func IndustrySlug(industry string) string {
	var b strings.Builder
	lastDash := true // swallow leading separators
	for _, r := range strings.ToLower(strings.TrimSpace(industry)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func decodeCategory(data map[string]string) models.Category {
	var c models.Category
	mapstructure.Decode(data, &c)
	if t, err := time.Parse(time.RFC3339, data["voting_start"]); err == nil {
		c.VotingStart = t
	}
	if t, err := time.Parse(time.RFC3339, data["voting_end"]); err == nil {
		c.VotingEnd = t
	}
	c.TotalVotes, _ = strconv.ParseInt(data["total_votes"], 10, 64)
	return c
}

func decodeNominee(data map[string]string) models.Nominee {
	var n models.Nominee
	mapstructure.Decode(data, &n)
	n.IsOther = data["is_other"] == "true"
	n.Votes, _ = strconv.ParseInt(data["votes"], 10, 64)
	return n
}

func decodeUserVote(data map[string]string) models.UserVote {
	var v models.UserVote
	mapstructure.Decode(data, &v)
	if t, err := time.Parse(time.RFC3339, data["voted_at"]); err == nil {
		v.VotedAt = t
	}
	return v
}
