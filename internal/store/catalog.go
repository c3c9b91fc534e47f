package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/moviepulse/awards-voting-api/internal/models"
)

// CreateCategory persists a new category and its auto-generated "Other"
// placeholder nominee, and indexes the category under its industry slug.
func (s *Store) CreateCategory(ctx context.Context, industry, name string, start, end time.Time, createdBy string) (*models.Category, *models.Nominee, error) {
	cat := models.Category{
		ID:          uuid.New().String(),
		Industry:    industry,
		Name:        name,
		VotingStart: start,
		VotingEnd:   end,
		CreatedBy:   createdBy,
	}
	other := models.Nominee{
		ID:         uuid.New().String(),
		CategoryID: cat.ID,
		IsOther:    true,
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, categoryKey(cat.ID), map[string]interface{}{
		"id":           cat.ID,
		"industry":     cat.Industry,
		"name":         cat.Name,
		"voting_start": cat.VotingStart.Format(time.RFC3339),
		"voting_end":   cat.VotingEnd.Format(time.RFC3339),
		"total_votes":  0,
		"created_by":   cat.CreatedBy,
	})
	pipe.SAdd(ctx, industryKey(IndustrySlug(industry)), cat.ID)
	pipe.HSet(ctx, nomineeKey(other.ID), map[string]interface{}{
		"id":          other.ID,
		"category_id": other.CategoryID,
		"is_other":    "true",
		"votes":       0,
	})
	pipe.SAdd(ctx, categoryNomineesKey(cat.ID), other.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, nil, err
	}
	return &cat, &other, nil
}

// UpdateCategory edits the display name and voting window. The industry tag
// is immutable once the category is indexed.
func (s *Store) UpdateCategory(ctx context.Context, id string, name *string, start, end *time.Time) (*models.Category, error) {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if name != nil {
		fields["name"] = *name
	}
	if start != nil {
		fields["voting_start"] = start.Format(time.RFC3339)
	}
	if end != nil {
		fields["voting_end"] = end.Format(time.RFC3339)
	}
	if len(fields) > 0 {
		if err := s.rdb.HSet(ctx, categoryKey(id), fields).Err(); err != nil {
			return nil, err
		}
	}
	return s.GetCategory(ctx, id)
}

func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	data, err := s.rdb.HGetAll(ctx, categoryKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrCategoryNotFound
	}
	cat := decodeCategory(data)
	return &cat, nil
}

// CategoriesByIndustry returns the categories indexed under an industry
// slug. Individual categories that fail to load are skipped rather than
// failing the whole read.
func (s *Store) CategoriesByIndustry(ctx context.Context, slug string) ([]models.Category, error) {
	ids, err := s.rdb.SMembers(ctx, industryKey(slug)).Result()
	if err != nil {
		return nil, err
	}
	cats := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		cat, err := s.GetCategory(ctx, id)
		if err != nil {
			continue
		}
		cats = append(cats, *cat)
	}
	return cats, nil
}

// AllCategories scans the keyspace for every category hash.
func (s *Store) AllCategories(ctx context.Context) ([]models.Category, error) {
	var cursor uint64
	var keys []string
	var err error
	cats := make([]models.Category, 0)
	for {
		keys, cursor, err = s.rdb.Scan(ctx, cursor, "category:*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			if strings.Contains(key, ":nominees") {
				continue // skip index keys
			}
			data, err := s.rdb.HGetAll(ctx, key).Result()
			if err != nil || len(data) == 0 {
				continue
			}
			cats = append(cats, decodeCategory(data))
		}
		if cursor == 0 {
			break
		}
	}
	return cats, nil
}

// CreateNominee adds a votable option to an existing category.
func (s *Store) CreateNominee(ctx context.Context, categoryID, celebrityID, movieID string) (*models.Nominee, error) {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	nom := models.Nominee{
		ID:          uuid.New().String(),
		CategoryID:  categoryID,
		CelebrityID: celebrityID,
		MovieID:     movieID,
	}
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, nomineeKey(nom.ID), map[string]interface{}{
		"id":           nom.ID,
		"category_id":  nom.CategoryID,
		"celebrity_id": nom.CelebrityID,
		"movie_id":     nom.MovieID,
		"is_other":     "false",
		"votes":        0,
	})
	pipe.SAdd(ctx, categoryNomineesKey(categoryID), nom.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return &nom, nil
}

func (s *Store) GetNominee(ctx context.Context, id string) (*models.Nominee, error) {
	data, err := s.rdb.HGetAll(ctx, nomineeKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNomineeNotFound
	}
	nom := decodeNominee(data)
	return &nom, nil
}

// NomineesByCategory loads every nominee of a category. Dangling ids in the
// index set are skipped.
func (s *Store) NomineesByCategory(ctx context.Context, categoryID string) ([]models.Nominee, error) {
	ids, err := s.rdb.SMembers(ctx, categoryNomineesKey(categoryID)).Result()
	if err != nil {
		return nil, err
	}
	noms := make([]models.Nominee, 0, len(ids))
	for _, id := range ids {
		nom, err := s.GetNominee(ctx, id)
		if err != nil {
			continue
		}
		noms = append(noms, *nom)
	}
	return noms, nil
}

// DeleteNominee removes a nominee. The "Other" placeholder is refused: every
// category keeps exactly one for its lifetime.
func (s *Store) DeleteNominee(ctx context.Context, id string) error {
	nom, err := s.GetNominee(ctx, id)
	if err != nil {
		return err
	}
	if nom.IsOther {
		return ErrOtherImmutable
	}
	pipe := s.rdb.TxPipeline()
	pipe.SRem(ctx, categoryNomineesKey(nom.CategoryID), id)
	pipe.Del(ctx, nomineeKey(id))
	_, err = pipe.Exec(ctx)
	return err
}

// PutCelebrity and PutMovie seed the read-only display catalog the nominees
// denormalize from.
func (s *Store) PutCelebrity(ctx context.Context, name, image string) (*models.Celebrity, error) {
	cel := models.Celebrity{ID: uuid.New().String(), Name: name, Image: image}
	err := s.rdb.HSet(ctx, celebrityKey(cel.ID), map[string]interface{}{
		"id":    cel.ID,
		"name":  cel.Name,
		"image": cel.Image,
	}).Err()
	if err != nil {
		return nil, err
	}
	return &cel, nil
}

func (s *Store) GetCelebrity(ctx context.Context, id string) (*models.Celebrity, error) {
	data, err := s.rdb.HGetAll(ctx, celebrityKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrCelebrityNotFound
	}
	var cel models.Celebrity
	mapstructure.Decode(data, &cel)
	return &cel, nil
}

func (s *Store) PutMovie(ctx context.Context, title, poster string) (*models.Movie, error) {
	mov := models.Movie{ID: uuid.New().String(), Title: title, Poster: poster}
	err := s.rdb.HSet(ctx, movieKey(mov.ID), map[string]interface{}{
		"id":     mov.ID,
		"title":  mov.Title,
		"poster": mov.Poster,
	}).Err()
	if err != nil {
		return nil, err
	}
	return &mov, nil
}

func (s *Store) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	data, err := s.rdb.HGetAll(ctx, movieKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrMovieNotFound
	}
	var mov models.Movie
	mapstructure.Decode(data, &mov)
	return &mov, nil
}
