// Package catalog reads award categories with their nominees resolved for
// display: celebrity name/image and movie title/poster are denormalized onto
// each nominee, and the "Other" placeholder always sorts last.
package catalog

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/moviepulse/awards-voting-api/internal/models"
	"github.com/moviepulse/awards-voting-api/internal/store"
)

// Placeholder display data for nominees whose celebrity or movie reference
// fails to resolve. A broken reference degrades the one nominee, never the
// whole catalog load.
const (
	placeholderCelebrity = "Unknown"
	placeholderMovie     = "Untitled"
	otherDisplayName     = "Other"
)

type Reader struct {
	store *store.Store
	log   zerolog.Logger
}

func NewReader(st *store.Store, log zerolog.Logger) *Reader {
	return &Reader{store: st, log: log}
}

// ByIndustry returns every category whose industry matches the given name
// after slug normalization ("Pan India" and "pan-india" are the same
// industry), each with fully resolved nominees.
func (r *Reader) ByIndustry(ctx context.Context, industry string) ([]models.CategoryWithNominees, error) {
	cats, err := r.store.CategoriesByIndustry(ctx, store.IndustrySlug(industry))
	if err != nil {
		return nil, err
	}
	return r.withNominees(ctx, cats)
}

// All returns every category across every industry, each with fully
// resolved nominees.
func (r *Reader) All(ctx context.Context) ([]models.CategoryWithNominees, error) {
	cats, err := r.store.AllCategories(ctx)
	if err != nil {
		return nil, err
	}
	return r.withNominees(ctx, cats)
}

func (r *Reader) withNominees(ctx context.Context, cats []models.Category) ([]models.CategoryWithNominees, error) {
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })

	out := make([]models.CategoryWithNominees, 0, len(cats))
	for _, cat := range cats {
		noms, err := r.resolveNominees(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.CategoryWithNominees{Category: cat, Nominees: noms})
	}
	return out, nil
}

// Category returns a single category with resolved nominees.
func (r *Reader) Category(ctx context.Context, id string) (*models.CategoryWithNominees, error) {
	cat, err := r.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	noms, err := r.resolveNominees(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CategoryWithNominees{Category: *cat, Nominees: noms}, nil
}

func (r *Reader) resolveNominees(ctx context.Context, categoryID string) ([]models.Nominee, error) {
	noms, err := r.store.NomineesByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	for i := range noms {
		r.denormalize(ctx, &noms[i])
	}
	sort.SliceStable(noms, func(i, j int) bool {
		if noms[i].IsOther != noms[j].IsOther {
			return !noms[i].IsOther // "Other" is always last
		}
		return noms[i].CelebrityName < noms[j].CelebrityName
	})
	return noms, nil
}

func (r *Reader) denormalize(ctx context.Context, n *models.Nominee) {
	if n.IsOther {
		n.CelebrityName = otherDisplayName
		return
	}

	cel, err := r.store.GetCelebrity(ctx, n.CelebrityID)
	if err != nil {
		r.log.Debug().Err(err).Str("nominee", n.ID).Str("celebrity", n.CelebrityID).
			Msg("celebrity lookup failed, using placeholder")
		n.CelebrityName = placeholderCelebrity
	} else {
		n.CelebrityName = cel.Name
		n.CelebrityImage = cel.Image
	}

	if n.MovieID == "" {
		return
	}
	mov, err := r.store.GetMovie(ctx, n.MovieID)
	if err != nil {
		r.log.Debug().Err(err).Str("nominee", n.ID).Str("movie", n.MovieID).
			Msg("movie lookup failed, using placeholder")
		n.MovieTitle = placeholderMovie
		return
	}
	n.MovieTitle = mov.Title
	n.MoviePoster = mov.Poster
}
