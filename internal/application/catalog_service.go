package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/authz"
	"github.com/revuehub/api/internal/domain/entity"
	repo "github.com/revuehub/api/internal/domain/repository"
	"github.com/revuehub/api/internal/infrastructure/search"
)

// CatalogService manages categories, genres and titles. Reads are public;
// writes require an admin actor.
type CatalogService struct {
	Categories repo.CategoryRepository
	Genres     repo.GenreRepository
	Titles     repo.TitleRepository
	Index      *search.TitleIndex
	Logger     *logrus.Logger
}

func NewCatalogService(categories repo.CategoryRepository, genres repo.GenreRepository, titles repo.TitleRepository, index *search.TitleIndex, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Categories: categories, Genres: genres, Titles: titles, Index: index, Logger: logger}
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor authz.Actor, name, slug string) (*entity.Category, error) {
	if err := requireAllowed(actor, authz.CanWriteCatalog(actor)); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: name, Slug: slug}
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, search string) ([]entity.Category, error) {
	return s.Categories.List(ctx, search)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, actor authz.Actor, slug string) error {
	if err := requireAllowed(actor, authz.CanWriteCatalog(actor)); err != nil {
		return err
	}
	return s.Categories.DeleteBySlug(ctx, slug)
}

func (s *CatalogService) CreateGenre(ctx context.Context, actor authz.Actor, name, slug string) (*entity.Genre, error) {
	if err := requireAllowed(actor, authz.CanWriteCatalog(actor)); err != nil {
		return nil, err
	}
	g := &entity.Genre{Name: name, Slug: slug}
	if err := s.Genres.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *CatalogService) ListGenres(ctx context.Context, search string) ([]entity.Genre, error) {
	return s.Genres.List(ctx, search)
}

func (s *CatalogService) DeleteGenre(ctx context.Context, actor authz.Actor, slug string) error {
	if err := requireAllowed(actor, authz.CanWriteCatalog(actor)); err != nil {
		return err
	}
	return s.Genres.DeleteBySlug(ctx, slug)
}

type TitleInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

func (s *CatalogService) CreateTitle(ctx context.Context, actor authz.Actor, in TitleInput) (*entity.Title, error) {
	if err := requireAllowed(actor, authz.CanWriteCatalog(actor)); err != nil {
		return nil, err
	}
	t := &entity.Title{Name: in.Name, Year: in.Year, Description: in.Description}
	if err := s.validateYear(in.Year); err != nil {
		return nil, err
	}
	if err := s.resolveRefs(ctx, t, in.CategorySlug, in.GenreSlugs); err != nil {
		return nil, err
	}
	if err := s.Titles.Create(ctx, t); err != nil {
		return nil, err
	}
	s.Index.Put(ctx, t)
	return t, nil
}

func (s *CatalogService) GetTitle(ctx context.Context, id int64) (*entity.Title, error) {
	return s.Titles.GetByID(ctx, id)
}

// ListTitles filters titles; a non-empty search goes through Elasticsearch
// when configured and falls back to a SQL name match otherwise.
func (s *CatalogService) ListTitles(ctx context.Context, f repo.TitleFilter, searchQ string) ([]entity.Title, error) {
	if searchQ != "" && s.Index.Enabled() {
		ids, err := s.Index.Search(ctx, searchQ, 50)
		if err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).Warn("title search unavailable, falling back to sql")
			}
		} else {
			out := make([]entity.Title, 0, len(ids))
			for _, id := range ids {
				t, err := s.Titles.GetByID(ctx, id)
				if err != nil {
					if apperr.KindOf(err) == apperr.KindNotFound {
						continue // index lag
					}
					return nil, err
				}
				out = append(out, *t)
			}
			return out, nil
		}
	}
	if searchQ != "" {
		f.Name = searchQ
	}
	return s.Titles.List(ctx, f)
}

// UpdateTitleInput is a partial update; nil fields stay untouched.
type UpdateTitleInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

func (s *CatalogService) UpdateTitle(ctx context.Context, actor authz.Actor, id int64, in UpdateTitleInput) (*entity.Title, error) {
	if err := requireAllowed(actor, authz.CanWriteCatalog(actor)); err != nil {
		return nil, err
	}
	t, err := s.Titles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Year != nil {
		if err := s.validateYear(*in.Year); err != nil {
			return nil, err
		}
		t.Year = *in.Year
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	catSlug := ""
	if in.CategorySlug != nil {
		catSlug = *in.CategorySlug
		t.Category = nil
	}
	var genreSlugs []string
	if in.GenreSlugs != nil {
		genreSlugs = *in.GenreSlugs
		t.Genres = nil
	}
	if err := s.resolveRefs(ctx, t, catSlug, genreSlugs); err != nil {
		return nil, err
	}
	if err := s.Titles.Update(ctx, t); err != nil {
		return nil, err
	}
	s.Index.Put(ctx, t)
	return t, nil
}

func (s *CatalogService) DeleteTitle(ctx context.Context, actor authz.Actor, id int64) error {
	if err := requireAllowed(actor, authz.CanWriteCatalog(actor)); err != nil {
		return err
	}
	if err := s.Titles.Delete(ctx, id); err != nil {
		return err
	}
	s.Index.Remove(ctx, id)
	return nil
}

func (s *CatalogService) validateYear(year int) error {
	if year > time.Now().Year() {
		return apperr.FieldErrors(map[string]string{"year": "cannot be in the future"})
	}
	return nil
}

// resolveRefs turns submitted slugs into stored references. Unknown slugs are
// validation errors, not 404s: the title is the resource here, the slugs are
// payload.
func (s *CatalogService) resolveRefs(ctx context.Context, t *entity.Title, categorySlug string, genreSlugs []string) error {
	if categorySlug != "" {
		c, err := s.Categories.GetBySlug(ctx, categorySlug)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return apperr.FieldErrors(map[string]string{"category": "unknown category slug"})
			}
			return err
		}
		t.Category = c
	}
	for _, slug := range genreSlugs {
		g, err := s.Genres.GetBySlug(ctx, slug)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return apperr.FieldErrors(map[string]string{"genre": "unknown genre slug: " + slug})
			}
			return err
		}
		t.Genres = append(t.Genres, *g)
	}
	return nil
}
