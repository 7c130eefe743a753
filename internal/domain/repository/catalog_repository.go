package repository

import (
	"context"

	"github.com/revuehub/api/internal/domain/entity"
)

// CategoryRepository manages catalog categories, addressed by slug.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context, search string) ([]entity.Category, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

// GenreRepository manages catalog genres, addressed by slug.
type GenreRepository interface {
	Create(ctx context.Context, g *entity.Genre) error
	GetBySlug(ctx context.Context, slug string) (*entity.Genre, error)
	List(ctx context.Context, search string) ([]entity.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

// TitleFilter narrows a title listing. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

// TitleRepository manages titles. Reads return the rating as the SQL mean of
// review scores, nil when no reviews exist.
type TitleRepository interface {
	Create(ctx context.Context, t *entity.Title) error
	GetByID(ctx context.Context, id int64) (*entity.Title, error)
	List(ctx context.Context, f TitleFilter) ([]entity.Title, error)
	Update(ctx context.Context, t *entity.Title) error
	Delete(ctx context.Context, id int64) error
}
