package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/entity"
	"github.com/revuehub/api/internal/domain/repository"
)

// CategoryRepository and GenreRepository share one implementation
// parameterized by table name; both tables have the same shape.
type refRepository struct {
	pool  *pgxpool.Pool
	table string
}

func (r *refRepository) create(ctx context.Context, name, slug string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO `+r.table+` (name, slug) VALUES ($1, $2) RETURNING id`,
		name, slug).Scan(&id)
	if violatesUnique(err, "") {
		return 0, apperr.Validationf("slug %q already in use", slug)
	}
	return id, err
}

func (r *refRepository) getBySlug(ctx context.Context, slug string) (int64, string, error) {
	var id int64
	var name string
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM `+r.table+` WHERE slug = $1`, slug).Scan(&id, &name)
	return id, name, err
}

func (r *refRepository) list(ctx context.Context, search string) (pgx.Rows, error) {
	return r.pool.Query(ctx, `
		SELECT id, name, slug FROM `+r.table+`
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY slug
	`, search)
}

func (r *refRepository) deleteBySlug(ctx context.Context, slug, kind string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM `+r.table+` WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound(kind)
	}
	return nil
}

type CategoryRepository struct {
	ref refRepository
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{ref: refRepository{pool: pool, table: "categories"}}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	id, err := r.ref.create(ctx, c.Name, c.Slug)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	id, name, err := r.ref.getBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("category")
	}
	if err != nil {
		return nil, err
	}
	return &entity.Category{ID: id, Name: name, Slug: slug}, nil
}

func (r *CategoryRepository) List(ctx context.Context, search string) ([]entity.Category, error) {
	rows, err := r.ref.list(ctx, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.ref.deleteBySlug(ctx, slug, "category")
}

type GenreRepository struct {
	ref refRepository
}

func NewGenreRepository(pool *pgxpool.Pool) *GenreRepository {
	return &GenreRepository{ref: refRepository{pool: pool, table: "genres"}}
}

func (r *GenreRepository) Create(ctx context.Context, g *entity.Genre) error {
	id, err := r.ref.create(ctx, g.Name, g.Slug)
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *GenreRepository) GetBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	id, name, err := r.ref.getBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("genre")
	}
	if err != nil {
		return nil, err
	}
	return &entity.Genre{ID: id, Name: name, Slug: slug}, nil
}

func (r *GenreRepository) List(ctx context.Context, search string) ([]entity.Genre, error) {
	rows, err := r.ref.list(ctx, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Genre, 0)
	for rows.Next() {
		var g entity.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.ref.deleteBySlug(ctx, slug, "genre")
}

var (
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.GenreRepository    = (*GenreRepository)(nil)
)
