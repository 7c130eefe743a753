package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/entity"
	"github.com/revuehub/api/internal/domain/repository"
)

type TitleRepository struct {
	pool *pgxpool.Pool
}

func NewTitleRepository(pool *pgxpool.Pool) *TitleRepository {
	return &TitleRepository{pool: pool}
}

// titleSelect aggregates the rating at read time; AVG over no rows is NULL,
// which scans into a nil *float64.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description,
	       c.id, c.name, c.slug,
	       AVG(r.score)::float8 AS rating
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN reviews r ON r.title_id = t.id
`

func scanTitle(rows pgx.Rows) (*entity.Title, error) {
	t := &entity.Title{}
	var (
		catID   *int64
		catName *string
		catSlug *string
	)
	if err := rows.Scan(&t.ID, &t.Name, &t.Year, &t.Description,
		&catID, &catName, &catSlug, &t.Rating); err != nil {
		return nil, err
	}
	if catID != nil {
		t.Category = &entity.Category{ID: *catID, Name: *catName, Slug: *catSlug}
	}
	return t, nil
}

func (r *TitleRepository) Create(ctx context.Context, t *entity.Title) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var categoryID *int64
	if t.Category != nil {
		categoryID = &t.Category.ID
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.Name, t.Year, t.Description, categoryID).Scan(&t.ID); err != nil {
		return err
	}
	for _, g := range t.Genres {
		if _, err := tx.Exec(ctx, `
			INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2)
		`, t.ID, g.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *TitleRepository) GetByID(ctx context.Context, id int64) (*entity.Title, error) {
	rows, err := r.pool.Query(ctx, titleSelect+`
		WHERE t.id = $1
		GROUP BY t.id, c.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, apperr.NotFound("title")
	}
	t, err := scanTitle(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.attachGenres(ctx, []*entity.Title{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TitleRepository) List(ctx context.Context, f repository.TitleFilter) ([]entity.Title, error) {
	rows, err := r.pool.Query(ctx, titleSelect+`
		WHERE ($1 = '' OR c.slug = $1)
		  AND ($2 = '' OR EXISTS (
		        SELECT 1 FROM title_genres tg
		        JOIN genres g ON g.id = tg.genre_id
		        WHERE tg.title_id = t.id AND g.slug = $2))
		  AND ($3 = '' OR t.name ILIKE '%' || $3 || '%')
		  AND ($4 = 0 OR t.year = $4)
		GROUP BY t.id, c.id
		ORDER BY t.id
	`, f.CategorySlug, f.GenreSlug, f.Name, f.Year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Keep scanned rows as pointers until genres are attached; copying into
	// the result slice before attachGenres would strand the writes.
	ptrs := make([]*entity.Title, 0)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachGenres(ctx, ptrs); err != nil {
		return nil, err
	}
	return flattenTitles(ptrs), nil
}

// flattenTitles copies fully assembled titles into the slice the repository
// contract returns.
func flattenTitles(ptrs []*entity.Title) []entity.Title {
	titles := make([]entity.Title, len(ptrs))
	for i, t := range ptrs {
		titles[i] = *t
	}
	return titles
}

func (r *TitleRepository) Update(ctx context.Context, t *entity.Title) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var categoryID *int64
	if t.Category != nil {
		categoryID = &t.Category.ID
	}
	res, err := tx.Exec(ctx, `
		UPDATE titles
		SET name = $1, year = $2, description = $3, category_id = $4
		WHERE id = $5
	`, t.Name, t.Year, t.Description, categoryID, t.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("title")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, t.ID); err != nil {
		return err
	}
	for _, g := range t.Genres {
		if _, err := tx.Exec(ctx, `
			INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2)
		`, t.ID, g.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *TitleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("title")
	}
	return nil
}

// attachGenres loads genres for all given titles in one query.
func (r *TitleRepository) attachGenres(ctx context.Context, titles []*entity.Title) error {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(titles))
	byID := make(map[int64]*entity.Title, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
		byID[t.ID] = t
		t.Genres = make([]entity.Genre, 0)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT tg.title_id, g.id, g.name, g.slug
		FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.slug
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var g entity.Genre
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return err
		}
		if t, ok := byID[titleID]; ok {
			t.Genres = append(t.Genres, g)
		}
	}
	return rows.Err()
}

var _ repository.TitleRepository = (*TitleRepository)(nil)
