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

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date
	`, rv.TitleID, rv.AuthorID, rv.Text, rv.Score)

	err := row.Scan(&rv.ID, &rv.PubDate)
	if violatesUnique(err, "unique_review") {
		return apperr.Conflict(repository.DuplicateReviewMessage)
	}
	return err
}

func (r *ReviewRepository) GetByID(ctx context.Context, titleID, reviewID int64) (*entity.Review, error) {
	rv := &entity.Review{}
	row := r.pool.QueryRow(ctx, `
		SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.pub_date
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1 AND r.title_id = $2
	`, reviewID, titleID)
	if err := row.Scan(&rv.ID, &rv.TitleID, &rv.AuthorID, &rv.AuthorUsername,
		&rv.Text, &rv.Score, &rv.PubDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("review")
		}
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepository) ListByTitle(ctx context.Context, titleID int64) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.pub_date
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.pub_date
	`, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Review, 0)
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.TitleID, &rv.AuthorID, &rv.AuthorUsername,
			&rv.Text, &rv.Score, &rv.PubDate); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *ReviewRepository) ExistsByTitleAndAuthor(ctx context.Context, titleID int64, authorID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM reviews WHERE title_id = $1 AND author_id = $2)
	`, titleID, authorID).Scan(&exists)
	return exists, err
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE reviews SET text = $1, score = $2 WHERE id = $3
	`, rv.Text, rv.Score, rv.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("review")
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, titleID, reviewID int64) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM reviews WHERE id = $1 AND title_id = $2
	`, reviewID, titleID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("review")
	}
	return nil
}

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (review_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, pub_date
	`, c.ReviewID, c.AuthorID, c.Text)
	return row.Scan(&c.ID, &c.PubDate)
}

func (r *CommentRepository) GetByID(ctx context.Context, reviewID, commentID int64) (*entity.Comment, error) {
	c := &entity.Comment{}
	row := r.pool.QueryRow(ctx, `
		SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.pub_date
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1 AND c.review_id = $2
	`, commentID, reviewID)
	if err := row.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.AuthorUsername,
		&c.Text, &c.PubDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("comment")
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) ListByReview(ctx context.Context, reviewID int64) ([]entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.pub_date
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.review_id = $1
		ORDER BY c.pub_date
	`, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Comment, 0)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.AuthorUsername,
			&c.Text, &c.PubDate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	res, err := r.pool.Exec(ctx, `UPDATE comments SET text = $1 WHERE id = $2`, c.Text, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("comment")
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, reviewID, commentID int64) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM comments WHERE id = $1 AND review_id = $2
	`, commentID, reviewID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("comment")
	}
	return nil
}

var (
	_ repository.ReviewRepository  = (*ReviewRepository)(nil)
	_ repository.CommentRepository = (*CommentRepository)(nil)
)
