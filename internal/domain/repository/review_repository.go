package repository

import (
	"context"

	"github.com/revuehub/api/internal/domain/entity"
)

// DuplicateReviewMessage is the single user-facing message for a second
// review on the same title, whether caught by the service pre-check or by the
// DB constraint.
const DuplicateReviewMessage = "you have already reviewed this title"

// ReviewRepository manages reviews nested under a title. Create maps the
// unique (title_id, author_id) violation to a Conflict apperr; that mapping is
// the authoritative guard against double submission, the service pre-check is
// only the friendly path.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, titleID, reviewID int64) (*entity.Review, error)
	ListByTitle(ctx context.Context, titleID int64) ([]entity.Review, error)
	ExistsByTitleAndAuthor(ctx context.Context, titleID int64, authorID string) (bool, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, titleID, reviewID int64) error
}

// CommentRepository manages comments nested under a review.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, reviewID, commentID int64) (*entity.Comment, error)
	ListByReview(ctx context.Context, reviewID int64) ([]entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, reviewID, commentID int64) error
}
