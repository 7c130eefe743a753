package application

import (
	"context"
	"strconv"

	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/authz"
	"github.com/revuehub/api/internal/domain/entity"
	repo "github.com/revuehub/api/internal/domain/repository"
)

// ReviewService manages reviews and their comments. Reads are public; creates
// need authentication; edits and deletes are for the author, moderators and
// admins.
type ReviewService struct {
	Titles   repo.TitleRepository
	Reviews  repo.ReviewRepository
	Comments repo.CommentRepository
}

func NewReviewService(titles repo.TitleRepository, reviews repo.ReviewRepository, comments repo.CommentRepository) *ReviewService {
	return &ReviewService{Titles: titles, Reviews: reviews, Comments: comments}
}

func validScore(score int) error {
	if score < entity.MinScore || score > entity.MaxScore {
		return apperr.FieldErrors(map[string]string{
			"score": "must be between " + strconv.Itoa(entity.MinScore) + " and " + strconv.Itoa(entity.MaxScore),
		})
	}
	return nil
}

func (s *ReviewService) CreateReview(ctx context.Context, actor authz.Actor, titleID int64, text string, score int) (*entity.Review, error) {
	if err := requireAllowed(actor, authz.CanCreateContribution(actor)); err != nil {
		return nil, err
	}
	if err := validScore(score); err != nil {
		return nil, err
	}
	if _, err := s.Titles.GetByID(ctx, titleID); err != nil {
		return nil, err
	}
	// Friendly pre-check; the DB unique constraint stays authoritative for
	// the race between this check and the insert.
	exists, err := s.Reviews.ExistsByTitleAndAuthor(ctx, titleID, actor.User.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Validation(repo.DuplicateReviewMessage)
	}
	rv := &entity.Review{
		TitleID:        titleID,
		AuthorID:       actor.User.ID,
		AuthorUsername: actor.User.Username,
		Text:           text,
		Score:          score,
	}
	if err := s.Reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, titleID int64) ([]entity.Review, error) {
	if _, err := s.Titles.GetByID(ctx, titleID); err != nil {
		return nil, err
	}
	return s.Reviews.ListByTitle(ctx, titleID)
}

func (s *ReviewService) GetReview(ctx context.Context, titleID, reviewID int64) (*entity.Review, error) {
	return s.Reviews.GetByID(ctx, titleID, reviewID)
}

type UpdateReviewInput struct {
	Text  *string
	Score *int
}

// UpdateReview edits an existing review. The one-review-per-title rule is not
// re-checked: the row already satisfies it.
func (s *ReviewService) UpdateReview(ctx context.Context, actor authz.Actor, titleID, reviewID int64, in UpdateReviewInput) (*entity.Review, error) {
	rv, err := s.Reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := requireAllowed(actor, authz.CanModifyContribution(actor, rv.AuthorID)); err != nil {
		return nil, err
	}
	if in.Score != nil {
		if err := validScore(*in.Score); err != nil {
			return nil, err
		}
		rv.Score = *in.Score
	}
	if in.Text != nil {
		rv.Text = *in.Text
	}
	if err := s.Reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, actor authz.Actor, titleID, reviewID int64) error {
	rv, err := s.Reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := requireAllowed(actor, authz.CanModifyContribution(actor, rv.AuthorID)); err != nil {
		return err
	}
	return s.Reviews.Delete(ctx, titleID, reviewID)
}

func (s *ReviewService) CreateComment(ctx context.Context, actor authz.Actor, titleID, reviewID int64, text string) (*entity.Comment, error) {
	if err := requireAllowed(actor, authz.CanCreateContribution(actor)); err != nil {
		return nil, err
	}
	if _, err := s.Reviews.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	c := &entity.Comment{
		ReviewID:       reviewID,
		AuthorID:       actor.User.ID,
		AuthorUsername: actor.User.Username,
		Text:           text,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ReviewService) ListComments(ctx context.Context, titleID, reviewID int64) ([]entity.Comment, error) {
	if _, err := s.Reviews.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.Comments.ListByReview(ctx, reviewID)
}

func (s *ReviewService) GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*entity.Comment, error) {
	if _, err := s.Reviews.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.Comments.GetByID(ctx, reviewID, commentID)
}

func (s *ReviewService) UpdateComment(ctx context.Context, actor authz.Actor, titleID, reviewID, commentID int64, text string) (*entity.Comment, error) {
	c, err := s.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := requireAllowed(actor, authz.CanModifyContribution(actor, c.AuthorID)); err != nil {
		return nil, err
	}
	c.Text = text
	if err := s.Comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ReviewService) DeleteComment(ctx context.Context, actor authz.Actor, titleID, reviewID, commentID int64) error {
	c, err := s.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := requireAllowed(actor, authz.CanModifyContribution(actor, c.AuthorID)); err != nil {
		return err
	}
	return s.Comments.Delete(ctx, reviewID, commentID)
}
