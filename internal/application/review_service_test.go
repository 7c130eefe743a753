package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/authz"
	"github.com/revuehub/api/internal/domain/entity"
	repo "github.com/revuehub/api/internal/domain/repository"
)

func actorWithRole(username string, role entity.Role) authz.Actor {
	return authz.Actor{User: &entity.User{ID: "id-" + username, Username: username, Role: role}}
}

func newReviewFixture(t *testing.T) (*ReviewService, *memTitleRepo, int64) {
	t.Helper()
	reviews := newMemReviewRepo()
	titles := newMemTitleRepo(reviews)
	title := &entity.Title{Name: "Solaris", Year: 1972}
	require.NoError(t, titles.Create(context.Background(), title))
	return NewReviewService(titles, reviews, newMemCommentRepo()), titles, title.ID
}

func TestCreateReview(t *testing.T) {
	svc, _, titleID := newReviewFixture(t)
	reader := actorWithRole("reader", entity.RoleUser)

	rv, err := svc.CreateReview(context.Background(), reader, titleID, "haunting", 8)
	require.NoError(t, err)
	assert.Equal(t, "reader", rv.AuthorUsername)
	assert.Equal(t, 8, rv.Score)
	assert.NotZero(t, rv.ID)
}

func TestCreateReviewRequiresAuth(t *testing.T) {
	svc, _, titleID := newReviewFixture(t)

	_, err := svc.CreateReview(context.Background(), authz.Anonymous, titleID, "nice", 5)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestCreateReviewScoreBounds(t *testing.T) {
	svc, _, titleID := newReviewFixture(t)
	reader := actorWithRole("reader", entity.RoleUser)

	for _, score := range []int{0, 11, -1} {
		_, err := svc.CreateReview(context.Background(), reader, titleID, "x", score)
		require.Error(t, err, "score %d", score)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
	for _, score := range []int{1, 10} {
		actor := actorWithRole("u"+string(rune('a'+score)), entity.RoleUser)
		_, err := svc.CreateReview(context.Background(), actor, titleID, "x", score)
		assert.NoError(t, err, "score %d", score)
	}
}

func TestCreateReviewUnknownTitle(t *testing.T) {
	svc, _, _ := newReviewFixture(t)
	reader := actorWithRole("reader", entity.RoleUser)

	_, err := svc.CreateReview(context.Background(), reader, 999, "x", 5)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateReviewSecondReviewRejected(t *testing.T) {
	svc, _, titleID := newReviewFixture(t)
	reader := actorWithRole("reader", entity.RoleUser)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, reader, titleID, "first", 5)
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, reader, titleID, "second", 7)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.EqualError(t, err, repo.DuplicateReviewMessage)

	// A different author may still review the same title.
	other := actorWithRole("other", entity.RoleUser)
	_, err = svc.CreateReview(ctx, other, titleID, "mine", 9)
	assert.NoError(t, err)
}

func TestUpdateReviewKeepsUniquenessRow(t *testing.T) {
	svc, _, titleID := newReviewFixture(t)
	reader := actorWithRole("reader", entity.RoleUser)
	ctx := context.Background()

	rv, err := svc.CreateReview(ctx, reader, titleID, "first", 5)
	require.NoError(t, err)

	score := 9
	text := "revised"
	updated, err := svc.UpdateReview(ctx, reader, titleID, rv.ID, UpdateReviewInput{Text: &text, Score: &score})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Score)
	assert.Equal(t, "revised", updated.Text)
}

func TestModifyReviewPermissions(t *testing.T) {
	svc, _, titleID := newReviewFixture(t)
	author := actorWithRole("author", entity.RoleUser)
	ctx := context.Background()
	rv, err := svc.CreateReview(ctx, author, titleID, "mine", 5)
	require.NoError(t, err)

	text := "edited"
	tests := []struct {
		name    string
		actor   authz.Actor
		allowed bool
	}{
		{"author", author, true},
		{"moderator", actorWithRole("mod", entity.RoleModerator), true},
		{"admin", actorWithRole("boss", entity.RoleAdmin), true},
		{"other user", actorWithRole("stranger", entity.RoleUser), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateReview(ctx, tt.actor, titleID, rv.ID, UpdateReviewInput{Text: &text})
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
			}
		})
	}

	err = svc.DeleteReview(ctx, authz.Anonymous, titleID, rv.ID)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	err = svc.DeleteReview(ctx, actorWithRole("mod", entity.RoleModerator), titleID, rv.ID)
	assert.NoError(t, err)
}

func TestRatingIsMeanOfScores(t *testing.T) {
	svc, titles, titleID := newReviewFixture(t)
	ctx := context.Background()

	before, err := titles.GetByID(ctx, titleID)
	require.NoError(t, err)
	assert.Nil(t, before.Rating, "no reviews means no rating")

	_, err = svc.CreateReview(ctx, actorWithRole("a", entity.RoleUser), titleID, "x", 8)
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, actorWithRole("b", entity.RoleUser), titleID, "y", 10)
	require.NoError(t, err)

	after, err := titles.GetByID(ctx, titleID)
	require.NoError(t, err)
	require.NotNil(t, after.Rating)
	assert.InDelta(t, 9.0, *after.Rating, 1e-9)
}

func TestCommentLifecycle(t *testing.T) {
	svc, _, titleID := newReviewFixture(t)
	author := actorWithRole("author", entity.RoleUser)
	ctx := context.Background()
	rv, err := svc.CreateReview(ctx, author, titleID, "mine", 5)
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, authz.Anonymous, titleID, rv.ID, "hi")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	commenter := actorWithRole("commenter", entity.RoleUser)
	c, err := svc.CreateComment(ctx, commenter, titleID, rv.ID, "agreed")
	require.NoError(t, err)
	assert.Equal(t, "commenter", c.AuthorUsername)

	list, err := svc.ListComments(ctx, titleID, rv.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.UpdateComment(ctx, actorWithRole("stranger", entity.RoleUser), titleID, rv.ID, c.ID, "hijack")
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	got, err := svc.UpdateComment(ctx, commenter, titleID, rv.ID, c.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)

	require.NoError(t, svc.DeleteComment(ctx, actorWithRole("mod", entity.RoleModerator), titleID, rv.ID, c.ID))
	_, err = svc.GetComment(ctx, titleID, rv.ID, c.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCommentUnderWrongReview(t *testing.T) {
	svc, _, titleID := newReviewFixture(t)
	author := actorWithRole("author", entity.RoleUser)
	ctx := context.Background()
	rv, err := svc.CreateReview(ctx, author, titleID, "mine", 5)
	require.NoError(t, err)
	c, err := svc.CreateComment(ctx, author, titleID, rv.ID, "note")
	require.NoError(t, err)

	_, err = svc.GetComment(ctx, titleID, rv.ID+100, c.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
