package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/revuehub/api/internal/container"
	repo "github.com/revuehub/api/internal/domain/repository"
	handlers "github.com/revuehub/api/internal/interface/http"
	"github.com/revuehub/api/internal/interface/middleware"
	"github.com/revuehub/api/pkg/helpers"
)

// ReviewModule registers reviews and comments nested under titles.
type ReviewModule struct {
	Handler *handlers.ReviewHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewReviewModule(h *handlers.ReviewHandler, users repo.UserRepository, jwt *helpers.JWTManager) *ReviewModule {
	return &ReviewModule{Handler: h, Users: users, JWT: jwt}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	// Same shape as the catalog reads: public, with per-user limiter keys for
	// callers who sent a token.
	read := rg.Group("/")
	read.Use(middleware.OptionalAuth(m.Users, m.JWT))
	read.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		read.GET("/titles/:title_id/reviews", m.Handler.ListReviews)
		read.GET("/titles/:title_id/reviews/:review_id", m.Handler.GetReview)
		read.GET("/titles/:title_id/reviews/:review_id/comments", m.Handler.ListComments)
		read.GET("/titles/:title_id/reviews/:review_id/comments/:comment_id", m.Handler.GetComment)
	}

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/titles/:title_id/reviews", m.Handler.CreateReview)
		auth.PATCH("/titles/:title_id/reviews/:review_id", m.Handler.UpdateReview)
		auth.DELETE("/titles/:title_id/reviews/:review_id", m.Handler.DeleteReview)

		auth.POST("/titles/:title_id/reviews/:review_id/comments", m.Handler.CreateComment)
		auth.PATCH("/titles/:title_id/reviews/:review_id/comments/:comment_id", m.Handler.UpdateComment)
		auth.DELETE("/titles/:title_id/reviews/:review_id/comments/:comment_id", m.Handler.DeleteComment)
	}
}
