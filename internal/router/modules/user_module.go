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

// UserModule registers user administration and the /users/me alias. Every
// route requires authentication; "me" matches the :username param and the
// handler resolves it to the caller.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, users repo.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Users: users, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.List)
		auth.POST("", m.Handler.Create)
		auth.GET("/:username", m.Handler.Get)
		auth.PATCH("/:username", m.Handler.Update)
		auth.DELETE("/:username", m.Handler.Delete)
	}
}
