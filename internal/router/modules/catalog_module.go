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

// CatalogModule registers categories, genres and titles. Reads are public;
// writes go through Auth and the admin check happens in the service.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewCatalogModule(h *handlers.CatalogHandler, users repo.UserRepository, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, Users: users, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	// Reads stay public; OptionalAuth resolves the caller when a token is
	// present so the limiter counts per user instead of per shared IP.
	read := rg.Group("/")
	read.Use(middleware.OptionalAuth(m.Users, m.JWT))
	read.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		read.GET("/categories", m.Handler.ListCategories)
		read.GET("/genres", m.Handler.ListGenres)
		read.GET("/titles", m.Handler.ListTitles)
		read.GET("/titles/:title_id", m.Handler.GetTitle)
	}

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/categories", m.Handler.CreateCategory)
		auth.DELETE("/categories/:slug", m.Handler.DeleteCategory)
		auth.POST("/genres", m.Handler.CreateGenre)
		auth.DELETE("/genres/:slug", m.Handler.DeleteGenre)
		auth.POST("/titles", m.Handler.CreateTitle)
		auth.PATCH("/titles/:title_id", m.Handler.UpdateTitle)
		auth.DELETE("/titles/:title_id", m.Handler.DeleteTitle)
	}
}
