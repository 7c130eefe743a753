package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/revuehub/api/internal/container"
	handlers "github.com/revuehub/api/internal/interface/http"
	"github.com/revuehub/api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Both endpoints are public; signup triggers an email so it gets the
	// tighter limit.
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	tokenLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/token", tokenLimiter, m.Handler.Token)
}
