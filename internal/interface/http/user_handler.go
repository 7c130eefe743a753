package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/revuehub/api/internal/application"
	"github.com/revuehub/api/internal/domain/entity"
	"github.com/revuehub/api/internal/interface/middleware"
	"github.com/revuehub/api/pkg/response"
	"github.com/revuehub/api/pkg/validation"
)

// UserHandler serves user administration plus the "me" self-profile alias.
// The alias is resolved by username: /users/me always means the caller.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Username    string `json:"username" binding:"required,username,max=150"`
	Email       string `json:"email" binding:"required,email,max=254"`
	FirstName   string `json:"first_name" binding:"max=150"`
	LastName    string `json:"last_name" binding:"max=150"`
	Bio         string `json:"bio"`
	Role        string `json:"role" binding:"omitempty,oneof=user moderator admin"`
	IsSuperuser bool   `json:"is_superuser"`
}

type updateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), middleware.ActorFrom(c), application.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Bio:         req.Bio,
		Role:        req.Role,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserView(u), "user created")
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context(), middleware.ActorFrom(c), c.Query("search"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, toUserView(&users[i]))
	}
	response.Success(c, http.StatusOK, out, "users")
}

func (h *UserHandler) Get(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	username := c.Param("username")

	var (
		u   *entity.User
		err error
	)
	if username == entity.ReservedUsername {
		u, err = h.Svc.GetSelf(c.Request.Context(), actor)
	} else {
		u, err = h.Svc.Get(c.Request.Context(), actor, username)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "user")
}

func (h *UserHandler) Update(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	username := c.Param("username")

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if username == entity.ReservedUsername {
		u, err := h.Svc.UpdateSelf(c.Request.Context(), actor, application.UpdateSelfInput{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Bio:       req.Bio,
			Role:      req.Role,
		})
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, toUserView(u), "profile updated")
		return
	}

	u, err := h.Svc.Update(c.Request.Context(), actor, username, application.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "user updated")
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("username")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
