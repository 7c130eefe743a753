package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/revuehub/api/internal/application"
	repo "github.com/revuehub/api/internal/domain/repository"
	"github.com/revuehub/api/internal/interface/middleware"
	"github.com/revuehub/api/pkg/response"
	"github.com/revuehub/api/pkg/validation"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

type refRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,slug,max=50"`
}

type titleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"omitempty,slug"`
	Genre       []string `json:"genre" binding:"omitempty,dive,slug"`
}

type titlePatchRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" binding:"omitempty,slug"`
	Genre       *[]string `json:"genre" binding:"omitempty,dive,slug"`
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req refRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.CreateCategory(c.Request.Context(), middleware.ActorFrom(c), req.Name, req.Slug)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, categoryView(cat), "category created")
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.Svc.ListCategories(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]refView, 0, len(cats))
	for i := range cats {
		out = append(out, categoryView(&cats[i]))
	}
	response.Success(c, http.StatusOK, out, "categories")
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	err := h.Svc.DeleteCategory(c.Request.Context(), middleware.ActorFrom(c), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	var req refRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	g, err := h.Svc.CreateGenre(c.Request.Context(), middleware.ActorFrom(c), req.Name, req.Slug)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, genreView(g), "genre created")
}

func (h *CatalogHandler) ListGenres(c *gin.Context) {
	genres, err := h.Svc.ListGenres(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]refView, 0, len(genres))
	for i := range genres {
		out = append(out, genreView(&genres[i]))
	}
	response.Success(c, http.StatusOK, out, "genres")
}

func (h *CatalogHandler) DeleteGenre(c *gin.Context) {
	err := h.Svc.DeleteGenre(c.Request.Context(), middleware.ActorFrom(c), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CreateTitle(c *gin.Context) {
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.CreateTitle(c.Request.Context(), middleware.ActorFrom(c), application.TitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toTitleView(t), "title created")
}

func (h *CatalogHandler) ListTitles(c *gin.Context) {
	filter := repo.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"year": "must be an integer"})
			return
		}
		filter.Year = year
	}
	titles, err := h.Svc.ListTitles(c.Request.Context(), filter, c.Query("search"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]titleView, 0, len(titles))
	for i := range titles {
		out = append(out, toTitleView(&titles[i]))
	}
	response.Success(c, http.StatusOK, out, "titles")
}

func (h *CatalogHandler) GetTitle(c *gin.Context) {
	id, ok := titleID(c)
	if !ok {
		return
	}
	t, err := h.Svc.GetTitle(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTitleView(t), "title")
}

func (h *CatalogHandler) UpdateTitle(c *gin.Context) {
	id, ok := titleID(c)
	if !ok {
		return
	}
	var req titlePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.UpdateTitle(c.Request.Context(), middleware.ActorFrom(c), id, application.UpdateTitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTitleView(t), "title updated")
}

func (h *CatalogHandler) DeleteTitle(c *gin.Context) {
	id, ok := titleID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteTitle(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// titleID parses the title_id path param; a malformed id can never match a
// resource so it reads as a 404.
func titleID(c *gin.Context) (int64, bool) {
	return pathID(c, "title_id")
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return 0, false
	}
	return id, true
}
