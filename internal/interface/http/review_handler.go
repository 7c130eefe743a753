package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/revuehub/api/internal/application"
	"github.com/revuehub/api/internal/interface/middleware"
	"github.com/revuehub/api/pkg/response"
	"github.com/revuehub/api/pkg/validation"
)

type ReviewHandler struct {
	Svc    *application.ReviewService
	Logger *logrus.Logger
}

func NewReviewHandler(svc *application.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

type reviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,gte=1,lte=10"`
}

type reviewPatchRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,gte=1,lte=10"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	tid, ok := titleID(c)
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rv, err := h.Svc.CreateReview(c.Request.Context(), middleware.ActorFrom(c), tid, req.Text, req.Score)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toReviewView(rv), "review created")
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	tid, ok := titleID(c)
	if !ok {
		return
	}
	reviews, err := h.Svc.ListReviews(c.Request.Context(), tid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]reviewView, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewView(&reviews[i]))
	}
	response.Success(c, http.StatusOK, out, "reviews")
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	tid, rid, ok := reviewPath(c)
	if !ok {
		return
	}
	rv, err := h.Svc.GetReview(c.Request.Context(), tid, rid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReviewView(rv), "review")
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	tid, rid, ok := reviewPath(c)
	if !ok {
		return
	}
	var req reviewPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rv, err := h.Svc.UpdateReview(c.Request.Context(), middleware.ActorFrom(c), tid, rid, application.UpdateReviewInput{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReviewView(rv), "review updated")
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	tid, rid, ok := reviewPath(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteReview(c.Request.Context(), middleware.ActorFrom(c), tid, rid); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) CreateComment(c *gin.Context) {
	tid, rid, ok := reviewPath(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cm, err := h.Svc.CreateComment(c.Request.Context(), middleware.ActorFrom(c), tid, rid, req.Text)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toCommentView(cm), "comment created")
}

func (h *ReviewHandler) ListComments(c *gin.Context) {
	tid, rid, ok := reviewPath(c)
	if !ok {
		return
	}
	comments, err := h.Svc.ListComments(c.Request.Context(), tid, rid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]commentView, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentView(&comments[i]))
	}
	response.Success(c, http.StatusOK, out, "comments")
}

func (h *ReviewHandler) GetComment(c *gin.Context) {
	tid, rid, cid, ok := commentPath(c)
	if !ok {
		return
	}
	cm, err := h.Svc.GetComment(c.Request.Context(), tid, rid, cid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCommentView(cm), "comment")
}

func (h *ReviewHandler) UpdateComment(c *gin.Context) {
	tid, rid, cid, ok := commentPath(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cm, err := h.Svc.UpdateComment(c.Request.Context(), middleware.ActorFrom(c), tid, rid, cid, req.Text)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCommentView(cm), "comment updated")
}

func (h *ReviewHandler) DeleteComment(c *gin.Context) {
	tid, rid, cid, ok := commentPath(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteComment(c.Request.Context(), middleware.ActorFrom(c), tid, rid, cid); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func reviewPath(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = pathID(c, "title_id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = pathID(c, "review_id")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func commentPath(c *gin.Context) (titleID, reviewID, commentID int64, ok bool) {
	titleID, reviewID, ok = reviewPath(c)
	if !ok {
		return 0, 0, 0, false
	}
	commentID, ok = pathID(c, "comment_id")
	if !ok {
		return 0, 0, 0, false
	}
	return titleID, reviewID, commentID, true
}
