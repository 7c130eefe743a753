package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/revuehub/api/internal/apperr"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	}
	ctx.JSON(status, resp)
	return resp
}

func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
	ctx.JSON(status, resp)
	return resp
}

// FromError maps an application error to its HTTP representation. Unknown
// errors become a 500 without leaking internals.
func FromError(ctx *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		Error[any](ctx, http.StatusBadRequest, err.Error(), apperr.DetailsOf(err))
	case apperr.KindNotFound:
		Error[any](ctx, http.StatusNotFound, err.Error(), nil)
	case apperr.KindPermission:
		Error[any](ctx, http.StatusForbidden, err.Error(), nil)
	case apperr.KindConflict:
		Error[any](ctx, http.StatusBadRequest, err.Error(), nil)
	case apperr.KindUnauthenticated:
		Error[any](ctx, http.StatusUnauthorized, err.Error(), nil)
	case apperr.KindMethodNotAllowed:
		Error[any](ctx, http.StatusMethodNotAllowed, err.Error(), nil)
	default:
		Error[any](ctx, http.StatusInternalServerError, "internal error", nil)
	}
}
