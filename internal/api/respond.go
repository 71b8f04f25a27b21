package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ignashub/ictperfect-tool2/internal/errors"
	"github.com/ignashub/ictperfect-tool2/internal/logger"
)

const requestTimeout = 10 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// respondError writes an AppError as JSON with the matching status code
func respondError(c *gin.Context, log logger.Logger, err error) {
	status := apperrors.HTTPStatus(err)
	body := gin.H{"error": "Internal server error", "code": apperrors.ErrCodeInternalError}

	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		body["code"] = appErr.Code
		body["error"] = appErr.Message
		if appErr.Details != "" {
			body["details"] = appErr.Details
		}
		if appErr.Code == apperrors.ErrCodeValidationError && appErr.Cause != nil {
			body["details"] = appErr.Cause.Error()
		}
	}

	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		log.Error("Request error", err, "path", c.Request.URL.Path)
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message, "code": apperrors.ErrCodeInvalidInput}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
