package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
)

// respondError writes err as {"error", "code"} with the status matching its
// kind. Anything that is not a *service.Error is a 500.
func respondError(c *gin.Context, err error) {
	status, code, msg := http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error"

	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		msg = svcErr.Message
		switch {
		case errors.Is(svcErr.Kind, service.ErrValidation):
			status, code = http.StatusBadRequest, "VALIDATION_ERROR"
		case errors.Is(svcErr.Kind, service.ErrNotFound):
			status, code = http.StatusNotFound, "NOT_FOUND"
		case errors.Is(svcErr.Kind, service.ErrStorage):
			status, code = http.StatusInternalServerError, "STORAGE_ERROR"
		case errors.Is(svcErr.Kind, service.ErrUpstream):
			status, code = http.StatusInternalServerError, "UPSTREAM_ERROR"
		}
	}

	entry := logrus.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"status": status,
		"code":   code,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, middleware.ErrorResponse{Error: msg, Code: code})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorResponse{Error: msg, Code: "VALIDATION_ERROR"})
}

func notFound(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusNotFound, middleware.ErrorResponse{Error: msg, Code: "NOT_FOUND"})
}
