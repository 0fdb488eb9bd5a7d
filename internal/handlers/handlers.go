// Package handlers wires the HTTP surface: request binding with aggregated
// field validation, service invocation, and RFC 9457 problem responses.
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sagewell/backend/internal/apierror"
	"github.com/sagewell/backend/internal/logger"
	"github.com/sagewell/backend/internal/repository"
	"github.com/sagewell/backend/internal/service"
)

// respondServiceError maps service-layer errors onto problem responses.
// resource names what was being acted on, for not-found detail text.
func respondServiceError(c *gin.Context, err error, resource, id string) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, service.ErrValidation):
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Please check your input and try again"))
	case errors.Is(err, repository.ErrNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, resource, id))
	default:
		logger.Ctx(c.Request.Context()).Error("request failed",
			logger.String("resource", resource),
			logger.Err(err),
		)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}

// authedUserID returns the user id set by the auth middleware, writing a 401
// problem when it is absent.
func authedUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	return id, true
}
