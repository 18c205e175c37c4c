package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmagbanua/barangay-backend/internal/dto"
	"github.com/rmagbanua/barangay-backend/internal/http/middleware"
	"github.com/rmagbanua/barangay-backend/internal/pkg/apperror"
)

var (
	// ErrUserNotFound is returned when the staff user is missing from context.
	ErrUserNotFound = errors.New("user not found in context")
)

// CurrentUserID extracts the staff user ID from the gin context.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, ErrUserNotFound
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrUserNotFound
	}

	return userID, nil
}

// ParseIDParam parses a numeric URL parameter.
func ParseIDParam(c *gin.Context, paramName string) (int64, error) {
	param := c.Param(paramName)
	if param == "" {
		return 0, fmt.Errorf("parameter %s is missing", paramName)
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("parameter %s must be a positive integer", paramName)
	}

	return id, nil
}

// RespondBadRequest sends a validation failure.
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Failure(message))
}

// RespondSuccess sends a structured success result.
func RespondSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, dto.Success(data))
}

// RespondServiceError maps a service error to its HTTP status. Unknown errors
// are masked as internal.
func RespondServiceError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, dto.Failure(appErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.Failure("internal server error"))
}
