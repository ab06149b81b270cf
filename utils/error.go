package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a domain error onto the matching HTTP status and
// writes its message. Unknown errors become a 500 with a generic body so
// backend details never leak.
func RespondError(c *gin.Context, err error) {
	var (
		notFound   *NotFoundError
		invalid    *InvalidStateTransitionError
		duplicate  *DuplicateRatingError
		validation *ValidationError
		network    *NetworkError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: notFound.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusConflict, ErrorResponse{Message: invalid.Error()})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Message: duplicate.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: validation.Error()})
	case errors.As(err, &network):
		GetLogger().Error("Backend call failed", zap.String("op", network.Op), zap.Error(network.Err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: network.Error()})
	default:
		GetLogger().Error("Unclassified error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal Server Error",
			Details: "An unexpected error occurred. Please try again later.",
		})
	}
}
