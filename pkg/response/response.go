package response

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"anoa.com/careerhub/pkg/apperror"
	"anoa.com/careerhub/pkg/ratelimiter"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// OptionalUserID returns nil for anonymous requests.
func OptionalUserID(c *gin.Context) *uuid.UUID {
	userID, err := GetUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	var rateErr *ratelimiter.RateLimitError
	if errors.As(err, &rateErr) {
		c.Header("Retry-After", strconv.Itoa(int(rateErr.RetryAfter.Seconds())))
	}

	var validationErr *apperror.ValidationError
	if errors.As(err, &validationErr) {
		body := gin.H{"error": validationErr.Message}
		if validationErr.Fields != nil {
			body["form"] = validationErr.Fields
		}
		c.JSON(code, body)
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// Redirect answers a successful mutation with a message and the next location.
func Redirect(c *gin.Context, code int, location, message string, data any) {
	c.Header("Location", location)
	body := gin.H{"message": message, "redirect": location}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

// RedirectWithError is the soft failure counterpart of Redirect: 303 with an error message.
func RedirectWithError(c *gin.Context, location, message string) {
	c.Header("Location", location)
	c.JSON(http.StatusSeeOther, gin.H{"error": message, "redirect": location})
}
