package response

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"vertice.mx/concesionario/pkg/apperror"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uint, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	userID, err := strconv.ParseUint(userIDStr.(string), 10, 64)
	if err != nil {
		return 0, apperror.ErrUnauthorized
	}

	return uint(userID), nil
}

// GetUserRol retrieves the authenticated user role from the context
func GetUserRol(c *gin.Context) string {
	rol, exists := c.Get("user_rol")
	if !exists {
		return ""
	}
	return rol.(string)
}

// ResponseError standardized error response: {"message": ...} plus optional
// per-field "errors". Internal errors are redacted outside development.
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	message := err.Error()
	var details []string
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		details = appErr.Details
	}

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		if os.Getenv("APP_ENV") != "development" {
			message = "Error interno del servidor"
		}
	}

	body := gin.H{"message": message}
	if len(details) > 0 {
		body["errors"] = details
	}

	c.JSON(code, body)
}
