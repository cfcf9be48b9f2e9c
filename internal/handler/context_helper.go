package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-enlistment-api/internal/middleware"
	"github.com/noah-isme/student-enlistment-api/internal/models"
	appErrors "github.com/noah-isme/student-enlistment-api/pkg/errors"
	"github.com/noah-isme/student-enlistment-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// studentID writes a 401 and returns false when the caller carries no student.
func studentID(c *gin.Context) (string, bool) {
	id := claimsFromContext(c).StudentID()
	if id == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return id, true
}
