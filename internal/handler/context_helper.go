package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/uniplan/timetable-api/internal/middleware"
	"github.com/uniplan/timetable-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.CurrentUser(c)
}
