package routes

import (
	"errors"
	"net/http"

	"vibe-todo/vibetodo/services"

	"github.com/gin-gonic/gin"
)

type tokenRequest struct {
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func RegisterAuthRoutes(group *gin.RouterGroup, authService services.AuthServiceInterface) {
	group.POST("/auth/token", func(c *gin.Context) { IssueToken(c, authService) })
}

func IssueToken(c *gin.Context, authService services.AuthServiceInterface) {
	var request tokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err.Error())
		return
	}

	signed, err := authService.Login(request.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
	case errors.Is(err, services.ErrAuthDisabled):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		respondError(c, err)
	default:
		c.JSON(http.StatusOK, tokenResponse{Token: signed})
	}
}
