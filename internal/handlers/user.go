package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinXCVI/mern-auth-system/internal/middleware"
	"github.com/MartinXCVI/mern-auth-system/internal/models"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// GetUserData returns the authenticated user's basic profile.
func (h *UserHandler) GetUserData(c *gin.Context) {
	userID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: missing user ID from session"})
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID.(string)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found or does not exist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User data successfully retrieved",
		"userData": gin.H{
			"name":              user.Name,
			"email":             user.Email,
			"isAccountVerified": user.IsAccountVerified,
		},
	})
}
