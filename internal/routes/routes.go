package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinXCVI/mern-auth-system/internal/config"
	"github.com/MartinXCVI/mern-auth-system/internal/email"
	"github.com/MartinXCVI/mern-auth-system/internal/handlers"
	"github.com/MartinXCVI/mern-auth-system/internal/middleware"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config, mailer email.Mailer) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Working")
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handlers.NewAuthHandler(db, cfg, mailer)
	userHandler := handlers.NewUserHandler(db)

	guard := middleware.AuthRequired(cfg.JwtSecret)

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/send-verify-otp", guard, authHandler.SendVerifyOtp)
		auth.POST("/verify-email", guard, authHandler.VerifyEmail)
		auth.GET("/is-auth", guard, authHandler.IsAuthenticated)
		auth.POST("/is-auth", guard, authHandler.IsAuthenticated)
		auth.POST("/send-reset-otp", authHandler.SendResetOtp)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	user := router.Group("/api/user")
	user.Use(guard)
	{
		user.GET("/data", userHandler.GetUserData)
	}
}

// corsMiddleware allows the configured SPA origins. Session cookies ride on
// cross-site requests, so credentials are always allowed and the wildcard
// origin is only used when no explicit origins are configured.
func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			if origin != "" {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Vary", "Origin")
			}
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
