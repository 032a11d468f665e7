package auth

import (
	"topcv/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Limit(2), 10), handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.POST("/logout", handler.Logout)

		authed := authGroup.Group("")
		authed.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
		{
			authed.GET("/me", handler.GetMe)
		}
	}
}
