package recommend

import (
	"topcv/internal/middleware"
	"topcv/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	recommendations := r.Group("/recommendations")
	recommendations.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.RoleMiddleware(user.RoleSeeker))
	{
		// matching is an expensive upstream call
		recommendations.POST("", middleware.RateLimitByUser(0.2, 2), handler.Recommend)
	}

	screening := r.Group("/screening")
	screening.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.RoleMiddleware(user.RoleEmployer, user.RoleAdmin))
	{
		screening.POST("/cv-analysis", middleware.RateLimitByUser(0.2, 2), handler.ScreenCV)
	}
}
