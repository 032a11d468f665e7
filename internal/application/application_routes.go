package application

import (
	"topcv/internal/middleware"
	"topcv/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	apps := r.Group("/applications")
	apps.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		apps.POST("",
			middleware.RoleMiddleware(user.RoleSeeker),
			middleware.RateLimitByUser(1, 5),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		apps.GET("/mine", middleware.RoleMiddleware(user.RoleSeeker), handler.ListMine)
		apps.PATCH("/:id/withdraw", middleware.RoleMiddleware(user.RoleSeeker), handler.Withdraw)

		apps.PATCH("/:id/status", middleware.RoleMiddleware(user.RoleEmployer, user.RoleAdmin), handler.UpdateStatus)
		apps.PATCH("/status", middleware.RoleMiddleware(user.RoleEmployer, user.RoleAdmin), handler.BulkUpdateStatus)
		apps.GET("", middleware.RoleMiddleware(user.RoleEmployer, user.RoleAdmin), handler.SearchForEmployer)
		apps.GET("/job-post/:id", middleware.RoleMiddleware(user.RoleEmployer, user.RoleAdmin), handler.ListByJobPost)
	}
}
