package jobpost

import (
	"topcv/internal/middleware"
	"topcv/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	posts := r.Group("/job-posts")
	{
		posts.POST("/search", handler.Search)
		posts.GET("/:id", handler.GetByID)

		authed := posts.Group("")
		authed.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
		{
			authed.GET("/mine", middleware.RoleMiddleware(user.RoleEmployer), handler.ListMine)
			authed.POST("", middleware.RoleMiddleware(user.RoleEmployer), handler.Create)
			authed.PUT("/:id", middleware.RoleMiddleware(user.RoleEmployer), handler.Update)
			authed.PATCH("/:id/status", middleware.RoleMiddleware(user.RoleEmployer, user.RoleAdmin), handler.UpdateStatus)
		}
	}
}
