package company

import (
	"topcv/internal/middleware"
	"topcv/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	companies := r.Group("/companies")
	{
		companies.GET("", handler.Search)
		companies.GET("/:id", handler.GetByID)
		companies.GET("/:id/reviews", handler.GetReviews)

		authed := companies.Group("")
		authed.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
		{
			authed.GET("/me", handler.GetMine)
			authed.POST("", middleware.RoleMiddleware(user.RoleEmployer), handler.Create)
			authed.PUT("/:id", middleware.RoleMiddleware(user.RoleEmployer), handler.Update)

			authed.POST("/:id/reviews", middleware.RoleMiddleware(user.RoleSeeker), handler.SubmitReview)
			authed.DELETE("/:id/reviews", middleware.RoleMiddleware(user.RoleSeeker), handler.DeleteReview)

			authed.POST("/:id/follow", middleware.RoleMiddleware(user.RoleSeeker), handler.Follow)
			authed.DELETE("/:id/follow", middleware.RoleMiddleware(user.RoleSeeker), handler.Unfollow)
		}
	}
}
