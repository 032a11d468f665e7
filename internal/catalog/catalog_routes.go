package catalog

import (
	"topcv/internal/middleware"
	"topcv/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	items := r.Group("/catalog/:kind")
	{
		items.GET("", handler.List)

		admin := items.Group("")
		admin.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.RoleMiddleware(user.RoleAdmin))
		{
			admin.POST("", handler.Create)
			admin.PUT("/:id", handler.Update)
			admin.DELETE("/:id", handler.Delete)
		}
	}
}
