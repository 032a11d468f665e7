package resume

import (
	"topcv/internal/middleware"
	"topcv/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	resumes := r.Group("/resumes")
	resumes.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.RoleMiddleware(user.RoleSeeker))
	{
		resumes.POST("", handler.Upload)
		resumes.GET("", handler.ListMine)
		resumes.GET("/:id", handler.GetByID)
		resumes.PUT("/:id", handler.Rename)
		resumes.DELETE("/:id", handler.Delete)
	}
}
