package user

import (
	"topcv/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	{
		// Registration endpoints are unauthenticated; throttle per IP.
		users.POST("/register", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Register)
		users.POST("/verify-email", middleware.RateLimitByIP(rate.Limit(1), 5), handler.VerifyEmail)
		users.POST("/resend-otp", middleware.RateLimitByIP(rate.Limit(0.2), 2), handler.ResendOtp)

		authed := users.Group("")
		authed.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
		{
			authed.GET("/me", handler.GetMe)
			authed.PUT("/me", handler.Update)
			authed.GET("", middleware.RoleMiddleware(RoleAdmin), handler.GetAll)
		}
	}
}
