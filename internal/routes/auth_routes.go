package routes

import (
	"github.com/gin-gonic/gin"

	"worktrack/internal/controllers"
	"worktrack/internal/middleware"
)

func AuthRoutes(r *gin.Engine, ctl *controllers.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", ctl.Register)
		auth.POST("/login", ctl.Login)
		auth.GET("/me", middleware.RequireAuth(), ctl.Me)
	}
}
