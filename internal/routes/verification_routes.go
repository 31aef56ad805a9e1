package routes

import (
	"github.com/gin-gonic/gin"

	"worktrack/internal/controllers"
	"worktrack/internal/middleware"
	"worktrack/internal/models"
)

func VerificationRoutes(r *gin.Engine, ctl *controllers.VerificationController) {
	images := r.Group("/verification-images")
	images.Use(middleware.RequireRoles(models.RoleManager, models.RoleAdmin))
	{
		images.GET("/recent", ctl.Recent)
	}
}
