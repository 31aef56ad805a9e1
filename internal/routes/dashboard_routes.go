package routes

import (
	"github.com/gin-gonic/gin"

	"worktrack/internal/controllers"
	"worktrack/internal/middleware"
	"worktrack/internal/models"
)

func DashboardRoutes(r *gin.Engine, ctl *controllers.DashboardController, auth *controllers.AuthController) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.RequireRoles(models.RoleManager, models.RoleAdmin))
	{
		dashboard.GET("/stats", ctl.Stats)
		dashboard.GET("/map", ctl.Map)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/employees", auth.ListEmployees)
	}
}
