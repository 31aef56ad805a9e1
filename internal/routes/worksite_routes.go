package routes

import (
	"github.com/gin-gonic/gin"

	"worktrack/internal/controllers"
	"worktrack/internal/middleware"
	"worktrack/internal/models"
)

func WorksiteRoutes(r *gin.Engine, ctl *controllers.WorksiteController) {
	sites := r.Group("/worksites")
	sites.Use(middleware.RequireAuth())
	{
		sites.GET("", ctl.List)
		sites.GET("/:id", ctl.Get)
	}

	adminSites := r.Group("/worksites")
	adminSites.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
	{
		adminSites.POST("", ctl.Create)
		adminSites.PUT("/:id", ctl.Update)
		adminSites.DELETE("/:id", ctl.Delete)
	}
}
