package routes

import (
	"github.com/gin-gonic/gin"

	"worktrack/internal/controllers"
	"worktrack/internal/middleware"
	"worktrack/internal/models"
)

func CheckinRoutes(r *gin.Engine, ctl *controllers.CheckinController) {
	checkins := r.Group("/checkins")
	{
		checkins.POST("", middleware.RequireRoles(models.RoleEmployee), ctl.Submit)
		checkins.GET("/mine", middleware.RequireRoles(models.RoleEmployee), ctl.Mine)
		checkins.GET("/recent", middleware.RequireRoles(models.RoleManager, models.RoleAdmin), ctl.Recent)
		checkins.PATCH("/:id/status", middleware.RequireRoles(models.RoleManager, models.RoleAdmin), ctl.UpdateStatus)
	}
}
