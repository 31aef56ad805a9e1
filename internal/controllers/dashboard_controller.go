package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"worktrack/internal/models"
	"worktrack/internal/service"
)

type DashboardController struct {
	stats *service.DashboardService
	db    *gorm.DB
}

func NewDashboardController(stats *service.DashboardService, db *gorm.DB) *DashboardController {
	return &DashboardController{stats: stats, db: db}
}

// Stats returns the operational statistics document. Recomputed on every
// call; nothing is cached.
func (ctl *DashboardController) Stats(c *gin.Context) {
	stats, err := ctl.stats.Stats(c.Request.Context(), time.Now())
	if err != nil {
		logrus.WithError(err).Error("computing dashboard stats failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Map returns active worksites and the last 8 hours of check-ins as a
// GeoJSON FeatureCollection for the employee map.
func (ctl *DashboardController) Map(c *gin.Context) {
	var sites []models.Worksite
	if err := ctl.db.Where("active = ?", true).Find(&sites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing worksites: " + err.Error()})
		return
	}

	since := time.Now().Add(-8 * time.Hour)
	var checkins []models.Checkin
	if err := ctl.db.Where("timestamp >= ?", since).Preload("User").Find(&checkins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing check-ins: " + err.Error()})
		return
	}

	collection := &gjson.FeatureCollection{Features: []*gjson.Feature{}}
	for _, site := range sites {
		collection.Features = append(collection.Features, &gjson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{site.Longitude, site.Latitude}),
			Properties: map[string]interface{}{
				"type":   "worksite",
				"id":     site.ID,
				"name":   site.Name,
				"radius": site.Radius,
			},
		})
	}
	for _, checkin := range checkins {
		collection.Features = append(collection.Features, &gjson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{checkin.Longitude, checkin.Latitude}),
			Properties: map[string]interface{}{
				"type":      "checkin",
				"id":        checkin.ID,
				"user":      checkin.User.FullName,
				"is_onsite": checkin.IsOnsite,
				"status":    checkin.Status,
				"timestamp": checkin.Timestamp,
			},
		})
	}

	c.JSON(http.StatusOK, collection)
}
