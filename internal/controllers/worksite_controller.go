package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"worktrack/internal/models"
)

// WorksiteResponse mirrors models.Worksite but carries the geofence center
// as a GeoJSON Point string for map clients.
type WorksiteResponse struct {
	ID        uint      `json:"ID"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Radius    int       `json:"radius"`
	Active    bool      `json:"active"`
	Geometry  string    `json:"geometry"`
}

func toWorksiteResponse(site models.Worksite) WorksiteResponse {
	geometry, _ := worksiteGeoJSON(site)
	return WorksiteResponse{
		ID:        site.ID,
		CreatedAt: site.CreatedAt,
		UpdatedAt: site.UpdatedAt,
		Name:      site.Name,
		Address:   site.Address,
		Latitude:  site.Latitude,
		Longitude: site.Longitude,
		Radius:    site.Radius,
		Active:    site.Active,
		Geometry:  geometry,
	}
}

// worksiteGeoJSON encodes the geofence center as a GeoJSON Point (lon/lat
// axis order per the spec).
func worksiteGeoJSON(site models.Worksite) (string, error) {
	p := geom.NewPointFlat(geom.XY, []float64{site.Longitude, site.Latitude})
	b, err := gjson.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type WorksiteController struct {
	db *gorm.DB
}

func NewWorksiteController(db *gorm.DB) *WorksiteController {
	return &WorksiteController{db: db}
}

type worksiteInput struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Radius    *int     `json:"radius"`
	Active    *bool    `json:"active"`
}

func (in worksiteInput) validate() error {
	if *in.Latitude < -90 || *in.Latitude > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if *in.Longitude < -180 || *in.Longitude > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	if in.Radius != nil && *in.Radius <= 0 {
		return errors.New("radius must be positive")
	}
	return nil
}

func (ctl *WorksiteController) List(c *gin.Context) {
	var sites []models.Worksite
	if err := ctl.db.Find(&sites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing worksites: " + err.Error()})
		return
	}

	responses := make([]WorksiteResponse, 0, len(sites))
	for _, site := range sites {
		responses = append(responses, toWorksiteResponse(site))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

func (ctl *WorksiteController) Get(c *gin.Context) {
	siteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worksite ID format."})
		return
	}

	var site models.Worksite
	if err := ctl.db.First(&site, uint(siteID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worksite not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"worksite": toWorksiteResponse(site)})
}

func (ctl *WorksiteController) Create(c *gin.Context) {
	var input worksiteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if err := input.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	site := models.Worksite{
		Name:      input.Name,
		Address:   input.Address,
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
		Radius:    100,
		Active:    true,
	}
	if input.Radius != nil {
		site.Radius = *input.Radius
	}
	if input.Active != nil {
		site.Active = *input.Active
	}

	if err := ctl.db.Create(&site).Error; err != nil {
		logrus.WithError(err).Error("creating worksite failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create worksite"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"worksite": toWorksiteResponse(site)})
}

func (ctl *WorksiteController) Update(c *gin.Context) {
	siteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worksite ID format."})
		return
	}

	var site models.Worksite
	if err := ctl.db.First(&site, uint(siteID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worksite not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var input worksiteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if err := input.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Editing the geofence only affects future check-ins; historical
	// records keep the classification computed at submission time.
	site.Name = input.Name
	site.Address = input.Address
	site.Latitude = *input.Latitude
	site.Longitude = *input.Longitude
	if input.Radius != nil {
		site.Radius = *input.Radius
	}
	if input.Active != nil {
		site.Active = *input.Active
	}

	if err := ctl.db.Save(&site).Error; err != nil {
		logrus.WithError(err).Error("updating worksite failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update worksite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"worksite": toWorksiteResponse(site)})
}

func (ctl *WorksiteController) Delete(c *gin.Context) {
	siteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worksite ID format."})
		return
	}

	var site models.Worksite
	if err := ctl.db.First(&site, uint(siteID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worksite not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	if err := ctl.db.Delete(&site).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete worksite: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Worksite deleted successfully."})
}
