package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"worktrack/internal/middleware"
	"worktrack/internal/models"
	"worktrack/internal/service"
)

type CheckinController struct {
	checkins *service.CheckinService
}

func NewCheckinController(checkins *service.CheckinService) *CheckinController {
	return &CheckinController{checkins: checkins}
}

type checkinInput struct {
	WorksiteID uint    `json:"worksite_id" binding:"required"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Notes      string  `json:"notes"`
	Photo      string  `json:"photo"`
}

// Submit records a check-in for the authenticated employee. The timestamp is
// always the server clock; anything client-supplied is ignored.
func (ctl *CheckinController) Submit(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var input checkinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	checkin, err := ctl.checkins.Record(c.Request.Context(), userID, service.CheckinSubmission{
		WorksiteID: input.WorksiteID,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		Notes:      input.Notes,
		Photo:      input.Photo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorksiteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "worksite unavailable"})
		case errors.Is(err, service.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrImageConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).Error("check-in submission failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record check-in"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"checkin": checkin})
}

// Recent returns check-ins from the last 24 hours for the review console.
func (ctl *CheckinController) Recent(c *gin.Context) {
	since := time.Now().Add(-24 * time.Hour)
	checkins, err := ctl.checkins.Recent(c.Request.Context(), since)
	if err != nil {
		logrus.WithError(err).Error("listing recent check-ins failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list check-ins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": checkins})
}

// Mine returns the authenticated employee's own check-in history.
func (ctl *CheckinController) Mine(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	checkins, err := ctl.checkins.ForUser(c.Request.Context(), userID, 50)
	if err != nil {
		logrus.WithError(err).Error("listing user check-ins failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list check-ins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": checkins})
}

// UpdateStatus applies a review decision to a pending check-in.
func (ctl *CheckinController) UpdateStatus(c *gin.Context) {
	checkinID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check-in ID format."})
		return
	}

	var body struct {
		Status models.CheckinStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	checkin, err := ctl.checkins.UpdateStatus(c.Request.Context(), uint(checkinID), body.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckinNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "check-in not found"})
		case errors.Is(err, service.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).Error("check-in status update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update check-in"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkin": checkin})
}
