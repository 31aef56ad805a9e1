package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"worktrack/internal/models"
	"worktrack/internal/service"
)

type VerificationController struct {
	verifications *service.VerificationService
}

func NewVerificationController(verifications *service.VerificationService) *VerificationController {
	return &VerificationController{verifications: verifications}
}

// verificationImageResponse carries the image record plus a resolved
// absolute URL. The URL is null when no base could be derived.
type verificationImageResponse struct {
	models.VerificationImage
	ImageURL *string `json:"image_url"`
}

// Recent returns verification images from the last 24 hours with resolved
// download URLs for the review console.
func (ctl *VerificationController) Recent(c *gin.Context) {
	since := time.Now().Add(-24 * time.Hour)
	images, err := ctl.verifications.Recent(c.Request.Context(), since)
	if err != nil {
		logrus.WithError(err).Error("listing verification images failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list verification images"})
		return
	}

	base := requestBaseURL(c)
	responses := make([]verificationImageResponse, 0, len(images))
	for i := range images {
		resp := verificationImageResponse{VerificationImage: images[i]}
		if url := ctl.verifications.ResolveURL(&images[i], base); url != "" {
			resp.ImageURL = &url
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// requestBaseURL derives the absolute base URL from the incoming request,
// or empty when there is nothing to derive it from.
func requestBaseURL(c *gin.Context) string {
	if c.Request == nil || c.Request.Host == "" {
		return ""
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
