package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"worktrack/internal/blobstore"
	"worktrack/internal/controllers"
)

// Deps carries the wired controllers into route registration.
type Deps struct {
	Auth          *controllers.AuthController
	Checkins      *controllers.CheckinController
	Worksites     *controllers.WorksiteController
	Dashboard     *controllers.DashboardController
	Verifications *controllers.VerificationController

	// MediaRoot is the local directory served for verification images.
	MediaRoot string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Request logging middleware
	r.Use(ginlog.SetLogger())

	AuthRoutes(r, d.Auth)
	CheckinRoutes(r, d.Checkins)
	WorksiteRoutes(r, d.Worksites)
	DashboardRoutes(r, d.Dashboard, d.Auth)
	VerificationRoutes(r, d.Verifications)

	// Stored verification images are served statically under the media
	// prefix; keys are server-generated, never client paths.
	if d.MediaRoot != "" {
		r.Static(blobstore.MediaURLPath, d.MediaRoot)
	}

	return r
}
