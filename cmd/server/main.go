package main

import (
	"log"
	"net/http"

	"worktrack/internal/blobstore/local"
	"worktrack/internal/config"
	"worktrack/internal/controllers"
	"worktrack/internal/logger"
	"worktrack/internal/middleware"
	"worktrack/internal/routes"
	"worktrack/internal/service"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	db := config.InitDB()

	mediaRoot := config.Env("MEDIA_ROOT", "./media/verification_images")
	blobs, err := local.New(mediaRoot)
	if err != nil {
		log.Fatalf("failed to initialize media storage: %v", err)
	}

	checkins := service.NewCheckinService(db, blobs)
	verifications := service.NewVerificationService(db)
	dashboard := service.NewDashboardService(db)

	// Setup Gin router
	r := routes.SetupRouter(routes.Deps{
		Auth:          controllers.NewAuthController(db),
		Checkins:      controllers.NewCheckinController(checkins),
		Worksites:     controllers.NewWorksiteController(db),
		Dashboard:     controllers.NewDashboardController(dashboard, db),
		Verifications: controllers.NewVerificationController(verifications),
		MediaRoot:     mediaRoot,
	})

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.Env("SERVER_ADDR", "0.0.0.0:8080")
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
