package routes

import (
	"flatmates_server/controllers"
	"flatmates_server/middleware"
	"flatmates_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up the presigned photo URL routes under /api/s3
func RegisterS3Routes(r *mux.Router, authService *services.AuthService, s3Service *services.S3Service) {
	controller := controllers.NewS3Controller(s3Service)

	s3Router := r.PathPrefix("/api/s3").Subrouter()
	s3Router.Use(middleware.RequireAuth(authService))
	s3Router.HandleFunc("/upload-url", controller.HandleUploadURL).Methods("POST")
	s3Router.HandleFunc("/read-url", controller.HandleReadURL).Methods("POST")
}
