package routes

import (
	"flatmates_server/controllers"
	"flatmates_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up routes for registration and login under /api/auth
func RegisterAuthRoutes(r *mux.Router, authService *services.AuthService) {
	controller := controllers.NewAuthController(authService)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", controller.HandleRegister).Methods("POST")
	authRouter.HandleFunc("/login", controller.HandleLogin).Methods("POST")
}
