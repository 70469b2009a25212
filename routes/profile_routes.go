package routes

import (
	"flatmates_server/controllers"
	"flatmates_server/middleware"
	"flatmates_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up the authenticated profile, swipe and match
// routes under /api/profiles. Every handler receives the requester identity
// from the auth middleware; nothing here reads ambient session state.
func RegisterProfileRoutes(r *mux.Router, authService *services.AuthService, userProfileService *services.UserProfileService, matchService *services.MatchService, notifier controllers.MatchNotifier) {
	profileController := controllers.NewUserProfileController(userProfileService)
	matchController := controllers.NewMatchController(matchService, notifier)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.Use(middleware.RequireAuth(authService))

	profileRouter.HandleFunc("/me", profileController.HandleGetMe).Methods("GET")
	profileRouter.HandleFunc("/profile", profileController.HandleUpdateProfile).Methods("PUT")

	profileRouter.HandleFunc("/potential-matches", matchController.HandlePotentialMatches).Methods("GET")
	profileRouter.HandleFunc("/like/{userId}", matchController.HandleLike).Methods("POST")
	profileRouter.HandleFunc("/dislike/{userId}", matchController.HandleDislike).Methods("POST")
	profileRouter.HandleFunc("/matches", matchController.HandleMatches).Methods("GET")
}
