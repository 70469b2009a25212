package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"flatmates_server/middleware"
	"flatmates_server/models"
	"flatmates_server/services"
)

// ProfileOperations is the slice of the profile service the controller uses.
type ProfileOperations interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, update services.ProfileUpdate) (*models.User, error)
}

// UserProfileController handles requests related to the requester's own profile
type UserProfileController struct {
	UserProfileService ProfileOperations
}

// NewUserProfileController creates a new instance of UserProfileController
func NewUserProfileController(userProfileService ProfileOperations) *UserProfileController {
	return &UserProfileController{UserProfileService: userProfileService}
}

// HandleGetMe returns the authenticated requester's own record
func (c *UserProfileController) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := c.UserProfileService.GetUser(r.Context(), middleware.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// HandleUpdateProfile applies a partial update to the requester's profile
// and room listing. Fields missing from the payload are preserved.
func (c *UserProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}

	updated, err := c.UserProfileService.UpdateProfile(r.Context(), middleware.UserID(r), update)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
