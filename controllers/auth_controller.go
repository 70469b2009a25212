package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"flatmates_server/models"
)

// AuthOperations is the slice of the auth service the controller uses.
type AuthOperations interface {
	Register(ctx context.Context, email, password, name, userType string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// AuthController handles registration and login requests
type AuthController struct {
	AuthService AuthOperations
}

// NewAuthController creates a new AuthController instance
func NewAuthController(authService AuthOperations) *AuthController {
	return &AuthController{AuthService: authService}
}

// HandleRegister creates a new account and returns it with a token
func (ac *AuthController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		UserType string `json:"userType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}

	user, token, err := ac.AuthService.Register(r.Context(), request.Email, request.Password, request.Name, request.UserType)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"token": token, "user": user})
}

// HandleLogin verifies credentials and returns the account with a token
func (ac *AuthController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}

	user, token, err := ac.AuthService.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"token": token, "user": user})
}
