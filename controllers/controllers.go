package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"flatmates_server/services"
)

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Flatmates API"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError maps a service error to an HTTP status and a generic
// {"message": ...} body. Unexpected errors become a plain server error so
// internals never leak to the client.
func respondError(w http.ResponseWriter, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, services.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, services.ErrNotFound):
		status, message = http.StatusNotFound, "User not found"
	case errors.Is(err, services.ErrEmailTaken):
		status, message = http.StatusConflict, "Email already registered"
	case errors.Is(err, services.ErrStoreUnavailable):
		status, message = http.StatusServiceUnavailable, "Service temporarily unavailable, please retry"
	default:
		log.Printf("Unexpected error: %v", err)
		status, message = http.StatusInternalServerError, "Something went wrong!"
	}

	respondJSON(w, status, map[string]string{"message": message})
}
