package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"flatmates_server/middleware"
)

// Presigner issues presigned S3 URLs for photo upload and retrieval.
type Presigner interface {
	GenerateUploadURL(ctx context.Context, userID, fileName, fileType string) (string, string, error)
	GenerateReadURL(ctx context.Context, key string) (string, error)
}

// S3Controller handles presigned URL requests for profile photos
type S3Controller struct {
	S3Service Presigner
}

// NewS3Controller creates a new S3Controller instance
func NewS3Controller(s3Service Presigner) *S3Controller {
	return &S3Controller{S3Service: s3Service}
}

// HandleUploadURL generates a presigned URL for uploading a profile photo
func (sc *S3Controller) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.FileName == "" || payload.FileType == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "fileName and fileType are required"})
		return
	}

	url, key, err := sc.S3Service.GenerateUploadURL(r.Context(), middleware.UserID(r), payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("Failed to generate upload URL: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to generate upload URL"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// HandleReadURL generates a presigned URL for reading a stored photo
func (sc *S3Controller) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "key is required"})
		return
	}

	url, err := sc.S3Service.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		log.Printf("Failed to generate read URL: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to generate read URL"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
