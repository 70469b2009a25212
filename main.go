package main

import (
	"context"
	"log"
	"net/http"

	"flatmates_server/config"
	"flatmates_server/controllers"
	"flatmates_server/routes"
	"flatmates_server/services"
	"flatmates_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	authService := &services.AuthService{
		Dynamo:    dynamoService,
		JWTSecret: []byte(cfg.JWTSecret),
		TokenTTL:  cfg.TokenTTL,
	}
	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	matchService := &services.MatchService{Dynamo: dynamoService}
	s3Service := services.NewS3Service(cfg.AWSRegion, cfg.S3BucketName)

	if cfg.SeedDemoProfiles {
		if err := userProfileService.SeedDemoProfiles(context.Background()); err != nil {
			log.Printf("Failed to seed demo profiles: %v", err)
		}
	}

	// Initialize the socket.io server for match notifications
	socketServer := socket.NewServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize the router
	r := mux.NewRouter()

	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterAuthRoutes(r, authService)
	routes.RegisterProfileRoutes(r, authService, userProfileService, matchService, socketServer)
	routes.RegisterS3Routes(r, authService, s3Service)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
