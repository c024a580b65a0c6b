package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iftoesports/portal-backend/internal/config"
	"github.com/iftoesports/portal-backend/internal/handlers"
	"github.com/iftoesports/portal-backend/internal/services"
	"github.com/iftoesports/portal-backend/internal/store"
	filestore "github.com/iftoesports/portal-backend/internal/store/file"
	"github.com/iftoesports/portal-backend/internal/store/memory"
	"github.com/iftoesports/portal-backend/internal/store/mongodb"
	"github.com/iftoesports/portal-backend/internal/store/redisstore"
	"github.com/iftoesports/portal-backend/pkg/email"
	"github.com/iftoesports/portal-backend/pkg/logger"
	"github.com/iftoesports/portal-backend/pkg/middleware"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	stores, err := buildStores(cfg)
	if err != nil {
		log.Fatalf("Store initialization error: %v", err)
	}

	var notifier email.Notifier = email.LogNotifier{}
	if cfg.Notifier == "smtp" {
		notifier = email.SMTPNotifier{}
	}

	// --- Services ---
	authService := services.NewAuthService(stores, services.BcryptHasher{}, notifier)
	teamService := services.NewTeamService(stores.Teams)
	adminService := services.NewAdminService(stores.Teams, stores.Users, notifier)

	// Bootstrap the fixed admin account; safe to run on every start.
	if err := authService.EnsureAdminUser(context.Background()); err != nil {
		log.Fatalf("Admin bootstrap error: %v", err)
	}

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(authService, cfg)
	teamHandler := handlers.NewTeamHandler(teamService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	// Public routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/request-password-reset", userHandler.RequestPasswordResetHandler).Methods("POST")
	router.HandleFunc("/users/verify-reset-token", userHandler.VerifyResetTokenHandler).Methods("POST")
	router.HandleFunc("/users/reset-password", userHandler.ResetPasswordHandler).Methods("POST")
	router.HandleFunc("/games", teamHandler.ListGamesHandler).Methods("GET")
	router.HandleFunc("/institutes", teamHandler.ListInstitutesHandler).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/logout", userHandler.LogoutUserHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/me", userHandler.GetMeHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.UpdateUserHandler).Methods("PATCH")

	// Team registration routes
	teamRoutes := router.PathPrefix("/teams").Subrouter()
	teamRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	teamRoutes.HandleFunc("", teamHandler.RegisterTeamHandler).Methods("POST")
	teamRoutes.HandleFunc("/my", teamHandler.MyTeamsHandler).Methods("GET")
	teamRoutes.HandleFunc("/{id}", teamHandler.GetTeamHandler).Methods("GET")
	teamRoutes.HandleFunc("/{id}/confirm-payment", teamHandler.ConfirmPaymentHandler).Methods("POST")

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireAdmin)
	adminRoutes.HandleFunc("/teams", adminHandler.ListTeamsHandler).Methods("GET")
	adminRoutes.HandleFunc("/teams/export", adminHandler.ExportTeamsHandler).Methods("GET")
	adminRoutes.HandleFunc("/teams/bulk-delete", adminHandler.BulkDeleteHandler).Methods("POST")
	adminRoutes.HandleFunc("/teams/{id}/approve-payment", adminHandler.ApprovePaymentHandler).Methods("POST")
	adminRoutes.HandleFunc("/teams/{id}/approve", adminHandler.ApproveTeamHandler).Methods("POST")
	adminRoutes.HandleFunc("/teams/{id}/reject", adminHandler.RejectTeamHandler).Methods("POST")
	adminRoutes.HandleFunc("/teams/{id}", adminHandler.DeleteTeamHandler).Methods("DELETE")
	adminRoutes.HandleFunc("/stats", adminHandler.StatsHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

// buildStores wires the persistence layer selected by configuration.
func buildStores(cfg *config.Config) (store.Stores, error) {
	var stores store.Stores

	switch cfg.StoreBackend {
	case "file":
		fileStore, err := filestore.New(cfg.DataDir)
		if err != nil {
			return store.Stores{}, err
		}
		stores = fileStore.Stores()
	case "mongo":
		db, err := mongodb.Connect(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return store.Stores{}, err
		}
		stores = mongodb.NewStores(db)
	default:
		stores = memory.New().Stores()
	}

	if cfg.SessionBackend == "redis" {
		client, err := redisstore.Connect(cfg.RedisURI)
		if err != nil {
			return store.Stores{}, err
		}
		stores.Sessions = redisstore.NewSessionStore(client)
	}

	return stores, nil
}
