// Main entry point of the chatstore application: loads configuration, connects
// to the database, runs migrations, wires services and handlers, sets up the
// HTTP router and middleware, and starts the server with graceful shutdown.
//
// @title Chatstore API
// @version 1.0
// @description Minimal messaging backend: send short text messages between users and retrieve them over a trailing date range with paginated, most-recent-first results.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/chatstore-go/apperror"
	"github.com/user/chatstore-go/config"
	"github.com/user/chatstore-go/db"
	_ "github.com/user/chatstore-go/docs" // Generated Swagger docs
	"github.com/user/chatstore-go/messages"
	"github.com/user/chatstore-go/users"
)

var log = logrus.New()

func main() {
	// .env is a development convenience; in production variables are set directly.
	if err := godotenv.Load(); err != nil {
		log.Warnf(".env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Manual dependency injection: services get the pool and chat limits,
	// handlers get the services.
	userService := users.NewUserService(pool, cfg.Chat)
	userHandlers := users.NewUserHandlers(userService)

	messageService := messages.NewMessageService(pool, cfg.Chat)
	messageHandlers := messages.NewMessageHandlers(messageService, userService, cfg.Chat)

	r := chi.NewRouter()

	// Global middleware; chi requires middleware before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that reports through the apperror response shape.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Errorf("Panic: %+v", rvr)
					apperror.WriteError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/health-check/", handleHealthCheck)

	r.Route("/message", func(r chi.Router) {
		messageHandlers.RegisterRoutes(r)
	})

	r.Route("/user", func(r chi.Router) {
		userHandlers.RegisterRoutes(r)
	})

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Info("Server stopped gracefully")
}

// handleHealthCheck godoc
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health-check/ [get]
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
