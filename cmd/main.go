package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"DoctorPortal/cache"
	"DoctorPortal/config"
	"DoctorPortal/database"
	"DoctorPortal/routes"
	"DoctorPortal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	appConfig, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize Redis
	if err := database.InitializeRedis(appConfig.RedisAddress); err != nil {
		log.Fatalf("failed to initialize Redis client: %v", err)
	}

	// Initialize the cache utility
	cacheClient, err := cache.NewCache()
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	handler, orderService, err := routes.SetupRoutes(cacheClient, appConfig)
	if err != nil {
		log.Fatalf("failed to set up routes: %v", err)
	}

	// Start background maintenance
	maintenance := scheduler.NewMaintenance(orderService)
	if err := maintenance.Start(); err != nil {
		log.Fatalf("failed to start maintenance scheduler: %v", err)
	}
	defer maintenance.Stop()

	// Configure and start the server
	srv := &http.Server{
		Addr:           appConfig.ListenAddress,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Printf("Starting server on %s", appConfig.ListenAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait()
	log.Println("Server exited gracefully")
}

// loadConfig loads configuration from environment variables.
func loadConfig() (*config.AppConfig, error) {
	backendBaseURL := os.Getenv("BACKEND_BASE_URL")
	if backendBaseURL == "" {
		return nil, errors.New("missing BACKEND_BASE_URL environment variable")
	}

	redisAddress := os.Getenv("REDIS_URL")
	if redisAddress == "" {
		return nil, errors.New("missing REDIS_URL environment variable")
	}

	sessionKey := os.Getenv("SESSION_KEY")
	if len(sessionKey) != 32 {
		return nil, errors.New("SESSION_KEY environment variable must be exactly 32 bytes")
	}

	listenAddress := os.Getenv("LISTEN_ADDR")
	if listenAddress == "" {
		listenAddress = ":8930"
	}

	// Hours added to backend timestamps before display; defaults to zero.
	displayShift := time.Duration(0)
	if raw := os.Getenv("DISPLAY_SHIFT_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("DISPLAY_SHIFT_HOURS must be an integer number of hours")
		}
		displayShift = time.Duration(hours) * time.Hour
	}

	return &config.AppConfig{
		BackendBaseURL: backendBaseURL,
		RedisAddress:   redisAddress,
		SessionKey:     sessionKey,
		ListenAddress:  listenAddress,
		DisplayShift:   displayShift,
	}, nil
}
