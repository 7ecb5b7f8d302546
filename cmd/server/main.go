package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exam-tasks-api/internal/api"
	"exam-tasks-api/internal/config"
	"exam-tasks-api/internal/database"
	"exam-tasks-api/internal/services"
	"exam-tasks-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := setupLogger(cfg.Server.Env)

	// Initialize MongoDB client
	mongoClient, err := database.NewMongoDBClient(cfg.MongoDB, log)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Close()
	log.Info("connected to MongoDB")

	// Initialize attachment store
	s3Client, err := services.NewS3Client(context.Background(), &cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 client: %v", err)
	}
	s3Service := services.NewS3Service(s3Client, cfg.S3.Bucket, log)

	// Event recording is optional
	var events services.EventRecorder = services.NopRecorder{}
	if cfg.InfluxDB.URL != "" {
		influxService, err := services.NewInfluxService(cfg.InfluxDB, log)
		if err != nil {
			log.WithError(err).Warn("InfluxDB unavailable, task events disabled")
		} else {
			defer influxService.Close()
			events = influxService
		}
	} else {
		log.Info("InfluxDB not configured, task events disabled")
	}

	// Initialize services
	taskRepository := database.NewTaskRepository(mongoClient.Database())
	taskService := services.NewTaskService(taskRepository, s3Service, events, log)
	jwtService := services.NewJWTService(cfg.JWT.Secret)

	schemas, err := validation.LoadTaskSchemas()
	if err != nil {
		log.Fatalf("Failed to load request schemas: %v", err)
	}

	// Setup routes
	handlers := api.NewHandlers(taskService, log)
	router := api.SetupRoutes(handlers, jwtService, schemas, cfg.S3.MaxFileSize, log)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	done := setupGracefulShutdown(server, log)

	// Start server
	log.Infof("Starting server on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}

	// ListenAndServe returns as soon as Shutdown starts; the deferred Mongo
	// and InfluxDB closes must wait for in-flight requests
	<-done
	log.Info("server stopped")
}

// setupLogger builds the process logger; local runs log at debug level
func setupLogger(env string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	switch env {
	case "local":
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	return log
}

// setupGracefulShutdown stops accepting requests on SIGINT or SIGTERM. The
// returned channel is closed once in-flight requests have finished.
func setupGracefulShutdown(server *http.Server, log *logrus.Logger) <-chan struct{} {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-sigChan
		signal.Stop(sigChan)
		log.Info("Shutting down gracefully...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("server shutdown")
		}
	}()

	return done
}
