package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"careernest/internal/config"
	"careernest/internal/database/mongo"
	"careernest/internal/database/redis"
	"careernest/internal/events"
	"careernest/internal/handlers"
	"careernest/internal/location"
	"careernest/internal/mailer"
	"careernest/internal/repository"
	"careernest/internal/service"
	"careernest/internal/storage"
	"careernest/pkg/discovery"

	"github.com/gofiber/fiber/v3"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/careernest", "log")
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Printf("Failed to set up log file, logging to stderr: %v", err)
	} else {
		defer logFile.Close()
	}

	cfg := config.ServiceConfig
	db := mongo.Mongo_Database

	seekerRepo := repository.NewSeekerRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	notificationRepo := repository.NewNotificationRepository(db, cfg.NotificationRetention)
	shadowRepo := repository.NewShadowRepository(redis.Redis_Client)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	for name, create := range map[string]func(context.Context) error{
		"seekers":       seekerRepo.CreateIndexes,
		"companies":     companyRepo.CreateIndexes,
		"jobs":          jobRepo.CreateIndexes,
		"applications":  applicationRepo.CreateIndexes,
		"bookmarks":     bookmarkRepo.CreateIndexes,
		"notifications": notificationRepo.CreateIndexes,
	} {
		if err := create(indexCtx); err != nil {
			log.Printf("Warning: failed to ensure indexes for %s: %v", name, err)
		}
	}
	indexCancel()

	uploader, err := storage.NewMinioUploader(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	sender := mailer.NewSMTPSender(cfg)
	resolver := location.NewRegionResolver(location.NewGeocodeClient(cfg.GeocodeBaseURL), cfg.SupportedRegion)

	publisher, err := events.NewEventPublisher(cfg.RabbitMQURI)
	if err != nil {
		log.Printf("Warning: event publishing disabled: %v", err)
		publisher, _ = events.NewEventPublisher("")
	}

	consumer, err := events.NewEventConsumer(cfg.RabbitMQURI, notificationRepo, sender)
	if err != nil {
		log.Printf("Warning: event consumption disabled: %v", err)
	} else if consumer != nil {
		if err := consumer.Start(); err != nil {
			log.Printf("Warning: failed to start event consumer: %v", err)
		}
	}

	jwtService := service.NewJWTService(cfg)
	authService := service.NewAuthService(seekerRepo, companyRepo, shadowRepo, redis.Redis_Client, jwtService, sender, cfg)
	verificationService := service.NewVerificationService(seekerRepo, companyRepo, shadowRepo, jwtService, resolver, uploader, publisher)
	listingService := service.NewListingService(jobRepo, companyRepo, seekerRepo, applicationRepo, bookmarkRepo)
	jobService := service.NewJobService(jobRepo, companyRepo, seekerRepo, applicationRepo, bookmarkRepo, publisher)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, seekerRepo, companyRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, jobRepo, seekerRepo, companyRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	profileService := service.NewProfileService(seekerRepo, companyRepo, resolver, uploader)
	adminService := service.NewAdminService(seekerRepo, companyRepo, jobRepo, applicationRepo)

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	handlers.NewAuthHandler(authService, verificationService).RegisterRoutes(app)
	handlers.NewJobHandler(listingService, jwtService).RegisterRoutes(app)
	handlers.NewSeekerHandler(profileService, applicationService, bookmarkService, notificationService, jwtService).RegisterRoutes(app)
	handlers.NewCompanyHandler(profileService, verificationService, jobService, listingService, applicationService, jwtService).RegisterRoutes(app)
	handlers.NewAdminHandler(adminService, verificationService, jwtService).RegisterRoutes(app)

	registry, err := discovery.NewServiceRegistry(cfg)
	if err != nil {
		log.Printf("Warning: service discovery unavailable: %v", err)
	} else if err := registry.Register(); err != nil {
		log.Printf("Warning: failed to register with Consul: %v", err)
	}

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	if registry != nil {
		if err := registry.Deregister(); err != nil {
			log.Printf("Error deregistering service: %v", err)
		}
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Printf("Error closing event consumer: %v", err)
		}
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Printf("Error closing event publisher: %v", err)
		}
	}
	if err := app.Shutdown(); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	mongo.DisconnectMongo()

	<-doneChan
	log.Println("Server exited, goodbye!")
}
