package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-hub/academy-api/internal/config"
	"github.com/campus-hub/academy-api/internal/database"
	"github.com/campus-hub/academy-api/internal/handler"
	"github.com/campus-hub/academy-api/internal/middleware"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/repository"
	"github.com/campus-hub/academy-api/internal/router"
	"github.com/campus-hub/academy-api/internal/service"
	cloud "github.com/campus-hub/academy-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.AttendanceRecord{},
		&models.Assignment{},
		&models.Submission{},
		&models.Announcement{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	userService := service.NewUserService(userRepo, validate, activityService, logger)
	courseService := service.NewCourseService(courseRepo, assignmentRepo, validate, activityService, logger)
	enrollmentService := service.NewEnrollmentService(courseRepo, userRepo, validate, activityService, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo, validate, uploader, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, validate, activityService, logger)
	adminDashboardService := service.NewAdminDashboardService(analyticsRepo, logger)
	staffDashboardService := service.NewStaffDashboardService(courseRepo, assignmentRepo, logger)
	studentDashboardService := service.NewStudentDashboardService(courseRepo, assignmentRepo, redisClient, cfg.DashboardCacheTTL, logger)

	authHandler := handler.NewAuthHandler(authService, cfg.TokenTTL, !cfg.IsDevelopment(), logger)
	adminHandler := handler.NewAdminHandler(userService, courseService, enrollmentService, announcementService, adminDashboardService, activityService, logger)
	staffHandler := handler.NewStaffHandler(courseService, enrollmentService, assignmentService, staffDashboardService, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, logger)
	studentHandler := handler.NewStudentHandler(studentDashboardService, assignmentService, enrollmentService, announcementService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       authHandler,
		AdminHandler:      adminHandler,
		StaffHandler:      staffHandler,
		AssignmentHandler: assignmentHandler,
		StudentHandler:    studentHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
