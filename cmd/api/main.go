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

	"github.com/avalon-edu/campus-api/internal/config"
	"github.com/avalon-edu/campus-api/internal/database"
	"github.com/avalon-edu/campus-api/internal/handler"
	"github.com/avalon-edu/campus-api/internal/middleware"
	"github.com/avalon-edu/campus-api/internal/models"
	"github.com/avalon-edu/campus-api/internal/repository"
	"github.com/avalon-edu/campus-api/internal/router"
	"github.com/avalon-edu/campus-api/internal/service"
	"github.com/avalon-edu/campus-api/pkg/storage"
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
		&models.Student{},
		&models.Course{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Grade{},
		&models.AttendanceRecord{},
		&models.Message{},
		&models.Announcement{},
		&models.CalendarEvent{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	var uploader service.FileUploader
	if cfg.CloudinaryCloudName != "" {
		cloudUploader, err := storage.NewCloudinaryUploader(storage.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudUploader
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	gradeRepo := repository.NewGradeRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	eventPublisher := service.NewNATSGradeEventPublisher(natsConn, cfg.GradeEventSubject, logger)

	ledger := service.NewGradeLedgerService(gradeRepo, submissionRepo, assignmentRepo, courseRepo, validate, activityService, eventPublisher, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, validate, uploader, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo, validate, logger)
	courseService := service.NewCourseService(courseRepo, studentRepo, validate, logger)
	studentService := service.NewStudentService(studentRepo, validate, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, activityService, validate, logger)
	gradebookService := service.NewGradebookService(courseRepo, assignmentRepo, gradeRepo, logger)
	dashboardService := service.NewDashboardService(ledger, attendanceService, courseRepo, studentRepo, submissionRepo, assignmentRepo, redisClient, cfg.DashboardCacheTTL, logger)
	messageService := service.NewMessageService(messageRepo, announcementRepo, activityService, validate, logger)
	calendarService := service.NewCalendarService(calendarRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		GradeHandler:      handler.NewGradeHandler(ledger, logger),
		GradebookHandler:  handler.NewGradebookHandler(gradebookService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		CourseHandler:     handler.NewCourseHandler(courseService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		MessageHandler:    handler.NewMessageHandler(messageService, logger),
		CalendarHandler:   handler.NewCalendarHandler(calendarService, logger),
		ActivityHandler:   handler.NewActivityHandler(activityService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
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
