package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medivuno-api/config"
	deliveryHttp "medivuno-api/internal/delivery/http"
	"medivuno-api/internal/delivery/http/handler"
	"medivuno-api/internal/delivery/http/middleware"
	"medivuno-api/internal/delivery/websocket"
	"medivuno-api/internal/infrastructure/cache"
	"medivuno-api/internal/infrastructure/database"
	"medivuno-api/internal/repository"
	"medivuno-api/internal/service"
	"medivuno-api/internal/usecase"
	"medivuno-api/pkg/jwt"
	"medivuno-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Reminder    *service.ReminderService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server, app.Reminder = initializeServer(cfg, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.ReminderService) {
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	doctorProfileRepo := repository.NewDoctorProfileRepository(db)
	patientProfileRepo := repository.NewPatientProfileRepository(db)
	slotRepo := repository.NewAvailabilitySlotRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewNotificationSettingsRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	hub := websocket.NewHub(log)
	notifier := service.NewNotificationService(log, notificationRepo, settingsRepo, hub)
	auditService := service.NewAuditService(log, auditRepo)
	slotHolder := service.NewRedisSlotHolder(redisClient)
	planner := service.NewWeeklyPlanner(cfg.Availability)
	reminder := service.NewReminderService(log, cfg.Reminder, appointmentRepo, notificationRepo, notifier)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, jwtService, redisClient, auditService)
	profileUsecase := usecase.NewProfileUsecase(log, userRepo, doctorProfileRepo, patientProfileRepo, auditService)
	availabilityUsecase := usecase.NewAvailabilityUsecase(log, slotRepo, doctorProfileRepo, planner, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, slotRepo, doctorProfileRepo, patientProfileRepo, slotHolder, notifier, auditService)
	notificationUsecase := usecase.NewNotificationUsecase(log, notificationRepo, notifier)
	settingsUsecase := usecase.NewSettingsUsecase(log, settingsRepo)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(log, prescriptionRepo, patientProfileRepo, notifier, auditService)
	messageUsecase := usecase.NewMessageUsecase(log, messageRepo, userRepo, notifier)
	adminUsecase := usecase.NewAdminUsecase(log, userRepo, doctorProfileRepo, redisClient, notifier, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase)
	settingsHandler := handler.NewSettingsHandler(settingsUsecase)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator)
	messageHandler := handler.NewMessageHandler(messageUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator)
	streamHandler := handler.NewStreamHandler(websocket.NewHandler(hub))

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		profileHandler,
		availabilityHandler,
		appointmentHandler,
		notificationHandler,
		settingsHandler,
		prescriptionHandler,
		messageHandler,
		adminHandler,
		streamHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
	return server, reminder
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	if err := app.Reminder.Start(); err != nil {
		logrus.Fatalf("Failed to start reminder job: %v", err)
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	app.Reminder.Stop()

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
