package app

import (
	"database/sql"
	"fmt"
	"log"

	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/middleware"
	"taskboard/internal/pdf"
	"taskboard/internal/repositories"
	"taskboard/internal/routes"
	"taskboard/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	_ "taskboard/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetSigningKey(cfg.Auth.JWTSecret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	shareRepo := repositories.NewShareRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	invitationRepo := repositories.NewInvitationRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	userService := services.NewUserService(userRepo, emailService, authService)
	taskService := services.NewTaskService(taskRepo, shareRepo)
	shareService := services.NewShareService(taskService, shareRepo, userRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo, invitationRepo, shareRepo, userRepo, taskService)
	resetService := services.NewPasswordResetService(userRepo, resetRepo, emailService, authService)

	pdfGen := pdf.NewReportGenerator(cfg.Files.RootDir)
	reportService := services.NewReportService(taskService, pdfGen)

	// Telegram опционален: без токена работаем молча
	var telegramService *services.TelegramService
	if cfg.Telegram.Enabled {
		telegramService, err = services.NewTelegramService(cfg.Telegram.BotToken)
		if err != nil {
			log.Printf("[tg][init][err] %v — уведомления отключены", err)
			telegramService = nil
		}
	}

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userRepo, authService)
	userHandler := handlers.NewUserHandler(userService, resetService)
	taskHandler := handlers.NewTaskHandler(taskService)
	shareHandler := handlers.NewShareHandler(shareService, taskService, userRepo, emailService, telegramService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportsHandler := handlers.NewReportsHandler(reportService, userRepo)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Роуты (JWT — внутри SetupRoutes)
	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		taskHandler,
		shareHandler,
		notificationHandler,
		reportsHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
