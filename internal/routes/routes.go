package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"taskboard/internal/handlers"
	"taskboard/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	shareHandler *handlers.ShareHandler,
	notificationHandler *handlers.NotificationHandler,
	reportsHandler *handlers.ReportsHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/register", userHandler.Register)
	r.POST("/password-reset/request", userHandler.RequestPasswordReset)
	r.POST("/password-reset/confirm", userHandler.ConfirmPasswordReset)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	r.GET("/profile", userHandler.GetProfile)
	r.PUT("/profile", userHandler.UpdateProfile)

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/status", taskHandler.ChangeStatus)
		tasks.POST("/:id/toggle", taskHandler.ToggleComplete)
		tasks.GET("/:id/shares", shareHandler.ListShares)
		tasks.POST("/:id/shares", shareHandler.ShareTask)
		tasks.POST("/:id/invitations", notificationHandler.Invite)
	}

	// SHARES (id-addressed)
	shares := r.Group("/shares")
	{
		shares.PUT("/:id", shareHandler.UpdatePermission)
		shares.DELETE("/:id", shareHandler.RevokeShare)
	}

	// INVITATIONS
	invitations := r.Group("/invitations")
	{
		invitations.POST("/:id/accept", notificationHandler.Accept)
		invitations.POST("/:id/reject", notificationHandler.Reject)
	}

	// NOTIFICATIONS
	notifications := r.Group("/notifications")
	{
		notifications.GET("", notificationHandler.List)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/summary", reportsHandler.Summary)
		reports.GET("/export", reportsHandler.Export)
	}

	return r
}
