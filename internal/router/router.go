// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/credara/credentialing-backend/internal/config"
	"github.com/credara/credentialing-backend/internal/handlers"
	"github.com/credara/credentialing-backend/internal/middleware"
	"github.com/credara/credentialing-backend/internal/services"
	"github.com/credara/credentialing-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	invitationService := services.NewInvitationService(db, cfg, notificationService)
	clientService := services.NewClientService(db, notificationService)
	documentService := services.NewDocumentService(db, storageService, notificationService)
	intakeService := services.NewIntakeService(db, cfg, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	intakeHandler := handlers.NewIntakeHandler(intakeService)
	documentHandler := handlers.NewDocumentHandler(documentService, clientService)
	portalHandler := handlers.NewPortalHandler(clientService)
	adminHandler := handlers.NewAdminHandler(clientService, invitationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/accept-invitation", authHandler.AcceptInvitation)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Client portal routes
		portal := v1.Group("/portal")
		portal.Use(middleware.AuthRequired())
		{
			portal.GET("/status", portalHandler.GetStatus)

			intake := portal.Group("/intake")
			{
				intake.POST("/session", intakeHandler.StartSession)
				intake.GET("/session", intakeHandler.GetSession)
				intake.PATCH("/field", intakeHandler.SetField)
				intake.POST("/toggle", intakeHandler.ToggleField)
				intake.POST("/licenses", intakeHandler.AddLicense)
				intake.POST("/next", intakeHandler.NextStep)
				intake.POST("/prev", intakeHandler.PrevStep)
				intake.GET("/fields", intakeHandler.GetFields)
				intake.POST("/submit", middleware.SubmitRateLimit(), intakeHandler.Submit)
			}

			documents := portal.Group("/documents")
			{
				documents.GET("/types", documentHandler.ListDocumentTypes)
				documents.GET("", documentHandler.ListDocuments)
				documents.POST("", middleware.UploadRateLimit(), documentHandler.UploadDocument)
				documents.DELETE("/:id", documentHandler.DeleteDocument)
				documents.GET("/:id/download", documentHandler.GetDownloadURL)
			}
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/clients", adminHandler.ListClients)
			admin.GET("/clients/:id", adminHandler.GetClient)
			admin.PATCH("/clients/:id/status", adminHandler.UpdateClientStatus)

			admin.POST("/invitations", adminHandler.CreateInvitation)
			admin.GET("/invitations", adminHandler.ListInvitations)
			admin.DELETE("/invitations/:id", adminHandler.RevokeInvitation)

			admin.GET("/users", adminHandler.ListUsers)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.POST("/documents/:id/review", documentHandler.ReviewDocument)
		}
	}

	return r
}
