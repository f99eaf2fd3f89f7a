// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/amaanah/backend/internal/integration/entrypoint/controller"
	"github.com/amaanah/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	userController         *controller.UserController
	ledgerController       *controller.LedgerController
	notificationController *controller.NotificationController
	quoteController        *controller.QuoteController
	loginRateLimiter       *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	ledgerController *controller.LedgerController,
	notificationController *controller.NotificationController,
	quoteController *controller.QuoteController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		authController:         authController,
		userController:         userController,
		ledgerController:       ledgerController,
		notificationController: notificationController,
		quoteController:        quoteController,
		loginRateLimiter:       loginRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Ledger routes (require authentication)
		if r.ledgerController != nil && r.authMiddleware != nil {
			ledger := v1.Group("/ledger")
			ledger.Use(r.authMiddleware.Authenticate())
			{
				ledger.GET("", r.ledgerController.List)
				ledger.POST("", r.ledgerController.Create)
				ledger.GET("/:id", r.ledgerController.Get)
				ledger.PUT("/:id", r.ledgerController.Update)
				ledger.DELETE("/:id", r.ledgerController.Delete)

				// Lifecycle transitions
				ledger.POST("/:id/confirm", r.ledgerController.Confirm)
				ledger.POST("/:id/claim", r.ledgerController.Claim)
				ledger.POST("/:id/fulfill", r.ledgerController.Fulfill)
				ledger.POST("/:id/forgive", r.ledgerController.Forgive)
				ledger.POST("/:id/charity", r.ledgerController.ConvertToCharity)
				ledger.POST("/:id/retract", r.ledgerController.Retract)

				// Payment log
				ledger.GET("/:id/payments", r.ledgerController.ListPayments)
				ledger.POST("/:id/payments", r.ledgerController.RecordPayment)
			}
		}

		// Notification routes (require authentication)
		if r.notificationController != nil && r.authMiddleware != nil {
			notifications := v1.Group("/notifications")
			notifications.Use(r.authMiddleware.Authenticate())
			{
				notifications.GET("", r.notificationController.List)
				notifications.POST("/:id/read", r.notificationController.MarkRead)
			}
		}

		// User routes (require authentication)
		if r.userController != nil && r.authMiddleware != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("/me", r.userController.GetProfile)
				users.PATCH("/me", r.userController.UpdateProfile)
			}
		}

		// Quote routes (require authentication)
		if r.quoteController != nil && r.authMiddleware != nil {
			quotes := v1.Group("/quotes")
			quotes.Use(r.authMiddleware.Authenticate())
			{
				quotes.GET("", r.quoteController.List)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
