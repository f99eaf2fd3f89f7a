// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/amaanah/backend/config"
	"github.com/amaanah/backend/internal/application/usecase/auth"
	"github.com/amaanah/backend/internal/application/usecase/ledger"
	"github.com/amaanah/backend/internal/application/usecase/notification"
	"github.com/amaanah/backend/internal/application/usecase/quote"
	usecasereminder "github.com/amaanah/backend/internal/application/usecase/reminder"
	"github.com/amaanah/backend/internal/application/usecase/user"
	"github.com/amaanah/backend/internal/infra/server/router"
	"github.com/amaanah/backend/internal/integration/adapters"
	"github.com/amaanah/backend/internal/integration/email"
	"github.com/amaanah/backend/internal/integration/email/templates"
	"github.com/amaanah/backend/internal/integration/entrypoint/controller"
	"github.com/amaanah/backend/internal/integration/entrypoint/middleware"
	"github.com/amaanah/backend/internal/integration/persistence"
	"github.com/amaanah/backend/internal/integration/reminder"
)

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	DB             *gorm.DB
	Router         *router.Router
	EmailWorker    *email.Worker
	ReminderWorker *reminder.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	ledgerRepo := persistence.NewLedgerRepository(db)
	notificationRepo := persistence.NewNotificationRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	reminderStateRepo := persistence.NewReminderStateRepository(redisClient)

	// Create adapters/services
	clock := adapters.NewSystemClock()
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	quoteService := adapters.NewGeminiService(cfg.Gemini.APIKey)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create ledger use cases
	createEntryUseCase := ledger.NewCreateEntryUseCase(ledgerRepo, userRepo, notificationRepo, emailService, clock)
	listEntriesUseCase := ledger.NewListEntriesUseCase(ledgerRepo)
	getEntryUseCase := ledger.NewGetEntryUseCase(ledgerRepo)
	updateEntryUseCase := ledger.NewUpdateEntryUseCase(ledgerRepo, clock)
	deleteEntryUseCase := ledger.NewDeleteEntryUseCase(ledgerRepo, reminderStateRepo)
	confirmEntryUseCase := ledger.NewConfirmEntryUseCase(ledgerRepo, userRepo, notificationRepo, clock)
	claimEntryUseCase := ledger.NewClaimEntryUseCase(ledgerRepo, userRepo, notificationRepo, clock)
	markFulfilledUseCase := ledger.NewMarkFulfilledUseCase(ledgerRepo, userRepo, notificationRepo, clock)
	forgiveEntryUseCase := ledger.NewForgiveEntryUseCase(ledgerRepo, userRepo, notificationRepo, emailService, clock)
	convertToCharityUseCase := ledger.NewConvertToCharityUseCase(ledgerRepo, userRepo, notificationRepo, clock)
	retractResolutionUseCase := ledger.NewRetractResolutionUseCase(ledgerRepo, userRepo, notificationRepo, clock)
	recordPaymentUseCase := ledger.NewRecordPaymentUseCase(ledgerRepo, userRepo, notificationRepo, clock)
	listPaymentsUseCase := ledger.NewListPaymentsUseCase(ledgerRepo)

	// Create notification use cases
	listNotificationsUseCase := notification.NewListNotificationsUseCase(notificationRepo)
	markReadUseCase := notification.NewMarkReadUseCase(notificationRepo)

	// Create user use cases
	getProfileUseCase := user.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := user.NewUpdateProfileUseCase(userRepo, clock)

	// Create quote use case
	getQuotesUseCase := quote.NewGetDailyQuotesUseCase(quoteService)

	// Create reminder scan use case and worker
	scanDueDatesUseCase := usecasereminder.NewScanDueDatesUseCase(
		ledgerRepo,
		userRepo,
		notificationRepo,
		reminderStateRepo,
		emailService,
		clock,
	)
	reminderWorker := reminder.NewWorker(scanDueDatesUseCase, reminder.WorkerConfig{
		ScanInterval: cfg.Reminder.ScanInterval,
	})

	// Create email worker
	emailRenderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, emailRenderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		},
	)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		getProfileUseCase,
		updateProfileUseCase,
	)

	ledgerController := controller.NewLedgerController(
		createEntryUseCase,
		listEntriesUseCase,
		getEntryUseCase,
		updateEntryUseCase,
		deleteEntryUseCase,
		confirmEntryUseCase,
		claimEntryUseCase,
		markFulfilledUseCase,
		forgiveEntryUseCase,
		convertToCharityUseCase,
		retractResolutionUseCase,
		recordPaymentUseCase,
		listPaymentsUseCase,
	)

	notificationController := controller.NewNotificationController(
		listNotificationsUseCase,
		markReadUseCase,
	)

	quoteController := controller.NewQuoteController(getQuotesUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		ledgerController,
		notificationController,
		quoteController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		EmailWorker:    emailWorker,
		ReminderWorker: reminderWorker,
	}, nil
}
