package main

import (
	"context"
	"net/http"
	"time"

	"lawconnect/api/handler"
	apiMiddleware "lawconnect/api/middleware"
	"lawconnect/api/routes"
	"lawconnect/config"
	"lawconnect/internal/entity"
	"lawconnect/internal/repository"
	"lawconnect/internal/service"
	"lawconnect/internal/utils"
	"lawconnect/pkg/cloudinary"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	db := config.ConnectDB(cfg.DatabaseURL)
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	for _, stmt := range []string{
		`DO $$ BEGIN CREATE TYPE account_kind AS ENUM ('customer', 'lawyer'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
		`DO $$ BEGIN CREATE TYPE token_purpose AS ENUM ('email_verify', 'password_reset'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
		`DO $$ BEGIN CREATE TYPE audit_action AS ENUM ('customer_registered', 'lawyer_registered', 'email_verified', 'login_success', 'login_failed', 'logout', 'password_reset', 'question_answered'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			logger.WithError(err).Fatal("enum migration failed")
		}
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.CustomerProfile{},
		&entity.LawyerProfile{},
		&entity.VerificationToken{},
		&entity.Question{},
		&entity.Session{},
		&entity.AuditLog{},
	); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	accessManager := utils.JWTManager{
		Secret:         []byte(cfg.JWTSecret),
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: 15 * time.Minute,
	}
	accessIssuer := service.JWTAccessIssuer{Manager: &accessManager}

	var emailSender service.EmailSender
	if cfg.ResendAPIKey != "" && cfg.MailFrom != "" {
		emailSender = service.NewResendEmailSender(cfg.ResendAPIKey, cfg.MailFrom, cfg.AppBaseURL)
	} else {
		logger.Warn("RESEND_API_KEY/MAIL_FROM not set, outbound email disabled")
	}

	var certificates service.CertificateStore
	if cfg.CloudinaryURL != "" {
		store, err := cloudinary.NewCertificateStore(cfg.CloudinaryURL, "")
		if err != nil {
			logger.WithError(err).Fatal("cloudinary init failed")
		}
		certificates = store
	} else {
		logger.Warn("CLOUDINARY_URL not set, certificate upload disabled")
	}

	store := repository.NewStore(db)

	// Hourly sweep of expired refresh sessions. Revoked rows are kept for
	// the audit trail; only expired ones go.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := store.Sessions().CleanupExpired(context.Background()); err != nil {
				logger.WithError(err).Warn("session cleanup failed")
			}
		}
	}()

	accountService := service.NewAccountService(
		store,
		emailSender,
		certificates,
		service.BcryptPasswordHasher{},
		accessIssuer,
		service.RealClock{},
		logger,
		service.Config{
			RefreshTokenTTL:  30 * 24 * time.Hour,
			ResetTokenTTL:    30 * time.Minute,
			AdminReviewEmail: cfg.AdminReviewEmail,
		},
	)
	questionService := service.NewQuestionService(store, logger)

	authHandler := handler.NewAuthHandler(accountService, validate)
	authHandler.CookieDomain = cfg.CookieDomain
	authHandler.SecureCookies = cfg.SecureCookies
	questionHandler := handler.NewQuestionHandler(questionService, accountService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(apiMiddleware.LanguageSwitcher)
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &accessManager}
	router := routes.NewRouter(app, authHandler, questionHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
