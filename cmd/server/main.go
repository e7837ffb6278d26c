package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/tradeworks/backend/internal/application/billing"
	crmapp "github.com/tradeworks/backend/internal/application/crm"
	documentapp "github.com/tradeworks/backend/internal/application/document"
	inventoryapp "github.com/tradeworks/backend/internal/application/inventory"
	notificationapp "github.com/tradeworks/backend/internal/application/notification"
	schedulingapp "github.com/tradeworks/backend/internal/application/scheduling"
	"github.com/tradeworks/backend/internal/domain/notification"
	"github.com/tradeworks/backend/internal/infrastructure/config"
	"github.com/tradeworks/backend/internal/infrastructure/logger"
	"github.com/tradeworks/backend/internal/infrastructure/persistence"
	"github.com/tradeworks/backend/internal/infrastructure/render"
	"github.com/tradeworks/backend/internal/infrastructure/storage"
	"github.com/tradeworks/backend/internal/interfaces/http/handler"
	"github.com/tradeworks/backend/internal/interfaces/http/middleware"
	"github.com/tradeworks/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TradeWorks backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	categoryRepo := persistence.NewGormServiceCategoryRepository(db.DB)
	appointmentRepo := persistence.NewGormAppointmentRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	receiptRepo := persistence.NewGormPaymentReceiptRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	numbers := persistence.NewGormNumberGenerator(db.DB)

	// The minimum severity is fixed at startup; anything below it is
	// dropped at publish time
	severityFilter := notification.NewSeverityFilter(notification.Severity(cfg.Notification.MinSeverity))
	notificationService := notificationapp.NewService(notificationRepo, severityFilter, log)

	// Application services
	customerService := crmapp.NewCustomerService(customerRepo)
	categoryService := crmapp.NewCategoryService(categoryRepo)
	appointmentService := schedulingapp.NewAppointmentService(appointmentRepo, customerRepo)
	quotationService := billingapp.NewQuotationService(quotationRepo, customerRepo, numbers)
	invoiceService := billingapp.NewInvoiceService(
		invoiceRepo, quotationRepo, receiptRepo, customerRepo, numbers, notificationService, log)
	itemService := inventoryapp.NewItemService(itemRepo, notificationService, log)

	// Rendering pipeline
	company := render.CompanyInfo{
		Name:         cfg.Render.CompanyName,
		AddressLines: cfg.Render.CompanyAddress,
		Phone:        cfg.Render.CompanyPhone,
		Email:        cfg.Render.CompanyEmail,
		LogoURL:      cfg.Render.LogoURL,
	}
	composer := render.NewComposer(&render.ComposerConfig{
		Company:      company,
		ImageTimeout: cfg.Render.ImageTimeout,
		Logger:       log,
	})

	// A missing Chrome installation disables the capture strategy but
	// leaves vector rendering fully functional
	var capturer documentapp.Capturer
	chromeCapturer, err := render.NewCapturer(&render.CaptureConfig{
		DefaultTimeout: cfg.Render.CaptureTimeout,
		Headless:       true,
		NoSandbox:      cfg.Render.ChromeNoSandbox,
		Scale:          cfg.Render.CaptureScale,
	})
	if err != nil {
		log.Warn("Capture rendering unavailable", zap.Error(err))
	} else {
		capturer = chromeCapturer
		defer func() {
			if err := chromeCapturer.Close(); err != nil {
				log.Error("Error closing capturer", zap.Error(err))
			}
		}()
	}

	var objectStorage render.ObjectStorage
	if cfg.Storage.AccessKeyID != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		log.Warn("No storage credentials configured, using in-memory stub storage")
		objectStorage = storage.NewStubObjectStorage(cfg.Storage.PublicBaseURL)
	}
	uploader := render.NewUploadSink(objectStorage, log)

	documentService := documentapp.NewService(
		quotationRepo, invoiceRepo, customerRepo, composer, capturer, uploader, company, log)

	// HTTP handlers
	documentHandler := handler.NewDocumentHandler(documentService)
	customerHandler := handler.NewCustomerHandler(customerService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	quotationHandler := handler.NewQuotationHandler(quotationService, documentHandler)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, documentHandler)
	inventoryHandler := handler.NewInventoryHandler(itemService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.CustomerRoutes(customerHandler)).
		Register(handler.CategoryRoutes(categoryHandler)).
		Register(handler.AppointmentRoutes(appointmentHandler)).
		Register(handler.QuotationRoutes(quotationHandler)).
		Register(handler.InvoiceRoutes(invoiceHandler)).
		Register(handler.InventoryRoutes(inventoryHandler)).
		Register(handler.NotificationRoutes(notificationHandler)).
		Register(handler.SystemRoutes(systemHandler))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// healthHandler reports liveness including database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "error",
				"time":     time.Now().Format(time.RFC3339),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
