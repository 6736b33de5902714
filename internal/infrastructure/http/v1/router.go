// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"fakturator/internal/core/numerator"
	"fakturator/internal/domain/auth"
	"fakturator/internal/domain/documents/calculation"
	"fakturator/internal/domain/documents/invoice"
	"fakturator/internal/domain/paylink"
	"fakturator/internal/domain/reports"
	"fakturator/internal/domain/sharing"
	"fakturator/internal/infrastructure/http/v1/handlers"
	"fakturator/internal/infrastructure/http/v1/middleware"
	"fakturator/internal/infrastructure/storage/postgres"
	"fakturator/internal/infrastructure/storage/postgres/document_repo"
	"fakturator/internal/infrastructure/storage/postgres/paylink_repo"
	"fakturator/internal/infrastructure/storage/postgres/report_repo"
	"fakturator/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager drives all storage transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for document number generation
	Numerator numerator.Generator

	// Snapshots archives public document payloads at share time
	Snapshots sharing.SnapshotStore

	// HidePublicNotes drops authoring notes from public document views
	HidePublicNotes bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	baseHandler := handlers.NewBaseHandler()

	// Shared repositories and services
	invoiceRepo := document_repo.NewInvoiceRepo(cfg.TxManager)
	calculationRepo := document_repo.NewCalculationRepo(cfg.TxManager)
	payLinkRepo := paylink_repo.NewPayLinkRepo(cfg.TxManager)

	invoiceService := invoice.NewService(invoiceRepo, cfg.TxManager, cfg.Numerator, cfg.Logger)
	calculationService := calculation.NewService(calculationRepo, cfg.TxManager, cfg.Numerator, cfg.Logger)
	payLinkService := paylink.NewService(payLinkRepo, cfg.TxManager, cfg.Logger)

	resolver := sharing.NewResolver(
		invoiceRepo, calculationRepo, cfg.Snapshots, cfg.TxManager, cfg.Logger,
		sharing.Options{HideNotes: cfg.HidePublicNotes},
	)

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Public endpoints (token-gated, no auth)
	publicHandler := handlers.NewPublicHandler(baseHandler, resolver, payLinkService)
	router.GET("/public/snapshot", publicHandler.Snapshot)
	router.GET("/public/:docType/:docID", publicHandler.Document)
	router.GET("/pay/:linkID", publicHandler.PayLink)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		registerAuthRoutes(apiV1, baseHandler, cfg)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerDocumentRoutes(protected, baseHandler, invoiceService, calculationService, resolver)
		registerPayLinkRoutes(protected, baseHandler, payLinkService)
		registerReportRoutes(protected, baseHandler, cfg)
		registerBalanceRoutes(protected, baseHandler)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerDocumentRoutes registers invoice, proforma and calculation endpoints.
func registerDocumentRoutes(
	rg *gin.RouterGroup,
	base *handlers.BaseHandler,
	invoiceService *invoice.Service,
	calculationService *calculation.Service,
	resolver *sharing.Resolver,
) {
	docs := rg.Group("/documents")

	invoiceHandler := handlers.NewInvoiceHandler(base, invoiceService, resolver, invoice.KindInvoice)
	RegisterDocumentRoutes(docs.Group("/invoices"), invoiceHandler)

	proformaHandler := handlers.NewInvoiceHandler(base, invoiceService, resolver, invoice.KindProforma)
	RegisterDocumentRoutes(docs.Group("/proformas"), proformaHandler)

	calculationHandler := handlers.NewCalculationHandler(base, calculationService, resolver)
	RegisterDocumentRoutes(docs.Group("/calculations"), calculationHandler)
}

// registerPayLinkRoutes registers pay link admin endpoints.
func registerPayLinkRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, service *paylink.Service) {
	handler := handlers.NewPayLinkHandler(base, service)

	links := rg.Group("/pay-links")
	links.GET("", handler.List)
	links.POST("", handler.Create)
	links.GET("/:id", handler.Get)
	links.PUT("/:id", handler.Update)
	links.DELETE("/:id", handler.Delete)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	repo := report_repo.NewReportRepo(cfg.TxManager)
	service := reports.NewService(repo, cfg.Logger)
	handler := handlers.NewReportsHandler(base, service)

	rg.GET("/reports/document-journal", handler.DocumentJournal)
}

// registerBalanceRoutes registers balance sheet validation.
func registerBalanceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler) {
	handler := handlers.NewBalanceHandler(base)

	rg.POST("/balance/validate", handler.Validate)
}
