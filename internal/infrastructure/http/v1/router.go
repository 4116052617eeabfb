// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bevstock/internal/core/id"
	"bevstock/internal/domain/catalogs/article"
	"bevstock/internal/domain/catalogs/client"
	"bevstock/internal/domain/catalogs/provider"
	"bevstock/internal/domain/catalogs/society"
	"bevstock/internal/domain/ledger"
	"bevstock/internal/domain/purchasing"
	"bevstock/internal/domain/reports"
	"bevstock/internal/domain/sales"
	"bevstock/internal/infrastructure/http/v1/handlers"
	"bevstock/internal/infrastructure/http/v1/middleware"
	"bevstock/internal/infrastructure/storage/postgres"
	"bevstock/internal/infrastructure/storage/postgres/catalog_repo"
	"bevstock/internal/infrastructure/storage/postgres/ledger_repo"
	"bevstock/internal/infrastructure/storage/postgres/purchase_repo"
	"bevstock/internal/infrastructure/storage/postgres/report_repo"
	"bevstock/internal/infrastructure/storage/postgres/sales_repo"
	"bevstock/pkg/logger"
)

// RouterConfig holds everything the router needs to wire the API.
type RouterConfig struct {
	// Pool is the database connection pool (also used by health checks).
	Pool *postgres.Pool

	// TxManager runs the transactional units of work.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// AuditLog records sale snapshots. Optional.
	AuditLog *postgres.AuditLog

	// AllowedOrigins restricts CORS. Empty means allow all.
	AllowedOrigins []string
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
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	// Repos and services are created once; the transaction scope is
	// carried per-request through the context.
	articleSvc := article.NewService(catalog_repo.NewArticleRepo(cfg.TxManager))
	clientSvc := client.NewService(catalog_repo.NewClientRepo(cfg.TxManager))
	providerSvc := provider.NewService(catalog_repo.NewProviderRepo(cfg.TxManager))
	societySvc := society.NewService(catalog_repo.NewSocietyRepo(cfg.TxManager))

	ledgerSvc := ledger.NewService(ledger_repo.NewLotRepo(cfg.TxManager))

	var auditor sales.Auditor
	if cfg.AuditLog != nil {
		auditor = auditAdapter{log: cfg.AuditLog}
	}
	salesSvc := sales.NewService(
		cfg.TxManager,
		sales_repo.NewSaleRepo(cfg.TxManager),
		articleSvc,
		clientSvc,
		societySvc,
		ledgerSvc,
		auditor,
	)

	purchasingSvc := purchasing.NewService(
		cfg.TxManager,
		purchase_repo.NewPurchaseRepo(cfg.TxManager),
		articleSvc,
		providerSvc,
		societySvc,
		ledgerSvc,
	)

	reportsSvc := reports.NewService(cfg.TxManager, report_repo.NewReportRepo(cfg.TxManager))

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerCatalogRoutes(v1, articleSvc, clientSvc, providerSvc, societySvc)
		registerSaleRoutes(v1, salesSvc)
		registerPurchaseRoutes(v1, purchasingSvc)
		registerStockRoutes(v1, cfg.TxManager, ledgerSvc, societySvc, reportsSvc)
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		c.AllowOrigins = allowedOrigins
	} else {
		c.AllowAllOrigins = true
	}
	c.AllowHeaders = append(c.AllowHeaders, "X-Request-ID")
	return c
}

// auditAdapter bridges the domain audit port to the storage audit log.
type auditAdapter struct {
	log *postgres.AuditLog
}

func (a auditAdapter) Record(ctx context.Context, entityType string, entityID id.ID, action string, payload any) error {
	return a.log.Record(ctx, entityType, entityID, postgres.AuditAction(action), payload)
}

// registerCatalogRoutes registers the dimension catalog endpoints.
func registerCatalogRoutes(
	rg *gin.RouterGroup,
	articleSvc *article.Service,
	clientSvc *client.Service,
	providerSvc *provider.Service,
	societySvc *society.Service,
) {
	// --- ARTICLES ---
	{
		handler := handlers.NewArticleHandler(articleSvc)
		articles := rg.Group("/articles")
		articles.POST("", handler.Create)
		articles.GET("", handler.List)
		articles.GET("/:id", handler.Get)
		articles.PUT("/:id", handler.Update)
	}

	// --- CLIENTS ---
	{
		handler := handlers.NewClientHandler(clientSvc)
		clients := rg.Group("/clients")
		clients.POST("", handler.Create)
		clients.GET("", handler.List)
		clients.GET("/:id", handler.Get)
	}

	// --- PROVIDERS ---
	{
		handler := handlers.NewProviderHandler(providerSvc)
		providers := rg.Group("/providers")
		providers.POST("", handler.Create)
		providers.GET("", handler.List)
	}

	// --- SOCIETIES ---
	{
		handler := handlers.NewSocietyHandler(societySvc)
		societies := rg.Group("/societies")
		societies.POST("", handler.Create)
		societies.GET("", handler.List)
	}
}

// registerSaleRoutes registers the sale transaction endpoints.
func registerSaleRoutes(rg *gin.RouterGroup, svc *sales.Service) {
	handler := handlers.NewSalesHandler(svc)

	salesGroup := rg.Group("/sales")
	salesGroup.POST("", handler.Create)
	salesGroup.POST("/preview", handler.Preview)
	salesGroup.GET("", handler.List)
	salesGroup.GET("/:id", handler.Get)
	salesGroup.PUT("/:id", handler.Update)
}

// registerPurchaseRoutes registers the purchase recorder endpoints.
func registerPurchaseRoutes(rg *gin.RouterGroup, svc *purchasing.Service) {
	handler := handlers.NewPurchasesHandler(svc)

	purchases := rg.Group("/purchases")
	purchases.POST("", handler.Create)
	purchases.GET("", handler.List)
}

// registerStockRoutes registers the stock ledger and report endpoints.
func registerStockRoutes(
	rg *gin.RouterGroup,
	txManager *postgres.TxManager,
	ledgerSvc *ledger.Service,
	societySvc *society.Service,
	reportsSvc *reports.Service,
) {
	handler := handlers.NewStockHandler(txManager, ledgerSvc, societySvc, reportsSvc)

	stockGroup := rg.Group("/stock")
	stockGroup.GET("", handler.Overview)
	stockGroup.POST("/add", handler.AddStock)
	stockGroup.GET("/:id", handler.ArticleStock)
	stockGroup.GET("/:id/lots", handler.Lots)

	rg.GET("/dashboard", handler.Dashboard)
}
