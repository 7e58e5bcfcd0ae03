package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mediboard/hospital-system/internal/api/handler"
	"github.com/mediboard/hospital-system/internal/api/middleware"
	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

// Services bundles the core services the router exposes over HTTP.
type Services struct {
	Credentials ports.CredentialService
	Sessions    ports.SessionService
	Audit       ports.AuditLog
	Records     ports.RecordStore
	Reports     ports.ReportService
	Revocations middleware.RevocationChecker
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, svcs Services, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hospital"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svcs.Credentials, svcs.Sessions, svcs.Audit, log)
	recordHandler := handler.NewRecordHandler(svcs.Records)
	auditHandler := handler.NewAuditHandler(svcs.Audit)
	reportHandler := handler.NewReportHandler(svcs.Reports)

	authRequired := middleware.Auth(jwtSecret, svcs.Revocations)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Bootstrap gate + sessions ---
	e.GET("/auth/bootstrap", authHandler.BootstrapStatus)
	e.POST("/auth/bootstrap", authHandler.Bootstrap)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)
	e.GET("/auth/me", authHandler.Me, authRequired)
	e.POST("/auth/staff", authHandler.CreateStaff, authRequired, adminOnly)

	// --- Business tables ---
	records := e.Group("/v1/records", authRequired)
	records.GET("/:table", recordHandler.List)
	records.POST("/:table", recordHandler.Create)
	records.GET("/:table/export", recordHandler.Export)
	records.PUT("/:table/:id", recordHandler.Update)
	records.DELETE("/:table/:id", recordHandler.Delete)

	// --- Audit trail (admin only) ---
	e.GET("/v1/audit", auditHandler.List, authRequired, adminOnly)

	// --- Dashboard + reports ---
	e.GET("/v1/dashboard", reportHandler.Dashboard, authRequired)
	e.GET("/v1/reports/:kind", reportHandler.Report, authRequired)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability + docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
