package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/observability"
	"github.com/mamadbah2/coopledger/internal/server/handlers"
	"github.com/mamadbah2/coopledger/internal/server/middleware"
)

// Handlers groups the HTTP adapters mounted under /api.
type Handlers struct {
	Auth           *handlers.AuthHandler
	Cooperatives   *handlers.CooperativeHandler
	ProductionLogs *handlers.ProductionLogHandler
	Nonconformity  *handlers.NonconformityHandler
	KPIs           *handlers.KPIHandler
	Farms          *handlers.FarmHandler
	Users          *handlers.UserHandler
	Maintenance    *handlers.MaintenanceHandler
}

// Options carries the cross-cutting settings of the engine. A nil Metrics disables /metrics.
type Options struct {
	CORSOrigins []string
	Metrics     *observability.Metrics
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, authn middleware.Authenticator, opts Options, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(authn, logger))

	protected.GET("/auth/me", h.Auth.Me)

	protected.GET("/cooperatives", h.Cooperatives.List)
	protected.POST("/cooperatives", h.Cooperatives.Create)
	protected.GET("/cooperatives/:id", h.Cooperatives.Get)
	protected.GET("/cooperatives/:id/stats", h.Cooperatives.Stats)

	protected.GET("/production-logs", h.ProductionLogs.List)
	protected.POST("/production-logs", h.ProductionLogs.Create)
	protected.GET("/production-logs/:id", h.ProductionLogs.Get)
	protected.PUT("/production-logs/:id", h.ProductionLogs.Update)
	protected.DELETE("/production-logs/:id", h.ProductionLogs.Delete)

	protected.GET("/nonconformities", h.Nonconformity.List)
	protected.POST("/nonconformities", h.Nonconformity.Create)
	protected.GET("/nonconformities/:id", h.Nonconformity.Get)
	protected.PATCH("/nonconformities/:id", h.Nonconformity.Update)
	protected.PUT("/nonconformities/:id", h.Nonconformity.Update)

	protected.GET("/kpis/cooperative/:id", h.KPIs.Cooperative)
	protected.GET("/kpis/overview", h.KPIs.Overview)
	protected.POST("/scenario/loss-reduction", h.KPIs.LossReduction)

	protected.GET("/farms", h.Farms.ListFarms)
	protected.POST("/farms", h.Farms.CreateFarm)
	protected.GET("/farms/:id", h.Farms.GetFarm)
	protected.GET("/esg", h.Farms.ListESG)
	protected.POST("/esg", h.Farms.CreateESG)

	protected.GET("/users", h.Users.List)
	protected.PUT("/users/:id", h.Users.Update)
	protected.DELETE("/users/:id", h.Users.Delete)

	protected.POST("/init-mvp-data", h.Maintenance.SeedCooperatives)
	protected.POST("/init-data", h.Maintenance.SeedMetrics)
	protected.POST("/reinit-data", h.Maintenance.Reinit)
	protected.POST("/fix-manager-cooperative", h.Maintenance.FixManagerCooperatives)
	protected.POST("/maintenance/email-domain", h.Maintenance.RewriteEmailDomain)
	protected.POST("/export/production-logs", h.Maintenance.ExportProductionLogs)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
