package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	analyticsServices "github.com/sahay-inc/sahay/internal/application/analytics/services"
	consentServices "github.com/sahay-inc/sahay/internal/application/consent/services"
	"github.com/sahay-inc/sahay/internal/domain/analytics"
	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/triage"
	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/infrastructure/auth"
	"github.com/sahay-inc/sahay/internal/infrastructure/cache"
	"github.com/sahay-inc/sahay/internal/infrastructure/chain"
	"github.com/sahay-inc/sahay/internal/infrastructure/config"
	"github.com/sahay-inc/sahay/internal/infrastructure/crypto"
	"github.com/sahay-inc/sahay/internal/infrastructure/email"
	"github.com/sahay-inc/sahay/internal/infrastructure/permission"
	"github.com/sahay-inc/sahay/internal/infrastructure/scheduler"
	"github.com/sahay-inc/sahay/internal/infrastructure/sms"
	"github.com/sahay-inc/sahay/internal/infrastructure/storage"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
	"github.com/sahay-inc/sahay/internal/interfaces/http/routes"
	shareddb "github.com/sahay-inc/sahay/internal/shared/db"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"

	_ "github.com/sahay-inc/sahay/docs"
)

// Container holds all infrastructure components, repositories, use cases,
// handlers, and background jobs. It wires everything together and provides
// Shutdown() for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	consentMiddleware    *middleware.ConsentMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	authRateLimiter      *middleware.RateLimiter
	intakeRateLimiter    *middleware.RateLimiter

	// Transactions and auditing
	txManager *shareddb.TransactionManager
	auditor   *audit.Appender

	// Auth services
	tokenSvc *auth.TokenService
	hasher   user.PasswordHasher
	enforcer *permission.Enforcer

	// Domain services
	consentChecker *consentServices.ConsentChecker
	sealer         *crypto.Sealer
	evidenceStore  *storage.LocalStore
	chainClient    *chain.GatewayClient
	backoff        anchor.BackoffPolicy
	triageEngine   *triage.Engine
	sanitizer      sanitize.Service
	buffer         *analytics.Buffer
	emitter        *analyticsServices.Emitter
	emailSender    *email.SMTPSender
	smsSender      *sms.GatewaySender

	// Redis-backed caches and locks
	dashboardCache *cache.DashboardCache
	jobLock        *cache.JobLock
	anchorRunLock  *cache.BoundJobLock

	// Background jobs
	schedulerManager *scheduler.Manager
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Auth, Middlewares
	c.initInfrastructure()

	// Section 2: Domain services - Sealing, Storage, Chain, Triage, Analytics
	c.initDomainServices()

	// Use cases and handlers
	c.initUseCases()
	c.initHandlers()

	// Section 3: Scheduler - Background jobs
	c.initScheduler()

	return c
}

// SetupRoutes configures the middleware stack and all HTTP routes.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestLogging(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	if c.cfg.Server.Mode != "release" {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupSystemRoutes(c.engine, &routes.SystemRouteConfig{
		SystemHandler: c.hdlrs.systemHandler,
	})

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.authRateLimiter,
	})

	routes.SetupProfileRoutes(c.engine, &routes.ProfileRouteConfig{
		ProfileHandler: c.hdlrs.profileHandler,
		UserHandler:    c.hdlrs.userHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupConsentRoutes(c.engine, &routes.ConsentRouteConfig{
		ConsentHandler: c.hdlrs.consentHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupSyncRoutes(c.engine, &routes.SyncRouteConfig{
		SyncHandler:    c.hdlrs.syncHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupTriageRoutes(c.engine, &routes.TriageRouteConfig{
		TriageHandler:  c.hdlrs.triageHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupNeuroscreenRoutes(c.engine, &routes.NeuroscreenRouteConfig{
		NeuroscreenHandler: c.hdlrs.neuroscreenHandler,
		AuthMiddleware:     c.authMiddleware,
		ConsentMiddleware:  c.consentMiddleware,
	})

	routes.SetupVaccinationRoutes(c.engine, &routes.VaccinationRouteConfig{
		VaccinationHandler: c.hdlrs.vaccinationHandler,
		AuthMiddleware:     c.authMiddleware,
	})

	routes.SetupTherapyRoutes(c.engine, &routes.TherapyRouteConfig{
		TherapyHandler:       c.hdlrs.therapyHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupTelemedRoutes(c.engine, &routes.TelemedRouteConfig{
		TelemedHandler:       c.hdlrs.telemedHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupComplaintRoutes(c.engine, &routes.ComplaintRouteConfig{
		ComplaintHandler:     c.hdlrs.complaintHandler,
		AnchorHandler:        c.hdlrs.anchorHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		IntakeRateLimiter:    c.intakeRateLimiter,
	})

	routes.SetupAnchorRoutes(c.engine, &routes.AnchorRouteConfig{
		AnchorHandler:        c.hdlrs.anchorHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupAnalyticsRoutes(c.engine, &routes.AnalyticsRouteConfig{
		AnalyticsHandler:     c.hdlrs.analyticsHandler,
		AuthMiddleware:       c.authMiddleware,
		ConsentMiddleware:    c.consentMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupDashboardRoutes(c.engine, &routes.DashboardRouteConfig{
		DashboardHandler:     c.hdlrs.dashboardHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupAuditRoutes(c.engine, &routes.AuditRouteConfig{
		AuditHandler:         c.hdlrs.auditHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// Engine returns the Gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Start launches the background jobs.
func (c *Container) Start() {
	c.schedulerManager.Start()
}

// Shutdown stops the background jobs, drains the analytics buffer, and
// closes the Redis client. Safe to call once after the HTTP server has
// stopped accepting requests.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}

	// Buffered aggregate deltas are in memory only; flush them so a restart
	// loses nothing.
	if c.ucs != nil && c.ucs.flushBufferUC != nil {
		if _, err := c.ucs.flushBufferUC.Execute(context.Background()); err != nil {
			c.log.Errorw("failed to flush analytics buffer on shutdown", "error", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close redis client", "error", err)
		}
	}
}
