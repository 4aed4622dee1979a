package http

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	consentServices "github.com/sahay-inc/sahay/internal/application/consent/services"
	"github.com/sahay-inc/sahay/internal/domain/analytics"
	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/triage"
	"github.com/sahay-inc/sahay/internal/infrastructure/auth"
	"github.com/sahay-inc/sahay/internal/infrastructure/cache"
	"github.com/sahay-inc/sahay/internal/infrastructure/chain"
	"github.com/sahay-inc/sahay/internal/infrastructure/config"
	"github.com/sahay-inc/sahay/internal/infrastructure/crypto"
	"github.com/sahay-inc/sahay/internal/infrastructure/email"
	"github.com/sahay-inc/sahay/internal/infrastructure/permission"
	"github.com/sahay-inc/sahay/internal/infrastructure/rulebook"
	"github.com/sahay-inc/sahay/internal/infrastructure/scheduler"
	"github.com/sahay-inc/sahay/internal/infrastructure/sms"
	"github.com/sahay-inc/sahay/internal/infrastructure/storage"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
	shareddb "github.com/sahay-inc/sahay/internal/shared/db"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Auth, Middlewares
// ============================================================

// initInfrastructure initializes Redis, all repositories, the transaction
// manager, the audit appender, token and password services, the casbin
// enforcer, and the request middlewares.
func (c *Container) initInfrastructure() {
	cfg := c.cfg
	log := c.log
	db := c.db

	// Initialize Redis client
	c.redis = initRedis(cfg, log)

	// Initialize all repositories
	c.repos = newRepositories(db, int64(cfg.Analytics.KThreshold))

	// The audit appender runs inside the caller's transaction so a failed
	// hash-chain write rolls the whole operation back.
	c.txManager = shareddb.NewTransactionManager(db)
	c.auditor = audit.NewAppender(c.repos.auditRepo)

	// Opaque bearer tokens and password hashing
	c.tokenSvc = auth.NewTokenService(
		c.repos.tokenRepo,
		c.repos.userRepo,
		time.Duration(cfg.Auth.TokenExpiryHours)*time.Hour,
		log,
	)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)

	// Role policies live in the database through the casbin gorm adapter.
	// Seeding already-present rules is a no-op, so this runs every startup.
	enforcer, err := permission.NewEnforcer(db, log)
	if err != nil {
		log.Fatalw("failed to initialize permission enforcer", "error", err)
	}
	if err := permission.InitDefaultPolicies(enforcer, log); err != nil {
		log.Fatalw("failed to seed permission policies", "error", err)
	}
	c.enforcer = enforcer

	c.consentChecker = consentServices.NewConsentChecker(
		c.repos.consentRepo, cfg.Consent.DocumentVersion, log)

	// Middlewares
	c.authMiddleware = middleware.NewAuthMiddleware(c.tokenSvc, c.repos.userRepo, log)
	c.consentMiddleware = middleware.NewConsentMiddleware(c.consentChecker, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	c.authRateLimiter = middleware.NewRateLimiter(c.redis, "auth", 20, 1*time.Minute)
	c.intakeRateLimiter = middleware.NewRateLimiter(c.redis, "complaint-intake", 10, 1*time.Minute)
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalw("failed to connect to Redis", "error", err)
	}
	log.Infow("Redis connection established successfully")

	return redisClient
}

// ============================================================
// Section 2: Domain services - Sealing, Storage, Chain, Triage, Analytics
// ============================================================

// initDomainServices initializes the complaint payload sealer, the evidence
// store, the anchor gateway client, the triage engine, the analytics buffer,
// the notification senders, and the Redis-backed caches and locks.
func (c *Container) initDomainServices() {
	cfg := c.cfg
	log := c.log

	sealer, err := crypto.NewSealer(cfg.Storage.EncryptionKey)
	if err != nil {
		log.Fatalw("failed to initialize payload sealer", "error", err)
	}
	c.sealer = sealer

	store, err := storage.NewLocalStore(&cfg.Storage, log)
	if err != nil {
		log.Fatalw("failed to initialize evidence store", "error", err)
	}
	c.evidenceStore = store

	c.chainClient = chain.NewGatewayClient(&cfg.Chain, log)
	c.backoff = anchor.BackoffPolicy{
		Base: time.Duration(cfg.Chain.BackoffBase) * time.Second,
		Cap:  time.Duration(cfg.Chain.MaxBackoff) * time.Second,
	}

	// Rulebook and guidance templates, embedded with optional overrides
	loader := rulebook.NewLoader(cfg.Triage.AssetsPath, log)
	rb, err := loader.LoadRulebook()
	if err != nil {
		log.Fatalw("failed to load triage rulebook", "error", err)
	}
	templates, err := loader.LoadTemplates()
	if err != nil {
		log.Fatalw("failed to load triage guidance templates", "error", err)
	}
	engine, err := triage.NewEngine(rb, templates, triage.HeuristicClassifier{})
	if err != nil {
		log.Fatalw("failed to build triage engine", "error", err)
	}
	c.triageEngine = engine

	c.sanitizer = sanitize.NewService()
	c.buffer = analytics.NewBuffer(cfg.Analytics.BufferFlushSize)

	c.emailSender = email.NewSMTPSender(&cfg.Email, log)
	c.smsSender = sms.NewGatewaySender(&cfg.SMSGateway, log)

	c.dashboardCache = cache.NewDashboardCache(
		c.redis, time.Duration(cfg.Dashboard.CacheTTLSeconds)*time.Second, log)
	c.jobLock = cache.NewJobLock(c.redis)

	// The manual retry endpoint shares the scheduled job's lock so an admin
	// trigger and the timer never submit concurrently.
	c.anchorRunLock = cache.NewBoundJobLock(
		c.jobLock,
		scheduler.LockAnchorRetry,
		time.Duration(cfg.Chain.RetryInterval)*time.Second,
	)
}

// ============================================================
// Section 3: Scheduler - Background jobs
// ============================================================

// initScheduler builds the gocron manager and registers the recurring jobs.
// Must run after initUseCases. The anchor retry job is skipped when the
// chain is disabled; pending anchors then wait for the manual trigger.
func (c *Container) initScheduler() {
	cfg := c.cfg
	log := c.log

	manager, err := scheduler.NewManager(c.jobLock, log)
	if err != nil {
		log.Fatalw("failed to create scheduler manager", "error", err)
	}

	if err := manager.RegisterSLASweepJob(
		scheduler.NewSLASweepJob(c.ucs.escalationSweepUC),
		time.Duration(cfg.SLA.CheckIntervalSeconds)*time.Second,
	); err != nil {
		log.Fatalw("failed to register sla sweep job", "error", err)
	}

	if cfg.Chain.Enabled {
		if err := manager.RegisterAnchorRetryJob(
			scheduler.NewAnchorSubmitJob(c.ucs.submitPendingUC),
			time.Duration(cfg.Chain.RetryInterval)*time.Second,
		); err != nil {
			log.Fatalw("failed to register anchor retry job", "error", err)
		}
	}

	if err := manager.RegisterAnalyticsFlushJob(
		scheduler.NewAnalyticsFlushJob(c.ucs.flushBufferUC),
		time.Duration(cfg.Analytics.FlushIntervalSeconds)*time.Second,
	); err != nil {
		log.Fatalw("failed to register analytics flush job", "error", err)
	}

	if err := manager.RegisterViewRefreshJob(
		scheduler.NewViewRefreshJob(c.ucs.refreshViewsUC),
		time.Duration(cfg.Dashboard.RefreshIntervalSeconds)*time.Second,
	); err != nil {
		log.Fatalw("failed to register view refresh job", "error", err)
	}

	if err := manager.RegisterOutboxDispatchJob(
		scheduler.NewOutboxDispatchJob(c.ucs.dispatchPendingUC),
		time.Duration(cfg.Outbox.DispatchIntervalSeconds)*time.Second,
	); err != nil {
		log.Fatalw("failed to register outbox dispatch job", "error", err)
	}

	c.schedulerManager = manager
}
