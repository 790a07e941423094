package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/GriffinCanCode/AgentOS/fsops/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/api/middleware"
	domain "github.com/GriffinCanCode/AgentOS/fsops/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/providers/filesystem"
	registryprovider "github.com/GriffinCanCode/AgentOS/fsops/internal/providers/registry"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	registry   *service.Registry
	catalog    *domain.Catalog
	tracer     *tracing.Tracer
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer creates a server with a logger built from cfg
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return New(cfg, logger)
}

// New creates a server instance. When a registry source is configured the
// catalog is loaded before New returns; a failed load is logged and the
// server starts with an empty catalog.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing fsops server",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("registry_source", cfg.Registry.Source),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("fsops", logger)

	serviceRegistry := service.NewRegistryWithMetrics(metrics)
	serviceRegistry.SetTracer(tracer)

	catalog := newCatalog(cfg.Registry, logger, metrics)

	if err := registerProviders(serviceRegistry, cfg, catalog, logger); err != nil {
		tracer.Close()
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := httpapi.NewHandlers(serviceRegistry, catalog, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// Component registry
	router.GET("/registry/components", handlers.ListComponents)
	router.GET("/registry/lookup", handlers.LookupComponent)
	router.POST("/registry/reload", handlers.ReloadRegistry)

	// Metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", handlers.MetricsJSON)

	s := &Server{
		router:   router,
		registry: serviceRegistry,
		catalog:  catalog,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}
	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.loadRegistry()

	logger.Info("Server initialized successfully",
		zap.Int("services", len(serviceRegistry.List(nil))),
		zap.Int("components", len(catalog.Components())),
	)
	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Catalog returns the component catalog served by this server
func (s *Server) Catalog() *domain.Catalog {
	return s.catalog
}

// Run serves HTTP until Shutdown is called
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then flushes spans and logs
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		err = fmt.Errorf("failed to shut down http server: %w", err)
	}

	s.tracer.Close()
	_ = s.logger.Sync()

	return err
}

// loadRegistry performs the startup load of the component catalog
func (s *Server) loadRegistry() {
	if s.catalog.Source() == "" {
		s.logger.Info("No registry source configured, starting with an empty catalog")
		return
	}

	budget := s.config.Registry.Timeout * time.Duration(s.config.Registry.RetryMax+1)
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	if _, err := s.catalog.Reload(ctx); err != nil {
		s.logger.Warn("Initial registry load failed",
			zap.String("source", s.catalog.Source()),
			zap.Error(err),
		)
	}
}

func newCatalog(cfg config.RegistryConfig, logger *logging.Logger, metrics *monitoring.Metrics) *domain.Catalog {
	log := logger.Named("registry")

	loaderCfg := domain.DefaultLoaderConfig()
	loaderCfg.Timeout = cfg.Timeout
	loaderCfg.RetryMax = cfg.RetryMax
	loaderCfg.Breaker = resilience.Settings{
		Cooldown:    cfg.BreakerCooldown,
		ReadyToTrip: resilience.ConsecutiveFailures(cfg.BreakerThreshold),
		OnStateChange: func(name string, from, to resilience.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	}

	catalog := domain.NewCatalog(domain.NewLoader(loaderCfg), cfg.Source)
	catalog.OnReload(func(snap *domain.Snapshot) {
		metrics.SetRegistryComponents(len(snap.Components))
		metrics.RecordRegistryReload("success")
		log.Info("registry loaded",
			zap.String("source", snap.Source),
			zap.Int("components", len(snap.Components)),
		)
	})
	catalog.OnReloadFailure(func(error) {
		metrics.RecordRegistryReload("failure")
	})
	return catalog
}

func registerProviders(registry *service.Registry, cfg *config.Config, catalog *domain.Catalog, logger *logging.Logger) error {
	providers := []service.Provider{
		filesystem.NewProvider(filesystem.NewFilesystemOps(cfg.Filesystem.TreeDepth), logger),
		registryprovider.NewProvider(catalog, logger),
	}

	for _, p := range providers {
		if err := registry.Register(p); err != nil {
			return fmt.Errorf("failed to register %s provider: %w", p.Definition().ID, err)
		}
		logger.Info("Registered service provider", zap.String("service", p.Definition().ID))
	}
	return nil
}
