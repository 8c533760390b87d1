package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	httpadapter "dronedelivery/internal/adapters/in/http"
	"dronedelivery/internal/adapters/in/http/openapi"
	"dronedelivery/internal/adapters/out/ilp"
	"dronedelivery/internal/adapters/out/rediscache"
	"dronedelivery/internal/adapters/out/snapshot"
	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/application/usecases/queries"
	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/core/ports"
	"dronedelivery/internal/jobs"
	"dronedelivery/internal/metrics"
	"dronedelivery/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// CompositionRoot owns the long-lived dependencies of the process.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	metrics    *metrics.Metrics
	source     *ilp.Client
	store      *snapshot.Store
	regions    *snapshot.ReadThrough
	pathfinder *services.Pathfinder
	redis      *redis.Client
	pathCache  ports.PathCache
}

func NewCompositionRoot(config Config) (*CompositionRoot, error) {
	log := logger.New(os.Stdout, config.LogLevel, config.LogFormat)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	source, err := ilp.NewClient(config.ILPEndpoint, &http.Client{Timeout: config.ILPTimeout}, m, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create ILP client: %w", err)
	}

	cfg := services.DefaultSearchConfig()
	cfg.MaxExpansions = config.MaxExpansions
	pathfinder, err := services.NewPathfinder(cfg)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		config:     config,
		logger:     log,
		metrics:    m,
		source:     source,
		store:      snapshot.NewStore(),
		pathfinder: pathfinder,
	}
	c.regions = snapshot.NewReadThrough(c.store, func(ctx context.Context) error {
		return c.CreateRefreshRegionsCommandHandler().Handle(ctx, commands.NewRefreshRegionsCommand())
	})

	if config.RedisAddr != "" {
		c.redis = rediscache.NewClient(config.RedisAddr, config.RedisPassword, config.RedisDB)
		c.pathCache = rediscache.NewPathCache(c.redis, config.PathCacheTTL)
	} else {
		log.Info("REDIS_ADDR is not set, path cache disabled")
	}

	return c, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateRefreshRegionsCommandHandler() commands.RefreshRegionsCommandHandler {
	return commands.NewRefreshRegionsCommandHandler(c.source, c.store, c.logger)
}

func (c *CompositionRoot) CreateValidateOrderQueryHandler() queries.ValidateOrderQueryHandler {
	return queries.NewValidateOrderQueryHandler(c.regions, c.logger)
}

func (c *CompositionRoot) CreateCalcDeliveryPathQueryHandler() queries.CalcDeliveryPathQueryHandler {
	return queries.NewCalcDeliveryPathQueryHandler(
		c.regions, c.pathfinder, c.pathCache, c.metrics, c.config.DropOff, c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRefreshRegionsCommandHandler(), c.config.RegionRefreshCron, c.logger)
}

// CreateRouter builds the echo instance serving every endpoint.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	doc, err := openapi.Load()
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(
		c.CreateValidateOrderQueryHandler(),
		c.CreateCalcDeliveryPathQueryHandler(),
		c.pathfinder.Config().Grid,
		c.config.ServiceID,
		c.logger,
	)
	return httpadapter.NewRouter(server, doc, c.metrics.Handler(), c.logger)
}

// Close releases connections opened by the root.
func (c *CompositionRoot) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
