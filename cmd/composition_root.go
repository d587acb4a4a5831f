package cmd

import (
	"io/fs"
	"log/slog"
	"os"

	httpadapter "transportorder/internal/adapters/in/http"
	"transportorder/internal/adapters/out/exchange"
	"transportorder/internal/adapters/out/postgres"
	redisadapter "transportorder/internal/adapters/out/redis"
	"transportorder/internal/adapters/out/rulestore"
	"transportorder/internal/core/application/usecases/commands"
	"transportorder/internal/core/application/usecases/queries"
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/services/collector"
	"transportorder/internal/core/domain/services/generator"
	"transportorder/internal/core/domain/services/rules"
	"transportorder/internal/core/domain/services/validator"
	"transportorder/internal/core/ports"
	"transportorder/internal/jobs"
	"transportorder/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived dependencies of the service and builds
// handlers, the HTTP server and the job manager from them.
type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	store      *rulestore.Store
	engine     *rules.Engine
	generators *generator.Registry
	pipeline   *validator.Pipeline

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// exchange stays nil without credentials; delivery handlers then refuse
	// every document.
	exchange    ports.ExchangeClient
	redisClient *redis.Client
	cache       ports.ValidationCache
}

// NewCompositionRoot loads the rule data and builds the shared services. The
// exchange client and the validation cache are only created when configured.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	var ruleData fs.FS = rulestore.Embedded()
	if cfg.RulesDir != "" {
		ruleData = os.DirFS(cfg.RulesDir)
	}
	store, err := rulestore.New(ruleData)
	if err != nil {
		return nil, err
	}

	registry := metrics.NewRegistry()
	m := metrics.NewMetrics(registry)

	engine := rules.NewEngine(store, logger)
	c := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		store:      store,
		engine:     engine,
		generators: generator.NewRegistry(store, collector.New(store, engine), logger),
		pipeline:   validator.NewPipeline(store),
		registry:   registry,
		metrics:    m,
	}

	if cfg.ExchangeConfigured() {
		client, err := c.newExchangeClient()
		if err != nil {
			return nil, err
		}
		c.exchange = client
	}

	if cfg.RedisAddr != "" {
		c.redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		c.cache = redisadapter.NewValidationCache(c.redisClient, cfg.ValidationCacheTTL)
	}

	return c, nil
}

func (c *CompositionRoot) newExchangeClient() (*exchange.Client, error) {
	creds, err := kernel.NewCredentials(c.cfg.ExchangeUsername, c.cfg.ExchangeCompanyID, c.cfg.ExchangePassword)
	if err != nil {
		return nil, err
	}
	env, err := exchange.ParseEnvironment(c.cfg.ExchangeEnvironment)
	if err != nil {
		return nil, err
	}
	return exchange.NewClient(exchange.Config{
		Environment:   env,
		BaseURL:       c.cfg.ExchangeBaseURL,
		Credentials:   creds,
		Timeout:       c.cfg.ExchangeTimeout,
		RatePerSecond: c.cfg.ExchangeRatePerSecond,
	}, c.metrics, c.logger)
}

// Close releases the connections opened by the root.
func (c *CompositionRoot) Close() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}

// CreateGenerateTransportOrderCommandHandler returns a new GenerateTransportOrderCommandHandler.
func (c *CompositionRoot) CreateGenerateTransportOrderCommandHandler() commands.GenerateTransportOrderCommandHandler {
	return commands.NewGenerateTransportOrderCommandHandler(c.generators, c.uowFactory, c.metrics, c.logger)
}

// CreateValidateDocumentCommandHandler passes an untyped nil cache when redis
// is not configured so the handler's nil check holds.
func (c *CompositionRoot) CreateValidateDocumentCommandHandler() commands.ValidateDocumentCommandHandler {
	if c.cache == nil {
		return commands.NewValidateDocumentCommandHandler(c.pipeline, nil, c.metrics, c.logger)
	}
	return commands.NewValidateDocumentCommandHandler(c.pipeline, c.cache, c.metrics, c.logger)
}

// CreateSubmitDocumentCommandHandler returns a new SubmitDocumentCommandHandler.
func (c *CompositionRoot) CreateSubmitDocumentCommandHandler() commands.SubmitDocumentCommandHandler {
	return commands.NewSubmitDocumentCommandHandler(c.uowFactory, c.exchange, c.cfg.DispatchMaxAttempts, c.logger)
}

// CreateDispatchQueuedDocumentsCommandHandler returns a new DispatchQueuedDocumentsCommandHandler.
func (c *CompositionRoot) CreateDispatchQueuedDocumentsCommandHandler() commands.DispatchQueuedDocumentsCommandHandler {
	return commands.NewDispatchQueuedDocumentsCommandHandler(c.uowFactory, c.exchange, c.cfg.DispatchMaxAttempts, c.logger)
}

// CreateFormatCredentialsCommandHandler returns a new FormatCredentialsCommandHandler.
func (c *CompositionRoot) CreateFormatCredentialsCommandHandler() commands.FormatCredentialsCommandHandler {
	return commands.NewFormatCredentialsCommandHandler()
}

// CreateGetAvailableDocumentTypesQueryHandler returns a new GetAvailableDocumentTypesQueryHandler.
func (c *CompositionRoot) CreateGetAvailableDocumentTypesQueryHandler() queries.GetAvailableDocumentTypesQueryHandler {
	return queries.NewGetAvailableDocumentTypesQueryHandler(c.generators)
}

// CreateGetDocumentTypeInfoQueryHandler returns a new GetDocumentTypeInfoQueryHandler.
func (c *CompositionRoot) CreateGetDocumentTypeInfoQueryHandler() queries.GetDocumentTypeInfoQueryHandler {
	return queries.NewGetDocumentTypeInfoQueryHandler(c.generators, c.engine)
}

// CreateGetDocumentExampleQueryHandler returns a new GetDocumentExampleQueryHandler.
func (c *CompositionRoot) CreateGetDocumentExampleQueryHandler() queries.GetDocumentExampleQueryHandler {
	return queries.NewGetDocumentExampleQueryHandler(c.store)
}

// CreateGetParameterRequirementsQueryHandler returns a new GetParameterRequirementsQueryHandler.
func (c *CompositionRoot) CreateGetParameterRequirementsQueryHandler() queries.GetParameterRequirementsQueryHandler {
	return queries.NewGetParameterRequirementsQueryHandler(c.store)
}

// CreateGetQueuedDocumentsQueryHandler returns a new GetQueuedDocumentsQueryHandler.
func (c *CompositionRoot) CreateGetQueuedDocumentsQueryHandler() queries.GetQueuedDocumentsQueryHandler {
	return queries.NewGetQueuedDocumentsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every handler into the echo router.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		Generate:              c.CreateGenerateTransportOrderCommandHandler(),
		Validate:              c.CreateValidateDocumentCommandHandler(),
		Submit:                c.CreateSubmitDocumentCommandHandler(),
		FormatCredentials:     c.CreateFormatCredentialsCommandHandler(),
		DocumentTypes:         c.CreateGetAvailableDocumentTypesQueryHandler(),
		DocumentTypeInfo:      c.CreateGetDocumentTypeInfoQueryHandler(),
		DocumentExample:       c.CreateGetDocumentExampleQueryHandler(),
		ParameterRequirements: c.CreateGetParameterRequirementsQueryHandler(),
		QueuedDocuments:       c.CreateGetQueuedDocumentsQueryHandler(),
	}, c.logger)
	return httpadapter.NewRouter(server, c.registry, c.metrics)
}

// CreateJobManager schedules dispatch only when the exchange is configured
// and rule reloads only for an on-disk rule directory.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	manager := jobs.NewJobManager()
	if c.cfg.ExchangeConfigured() {
		manager.Add("dispatch", jobs.NewDispatchJob(
			c.CreateDispatchQueuedDocumentsCommandHandler(),
			c.cfg.DispatchSchedule,
			c.cfg.DispatchBatchSize,
			c.metrics,
			c.logger,
		))
	}
	if c.cfg.RulesDir != "" {
		manager.Add("rule reload", jobs.NewRuleReloadJob(c.store, c.cfg.RulesReloadSchedule, c.logger))
	}
	return manager
}
