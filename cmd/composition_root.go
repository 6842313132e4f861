package cmd

import (
	"log/slog"

	httpin "salesorder/internal/adapters/in/http"
	"salesorder/internal/adapters/out/kafka"
	"salesorder/internal/adapters/out/postgres"
	redisout "salesorder/internal/adapters/out/redis"
	"salesorder/internal/core/application/usecases/commands"
	"salesorder/internal/core/application/usecases/queries"
	"salesorder/internal/core/ports"
	"salesorder/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	redis      redis.UniversalClient
	publisher  *kafka.Publisher
	logger     *slog.Logger
}

// NewCompositionRoot wires adapters from config. Redis and Kafka are optional:
// without RedisAddr idempotency keys are ignored, without KafkaBrokers the
// outbox is not relayed.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	if config.RedisAddr != "" {
		root.redis = redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
		})
	}

	if brokers := kafka.ParseBrokers(config.KafkaBrokers); len(brokers) > 0 {
		root.publisher = kafka.NewPublisher(kafka.NewWriter(brokers, config.KafkaOrderEventsTopic))
	}

	return root
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})

	var idempotency ports.IdempotencyStore
	if c.redis != nil {
		idempotency = redisout.NewIdempotencyStore(c.redis, redisout.DefaultPrefix, redisout.DefaultTTL)
	}
	return commands.NewCreateOrderCommandHandler(f, idempotency, c.logger)
}

func (c *CompositionRoot) CreateActionOrderCommandHandler() commands.ActionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewActionOrderCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() (commands.RelayOutboxCommandHandler, bool) {
	if c.publisher == nil {
		return commands.RelayOutboxCommandHandler{}, false
	}
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher), true
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readers())
}

// CreateServer builds the HTTP handlers over the use cases.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateActionOrderCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.logger,
	)
}

// CreateJobManager registers the background jobs. The outbox relay is only
// registered when a Kafka publisher is configured.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	manager := jobs.NewJobManager(c.logger)
	if relay, ok := c.CreateRelayOutboxCommandHandler(); ok {
		manager.Register("outbox_relay", jobs.NewOutboxRelayJob(relay, c.config.OutboxRelaySchedule, c.config.OutboxBatchSize, c.logger))
	} else {
		c.logger.Warn("KAFKA_BROKERS is empty, outbox relay disabled")
	}
	return manager
}

// Close releases the Redis client and the Kafka writer.
func (c *CompositionRoot) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.logger.Error("failed to close kafka writer", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.logger.Error("failed to close redis client", "error", err)
		}
	}
}

func (c *CompositionRoot) readers() queries.ReadersFactory {
	return FuncReadersFactory(func() queries.Readers {
		return c.uowFactory.CreateGorm()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncReadersFactory func() queries.Readers

func (f FuncReadersFactory) Create() queries.Readers {
	return f()
}
