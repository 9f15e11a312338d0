package di

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskboard/application/serviceimpl"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/infrastructure/messaging"
	natspkg "taskboard/infrastructure/nats"
	"taskboard/infrastructure/postgres"
	redispkg "taskboard/infrastructure/redis"
	"taskboard/interfaces/api/handlers"
	"taskboard/pkg/config"
	"taskboard/pkg/logger"
	"taskboard/pkg/scheduler"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // nil when the cache is disabled
	NATSClient     *natspkg.Client  // nil when events are disabled
	EventScheduler scheduler.EventScheduler

	// Ports
	Transactor     repositories.Transactor
	BoardCache     ports.BoardCachePort
	EventPublisher ports.EventPublisherPort

	// Repositories
	BoardRepository repositories.BoardRepository
	TaskRepository  repositories.TaskRepository

	// Services
	BoardService     services.BoardService
	TaskService      services.TaskService
	BoardCacheWarmer *serviceimpl.BoardCacheWarmer
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initScheduler(); err != nil {
		return err
	}

	logger.Info("All dependencies initialized successfully")
	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		LogSQL:   c.Config.IsDevelopment() && c.Config.Log.Level == "debug",
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	if c.Config.Database.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := postgres.Seed(ctx, db); err != nil {
			return err
		}
	}

	c.Transactor = postgres.NewTransactionManager(db)

	// Redis is optional: without it reads go straight to the database.
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.BoardCache = redispkg.NewBoardCache(redisClient, c.Config.Cache.TTL)
			logger.Info("Board cache enabled", "ttl", c.Config.Cache.TTL.String())
		}
	}

	// NATS is optional: without it events are dropped.
	c.EventPublisher = messaging.NewNoopEventPublisher()
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
		if err != nil {
			logger.Warn("NATS client initialization failed (events disabled)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.EventPublisher = messaging.NewNATSEventPublisher(natspkg.NewPublisher(natsClient))
			logger.Info("Event publishing enabled", "stream", natspkg.StreamName)
		}
	}

	return nil
}

func (c *Container) initRepositories() {
	c.BoardRepository = postgres.NewBoardRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	logger.Info("Repositories initialized")
}

func (c *Container) initServices() {
	if c.BoardCache != nil {
		c.BoardService = serviceimpl.NewBoardServiceWithCache(c.BoardRepository, c.TaskRepository, c.Transactor, c.EventPublisher, c.BoardCache)
		c.TaskService = serviceimpl.NewTaskServiceWithCache(c.TaskRepository, c.BoardRepository, c.Transactor, c.EventPublisher, c.BoardCache)
	} else {
		c.BoardService = serviceimpl.NewBoardService(c.BoardRepository, c.TaskRepository, c.Transactor, c.EventPublisher)
		c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.BoardRepository, c.Transactor, c.EventPublisher)
	}
	logger.Info("Services initialized", "cache", c.BoardCache != nil)
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	if c.BoardCache != nil {
		if err := scheduler.ValidateCronExpression(c.Config.Cache.WarmCron); err != nil {
			return err
		}

		c.BoardCacheWarmer = serviceimpl.NewBoardCacheWarmer(
			c.BoardRepository, c.Transactor, c.BoardCache, c.EventScheduler, c.Config.Cache.WarmCron,
		)
		if err := c.BoardCacheWarmer.RegisterWarmJob(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.BoardCacheWarmer.Warm(ctx); err != nil {
			logger.Warn("Initial board cache warm-up failed", "error", err)
		}
	}

	c.EventScheduler.Start()
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
	}

	var errs []error

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
			errs = append(errs, err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
				errs = append(errs, err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return errors.Join(errs...)
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetHandlerServices exposes the services and dependency checks to the API.
func (c *Container) GetHandlerServices() *handlers.Services {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) (any, error) {
			return nil, postgres.Ping(ctx, c.DB)
		},
	}
	if c.RedisClient != nil {
		checks["redis"] = func(ctx context.Context) (any, error) {
			return nil, c.RedisClient.Ping(ctx)
		}
	}
	if c.NATSClient != nil {
		checks["nats"] = streamHealthCheck(c.NATSClient)
	}

	return &handlers.Services{
		BoardService: c.BoardService,
		TaskService:  c.TaskService,
		ServiceName:  c.Config.App.Name,
		HealthChecks: checks,
	}
}

type streamStatus interface {
	IsConnected() bool
	GetStatus(ctx context.Context) (*natspkg.StreamInfo, error)
}

// streamHealthCheck reports the event stream counters while connected.
func streamHealthCheck(s streamStatus) handlers.HealthCheck {
	return func(ctx context.Context) (any, error) {
		if !s.IsConnected() {
			return nil, errors.New("nats connection is down")
		}
		info, err := s.GetStatus(ctx)
		if err != nil {
			return nil, err
		}
		return info, nil
	}
}
