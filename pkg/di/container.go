package di

import (
	"taskforge/application/serviceimpl"
	"taskforge/domain/ports"
	"taskforge/domain/repositories"
	"taskforge/domain/services"
	"taskforge/infrastructure/messaging"
	"taskforge/infrastructure/postgres"
	redispkg "taskforge/infrastructure/redis"
	"taskforge/interfaces/api/handlers"
	"taskforge/pkg/auth"
	"taskforge/pkg/config"
	"taskforge/pkg/logger"
	"taskforge/pkg/scheduler"

	"gorm.io/gorm"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // optional cache
	EventPublisher ports.TaskEventPublisher
	Scheduler      *scheduler.Scheduler
	TokenManager   *auth.TokenManager

	// Repositories
	UserRepository repositories.UserRepository
	TaskRepository repositories.TaskRepository

	// Services
	UserService services.UserService
	TaskService services.TaskService
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
	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	})
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis is optional; without it every user lookup hits Postgres.
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			logger.Info("Redis client initialized", "url", c.Config.Redis.URL)
		}
	}

	// NATS is optional; without it task events are logged and dropped.
	if c.Config.NATS.URL != "" {
		publisher, err := messaging.NewNATSPublisher(c.Config.NATS.URL)
		if err != nil {
			logger.Warn("NATS publisher initialization failed (events disabled)", "error", err)
			c.EventPublisher = messaging.NewNoopPublisher()
		} else {
			c.EventPublisher = publisher
		}
	} else {
		c.EventPublisher = messaging.NewNoopPublisher()
	}

	c.TokenManager = auth.NewTokenManager(c.Config.JWT.Secret, c.Config.JWT.TTL)

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
}

func (c *Container) initServices() {
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.TokenManager, c.RedisClient)
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.EventPublisher)
}

func (c *Container) initScheduler() error {
	c.Scheduler = scheduler.New()

	reporter := serviceimpl.NewOverdueReporter(c.TaskRepository)
	if err := c.Scheduler.Daily("overdue-report", c.Config.Scheduler.OverdueReportAt, reporter.Run); err != nil {
		return err
	}

	c.Scheduler.Start()
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.Scheduler != nil {
		c.Scheduler.Stop()
		logger.Info("Scheduler stopped")
	}

	if c.EventPublisher != nil {
		c.EventPublisher.Close()
		logger.Info("Event publisher closed")
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:  c.UserService,
		TaskService:  c.TaskService,
		TokenManager: c.TokenManager,
	}
}
