package container

import (
	"context"
	"fmt"
	"time"

	"readgrid-backend/internal/config"
	infracache "readgrid-backend/internal/infrastructure/cache"
	"readgrid-backend/internal/infrastructure/database"
	"readgrid-backend/pkg/cache"
	"readgrid-backend/pkg/jwt"
	"readgrid-backend/pkg/logger"

	bookHandler "readgrid-backend/internal/domains/book/handler"
	bookRepo "readgrid-backend/internal/domains/book/repository"
	bookService "readgrid-backend/internal/domains/book/service"
	commentHandler "readgrid-backend/internal/domains/comment/handler"
	commentRepo "readgrid-backend/internal/domains/comment/repository"
	commentService "readgrid-backend/internal/domains/comment/service"
	favoriteHandler "readgrid-backend/internal/domains/favorite/handler"
	favoriteRepo "readgrid-backend/internal/domains/favorite/repository"
	favoriteService "readgrid-backend/internal/domains/favorite/service"
	"readgrid-backend/internal/domains/subscription/gateway/wayforpay"
	subscriptionHandler "readgrid-backend/internal/domains/subscription/handler"
	subscriptionRepo "readgrid-backend/internal/domains/subscription/repository"
	subscriptionService "readgrid-backend/internal/domains/subscription/service"
	userHandler "readgrid-backend/internal/domains/user/handler"
	userRepo "readgrid-backend/internal/domains/user/repository"
	userService "readgrid-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	WayForPay  *wayforpay.Client

	UserRepo         userRepo.UserRepository
	BookRepo         bookRepo.BookRepository
	CommentRepo      commentRepo.CommentRepository
	FavoriteRepo     favoriteRepo.FavoriteRepository
	SubscriptionRepo subscriptionRepo.SubscriptionRepository

	UserService         userService.UserService
	BookService         bookService.BookService
	CommentService      commentService.CommentService
	FavoriteService     favoriteService.FavoriteService
	SubscriptionService subscriptionService.SubscriptionService

	UserHandler         *userHandler.UserHandler
	BookHandler         *bookHandler.BookHandler
	CommentHandler      *commentHandler.CommentHandler
	FavoriteHandler     *favoriteHandler.FavoriteHandler
	SubscriptionHandler *subscriptionHandler.SubscriptionHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initCache()

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	c.WayForPay, err = wayforpay.NewClient(&wayforpay.Config{
		MerchantAccount: cfg.WayForPay.MerchantAccount,
		MerchantDomain:  cfg.WayForPay.MerchantDomain,
		SecretKey:       cfg.WayForPay.SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build payment client: %w", err)
	}

	pool := c.DB.Pool
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.BookRepo = bookRepo.NewPostgresBookRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresCommentRepository(pool)
	c.FavoriteRepo = favoriteRepo.NewPostgresFavoriteRepository(pool)
	c.SubscriptionRepo = subscriptionRepo.NewPostgresSubscriptionRepository(pool)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.BookService = bookService.NewBookService(c.BookRepo, c.UserRepo, c.Cache)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.Cache)
	c.FavoriteService = favoriteService.NewFavoriteService(c.FavoriteRepo)
	c.SubscriptionService = subscriptionService.NewSubscriptionService(
		c.SubscriptionRepo, c.WayForPay, cfg.App.Environment)

	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.FavoriteHandler = favoriteHandler.NewFavoriteHandler(c.FavoriteService)
	c.SubscriptionHandler = subscriptionHandler.NewSubscriptionHandler(c.SubscriptionService)

	logger.Info("Container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Schema registration happens once, explicitly, at startup.
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.DB = db
	return nil
}

// initCache connects Redis. Failure is not fatal: services fall back to
// direct database reads when no cache is wired.
func (c *Container) initCache() {
	redisCache := infracache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if rc, ok := redisCache.(*infracache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			logger.Error("Redis unavailable, running without cache", err)
			return
		}
	}

	c.Cache = redisCache
}

// Cleanup releases infrastructure connections, in reverse init order.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if rc, ok := c.Cache.(*infracache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}
	}
	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
	}
}
