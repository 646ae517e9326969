package provider

import (
	"time"

	"github.com/agro-saffron/storefront/internal/cache"
	"github.com/agro-saffron/storefront/internal/config"
	"github.com/agro-saffron/storefront/internal/logger"
	"github.com/agro-saffron/storefront/internal/models"
	"github.com/agro-saffron/storefront/internal/queue"
	"github.com/agro-saffron/storefront/internal/repository"
	"github.com/agro-saffron/storefront/internal/service"
	"github.com/agro-saffron/storefront/internal/session"
)

// Container 依赖注入容器
type Container struct {
	Config       *config.Config
	QueueClient  *queue.Client
	SessionStore session.Store

	// Repositories
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	CartRepo     repository.CartRepository

	// Services
	ProductService  *service.ProductService
	CategoryService *service.CategoryService
	CartService     *service.CartService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化会话存储
	c.initSessionStore()

	// 2. 初始化 Repositories
	c.initRepositories()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initSessionStore() {
	idleTimeout := time.Duration(c.Config.Session.IdleTimeoutMinutes) * time.Minute
	if cache.Enabled() {
		c.SessionStore = session.NewRedisStore(cache.Client(), cache.BuildKey("session"), idleTimeout)
		return
	}
	logger.Warnw("provider_session_store_fallback_memory", "reason", "redis_disabled")
	c.SessionStore = session.NewMemoryStore(idleTimeout)
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
}

func (c *Container) initServices() {
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
}
