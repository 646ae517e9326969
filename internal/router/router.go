package router

import (
	"fmt"
	"strings"

	"github.com/agro-saffron/storefront/internal/cache"
	"github.com/agro-saffron/storefront/internal/config"
	publichandlers "github.com/agro-saffron/storefront/internal/http/handlers/public"
	"github.com/agro-saffron/storefront/internal/logger"
	"github.com/agro-saffron/storefront/internal/provider"
	"github.com/agro-saffron/storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	redisClient := cache.Client()
	cartWriteRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:cart", redisPrefix),
		WindowSeconds: cfg.Security.CartRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CartRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.CartRateLimit.BlockSeconds,
		Message:       "too many cart requests",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/quick-search", publicHandler.QuickSearchProducts)
			public.GET("/products/featured", publicHandler.ListFeaturedProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/categories/:id/products", publicHandler.ListCategoryProducts)
		}

		// 购物车接口（会话作用域）
		cart := apiV1.Group("/cart")
		cart.Use(session.Middleware(c.SessionStore, session.CookieOptions{
			Name:   cfg.Session.CookieName,
			Path:   cfg.Session.CookiePath,
			Secure: cfg.Session.CookieSecure,
		}))
		cartWriteLimit := RateLimitMiddleware(redisClient, cartWriteRule, KeyBySessionOrIP(cfg.Session.CookieName))
		{
			cart.GET("", publicHandler.GetCart)
			cart.GET("/count", publicHandler.CartCount)
			cart.POST("/items", cartWriteLimit, publicHandler.AddCartItem)
			cart.PUT("/items/:id", cartWriteLimit, publicHandler.UpdateCartItem)
			cart.DELETE("/items/:id", cartWriteLimit, publicHandler.DeleteCartItem)
			cart.DELETE("", cartWriteLimit, publicHandler.ClearCart)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

// KeyBySessionOrIP 优先使用会话令牌作为限流 key，没有会话时退回 IP
func KeyBySessionOrIP(cookieName string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		if sess := session.FromContext(c); sess != nil && sess.Token() != "" {
			return sess.Token()
		}
		if token, err := c.Cookie(cookieName); err == nil && strings.TrimSpace(token) != "" {
			return token
		}
		return c.ClientIP()
	}
}
