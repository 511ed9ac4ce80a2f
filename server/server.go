// Package server is the storefront's HTTP surface: the public product and
// order endpoints, the session cart/likes routes, and the admin write
// paths.
package server

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/example/bakeshop/pkg/assets"
	"github.com/example/bakeshop/pkg/cart"
	"github.com/example/bakeshop/pkg/config"
	"github.com/example/bakeshop/pkg/models"
	"github.com/example/bakeshop/pkg/repository"
	"github.com/example/bakeshop/pkg/storefront"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// ProductStore is the catalog persistence surface the handlers need.
type ProductStore interface {
	List(ctx context.Context, f repository.ProductFilter) ([]models.Product, int64, error)
	Search(ctx context.Context, q string) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// OrderStore is the orders persistence surface.
type OrderStore interface {
	ListAll(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	products ProductStore
	orders   OrderStore
	cache    *repository.RedisRepository // nil disables the read cache
	cart     *cart.Service
	resolver *assets.Resolver
	hours    storefront.Hours
}

func NewServer(cfg *config.Config, logger *zap.Logger, products ProductStore, orders OrderStore, cache *repository.RedisRepository, cartSvc *cart.Service) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config:   cfg,
		logger:   logger,
		router:   router,
		products: products,
		orders:   orders,
		cache:    cache,
		cart:     cartSvc,
		resolver: assets.NewResolver(cfg.Assets.PublicBaseURL, cfg.Assets.FallbackImage),
		hours:    storefront.Hours{Open: cfg.Store.OpenHour, Close: cfg.Store.CloseHour},
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Catalog
	products := s.router.Group("/products")
	{
		products.GET("", s.listProducts)
		products.GET("/search", s.searchProducts)
		products.GET("/:id", s.getProduct)
		products.POST("", s.requireAdmin(), s.createProduct)
		products.PUT("/:id", s.requireAdmin(), s.updateProduct)
		products.DELETE("/:id", s.requireAdmin(), s.deleteProduct)
	}

	// Orders
	orders := s.router.Group("/orders")
	{
		orders.POST("", s.createOrder)
		orders.GET("", s.listOrders)
		orders.GET("/:id", s.getOrder)
		orders.PUT("/:id/status", s.requireAdmin(), s.updateOrderStatus)
	}

	// Session cart and likes
	session := s.router.Group("", s.requireSession())
	{
		session.GET("/cart", s.getCart)
		session.POST("/cart/items", s.addCartItem)
		session.PUT("/cart/items/:productId", s.updateCartItem)
		session.DELETE("/cart/items/:productId", s.removeCartItem)
		session.GET("/likes", s.listLikes)
		session.PUT("/likes/:productId", s.toggleLike)
	}

	// Swagger
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Storefront API starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// requireAdmin guards the write paths with the configured bearer token.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || header == token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		if token != s.config.Store.AdminToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Permission denied"})
			return
		}
		c.Next()
	}
}

const sessionHeader = "X-Session-ID"

func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(sessionHeader) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Missing session id"})
			return
		}
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetHeader(sessionHeader)
}

func (s *Server) audit(action, entityID string, data map[string]interface{}) {
	go s.orders.CreateAuditLog(context.Background(), &repository.AuditLog{
		Service:  s.config.Server.Name,
		Action:   action,
		EntityID: entityID,
		Data:     data,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
