package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/internal/auth"
	"storefront/internal/port"
)

type Server struct {
	engine *gin.Engine
	logger *slog.Logger

	issuer     *auth.Issuer
	users      port.UserService
	categories port.CategoryService
	products   port.ProductService
	carts      port.CartService
	orders     port.OrderService
}

func NewServer(
	logger *slog.Logger,
	issuer *auth.Issuer,
	users port.UserService,
	categories port.CategoryService,
	products port.ProductService,
	carts port.CartService,
	orders port.OrderService,
) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		engine:     r,
		logger:     logger,
		issuer:     issuer,
		users:      users,
		categories: categories,
		products:   products,
		carts:      carts,
		orders:     orders,
	}
	r.Use(s.requestLogger())
	s.registerRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.engine.Group("/api")
	{
		users := api.Group("/users")
		users.POST("/register", s.register)
		users.POST("/login", s.login)
		users.GET("/me", s.requireAuth(), s.profile)

		categories := api.Group("/categories")
		categories.GET("", s.listCategories)
		categories.GET(":id", s.getCategory)
		categories.POST("", s.requireAuth(), s.requireAdmin(), s.createCategory)
		categories.PUT(":id", s.requireAuth(), s.requireAdmin(), s.updateCategory)
		categories.DELETE(":id", s.requireAuth(), s.requireAdmin(), s.deleteCategory)

		products := api.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.POST("", s.requireAuth(), s.requireAdmin(), s.createProduct)
		products.PUT(":id", s.requireAuth(), s.requireAdmin(), s.updateProduct)
		products.DELETE(":id", s.requireAuth(), s.requireAdmin(), s.deleteProduct)

		cart := api.Group("/cart", s.requireAuth())
		cart.GET("", s.getCart)
		cart.POST("", s.addToCart)
		cart.PUT(":productId", s.updateCartItem)
		cart.DELETE(":productId", s.removeFromCart)

		orders := api.Group("/orders", s.requireAuth())
		orders.POST("", s.placeOrder)
		orders.GET("", s.requireAdmin(), s.listAllOrders)
		orders.GET("/my-orders", s.listMyOrders)
		orders.GET(":id", s.getOrder)
		orders.PUT(":id", s.requireAdmin(), s.updateOrderStatus)
		orders.POST(":id/cancel", s.cancelOrder)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
