package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dtroode/storefront-server/internal/api/http/handler"
	"github.com/dtroode/storefront-server/internal/api/http/middleware"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// Services groups the application services the API is served by.
type Services struct {
	Auth     handler.AuthService
	User     handler.UserService
	Product  handler.ProductService
	Order    handler.OrderService
	Category handler.CategoryService
	Token    middleware.TokenService
	Database handler.Pinger
}

// Options contains transport level settings.
type Options struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	SecureCookie   bool
}

// Router builds the HTTP API of the storefront.
type Router struct {
	services       Services
	options        Options
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(services Services, options Options, contextManager model.ContextManager, logger *logger.Logger) *Router {
	return &Router{
		services:       services,
		options:        options,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register mounts every route and middleware and returns the engine.
//
// Routes under /api/user/:userId require a token issued to :userId. Routes
// under /api/admin/:userId additionally require :userId to be an admin.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.NewLogging(r.logger).Handle(),
		r.cors(),
		middleware.NewRateLimit(r.options.RateLimitRPS, r.options.RateLimitBurst).Handle(),
	)

	auth := handler.NewAuth(r.services.Auth, r.options.SecureCookie, r.logger)
	user := handler.NewUser(r.services.User, r.contextManager, r.logger)
	product := handler.NewProduct(r.services.Product, r.contextManager, r.logger)
	order := handler.NewOrder(r.services.Order, r.contextManager, r.logger)
	category := handler.NewCategory(r.services.Category, r.logger)
	health := handler.NewHealth(r.services.Database, r.logger)

	authenticate := middleware.NewAuthenticate(r.services.Token, r.contextManager, r.logger)
	profile := middleware.NewResolveProfile(r.services.User, r.contextManager, r.logger)
	authorize := middleware.NewAuthorize(r.contextManager)

	api := engine.Group("/api")
	api.GET("/health", health.Check)
	api.POST("/signup", auth.Signup)
	api.POST("/signin", auth.Signin)
	api.GET("/signout", auth.Signout)
	api.GET("/products", product.ListVerified)
	api.GET("/product/:productId", product.Get)
	api.GET("/product/:productId/photo", product.Photo)
	api.GET("/categories", category.List)
	api.GET("/category/:categoryId", category.Get)
	api.GET("/publisher/:"+middleware.UserParam, user.Publisher)

	owner := api.Group("/user/:"+middleware.UserParam,
		authenticate.Handle(),
		profile.Handle(),
		authorize.IsAuthenticated(),
	)
	owner.GET("", user.Get)
	owner.PUT("", user.Update)
	owner.GET("/orders", user.PurchaseList)
	owner.POST("/order", order.Checkout)
	owner.GET("/order/:orderId", order.Get)
	owner.GET("/products", product.ListByOwner)
	owner.POST("/product", product.Create)
	owner.PUT("/product/:productId", product.Update)
	owner.DELETE("/product/:productId", product.Delete)

	admin := api.Group("/admin/:"+middleware.UserParam,
		authenticate.Handle(),
		profile.Handle(),
		authorize.IsAuthenticated(),
		authorize.IsAdmin(),
	)
	admin.GET("/orders", order.ListAll)
	admin.GET("/order/status", order.AllowedStatuses)
	admin.PUT("/order/status", order.UpdateStatus)
	admin.GET("/products/unverified", product.ListUnverified)
	admin.PUT("/product/:productId/approve", product.Approve)
	admin.DELETE("/product/:productId", product.AdminDelete)
	admin.POST("/category", category.Create)

	return engine
}

func (r *Router) cors() gin.HandlerFunc {
	origins := r.options.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.TokenCookie},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           12 * time.Hour,
	})
}
