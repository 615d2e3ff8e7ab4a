package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lari-oliv/olive-beauty/controllers"
	apperrors "github.com/Lari-oliv/olive-beauty/errors"
	"github.com/Lari-oliv/olive-beauty/logger"
	"github.com/Lari-oliv/olive-beauty/middleware"
	awspkg "github.com/Lari-oliv/olive-beauty/pkg/aws"
)

const serviceName = "olive-beauty-api"

// Controllers groups every HTTP handler the API exposes.
type Controllers struct {
	Auth      *controllers.AuthController
	Category  *controllers.CategoryController
	Product   *controllers.ProductController
	Cart      *controllers.CartController
	Favorite  *controllers.FavoriteController
	Order     *controllers.OrderController
	Dashboard *controllers.DashboardController
	Health    *controllers.HealthController
}

// Options configures the middleware chain.
type Options struct {
	Tokens         middleware.TokenParser
	AllowedOrigins []string
	RequestTimeout time.Duration
	RateLimiter    *middleware.RateLimiter
	Metrics        awspkg.MetricsRecorder
}

// NewRouter builds the gin engine with the global middleware chain and every
// route registered.
func NewRouter(ctrl Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(apperrors.ErrorMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware())
	}
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics, serviceName))
	}

	r.GET("/health", ctrl.Health.Health)
	RegisterRoutes(r, ctrl, opts.Tokens, opts.RequestTimeout)
	return r
}

// RegisterRoutes mounts the /api groups. The order feed is a long lived
// websocket and is kept out of the request timeout.
func RegisterRoutes(r *gin.Engine, ctrl Controllers, tokens middleware.TokenParser, timeout time.Duration) {
	auth := middleware.AuthRequired(tokens)
	admin := middleware.AdminOnly()

	r.GET("/api/dashboard/ws", auth, admin, ctrl.Dashboard.Feed)

	api := r.Group("/api", middleware.Timeout(timeout))

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", ctrl.Auth.Register)
		authRoutes.POST("/login", ctrl.Auth.Login)
		authRoutes.POST("/logout", ctrl.Auth.Logout)
		authRoutes.GET("/me", auth, ctrl.Auth.Me)
	}

	categoryRoutes := api.Group("/categories")
	{
		categoryRoutes.GET("", ctrl.Category.List)
		categoryRoutes.GET("/:id", ctrl.Category.Get)
		categoryRoutes.POST("", auth, admin, ctrl.Category.Create)
		categoryRoutes.PUT("/:id", auth, admin, ctrl.Category.Update)
		categoryRoutes.DELETE("/:id", auth, admin, ctrl.Category.Delete)
	}

	productRoutes := api.Group("/products")
	{
		productRoutes.GET("", ctrl.Product.List)
		productRoutes.GET("/:id", ctrl.Product.Get)
		productRoutes.POST("/:id/variants/resolve", ctrl.Product.ResolveVariant)

		productAdmin := productRoutes.Group("", auth, admin)
		productAdmin.POST("", ctrl.Product.Create)
		productAdmin.PUT("/:id", ctrl.Product.Update)
		productAdmin.DELETE("/:id", ctrl.Product.Delete)
		productAdmin.POST("/:id/variants", ctrl.Product.CreateVariant)
		productAdmin.PUT("/:id/variants/:variantId", ctrl.Product.UpdateVariant)
		productAdmin.DELETE("/:id/variants/:variantId", ctrl.Product.DeleteVariant)
		productAdmin.POST("/:id/images", ctrl.Product.AddImage)
		productAdmin.POST("/:id/images/presign", ctrl.Product.PresignImage)
		productAdmin.PUT("/:id/images/:imageId/cover", ctrl.Product.SetCoverImage)
		productAdmin.DELETE("/:id/images/:imageId", ctrl.Product.DeleteImage)
	}

	cartRoutes := api.Group("/cart", auth)
	{
		cartRoutes.GET("", ctrl.Cart.GetCart)
		cartRoutes.POST("/items", ctrl.Cart.AddItem)
		cartRoutes.PUT("/items/:id", ctrl.Cart.UpdateItem)
		cartRoutes.DELETE("/items/:id", ctrl.Cart.RemoveItem)
		cartRoutes.DELETE("", ctrl.Cart.Clear)
	}

	favoriteRoutes := api.Group("/favorites", auth)
	{
		favoriteRoutes.GET("", ctrl.Favorite.List)
		favoriteRoutes.POST("/:productId", ctrl.Favorite.Add)
		favoriteRoutes.DELETE("/:productId", ctrl.Favorite.Remove)
		favoriteRoutes.GET("/:productId/check", ctrl.Favorite.Check)
	}

	orderRoutes := api.Group("/orders", auth)
	{
		orderRoutes.POST("", ctrl.Order.Checkout)
		orderRoutes.GET("", ctrl.Order.ListMine)
		orderRoutes.GET("/all", admin, ctrl.Order.ListAll)
		orderRoutes.GET("/:id", ctrl.Order.Get)
		orderRoutes.PATCH("/:id/status", admin, ctrl.Order.UpdateStatus)
	}

	dashboardRoutes := api.Group("/dashboard", auth, admin)
	{
		dashboardRoutes.GET("/stats", ctrl.Dashboard.Stats)
		dashboardRoutes.GET("/top-products", ctrl.Dashboard.TopProducts)
		dashboardRoutes.GET("/revenue-over-time", ctrl.Dashboard.RevenueOverTime)
		dashboardRoutes.GET("/orders-over-time", ctrl.Dashboard.OrdersOverTime)
		dashboardRoutes.GET("/orders-by-status", ctrl.Dashboard.OrdersByStatus)
		dashboardRoutes.GET("/sales-by-category", ctrl.Dashboard.SalesByCategory)
		dashboardRoutes.GET("/overview", ctrl.Dashboard.Overview)
		dashboardRoutes.GET("/export", ctrl.Dashboard.Export)
	}
}
