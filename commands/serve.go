package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lari-oliv/olive-beauty/cache"
	"github.com/Lari-oliv/olive-beauty/config"
	"github.com/Lari-oliv/olive-beauty/controllers"
	"github.com/Lari-oliv/olive-beauty/database"
	"github.com/Lari-oliv/olive-beauty/logger"
	"github.com/Lari-oliv/olive-beauty/middleware"
	awspkg "github.com/Lari-oliv/olive-beauty/pkg/aws"
	"github.com/Lari-oliv/olive-beauty/realtime"
	"github.com/Lari-oliv/olive-beauty/repository"
	"github.com/Lari-oliv/olive-beauty/routes"
	"github.com/Lari-oliv/olive-beauty/services"
)

var migrateOnStart bool

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Run schema migration before serving")
}

// awsClients holds the optional AWS integrations. Every field stays a nil
// interface when its feature is not configured.
type awsClients struct {
	metrics   awspkg.MetricsRecorder
	sns       awspkg.SNSPublisher
	presigner awspkg.Presigner
}

func setupAWS(ctx context.Context, cfg *config.Config) (awsClients, *sdkaws.Config) {
	var clients awsClients
	if !cfg.CloudWatchEnabled && cfg.OrderEventsTopicARN == "" && cfg.ProductImagesBucket == "" {
		return clients, nil
	}

	awsCfg, err := awspkg.LoadAWSConfig(ctx)
	if err != nil {
		logger.Log.Warn("AWS config unavailable, AWS integrations disabled", zap.Error(err))
		return clients, nil
	}

	if cfg.CloudWatchEnabled {
		clients.metrics = awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, true)
	}
	if cfg.OrderEventsTopicARN != "" {
		clients.sns = awspkg.NewSNSClient(awsCfg)
	}
	if cfg.ProductImagesBucket != "" {
		clients.presigner = awspkg.NewS3Presigner(awsCfg, cfg.ProductImagesBucket)
	}
	return clients, &awsCfg
}

func runServe() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	env := cfg.Env
	if verbose {
		env = "development"
	}
	logger.Initialize(env)
	defer logger.Sync()

	integrations, awsCfg := setupAWS(ctx, cfg)
	if cfg.CloudWatchEnabled && awsCfg != nil {
		cwLogs, err := awspkg.NewCloudWatchLogsClient(ctx, *awsCfg, cfg.CloudWatchLogGroup, "olive-beauty-api")
		if err != nil {
			logger.Log.Warn("CloudWatch Logs unavailable, logging to stdout only", zap.Error(err))
		} else {
			logger.InitializeWithWriter(env, cwLogs)
		}
	}
	log := logger.Log

	db, err := database.ConnectPostgres(ctx, cfg, log)
	if err != nil {
		log.Error("Database connection failed", zap.Error(err))
		return err
	}
	defer db.Close()

	if migrateOnStart {
		if err := database.Migrate(db.DB); err != nil {
			return err
		}
		log.Info("Schema migrated")
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Warn("Redis unavailable, dashboard cache disabled", zap.Error(err))
		redisClient = nil
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := buildHandler(cfg, db, redisClient, integrations, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan struct{})
	go handler.limiter.Run(stop)

	go func() {
		log.Info("Olive Beauty API starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down Olive Beauty API...")
	close(stop)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Olive Beauty API stopped gracefully")
	return nil
}

type app struct {
	router  *gin.Engine
	limiter *middleware.RateLimiter
}

// buildHandler wires repositories, services and controllers into the router.
func buildHandler(cfg *config.Config, db *database.Postgres, redisClient *redis.Client, integrations awsClients, log *zap.Logger) app {
	users := repository.NewGormUserRepository(db.DB)
	categories := repository.NewGormCategoryRepository(db.DB)
	products := repository.NewGormProductRepository(db.DB)
	carts := repository.NewGormCartRepository(db.DB)
	favorites := repository.NewGormFavoriteRepository(db.DB)
	orders := repository.NewGormOrderRepository(db.DB)
	dashboardRepo := repository.NewGormDashboardRepository(db.DB)

	hub := realtime.NewHub(cfg.AllowedOrigins, log)
	dashboardCache := cache.NewDashboardCache(redisClient, cfg.DashboardCacheTTL, log)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	events := services.NewOrderEvents(integrations.sns, cfg.OrderEventsTopicARN, hub, dashboardCache, log)

	authService := services.NewAuthService(users, tokens, log)
	categoryService := services.NewCategoryService(categories, log)
	productService := services.NewProductService(products, categories, integrations.presigner, log)
	cartService := services.NewCartService(carts, products, integrations.metrics, log)
	favoriteService := services.NewFavoriteService(favorites, products, log)
	orderService := services.NewOrderService(orders, events, integrations.metrics, log)
	dashboardService := services.NewDashboardService(dashboardRepo, dashboardCache, cfg.DashboardLocation, log)

	validator := controllers.NewRequestValidator()
	limiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.RateLimitPerMinute), cfg.RateLimitBurst, 10*time.Minute)

	router := routes.NewRouter(routes.Controllers{
		Auth:      controllers.NewAuthController(authService, cfg.IsProduction()),
		Category:  controllers.NewCategoryController(categoryService),
		Product:   controllers.NewProductController(productService, validator),
		Cart:      controllers.NewCartController(cartService),
		Favorite:  controllers.NewFavoriteController(favoriteService),
		Order:     controllers.NewOrderController(orderService, validator),
		Dashboard: controllers.NewDashboardController(dashboardService, hub),
		Health:    controllers.NewHealthController(db),
	}, routes.Options{
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		RateLimiter:    limiter,
		Metrics:        integrations.metrics,
	})

	return app{router: router, limiter: limiter}
}
