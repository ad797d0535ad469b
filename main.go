package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/storefront-api/controllers"
	"github.com/Kariqs/storefront-api/initializers"
	"github.com/Kariqs/storefront-api/middlewares"
	"github.com/Kariqs/storefront-api/routes"
	"github.com/Kariqs/storefront-api/services"
	"github.com/Kariqs/storefront-api/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront REST API",
	Long: `Storefront REST API over products, images, discounts, types, tags,
cart, favorites and comments.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		db, err := initializers.ConnectToDB(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return err
		}
		return initializers.SyncDatabase(db)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() initializers.Config {
	initializers.LoadEnv()
	cfg := initializers.LoadConfig()
	initializers.InitLogger(cfg.LogLevel, cfg.LogPretty)
	return cfg
}

func newIdentityResolver(cfg initializers.Config) (services.IdentityResolver, error) {
	var resolvers []services.IdentityResolver
	if cfg.AuthURL != "" {
		resolvers = append(resolvers, services.NewCookieRelay(cfg.AuthURL, cfg.SessionCookie))
	}
	if cfg.JWTSecret != "" {
		resolvers = append(resolvers, services.NewJWTResolver(cfg.JWTSecret))
	}
	return services.NewChainResolver(resolvers...)
}

func newImageHost(ctx context.Context, cfg initializers.Config) (services.ImageHost, error) {
	switch cfg.ImageHost {
	case "s3":
		return services.NewS3Host(ctx, cfg.S3Bucket)
	case "callback", "":
		return services.NewCallbackHost(cfg.PublicURL), nil
	default:
		return nil, fmt.Errorf("unsupported IMAGE_HOST %q", cfg.ImageHost)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	ctx := cmd.Context()

	db, err := initializers.ConnectToDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	if err := initializers.SyncDatabase(db); err != nil {
		return fmt.Errorf("failed to sync database: %w", err)
	}

	redisClient := initializers.ConnectToRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient != nil {
		defer redisClient.Close()
	}

	identity, err := newIdentityResolver(cfg)
	if err != nil {
		return fmt.Errorf("set AUTH_URL or JWT_SECRET: %w", err)
	}
	images, err := newImageHost(ctx, cfg)
	if err != nil {
		return err
	}

	controller := controllers.New(controllers.Dependencies{
		Store:    store.NewGormStore(db),
		Identity: identity,
		Images:   images,
		InvalidateProducts: func(ctx context.Context) error {
			return middlewares.InvalidateCache(ctx, redisClient, middlewares.ProductCachePrefix)
		},
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middlewares.NewMetrics(registry)

	server := newServer(cfg, controller, identity, redisClient, metrics)
	routes.DefaultRoutes(server, controller, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return listen(ctx, server, ":"+cfg.Port)
}

func newServer(cfg initializers.Config, controller *controllers.Controller, identity services.IdentityResolver, redisClient *redis.Client, metrics *middlewares.Metrics) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(middlewares.RequestID())
	server.Use(middlewares.RequestLogger())
	server.Use(metrics.Handler())
	server.Use(middlewares.CORS(cfg.CorsOrigin))

	routes.ProductRoutes(server, controller, middlewares.ResponseCache(redisClient, middlewares.ProductCachePrefix, cfg.Revalidate))
	routes.CartRoutes(server, controller)
	routes.FavoriteRoutes(server, controller)
	routes.CommentRoutes(server, controller,
		middlewares.RequireIdentity(identity),
		middlewares.RateLimiter(redisClient, "comments", cfg.CommentRateLimit),
	)
	routes.TypeRoutes(server, controller)
	return server
}

func listen(ctx context.Context, handler http.Handler, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("storefront api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
