package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/QinCai-rui/The-Forbidden-Sector/internal/api"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/backend"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/content"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/metrics"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/server"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/service"
	"github.com/QinCai-rui/The-Forbidden-Sector/pkg/config"
	"github.com/QinCai-rui/The-Forbidden-Sector/pkg/logging"
	"github.com/QinCai-rui/The-Forbidden-Sector/pkg/middleware"
	"github.com/QinCai-rui/The-Forbidden-Sector/web"
)

var (
	configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")
	version    = "dev"
	buildTime  = "unknown"
)

func main() {
	flag.Parse()

	// A missing .env is fine; the environment may already be populated.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting Forbidden Sector",
		zap.String("version", version),
		zap.String("build_time", buildTime),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := backend.New(ctx, &cfg.SessionStore, logger)
	cancel()
	if err != nil {
		logger.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	logger.Info("Session store initialized",
		zap.String("type", string(store.Type)),
		zap.Bool("degraded", store.Degraded),
	)

	loader := content.NewLoader(contentFS(cfg.Content.Root, logger))
	m := metrics.New()
	services := service.NewServices(store, loader, m, logger)

	var limiter *middleware.AuthRateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewAuthRateLimiter(cfg.RateLimit, logger)
	}

	srvCfg := &server.ServerConfig{
		Address:      cfg.Server.Address(),
		CORS:         cfg.CORS,
		LoggingLevel: cfg.Logging.Level,
		StoreType:    string(store.Type),
		Degraded:     store.Degraded,
	}

	manager := server.NewManager(srvCfg, logger)
	manager.AddProvider(api.NewHandlers(services, limiter, logger))

	if cfg.Server.AdminPort > 0 {
		adminToken := cfg.Server.AdminToken
		if adminToken == "" {
			adminToken, err = middleware.GenerateAdminToken()
			if err != nil {
				logger.Fatal("Failed to generate admin token", zap.Error(err))
			}
			logger.Info("Generated admin API token (set SECTOR_SERVER_ADMIN_TOKEN to use a fixed token)",
				zap.String("token", adminToken))
		}

		srvCfg.AdminAddress = cfg.Server.AdminAddress()
		manager.AddAdminProvider(api.NewAdminHandlers(services, string(store.Type), adminToken, logger))
	}

	if err := manager.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start servers", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := manager.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// contentFS serves assets from root on disk, or from the bundled copy when
// root is empty or missing.
func contentFS(root string, logger *zap.Logger) fs.FS {
	if root == "" {
		return web.EmbeddedFS()
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		logger.Warn("Content root not found, using bundled assets", zap.String("root", root))
		return web.EmbeddedFS()
	}
	return os.DirFS(root)
}
