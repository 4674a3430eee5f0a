// Package server provides HTTP server management for the sector.
// Route providers contribute routes; the Manager combines them into a public
// server and an optional admin server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/QinCai-rui/The-Forbidden-Sector/internal/api"
	"github.com/QinCai-rui/The-Forbidden-Sector/pkg/config"
	"github.com/QinCai-rui/The-Forbidden-Sector/pkg/middleware"
)

// RouteProvider allows handler sets to register their routes on a router.
type RouteProvider interface {
	// RegisterRoutes adds this provider's routes to the router.
	RegisterRoutes(router *gin.Engine)

	// Name returns the provider name for logging
	Name() string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Address      string
	AdminAddress string // empty disables the admin server

	CORS         config.CORSConfig
	LoggingLevel string

	// Reported by /health and /status
	StoreType string
	Degraded  bool
}

// Manager manages the public and admin HTTP servers
type Manager struct {
	cfg    *ServerConfig
	logger *zap.Logger

	providers      []RouteProvider
	adminProviders []RouteProvider

	httpRouter  *gin.Engine
	adminRouter *gin.Engine

	httpServer  *http.Server
	adminServer *http.Server
}

// NewManager creates a new server manager
func NewManager(cfg *ServerConfig, logger *zap.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: logger.Named("server"),
	}
}

// AddProvider adds a RouteProvider to the public server.
// Call this before Build or Start.
func (m *Manager) AddProvider(p RouteProvider) {
	m.providers = append(m.providers, p)
	m.logger.Debug("Added route provider", zap.String("name", p.Name()))
}

// AddAdminProvider adds a RouteProvider to the admin server.
func (m *Manager) AddAdminProvider(p RouteProvider) {
	m.adminProviders = append(m.adminProviders, p)
	m.logger.Debug("Added admin route provider", zap.String("name", p.Name()))
}

// Build creates the routers and registers every provider. Start calls it
// when it has not run yet.
func (m *Manager) Build() {
	m.httpRouter = m.buildRouter()
	m.addStatusEndpoints(m.httpRouter)
	for _, p := range m.providers {
		m.logger.Info("Registering HTTP routes", zap.String("provider", p.Name()))
		p.RegisterRoutes(m.httpRouter)
	}

	if m.cfg.AdminAddress == "" {
		return
	}

	m.adminRouter = gin.New()
	m.adminRouter.Use(gin.Recovery())
	m.adminRouter.Use(middleware.Logger(m.logger.Named("admin")))
	for _, p := range m.adminProviders {
		m.logger.Info("Registering admin routes", zap.String("provider", p.Name()))
		p.RegisterRoutes(m.adminRouter)
	}
}

// Start binds the listeners and serves in the background. Bind errors are
// returned; later serve errors are logged.
func (m *Manager) Start(ctx context.Context) error {
	if m.cfg.LoggingLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if m.httpRouter == nil {
		m.Build()
	}

	var err error
	m.httpServer, err = m.serve(ctx, "HTTP", m.cfg.Address, m.httpRouter)
	if err != nil {
		return err
	}

	if m.adminRouter != nil {
		m.adminServer, err = m.serve(ctx, "Admin", m.cfg.AdminAddress, m.adminRouter)
		if err != nil {
			return fmt.Errorf("failed to start admin server: %w", err)
		}
	}

	return nil
}

func (m *Manager) serve(ctx context.Context, name, addr string, handler http.Handler) (*http.Server, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%s server listen on %s: %w", name, addr, err)
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		m.logger.Info(name+" server listening", zap.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error(name+" server error", zap.Error(err))
		}
	}()

	return srv, nil
}

// Shutdown gracefully shuts down all servers
func (m *Manager) Shutdown(ctx context.Context) error {
	var errs []error

	if m.httpServer != nil {
		if err := m.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		}
	}

	if m.adminServer != nil {
		if err := m.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin server shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

// buildRouter creates a new router with common middleware
func (m *Manager) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(m.logger))
	router.Use(cors.New(corsConfig(m.cfg.CORS)))
	return router
}

func corsConfig(c config.CORSConfig) cors.Config {
	cfg := cors.Config{
		AllowMethods: c.AllowedMethods,
		AllowHeaders: c.AllowedHeaders,
		MaxAge:       time.Duration(c.MaxAge) * time.Second,
	}
	if len(c.AllowedOrigins) == 0 || slices.Contains(c.AllowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = c.AllowedOrigins
	}
	return cfg
}

// addStatusEndpoints adds /health and /status routes
func (m *Manager) addStatusEndpoints(router *gin.Engine) {
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, api.StatusResponse{
			Status:       "ok",
			Service:      api.ServiceName,
			Store:        m.cfg.StoreType,
			Degraded:     m.cfg.Degraded,
			Capabilities: api.Capabilities,
		})
	}
	router.GET("/health", handler)
	router.GET("/status", handler)
}

// HTTPRouter returns the public router, nil before Build.
func (m *Manager) HTTPRouter() *gin.Engine {
	return m.httpRouter
}

// AdminRouter returns the admin router, nil before Build or when the admin
// server is disabled.
func (m *Manager) AdminRouter() *gin.Engine {
	return m.adminRouter
}
