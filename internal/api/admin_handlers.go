package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/QinCai-rui/The-Forbidden-Sector/internal/service"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/session"
	"github.com/QinCai-rui/The-Forbidden-Sector/pkg/middleware"
)

// AdminHandlers contains handlers for internal admin API endpoints
type AdminHandlers struct {
	services  *service.Services
	storeType string
	token     string
	logger    *zap.Logger
}

// NewAdminHandlers creates a new AdminHandlers instance
func NewAdminHandlers(services *service.Services, storeType, token string, logger *zap.Logger) *AdminHandlers {
	return &AdminHandlers{
		services:  services,
		storeType: storeType,
		token:     token,
		logger:    logger.Named("admin"),
	}
}

// Name implements server.RouteProvider
func (h *AdminHandlers) Name() string {
	return "admin"
}

// RegisterRoutes adds the admin routes. Everything except /admin/status
// requires the bearer token.
func (h *AdminHandlers) RegisterRoutes(router *gin.Engine) {
	router.GET("/admin/status", h.AdminStatus)

	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(h.token, h.logger))
	{
		sessions := admin.Group("/sessions")
		{
			sessions.GET("/:id", h.GetSession)
			sessions.POST("/:id/unlock", h.UnlockSession)
			sessions.POST("/:id/reset", h.ResetSession)
		}

		if h.services.Metrics != nil {
			admin.GET("/metrics", gin.WrapH(h.services.Metrics.Handler()))
		}
	}
}

// AdminStatus reports the store type and whether it answers a ping
func (h *AdminHandlers) AdminStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	if err := h.services.Sessions.Ping(ctx); err != nil {
		h.logger.Warn("Session store ping failed", zap.Error(err))
		status = "degraded"
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:  status,
		Service: ServiceName + "-admin",
		Store:   h.storeType,
	})
}

func (h *AdminHandlers) sessionID(c *gin.Context) (string, bool) {
	id, err := session.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return "", false
	}
	return id, true
}

func (h *AdminHandlers) view(ctx context.Context, id string) SessionView {
	return SessionView{
		SessionID:      id,
		Authenticated:  h.services.Sessions.IsAuthenticated(ctx, id),
		ChallengeCount: h.services.Sessions.Count(ctx, id),
	}
}

// GetSession returns the state of one session
func (h *AdminHandlers) GetSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.view(c.Request.Context(), id))
}

// UnlockSession marks a session as authenticated
func (h *AdminHandlers) UnlockSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.services.Sessions.SetAuthenticated(c.Request.Context(), id, true); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Session store unavailable"})
		return
	}

	h.logger.Info("Session unlocked by admin", zap.String("session_id", id))
	c.JSON(http.StatusOK, h.view(c.Request.Context(), id))
}

// ResetSession clears the authenticated flag and the challenge counter
func (h *AdminHandlers) ResetSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.services.Sessions.Reset(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Session store unavailable"})
		return
	}

	h.logger.Info("Session reset by admin", zap.String("session_id", id))
	c.JSON(http.StatusOK, h.view(c.Request.Context(), id))
}
