package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/QinCai-rui/The-Forbidden-Sector/internal/auth"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/challenge"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/content"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/service"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/session"
	"github.com/QinCai-rui/The-Forbidden-Sector/pkg/middleware"
)

const (
	notFoundBody     = "404 Not Found"
	serverErrorBody  = "500 Internal Server Error"
	unauthorizedPage = "<h1>401 Unauthorized</h1><p>Access to this sector is restricted.</p>"
)

// Handlers serves the public surface of the sector
type Handlers struct {
	services *service.Services
	limiter  *middleware.AuthRateLimiter
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance. limiter may be nil.
func NewHandlers(services *service.Services, limiter *middleware.AuthRateLimiter, logger *zap.Logger) *Handlers {
	return &Handlers{
		services: services,
		limiter:  limiter,
		logger:   logger.Named("handlers"),
	}
}

// Name implements server.RouteProvider
func (h *Handlers) Name() string {
	return "public"
}

// RegisterRoutes adds the public routes and the plain-text 404 fallback
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	guard := func(c *gin.Context) { c.Next() }
	if h.limiter != nil {
		guard = middleware.AuthRateLimitMiddleware(h.limiter)
	}

	router.GET("/", h.ServeAsset(content.IndexPage))
	router.GET("/index.html", h.ServeAsset(content.IndexPage))
	router.GET("/style.css", h.ServeAsset(content.StyleSheet))
	router.GET("/script.js", h.ServeAsset(content.Script))
	router.GET("/info.html", h.InfoPage)

	contentGroup := router.Group("/content")
	{
		contentGroup.GET("/help", h.HelpContent)
		contentGroup.GET("/authenticated", h.AuthenticatedContent)
		contentGroup.POST("/authenticated", guard, h.AuthenticatedContentWithCredentials)
	}

	router.POST("/create_session", h.CreateSession)
	router.POST("/authenticate", guard, h.Authenticate)
	router.GET("/authenticate", guard, h.AuthenticateBasic)
	router.POST("/check_answer", guard, h.CheckAnswer)

	router.NoRoute(h.NotFound)
}

// NotFound answers unmatched routes
func (h *Handlers) NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, notFoundBody)
}

// ServeAsset returns a handler for one fixed static file
func (h *Handlers) ServeAsset(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		asset, err := h.services.Content.Asset(name)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				c.String(http.StatusNotFound, notFoundBody)
				return
			}
			h.logger.Error("Failed to read asset", zap.String("asset", name), zap.Error(err))
			c.String(http.StatusInternalServerError, serverErrorBody)
			return
		}

		c.Data(http.StatusOK, asset.ContentType, asset.Body)
	}
}

// InfoPage sends visitors back to the start; the info content is only
// reachable through the challenge flow.
func (h *Handlers) InfoPage(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

// fragment writes {"content": <fragment>} or the matching error status
func (h *Handlers) fragment(c *gin.Context, name string) {
	text, err := h.services.Content.Fragment(name)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		h.logger.Error("Failed to read fragment", zap.String("fragment", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
		return
	}

	c.JSON(http.StatusOK, ContentResponse{Content: text})
}

// HelpContent handles GET /content/help
func (h *Handlers) HelpContent(c *gin.Context) {
	h.fragment(c, content.HelpFragment)
}

// AuthenticatedContent handles GET /content/authenticated?session_id=<uuid>
func (h *Handlers) AuthenticatedContent(c *gin.Context) {
	sessionID, err := session.ParseID(c.Query("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	if !h.services.Sessions.IsAuthenticated(c.Request.Context(), sessionID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	h.fragment(c, content.UnlockedFragment)
}

// AuthenticatedContentWithCredentials handles POST /content/authenticated
func (h *Handlers) AuthenticatedContentWithCredentials(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	ok := auth.Default.Match(*req.Username, *req.Password)
	h.services.Metrics.AuthAttempt("json", ok)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.fragment(c, content.UnlockedFragment)
}

// CreateSession handles POST /create_session
func (h *Handlers) CreateSession(c *gin.Context) {
	id := h.services.Sessions.Create(c.Request.Context())
	c.JSON(http.StatusOK, SessionResponse{SessionID: id})
}

// Authenticate handles POST /authenticate with a JSON body
func (h *Handlers) Authenticate(c *gin.Context) {
	var req AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AuthenticateResponse{Error: "Invalid JSON"})
		return
	}

	ok := auth.Default.Match(*req.Username, *req.Password)
	h.services.Metrics.AuthAttempt("json", ok)
	if !ok {
		c.JSON(http.StatusUnauthorized, AuthenticateResponse{Error: "Invalid credentials"})
		return
	}

	ctx := c.Request.Context()
	var sessionID string
	if req.SessionID != "" {
		id, err := session.ParseID(req.SessionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, AuthenticateResponse{Error: "Invalid session id"})
			return
		}
		sessionID = id
	} else {
		sessionID = h.services.Sessions.Create(ctx)
	}

	// A failed write is already logged; the session then reads as unauthenticated.
	_ = h.services.Sessions.SetAuthenticated(ctx, sessionID, true)

	c.JSON(http.StatusOK, AuthenticateResponse{Authenticated: true, SessionID: sessionID})
}

// AuthenticateBasic handles GET /authenticate with HTTP Basic credentials
func (h *Handlers) AuthenticateBasic(c *gin.Context) {
	username, password, err := auth.ParseBasic(c.GetHeader("Authorization"))
	if err != nil {
		h.logger.Debug("Rejected basic auth header", zap.Error(err))
		h.services.Metrics.AuthAttempt("basic", false)
		c.Header("WWW-Authenticate", auth.Challenge())
		c.Data(http.StatusUnauthorized, "text/html; charset=utf-8", []byte(unauthorizedPage))
		return
	}

	ok := auth.Default.Match(username, password)
	h.services.Metrics.AuthAttempt("basic", ok)
	if !ok {
		c.Redirect(http.StatusFound, "/info.html")
		return
	}

	c.JSON(http.StatusOK, AuthenticateResponse{Authenticated: true})
}

// CheckAnswer handles POST /check_answer
func (h *Handlers) CheckAnswer(c *gin.Context) {
	var req CheckAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"correct": false, "error": "Invalid JSON"})
		return
	}

	var sessionID string
	if req.SessionID != "" {
		id, err := session.ParseID(req.SessionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"correct": false, "error": "Invalid session id"})
			return
		}
		sessionID = id
	}

	result := h.services.Challenges.Submit(c.Request.Context(), sessionID, challenge.Submission{
		Type:     *req.Type,
		Value:    req.Value,
		Username: req.Username,
		Password: req.Password,
	})

	c.JSON(http.StatusOK, result)
}
