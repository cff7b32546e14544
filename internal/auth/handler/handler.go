package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"oauth-userdata/internal/auth"
	"oauth-userdata/internal/auth/provider"
	"oauth-userdata/internal/auth/resolver"
	"oauth-userdata/internal/logger"
	"oauth-userdata/internal/middleware"
	"oauth-userdata/internal/profilecache"
	"oauth-userdata/internal/session"
	"oauth-userdata/internal/userdata"
	"oauth-userdata/internal/userdata/extractor"
)

type Handler struct {
	providers    *provider.Registry
	extractors   *extractor.Registry
	sessionStore session.Store
	resolver     resolver.Resolver
	profiles     profilecache.Cache

	SessionTTL    time.Duration
	CookieOptions session.CookieOptions
}

func NewHandler(
	providers *provider.Registry,
	extractors *extractor.Registry,
	sessionStore session.Store,
	resolver resolver.Resolver,
	profiles profilecache.Cache,
) *Handler {
	return &Handler{
		providers:     providers,
		extractors:    extractors,
		sessionStore:  sessionStore,
		resolver:      resolver,
		profiles:      profiles,
		SessionTTL:    24 * time.Hour,
		CookieOptions: session.DefaultCookieOptions,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/oauth/login/:provider", h.login)
	r.GET("/oauth/callback/:provider", h.callback)
	r.POST("/auth/logout", h.Logout)
}

// RegisterAPI mounts the session-protected profile routes.
func (h *Handler) RegisterAPI(r gin.IRouter) {
	api := r.Group("/api", middleware.RequireSession(h.sessionStore))
	api.GET("/me", h.Me)
}

func (h *Handler) login(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	state, err := generateState(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "state error"})
		return
	}
	_, codeChallenge, err := generatePKCE(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "pkce error"})
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

func (h *Handler) callback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	ex, err := h.extractors.Get(providerName)
	if err != nil {
		logger.Error("provider has no extractor", map[string]any{
			"provider": providerName,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "provider misconfigured"})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization denied"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	ctx := c.Request.Context()

	svc, err := p.Exchange(ctx, code, codeVerifier)
	if err != nil {
		logger.Warn("code exchange failed", map[string]any{
			"provider": providerName,
			"error":    err,
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	ud, err := extractor.Extract(ctx, ex, svc)
	if err != nil {
		logger.Error("profile extraction failed", map[string]any{
			"provider":  providerName,
			"error":     err,
			"transport": errors.Is(err, userdata.ErrTransport),
			"decode":    errors.Is(err, userdata.ErrDecode),
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load provider profile"})
		return
	}

	identity, err := auth.NewIdentity(providerName, ud)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.resolver.Resolve(ctx, identity)
	if err != nil {
		logger.Error("identity resolution failed", map[string]any{
			"provider": providerName,
			"error":    err,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to resolve user",
		})
		return
	}

	if err := h.profiles.Set(ctx, userID, ud); err != nil {
		// the profile is persisted by the resolver; the cache is best-effort
		logger.Warn("profile cache write failed", map[string]any{
			"user_id": userID,
			"error":   err,
		})
	}

	sess, err := session.New(userID, providerName, h.SessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create session",
		})
		return
	}

	if err := h.sessionStore.Create(ctx, sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to persist session",
		})
		return
	}

	session.SetCookie(c.Writer, sess, h.CookieOptions)

	logger.Info("login succeeded", map[string]any{
		"provider": providerName,
		"user_id":  userID,
		"ip":       c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "authenticated",
		"user_id": userID,
		"profile": ud,
	})
}

// Me returns the cached normalized profile of the session's user.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ud, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile lookup failed"})
		return
	}
	if ud == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not cached, log in again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"profile": ud,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if sessionID := session.FromRequest(c.Request); sessionID != "" {
		// best-effort; the cookie is cleared regardless
		_ = h.sessionStore.Delete(c.Request.Context(), sessionID)
	}

	session.ClearCookie(c.Writer, h.CookieOptions)

	c.Status(http.StatusNoContent)
}
