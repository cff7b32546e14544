package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"oauth-userdata/internal/auth/handler"
	"oauth-userdata/internal/auth/provider"
	"oauth-userdata/internal/auth/provider/google"
	"oauth-userdata/internal/auth/provider/yahoo"
	"oauth-userdata/internal/auth/resolver"
	"oauth-userdata/internal/config"
	"oauth-userdata/internal/logger"
	"oauth-userdata/internal/middleware"
	"oauth-userdata/internal/userdata/extractor"
	googleextractor "oauth-userdata/internal/userdata/extractor/google"
	yahooextractor "oauth-userdata/internal/userdata/extractor/yahoo"
)

// Extractors returns every built-in profile extractor.
func Extractors() *extractor.Registry {
	return extractor.NewRegistry(
		googleextractor.New(),
		yahooextractor.New(),
	)
}

func setupProviders(ctx context.Context, cfg config.Config) (*provider.Registry, error) {
	var list []provider.OAuthProvider

	if cfg.Google.Enabled() {
		p, err := google.New(
			ctx,
			cfg.Google.ClientID,
			cfg.Google.ClientSecret,
			cfg.Google.RedirectURL,
			cfg.Google.Scopes,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}

	if cfg.Yahoo.Enabled() {
		p, err := yahoo.New(yahoo.Config{
			ClientID:     cfg.Yahoo.ClientID,
			ClientSecret: cfg.Yahoo.ClientSecret,
			RedirectURL:  cfg.Yahoo.RedirectURL,
			Scopes:       cfg.Yahoo.Scopes,
		})
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}

	registry := provider.NewRegistry(list...)
	logger.Info("oauth providers configured", map[string]any{
		"providers": registry.Names(),
	})
	return registry, nil
}

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	providers, err := setupProviders(ctx, cfg)
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	authHandler := handler.NewHandler(
		providers,
		Extractors(),
		infra.Sessions,
		resolver.NewDBResolver(infra.DB),
		infra.Profiles,
	)
	authHandler.SessionTTL = cfg.SessionTTL

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	authHandler.RegisterRoutes(router)
	authHandler.RegisterAPI(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/api/providers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"providers": providers.Names()})
	})

	return router, infra.Close, nil
}
