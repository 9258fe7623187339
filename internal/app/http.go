package app

import (
	"context"
	"net/http"

	"github.com/tcumang/admin-frontend/internal/api"
	"github.com/tcumang/admin-frontend/internal/auth"
	"github.com/tcumang/admin-frontend/internal/cache"
	"github.com/tcumang/admin-frontend/internal/config"
	"github.com/tcumang/admin-frontend/internal/handler"
	"github.com/tcumang/admin-frontend/internal/middleware"
	"github.com/tcumang/admin-frontend/internal/resources"
	"github.com/tcumang/admin-frontend/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	cookieOpts := session.CookieOptions{
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}

	var sessionStore session.Store
	if infra.Redis != nil {
		sessionStore = session.NewRedisStore(infra.Redis.Client, cookieOpts)
	} else {
		sessionStore = session.NewMemoryStore(cookieOpts)
	}

	apiClient := api.NewClient(cfg.APIBaseURL, sessionStore)
	dataCache := cache.New()

	newsService := resources.NewNewsService(apiClient, dataCache, cfg.AssetBaseURL)
	documentService := resources.NewDocumentService(apiClient, dataCache, cfg.AssetBaseURL)
	settingsService := resources.NewSettingsService(apiClient, dataCache, cfg.AssetBaseURL)
	dashboardService := resources.NewDashboardService(apiClient, dataCache)

	authService := auth.NewService(apiClient, sessionStore)

	h := handler.New(authService, newsService, documentService, settingsService, dashboardService)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	// Route gate runs before everything else renders: unauthenticated
	// navigations bounce to /login, authenticated visits to /login bounce
	// back out.
	router.Use(middleware.GinRouteGate())

	// ----------------------------
	// Public Routes
	// ----------------------------

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET(middleware.LoginPath, func(c *gin.Context) {
		c.File("./web/login.html")
	})

	router.Static("/static", "./web/static")

	// ----------------------------
	// Screens (behind the gate)
	// ----------------------------

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, middleware.DefaultPath)
	})

	for _, page := range []string{"/dashboard", "/news", "/documents", "/settings"} {
		router.GET(page, func(c *gin.Context) {
			c.File("./web/index.html")
		})
	}

	// ----------------------------
	// API Routes (behind the gate)
	// ----------------------------

	h.RegisterRoutes(router)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if infra.Redis != nil {
			return infra.Redis.Close()
		}
		return nil
	}, nil
}
