package app

import (
	"context"
	"time"

	"github.com/Devansh2835/EventSpark/internal/auth"
	"github.com/Devansh2835/EventSpark/internal/config"
	"github.com/Devansh2835/EventSpark/internal/email"
	"github.com/Devansh2835/EventSpark/internal/event"
	"github.com/Devansh2835/EventSpark/internal/httpmw"
	"github.com/Devansh2835/EventSpark/internal/registration"
	"github.com/Devansh2835/EventSpark/internal/session"

	"github.com/gin-contrib/cors"
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

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	challengeStore := auth.NewRedisChallengeStore(infra.Redis.Client)
	mailer := email.NewSMTPSender(cfg)

	userRepo := auth.NewPostgresUserRepo(infra.DB)
	eventRepo := event.NewPostgresRepo(infra.DB)
	regRepo := registration.NewPostgresRepo(infra.DB)

	authService := auth.NewService(userRepo, challengeStore, sessionStore, mailer)
	eventService := event.NewService(eventRepo)
	regService := registration.NewService(regRepo, eventRepo, userRepo, mailer)

	cookieOpts := session.CookiePolicy(cfg.IsProduction())

	authHandler := auth.NewHandler(authService, cookieOpts)
	eventHandler := event.NewHandler(eventService)
	regHandler := registration.NewHandler(regService)

	requireAuth := httpmw.RequireAuthenticated(sessionStore)
	requireAdmin := httpmw.RequireAdmin(sessionStore)

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// One reverse-proxy hop sits in front of the app in production; client
	// IPs and the https scheme come from its forwarding headers. In
	// development nothing is trusted.
	if cfg.IsProduction() {
		if err := router.SetTrustedProxies([]string{
			"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16",
		}); err != nil {
			return nil, nil, err
		}
	} else {
		if err := router.SetTrustedProxies(nil); err != nil {
			return nil, nil, err
		}
	}

	router.Use(httpmw.SecureHeaders(cfg.IsProduction()))
	router.Use(httpmw.NewRateLimiter().Middleware())

	// The origin decision lives in httpmw.OriginPolicy; gin-contrib/cors
	// only translates it into response headers.
	originPolicy := httpmw.NewOriginPolicy(cfg)
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  originPolicy.Allow,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:           12 * time.Hour,
	}))

	// ----------------------------
	// Routes
	// ----------------------------

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authHandler.RegisterRoutes(router, requireAuth)
	eventHandler.RegisterRoutes(router, requireAdmin)
	regHandler.RegisterRoutes(router, requireAuth, requireAdmin)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}
