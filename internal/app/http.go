package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/BlockyAit/personal-list-site/internal/config"
	v1 "github.com/BlockyAit/personal-list-site/internal/delivery/http/v1"
	"github.com/BlockyAit/personal-list-site/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "./web/static")
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router *gin.Engine) {
	cfg := config.Global()

	authService := services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.TokenTTL,
	)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool)
	sessionStore := services.NewSessionStore(globalLogger, globalRedisClient, cfg.Session.TTL)

	handler := v1.New(globalLogger, authService, taskService, sessionStore)

	// Every page shares the session/CSRF chain; the static file
	// routes above stay outside it.
	pages := router.Group("/", handler.HandleSessionMiddleware, handler.HandleCSRFMiddleware)

	pages.GET("/login", handler.HandleLoginPage)
	pages.POST("/login", handler.HandleLogin)
	pages.GET("/register", handler.HandleRegisterPage)
	pages.POST("/register", handler.HandleRegister)
	pages.GET("/logout", handler.HandleLogout)

	authorized := pages.Group("/", handler.HandleAuthMiddleware)
	authorized.GET("/", handler.HandleListTasks)
	authorized.GET("/tasks/new", handler.HandleNewTaskPage)
	authorized.POST("/tasks", handler.HandleCreateTask)
	authorized.POST("/tasks/complete/:id", handler.HandleCompleteTask)
	authorized.GET("/admin", handler.HandleAdminMiddleware, handler.HandleAdminTasks)
}
