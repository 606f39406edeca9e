package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/api"
	"github.com/pageza/pantry-chef/backend/internal/database"
	"github.com/pageza/pantry-chef/backend/internal/logger"
	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/router"
	"github.com/pageza/pantry-chef/backend/internal/server"
	"github.com/pageza/pantry-chef/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: config.IsDevelopment(),
	})
	defer func() { _ = zl.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	db, err := database.Open(cfg, zl)
	if err != nil {
		return err
	}

	// Cookie sessions are optional; bearer tokens keep working without Redis.
	var sessionStore service.SessionStore
	redisClient, err := database.NewRedisClient(cfg, zl)
	if err != nil {
		zl.Warn("session store unavailable, cookie sessions disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		sessionStore = service.NewRedisSessionStore(redisClient, cfg.SessionTTL)
	}

	var images service.ImageURLResolver
	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		zl.Warn("recipe image bucket unavailable", zap.Error(err))
	} else if s3Config != nil {
		images = service.NewS3ImageResolver(s3Config, zl)
	}

	m := metrics.New()

	authService := service.NewAuthService(db, cfg.DatastoreKey, cfg.TokenTTL)
	resolver := service.NewIdentityResolver(authService, sessionStore, zl)
	llm := service.NewLLMService(service.LLMConfig{
		APIKey:  cfg.GenerationAPIKey,
		APIURL:  cfg.GenerationAPIURL,
		Model:   cfg.GenerationModel,
		Timeout: cfg.GenerationTimeout,
	}, zl, m)
	recipes := service.NewRecipeService(service.NewGormRecipeStore(db), images, zl, m)
	pipeline := service.NewGenerationPipeline(resolver, llm, recipes, zl, m)

	handler := router.SetupRouter(router.Dependencies{
		Logger:          zl,
		Metrics:         m,
		AllowedOrigins:  cfg.AllowedOrigins,
		AuthHandler:     api.NewAuthHandler(authService, sessionStore, cfg.SessionTTL, config.IsProduction()),
		GenerateHandler: api.NewGenerateHandler(pipeline),
		RecipeHandler:   api.NewRecipeHandler(recipes, resolver),
	})

	srv := server.New(cfg, handler, zl)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		zl.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
