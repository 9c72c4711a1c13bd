// Package wire 提供依赖装配
package wire

import (
	"context"

	"github.com/gin-gonic/gin"

	"tech-blog-ai-api/internal/application/conversation"
	"tech-blog-ai-api/internal/application/draftgen"
	"tech-blog-ai-api/internal/config"
	"tech-blog-ai-api/internal/infrastructure/llm"
	"tech-blog-ai-api/internal/infrastructure/persistence/memory"
	"tech-blog-ai-api/internal/infrastructure/persistence/redis"
	"tech-blog-ai-api/internal/interfaces/http/handler"
	"tech-blog-ai-api/internal/interfaces/http/middleware"
	"tech-blog-ai-api/internal/interfaces/http/router"
	"tech-blog-ai-api/pkg/logger"
)

// App 装配完成的应用
type App struct {
	Router *router.Router

	redisClient *redis.Client
}

// Engine 返回 HTTP 引擎
func (a *App) Engine() *gin.Engine {
	return a.Router.Engine()
}

// InitializeApp 装配应用依赖
// 会话存储在进程内；Redis 仅在启用限流时建连，建连失败视为致命
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)

	factory := llm.NewEinoFactory(cfg)
	generator := draftgen.NewGenerator(cfg, factory)
	svc := conversation.NewService(sessionRepo, generator, cfg.Session.MaxSections)

	var (
		redisClient *redis.Client
		rateLimiter middleware.RateLimiter
	)
	if cfg.Security.RateLimit.Enabled && cfg.Cache.Redis.Enabled {
		client, err := redis.NewClient(&cfg.Cache.Redis)
		if err != nil {
			return nil, nil, err
		}
		redisClient = client
		rateLimiter = redis.NewRateLimiter(client)
	}

	handlers := router.Handlers{
		Session: handler.NewSessionHandler(svc),
		Health:  handler.NewHealthHandler(redisClient),
	}

	app := &App{
		Router:      router.New(cfg, handlers, rateLimiter),
		redisClient: redisClient,
	}

	cleanup := func() {
		if app.redisClient != nil {
			if err := app.redisClient.Close(); err != nil {
				logger.Error(ctx, "failed to close redis client", err)
			}
		}
	}

	return app, cleanup, nil
}
