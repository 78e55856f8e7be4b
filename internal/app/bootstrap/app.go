package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"cardia/riskapi/internal/app/config"
	"cardia/riskapi/internal/app/domains/modules/mdinference"
	"cardia/riskapi/internal/app/domains/services/svpredict"
	"cardia/riskapi/internal/app/infra/persistence/redis"
	"cardia/riskapi/internal/app/infra/session"
	"cardia/riskapi/internal/app/pkg/logger"
	"cardia/riskapi/internal/app/pkg/stats"
	"cardia/riskapi/internal/app/server/handlers/predict"
	"cardia/riskapi/internal/app/server/routers"
)

// App is the fully wired HTTP application.
type App struct {
	Engine         *gin.Engine
	PredictService *svpredict.PredictService
}

// NewPredictService loads every assessment and builds the pipeline service.
func NewPredictService(ctx context.Context, cfg *config.Config, log logger.Logger) (*svpredict.PredictService, error) {
	assessments, err := LoadAssessments(ctx, cfg.Assessments, log)
	if err != nil {
		return nil, err
	}
	return svpredict.NewPredictService(assessments, cfg.DefaultAssessment,
		mdinference.NewEngine(cfg.Inference.Timeout), stats.NewCounters(), log)
}

// InitializeApp wires configuration into a ready-to-serve engine. The returned
// cleanup releases the redis connection, if any.
func InitializeApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, func(), error) {
	predictService, err := NewPredictService(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	if cfg.Redis.Addr != "" {
		client, err := redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("init redis publisher: %w", err)
		}
		predictService.SetPublisher(client)
		cleanup = func() {
			if err := client.Close(); err != nil {
				log.Warnf(ctx, "close redis failed: %v", err)
			}
		}
		log.Infof(ctx, "prediction events enabled: addr=%s, channel=%s", cfg.Redis.Addr, redis.PredictionChannel)
	}

	if cfg.UsesDefaultSecret() {
		log.Warnf(ctx, "SECRET_KEY is not set, session cookies are signed with the default secret")
	}
	sessions := session.NewStore(cfg.Server.Secret, cfg.Server.SessionTTL, cfg.Server.SecureCookies)

	handler := predict.NewPredictHandler(predictService, sessions, log)
	engine, err := routers.SetupRoutes(handler, log, routers.Options{CORSOrigins: cfg.Server.CORSOrigins})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &App{Engine: engine, PredictService: predictService}, cleanup, nil
}
