package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/Mikayuko/projectbingsu/internal/http"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	log.Info("Wiring router...")
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:         log,
		ServiceName: cfg.ServiceName,

		AuthHandler:    handlerset.Auth,
		AuthMiddleware: middlewareset.Auth,
		UserHandler:    handlerset.User,

		CodeHandler:     handlerset.Code,
		OrderHandler:    handlerset.Order,
		MenuHandler:     handlerset.Menu,
		ReviewHandler:   handlerset.Review,
		ReportHandler:   handlerset.Report,
		RealtimeHandler: handlerset.Realtime,

		HealthHandler: handlerset.Health,
	})
}
