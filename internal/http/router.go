package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/Mikayuko/projectbingsu/internal/http/handlers"
	httpMW "github.com/Mikayuko/projectbingsu/internal/http/middleware"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	ServiceName string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	CodeHandler     *httpH.CodeHandler
	OrderHandler    *httpH.OrderHandler
	MenuHandler     *httpH.MenuHandler
	ReviewHandler   *httpH.ReviewHandler
	ReportHandler   *httpH.ReportHandler
	RealtimeHandler *httpH.RealtimeHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "bingsu-api"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS())
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}

		// Customer-facing ordering flow. The menu code is the capability,
		// so none of these require a login.
		if cfg.CodeHandler != nil {
			api.GET("/codes/:code/validate", cfg.CodeHandler.Validate)
		}
		if cfg.MenuHandler != nil {
			api.GET("/menu", cfg.MenuHandler.ListPublic)
		}
		if cfg.OrderHandler != nil {
			api.POST("/orders", cfg.OrderHandler.Create)
			api.GET("/orders/track/:code", cfg.OrderHandler.Track)
		}
		if cfg.ReviewHandler != nil {
			api.POST("/reviews", cfg.ReviewHandler.Create)
			api.GET("/reviews", cfg.ReviewHandler.List)
		}
		if cfg.RealtimeHandler != nil {
			api.GET("/orders/track/:code/stream", cfg.RealtimeHandler.StreamOrder)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		admin := protected.Group("/admin")
		{
			if cfg.AuthMiddleware != nil {
				admin.Use(cfg.AuthMiddleware.RequireAdmin())
			}

			if cfg.CodeHandler != nil {
				admin.POST("/codes", cfg.CodeHandler.Generate)
				admin.GET("/codes", cfg.CodeHandler.List)
			}
			if cfg.OrderHandler != nil {
				admin.GET("/orders", cfg.OrderHandler.List)
				admin.PATCH("/orders/:id/status", cfg.OrderHandler.Transition)
			}
			if cfg.MenuHandler != nil {
				admin.GET("/menu", cfg.MenuHandler.ListAll)
				admin.POST("/menu", cfg.MenuHandler.Create)
				admin.PATCH("/menu/:id", cfg.MenuHandler.Update)
				admin.DELETE("/menu/:id", cfg.MenuHandler.Delete)
			}
			if cfg.ReviewHandler != nil {
				admin.DELETE("/reviews/:id", cfg.ReviewHandler.Delete)
			}
			if cfg.ReportHandler != nil {
				admin.GET("/reports/sales", cfg.ReportHandler.GetSalesReport)
			}
			if cfg.RealtimeHandler != nil {
				admin.GET("/stream/orders", cfg.RealtimeHandler.StreamAdminOrders)
			}
		}
	}

	return r
}
