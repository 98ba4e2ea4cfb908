package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/db"
	"github.com/Mikayuko/projectbingsu/internal/observability"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	Hub      *realtime.Hub

	cancel       context.CancelFunc
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	hub := realtime.NewHub(log)

	clientset, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, hub, clientset)
	handlerset := wireHandlers(log, serviceset, hub)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, handlerset, middlewareset)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Clients:  clientset,
		Hub:      hub,
	}, nil
}

// Start brings up the background pieces: tracing, the expired code sweeper,
// the Redis event forwarder, the admin bootstrap and the menu seed.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.otelShutdown = observability.InitOTel(ctx, a.Log, observability.OtelConfig{
		ServiceName: a.Cfg.ServiceName,
		Environment: a.Cfg.Environment,
		Version:     a.Cfg.Version,
	})

	a.Services.Code.StartSweeper(ctx)

	if a.Clients.EventBus != nil {
		if err := a.Clients.EventBus.StartForwarder(ctx, a.Hub.Broadcast); err != nil {
			a.Log.Warn("Event bus forwarder failed to start", "error", err)
		}
	}

	if a.Cfg.AdminEmail != "" {
		if err := a.Services.Auth.EnsureAdmin(ctx, a.Cfg.AdminEmail, a.Cfg.AdminPassword); err != nil {
			a.Log.Warn("Admin bootstrap failed", "error", err)
		}
	}

	if a.Cfg.MenuSeedPath != "" {
		if err := a.Services.Menu.SeedFromFile(ctx, a.Cfg.MenuSeedPath); err != nil {
			a.Log.Warn("Menu seed failed", "error", err)
		}
	}
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(context.Background())
		a.otelShutdown = nil
	}
	a.Clients.Close()
	if a.Log != nil {
		a.Log.Sync()
	}
}
