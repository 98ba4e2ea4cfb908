package app

import (
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/realtime"
	"github.com/Mikayuko/projectbingsu/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Code     services.MenuCodeService
	Order    services.OrderService
	Menu     services.MenuService
	Review   services.ReviewService
	Report   services.ReportService
	Notifier services.Notifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, hub *realtime.Hub, clients Clients) Services {
	log.Info("Wiring services...")

	notifier := services.NewNotifier(log, hub, clients.EventBus)
	authService := services.NewAuthService(db, log, reposet.User, reposet.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(db, log, reposet.User)
	codeService := services.NewMenuCodeService(db, log, reposet.MenuCode, cfg.CodeTTL, cfg.CodeSweepEvery)
	orderService := services.NewOrderService(db, log, reposet.Order, reposet.MenuCode, reposet.MenuItem, clients.CodeGuard, notifier)
	menuService := services.NewMenuService(db, log, reposet.MenuItem, notifier)
	reviewService := services.NewReviewService(db, log, reposet.Review, reposet.Order)
	reportService := services.NewReportService(db, log, reposet.Order, reposet.Review)

	return Services{
		Auth:     authService,
		User:     userService,
		Code:     codeService,
		Order:    orderService,
		Menu:     menuService,
		Review:   reviewService,
		Report:   reportService,
		Notifier: notifier,
	}
}
