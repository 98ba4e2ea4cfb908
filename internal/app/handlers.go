package app

import (
	httpH "github.com/Mikayuko/projectbingsu/internal/http/handlers"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/realtime"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Code     *httpH.CodeHandler
	Order    *httpH.OrderHandler
	Menu     *httpH.MenuHandler
	Review   *httpH.ReviewHandler
	Report   *httpH.ReportHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, hub *realtime.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Auth:     httpH.NewAuthHandler(serviceset.Auth),
		User:     httpH.NewUserHandler(serviceset.User),
		Code:     httpH.NewCodeHandler(serviceset.Code),
		Order:    httpH.NewOrderHandler(serviceset.Order),
		Menu:     httpH.NewMenuHandler(serviceset.Menu),
		Review:   httpH.NewReviewHandler(serviceset.Review),
		Report:   httpH.NewReportHandler(serviceset.Report),
		Realtime: httpH.NewRealtimeHandler(log, hub),
	}
}
