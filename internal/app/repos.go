package app

import (
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/repos"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	MenuCode  repos.MenuCodeRepo
	MenuItem  repos.MenuItemRepo
	Order     repos.OrderRepo
	Review    repos.ReviewRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		MenuCode:  repos.NewMenuCodeRepo(db, log),
		MenuItem:  repos.NewMenuItemRepo(db, log),
		Order:     repos.NewOrderRepo(db, log),
		Review:    repos.NewReviewRepo(db, log),
	}
}
