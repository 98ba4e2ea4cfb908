package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Mikayuko/projectbingsu/internal/clients/redis"
	"github.com/Mikayuko/projectbingsu/internal/db"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/realtime"
	"github.com/Mikayuko/projectbingsu/internal/repos"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

// setupTestDB opens a per-test in-memory database and runs the migrations.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

type testEnv struct {
	db   *gorm.DB
	log  *logger.Logger
	hub  *realtime.Hub
	repo struct {
		code  repos.MenuCodeRepo
		item  repos.MenuItemRepo
		order repos.OrderRepo
		rev   repos.ReviewRepo
	}
	codes   MenuCodeService
	orders  OrderService
	menu    MenuService
	reviews ReviewService
	reports ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		db:  setupTestDB(t),
		log: mustTestLogger(t),
	}
	env.hub = realtime.NewHub(env.log)
	env.repo.code = repos.NewMenuCodeRepo(env.db, env.log)
	env.repo.item = repos.NewMenuItemRepo(env.db, env.log)
	env.repo.order = repos.NewOrderRepo(env.db, env.log)
	env.repo.rev = repos.NewReviewRepo(env.db, env.log)

	notifier := NewNotifier(env.log, env.hub, nil)
	env.codes = NewMenuCodeService(env.db, env.log, env.repo.code, 24*time.Hour, time.Hour)
	env.orders = NewOrderService(env.db, env.log, env.repo.order, env.repo.code, env.repo.item, redis.NoopCodeGuard{}, notifier)
	env.menu = NewMenuService(env.db, env.log, env.repo.item, notifier)
	env.reviews = NewReviewService(env.db, env.log, env.repo.rev, env.repo.order)
	env.reports = NewReportService(env.db, env.log, env.repo.order, env.repo.rev)
	return env
}

func (env *testEnv) seedItem(t *testing.T, kind types.MenuItemKind, name string, price int64, stock int) *types.MenuItem {
	t.Helper()
	item := &types.MenuItem{
		ID:        uuid.New(),
		Kind:      kind,
		Name:      name,
		Price:     price,
		Available: true,
		Stock:     stock,
	}
	if _, err := env.repo.item.Create(context.Background(), nil, []*types.MenuItem{item}); err != nil {
		t.Fatalf("seed item %q: %v", name, err)
	}
	return item
}

func (env *testEnv) generateCode(t *testing.T, size types.CupSize) *types.MenuCode {
	t.Helper()
	code, err := env.codes.Generate(context.Background(), size, uuid.New())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	return code
}
