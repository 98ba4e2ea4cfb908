package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/platform/apierr"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/realtime"
	"github.com/Mikayuko/projectbingsu/internal/repos"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

type CreateMenuItemRequest struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

// UpdateMenuItemRequest patches only the provided fields.
type UpdateMenuItemRequest struct {
	Price     *int64 `json:"price"`
	Available *bool  `json:"available"`
	Stock     *int   `json:"stock"`
}

type MenuService interface {
	CreateItem(ctx context.Context, req CreateMenuItemRequest) (*types.MenuItem, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, req UpdateMenuItemRequest) (*types.MenuItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ListAll(ctx context.Context, kind *types.MenuItemKind) ([]*types.MenuItem, error)
	ListPublic(ctx context.Context) ([]*types.MenuItem, error)
	SeedFromFile(ctx context.Context, path string) error
}

type menuService struct {
	db           *gorm.DB
	log          *logger.Logger
	menuItemRepo repos.MenuItemRepo
	notifier     Notifier
}

func NewMenuService(db *gorm.DB, log *logger.Logger, menuItemRepo repos.MenuItemRepo, notifier Notifier) MenuService {
	serviceLog := log.With("service", "MenuService")
	return &menuService{db: db, log: serviceLog, menuItemRepo: menuItemRepo, notifier: notifier}
}

func (ms *menuService) CreateItem(ctx context.Context, req CreateMenuItemRequest) (*types.MenuItem, error) {
	kind, ok := types.ParseMenuItemKind(req.Kind)
	if !ok {
		return nil, apierr.BadRequest("invalid_kind", fmt.Errorf("kind must be flavor or topping"))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apierr.BadRequest("name_required", fmt.Errorf("a name is required"))
	}
	if req.Price < 0 {
		return nil, apierr.BadRequest("invalid_price", fmt.Errorf("price cannot be negative"))
	}
	if req.Stock < 0 {
		return nil, apierr.BadRequest("invalid_stock", fmt.Errorf("stock cannot be negative"))
	}

	item := &types.MenuItem{
		ID:        uuid.New(),
		Kind:      kind,
		Name:      name,
		Price:     req.Price,
		Available: true,
		Stock:     req.Stock,
	}
	if _, err := ms.menuItemRepo.Create(ctx, nil, []*types.MenuItem{item}); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	ms.broadcastMenuChanged(ctx)
	return item, nil
}

func (ms *menuService) UpdateItem(ctx context.Context, itemID uuid.UUID, req UpdateMenuItemRequest) (*types.MenuItem, error) {
	updates := map[string]interface{}{}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apierr.BadRequest("invalid_price", fmt.Errorf("price cannot be negative"))
		}
		updates["price"] = *req.Price
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apierr.BadRequest("invalid_stock", fmt.Errorf("stock cannot be negative"))
		}
		updates["stock"] = *req.Stock
	}
	if len(updates) == 0 {
		return nil, apierr.BadRequest("no_changes", fmt.Errorf("no item changes provided"))
	}

	rows, err := ms.menuItemRepo.Update(ctx, nil, itemID, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	if rows == 0 {
		return nil, apierr.NotFound("item_not_found", fmt.Errorf("unknown menu item"))
	}

	items, err := ms.menuItemRepo.GetByIDs(ctx, nil, []uuid.UUID{itemID})
	if err != nil || len(items) == 0 {
		return nil, fmt.Errorf("failed to reload menu item: %w", err)
	}

	ms.broadcastMenuChanged(ctx)
	return items[0], nil
}

func (ms *menuService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	items, err := ms.menuItemRepo.GetByIDs(ctx, nil, []uuid.UUID{itemID})
	if err != nil {
		return fmt.Errorf("failed to load menu item: %w", err)
	}
	if len(items) == 0 {
		return apierr.NotFound("item_not_found", fmt.Errorf("unknown menu item"))
	}
	if err := ms.menuItemRepo.Delete(ctx, nil, []uuid.UUID{itemID}); err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	ms.broadcastMenuChanged(ctx)
	return nil
}

func (ms *menuService) ListAll(ctx context.Context, kind *types.MenuItemKind) ([]*types.MenuItem, error) {
	return ms.menuItemRepo.List(ctx, nil, repos.MenuItemFilter{Kind: kind})
}

func (ms *menuService) ListPublic(ctx context.Context) ([]*types.MenuItem, error) {
	return ms.menuItemRepo.List(ctx, nil, repos.MenuItemFilter{OnlyOrderable: true})
}

type seedCatalog struct {
	Flavors  []seedItem `yaml:"flavors"`
	Toppings []seedItem `yaml:"toppings"`
}

type seedItem struct {
	Name  string `yaml:"name"`
	Price int64  `yaml:"price"`
	Stock int    `yaml:"stock"`
}

// SeedFromFile upserts the starting catalog from a YAML file. Missing file is
// not an error; the shop may prefer to build the menu through the API.
func (ms *menuService) SeedFromFile(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ms.log.Warn("menu seed file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("failed to read menu seed: %w", err)
	}

	var catalog seedCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return fmt.Errorf("failed to parse menu seed: %w", err)
	}

	items := make([]*types.MenuItem, 0, len(catalog.Flavors)+len(catalog.Toppings))
	appendItems := func(kind types.MenuItemKind, seeds []seedItem) {
		for _, s := range seeds {
			name := strings.TrimSpace(s.Name)
			if name == "" {
				continue
			}
			items = append(items, &types.MenuItem{
				ID:        uuid.New(),
				Kind:      kind,
				Name:      name,
				Price:     s.Price,
				Available: true,
				Stock:     s.Stock,
			})
		}
	}
	appendItems(types.MenuItemFlavor, catalog.Flavors)
	appendItems(types.MenuItemTopping, catalog.Toppings)

	if len(items) == 0 {
		return nil
	}
	if err := ms.menuItemRepo.UpsertByKindName(ctx, nil, items); err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}
	ms.log.Info("Seeded menu catalog", "items", len(items), "path", path)
	return nil
}

func (ms *menuService) broadcastMenuChanged(ctx context.Context) {
	if ms.notifier == nil {
		return
	}
	ms.notifier.Publish(ctx, realtime.Message{
		Channel: realtime.AdminOrdersChannel,
		Event:   realtime.EventMenuChanged,
	})
}
