package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/clients/redis"
	"github.com/Mikayuko/projectbingsu/internal/platform/apierr"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/realtime"
	"github.com/Mikayuko/projectbingsu/internal/repos"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

// maxToppings caps how many toppings fit a single cup.
const maxToppings = 5

type CreateOrderRequest struct {
	Code       string      `json:"code"`
	FlavorID   uuid.UUID   `json:"flavor_id"`
	ToppingIDs []uuid.UUID `json:"topping_ids"`
	Note       string      `json:"note"`
}

type OrderService interface {
	Create(ctx context.Context, req CreateOrderRequest) (*types.Order, error)
	Track(ctx context.Context, trackingCode string) (*types.Order, error)
	List(ctx context.Context, filter repos.OrderFilter) ([]*types.Order, error)
	Transition(ctx context.Context, orderID uuid.UUID, next types.OrderStatus) (*types.Order, error)
}

type orderService struct {
	db           *gorm.DB
	log          *logger.Logger
	orderRepo    repos.OrderRepo
	menuCodeRepo repos.MenuCodeRepo
	menuItemRepo repos.MenuItemRepo
	codeGuard    redis.CodeGuard
	notifier     Notifier
}

func NewOrderService(
	db *gorm.DB,
	log *logger.Logger,
	orderRepo repos.OrderRepo,
	menuCodeRepo repos.MenuCodeRepo,
	menuItemRepo repos.MenuItemRepo,
	codeGuard redis.CodeGuard,
	notifier Notifier,
) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{
		db:           db,
		log:          serviceLog,
		orderRepo:    orderRepo,
		menuCodeRepo: menuCodeRepo,
		menuItemRepo: menuItemRepo,
		codeGuard:    codeGuard,
		notifier:     notifier,
	}
}

// Create redeems the menu code and books the order in one transaction:
// conditional redemption of the code, stock decrements for the flavor and
// each topping, then the order insert. Any guard failing rolls back all of it.
func (os *orderService) Create(ctx context.Context, req CreateOrderRequest) (*types.Order, error) {
	code := NormalizeCode(req.Code)
	if len(code) != codeLength {
		return nil, apierr.BadRequest("invalid_code_format", fmt.Errorf("code must be %d characters", codeLength))
	}
	if req.FlavorID == uuid.Nil {
		return nil, apierr.BadRequest("flavor_required", fmt.Errorf("a flavor is required"))
	}
	if len(req.ToppingIDs) > maxToppings {
		return nil, apierr.BadRequest("too_many_toppings", fmt.Errorf("at most %d toppings per cup", maxToppings))
	}

	locked, err := os.codeGuard.Acquire(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire redemption lock: %w", err)
	}
	if !locked {
		return nil, apierr.Conflict("redemption_in_progress", fmt.Errorf("this code is being redeemed right now"))
	}
	defer os.codeGuard.Release(ctx, code)

	var order *types.Order
	err = os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		codes, err := os.menuCodeRepo.GetByCodes(ctx, tx, []string{code})
		if err != nil {
			return fmt.Errorf("failed to look up code: %w", err)
		}
		if len(codes) == 0 {
			return apierr.NotFound("code_not_found", fmt.Errorf("unknown menu code"))
		}
		menuCode := codes[0]
		now := time.Now()
		if menuCode.Used {
			return apierr.Conflict("code_used", fmt.Errorf("menu code already redeemed"))
		}
		if menuCode.Expired(now) {
			return apierr.New(410, "code_expired", fmt.Errorf("menu code expired"))
		}

		flavor, toppings, err := os.loadItems(ctx, tx, req.FlavorID, req.ToppingIDs)
		if err != nil {
			return err
		}

		if rows, err := os.menuItemRepo.DecrementStock(ctx, tx, flavor.ID); err != nil {
			return fmt.Errorf("failed to decrement flavor stock: %w", err)
		} else if rows == 0 {
			return apierr.Conflict("item_out_of_stock", fmt.Errorf("flavor %q is out of stock", flavor.Name))
		}
		for _, t := range toppings {
			if rows, err := os.menuItemRepo.DecrementStock(ctx, tx, t.ID); err != nil {
				return fmt.Errorf("failed to decrement topping stock: %w", err)
			} else if rows == 0 {
				return apierr.Conflict("item_out_of_stock", fmt.Errorf("topping %q is out of stock", t.Name))
			}
		}

		snapshots := make([]types.ToppingSnapshot, 0, len(toppings))
		for _, t := range toppings {
			snapshots = append(snapshots, types.ToppingSnapshot{ItemID: t.ID, Name: t.Name, Price: t.Price})
		}
		toppingsJSON, err := json.Marshal(snapshots)
		if err != nil {
			return fmt.Errorf("failed to encode toppings: %w", err)
		}

		order = &types.Order{
			ID:           uuid.New(),
			TrackingCode: menuCode.Code,
			MenuCodeID:   menuCode.ID,
			CupSize:      menuCode.CupSize,
			FlavorID:     flavor.ID,
			FlavorName:   flavor.Name,
			FlavorPrice:  flavor.Price,
			Toppings:     toppingsJSON,
			Note:         req.Note,
			TotalPrice:   TotalPrice(menuCode.CupSize, flavor.Price, snapshots),
			Status:       types.OrderStatusPending,
		}
		if _, err := os.orderRepo.Create(ctx, tx, []*types.Order{order}); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		rows, err := os.menuCodeRepo.MarkRedeemed(ctx, tx, menuCode.ID, order.ID, now)
		if err != nil {
			return fmt.Errorf("failed to redeem code: %w", err)
		}
		if rows != 1 {
			// Lost the race despite the lock; the transaction unwinds the
			// order insert and the stock decrements.
			return apierr.Conflict("code_used", fmt.Errorf("menu code already redeemed"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	os.log.Info("Order created", "order_id", order.ID, "tracking_code", order.TrackingCode, "total_price", order.TotalPrice)
	os.notifier.Publish(ctx, realtime.Message{
		Channel: realtime.AdminOrdersChannel,
		Event:   realtime.EventOrderCreated,
		Data:    order,
	})
	return order, nil
}

func (os *orderService) loadItems(ctx context.Context, tx *gorm.DB, flavorID uuid.UUID, toppingIDs []uuid.UUID) (*types.MenuItem, []*types.MenuItem, error) {
	ids := append([]uuid.UUID{flavorID}, toppingIDs...)
	items, err := os.menuItemRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	byID := make(map[uuid.UUID]*types.MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	flavor, ok := byID[flavorID]
	if !ok || flavor.Kind != types.MenuItemFlavor {
		return nil, nil, apierr.BadRequest("unknown_flavor", fmt.Errorf("flavor not on the menu"))
	}
	if !flavor.Orderable() {
		return nil, nil, apierr.Conflict("item_unavailable", fmt.Errorf("flavor %q is unavailable", flavor.Name))
	}

	seen := make(map[uuid.UUID]bool, len(toppingIDs))
	toppings := make([]*types.MenuItem, 0, len(toppingIDs))
	for _, id := range toppingIDs {
		if seen[id] {
			return nil, nil, apierr.BadRequest("duplicate_topping", fmt.Errorf("topping listed twice"))
		}
		seen[id] = true
		topping, ok := byID[id]
		if !ok || topping.Kind != types.MenuItemTopping {
			return nil, nil, apierr.BadRequest("unknown_topping", fmt.Errorf("topping not on the menu"))
		}
		if !topping.Orderable() {
			return nil, nil, apierr.Conflict("item_unavailable", fmt.Errorf("topping %q is unavailable", topping.Name))
		}
		toppings = append(toppings, topping)
	}
	return flavor, toppings, nil
}

func (os *orderService) Track(ctx context.Context, trackingCode string) (*types.Order, error) {
	code := NormalizeCode(trackingCode)
	orders, err := os.orderRepo.GetByTrackingCodes(ctx, nil, []string{code})
	if err != nil {
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	if len(orders) == 0 {
		return nil, apierr.NotFound("order_not_found", fmt.Errorf("no order for this tracking code"))
	}
	return orders[0], nil
}

func (os *orderService) List(ctx context.Context, filter repos.OrderFilter) ([]*types.Order, error) {
	return os.orderRepo.List(ctx, nil, filter)
}

// Transition moves an order one step through the status machine.
func (os *orderService) Transition(ctx context.Context, orderID uuid.UUID, next types.OrderStatus) (*types.Order, error) {
	if !next.Valid() {
		return nil, apierr.BadRequest("invalid_status", fmt.Errorf("unknown order status"))
	}

	orders, err := os.orderRepo.GetByIDs(ctx, nil, []uuid.UUID{orderID})
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if len(orders) == 0 {
		return nil, apierr.NotFound("order_not_found", fmt.Errorf("unknown order"))
	}
	order := orders[0]

	if !order.Status.CanTransitionTo(next) {
		return nil, apierr.Conflict("invalid_transition", fmt.Errorf("cannot move order from %s to %s", order.Status, next))
	}

	var completedAt *time.Time
	if next == types.OrderStatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	rows, err := os.orderRepo.UpdateStatus(ctx, nil, order.ID, order.Status, next, completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if rows != 1 {
		return nil, apierr.Conflict("status_conflict", fmt.Errorf("order status changed concurrently"))
	}

	previous := order.Status
	order.Status = next
	order.CompletedAt = completedAt

	os.log.Info("Order status changed", "order_id", order.ID, "from", string(previous), "to", string(next))
	event := realtime.Message{
		Event: realtime.EventOrderStatusChanged,
		Data: map[string]any{
			"order_id":      order.ID,
			"tracking_code": order.TrackingCode,
			"from":          previous,
			"to":            next,
		},
	}
	// Customers listen on the tracking-code channel, staff on the admin one.
	event.Channel = order.TrackingCode
	os.notifier.Publish(ctx, event)
	event.Channel = realtime.AdminOrdersChannel
	os.notifier.Publish(ctx, event)

	return order, nil
}

// TotalPrice is the cup-size base price plus the flavor and topping
// surcharges, all snapshotted at order time.
func TotalPrice(size types.CupSize, flavorPrice int64, toppings []types.ToppingSnapshot) int64 {
	total := size.BasePrice() + flavorPrice
	for _, t := range toppings {
		total += t.Price
	}
	return total
}
