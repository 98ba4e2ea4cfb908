package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Mikayuko/projectbingsu/internal/platform/apierr"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

func TestTotalPrice(t *testing.T) {
	t.Parallel()
	toppings := []types.ToppingSnapshot{
		{Name: "Red Bean", Price: 1000},
		{Name: "Mango", Price: 1500},
	}
	got := TotalPrice(types.CupSizeM, 2000, toppings)
	want := types.CupSizeM.BasePrice() + 2000 + 1000 + 1500
	if got != want {
		t.Fatalf("TotalPrice: got=%d want=%d", got, want)
	}
	if got := TotalPrice(types.CupSizeS, 0, nil); got != types.CupSizeS.BasePrice() {
		t.Fatalf("TotalPrice with bare cup: got=%d want=%d", got, types.CupSizeS.BasePrice())
	}
}

func TestCreateOrderRedeemsCodeAndDecrementsStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flavor := env.seedItem(t, types.MenuItemFlavor, "Matcha", 2000, 3)
	topping := env.seedItem(t, types.MenuItemTopping, "Red Bean", 1000, 3)
	code := env.generateCode(t, types.CupSizeM)

	order, err := env.orders.Create(ctx, CreateOrderRequest{
		Code:       code.Code,
		FlavorID:   flavor.ID,
		ToppingIDs: []uuid.UUID{topping.ID},
		Note:       "less ice",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.TrackingCode != code.Code {
		t.Fatalf("tracking code: got=%s want=%s", order.TrackingCode, code.Code)
	}
	if order.Status != types.OrderStatusPending {
		t.Fatalf("initial status: got=%s want=%s", order.Status, types.OrderStatusPending)
	}
	wantTotal := types.CupSizeM.BasePrice() + 2000 + 1000
	if order.TotalPrice != wantTotal {
		t.Fatalf("total price: got=%d want=%d", order.TotalPrice, wantTotal)
	}

	items, err := env.repo.item.GetByIDs(ctx, nil, []uuid.UUID{flavor.ID, topping.ID})
	if err != nil {
		t.Fatalf("reload items: %v", err)
	}
	for _, it := range items {
		if it.Stock != 2 {
			t.Fatalf("stock of %q: got=%d want=2", it.Name, it.Stock)
		}
	}

	// The code is single use. A second attempt must fail and leave stock alone.
	_, err = env.orders.Create(ctx, CreateOrderRequest{Code: code.Code, FlavorID: flavor.ID})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != "code_used" {
		t.Fatalf("second redemption: got %v, want code_used", err)
	}
	items, err = env.repo.item.GetByIDs(ctx, nil, []uuid.UUID{flavor.ID})
	if err != nil {
		t.Fatalf("reload flavor: %v", err)
	}
	if items[0].Stock != 2 {
		t.Fatalf("flavor stock after failed redemption: got=%d want=2", items[0].Stock)
	}
}

func TestCreateOrderOutOfStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flavor := env.seedItem(t, types.MenuItemFlavor, "Strawberry", 2500, 1)
	empty := env.seedItem(t, types.MenuItemTopping, "Mochi", 800, 0)
	code := env.generateCode(t, types.CupSizeS)

	_, err := env.orders.Create(ctx, CreateOrderRequest{
		Code:       code.Code,
		FlavorID:   flavor.ID,
		ToppingIDs: []uuid.UUID{empty.ID},
	})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != "item_out_of_stock" {
		t.Fatalf("expected item_out_of_stock, got %v", err)
	}

	// The transaction must restore the flavor stock and keep the code fresh.
	items, err := env.repo.item.GetByIDs(ctx, nil, []uuid.UUID{flavor.ID})
	if err != nil {
		t.Fatalf("reload flavor: %v", err)
	}
	if items[0].Stock != 1 {
		t.Fatalf("flavor stock after rollback: got=%d want=1", items[0].Stock)
	}
	if _, err := env.codes.Validate(ctx, code.Code); err != nil {
		t.Fatalf("code should still be valid after rollback: %v", err)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flavor := env.seedItem(t, types.MenuItemFlavor, "Melon", 2000, 5)
	topping := env.seedItem(t, types.MenuItemTopping, "Jelly", 500, 5)
	code := env.generateCode(t, types.CupSizeL)

	cases := []struct {
		name     string
		req      CreateOrderRequest
		wantCode string
	}{
		{
			"short code",
			CreateOrderRequest{Code: "AB", FlavorID: flavor.ID},
			"invalid_code_format",
		},
		{
			"missing flavor",
			CreateOrderRequest{Code: code.Code},
			"flavor_required",
		},
		{
			"topping as flavor",
			CreateOrderRequest{Code: code.Code, FlavorID: topping.ID},
			"unknown_flavor",
		},
		{
			"duplicate topping",
			CreateOrderRequest{Code: code.Code, FlavorID: flavor.ID, ToppingIDs: []uuid.UUID{topping.ID, topping.ID}},
			"duplicate_topping",
		},
		{
			"unknown topping",
			CreateOrderRequest{Code: code.Code, FlavorID: flavor.ID, ToppingIDs: []uuid.UUID{uuid.New()}},
			"unknown_topping",
		},
		{
			"too many toppings",
			CreateOrderRequest{Code: code.Code, FlavorID: flavor.ID, ToppingIDs: []uuid.UUID{
				uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(),
			}},
			"too_many_toppings",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.orders.Create(ctx, tc.req)
			var apiErr *apierr.Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected api error, got %v", err)
			}
			if apiErr.Code != tc.wantCode {
				t.Fatalf("error code: got=%s want=%s", apiErr.Code, tc.wantCode)
			}
		})
	}

	// All of the above must leave the code redeemable.
	if _, err := env.codes.Validate(ctx, code.Code); err != nil {
		t.Fatalf("code should survive rejected requests: %v", err)
	}
}

func TestOrderLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flavor := env.seedItem(t, types.MenuItemFlavor, "Injeolmi", 2200, 5)
	code := env.generateCode(t, types.CupSizeM)
	order, err := env.orders.Create(ctx, CreateOrderRequest{Code: code.Code, FlavorID: flavor.ID})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	for _, next := range []types.OrderStatus{
		types.OrderStatusPreparing,
		types.OrderStatusReady,
		types.OrderStatusCompleted,
	} {
		order, err = env.orders.Transition(ctx, order.ID, next)
		if err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
		if order.Status != next {
			t.Fatalf("status after transition: got=%s want=%s", order.Status, next)
		}
	}
	if order.CompletedAt == nil {
		t.Fatalf("completed order should carry a completion time")
	}

	_, err = env.orders.Transition(ctx, order.ID, types.OrderStatusCancelled)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != "invalid_transition" {
		t.Fatalf("transition out of a terminal state: got %v, want invalid_transition", err)
	}

	tracked, err := env.orders.Track(ctx, order.TrackingCode)
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if tracked.Status != types.OrderStatusCompleted {
		t.Fatalf("tracked status: got=%s want=%s", tracked.Status, types.OrderStatusCompleted)
	}
}

func TestOrderCancelSkipsRefund(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flavor := env.seedItem(t, types.MenuItemFlavor, "Choco", 1800, 2)
	code := env.generateCode(t, types.CupSizeS)
	order, err := env.orders.Create(ctx, CreateOrderRequest{Code: code.Code, FlavorID: flavor.ID})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := env.orders.Transition(ctx, order.ID, types.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Cancellation does not restock; the ingredients were already committed.
	items, err := env.repo.item.GetByIDs(ctx, nil, []uuid.UUID{flavor.ID})
	if err != nil {
		t.Fatalf("reload flavor: %v", err)
	}
	if items[0].Stock != 1 {
		t.Fatalf("stock after cancel: got=%d want=1", items[0].Stock)
	}
}
