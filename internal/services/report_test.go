package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Mikayuko/projectbingsu/internal/repos"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

func reportOrder(t *testing.T, flavor string, total int64, status types.OrderStatus, createdAt time.Time, toppings ...string) *types.Order {
	t.Helper()
	snapshots := make([]types.ToppingSnapshot, 0, len(toppings))
	for _, name := range toppings {
		snapshots = append(snapshots, types.ToppingSnapshot{ItemID: uuid.New(), Name: name, Price: 500})
	}
	raw, err := json.Marshal(snapshots)
	if err != nil {
		t.Fatalf("marshal toppings: %v", err)
	}
	return &types.Order{
		ID:         uuid.New(),
		FlavorName: flavor,
		Toppings:   datatypes.JSON(raw),
		TotalPrice: total,
		Status:     status,
		CreatedAt:  createdAt,
	}
}

func TestBuildSalesReport(t *testing.T) {
	t.Parallel()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	day1 := from.Add(10 * time.Hour)
	day2 := from.AddDate(0, 0, 1).Add(14 * time.Hour)

	orders := []*types.Order{
		reportOrder(t, "Matcha", 9000, types.OrderStatusCompleted, day1, "Red Bean"),
		reportOrder(t, "Matcha", 9500, types.OrderStatusCompleted, day1.Add(time.Hour), "Red Bean", "Mochi"),
		reportOrder(t, "Mango", 8000, types.OrderStatusCancelled, day2),
		reportOrder(t, "Mango", 8200, types.OrderStatusPending, day2.Add(time.Minute)),
	}
	statusCounts := []repos.StatusCount{
		{Status: types.OrderStatusCompleted, Count: 2},
		{Status: types.OrderStatusCancelled, Count: 1},
		{Status: types.OrderStatusPending, Count: 1},
	}

	report := buildSalesReport(from, to, orders, statusCounts)

	if report.TotalOrders != 4 {
		t.Fatalf("total orders: got=%d want=4", report.TotalOrders)
	}
	// Cancelled orders do not count toward revenue.
	if want := int64(9000 + 9500 + 8200); report.Revenue != want {
		t.Fatalf("revenue: got=%d want=%d", report.Revenue, want)
	}
	if want := 2.0 / 3.0; report.CompletionRate != want {
		t.Fatalf("completion rate: got=%f want=%f", report.CompletionRate, want)
	}

	if len(report.TopFlavors) != 2 || report.TopFlavors[0].Name != "Matcha" && report.TopFlavors[0].Count == report.TopFlavors[1].Count {
		t.Fatalf("unexpected top flavors: %+v", report.TopFlavors)
	}
	if report.TopToppings[0].Name != "Red Bean" || report.TopToppings[0].Count != 2 {
		t.Fatalf("unexpected top toppings: %+v", report.TopToppings)
	}

	if len(report.Daily) != 2 {
		t.Fatalf("daily buckets: got=%d want=2", len(report.Daily))
	}
	if report.Daily[0].Day != "2026-08-01" || report.Daily[0].Orders != 2 || report.Daily[0].Revenue != 18500 {
		t.Fatalf("unexpected first day: %+v", report.Daily[0])
	}
	if report.Daily[1].Day != "2026-08-02" || report.Daily[1].Orders != 2 || report.Daily[1].Revenue != 8200 {
		t.Fatalf("unexpected second day: %+v", report.Daily[1])
	}

	if report.PeakHours[0].Hour != 10 && report.PeakHours[0].Hour != 14 {
		t.Fatalf("unexpected peak hours: %+v", report.PeakHours)
	}
}

func TestBuildSalesReportEmptyWindow(t *testing.T) {
	t.Parallel()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	report := buildSalesReport(from, from.AddDate(0, 0, 1), nil, nil)

	if report.TotalOrders != 0 || report.Revenue != 0 || report.CompletionRate != 0 {
		t.Fatalf("empty window should produce zeroed totals: %+v", report)
	}
	if len(report.TopFlavors) != 0 || len(report.Daily) != 0 || len(report.PeakHours) != 0 {
		t.Fatalf("empty window should produce empty groupings: %+v", report)
	}
}

func TestSalesReportRejectsInvertedWindow(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	if _, err := env.reports.Sales(context.Background(), now, now.Add(-time.Hour)); err == nil {
		t.Fatalf("inverted window should be rejected")
	}
}

func TestSalesReportEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flavor := env.seedItem(t, types.MenuItemFlavor, "Matcha", 2000, 10)
	topping := env.seedItem(t, types.MenuItemTopping, "Red Bean", 1000, 10)

	code := env.generateCode(t, types.CupSizeM)
	order, err := env.orders.Create(ctx, CreateOrderRequest{
		Code:       code.Code,
		FlavorID:   flavor.ID,
		ToppingIDs: []uuid.UUID{topping.ID},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	for _, next := range []types.OrderStatus{types.OrderStatusPreparing, types.OrderStatusReady, types.OrderStatusCompleted} {
		if _, err := env.orders.Transition(ctx, order.ID, next); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}

	if _, err := env.reviews.Create(ctx, CreateReviewRequest{Rating: 4, Comment: "great", TrackingCode: order.TrackingCode}); err != nil {
		t.Fatalf("create review: %v", err)
	}

	now := time.Now()
	report, err := env.reports.Sales(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("sales report: %v", err)
	}
	if report.TotalOrders != 1 || report.Revenue != order.TotalPrice {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.CompletionRate != 1 {
		t.Fatalf("completion rate: got=%f want=1", report.CompletionRate)
	}
	if report.Reviews == nil || report.Reviews.Count != 1 || report.Reviews.Average != 4 {
		t.Fatalf("unexpected review aggregate: %+v", report.Reviews)
	}
	if len(report.TopFlavors) != 1 || report.TopFlavors[0].Name != "Matcha" {
		t.Fatalf("unexpected top flavors: %+v", report.TopFlavors)
	}
}
