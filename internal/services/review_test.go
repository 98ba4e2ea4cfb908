package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Mikayuko/projectbingsu/internal/platform/apierr"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

func TestCreateReviewRatingBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := env.reviews.Create(ctx, CreateReviewRequest{Rating: rating})
		var apiErr *apierr.Error
		if !errors.As(err, &apiErr) || apiErr.Code != "invalid_rating" {
			t.Fatalf("rating %d: got %v, want invalid_rating", rating, err)
		}
	}

	review, err := env.reviews.Create(ctx, CreateReviewRequest{Rating: 5, Comment: "  perfect bingsu  "})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if review.Comment != "perfect bingsu" {
		t.Fatalf("comment should be trimmed: got=%q", review.Comment)
	}
	if review.OrderID != nil {
		t.Fatalf("anonymous review should not link an order")
	}
}

func TestCreateReviewLinksOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flavor := env.seedItem(t, types.MenuItemFlavor, "Matcha", 2000, 5)
	code := env.generateCode(t, types.CupSizeS)
	order, err := env.orders.Create(ctx, CreateOrderRequest{Code: code.Code, FlavorID: flavor.ID})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	review, err := env.reviews.Create(ctx, CreateReviewRequest{
		Rating:       4,
		TrackingCode: order.TrackingCode,
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if review.OrderID == nil || *review.OrderID != order.ID {
		t.Fatalf("review should link the tracked order")
	}

	_, err = env.reviews.Create(ctx, CreateReviewRequest{Rating: 4, TrackingCode: "ZZZZZ"})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != "order_not_found" {
		t.Fatalf("unknown tracking code: got %v, want order_not_found", err)
	}
}

func TestReviewListingAggregate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, rating := range []int{2, 4} {
		if _, err := env.reviews.Create(ctx, CreateReviewRequest{Rating: rating}); err != nil {
			t.Fatalf("create review: %v", err)
		}
	}

	listing, err := env.reviews.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(listing.Reviews) != 2 {
		t.Fatalf("reviews: got=%d want=2", len(listing.Reviews))
	}
	if listing.Aggregate.Count != 2 || listing.Aggregate.Average != 3 {
		t.Fatalf("aggregate: got=%+v", listing.Aggregate)
	}

	if err := env.reviews.Delete(ctx, listing.Reviews[0].ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}
	listing, err = env.reviews.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(listing.Reviews) != 1 || listing.Aggregate.Count != 1 {
		t.Fatalf("listing after delete: %+v", listing)
	}
}
