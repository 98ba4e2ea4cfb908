package types

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{OrderStatusPending, OrderStatusPreparing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusReady, false},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusPreparing, OrderStatusCancelled, true},
		{OrderStatusPreparing, OrderStatusCompleted, false},
		{OrderStatusReady, OrderStatusCompleted, true},
		{OrderStatusReady, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPreparing, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: got=%v want=%v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	t.Parallel()
	for _, s := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusPreparing, OrderStatusReady} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestParseOrderStatusCaseInsensitive(t *testing.T) {
	t.Parallel()
	got, ok := ParseOrderStatus("  preparing ")
	if !ok || got != OrderStatusPreparing {
		t.Fatalf("ParseOrderStatus: got=%q ok=%v", got, ok)
	}
	if _, ok := ParseOrderStatus("melted"); ok {
		t.Fatalf("ParseOrderStatus should reject unknown statuses")
	}
}

func TestParseCupSize(t *testing.T) {
	t.Parallel()
	size, ok := ParseCupSize(" m ")
	if !ok || size != CupSizeM {
		t.Fatalf("ParseCupSize: got=%q ok=%v", size, ok)
	}
	if _, ok := ParseCupSize("XL"); ok {
		t.Fatalf("ParseCupSize should reject XL")
	}
	if CupSizeL.BasePrice() <= CupSizeM.BasePrice() || CupSizeM.BasePrice() <= CupSizeS.BasePrice() {
		t.Fatalf("base prices should grow with the cup size")
	}
}
