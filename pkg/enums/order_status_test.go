package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderStatusInitiated, OrderStatusAccepted},
		{OrderStatusInitiated, OrderStatusCancelled},
		{OrderStatusAccepted, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusCompleted},
		{OrderStatusShipped, OrderStatusDisputed},
		{OrderStatusDisputed, OrderStatusCompleted},
		{OrderStatusDisputed, OrderStatusCancelled},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("expected %s -> %s to be legal", tc.from, tc.to)
		}
	}

	denied := []struct {
		from, to OrderStatus
	}{
		{OrderStatusInitiated, OrderStatusShipped},
		{OrderStatusInitiated, OrderStatusCompleted},
		{OrderStatusAccepted, OrderStatusAccepted},
		{OrderStatusAccepted, OrderStatusCancelled},
		{OrderStatusCompleted, OrderStatusDisputed},
		{OrderStatusCancelled, OrderStatusInitiated},
		{OrderStatusCompleted, OrderStatusCompleted},
	}
	for _, tc := range denied {
		if tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("expected %s -> %s to be illegal", tc.from, tc.to)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled, OrderStatusDisputed} {
		if !s.IsTerminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusInitiated, OrderStatusAccepted, OrderStatusShipped} {
		if s.IsTerminal() {
			t.Fatalf("expected %s to be non-terminal", s)
		}
	}
}

func TestOrderStatusHoldsEscrow(t *testing.T) {
	holding := []OrderStatus{OrderStatusInitiated, OrderStatusAccepted, OrderStatusShipped, OrderStatusDisputed}
	for _, s := range holding {
		if !s.HoldsEscrow() {
			t.Fatalf("expected %s to hold escrow", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		if s.HoldsEscrow() {
			t.Fatalf("expected %s to release escrow", s)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("initiated"); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := ParseOrderStatus("returned"); err == nil {
		t.Fatal("expected parse error for unknown status")
	}
}

func TestParseBalanceKind(t *testing.T) {
	if kind, err := ParseBalanceKind("coins"); err != nil || kind != BalanceKindCoins {
		t.Fatalf("unexpected result %v %v", kind, err)
	}
	if _, err := ParseBalanceKind("gold"); err == nil {
		t.Fatal("expected parse error for unknown kind")
	}
}
