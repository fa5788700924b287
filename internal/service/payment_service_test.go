package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

func newTestPaymentService(sessions *memSessions) (*PaymentService, *time.Duration) {
	svc := NewPaymentService(sessions, 2*time.Second)
	var slept time.Duration
	svc.sleep = func(d time.Duration) { slept += d }
	svc.now = func() time.Time { return testNow }
	return svc, &slept
}

func TestCheckoutSettlesAfterProcessingDelay(t *testing.T) {
	sessions := newMemSessions()
	user := verifiedUser()
	if err := sessions.SaveUser(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	svc, slept := newTestPaymentService(sessions)

	receipt, err := svc.Checkout(context.Background(), user.ID, CheckoutInput{Credits: 50, Method: "esewa"})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if *slept != 2*time.Second {
		t.Fatalf("processing delay: want 2s, got %v", *slept)
	}
	if receipt.Status != "succeeded" || receipt.Credits != 50 || receipt.CreatedAt != testNow {
		t.Fatalf("receipt: %+v", receipt)
	}
	saved, _ := sessions.LoadUser(context.Background(), user.ID)
	if saved.Credits != 50 {
		t.Fatalf("credits not banked: %v", saved.Credits)
	}
}

func TestCheckoutValidation(t *testing.T) {
	sessions := newMemSessions()
	svc, _ := newTestPaymentService(sessions)

	if _, err := svc.Checkout(context.Background(), uuid.New(), CheckoutInput{Credits: 0, Method: "esewa"}); !errors.Is(err, ErrPaymentValidation) {
		t.Fatalf("zero credits: want ErrPaymentValidation, got %v", err)
	}
	if _, err := svc.Checkout(context.Background(), uuid.New(), CheckoutInput{Credits: 10, Method: "cheque"}); !errors.Is(err, ErrPaymentValidation) {
		t.Fatalf("unknown method: want ErrPaymentValidation, got %v", err)
	}
}

func TestCheckoutRequiresSession(t *testing.T) {
	svc, _ := newTestPaymentService(newMemSessions())

	if _, err := svc.Checkout(context.Background(), uuid.New(), CheckoutInput{Credits: 10, Method: "card"}); !errors.Is(err, ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
}

func TestSpendClampsAtZero(t *testing.T) {
	sessions := newMemSessions()
	user := verifiedUser()
	user.Credits = 3
	if err := sessions.SaveUser(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	svc, _ := newTestPaymentService(sessions)

	remaining, err := svc.Spend(context.Background(), user.ID, 5)
	if err != nil {
		t.Fatalf("Spend: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("balance must clamp at zero, got %v", remaining)
	}
	saved, _ := sessions.LoadUser(context.Background(), user.ID)
	if saved.Credits != 0 || saved.Tier != domain.TierYatri {
		t.Fatalf("saved state: %+v", saved)
	}
}
