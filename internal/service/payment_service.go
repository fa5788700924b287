package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

var ErrPaymentValidation = errors.New("payment validation failed")

// Payment methods accepted by the simulated gateway.
var paymentMethods = map[string]struct{}{
	"esewa":  {},
	"khalti": {},
	"card":   {},
}

const defaultProcessingDelay = 2 * time.Second

type CheckoutInput struct {
	Credits float64
	Method  string
}

type PaymentReceipt struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Credits   float64   `json:"credits"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentService is a simulated gateway: it holds the request for a fixed
// processing delay and then always settles. No money moves anywhere.
type PaymentService struct {
	sessions ports.SessionStore

	processingDelay time.Duration
	sleep           func(time.Duration)
	now             func() time.Time
}

func NewPaymentService(sessions ports.SessionStore, processingDelay time.Duration) *PaymentService {
	if processingDelay <= 0 {
		processingDelay = defaultProcessingDelay
	}
	return &PaymentService{
		sessions:        sessions,
		processingDelay: processingDelay,
		sleep:           time.Sleep,
		now:             time.Now,
	}
}

// Checkout settles a credit purchase and banks the credits on the session
// user.
func (s *PaymentService) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*PaymentReceipt, error) {
	if input.Credits <= 0 {
		return nil, fmt.Errorf("%w: credits must be positive", ErrPaymentValidation)
	}
	if _, ok := paymentMethods[input.Method]; !ok {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrPaymentValidation, input.Method)
	}
	user, err := s.sessions.LoadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoSession
	}

	s.sleep(s.processingDelay)

	user.Credits += input.Credits
	user.Tier = domain.TierForCredits(user.Credits)
	if err := s.sessions.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return &PaymentReceipt{
		ID:        uuid.New(),
		UserID:    userID,
		Credits:   input.Credits,
		Method:    input.Method,
		Status:    "succeeded",
		CreatedAt: s.now(),
	}, nil
}

// Spend deducts credits for a paid action, clamping the balance at zero.
// Returns the remaining balance.
func (s *PaymentService) Spend(ctx context.Context, userID uuid.UUID, cost float64) (float64, error) {
	if cost < 0 {
		return 0, fmt.Errorf("%w: cost cannot be negative", ErrPaymentValidation)
	}
	user, err := s.sessions.LoadUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrNoSession
	}
	user.Credits = SpendCredits(user.Credits, cost)
	user.Tier = domain.TierForCredits(user.Credits)
	if err := s.sessions.SaveUser(ctx, user); err != nil {
		return 0, err
	}
	return user.Credits, nil
}
