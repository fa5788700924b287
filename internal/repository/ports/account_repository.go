package ports

import (
	"context"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// UpsertByEmail creates or refreshes the account backing a federated
	// sign-in; no password material is stored for those.
	UpsertByEmail(ctx context.Context, email, name string) (*domain.Account, error)
}
