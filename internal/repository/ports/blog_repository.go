package ports

import (
	"context"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

type BlogRepository interface {
	Create(ctx context.Context, entry *domain.BlogEntry) (*domain.BlogEntry, error)
	ListRecent(ctx context.Context, limit, offset int) ([]domain.BlogEntry, error)
}
