package ports

import (
	"context"

	"github.com/musitech/crm-api/internal/core/domain"
)

// StatusRepository persists status-check records.
type StatusRepository interface {
	Insert(ctx context.Context, sc *domain.StatusCheck) error
	List(ctx context.Context, limit int64) ([]*domain.StatusCheck, error)
}
