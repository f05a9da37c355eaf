package ports

import (
	"context"

	"github.com/musitech/crm-api/internal/core/domain"
)

type StatusService interface {
	Create(ctx context.Context, clientName string) (*domain.StatusCheck, error)
	List(ctx context.Context) ([]*domain.StatusCheck, error)
}
