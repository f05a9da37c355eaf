package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/musitech/crm-api/internal/core/domain"
	"github.com/musitech/crm-api/internal/core/ports"
)

const statusListLimit = 1000

// StatusService implements the status-check demo endpoints.
type StatusService struct {
	repo ports.StatusRepository
}

func NewStatusService(repo ports.StatusRepository) *StatusService {
	return &StatusService{repo: repo}
}

func (s *StatusService) Create(ctx context.Context, clientName string) (*domain.StatusCheck, error) {
	sc := &domain.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *StatusService) List(ctx context.Context) ([]*domain.StatusCheck, error) {
	return s.repo.List(ctx, statusListLimit)
}
