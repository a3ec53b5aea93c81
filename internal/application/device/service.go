package device

import (
	"context"
	"fmt"
	"time"

	"github.com/elastiquality/notify-api/internal/domain"
	"github.com/elastiquality/notify-api/internal/pkg/validate"
)

// Service manages a user's push-device registrations.
type Service interface {
	Register(ctx context.Context, userID string, req domain.RegisterDeviceRequest) (*domain.DeviceToken, error)
	List(ctx context.Context, userID string) ([]domain.DeviceToken, error)
	Delete(ctx context.Context, userID, token string) error
}

type tokenStore interface {
	Upsert(ctx context.Context, d *domain.DeviceToken) error
	ListByUser(ctx context.Context, userID string) ([]domain.DeviceToken, error)
	Delete(ctx context.Context, userID, token string) error
}

type service struct {
	repo tokenStore
}

func NewService(repo tokenStore) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, userID string, req domain.RegisterDeviceRequest) (*domain.DeviceToken, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	d := &domain.DeviceToken{
		UserID:    userID,
		Token:     req.Token,
		Platform:  req.Platform,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.DeviceToken, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, token string) error {
	return s.repo.Delete(ctx, userID, token)
}
