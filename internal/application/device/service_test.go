package device

import (
	"context"
	"errors"
	"testing"

	"github.com/elastiquality/notify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) Upsert(ctx context.Context, d *domain.DeviceToken) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockTokenStore) ListByUser(ctx context.Context, userID string) ([]domain.DeviceToken, error) {
	args := m.Called(ctx, userID)
	if v, _ := args.Get(0).([]domain.DeviceToken); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTokenStore) Delete(ctx context.Context, userID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func TestRegister_InvalidPlatform(t *testing.T) {
	store := &mockTokenStore{}
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "u1", domain.RegisterDeviceRequest{
		Token:    "ExponentPushToken[abc]",
		Platform: "blackberry",
	})

	require.ErrorIs(t, err, domain.ErrBadRequest)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRegister_MissingToken(t *testing.T) {
	store := &mockTokenStore{}
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "u1", domain.RegisterDeviceRequest{Platform: "ios"})

	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestRegister_StoresToken(t *testing.T) {
	store := &mockTokenStore{}
	store.On("Upsert", mock.Anything, mock.MatchedBy(func(d *domain.DeviceToken) bool {
		return d.UserID == "u1" && d.Token == "ExponentPushToken[abc]" && d.Platform == "ios" && !d.CreatedAt.IsZero()
	})).Return(nil)
	svc := NewService(store)

	d, err := svc.Register(context.Background(), "u1", domain.RegisterDeviceRequest{
		Token:    "ExponentPushToken[abc]",
		Platform: "ios",
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", d.UserID)
	assert.Equal(t, d.CreatedAt, d.UpdatedAt)
	store.AssertExpectations(t)
}

func TestRegister_SameTokenAgain(t *testing.T) {
	store := &mockTokenStore{}
	store.On("Upsert", mock.Anything, mock.Anything).Return(nil).Twice()
	svc := NewService(store)

	req := domain.RegisterDeviceRequest{Token: "ExponentPushToken[abc]", Platform: "android"}
	_, err := svc.Register(context.Background(), "u1", req)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "u1", req)
	require.NoError(t, err)

	store.AssertExpectations(t)
}

func TestDelete_PassesThrough(t *testing.T) {
	store := &mockTokenStore{}
	store.On("Delete", mock.Anything, "u1", "tok").Return(errors.New("boom"))
	svc := NewService(store)

	err := svc.Delete(context.Background(), "u1", "tok")
	assert.EqualError(t, err, "boom")
}
