package preference

import (
	"context"

	"github.com/elastiquality/notify-api/internal/domain"
)

// Service reads and writes a user's own notification preferences.
// Reads return the merged map so clients never see the raw partial state.
type Service interface {
	Get(ctx context.Context, userID string) (domain.MergedPreferences, error)
	Update(ctx context.Context, userID string, prefs domain.NotificationPreferences) (domain.MergedPreferences, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type service struct {
	users userStore
}

func NewService(users userStore) Service {
	return &service{users: users}
}

func (s *service) Get(ctx context.Context, userID string) (domain.MergedPreferences, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.MergedPreferences{}, err
	}
	return u.Preferences.Merged(), nil
}

func (s *service) Update(ctx context.Context, userID string, prefs domain.NotificationPreferences) (domain.MergedPreferences, error) {
	if err := s.users.Update(ctx, userID, map[string]interface{}{
		"notification_preferences": prefs,
	}); err != nil {
		return domain.MergedPreferences{}, err
	}
	return prefs.Merged(), nil
}
