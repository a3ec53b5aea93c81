package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/elastiquality/notify-api/internal/domain"
	"github.com/elastiquality/notify-api/internal/pkg/id"
	"github.com/elastiquality/notify-api/internal/pkg/validate"
)

// Outcome is the terminal result of a dispatch that did not error.
// Skipped means the recipient's preferences suppressed the notification;
// this is an expected outcome, not a failure.
type Outcome struct {
	Skipped bool
	Reason  string
}

type Service interface {
	Dispatch(ctx context.Context, req domain.DispatchRequest) (*Outcome, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type tokenStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.DeviceToken, error)
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

// PushSender delivers a title/body/data triple to a set of device tokens.
// Implementations swallow per-batch gateway failures; a returned error means
// the attempt could not be made at all.
type PushSender interface {
	SendPush(ctx context.Context, tokens []string, title, body string, data map[string]interface{}) error
}

// EmailSender delivers one transactional email.
type EmailSender interface {
	SendEmail(to, subject, htmlBody string) error
}

type service struct {
	users         userStore
	tokens        tokenStore
	notifications notificationStore
	push          PushSender
	email         EmailSender
}

func NewService(users userStore, tokens tokenStore, notifications notificationStore, push PushSender, email EmailSender) Service {
	return &service{
		users:         users,
		tokens:        tokens,
		notifications: notifications,
		push:          push,
		email:         email,
	}
}

// Dispatch runs the delivery decision for one notification request:
// validate, resolve the recipient, evaluate preferences, persist the record,
// then fan out to push and email. The record is always persisted before any
// delivery attempt; channel failures after that point are logged and do not
// affect the result.
func (s *service) Dispatch(ctx context.Context, req domain.DispatchRequest) (*Outcome, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}

	category := req.Type
	if category == "" {
		category = domain.CategoryGeneric
	}

	recipient, err := s.users.Get(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient.Email == "" {
		return nil, fmt.Errorf("recipient has no email on file: %w", domain.ErrNotFound)
	}

	if !recipient.Preferences.Merged().Allows(category) {
		return &Outcome{Skipped: true, Reason: "preference disabled"}, nil
	}

	body := domain.TruncateBody(req.Body)
	data := req.Data
	if data == nil {
		data = map[string]interface{}{}
	}

	n := &domain.Notification{
		NotificationID: id.New(),
		UserID:         req.RecipientID,
		Type:           category,
		Title:          req.Title,
		Body:           body,
		Data:           data,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notifications.Put(ctx, n); err != nil {
		return nil, fmt.Errorf("persist notification: %w", err)
	}

	// The record is durable; from here on the channels are best-effort and
	// isolated from each other.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.deliverPush(ctx, req.RecipientID, req.Title, body, data, category)
	}()
	go func() {
		defer wg.Done()
		s.deliverEmail(recipient.Email, req.Title, body)
	}()
	wg.Wait()

	return &Outcome{}, nil
}

func (s *service) deliverPush(ctx context.Context, userID, title, body string, data map[string]interface{}, category string) {
	devices, err := s.tokens.ListByUser(ctx, userID)
	if err != nil {
		slog.Warn("push delivery skipped: token lookup failed", "user_id", userID, "err", err)
		return
	}
	tokens := make([]string, len(devices))
	for i, d := range devices {
		tokens[i] = d.Token
	}

	pushData := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		pushData[k] = v
	}
	pushData["type"] = category

	if err := s.push.SendPush(ctx, tokens, title, body, pushData); err != nil {
		slog.Warn("push delivery failed", "user_id", userID, "err", err)
	}
}

func (s *service) deliverEmail(to, subject, body string) {
	html := fmt.Sprintf("<p>%s</p>", body)
	if err := s.email.SendEmail(to, subject, html); err != nil {
		slog.Warn("email delivery failed", "to", to, "err", err)
	}
}
