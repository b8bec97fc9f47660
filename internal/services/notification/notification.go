// Package notification содержит бизнес-логику рассылки push-уведомлений:
// массовую отправку по реестру токенов, отправку одному устройству
// и рассылку администраторам.
package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/notification-relay/internal/models"
	"github.com/magabrotheeeer/notification-relay/internal/pushgateway"
)

// ErrNoSubscribers возвращается при попытке массовой рассылки
// с пустым реестром токенов.
var ErrNoSubscribers = errors.New("no subscribers registered")

// TokenRegistry определяет методы реестра зарегистрированных push-токенов.
type TokenRegistry interface {
	List(ctx context.Context) ([]string, error)
}

// AdminRepository определяет выборку push-токенов администраторов из хранилища.
type AdminRepository interface {
	ListAdminPushTokens(ctx context.Context) ([]string, error)
}

// PushSender определяет отправку сообщений в push-шлюз.
type PushSender interface {
	Send(ctx context.Context, msg models.PushMessage) (*pushgateway.Response, error)
	SendBatch(ctx context.Context, msgs []models.PushMessage) (*pushgateway.Response, error)
}

// NotificationService реализует операции рассылки уведомлений.
type NotificationService struct {
	registry TokenRegistry
	repo     AdminRepository
	sender   PushSender
	log      *slog.Logger
}

// New создает новый экземпляр NotificationService.
func New(registry TokenRegistry, repo AdminRepository, sender PushSender, log *slog.Logger) *NotificationService {
	return &NotificationService{
		registry: registry,
		repo:     repo,
		sender:   sender,
		log:      log,
	}
}

func buildMessages(tokens []string, title, body string) []models.PushMessage {
	msgs := make([]models.PushMessage, 0, len(tokens))
	for _, token := range tokens {
		msgs = append(msgs, models.PushMessage{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  body,
		})
	}
	return msgs
}

// NotifyAll отправляет уведомление на все зарегистрированные токены
// и возвращает количество отправленных сообщений.
func (s *NotificationService) NotifyAll(ctx context.Context, title, body string) (int, error) {
	const op = "services.notification.NotifyAll"

	tokens, err := s.registry.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(tokens) == 0 {
		return 0, ErrNoSubscribers
	}

	msgs := buildMessages(tokens, title, body)
	resp, err := s.sender.SendBatch(ctx, msgs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("notification sent to all subscribers",
		slog.Int("sent", len(msgs)),
		slog.String("gateway_response", resp.String()))
	return len(msgs), nil
}

// NotifyToken отправляет уведомление на один токен.
func (s *NotificationService) NotifyToken(ctx context.Context, token, title, body string) error {
	const op = "services.notification.NotifyToken"

	msg := models.PushMessage{
		To:    token,
		Sound: "default",
		Title: title,
		Body:  body,
	}
	resp, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("notification sent to user", slog.String("gateway_response", resp.String()))
	return nil
}

// NotifyAdmins отправляет уведомление всем администраторам с push-токеном
// и возвращает количество отправленных сообщений. Отсутствие администраторов
// с токенами не является ошибкой.
func (s *NotificationService) NotifyAdmins(ctx context.Context, title, body string) (int, error) {
	const op = "services.notification.NotifyAdmins"

	tokens, err := s.repo.ListAdminPushTokens(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(tokens) == 0 {
		s.log.Info("no admin push tokens available")
		return 0, nil
	}

	msgs := buildMessages(tokens, title, body)
	resp, err := s.sender.SendBatch(ctx, msgs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("notification sent to admins",
		slog.Int("sent", len(msgs)),
		slog.String("gateway_response", resp.String()))
	return len(msgs), nil
}
