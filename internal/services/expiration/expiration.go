// Package expiration содержит фоновую задачу сервиса: периодическую проверку
// активных платёжных записей, перевод истёкших в статус expired, понижение
// роли пользователя, оставшегося без активных подписок, и отправку
// push-уведомления об окончании подписки.
//
// Задача — единственный писатель, снимающий роль admin по истечении подписки.
// Все записи в хранилище безусловные ("последняя запись побеждает"), поэтому
// два экземпляра сервиса могут обработать одну запись дважды: повторный
// перевод в expired и повторное понижение роли идемпотентны, возможна лишь
// повторная отправка уведомления.
package expiration

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/notification-relay/internal/config"
	"github.com/magabrotheeeer/notification-relay/internal/lib/sl"
	"github.com/magabrotheeeer/notification-relay/internal/metrics"
	"github.com/magabrotheeeer/notification-relay/internal/models"
	"github.com/magabrotheeeer/notification-relay/internal/pushgateway"
)

// Repository определяет методы хранилища, нужные задаче проверки подписок.
type Repository interface {
	// ListActivePayments возвращает все платёжные записи со статусом active.
	ListActivePayments(ctx context.Context) ([]*models.Payment, error)
	// MarkPaymentExpired безусловно переводит запись в статус expired.
	MarkPaymentExpired(ctx context.Context, id int) error
	// HasActivePayments сообщает, остались ли у пользователя активные записи.
	HasActivePayments(ctx context.Context, userUID string) (bool, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// DemoteUser безусловно понижает роль пользователя до user.
	DemoteUser(ctx context.Context, userUID string) error
}

// PushSender определяет отправку одного push-сообщения.
type PushSender interface {
	Send(ctx context.Context, msg models.PushMessage) (*pushgateway.Response, error)
}

// ExpirationService запускает циклы проверки истёкших подписок.
type ExpirationService struct {
	repo   Repository
	sender PushSender
	cfg    config.Expiration
	log    *slog.Logger
}

// New создает новый экземпляр ExpirationService.
func New(repo Repository, sender PushSender, cfg config.Expiration, log *slog.Logger) *ExpirationService {
	return &ExpirationService{
		repo:   repo,
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// IsExpired сообщает, истекла ли платёжная запись к моменту now.
// Чистая функция: запись истекла, если expires_at <= now.
// Для записи без expires_at всегда false.
func IsExpired(p *models.Payment, now time.Time) bool {
	return p.ExpiresAt != nil && !p.ExpiresAt.After(now)
}

// Run выполняет один цикл сразу при старте, затем по фиксированному
// интервалу до отмены контекста. Ошибка цикла никогда не останавливает
// задачу. Начатый цикл не прерывается: выход возможен только между циклами.
func (s *ExpirationService) Run(ctx context.Context) {
	// Цикл получает контекст без отмены: остановка сервиса действует
	// только между циклами, начатый цикл доводится до конца.
	cycleCtx := context.WithoutCancel(ctx)
	s.RunCycle(cycleCtx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunCycle(cycleCtx)
		}
	}
}

// RunCycle выполняет один цикл проверки: выборка активных записей,
// оценка истечения и обработка каждой истёкшей записи. Ошибка выборки
// прерывает весь цикл без изменений в хранилище; повтор произойдёт
// на следующем тике.
func (s *ExpirationService) RunCycle(ctx context.Context) {
	const op = "services.expiration.RunCycle"
	log := s.log.With(slog.String("op", op))

	log.Info("starting expiration cycle")
	payments, err := s.repo.ListActivePayments(ctx)
	if err != nil {
		log.Error("failed to list active payments, cycle aborted", sl.Err(err))
		metrics.ExpirationCycleFailuresTotal.Inc()
		return
	}

	now := time.Now()
	expired := 0
	for _, p := range payments {
		if p.ExpiresAt == nil || p.UserUID == "" {
			log.Warn("skipping malformed payment record", slog.Int("payment_id", p.ID))
			continue
		}
		if !IsExpired(p, now) {
			continue
		}
		s.expirePayment(ctx, log, p)
		expired++
	}

	metrics.ExpirationCyclesTotal.Inc()
	log.Info("expiration cycle finished",
		slog.Int("checked", len(payments)),
		slog.Int("expired", expired))
}

// expirePayment обрабатывает одну истёкшую запись последовательными шагами,
// каждый шаг может отказать независимо:
//  1. перевод записи в expired — при ошибке запись пропускается целиком
//     (остаётся active и будет обработана на следующем тике);
//  2. проверка оставшихся активных записей и понижение роли — при ошибке
//     уведомление не отправляется;
//  3. отправка уведомления — ошибка только логируется, повторов нет.
//
// Статус обновляется до проверки роли, чтобы вторая запись того же
// пользователя, истёкшая в этом же цикле, не увидела устаревший active
// от этой записи.
func (s *ExpirationService) expirePayment(ctx context.Context, log *slog.Logger, p *models.Payment) {
	log = log.With(slog.Int("payment_id", p.ID), slog.String("user_uid", p.UserUID))

	if err := s.repo.MarkPaymentExpired(ctx, p.ID); err != nil {
		log.Error("failed to mark payment expired", sl.Err(err))
		return
	}
	metrics.ExpiredPaymentsTotal.Inc()

	stillActive, err := s.repo.HasActivePayments(ctx, p.UserUID)
	if err != nil {
		log.Error("failed to check remaining active payments", sl.Err(err))
		return
	}
	if !stillActive {
		if err = s.repo.DemoteUser(ctx, p.UserUID); err != nil {
			log.Error("failed to demote user", sl.Err(err))
			return
		}
		log.Info("user demoted, no active payments left")
	}

	user, err := s.repo.GetUser(ctx, p.UserUID)
	if err != nil {
		log.Error("failed to fetch user for notification", sl.Err(err))
		return
	}
	if user.PushToken == nil {
		log.Info("user has no push token, skipping notification")
		return
	}

	msg := models.PushMessage{
		To:    *user.PushToken,
		Sound: "default",
		Title: s.cfg.Title,
		Body:  s.cfg.Body,
	}
	resp, err := s.sender.Send(ctx, msg)
	if err != nil {
		log.Error("failed to send expiry notification", sl.Err(err))
		metrics.NotificationFailuresTotal.Inc()
		return
	}
	log.Info("expired subscription processed", slog.String("gateway_response", resp.String()))
}
