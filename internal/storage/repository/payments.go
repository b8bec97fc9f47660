package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/notification-relay/internal/models"
)

// ListActivePayments возвращает все платёжные записи со статусом active.
// Записи с отсутствующим user_uid или expires_at тоже попадают в выборку:
// решение о пропуске битых записей принимает вызывающая сторона.
func (s *Storage) ListActivePayments(ctx context.Context) ([]*models.Payment, error) {
	const op = "repository.ListActivePayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, status, expires_at
			  FROM payments
			  WHERE status = $1`
	rows, err := s.DB.QueryContext(ctx, query, models.PaymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		var userUID sql.NullString
		var expiresAt sql.NullTime
		if err = rows.Scan(&p.ID, &userUID, &p.Status, &expiresAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if userUID.Valid {
			p.UserUID = userUID.String
		}
		if expiresAt.Valid {
			p.ExpiresAt = &expiresAt.Time
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkPaymentExpired переводит платёжную запись в статус expired.
// Обновление безусловное, повторный вызов для уже истёкшей записи безопасен.
func (s *Storage) MarkPaymentExpired(ctx context.Context, id int) error {
	const op = "repository.MarkPaymentExpired"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1
			  WHERE id = $2`
	_, err := s.DB.ExecContext(ctx, query, models.PaymentStatusExpired, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// HasActivePayments сообщает, остались ли у пользователя платёжные записи
// со статусом active.
func (s *Storage) HasActivePayments(ctx context.Context, userUID string) (bool, error) {
	const op = "repository.HasActivePayments"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM payments
			      WHERE user_uid = $1 AND status = $2
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userUID, models.PaymentStatusActive).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
