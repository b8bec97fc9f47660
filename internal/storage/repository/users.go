package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/notification-relay/internal/models"
)

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "repository.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, role, push_token, created_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var pushToken sql.NullString
	if err := row.Scan(&u.UID, &u.Username, &u.Role, &pushToken, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if pushToken.Valid {
		u.PushToken = &pushToken.String
	}
	return u, nil
}

// DemoteUser понижает роль пользователя до user.
// Обновление безусловное, повторный вызов для уже пониженного
// пользователя безопасен.
func (s *Storage) DemoteUser(ctx context.Context, userUID string) error {
	const op = "repository.DemoteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET role = $1
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, models.RoleUser, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAdminPushTokens возвращает push-токены всех пользователей с ролью admin.
// Пользователи без зарегистрированного токена не попадают в выборку.
func (s *Storage) ListAdminPushTokens(ctx context.Context) ([]string, error) {
	const op = "repository.ListAdminPushTokens"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT push_token
			  FROM users
			  WHERE role = $1 AND push_token IS NOT NULL`
	rows, err := s.DB.QueryContext(ctx, query, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var token string
		if err = rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, token)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
