package models

import "time"

// Роли пользователя. Роль admin выдаётся внешней системой при оплате;
// сервис только понижает её до user при истечении последней активной подписки.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет пользователя системы.
type User struct {
	UID       string    // Уникальный идентификатор пользователя
	Username  string    // Имя пользователя
	Role      string    // Роль пользователя, admin или user
	PushToken *string   // Expo push-токен устройства, nil если не зарегистрирован
	CreatedAt time.Time // Дата создания записи
}
